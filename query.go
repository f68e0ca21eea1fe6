package scrapyard

import (
	"github.com/TheBitDrifter/mask"
)

type Operation int

const (
	OpAnd Operation = iota
	OpOr
	OpNot
)

type queryNode struct {
	op         Operation
	components []Component
	children   []QueryNode
}

type query struct {
	root QueryNode
}

func newQuery() Query {
	return &query{}
}

func (q *query) And(items ...interface{}) QueryNode {
	return q.node(OpAnd, items)
}

func (q *query) Or(items ...interface{}) QueryNode {
	return q.node(OpOr, items)
}

func (q *query) Not(items ...interface{}) QueryNode {
	return q.node(OpNot, items)
}

func (q *query) node(op Operation, items []interface{}) QueryNode {
	node := &queryNode{op: op}
	for _, item := range items {
		switch v := item.(type) {
		case Component:
			node.components = append(node.components, v)
		case []Component:
			node.components = append(node.components, v...)
		case QueryNode:
			node.children = append(node.children, v)
		}
	}
	if q.root == nil {
		q.root = node
	}
	return node
}

// Evaluate delegates to the query's root node. The root is the first node
// built through And, Or, or Not on this query; nodes built afterwards only
// take effect where they are nested as children. Build inner nodes before
// the outer expression, or evaluate the outermost returned node directly.
func (q *query) Evaluate(archetype Archetype, storage Storage) bool {
	if q.root == nil {
		return false
	}
	return q.root.Evaluate(archetype, storage)
}

func (n *queryNode) Evaluate(archetype Archetype, storage Storage) bool {
	// Masks are built at evaluation time so components registered after the
	// node was constructed still resolve to their schema bits.
	var nodeMask mask.Mask
	for _, comp := range n.components {
		nodeMask.Mark(storage.RowIndexFor(comp))
	}
	archeMask := archetype.(mask.Maskable).Mask()

	switch n.op {
	case OpAnd:
		if !archeMask.ContainsAll(nodeMask) {
			return false
		}
		for _, child := range n.children {
			if !child.Evaluate(archetype, storage) {
				return false
			}
		}
		return true

	case OpOr:
		if archeMask.ContainsAny(nodeMask) {
			return true
		}
		for _, child := range n.children {
			if child.Evaluate(archetype, storage) {
				return true
			}
		}
		return false

	case OpNot:
		if !archeMask.ContainsNone(nodeMask) {
			return false
		}
		for _, child := range n.children {
			if child.Evaluate(archetype, storage) {
				return false
			}
		}
		return true
	}
	return false
}
