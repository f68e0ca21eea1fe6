package scrapyard

import (
	"errors"
	"fmt"
)

type operationType int

const (
	opNone operationType = iota
	opSpawn
	opAddComponent
	opRemoveComponent
)

type operation struct {
	typ    operationType
	entity Entity
	value  ComponentValue
	comp   Component
	values []ComponentValue
}

// opQueue buffers structural operations issued while the storage is locked.
// Operations drain in phases: spawns first, then component changes, then
// despawns.
type opQueue struct {
	spawnOps       []operation
	componentOps   []operation
	despawns       []Entity
	pendingDespawn map[Entity]struct{}
	pendingMods    map[Entity]int
}

func newOpQueue() opQueue {
	return opQueue{
		pendingDespawn: make(map[Entity]struct{}),
		pendingMods:    make(map[Entity]int),
	}
}

func (q *opQueue) enqueueSpawn(values []ComponentValue) {
	q.spawnOps = append(q.spawnOps, operation{typ: opSpawn, values: values})
}

func (q *opQueue) enqueueDespawn(e Entity) {
	if _, exists := q.pendingDespawn[e]; exists {
		return
	}
	q.pendingDespawn[e] = struct{}{}
	q.despawns = append(q.despawns, e)

	// A queued despawn supersedes any queued component change on the entity.
	if idx, hasMod := q.pendingMods[e]; hasMod {
		q.componentOps[idx].typ = opNone
		delete(q.pendingMods, e)
	}
}

func (q *opQueue) enqueueComponentOp(op operation) {
	if _, destroyed := q.pendingDespawn[op.entity]; destroyed {
		return
	}
	// Only the latest queued change per entity survives.
	if idx, exists := q.pendingMods[op.entity]; exists {
		q.componentOps[idx] = op
		return
	}
	q.pendingMods[op.entity] = len(q.componentOps)
	q.componentOps = append(q.componentOps, op)
}

func (sto *storage) processOperationQueue() error {
	q := &sto.opQueue
	if len(q.spawnOps) == 0 && len(q.componentOps) == 0 && len(q.despawns) == 0 {
		return nil
	}

	for _, op := range q.spawnOps {
		if _, err := sto.Spawn(op.values...); err != nil {
			return fmt.Errorf("failed to process queued spawn: %w", err)
		}
	}

	for _, op := range q.componentOps {
		if !sto.allocator.alive(op.entity) {
			continue
		}
		// Queued changes that no longer apply to the entity's current
		// signature are stale, not defects; they drop out of the drain.
		switch op.typ {
		case opAddComponent:
			err := sto.AddComponent(op.entity, op.value)
			var exists ComponentExistsError
			if errors.As(err, &exists) {
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to add queued component: %w", err)
			}
		case opRemoveComponent:
			_, err := sto.RemoveComponent(op.entity, op.comp)
			var notFound ComponentNotFoundError
			if errors.As(err, &notFound) {
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to remove queued component: %w", err)
			}
		}
	}

	for _, e := range q.despawns {
		if err := sto.Despawn(e); err != nil {
			return fmt.Errorf("failed to process queued despawn: %w", err)
		}
	}

	q.spawnOps = q.spawnOps[:0]
	q.componentOps = q.componentOps[:0]
	q.despawns = q.despawns[:0]
	clear(q.pendingDespawn)
	clear(q.pendingMods)
	return nil
}

// EnqueueSpawn buffers a spawn while the storage is locked; when unlocked it
// spawns immediately. The value set is validated here so that caller errors
// surface at the call site rather than as a drain-time failure.
func (sto *storage) EnqueueSpawn(values ...ComponentValue) error {
	if !sto.locked {
		if _, err := sto.Spawn(values...); err != nil {
			return fmt.Errorf("failed to spawn directly: %w", err)
		}
		return nil
	}
	for i, v := range values {
		for _, prior := range values[:i] {
			if prior.Component == v.Component {
				return DuplicateComponentTypeError{Component: v.Component}
			}
		}
	}
	sto.opQueue.enqueueSpawn(values)
	return nil
}

// EnqueueDespawn buffers a despawn while the storage is locked; when unlocked
// it despawns immediately. Queued despawns cancel queued component changes
// for the same entity.
func (sto *storage) EnqueueDespawn(e Entity) error {
	if !sto.locked {
		return sto.Despawn(e)
	}
	sto.opQueue.enqueueDespawn(e)
	return nil
}

func (sto *storage) EnqueueAddComponent(e Entity, value ComponentValue) error {
	if !sto.locked {
		return sto.AddComponent(e, value)
	}
	sto.opQueue.enqueueComponentOp(operation{typ: opAddComponent, entity: e, value: value})
	return nil
}

func (sto *storage) EnqueueRemoveComponent(e Entity, c Component) error {
	if !sto.locked {
		_, err := sto.RemoveComponent(e, c)
		return err
	}
	sto.opQueue.enqueueComponentOp(operation{typ: opRemoveComponent, entity: e, comp: c})
	return nil
}
