package scrapyard

import (
	"iter"
	"reflect"
)

// Storage owns all archetypes, the entity id allocator, and the index mapping
// each live entity to its current row. All structural mutations go through a
// single Storage; it is not safe for concurrent mutation.
type Storage interface {
	Spawn(values ...ComponentValue) (Entity, error)
	EnqueueSpawn(values ...ComponentValue) error
	Despawn(Entity) error
	EnqueueDespawn(Entity) error
	IsAlive(Entity) (bool, error)
	AddComponent(Entity, ComponentValue) error
	EnqueueAddComponent(Entity, ComponentValue) error
	RemoveComponent(Entity, Component) (any, error)
	EnqueueRemoveComponent(Entity, Component) error
	ArchetypeFor(Entity) (Archetype, error)
	ArchetypesMatching(components ...Component) iter.Seq[Archetype]
	NewOrExistingArchetype(components ...Component) (Archetype, error)
	RowIndexFor(Component) uint32
	Locked() bool
	Lock()
	Unlock()
}

// Component identifies one concrete component type. Components are created
// via FactoryNewComponent and compare equal iff they identify the same type.
type Component interface {
	Type() reflect.Type
	newColumn() Column
}

// ComponentValue pairs a component identity with a value of its concrete
// type, crossing the type-erasure boundary of Spawn and AddComponent.
type ComponentValue struct {
	Component Component
	Value     any
}

// Archetype groups the entities that share one exact component signature.
type Archetype interface {
	ID() uint32
	Len() int
	Contains(Component) bool
	Entity(row int) Entity
	ElementTypes() iter.Seq[Component]
	Components() []Component
	Column(Component) (Column, bool)
}

// Column is a dense array holding one component type's values, one slot per
// row. Columns belonging to the same archetype always have equal length.
type Column interface {
	Len() int
	ElementType() reflect.Type

	newEmptySameType() Column
	push(value any)
	swapRemove(row int) any
	value(row int) any
}

type Query interface {
	QueryNode
	And(items ...interface{}) QueryNode
	Or(items ...interface{}) QueryNode
	Not(items ...interface{}) QueryNode
}

type QueryNode interface {
	Evaluate(archetype Archetype, storage Storage) bool
}

// AccessibleComponent extends a base Component with typed access to entity
// values stored behind the erased Column interface.
type AccessibleComponent[T any] struct {
	Component
}
