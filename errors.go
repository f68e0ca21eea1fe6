package scrapyard

import "fmt"

type LockedStorageError struct{}

func (e LockedStorageError) Error() string {
	return "storage is currently locked"
}

// ForeignEntityError reports an entity index this storage never issued,
// usually a sign that handles from two storages were mixed up.
type ForeignEntityError struct {
	Entity Entity
}

func (e ForeignEntityError) Error() string {
	return fmt.Sprintf("entity %v was not spawned by this storage", e.Entity)
}

// EntityNotFoundError reports an entity that was spawned here but has since
// been despawned.
type EntityNotFoundError struct {
	Entity Entity
}

func (e EntityNotFoundError) Error() string {
	return fmt.Sprintf("entity %v is not alive", e.Entity)
}

type ComponentExistsError struct {
	Component Component
}

func (e ComponentExistsError) Error() string {
	return fmt.Sprintf("component already exists on entity: %v", e.Component.Type())
}

type ComponentNotFoundError struct {
	Component Component
}

func (e ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component does not exist on entity: %v", e.Component.Type())
}

// DuplicateComponentTypeError reports a spawn or archetype build that listed
// the same component type twice.
type DuplicateComponentTypeError struct {
	Component Component
}

func (e DuplicateComponentTypeError) Error() string {
	return fmt.Sprintf("duplicate component type: %v", e.Component.Type())
}
