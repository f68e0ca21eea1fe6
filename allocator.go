package scrapyard

import "math"

// idAllocator issues monotonically increasing entity ids and tracks which of
// them have been despawned. Ids are never reused, so liveness is a counter
// bound plus a dead set.
type idAllocator struct {
	nextID uint64
	dead   map[Entity]struct{}
}

func newIDAllocator() *idAllocator {
	return &idAllocator{dead: make(map[Entity]struct{})}
}

// spawn issues the next id. Reusing or wrapping ids would alias two live
// entities, so exhaustion of the counter is unrecoverable.
func (a *idAllocator) spawn() Entity {
	if a.nextID == math.MaxUint64 {
		panic("idAllocator: entity id space exhausted")
	}
	e := Entity{id: a.nextID}
	a.nextID++
	return e
}

// despawn marks the entity dead if it is currently alive. Despawning a dead
// or foreign entity is a no-op so the call stays safe to make defensively.
func (a *idAllocator) despawn(e Entity) {
	if a.alive(e) {
		a.dead[e] = struct{}{}
	}
}

// alive is the quiet liveness check used on paths where dead and foreign
// entities are treated the same.
func (a *idAllocator) alive(e Entity) bool {
	if e.id >= a.nextID {
		return false
	}
	_, dead := a.dead[e]
	return !dead
}

// isAlive answers the strict liveness question. An index this allocator never
// issued indicates id confusion between storages and is reported rather than
// folded into false.
func (a *idAllocator) isAlive(e Entity) (bool, error) {
	if e.id >= a.nextID {
		return false, ForeignEntityError{Entity: e}
	}
	return a.alive(e), nil
}
