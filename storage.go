package scrapyard

import (
	"iter"

	"github.com/TheBitDrifter/mask"
	"go.uber.org/zap"
)

var _ Storage = &storage{}

// location records where a live entity currently resides.
type location struct {
	archetype archetypeID
	row       int
}

type storage struct {
	locked     bool
	schema     *schema
	allocator  *idAllocator
	archetypes *archetypes
	locations  map[Entity]location
	matches    *matchCache
	opQueue    opQueue
}

// archetypes is the registry of all tables, keyed by signature mask. Ids are
// 1-based so the zero value never names a table.
type archetypes struct {
	nextID           archetypeID
	asSlice          []*archetype
	idsGroupedByMask map[mask.Mask]archetypeID
}

func (ar *archetypes) byID(id archetypeID) *archetype {
	return ar.asSlice[id-1]
}

func newStorage() Storage {
	return &storage{
		schema:    newSchema(),
		allocator: newIDAllocator(),
		archetypes: &archetypes{
			nextID:           1,
			idsGroupedByMask: make(map[mask.Mask]archetypeID),
		},
		locations: make(map[Entity]location),
		matches:   newMatchCache(),
		opQueue:   newOpQueue(),
	}
}

// Spawn creates a new entity holding the given component values. The values
// are validated before any state changes, so a rejected spawn leaves the
// storage untouched.
func (sto *storage) Spawn(values ...ComponentValue) (Entity, error) {
	if sto.locked {
		return Entity{}, LockedStorageError{}
	}
	components := make([]Component, len(values))
	for i, v := range values {
		components[i] = v.Component
	}
	arch, err := sto.newOrExistingArchetype(components)
	if err != nil {
		return Entity{}, err
	}

	e := sto.allocator.spawn()
	row := arch.insertRow(e, values)
	sto.locations[e] = location{archetype: arch.id, row: row}

	Config.logger.Debug("spawned entity",
		zap.Uint64("entity", e.ID()),
		zap.Uint32("archetype", arch.ID()),
		zap.Int("row", row))
	return e, nil
}

// Despawn removes the entity and its component values. Despawning a dead or
// foreign entity is a silent no-op, unlike IsAlive's stricter policy, so the
// call is safe to make defensively.
func (sto *storage) Despawn(e Entity) error {
	if sto.locked {
		return LockedStorageError{}
	}
	if !sto.allocator.alive(e) {
		Config.logger.Debug("ignored despawn of dead or foreign entity", zap.Uint64("entity", e.ID()))
		return nil
	}

	loc := sto.locations[e]
	arch := sto.archetypes.byID(loc.archetype)
	displaced, swapped := arch.removeRow(loc.row)
	if swapped {
		sto.locations[displaced] = location{archetype: arch.id, row: loc.row}
	}
	sto.allocator.despawn(e)
	delete(sto.locations, e)

	Config.logger.Debug("despawned entity", zap.Uint64("entity", e.ID()))
	return nil
}

func (sto *storage) IsAlive(e Entity) (bool, error) {
	return sto.allocator.isAlive(e)
}

// checkLive gates structural operations on an entity: foreign entities are
// reported as such, dead ones as not found.
func (sto *storage) checkLive(e Entity) error {
	alive, err := sto.allocator.isAlive(e)
	if err != nil {
		return err
	}
	if !alive {
		return EntityNotFoundError{Entity: e}
	}
	return nil
}

// ArchetypeFor returns the archetype currently holding the entity's row.
func (sto *storage) ArchetypeFor(e Entity) (Archetype, error) {
	if err := sto.checkLive(e); err != nil {
		return nil, err
	}
	return sto.archetypes.byID(sto.locations[e].archetype), nil
}

// ArchetypesMatching returns the archetypes whose signatures contain every
// given component type; with no arguments it yields all archetypes. The
// sequence reflects the archetypes present at call time and is invalidated
// by any later structural mutation.
func (sto *storage) ArchetypesMatching(components ...Component) iter.Seq[Archetype] {
	var required mask.Mask
	for _, c := range components {
		required.Mark(sto.schema.RowIndexFor(c))
	}
	ids := sto.matches.lookup(required, func() []archetypeID {
		var ids []archetypeID
		for _, arch := range sto.archetypes.asSlice {
			if arch.mask.ContainsAll(required) {
				ids = append(ids, arch.id)
			}
		}
		return ids
	})
	return func(yield func(Archetype) bool) {
		for _, id := range ids {
			if !yield(sto.archetypes.byID(id)) {
				return
			}
		}
	}
}

// NewOrExistingArchetype looks up the archetype for the given signature,
// creating an empty one if none exists. Signatures are order-independent;
// supplying the same type twice fails.
func (sto *storage) NewOrExistingArchetype(components ...Component) (Archetype, error) {
	return sto.newOrExistingArchetype(components)
}

func (sto *storage) newOrExistingArchetype(components []Component) (*archetype, error) {
	var m mask.Mask
	for _, c := range components {
		sto.schema.Register(c)
		bit := sto.schema.RowIndexFor(c)

		var single mask.Mask
		single.Mark(bit)
		if m.ContainsAll(single) {
			return nil, DuplicateComponentTypeError{Component: c}
		}
		m.Mark(bit)
	}

	if id, found := sto.archetypes.idsGroupedByMask[m]; found {
		return sto.archetypes.byID(id), nil
	}
	created := newArchetype(sto.archetypes.nextID, m, components)
	sto.registerArchetype(created)
	return created, nil
}

func (sto *storage) registerArchetype(a *archetype) {
	if _, exists := sto.archetypes.idsGroupedByMask[a.mask]; exists {
		panic("two archetypes created for one signature")
	}
	sto.archetypes.asSlice = append(sto.archetypes.asSlice, a)
	sto.archetypes.idsGroupedByMask[a.mask] = a.id
	sto.archetypes.nextID++
	sto.matches.invalidate()

	Config.logger.Debug("created archetype",
		zap.Uint32("archetype", a.ID()),
		zap.Int("components", len(a.columns)))
}

func (sto *storage) RowIndexFor(c Component) uint32 {
	return sto.schema.RowIndexFor(c)
}

func (sto *storage) Locked() bool {
	return sto.locked
}

// Lock puts the storage into its read phase: structural mutations are
// rejected and the Enqueue variants buffer operations instead.
func (sto *storage) Lock() {
	sto.locked = true
}

// Unlock leaves the read phase and applies all buffered operations.
func (sto *storage) Unlock() {
	sto.locked = false
	if err := sto.processOperationQueue(); err != nil {
		panic(err)
	}
}
