package scrapyard

import (
	"strconv"

	"github.com/TheBitDrifter/mask"
	"go.uber.org/zap"
)

// Entity is an opaque handle referencing component data owned by a Storage.
// It carries no data itself and is cheap to copy, compare, and hash. Two
// entities are equal iff their indices are equal; handles from different
// storages may therefore collide and must not be mixed.
type Entity struct {
	id uint64
}

func (e Entity) ID() uint64 {
	return e.id
}

func (e Entity) String() string {
	return strconv.FormatUint(e.id, 10)
}

// AddComponent moves the entity's row into the archetype whose signature is
// the current one plus the value's component type.
func (sto *storage) AddComponent(e Entity, value ComponentValue) error {
	if sto.locked {
		return LockedStorageError{}
	}
	if err := sto.checkLive(e); err != nil {
		return err
	}
	loc := sto.locations[e]
	origin := sto.archetypes.byID(loc.archetype)
	if origin.Contains(value.Component) {
		return ComponentExistsError{Component: value.Component}
	}

	sto.schema.Register(value.Component)
	destMask := origin.mask
	destMask.Mark(sto.schema.RowIndexFor(value.Component))

	dest := sto.getOrCreateArchetypeWith(destMask, origin, value.Component)
	newRow, displaced, swapped := origin.transferRowTo(dest, loc.row, value)
	if swapped {
		sto.locations[displaced] = location{archetype: origin.id, row: loc.row}
	}
	sto.locations[e] = location{archetype: dest.id, row: newRow}

	Config.logger.Debug("added component",
		zap.Uint64("entity", e.ID()),
		zap.Stringer("component", value.Component.Type()),
		zap.Uint32("archetype", dest.ID()))
	return nil
}

// RemoveComponent moves the entity's row into the archetype whose signature
// is the current one minus the given component type, returning the removed
// value.
func (sto *storage) RemoveComponent(e Entity, c Component) (any, error) {
	if sto.locked {
		return nil, LockedStorageError{}
	}
	if err := sto.checkLive(e); err != nil {
		return nil, err
	}
	loc := sto.locations[e]
	origin := sto.archetypes.byID(loc.archetype)
	if !origin.Contains(c) {
		return nil, ComponentNotFoundError{Component: c}
	}

	destMask := origin.mask
	destMask.Unmark(sto.schema.RowIndexFor(c))

	dest := sto.getOrCreateArchetypeWithout(destMask, origin, c)

	// Capture the dropped value before the transfer discards its column slot.
	removed := origin.valueAt(loc.row, c)

	newRow, displaced, swapped := origin.transferRowTo(dest, loc.row)
	if swapped {
		sto.locations[displaced] = location{archetype: origin.id, row: loc.row}
	}
	sto.locations[e] = location{archetype: dest.id, row: newRow}

	Config.logger.Debug("removed component",
		zap.Uint64("entity", e.ID()),
		zap.Stringer("component", c.Type()),
		zap.Uint32("archetype", dest.ID()))
	return removed, nil
}

func (sto *storage) getOrCreateArchetypeWith(m mask.Mask, donor *archetype, newComp Component) *archetype {
	if id, found := sto.archetypes.idsGroupedByMask[m]; found {
		return sto.archetypes.byID(id)
	}
	created := donor.cloneEmptyWith(sto.archetypes.nextID, m, newComp)
	sto.registerArchetype(created)
	return created
}

// Helper for finding or creating archetypes when removing components
func (sto *storage) getOrCreateArchetypeWithout(m mask.Mask, donor *archetype, removeComp Component) *archetype {
	if id, found := sto.archetypes.idsGroupedByMask[m]; found {
		return sto.archetypes.byID(id)
	}
	created := donor.cloneEmptyWithout(sto.archetypes.nextID, m, removeComp)
	sto.registerArchetype(created)
	return created
}
