package scrapyard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColumnSwapRemove(t *testing.T) {
	col := &typedColumn[Position]{}
	col.push(Position{X: 1})
	col.push(Position{X: 2})
	col.push(Position{X: 3})
	require.Equal(t, 3, col.Len())

	removed := col.swapRemove(0)
	require.Equal(t, Position{X: 1}, removed)
	require.Equal(t, 2, col.Len())
	// The last value moved into the vacated slot
	require.Equal(t, Position{X: 3}, col.value(0))
	require.Equal(t, Position{X: 2}, col.value(1))

	removed = col.swapRemove(1)
	require.Equal(t, Position{X: 2}, removed)
	require.Equal(t, 1, col.Len())
}

func TestColumnTypeBoundary(t *testing.T) {
	col := &typedColumn[Position]{}

	require.Panics(t, func() { col.push(Velocity{}) })
	require.Panics(t, func() { col.swapRemove(0) })
	require.Panics(t, func() { col.value(-1) })

	empty := col.newEmptySameType()
	require.Equal(t, 0, empty.Len())
	require.Equal(t, col.ElementType(), empty.ElementType())
}

func TestInsertRowRejectsMismatchedSignature(t *testing.T) {
	sto := newStorage().(*storage)
	posComp := FactoryNewComponent[Position]()
	velComp := FactoryNewComponent[Velocity]()
	healthComp := FactoryNewComponent[Health]()

	arch, err := sto.newOrExistingArchetype([]Component{posComp.Component, velComp.Component})
	require.NoError(t, err)

	// Subset of the signature
	require.Panics(t, func() {
		arch.insertRow(Entity{id: 9}, []ComponentValue{posComp.With(Position{})})
	})
	// Right arity, wrong type set
	require.Panics(t, func() {
		arch.insertRow(Entity{id: 9}, []ComponentValue{posComp.With(Position{}), healthComp.With(Health{})})
	})

	require.Equal(t, 0, arch.Len())
}

func TestRemoveRowReportsDisplacedEntity(t *testing.T) {
	sto := newStorage().(*storage)
	posComp := FactoryNewComponent[Position]()

	arch, err := sto.newOrExistingArchetype([]Component{posComp.Component})
	require.NoError(t, err)

	arch.insertRow(Entity{id: 1}, []ComponentValue{posComp.With(Position{X: 1})})
	arch.insertRow(Entity{id: 2}, []ComponentValue{posComp.With(Position{X: 2})})
	arch.insertRow(Entity{id: 3}, []ComponentValue{posComp.With(Position{X: 3})})

	// Removing a middle row moves the last entity into its slot
	displaced, swapped := arch.removeRow(0)
	require.True(t, swapped)
	require.Equal(t, Entity{id: 3}, displaced)
	require.Equal(t, Entity{id: 3}, arch.Entity(0))
	require.Equal(t, Position{X: 3}, arch.valueAt(0, posComp.Component))

	// Removing the last row displaces nothing
	_, swapped = arch.removeRow(1)
	require.False(t, swapped)
	require.Equal(t, 1, arch.Len())
}

func TestTransferRowTo(t *testing.T) {
	sto := newStorage().(*storage)
	posComp := FactoryNewComponent[Position]()
	velComp := FactoryNewComponent[Velocity]()

	src, err := sto.newOrExistingArchetype([]Component{posComp.Component})
	require.NoError(t, err)
	src.insertRow(Entity{id: 1}, []ComponentValue{posComp.With(Position{X: 1})})
	src.insertRow(Entity{id: 2}, []ComponentValue{posComp.With(Position{X: 2})})

	destMask := src.mask
	destMask.Mark(sto.schema.RowIndexFor(velComp.Component))
	dst := sto.getOrCreateArchetypeWith(destMask, src, velComp.Component)

	newRow, displaced, swapped := src.transferRowTo(dst, 0, velComp.With(Velocity{X: 9}))
	require.Equal(t, 0, newRow)
	require.True(t, swapped)
	require.Equal(t, Entity{id: 2}, displaced)

	require.Equal(t, 1, src.Len())
	require.Equal(t, Position{X: 2}, src.valueAt(0, posComp.Component))

	require.Equal(t, 1, dst.Len())
	require.Equal(t, Entity{id: 1}, dst.Entity(0))
	require.Equal(t, Position{X: 1}, dst.valueAt(0, posComp.Component))
	require.Equal(t, Velocity{X: 9}, dst.valueAt(0, velComp.Component))
}

func TestCloneEmptyWithout(t *testing.T) {
	sto := newStorage().(*storage)
	posComp := FactoryNewComponent[Position]()
	velComp := FactoryNewComponent[Velocity]()

	src, err := sto.newOrExistingArchetype([]Component{posComp.Component, velComp.Component})
	require.NoError(t, err)

	destMask := src.mask
	destMask.Unmark(sto.schema.RowIndexFor(velComp.Component))
	dst := sto.getOrCreateArchetypeWithout(destMask, src, velComp.Component)

	require.True(t, dst.Contains(posComp.Component))
	require.False(t, dst.Contains(velComp.Component))
	require.Equal(t, 0, dst.Len())

	// The registry reuses the sibling on repeat lookups
	again := sto.getOrCreateArchetypeWithout(destMask, src, velComp.Component)
	require.Same(t, dst, again)
}
