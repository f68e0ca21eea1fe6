package scrapyard

import (
	"fmt"
	"iter"
	"strings"

	"github.com/TheBitDrifter/mask"
	iter_util "github.com/TheBitDrifter/util/iter"
)

type archetypeID uint32

var (
	_ Archetype     = &archetype{}
	_ mask.Maskable = &archetype{}
)

// boundColumn ties a column to the component identity it stores.
type boundColumn struct {
	component Component
	Column
}

// archetype owns one table: a list of entities plus one column per component
// type in its signature. Row r across the entity list and every column refers
// to the same logical entity.
type archetype struct {
	id       archetypeID
	mask     mask.Mask
	entities []Entity
	columns  []boundColumn
}

// newArchetype builds an empty archetype from a component list. Callers are
// responsible for rejecting duplicate component types beforehand; a duplicate
// reaching this point is an engine defect.
func newArchetype(id archetypeID, m mask.Mask, components []Component) *archetype {
	columns := make([]boundColumn, 0, len(components))
	for _, comp := range components {
		for _, bc := range columns {
			if bc.component == comp {
				panic(fmt.Sprintf("archetype contains duplicate component type %v", comp.Type()))
			}
		}
		columns = append(columns, boundColumn{component: comp, Column: comp.newColumn()})
	}
	return &archetype{id: id, mask: m, columns: columns}
}

// cloneEmptyWith builds an empty sibling archetype holding this archetype's
// signature plus one added component type.
func (a *archetype) cloneEmptyWith(id archetypeID, m mask.Mask, added Component) *archetype {
	columns := make([]boundColumn, 0, len(a.columns)+1)
	for _, bc := range a.columns {
		columns = append(columns, boundColumn{component: bc.component, Column: bc.newEmptySameType()})
	}
	columns = append(columns, boundColumn{component: added, Column: added.newColumn()})
	return &archetype{id: id, mask: m, columns: columns}
}

// cloneEmptyWithout builds an empty sibling archetype holding this
// archetype's signature minus one component type.
func (a *archetype) cloneEmptyWithout(id archetypeID, m mask.Mask, removed Component) *archetype {
	columns := make([]boundColumn, 0, len(a.columns)-1)
	for _, bc := range a.columns {
		if bc.component == removed {
			continue
		}
		columns = append(columns, boundColumn{component: bc.component, Column: bc.newEmptySameType()})
	}
	return &archetype{id: id, mask: m, columns: columns}
}

func (a *archetype) ID() uint32 {
	return uint32(a.id)
}

func (a *archetype) Len() int {
	return len(a.entities)
}

func (a *archetype) Mask() mask.Mask {
	return a.mask
}

func (a *archetype) Contains(c Component) bool {
	_, ok := a.columnFor(c)
	return ok
}

func (a *archetype) Entity(row int) Entity {
	return a.entities[row]
}

// ElementTypes iterates the component types of this archetype's signature.
func (a *archetype) ElementTypes() iter.Seq[Component] {
	return func(yield func(Component) bool) {
		for _, bc := range a.columns {
			if !yield(bc.component) {
				return
			}
		}
	}
}

// Column exposes read access to one column for the query layer. The column
// contents are only valid until the next structural mutation.
func (a *archetype) Column(c Component) (Column, bool) {
	return a.columnFor(c)
}

func (a *archetype) columnFor(c Component) (Column, bool) {
	for _, bc := range a.columns {
		if bc.component == c {
			return bc.Column, true
		}
	}
	return nil, false
}

// Components returns the signature's component types as a slice.
func (a *archetype) Components() []Component {
	return iter_util.Collect(a.ElementTypes())
}

func (a *archetype) String() string {
	names := make([]string, 0, len(a.columns))
	for _, comp := range a.Components() {
		names = append(names, comp.Type().String())
	}
	return "archetype{" + strings.Join(names, ", ") + "}"
}

// insertRow appends the entity and one value per column, returning the new
// row index. The supplied values must match the signature exactly; the
// storage validates that before calling, so a mismatch here panics.
func (a *archetype) insertRow(e Entity, values []ComponentValue) int {
	defer a.assertInvariants()

	if len(values) != len(a.columns) {
		panic(fmt.Sprintf("%s: got %d values for %d columns", a, len(values), len(a.columns)))
	}
	for _, v := range values {
		col, ok := a.columnFor(v.Component)
		if !ok {
			panic(fmt.Sprintf("%s: component %v not in signature", a, v.Component.Type()))
		}
		col.push(v.Value)
	}
	a.entities = append(a.entities, e)
	return len(a.entities) - 1
}

// removeRow swap-removes the row from the entity list and every column,
// discarding its values. When the removed row was not the last one, the
// returned entity is the one that moved into its slot and the caller must
// remap that entity's location before anything else observes the table.
func (a *archetype) removeRow(row int) (displaced Entity, swapped bool) {
	defer a.assertInvariants()

	for i := range a.columns {
		a.columns[i].swapRemove(row)
	}
	return a.removeEntityAt(row)
}

// transferRowTo moves one row into target: every column value whose type is
// shared between the two signatures is relocated, values of dropped types
// fall away, and the added values fill the target's remaining columns. The
// source row is removed only after every column value has been relocated.
func (a *archetype) transferRowTo(target *archetype, row int, added ...ComponentValue) (newRow int, displaced Entity, swapped bool) {
	defer a.assertInvariants()
	defer target.assertInvariants()

	moved := a.entities[row]
	for i := range a.columns {
		value := a.columns[i].swapRemove(row)
		if col, ok := target.columnFor(a.columns[i].component); ok {
			col.push(value)
		}
	}
	for _, v := range added {
		col, ok := target.columnFor(v.Component)
		if !ok {
			panic(fmt.Sprintf("%s: component %v not in signature", target, v.Component.Type()))
		}
		col.push(v.Value)
	}
	displaced, swapped = a.removeEntityAt(row)

	target.entities = append(target.entities, moved)
	newRow = len(target.entities) - 1
	return newRow, displaced, swapped
}

func (a *archetype) valueAt(row int, c Component) any {
	col, ok := a.columnFor(c)
	if !ok {
		panic(fmt.Sprintf("%s: component %v not in signature", a, c.Type()))
	}
	return col.value(row)
}

func (a *archetype) removeEntityAt(row int) (displaced Entity, swapped bool) {
	last := len(a.entities) - 1
	if row < 0 || row > last {
		panic(fmt.Sprintf("%s: row %d out of bounds (len %d)", a, row, len(a.entities)))
	}
	swapped = row != last
	if swapped {
		a.entities[row] = a.entities[last]
		displaced = a.entities[row]
	}
	a.entities = a.entities[:last]
	return displaced, swapped
}

func (a *archetype) assertInvariants() {
	for _, bc := range a.columns {
		if bc.Len() != len(a.entities) {
			panic(fmt.Sprintf("%s: expected %d values in column %v, got %d",
				a, len(a.entities), bc.component.Type(), bc.Len()))
		}
	}
}
