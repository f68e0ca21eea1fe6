package scrapyard

import (
	"fmt"
	"reflect"
)

var _ Column = &typedColumn[int]{}

// typedColumn is the single concrete Column implementation; one instantiation
// exists per component type. Values crossing the erased interface are checked
// against the column's type tag, so a mismatch can only come from a defect in
// the archetype/transition logic and fails loudly.
type typedColumn[T any] struct {
	values []T
}

func (c *typedColumn[T]) Len() int {
	return len(c.values)
}

func (c *typedColumn[T]) ElementType() reflect.Type {
	return reflect.TypeFor[T]()
}

func (c *typedColumn[T]) newEmptySameType() Column {
	return &typedColumn[T]{}
}

func (c *typedColumn[T]) push(value any) {
	v, ok := value.(T)
	if !ok {
		panic(fmt.Sprintf("column %v: cannot push value of type %T", c.ElementType(), value))
	}
	c.values = append(c.values, v)
}

// swapRemove removes and returns the value at row, moving the last value into
// its slot so the column stays dense.
func (c *typedColumn[T]) swapRemove(row int) any {
	last := len(c.values) - 1
	if row < 0 || row > last {
		panic(fmt.Sprintf("column %v: row %d out of bounds (len %d)", c.ElementType(), row, len(c.values)))
	}
	v := c.values[row]
	c.values[row] = c.values[last]
	var zero T
	c.values[last] = zero
	c.values = c.values[:last]
	return v
}

func (c *typedColumn[T]) value(row int) any {
	if row < 0 || row >= len(c.values) {
		panic(fmt.Sprintf("column %v: row %d out of bounds (len %d)", c.ElementType(), row, len(c.values)))
	}
	return c.values[row]
}
