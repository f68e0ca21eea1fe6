package scrapyard

import "reflect"

// elementType is the identity of one concrete component type. It is an empty
// struct so that any two instances for the same T compare equal, which makes
// Component values usable as map keys.
type elementType[T any] struct{}

func (elementType[T]) Type() reflect.Type {
	return reflect.TypeFor[T]()
}

func (elementType[T]) newColumn() Column {
	return &typedColumn[T]{}
}
