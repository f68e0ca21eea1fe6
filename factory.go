package scrapyard

type factory struct{}

var Factory factory

func (f factory) NewStorage() Storage {
	return newStorage()
}

func (f factory) NewQuery() Query {
	return newQuery()
}

// FactoryNewComponent creates the identity for component type T. Calling it
// twice for the same T yields equal components.
func FactoryNewComponent[T any]() AccessibleComponent[T] {
	return AccessibleComponent[T]{Component: elementType[T]{}}
}
