package scrapyard

// With pairs the component identity with a concrete value for Spawn or
// AddComponent.
func (c AccessibleComponent[T]) With(value T) ComponentValue {
	return ComponentValue{Component: c.Component, Value: value}
}

// AddToEntity attaches a value of this component type to the entity.
func (c AccessibleComponent[T]) AddToEntity(sto Storage, e Entity, value T) error {
	return sto.AddComponent(e, c.With(value))
}

// RemoveFromEntity detaches this component type from the entity and returns
// the removed value.
func (c AccessibleComponent[T]) RemoveFromEntity(sto Storage, e Entity) (T, error) {
	removed, err := sto.RemoveComponent(e, c.Component)
	if err != nil {
		var zero T
		return zero, err
	}
	return removed.(T), nil
}

// GetFromEntity returns a pointer to the entity's value of this component
// type. The pointer is valid only until the next structural mutation, which
// may relocate the row.
func (c AccessibleComponent[T]) GetFromEntity(sto Storage, e Entity) (*T, error) {
	s := sto.(*storage)
	if err := s.checkLive(e); err != nil {
		return nil, err
	}
	loc := s.locations[e]
	col, ok := s.archetypes.byID(loc.archetype).columnFor(c.Component)
	if !ok {
		return nil, ComponentNotFoundError{Component: c.Component}
	}
	return &col.(*typedColumn[T]).values[loc.row], nil
}

// CheckEntity reports whether the entity currently holds this component type.
func (c AccessibleComponent[T]) CheckEntity(sto Storage, e Entity) bool {
	arch, err := sto.ArchetypeFor(e)
	if err != nil {
		return false
	}
	return arch.Contains(c.Component)
}
