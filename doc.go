/*
Package scrapyard provides archetype-based entity-component storage for games
and simulations.

Entities sharing the same set of component types are grouped into archetypes,
each backed by contiguous per-type columns. Structural changes (adding or
removing a component) move an entity's row between archetypes while keeping
every column dense via swap-removal.

Core Concepts:

  - Entity: A unique identifier that represents a game object.
  - Component: A data container that defines entity attributes.
  - Archetype: A collection of entities sharing the same component types.
  - Signature: The unordered set of component types held by an archetype.

Basic Usage:

	// Create storage
	storage := scrapyard.Factory.NewStorage()

	// Define components
	position := scrapyard.FactoryNewComponent[Position]()
	velocity := scrapyard.FactoryNewComponent[Velocity]()

	// Spawn an entity with initial component values
	player, _ := storage.Spawn(
		position.With(Position{X: 10, Y: 20}),
		velocity.With(Velocity{X: 1, Y: 2}),
	)

	// Read and mutate component values in place
	pos, _ := position.GetFromEntity(storage, player)
	pos.X += 5

	// Structural transitions move the entity between archetypes
	_, _ = velocity.RemoveFromEntity(storage, player)

Iteration over matching columns belongs to a query layer built on top of this
package; the seam it consumes is Storage.ArchetypesMatching together with
Archetype.Column.
*/
package scrapyard
