package scrapyard

import "testing"

// TestQueryEvaluation checks And/Or/Not signature matching against a fixed
// set of archetypes.
func TestQueryEvaluation(t *testing.T) {
	posComp := FactoryNewComponent[Position]()
	velComp := FactoryNewComponent[Velocity]()
	healthComp := FactoryNewComponent[Health]()

	storage := Factory.NewStorage()
	mustArchetype := func(comps ...Component) {
		if _, err := storage.NewOrExistingArchetype(comps...); err != nil {
			t.Fatalf("NewOrExistingArchetype() error = %v", err)
		}
	}
	mustArchetype(posComp)
	mustArchetype(posComp, velComp)
	mustArchetype(posComp, velComp, healthComp)

	tests := []struct {
		name        string
		node        func(q Query) QueryNode
		wantMatches int
	}{
		{
			name:        "And single",
			node:        func(q Query) QueryNode { return q.And(posComp) },
			wantMatches: 3,
		},
		{
			name:        "And pair",
			node:        func(q Query) QueryNode { return q.And(posComp, velComp) },
			wantMatches: 2,
		},
		{
			name:        "Or",
			node:        func(q Query) QueryNode { return q.Or(velComp, healthComp) },
			wantMatches: 2,
		},
		{
			name:        "Not",
			node:        func(q Query) QueryNode { return q.Not(velComp) },
			wantMatches: 1,
		},
		{
			name:        "And with nested Not",
			node:        func(q Query) QueryNode { return q.And(posComp, q.Not(healthComp)) },
			wantMatches: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := tt.node(Factory.NewQuery())
			matches := 0
			for arch := range storage.ArchetypesMatching() {
				if node.Evaluate(arch, storage) {
					matches++
				}
			}
			if matches != tt.wantMatches {
				t.Errorf("matched %d archetypes, want %d", matches, tt.wantMatches)
			}
		})
	}
}

// TestQueryRootIsFirstConstructed pins down how a query resolves when nodes
// are built in sequence: Evaluate on the query follows the first node built
// through it, and later nodes only matter as children of that root.
func TestQueryRootIsFirstConstructed(t *testing.T) {
	posComp := FactoryNewComponent[Position]()
	velComp := FactoryNewComponent[Velocity]()
	healthComp := FactoryNewComponent[Health]()

	storage := Factory.NewStorage()
	for _, comps := range [][]Component{
		{posComp},
		{posComp, velComp},
		{posComp, velComp, healthComp},
	} {
		if _, err := storage.NewOrExistingArchetype(comps...); err != nil {
			t.Fatalf("NewOrExistingArchetype() error = %v", err)
		}
	}

	q := Factory.NewQuery()
	q.And(posComp, velComp) // first node built: this is the root
	q.Or(healthComp)        // built later, not nested: no effect on q.Evaluate

	matches := 0
	for arch := range storage.ArchetypesMatching() {
		if q.Evaluate(arch, storage) {
			matches++
		}
	}
	if matches != 2 {
		t.Errorf("Evaluate() matched %d archetypes, want 2 (the And root alone)", matches)
	}
}

func TestArchetypesMatching(t *testing.T) {
	posComp := FactoryNewComponent[Position]()
	velComp := FactoryNewComponent[Velocity]()
	healthComp := FactoryNewComponent[Health]()

	storage := Factory.NewStorage()
	storage.Spawn(posComp.With(Position{}))
	storage.Spawn(posComp.With(Position{}), velComp.With(Velocity{}))

	countMatching := func(comps ...Component) int {
		count := 0
		for range storage.ArchetypesMatching(comps...) {
			count++
		}
		return count
	}

	if got := countMatching(); got != 2 {
		t.Errorf("ArchetypesMatching() = %d archetypes, want 2", got)
	}
	if got := countMatching(posComp); got != 2 {
		t.Errorf("ArchetypesMatching(pos) = %d archetypes, want 2", got)
	}
	if got := countMatching(posComp, velComp); got != 1 {
		t.Errorf("ArchetypesMatching(pos, vel) = %d archetypes, want 1", got)
	}
	if got := countMatching(healthComp); got != 0 {
		t.Errorf("ArchetypesMatching(health) = %d archetypes, want 0", got)
	}

	// New archetypes show up on the next call despite the match cache
	storage.Spawn(posComp.With(Position{}), healthComp.With(Health{}))
	if got := countMatching(posComp); got != 3 {
		t.Errorf("ArchetypesMatching(pos) after new archetype = %d, want 3", got)
	}
	if got := countMatching(healthComp); got != 1 {
		t.Errorf("ArchetypesMatching(health) after new archetype = %d, want 1", got)
	}
}

func TestMatchCacheReusesEntries(t *testing.T) {
	sto := newStorage().(*storage)
	posComp := FactoryNewComponent[Position]()

	sto.Spawn(posComp.With(Position{}))

	computed := 0
	var required = sto.archetypes.asSlice[0].mask
	for i := 0; i < 3; i++ {
		sto.matches.lookup(required, func() []archetypeID {
			computed++
			return []archetypeID{1}
		})
	}
	if computed != 1 {
		t.Errorf("compute ran %d times for an unchanged storage, want 1", computed)
	}

	sto.matches.invalidate()
	sto.matches.lookup(required, func() []archetypeID {
		computed++
		return []archetypeID{1}
	})
	if computed != 2 {
		t.Errorf("compute ran %d times after invalidation, want 2", computed)
	}
}
