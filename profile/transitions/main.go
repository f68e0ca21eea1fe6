// Profiling:
//	go build ./profile/transitions
//	go tool pprof -http=":8000" ./transitions mem.pprof
package main

import (
	"github.com/pkg/profile"
	scrapyard "github.com/rust-tutorials/entity-component-scrapyard"
)

type position struct {
	X, Y float64
}

type velocity struct {
	X, Y float64
}

type health struct {
	Current, Max int
}

const (
	entityCount = 10_000
	rounds      = 10
)

func main() {
	defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()

	storage := scrapyard.Factory.NewStorage()
	pos := scrapyard.FactoryNewComponent[position]()
	vel := scrapyard.FactoryNewComponent[velocity]()
	hp := scrapyard.FactoryNewComponent[health]()

	entities := make([]scrapyard.Entity, 0, entityCount)
	for i := 0; i < entityCount; i++ {
		e, err := storage.Spawn(
			pos.With(position{X: float64(i)}),
			vel.With(velocity{X: 1}),
		)
		if err != nil {
			panic(err)
		}
		entities = append(entities, e)
	}

	// Bounce every entity between {position, velocity} and
	// {position, velocity, health}
	for r := 0; r < rounds; r++ {
		for _, e := range entities {
			if err := hp.AddToEntity(storage, e, health{Current: r, Max: rounds}); err != nil {
				panic(err)
			}
		}
		for _, e := range entities {
			if _, err := hp.RemoveFromEntity(storage, e); err != nil {
				panic(err)
			}
		}
	}
}
