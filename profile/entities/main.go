// Profiling:
//	go build ./profile/entities
//	go tool pprof -http=":8000" ./entities cpu.pprof
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

const entityCount = 100_000

func main() {
	defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()

	storage := scrapyard.Factory.NewStorage()
	pos := scrapyard.FactoryNewComponent[position]()
	vel := scrapyard.FactoryNewComponent[velocity]()

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

	// Despawn in spawn order so every removal displaces a row
	for _, e := range entities {
		if err := storage.Despawn(e); err != nil {
			panic(err)
		}
	}
}
