// Package entities assembles spawner entities from their components.
package entities

import (
	"github.com/gonewx/ember/internal/vmath"
	"github.com/gonewx/ember/pkg/components"
	"github.com/gonewx/ember/pkg/ecs"
)

// SpawnerOption customizes a spawner entity at creation time.
type SpawnerOption func(em *ecs.EntityManager, id ecs.EntityID)

// WithMaxParticles caps the spawner's store size.
func WithMaxParticles(max int) SpawnerOption {
	return func(em *ecs.EntityManager, id ecs.EntityID) {
		state, _ := ecs.GetComponent[*components.SpawnerState](em, id)
		state.MaxParticles = max
	}
}

// WithOneShot tags the spawner to fire a single burst.
func WithOneShot(mode components.OneShotMode) SpawnerOption {
	return func(em *ecs.EntityManager, id ecs.EntityID) {
		em.AddComponent(id, &components.OneShot{Mode: mode})
	}
}

// WithoutAutoBounds opts the spawner out of bounds estimation.
func WithoutAutoBounds() SpawnerOption {
	return func(em *ecs.EntityManager, id ecs.EntityID) {
		em.AddComponent(id, &components.NoAutoBounds{})
	}
}

// NewParticleSpawner creates a spawner entity at the given world position
// referencing an effect definition by handle. The definition itself is
// attached later by the effect bind system once the handle resolves.
func NewParticleSpawner(em *ecs.EntityManager, handle string, position vmath.Vec3, opts ...SpawnerOption) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.ParticleStore{})
	em.AddComponent(id, components.NewSpawnerState())
	em.AddComponent(id, &components.EffectHandle{ID: handle})
	em.AddComponent(id, &components.Transform{Position: position})

	for _, opt := range opts {
		opt(em, id)
	}
	return id
}
