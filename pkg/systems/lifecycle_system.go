package systems

import (
	"github.com/gonewx/ember/pkg/components"
	"github.com/gonewx/ember/pkg/ecs"
)

// LifecycleSystem retires one-shot spawners: an entity tagged
// OneShotDespawn is marked for removal once it is inactive and its store
// has drained. The entity manager sweep happens at the host loop's chosen
// point in the frame, not here.
type LifecycleSystem struct {
	EntityManager *ecs.EntityManager
}

// NewLifecycleSystem creates the retirement check over an entity manager.
func NewLifecycleSystem(em *ecs.EntityManager) *LifecycleSystem {
	return &LifecycleSystem{EntityManager: em}
}

// Update marks every drained one-shot spawner for removal.
func (ls *LifecycleSystem) Update() {
	for _, id := range ecs.GetEntitiesWith3[*components.ParticleStore, *components.SpawnerState, *components.OneShot](ls.EntityManager) {
		oneShot, _ := ecs.GetComponent[*components.OneShot](ls.EntityManager, id)
		if oneShot.Mode != components.OneShotDespawn {
			continue
		}
		state, _ := ecs.GetComponent[*components.SpawnerState](ls.EntityManager, id)
		store, _ := ecs.GetComponent[*components.ParticleStore](ls.EntityManager, id)
		if !state.Active && store.IsEmpty() {
			ls.EntityManager.DestroyEntity(id)
		}
	}
}
