package systems

import (
	"github.com/gonewx/ember/internal/effect"
	"github.com/gonewx/ember/pkg/components"
	"github.com/gonewx/ember/pkg/ecs"
)

// EffectProvider resolves shared effect definitions by handle. The
// registry in pkg/game implements it; tests substitute their own.
type EffectProvider interface {
	Effect(id string) (*effect.Definition, bool)
}

// EffectBindSystem performs copy-on-attach: a spawner that references a
// definition by handle but has no private instance yet receives a deep
// copy as soon as the provider can resolve the handle. After the copy the
// spawner never reads the shared template again.
//
// An unresolved handle is not an error; the spawner simply idles until
// the definition becomes available.
type EffectBindSystem struct {
	EntityManager *ecs.EntityManager
	Provider      EffectProvider
}

// NewEffectBindSystem creates the binder over an entity manager and an
// effect source.
func NewEffectBindSystem(em *ecs.EntityManager, provider EffectProvider) *EffectBindSystem {
	return &EffectBindSystem{EntityManager: em, Provider: provider}
}

// Update attaches instances to spawners whose handles now resolve.
func (bs *EffectBindSystem) Update() {
	if bs.Provider == nil {
		return
	}
	for _, id := range ecs.GetEntitiesWith2[*components.EffectHandle, *components.SpawnerState](bs.EntityManager) {
		if ecs.HasComponent[*components.EffectInstance](bs.EntityManager, id) {
			continue
		}
		handle, _ := ecs.GetComponent[*components.EffectHandle](bs.EntityManager, id)
		def, ok := bs.Provider.Effect(handle.ID)
		if !ok {
			continue
		}
		bs.EntityManager.AddComponent(id, &components.EffectInstance{Def: def.Clone()})
	}
}
