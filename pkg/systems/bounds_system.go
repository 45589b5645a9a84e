package systems

import (
	"github.com/gonewx/ember/internal/vmath"
	"github.com/gonewx/ember/pkg/components"
	"github.com/gonewx/ember/pkg/ecs"
)

// BoundsSystem estimates an axis-aligned bounding box per spawner for
// visibility culling. Large stores are sampled with a stride rather than
// walked exhaustively, so the box is a heuristic: it may under- or
// overestimate the true extent for non-uniform distributions.
type BoundsSystem struct {
	EntityManager *ecs.EntityManager
}

// NewBoundsSystem creates a bounds estimator over an entity manager.
func NewBoundsSystem(em *ecs.EntityManager) *BoundsSystem {
	return &BoundsSystem{EntityManager: em}
}

// Update recomputes bounds for every spawner not opted out via
// NoAutoBounds. Spawners with empty stores are skipped and receive no
// bounds component.
func (bs *BoundsSystem) Update() {
	for _, id := range ecs.GetEntitiesWith[*components.ParticleStore](bs.EntityManager) {
		if ecs.HasComponent[*components.NoAutoBounds](bs.EntityManager, id) {
			continue
		}
		store, ok := ecs.GetComponent[*components.ParticleStore](bs.EntityManager, id)
		if !ok || store.IsEmpty() {
			continue
		}

		// Sample every accuracy-th particle; O(n/accuracy) on big stores.
		accuracy := store.Len() / 1000
		if accuracy < 1 {
			accuracy = 1
		} else if accuracy > 10 {
			accuracy = 10
		}

		// The fold is seeded at the origin, so the box always contains
		// (0,0) in addition to the sampled spawn positions.
		var min, max vmath.Vec2
		for i := range store.Entries {
			if i%accuracy != 0 {
				continue
			}
			pos := store.Entries[i].Particle.StartPos
			if pos.X < min.X {
				min.X = pos.X
			}
			if pos.Y < min.Y {
				min.Y = pos.Y
			}
			if pos.X > max.X {
				max.X = pos.X
			}
			if pos.Y > max.Y {
				max.Y = pos.Y
			}
		}

		bs.EntityManager.AddComponent(id, &components.Bounds{
			Box: vmath.AABB{Min: min.Extend(0), Max: max.Extend(0)},
		})
	}
}
