package components

import (
	"math"

	"github.com/gonewx/ember/internal/vmath"
)

// Transform is the spawner's world pose as read from the host scene graph.
// The core only reads it; a transform system outside the core writes it.
type Transform struct {
	Position vmath.Vec3
	// Rotation is radians about the Z axis.
	Rotation float64
}

// Right returns the spawner's local rightward axis projected to 2D, used
// to rotate sampled emission directions into world space.
func (t *Transform) Right() vmath.Vec2 {
	return vmath.Vec2{X: math.Cos(t.Rotation), Y: math.Sin(t.Rotation)}
}

// Bounds is the estimated axis-aligned bounding box of a spawner's live
// particles, produced for visibility culling. Present only once the
// spawner has had a non-empty store.
type Bounds struct {
	Box vmath.AABB
}

// NoAutoBounds opts a spawner out of automatic bounds estimation.
type NoAutoBounds struct{}
