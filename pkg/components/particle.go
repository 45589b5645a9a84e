// Package components defines the pure-data components attached to spawner
// entities. Components carry no behavior beyond trivial accessors; the
// systems package owns all simulation logic.
package components

import (
	"github.com/gonewx/ember/internal/effect"
	"github.com/gonewx/ember/internal/vmath"
)

// Particle is the physical state of one simulated particle. Everything
// except DurationFraction, Scale and Color is fixed at spawn time: the
// render transform is recomputed each tick in closed form from the
// particle's absolute age, so no kinematic field is ever mutated by
// integration.
type Particle struct {
	StartPos  vmath.Vec3
	Direction vmath.Vec2
	Scale     float64

	// Gravity is direction times speed, precomputed once at spawn.
	Gravity vmath.Vec3

	// Duration is the sampled lifetime in seconds, always >= effect.MinLifetime.
	Duration float64
	// DurationFraction is the normalized age. It increases monotonically;
	// the particle is live while it stays below 1.
	DurationFraction float64

	// Velocity packs the initial linear velocity in XYZ and the initial
	// angular velocity in W. Damping and acceleration are applied
	// analytically and never written back here.
	Velocity vmath.Vec4

	Color effect.RGBA
	// Frame is reserved for animation-frame indexing.
	Frame uint32

	LinearAcceleration  float64
	LinearDamp          float64
	AngularAcceleration float64
	AngularDamp         float64
}

// RenderInstance is the render-ready view of one particle: pose and color
// for a single instanced draw. It is derived from its Particle every tick
// and never independently mutated.
type RenderInstance struct {
	Translation      vmath.Vec3
	Rotation         float64 // radians about the local Z axis
	Scale            float64
	Color            effect.RGBA
	Frame            uint32
	DurationFraction float64
}
