package effect

import (
	"fmt"
)

// ShapeKind identifies an emission shape variant.
type ShapeKind string

const (
	// ShapePoint emits every particle at the spawner position.
	ShapePoint ShapeKind = "point"
	// ShapeCircle emits particles inside a disc around the spawner.
	ShapeCircle ShapeKind = "circle"
)

// EmissionShape selects where newly spawned particles are placed relative
// to the spawner. Radius is only meaningful for ShapeCircle.
type EmissionShape struct {
	Kind   ShapeKind `yaml:"kind"`
	Radius float64   `yaml:"radius,omitempty"`
}

// MinLifetime is the smallest particle duration an effect may sample.
// A zero or negative lifetime would make the normalized age non-finite,
// so sampled durations are clamped to this floor.
const MinLifetime = 1e-3

// Definition is the immutable template describing one kind of particle
// effect. A Definition is shared by reference across every spawner using
// it; spawners mutate only their own copy-on-attach Instance snapshot.
//
// Optional fields are pointers: a nil field degenerates to the zero value
// at spawn time, and a nil curve leaves the attribute at its spawn-sampled
// value for the whole particle lifetime.
type Definition struct {
	// SpawnRate is the time in seconds between spawn bursts. Zero means
	// a burst fires every tick.
	SpawnRate float64 `yaml:"spawnRate"`
	// SpawnAmount is the number of particles emitted per burst.
	SpawnAmount int `yaml:"spawnAmount"`

	EmissionShape EmissionShape `yaml:"emissionShape"`

	Direction           *RvalVec2  `yaml:"direction,omitempty"`
	LinearSpeed         *Rval      `yaml:"linearSpeed,omitempty"`
	AngularSpeed        *Rval      `yaml:"angularSpeed,omitempty"`
	Scale               *Rval      `yaml:"scale,omitempty"`
	Lifetime            Rval       `yaml:"lifetime"`
	GravityDirection    *RvalVec2  `yaml:"gravityDirection,omitempty"`
	GravitySpeed        *Rval      `yaml:"gravitySpeed,omitempty"`
	LinearDamp          *Rval      `yaml:"linearDamp,omitempty"`
	AngularDamp         *Rval      `yaml:"angularDamp,omitempty"`
	LinearAcceleration  *Rval      `yaml:"linearAcceleration,omitempty"`
	AngularAcceleration *Rval      `yaml:"angularAcceleration,omitempty"`
	Color               *RvalColor `yaml:"color,omitempty"`

	ScaleCurve *Curve      `yaml:"scaleCurve,omitempty"`
	ColorCurve *ColorCurve `yaml:"colorCurve,omitempty"`
}

// Validate checks template invariants and normalizes curve ordering.
func (d *Definition) Validate() error {
	if d.SpawnRate < 0 {
		return fmt.Errorf("effect: spawnRate must be >= 0, got %v", d.SpawnRate)
	}
	if d.SpawnAmount < 0 {
		return fmt.Errorf("effect: spawnAmount must be >= 0, got %d", d.SpawnAmount)
	}
	switch d.EmissionShape.Kind {
	case "", ShapePoint, ShapeCircle:
	default:
		return fmt.Errorf("effect: unknown emission shape %q", d.EmissionShape.Kind)
	}
	d.ScaleCurve.Normalize()
	d.ColorCurve.Normalize()
	return nil
}

// Clone returns a deep copy of the definition. Spawners attach a clone so
// runtime edits never leak back into the shared template or into sibling
// spawners.
func (d *Definition) Clone() *Definition {
	out := *d

	out.Direction = cloneRvalVec2(d.Direction)
	out.LinearSpeed = cloneRval(d.LinearSpeed)
	out.AngularSpeed = cloneRval(d.AngularSpeed)
	out.Scale = cloneRval(d.Scale)
	out.GravityDirection = cloneRvalVec2(d.GravityDirection)
	out.GravitySpeed = cloneRval(d.GravitySpeed)
	out.LinearDamp = cloneRval(d.LinearDamp)
	out.AngularDamp = cloneRval(d.AngularDamp)
	out.LinearAcceleration = cloneRval(d.LinearAcceleration)
	out.AngularAcceleration = cloneRval(d.AngularAcceleration)
	out.Color = cloneRvalColor(d.Color)

	if d.ScaleCurve != nil {
		c := Curve{Points: append([]Keyframe(nil), d.ScaleCurve.Points...)}
		out.ScaleCurve = &c
	}
	if d.ColorCurve != nil {
		c := ColorCurve{Points: append([]ColorKeyframe(nil), d.ColorCurve.Points...)}
		out.ColorCurve = &c
	}
	return &out
}

func cloneRval(r *Rval) *Rval {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

func cloneRvalVec2(r *RvalVec2) *RvalVec2 {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

func cloneRvalColor(r *RvalColor) *RvalColor {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}
