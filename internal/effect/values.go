// Package effect provides the data model for particle effect definitions:
// randomized-or-fixed values, keyframe curves, and the immutable effect
// template shared by spawner instances.
package effect

import (
	"math/rand"
	"sort"

	"github.com/gonewx/ember/internal/vmath"
)

// RGBA is a linear color with float64 channels in [0, 1].
type RGBA struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
	A float64 `yaml:"a"`
}

// White is the default particle color when an effect defines none.
var White = RGBA{R: 1, G: 1, B: 1, A: 1}

// Lerp interpolates channel-wise between c and o.
func (c RGBA) Lerp(o RGBA, t float64) RGBA {
	return RGBA{
		R: vmath.Lerp(c.R, o.R, t),
		G: vmath.Lerp(c.G, o.G, t),
		B: vmath.Lerp(c.B, o.B, t),
		A: vmath.Lerp(c.A, o.A, t),
	}
}

// Rval is a scalar that is either fixed (Min == Max) or sampled uniformly
// from [Min, Max] once per particle at spawn time.
type Rval struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Fixed returns an Rval that always samples to v.
func Fixed(v float64) Rval {
	return Rval{Min: v, Max: v}
}

// Sample draws a value from the range. A degenerate or inverted range
// collapses to Min.
func (r Rval) Sample(rng *rand.Rand) float64 {
	if r.Min >= r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// RvalVec2 is a 2D vector range sampled component-wise.
type RvalVec2 struct {
	Min vmath.Vec2 `yaml:"min"`
	Max vmath.Vec2 `yaml:"max"`
}

// FixedVec2 returns an RvalVec2 that always samples to v.
func FixedVec2(v vmath.Vec2) RvalVec2 {
	return RvalVec2{Min: v, Max: v}
}

func (r RvalVec2) Sample(rng *rand.Rand) vmath.Vec2 {
	return vmath.Vec2{
		X: Rval{Min: r.Min.X, Max: r.Max.X}.Sample(rng),
		Y: Rval{Min: r.Min.Y, Max: r.Max.Y}.Sample(rng),
	}
}

// RvalColor is a color range sampled channel-wise.
type RvalColor struct {
	Min RGBA `yaml:"min"`
	Max RGBA `yaml:"max"`
}

// FixedColor returns an RvalColor that always samples to c.
func FixedColor(c RGBA) RvalColor {
	return RvalColor{Min: c, Max: c}
}

func (r RvalColor) Sample(rng *rand.Rand) RGBA {
	return RGBA{
		R: Rval{Min: r.Min.R, Max: r.Max.R}.Sample(rng),
		G: Rval{Min: r.Min.G, Max: r.Max.G}.Sample(rng),
		B: Rval{Min: r.Min.B, Max: r.Max.B}.Sample(rng),
		A: Rval{Min: r.Min.A, Max: r.Max.A}.Sample(rng),
	}
}

// Keyframe is one point of a scalar animation curve.
type Keyframe struct {
	Time  float64 `yaml:"time"`  // normalized age in [0, 1]
	Value float64 `yaml:"value"` // value at this keyframe
}

// Curve is a scalar keyframe curve indexed by normalized particle age.
// Keyframes must be sorted by time; Normalize enforces that.
type Curve struct {
	Points []Keyframe `yaml:"points"`
}

// IsEmpty reports whether the curve has no keyframes. An empty curve is
// treated as absent so the attribute holds its spawn-sampled value.
func (c *Curve) IsEmpty() bool {
	return c == nil || len(c.Points) == 0
}

// Normalize sorts keyframes by time.
func (c *Curve) Normalize() {
	if c == nil {
		return
	}
	sort.SliceStable(c.Points, func(i, j int) bool {
		return c.Points[i].Time < c.Points[j].Time
	})
}

// Sample evaluates the curve at normalized age t with linear interpolation.
// Ages outside the keyframe range clamp to the nearest endpoint.
func (c *Curve) Sample(t float64) float64 {
	pts := c.Points
	if len(pts) == 1 {
		return pts[0].Value
	}
	t = vmath.Clamp(t, 0, 1)
	if t <= pts[0].Time {
		return pts[0].Value
	}
	for i := 0; i < len(pts)-1; i++ {
		k0, k1 := pts[i], pts[i+1]
		if t > k1.Time {
			continue
		}
		span := k1.Time - k0.Time
		if span <= 0 {
			return k0.Value
		}
		return vmath.Lerp(k0.Value, k1.Value, (t-k0.Time)/span)
	}
	return pts[len(pts)-1].Value
}

// ColorKeyframe is one point of a color animation curve.
type ColorKeyframe struct {
	Time  float64 `yaml:"time"`
	Value RGBA    `yaml:"value"`
}

// ColorCurve is a color keyframe curve indexed by normalized particle age.
type ColorCurve struct {
	Points []ColorKeyframe `yaml:"points"`
}

func (c *ColorCurve) IsEmpty() bool {
	return c == nil || len(c.Points) == 0
}

func (c *ColorCurve) Normalize() {
	if c == nil {
		return
	}
	sort.SliceStable(c.Points, func(i, j int) bool {
		return c.Points[i].Time < c.Points[j].Time
	})
}

// Sample evaluates the curve at normalized age t, clamping out-of-range
// ages to the nearest endpoint.
func (c *ColorCurve) Sample(t float64) RGBA {
	pts := c.Points
	if len(pts) == 1 {
		return pts[0].Value
	}
	t = vmath.Clamp(t, 0, 1)
	if t <= pts[0].Time {
		return pts[0].Value
	}
	for i := 0; i < len(pts)-1; i++ {
		k0, k1 := pts[i], pts[i+1]
		if t > k1.Time {
			continue
		}
		span := k1.Time - k0.Time
		if span <= 0 {
			return k0.Value
		}
		return k0.Value.Lerp(k1.Value, (t-k0.Time)/span)
	}
	return pts[len(pts)-1].Value
}
