// Package vmath provides the small float64 vector types used by the
// particle simulation core.
package vmath

import "math"

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float64
}

// Vec4 packs four scalars. The particle core uses it to carry linear
// velocity in XYZ and angular velocity in W.
type Vec4 struct {
	X, Y, Z, W float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// NormalizeOrZero returns the unit vector, or the zero vector when the
// length is too small to normalize safely.
func (v Vec2) NormalizeOrZero() Vec2 {
	l := v.Length()
	if l < 1e-12 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Rotate treats o as a unit complex number and rotates v by it.
func (v Vec2) Rotate(o Vec2) Vec2 {
	return Vec2{
		X: v.X*o.X - v.Y*o.Y,
		Y: v.X*o.Y + v.Y*o.X,
	}
}

// Extend lifts a 2D vector into 3D with the given z.
func (v Vec2) Extend(z float64) Vec3 {
	return Vec3{v.X, v.Y, z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// XY drops the z component.
func (v Vec3) XY() Vec2 {
	return Vec2{v.X, v.Y}
}

// XYZ returns the first three components as a Vec3.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// Lerp interpolates component-wise between v and o.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{
		X: v.X + (o.X-v.X)*t,
		Y: v.Y + (o.Y-v.Y)*t,
		Z: v.Z + (o.Z-v.Z)*t,
	}
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max Vec3
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
