package vmath

import (
	"math"
)

// Vec2 is a float64 2D vector in screen units, +X right and +Y down
type Vec2 struct {
	X, Y float64
}

// Zero2 is the neutral offset
var Zero2 = Vec2{}

func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func V2Add(a, b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func V2Sub(a, b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func V2Scale(v Vec2, s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// V2Abs returns the component-wise absolute value
func V2Abs(v Vec2) Vec2 {
	return Vec2{math.Abs(v.X), math.Abs(v.Y)}
}

// V2MaxAxis returns the larger absolute component (Chebyshev length)
// Drag progress is measured on the dominant axis only
func V2MaxAxis(v Vec2) float64 {
	return math.Max(math.Abs(v.X), math.Abs(v.Y))
}

// V2IsZero reports exact zero, used for neutral-state checks
func V2IsZero(v Vec2) bool {
	return v.X == 0 && v.Y == 0
}

// Clamp restricts v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
