package gesture

import (
	"github.com/lixenwraith/card-deck/vmath"
)

// Direction is the discrete outcome of a drag
type Direction uint8

const (
	None Direction = iota
	Left
	Top
	Right
	Bottom
)

// Resting tilt of a committed card, degrees
const restingTilt = 10.0

// String returns the lowercase label
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	default:
		return "none"
	}
}

// ParseDirection maps a label back to a Direction, unknown labels are None
func ParseDirection(s string) Direction {
	switch s {
	case "left":
		return Left
	case "top":
		return Top
	case "right":
		return Right
	case "bottom":
		return Bottom
	default:
		return None
	}
}

// Destination returns the off-screen offset a committed card travels to
// bounds is the viewport size; cards travel two viewports away so they fully leave the screen
func (d Direction) Destination(bounds vmath.Vec2) vmath.Vec2 {
	switch d {
	case Left:
		return vmath.V2(-bounds.X*2, 0)
	case Top:
		return vmath.V2(0, -bounds.Y*2)
	case Right:
		return vmath.V2(bounds.X*2, 0)
	case Bottom:
		return vmath.V2(0, bounds.Y*2)
	default:
		return vmath.Zero2
	}
}

// RestingAngle returns the rotation in degrees a committed card settles at
func (d Direction) RestingAngle() float64 {
	switch d {
	case Left:
		return -restingTilt
	case Right:
		return restingTilt
	default:
		return 0
	}
}

// AllowedDirections is a bit set over the four committing directions
type AllowedDirections uint8

const (
	AllowLeft   AllowedDirections = 1 << Left
	AllowTop    AllowedDirections = 1 << Top
	AllowRight  AllowedDirections = 1 << Right
	AllowBottom AllowedDirections = 1 << Bottom

	AllowVertical   = AllowTop | AllowBottom
	AllowHorizontal = AllowLeft | AllowRight
	AllowAll        = AllowVertical | AllowHorizontal
)

// Contains reports whether d may be committed, None is never allowed
func (a AllowedDirections) Contains(d Direction) bool {
	if d == None || d > Bottom {
		return false
	}
	return a&(1<<d) != 0
}

// ParseAllowed builds a set from labels, accepting the union names
// "vertical", "horizontal" and "all"; unknown labels are skipped
func ParseAllowed(labels []string) AllowedDirections {
	var a AllowedDirections
	for _, l := range labels {
		switch l {
		case "vertical":
			a |= AllowVertical
		case "horizontal":
			a |= AllowHorizontal
		case "all":
			a |= AllowAll
		default:
			if d := ParseDirection(l); d != None {
				a |= 1 << d
			}
		}
	}
	return a
}
