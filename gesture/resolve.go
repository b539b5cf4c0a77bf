package gesture

import (
	"math"

	"github.com/lixenwraith/card-deck/vmath"
)

// Classify maps a translation to its dominant-axis direction
// Exact ties, including the zero vector, are None
func Classify(t vmath.Vec2) Direction {
	ax, ay := math.Abs(t.X), math.Abs(t.Y)
	switch {
	case ay > ax && t.Y < 0:
		return Top
	case ay > ax && t.Y > 0:
		return Bottom
	case ax > ay && t.X > 0:
		return Right
	case ax > ay && t.X < 0:
		return Left
	default:
		return None
	}
}

// Progress returns the dominant-axis distance over threshold, capped at 1
func Progress(t vmath.Vec2, threshold float64) float64 {
	if threshold < minThreshold {
		threshold = minThreshold
	}
	return math.Min(vmath.V2MaxAxis(t)/threshold, 1.0)
}

// Tilt returns the rotation in degrees, driven by the horizontal component only
func Tilt(t vmath.Vec2, opt Option) float64 {
	opt = opt.Normalize()
	return vmath.Clamp(t.X/opt.Threshold, -1, 1) * opt.MaxRotation
}

// Resolve builds the gesture snapshot for card id
// Directions outside opt.Allowed are forced to None
func Resolve[ID comparable](id ID, translation, predicted vmath.Vec2, opt Option, tracking bool) State[ID] {
	opt = opt.Normalize()

	dir := Classify(translation)
	if !opt.Allowed.Contains(dir) {
		dir = None
	}

	return State[ID]{
		ID:               id,
		Direction:        dir,
		Progress:         Progress(translation, opt.Threshold),
		EstimateProgress: Progress(predicted, opt.Threshold),
		Translation:      translation,
		Offset:           translation,
		Angle:            Tilt(translation, opt),
		Tracking:         tracking,
	}
}
