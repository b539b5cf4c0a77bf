package gesture

import (
	"github.com/lixenwraith/card-deck/vmath"
)

// State is an immutable snapshot of one drag frame for card ID
type State[ID comparable] struct {
	ID        ID
	Direction Direction
	// Progress is derived from the actual translation, [0,1]
	Progress float64
	// EstimateProgress is derived from the predicted end translation, [0,1]
	EstimateProgress float64
	Translation      vmath.Vec2
	Offset           vmath.Vec2
	// Angle is the visual tilt in degrees
	Angle float64
	// Tracking is true for in-flight updates and false for the release frame
	Tracking bool
}

// IsJudged reports whether either progress measure reached the threshold
func (s State[ID]) IsJudged() bool {
	return s.Progress == 1 || s.EstimateProgress == 1
}
