package gesture

// Option defaults
const (
	DefaultVisibleCards = 3
	DefaultMaxRotation  = 15.0
	DefaultThreshold    = 180.0

	minThreshold    = 1.0
	minVisibleCards = 1
)

// Option configures gesture interpretation and the visible stack depth
type Option struct {
	// VisibleCards is the number of cards rendered at once
	VisibleCards int
	// MaxRotation is the tilt in degrees at full horizontal progress
	MaxRotation float64
	// Allowed gates which directions a drag may resolve to
	Allowed AllowedDirections
	// Threshold is the dominant-axis drag distance at which progress reaches 1
	Threshold float64
}

// DefaultOption returns the stock configuration
func DefaultOption() Option {
	return Option{
		VisibleCards: DefaultVisibleCards,
		MaxRotation:  DefaultMaxRotation,
		Allowed:      AllowAll,
		Threshold:    DefaultThreshold,
	}
}

// Normalize clamps Threshold and VisibleCards to their minimums
func (o Option) Normalize() Option {
	if o.Threshold < minThreshold {
		o.Threshold = minThreshold
	}
	if o.VisibleCards < minVisibleCards {
		o.VisibleCards = minVisibleCards
	}
	return o
}
