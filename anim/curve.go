package anim

import (
	"math"
)

// CurveID names a timing preset so drivers can special-case them
type CurveID uint8

const (
	CurveSwipe CurveID = iota
	CurveCancel
	CurveRelease
)

func (c CurveID) String() string {
	switch c {
	case CurveSwipe:
		return "swipe"
	case CurveCancel:
		return "cancel"
	case CurveRelease:
		return "release"
	default:
		return "unknown"
	}
}

// Spring parameters in the response/damping-fraction form
// Response is the period in seconds of the undamped oscillation
// Damping is the damping ratio, 1 is critical
// Blend is the seconds over which a retargeted spring keeps prior velocity
type Spring struct {
	Response float64
	Damping  float64
	Blend    float64
}

// Stiffness returns k for unit mass
func (s Spring) Stiffness() float64 {
	if s.Response <= 0 {
		return math.Inf(1)
	}
	w := 2 * math.Pi / s.Response
	return w * w
}

// Friction returns c for unit mass
func (s Spring) Friction() float64 {
	if s.Response <= 0 {
		return 0
	}
	return 4 * math.Pi * s.Damping / s.Response
}

// Curve is a named spring
type Curve struct {
	ID     CurveID
	Spring Spring
}

// Presets
var (
	// Swipe carries a committed card off-screen
	Swipe = Curve{ID: CurveSwipe, Spring: Spring{Response: 0.6, Damping: 0.67, Blend: 0.8}}
	// Cancel returns a card to neutral after cancel/reject/back
	Cancel = Curve{ID: CurveCancel, Spring: Spring{Response: 0.32, Damping: 0.67, Blend: 0.8}}
	// Release snaps back a drag that resolved to no direction
	Release = Curve{ID: CurveRelease, Spring: Spring{Response: 0.3, Damping: 0.65, Blend: 0.8}}
)
