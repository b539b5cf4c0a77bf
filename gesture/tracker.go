package gesture

import (
	"time"

	"github.com/lixenwraith/card-deck/vmath"
)

const (
	// DefaultVelocityWindow bounds the samples used for the velocity estimate
	DefaultVelocityWindow = 100 * time.Millisecond
	// DefaultDeceleration is how long the released card keeps its velocity
	DefaultDeceleration = 250 * time.Millisecond

	maxSamples = 16
)

type sample struct {
	at time.Time
	t  vmath.Vec2
}

// Tracker accumulates one drag's translation samples and predicts where
// momentum would carry the card after release
// Not safe for concurrent use
type Tracker struct {
	Window       time.Duration
	Deceleration time.Duration

	origin  vmath.Vec2
	active  bool
	samples []sample
}

// NewTracker creates a tracker with default windows
func NewTracker() *Tracker {
	return &Tracker{
		Window:       DefaultVelocityWindow,
		Deceleration: DefaultDeceleration,
		samples:      make([]sample, 0, maxSamples),
	}
}

// Begin starts a drag at pointer position p
func (tr *Tracker) Begin(p vmath.Vec2, at time.Time) {
	tr.origin = p
	tr.active = true
	tr.samples = tr.samples[:0]
	tr.samples = append(tr.samples, sample{at: at, t: vmath.Zero2})
}

// Active reports whether a drag is in progress
func (tr *Tracker) Active() bool {
	return tr.active
}

// Move records pointer position p and returns the translation since Begin
// and the predicted end translation
func (tr *Tracker) Move(p vmath.Vec2, at time.Time) (translation, predicted vmath.Vec2) {
	if !tr.active {
		return vmath.Zero2, vmath.Zero2
	}
	translation = vmath.V2Sub(p, tr.origin)

	if len(tr.samples) == maxSamples {
		copy(tr.samples, tr.samples[1:])
		tr.samples = tr.samples[:maxSamples-1]
	}
	tr.samples = append(tr.samples, sample{at: at, t: translation})

	return translation, tr.predict(translation, at)
}

// End finishes the drag at p; the tracker is reusable afterwards
func (tr *Tracker) End(p vmath.Vec2, at time.Time) (translation, predicted vmath.Vec2) {
	translation, predicted = tr.Move(p, at)
	tr.active = false
	return translation, predicted
}

// Velocity returns units per second over the sampling window
func (tr *Tracker) Velocity(at time.Time) vmath.Vec2 {
	if len(tr.samples) < 2 {
		return vmath.Zero2
	}
	last := tr.samples[len(tr.samples)-1]
	first := last
	for i := len(tr.samples) - 2; i >= 0; i-- {
		if at.Sub(tr.samples[i].at) > tr.Window {
			break
		}
		first = tr.samples[i]
	}
	dt := last.at.Sub(first.at).Seconds()
	if dt <= 0 {
		return vmath.Zero2
	}
	return vmath.V2Scale(vmath.V2Sub(last.t, first.t), 1/dt)
}

func (tr *Tracker) predict(translation vmath.Vec2, at time.Time) vmath.Vec2 {
	v := tr.Velocity(at)
	return vmath.V2Add(translation, vmath.V2Scale(v, tr.Deceleration.Seconds()))
}
