// Package anim describes card animations as data
//
// The deck never interpolates anything itself; it hands Request values to a
// Driver and moves on. A host picks the driver: NopDriver for headless use,
// Animator for frame-stepped spring integration.
package anim

import (
	"github.com/lixenwraith/card-deck/vmath"
)

// Pose is the render-affecting state of one card
type Pose struct {
	Offset vmath.Vec2
	// Angle in degrees, positive is clockwise
	Angle float64
}

// Neutral is the resting pose of a card on the stack
var Neutral = Pose{}

// IsNeutral reports zero offset and zero angle
func (p Pose) IsNeutral() bool {
	return vmath.V2IsZero(p.Offset) && p.Angle == 0
}

// Request asks the driver to move card ID toward Target along Curve
type Request[ID comparable] struct {
	ID     ID
	Target Pose
	Curve  Curve
}

// Driver executes animation requests on behalf of the deck
// Calls arrive on the deck's owning goroutine
type Driver[ID comparable] interface {
	// Animate starts or retargets the animation of req.ID
	Animate(req Request[ID])
	// Jump sets a pose without animation, cancelling any in-flight animation
	Jump(id ID, pose Pose)
	// Forget drops all state for a card that left the deck
	Forget(id ID)
}

// NopDriver discards requests; the model pose is presented as-is
type NopDriver[ID comparable] struct{}

func (NopDriver[ID]) Animate(Request[ID]) {}
func (NopDriver[ID]) Jump(ID, Pose)       {}
func (NopDriver[ID]) Forget(ID)           {}

// Recorder keeps every request it receives, for tests and replay
type Recorder[ID comparable] struct {
	Requests []Request[ID]
	Jumps    map[ID]Pose
}

func NewRecorder[ID comparable]() *Recorder[ID] {
	return &Recorder[ID]{Jumps: make(map[ID]Pose)}
}

func (r *Recorder[ID]) Animate(req Request[ID]) {
	r.Requests = append(r.Requests, req)
}

func (r *Recorder[ID]) Jump(id ID, pose Pose) {
	r.Jumps[id] = pose
}

func (r *Recorder[ID]) Forget(id ID) {
	delete(r.Jumps, id)
}

// Last returns the most recent request, ok=false when none
func (r *Recorder[ID]) Last() (Request[ID], bool) {
	if len(r.Requests) == 0 {
		return Request[ID]{}, false
	}
	return r.Requests[len(r.Requests)-1], true
}
