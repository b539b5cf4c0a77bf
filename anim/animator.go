package anim

import (
	"math"
	"time"

	"github.com/lixenwraith/card-deck/vmath"
)

const (
	// Integration substep, seconds
	substep = 1.0 / 240.0
	// Position and velocity magnitude below which a channel is at rest
	settleEpsilon = 0.05
)

// channel is one scalar under spring motion
type channel struct {
	pos, vel, target float64
}

func (c *channel) step(k, f, dt float64) {
	// Semi-implicit Euler, stable for the stiffness range of the presets
	acc := -k*(c.pos-c.target) - f*c.vel
	c.vel += acc * dt
	c.pos += c.vel * dt
}

func (c *channel) settled() bool {
	return math.Abs(c.pos-c.target) < settleEpsilon && math.Abs(c.vel) < settleEpsilon
}

type track struct {
	x, y, a channel
	spring  Spring
	age     float64
}

func (t *track) pose() Pose {
	return Pose{Offset: vmath.V2(t.x.pos, t.y.pos), Angle: t.a.pos}
}

// Animator is a frame-stepped spring Driver
// It keeps the presented pose of every card it has seen; cards it never
// animated are presented at their model pose by the caller
// Not safe for concurrent use
type Animator[ID comparable] struct {
	tracks    map[ID]*track
	presented map[ID]Pose
}

// NewAnimator creates an idle animator
func NewAnimator[ID comparable]() *Animator[ID] {
	return &Animator[ID]{
		tracks:    make(map[ID]*track),
		presented: make(map[ID]Pose),
	}
}

// Animate starts a spring from the current presented pose toward req.Target
func (an *Animator[ID]) Animate(req Request[ID]) {
	from := an.presented[req.ID]
	t, ok := an.tracks[req.ID]
	if !ok {
		t = &track{
			x: channel{pos: from.Offset.X},
			y: channel{pos: from.Offset.Y},
			a: channel{pos: from.Angle},
		}
		an.tracks[req.ID] = t
	} else if t.age >= req.Curve.Spring.Blend {
		// Outside the blend window the new spring starts from rest
		t.x.vel, t.y.vel, t.a.vel = 0, 0, 0
	}
	t.x.target = req.Target.Offset.X
	t.y.target = req.Target.Offset.Y
	t.a.target = req.Target.Angle
	t.spring = req.Curve.Spring
	t.age = 0

	if math.IsInf(t.spring.Stiffness(), 1) {
		an.finish(req.ID, t)
	}
}

// Jump presents pose immediately and drops any in-flight spring
func (an *Animator[ID]) Jump(id ID, pose Pose) {
	delete(an.tracks, id)
	an.presented[id] = pose
}

// Forget drops all state for id
func (an *Animator[ID]) Forget(id ID) {
	delete(an.tracks, id)
	delete(an.presented, id)
}

// Step advances all springs by dt and reports whether any are still moving
func (an *Animator[ID]) Step(dt time.Duration) bool {
	remaining := dt.Seconds()
	for remaining > 0 && len(an.tracks) > 0 {
		h := math.Min(substep, remaining)
		remaining -= h
		for id, t := range an.tracks {
			k, f := t.spring.Stiffness(), t.spring.Friction()
			t.x.step(k, f, h)
			t.y.step(k, f, h)
			t.a.step(k, f, h)
			t.age += h
			if t.x.settled() && t.y.settled() && t.a.settled() {
				an.finish(id, t)
				continue
			}
			an.presented[id] = t.pose()
		}
	}
	return len(an.tracks) > 0
}

// Presented returns the on-screen pose of id, ok=false when the animator has
// never seen it
func (an *Animator[ID]) Presented(id ID) (Pose, bool) {
	p, ok := an.presented[id]
	return p, ok
}

// Animating reports whether id has an in-flight spring
func (an *Animator[ID]) Animating(id ID) bool {
	_, ok := an.tracks[id]
	return ok
}

// Active returns the number of in-flight springs
func (an *Animator[ID]) Active() int {
	return len(an.tracks)
}

func (an *Animator[ID]) finish(id ID, t *track) {
	an.presented[id] = Pose{Offset: vmath.V2(t.x.target, t.y.target), Angle: t.a.target}
	delete(an.tracks, id)
}
