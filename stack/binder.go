package stack

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/card-deck/anim"
	"github.com/lixenwraith/card-deck/deck"
	"github.com/lixenwraith/card-deck/gesture"
	"github.com/lixenwraith/card-deck/scheduler"
	"github.com/lixenwraith/card-deck/status"
	"github.com/lixenwraith/card-deck/vmath"
)

// RejectDelay is how long a vetoed commit stays off-screen before returning
const RejectDelay = 300 * time.Millisecond

const maxHistory = 256

// Metric keys published by the binder
const (
	MetricGestures = "binder.gestures"
	MetricAborted  = "binder.aborted"
	MetricRefused  = "binder.refused"
	MetricProgress = "binder.progress"
)

// Model is the deck surface a Binder drives
type Model[ID comparable] interface {
	Target() (ID, bool)
	Contains(id ID) bool
	IsJudged(id ID) bool
	Previous(id ID) (ID, bool)
	Generation() uint64

	Activate(id ID) bool
	Deactivate(id ID)
	Active() (ID, bool)
	SetVisualDirect(id ID, pose deck.Visual) bool
	Animate(id ID, pose deck.Visual, curve anim.Curve)

	Swipe(dir gesture.Direction, id ID)
	Cancel(id ID)
	Reject(id ID)
	Back(id ID)
}

// BinderConfig wires a Binder; the zero value is usable
type BinderConfig[ID comparable] struct {
	Option gesture.Option
	// OnChange receives every tracked gesture state
	OnChange func(state gesture.State[ID])
	// Strategy decides gesture ends with a direction, nil selects DefaultPolicy
	Strategy EndStrategy[ID]
	// Scheduler runs deferred rejects, nil rejects immediately
	Scheduler   *scheduler.Scheduler
	RejectDelay time.Duration
	Status      *status.Registry
	Logger      *slog.Logger
}

// Binder connects gesture input to a deck
// Only the target card accepts gestures, one at a time
type Binder[ID comparable] struct {
	model       Model[ID]
	opt         gesture.Option
	onChange    func(state gesture.State[ID])
	strategy    EndStrategy[ID]
	sched       *scheduler.Scheduler
	rejectDelay time.Duration
	log         *slog.Logger

	// commits made through the binder, most recent last
	history []ID

	gestures *atomic.Int64
	aborted  *atomic.Int64
	refused  *atomic.Int64
	progress *status.AtomicFloat
}

// NewBinder creates a binder over model
func NewBinder[ID comparable](model Model[ID], cfg BinderConfig[ID]) *Binder[ID] {
	opt := cfg.Option
	if opt == (gesture.Option{}) {
		opt = gesture.DefaultOption()
	}
	b := &Binder[ID]{
		model:       model,
		opt:         opt.Normalize(),
		onChange:    cfg.OnChange,
		strategy:    cfg.Strategy,
		sched:       cfg.Scheduler,
		rejectDelay: cfg.RejectDelay,
		log:         cfg.Logger,
	}
	if b.strategy == nil {
		b.strategy = DefaultPolicy[ID]{}
	}
	if b.rejectDelay <= 0 {
		b.rejectDelay = RejectDelay
	}
	if b.log == nil {
		b.log = slog.New(slog.DiscardHandler)
	}
	reg := cfg.Status
	if reg == nil {
		reg = status.NewRegistry()
	}
	b.gestures = reg.Ints.Get(MetricGestures)
	b.aborted = reg.Ints.Get(MetricAborted)
	b.refused = reg.Ints.Get(MetricRefused)
	b.progress = reg.Floats.Get(MetricProgress)
	return b
}

// Option returns the normalized gesture options
func (b *Binder[ID]) Option() gesture.Option {
	return b.opt
}

// SetStrategy replaces the end strategy, nil selects DefaultPolicy
func (b *Binder[ID]) SetStrategy(s EndStrategy[ID]) {
	if s == nil {
		s = DefaultPolicy[ID]{}
	}
	b.strategy = s
}

// Begin starts a gesture on id; refused unless id is the target and no
// other gesture is in progress
func (b *Binder[ID]) Begin(id ID) bool {
	target, ok := b.model.Target()
	if !ok || target != id || !b.model.Activate(id) {
		b.refused.Add(1)
		return false
	}
	b.gestures.Add(1)
	return true
}

// Update tracks the finger: the card follows translation 1:1 and the
// resolved state is reported through OnChange
func (b *Binder[ID]) Update(id ID, translation, predicted vmath.Vec2) (gesture.State[ID], bool) {
	if !b.isActive(id) {
		return gesture.State[ID]{}, false
	}
	state := gesture.Resolve(id, translation, predicted, b.opt, true)
	b.model.SetVisualDirect(id, deck.Visual{Offset: state.Offset, Angle: state.Angle})
	b.progress.Set(max(state.Progress, state.EstimateProgress))
	if b.onChange != nil {
		b.onChange(state)
	}
	return state, true
}

// End releases the gesture
// Without a direction, or when id stopped being the target mid-drag, the card
// springs back and nothing is committed; otherwise the strategy settles the outcome
func (b *Binder[ID]) End(id ID, translation, predicted vmath.Vec2) (gesture.State[ID], bool) {
	if !b.isActive(id) {
		return gesture.State[ID]{}, false
	}
	b.model.Deactivate(id)
	state := gesture.Resolve(id, translation, predicted, b.opt, false)
	b.progress.Set(0)
	if b.onChange != nil {
		b.onChange(state)
	}

	// A deferred reject may have moved the target while the finger was down
	if target, ok := b.model.Target(); !ok || target != id || state.Direction == gesture.None {
		b.aborted.Add(1)
		b.model.Animate(id, anim.Neutral, anim.Release)
		return state, true
	}

	b.log.Debug("gesture end",
		"id", id,
		"direction", state.Direction.String(),
		"progress", state.Progress,
		"estimate", state.EstimateProgress,
	)
	dir := state.Direction
	b.strategy.OnEnd(state, newCompletion(
		func() { b.swipe(dir, id) },
		func() { b.model.Cancel(id) },
	))
	return state, true
}

// Abort drops an in-progress gesture, e.g. when input is lost, and springs the card back
func (b *Binder[ID]) Abort(id ID) {
	if !b.isActive(id) {
		return
	}
	b.model.Deactivate(id)
	b.progress.Set(0)
	b.aborted.Add(1)
	b.model.Animate(id, anim.Neutral, anim.Release)
}

// RejectLater returns id after RejectDelay unless the deck moved on
// The task is dropped when another transition happened in between or id left the deck
func (b *Binder[ID]) RejectLater(id ID) {
	if b.sched == nil {
		b.reject(id)
		return
	}
	gen := b.model.Generation()
	b.sched.AfterGuarded(b.rejectDelay,
		func() bool { return b.model.Generation() == gen && b.model.Contains(id) },
		func() { b.reject(id) },
	)
	b.log.Debug("reject scheduled", "id", id, "delay", b.rejectDelay)
}

// Commit swipes the target in dir without a gesture, as a button would
func (b *Binder[ID]) Commit(dir gesture.Direction) bool {
	target, ok := b.model.Target()
	if !ok || dir == gesture.None || !b.opt.Allowed.Contains(dir) || b.model.IsJudged(target) {
		return false
	}
	if _, busy := b.model.Active(); busy {
		return false
	}
	b.swipe(dir, target)
	return true
}

// Undo backs the most recent commit made through the binder that is still
// judged; without one it falls back to the target or the card before it
func (b *Binder[ID]) Undo() bool {
	for len(b.history) > 0 {
		id := b.history[len(b.history)-1]
		b.history = b.history[:len(b.history)-1]
		if b.model.Contains(id) && b.model.IsJudged(id) {
			b.model.Back(id)
			return true
		}
	}

	target, ok := b.model.Target()
	if !ok {
		return false
	}
	id := target
	if !b.model.IsJudged(target) {
		prev, ok := b.model.Previous(target)
		if !ok || !b.model.IsJudged(prev) {
			return false
		}
		id = prev
	}
	b.model.Back(id)
	return true
}

func (b *Binder[ID]) swipe(dir gesture.Direction, id ID) {
	if len(b.history) == maxHistory {
		b.history = append(b.history[:0], b.history[1:]...)
	}
	b.history = append(b.history, id)
	b.model.Swipe(dir, id)
}

// reject returns id, first snapping back any gesture still in progress so
// the restored target is the only card taking input
func (b *Binder[ID]) reject(id ID) {
	if active, ok := b.model.Active(); ok {
		b.Abort(active)
	}
	b.model.Reject(id)
}

func (b *Binder[ID]) isActive(id ID) bool {
	cur, ok := b.model.Active()
	return ok && cur == id
}
