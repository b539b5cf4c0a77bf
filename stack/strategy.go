package stack

import (
	"github.com/lixenwraith/card-deck/gesture"
)

// Completion carries the two continuations of a gesture end
// Whichever is invoked first wins; later calls to either are ignored
type Completion struct {
	done    func()
	cancel  func()
	settled bool
}

func newCompletion(done, cancel func()) *Completion {
	return &Completion{done: done, cancel: cancel}
}

// Done commits the gesture in its resolved direction
func (c *Completion) Done() {
	if c.settled {
		return
	}
	c.settled = true
	c.done()
}

// Cancel snaps the card back without a commit
func (c *Completion) Cancel() {
	if c.settled {
		return
	}
	c.settled = true
	c.cancel()
}

// Settled reports whether a continuation already ran
func (c *Completion) Settled() bool {
	return c.settled
}

// EndStrategy decides how a released gesture with a direction completes
// It may settle c synchronously, later from the host's loop, or never
type EndStrategy[ID comparable] interface {
	OnEnd(state gesture.State[ID], c *Completion)
}

// StrategyFunc adapts a plain function taking the two continuations
type StrategyFunc[ID comparable] func(state gesture.State[ID], done, cancel func())

// OnEnd implements EndStrategy
func (f StrategyFunc[ID]) OnEnd(state gesture.State[ID], c *Completion) {
	f(state, c.Done, c.Cancel)
}

// DefaultPolicy commits judged gestures and cancels the rest
type DefaultPolicy[ID comparable] struct{}

// OnEnd implements EndStrategy
func (DefaultPolicy[ID]) OnEnd(state gesture.State[ID], c *Completion) {
	if state.IsJudged() {
		c.Done()
		return
	}
	c.Cancel()
}

// QuotaPolicy wraps another strategy with a commit allowance
// When Allow reports false at commit time the commit still happens, so the
// card flies out, and Reject then returns it after a delay
type QuotaPolicy[ID comparable] struct {
	inner  EndStrategy[ID]
	allow  func(id ID) bool
	reject func(id ID)
}

// NewQuotaPolicy creates a QuotaPolicy; nil inner selects DefaultPolicy
// reject is normally Binder.RejectLater
func NewQuotaPolicy[ID comparable](inner EndStrategy[ID], allow func(id ID) bool, reject func(id ID)) *QuotaPolicy[ID] {
	if inner == nil {
		inner = DefaultPolicy[ID]{}
	}
	return &QuotaPolicy[ID]{inner: inner, allow: allow, reject: reject}
}

// OnEnd implements EndStrategy
func (q *QuotaPolicy[ID]) OnEnd(state gesture.State[ID], c *Completion) {
	wrapped := newCompletion(
		func() {
			allowed := q.allow == nil || q.allow(state.ID)
			c.Done()
			if !allowed && q.reject != nil {
				q.reject(state.ID)
			}
		},
		c.Cancel,
	)
	q.inner.OnEnd(state, wrapped)
}
