// Package scheduler runs one-shot delayed tasks on the caller's event loop
//
// Tasks never run on their own goroutine. The owner polls Fire from the same
// loop that mutates the deck, so task bodies see a consistent model. A task may
// carry a guard that is evaluated at fire time; a failed guard drops the task
// silently, which is how stale deferred work is discarded after the deck moved on.
package scheduler

import (
	"slices"
	"time"
)

// Task is a handle to a scheduled callback
type Task struct {
	due      time.Time
	seq      uint64
	fn       func()
	guard    func() bool
	canceled bool
	fired    bool
}

// Cancel prevents the task from running; no-op once fired
func (t *Task) Cancel() {
	t.canceled = true
}

// Pending reports whether the task may still run
func (t *Task) Pending() bool {
	return !t.canceled && !t.fired
}

// Due returns the scheduled fire time
func (t *Task) Due() time.Time {
	return t.due
}

// Scheduler orders tasks by due time, ties in scheduling order
// Not safe for concurrent use
type Scheduler struct {
	clock Clock
	tasks []*Task
	seq   uint64
}

// New creates a scheduler on clock, nil selects the wall clock
func New(clock Clock) *Scheduler {
	if clock == nil {
		clock = TimeProvider{}
	}
	return &Scheduler{clock: clock}
}

// Clock returns the scheduler's time source
func (s *Scheduler) Clock() Clock {
	return s.clock
}

// After schedules fn to run d after now
func (s *Scheduler) After(d time.Duration, fn func()) *Task {
	return s.AfterGuarded(d, nil, fn)
}

// AfterGuarded schedules fn to run d after now if guard still holds then
// A nil guard always holds
func (s *Scheduler) AfterGuarded(d time.Duration, guard func() bool, fn func()) *Task {
	s.seq++
	t := &Task{
		due:   s.clock.Now().Add(d),
		seq:   s.seq,
		fn:    fn,
		guard: guard,
	}
	i, _ := slices.BinarySearchFunc(s.tasks, t, compareTasks)
	s.tasks = slices.Insert(s.tasks, i, t)
	return t
}

// Fire runs every due task and returns how many callbacks executed
// Tasks scheduled by a running callback are considered on the next Fire
func (s *Scheduler) Fire() int {
	now := s.clock.Now()
	n := 0
	for _, t := range s.takeDue(now) {
		if !t.Pending() {
			continue
		}
		t.fired = true
		if t.guard != nil && !t.guard() {
			continue
		}
		t.fn()
		n++
	}
	return n
}

// NextDue returns the earliest pending due time, ok=false when idle
func (s *Scheduler) NextDue() (time.Time, bool) {
	for _, t := range s.tasks {
		if t.Pending() {
			return t.due, true
		}
	}
	return time.Time{}, false
}

// Pending returns the number of tasks that may still run
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if t.Pending() {
			n++
		}
	}
	return n
}

// CancelAll drops every pending task
func (s *Scheduler) CancelAll() {
	for _, t := range s.tasks {
		t.Cancel()
	}
	s.tasks = s.tasks[:0]
}

func (s *Scheduler) takeDue(now time.Time) []*Task {
	i := 0
	for i < len(s.tasks) && !s.tasks[i].due.After(now) {
		i++
	}
	due := slices.Clone(s.tasks[:i])
	s.tasks = slices.Delete(s.tasks, 0, i)
	return due
}

func compareTasks(a, b *Task) int {
	if c := a.due.Compare(b.due); c != 0 {
		return c
	}
	switch {
	case a.seq < b.seq:
		return -1
	case a.seq > b.seq:
		return 1
	}
	return 0
}
