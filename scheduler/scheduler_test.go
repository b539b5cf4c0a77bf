package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFireOrder verifies tasks run by due time, ties in scheduling order
func TestFireOrder(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(100, 0))
	s := New(clock)
	var got []string

	s.After(300*time.Millisecond, func() { got = append(got, "c") })
	s.After(100*time.Millisecond, func() { got = append(got, "a") })
	s.After(100*time.Millisecond, func() { got = append(got, "b") })

	assert.Equal(t, 0, s.Fire())
	due, ok := s.NextDue()
	require.True(t, ok)
	assert.Equal(t, time.Unix(100, 0).Add(100*time.Millisecond), due)

	clock.Advance(100 * time.Millisecond)
	assert.Equal(t, 2, s.Fire())
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 1, s.Pending())

	clock.Advance(time.Second)
	assert.Equal(t, 1, s.Fire())
	assert.Equal(t, []string{"a", "b", "c"}, got)
	_, ok = s.NextDue()
	assert.False(t, ok)
}

// TestCancel verifies canceled tasks never run
func TestCancel(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	s := New(clock)
	ran := false
	task := s.After(time.Millisecond, func() { ran = true })
	assert.True(t, task.Pending())
	task.Cancel()
	assert.False(t, task.Pending())

	clock.Advance(time.Second)
	assert.Equal(t, 0, s.Fire())
	assert.False(t, ran)
}

// TestGuard verifies a failed guard drops the task at fire time
func TestGuard(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	s := New(clock)
	generation := 1
	ran := 0
	guard := func(want int) func() bool {
		return func() bool { return generation == want }
	}

	stale := s.AfterGuarded(300*time.Millisecond, guard(1), func() { ran++ })
	generation = 2
	s.AfterGuarded(300*time.Millisecond, guard(2), func() { ran++ })

	clock.Advance(300 * time.Millisecond)
	assert.Equal(t, 1, s.Fire())
	assert.Equal(t, 1, ran)
	assert.False(t, stale.Pending())
}

// TestRescheduleFromCallback verifies tasks added while firing wait for the next Fire
func TestRescheduleFromCallback(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	s := New(clock)
	count := 0
	var tick func()
	tick = func() {
		count++
		if count < 3 {
			s.After(0, tick)
		}
	}
	s.After(0, tick)

	assert.Equal(t, 1, s.Fire())
	assert.Equal(t, 1, s.Fire())
	assert.Equal(t, 1, s.Fire())
	assert.Equal(t, 0, s.Fire())
	assert.Equal(t, 3, count)
}

// TestCancelAll verifies the queue empties
func TestCancelAll(t *testing.T) {
	s := New(NewMockTimeProvider(time.Unix(0, 0)))
	a := s.After(time.Second, func() {})
	s.After(2*time.Second, func() {})
	s.CancelAll()
	assert.Equal(t, 0, s.Pending())
	assert.False(t, a.Pending())
	assert.NotNil(t, New(nil).Clock())
}
