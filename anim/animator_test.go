package anim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/card-deck/vmath"
)

// TestAnimatorSettles verifies each preset reaches its target and stops
func TestAnimatorSettles(t *testing.T) {
	for _, curve := range []Curve{Swipe, Cancel, Release} {
		t.Run(curve.ID.String(), func(t *testing.T) {
			an := NewAnimator[string]()
			target := Pose{Offset: vmath.V2(-640, 0), Angle: -10}
			an.Animate(Request[string]{ID: "a", Target: target, Curve: curve})
			require.True(t, an.Animating("a"))

			moving := an.Step(16 * time.Millisecond)
			assert.True(t, moving)
			mid, ok := an.Presented("a")
			require.True(t, ok)
			assert.Less(t, mid.Offset.X, 0.0)
			assert.Greater(t, mid.Offset.X, -640.0)

			moving = an.Step(5 * time.Second)
			assert.False(t, moving)
			assert.Equal(t, 0, an.Active())
			end, _ := an.Presented("a")
			assert.Equal(t, target, end)
		})
	}
}

// TestAnimatorJumpCancels verifies direct writes drop in-flight springs
func TestAnimatorJumpCancels(t *testing.T) {
	an := NewAnimator[int]()
	an.Animate(Request[int]{ID: 1, Target: Pose{Offset: vmath.V2(100, 0)}, Curve: Cancel})
	an.Step(10 * time.Millisecond)

	an.Jump(1, Pose{Offset: vmath.V2(3, 4), Angle: 1})
	assert.False(t, an.Animating(1))
	p, ok := an.Presented(1)
	require.True(t, ok)
	assert.Equal(t, Pose{Offset: vmath.V2(3, 4), Angle: 1}, p)

	an.Forget(1)
	_, ok = an.Presented(1)
	assert.False(t, ok)
}

// TestAnimatorStartsFromPresented verifies a spring begins at the last presented pose
func TestAnimatorStartsFromPresented(t *testing.T) {
	an := NewAnimator[int]()
	an.Jump(7, Pose{Offset: vmath.V2(120, 0), Angle: 10})
	an.Animate(Request[int]{ID: 7, Target: Neutral, Curve: Release})
	an.Step(time.Millisecond)

	p, _ := an.Presented(7)
	assert.InDelta(t, 120, p.Offset.X, 5)
	assert.InDelta(t, 10, p.Angle, 1)
}

// TestSpringCoefficients verifies response/damping conversion
func TestSpringCoefficients(t *testing.T) {
	s := Spring{Response: 1, Damping: 1}
	assert.InDelta(t, 39.478, s.Stiffness(), 0.001)
	assert.InDelta(t, 12.566, s.Friction(), 0.001)
	assert.True(t, Pose{}.IsNeutral())
	assert.False(t, Pose{Angle: 1}.IsNeutral())
}

// TestRecorder verifies requests are kept in order
func TestRecorder(t *testing.T) {
	r := NewRecorder[string]()
	_, ok := r.Last()
	assert.False(t, ok)

	r.Animate(Request[string]{ID: "a", Curve: Swipe})
	r.Animate(Request[string]{ID: "b", Curve: Cancel})
	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, "b", last.ID)
	assert.Len(t, r.Requests, 2)
}
