package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/card-deck/anim"
	"github.com/lixenwraith/card-deck/deck"
	"github.com/lixenwraith/card-deck/gesture"
	"github.com/lixenwraith/card-deck/vmath"
)

type card string

func (c card) CardID() string { return string(c) }

func cards(ids ...string) []card {
	out := make([]card, len(ids))
	for i, id := range ids {
		out[i] = card(id)
	}
	return out
}

func ids(cs []card) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return out
}

// TestWindow verifies the visible slice starts one before the target and is back-to-front
func TestWindow(t *testing.T) {
	all := cards("a", "b", "c", "d", "e")
	tests := []struct {
		name      string
		target    string
		hasTarget bool
		visible   int
		want      []string
	}{
		{"middle", "c", true, 3, []string{"d", "c", "b"}},
		{"head", "a", true, 3, []string{"c", "b", "a"}},
		{"second", "b", true, 2, []string{"b", "a"}},
		{"tail clipped", "e", true, 3, []string{"e", "d"}},
		{"no target", "", false, 2, []string{"b", "a"}},
		{"unknown target", "zz", true, 2, []string{"b", "a"}},
		{"more than available", "a", true, 10, []string{"e", "d", "c", "b", "a"}},
		{"none visible", "a", true, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Window[string](all, tt.target, tt.hasTarget, tt.visible)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, ids(got))
		})
	}

	assert.Empty(t, Window[string, card](nil, "a", true, 3))
}

// TestWindowDoesNotAlias verifies callers cannot mutate the source through the result
func TestWindowDoesNotAlias(t *testing.T) {
	all := cards("a", "b", "c")
	got := Window[string](all, "a", true, 3)
	got[0] = "zz"
	assert.Equal(t, []string{"a", "b", "c"}, ids(all))
}

// TestBuildFrame verifies depth, target and judged flags over a live deck
func TestBuildFrame(t *testing.T) {
	d := deck.New(cards("a", "b", "c", "d"), deck.Config[string]{Bounds: vmath.V2(100, 100)})
	d.Swipe(gesture.Left, "a")

	frame := BuildFrame[string, card](d, gesture.DefaultOption(), nil)
	require.Len(t, frame, 3)

	assert.Equal(t, "c", frame[0].ID)
	assert.Equal(t, 2, frame[0].Depth)
	assert.Equal(t, "b", frame[1].ID)
	assert.True(t, frame[1].IsTarget)
	assert.Equal(t, "a", frame[2].ID)
	assert.Equal(t, 0, frame[2].Depth)
	assert.True(t, frame[2].Judged)
	assert.Equal(t, vmath.V2(-200, 0), frame[2].Pose.Offset)
	assert.Equal(t, card("a"), frame[2].Element)
}

// TestBuildFramePresented verifies presented poses override model poses
func TestBuildFramePresented(t *testing.T) {
	d := deck.New(cards("a", "b"), deck.Config[string]{})
	mid := anim.Pose{Offset: vmath.V2(7, 0), Angle: 1}

	frame := BuildFrame[string, card](d, gesture.Option{VisibleCards: 2}, func(id string) (anim.Pose, bool) {
		return mid, id == "a"
	})
	require.Len(t, frame, 2)
	assert.Equal(t, mid, frame[1].Pose)
	assert.True(t, frame[0].Pose.IsNeutral())
}

// TestBuildFrameEmpty verifies an empty deck draws nothing
func TestBuildFrameEmpty(t *testing.T) {
	d := deck.New[string, card](nil, deck.Config[string]{})
	assert.Empty(t, BuildFrame[string, card](d, gesture.DefaultOption(), nil))
}
