package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/card-deck/events"
	"github.com/lixenwraith/card-deck/gesture"
	"github.com/lixenwraith/card-deck/vmath"
)

// TestReconcileRotatesJudged verifies append with a judged and an unjudged card before the target
func TestReconcileRotatesJudged(t *testing.T) {
	h := newHarness("A", "B", "C", "D")
	h.deck.Swipe(gesture.Left, "A")
	h.deck.Reject("C")
	require.Equal(t, "C", h.target(t))
	require.True(t, h.deck.IsJudged("A"))
	require.False(t, h.deck.IsJudged("B"))

	var payload *events.ReconciledPayload[string]
	h.deck.Subscribe(events.HandlerFunc(func(ev events.Event) {
		payload = ev.Payload.(*events.ReconciledPayload[string])
	}, events.EventReconciled))

	h.deck.SetElements(cards("A", "B", "C", "D", "E"))

	assert.Equal(t, []string{"C", "D", "E", "B"}, h.deck.IDs())
	assert.Equal(t, "C", h.target(t))
	assert.False(t, h.deck.Contains("A"))
	_, ok := h.deck.Visual("A")
	assert.False(t, ok)
	assert.False(t, h.deck.IsJudged("A"))
	v, ok := h.deck.Visual("E")
	require.True(t, ok)
	assert.True(t, v.IsNeutral())
	assertVisualInvariant(t, h.deck)

	require.NotNil(t, payload)
	assert.Equal(t, []string{"E"}, payload.Added)
	assert.Equal(t, []string{"A"}, payload.Removed)
	assert.True(t, payload.Reordered)
}

// TestReconcileIdempotent verifies replacing with the current collection changes nothing
func TestReconcileIdempotent(t *testing.T) {
	h := newHarness("a", "b", "c", "d")
	h.deck.Swipe(gesture.Right, "a")
	h.deck.SetVisualDirect("b", Visual{Offset: vmath.V2(5, 5), Angle: 2})

	ids := h.deck.IDs()
	target := h.target(t)
	gen := h.deck.Generation()
	poses := make(map[string]Visual)
	for _, id := range ids {
		poses[id], _ = h.deck.Visual(id)
	}

	h.deck.SetElements(h.deck.Elements())

	assert.Equal(t, ids, h.deck.IDs())
	assert.Equal(t, target, h.target(t))
	assert.Equal(t, gen, h.deck.Generation())
	for _, id := range ids {
		v, _ := h.deck.Visual(id)
		assert.Equal(t, poses[id], v)
	}
	assert.True(t, h.deck.IsJudged("a"))
}

// TestReconcileTargetRemoved verifies the target resets to the new head
func TestReconcileTargetRemoved(t *testing.T) {
	h := newHarness("a", "b", "c")
	h.deck.Swipe(gesture.Left, "a")
	require.Equal(t, "b", h.target(t))

	h.deck.SetElements(cards("c", "d", "a"))

	assert.Equal(t, []string{"c", "d", "a"}, h.deck.IDs())
	assert.Equal(t, "c", h.target(t))
	_, ok := h.deck.Visual("b")
	assert.False(t, ok)
	assert.True(t, h.deck.IsJudged("a"))
	assertVisualInvariant(t, h.deck)
}

// TestReconcileTargetAtHead verifies no rotation when the target leads
func TestReconcileTargetAtHead(t *testing.T) {
	h := newHarness("a", "b")
	h.deck.SetElements(cards("a", "x", "b"))

	assert.Equal(t, []string{"a", "x", "b"}, h.deck.IDs())
	assert.Equal(t, "a", h.target(t))
	assertVisualInvariant(t, h.deck)
}

// TestReconcileEmpty verifies emptying and refilling the deck
func TestReconcileEmpty(t *testing.T) {
	h := newHarness("a", "b")
	h.deck.Swipe(gesture.Top, "a")

	h.deck.SetElements(nil)
	_, ok := h.deck.Target()
	assert.False(t, ok)
	assert.Zero(t, h.deck.Len())
	assert.Empty(t, h.deck.visual)
	assert.Empty(t, h.deck.judged)
	assert.Empty(t, h.deck.directions)

	h.deck.SetElements(cards("n1", "n2"))
	assert.Equal(t, "n1", h.target(t))
	assertVisualInvariant(t, h.deck)
}

// TestReconcilePreservesUnjudgedOrder verifies relative order of unjudged cards ahead of the target
func TestReconcilePreservesUnjudgedOrder(t *testing.T) {
	h := newHarness("a", "b", "c", "d", "e", "f")
	h.deck.Swipe(gesture.Right, "b")
	h.deck.Swipe(gesture.Right, "d")
	h.deck.Reject("e")

	h.deck.SetElements(cards("a", "b", "c", "d", "e", "f", "g"))

	assert.Equal(t, []string{"e", "f", "g", "a", "c"}, h.deck.IDs())
	assert.Equal(t, "e", h.target(t))
	assertVisualInvariant(t, h.deck)
}

// TestReconcileDeactivatesRemoved verifies a removed card cannot stay active
func TestReconcileDeactivatesRemoved(t *testing.T) {
	h := newHarness("a", "b")
	require.True(t, h.deck.Activate("a"))

	h.deck.SetElements(cards("b"))

	_, ok := h.deck.Active()
	assert.False(t, ok)
	assert.Equal(t, "b", h.target(t))
	assert.Equal(t, int64(1), h.reg.Ints.Get(MetricReconciles).Load())
	assert.Equal(t, int64(1), h.reg.Ints.Get(MetricSize).Load())
}
