package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	types []EventType
	got   []EventType
}

func (h *recordingHandler) HandleEvent(ev Event)    { h.got = append(h.got, ev.Type) }
func (h *recordingHandler) EventTypes() []EventType { return h.types }

// TestRouterFiltersByType verifies handlers only see their declared types
func TestRouterFiltersByType(t *testing.T) {
	r := NewRouter()
	judged := &recordingHandler{types: []EventType{EventJudged}}
	all := &recordingHandler{types: AllTypes()}
	r.Register(judged)
	r.Register(all)

	r.Publish(Event{Type: EventJudged})
	r.Publish(Event{Type: EventBack})

	assert.Equal(t, []EventType{EventJudged}, judged.got)
	assert.Equal(t, []EventType{EventJudged, EventBack}, all.got)
}

// TestRouterNestedPublishOrder verifies events published during dispatch are
// delivered after the current event, in FIFO order
func TestRouterNestedPublishOrder(t *testing.T) {
	r := NewRouter()
	var order []string

	r.Register(HandlerFunc(func(ev Event) {
		order = append(order, "a:"+ev.Type.String())
		if ev.Type == EventJudged {
			r.Publish(Event{Type: EventChanged})
		}
	}))
	r.Register(HandlerFunc(func(ev Event) {
		order = append(order, "b:"+ev.Type.String())
	}))

	r.Publish(Event{Type: EventJudged})

	assert.Equal(t, []string{
		"a:EventJudged",
		"b:EventJudged",
		"a:EventChanged",
		"b:EventChanged",
	}, order)
}

// TestRouterUnregister verifies removal, including from inside a handler
func TestRouterUnregister(t *testing.T) {
	r := NewRouter()
	count := 0
	var unregister func()
	unregister = r.Register(HandlerFunc(func(Event) {
		count++
		unregister()
	}, EventBack))
	sibling := &recordingHandler{types: []EventType{EventBack}}
	r.Register(sibling)

	r.Publish(Event{Type: EventBack})
	r.Publish(Event{Type: EventBack})

	assert.Equal(t, 1, count)
	assert.Len(t, sibling.got, 2)
}

// TestQueueFIFO verifies pop order and drain reuse
func TestQueueFIFO(t *testing.T) {
	q := NewEventQueue()
	_, ok := q.Pop()
	assert.False(t, ok)

	for i := 1; i <= 3; i++ {
		q.Push(Event{Generation: uint64(i)})
	}
	require.Equal(t, 3, q.Len())
	for i := 1; i <= 3; i++ {
		ev, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, uint64(i), ev.Generation)
	}
	assert.Equal(t, 0, q.Len())
}

// TestEventNames verifies every declared type has a registered name
func TestEventNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, et := range AllTypes() {
		name := et.String()
		assert.NotEqual(t, "EventUnknown", name)
		assert.False(t, seen[name], "duplicate name %s", name)
		seen[name] = true
	}
	assert.Equal(t, "EventJudged", EventJudged.String())
	assert.Equal(t, "EventUnknown", EventType(99).String())
}
