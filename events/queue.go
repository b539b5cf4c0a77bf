package events

// queueInitialCap sizes the FIFO for a burst of nested publishes
const queueInitialCap = 16

// EventQueue is a FIFO of pending events
// Single goroutine only; the deck and its subscribers share one event loop
type EventQueue struct {
	events []Event
	head   int
}

func NewEventQueue() *EventQueue {
	return &EventQueue{events: make([]Event, 0, queueInitialCap)}
}

// Push appends an event
func (eq *EventQueue) Push(event Event) {
	eq.events = append(eq.events, event)
}

// Pop removes the oldest event, ok=false when empty
func (eq *EventQueue) Pop() (Event, bool) {
	if eq.head >= len(eq.events) {
		return Event{}, false
	}
	ev := eq.events[eq.head]
	eq.events[eq.head] = Event{}
	eq.head++
	if eq.head == len(eq.events) {
		// Drained, reuse backing array
		eq.events = eq.events[:0]
		eq.head = 0
	}
	return ev, true
}

// Len returns pending event count
func (eq *EventQueue) Len() int {
	return len(eq.events) - eq.head
}
