// Package events carries deck change notifications to subscribers
//
// The deck publishes one Event per observable mutation. Subscribers register a
// Handler on the deck's Router and receive events synchronously, in FIFO order,
// on the goroutine that mutated the deck.
package events

// EventType represents the type of deck event
type EventType int

const (
	// EventChanged signals any mutation of order, target, judged flags or visual state
	// Trigger: every public deck mutation, after the specific event | Payload: *ChangedPayload[ID]
	EventChanged EventType = iota + 1

	// EventJudged signals a directional commit
	// Trigger: Deck.Swipe | Payload: *DirectionPayload[ID]
	EventJudged

	// EventBack signals an undo of a prior commit
	// Trigger: Deck.Back with a recorded direction | Payload: *DirectionPayload[ID]
	EventBack

	// EventCancelled signals a card returned to neutral without a commit
	// Trigger: Deck.Cancel | Payload: *CardPayload[ID]
	EventCancelled

	// EventRejected signals a host veto that restored the target
	// Trigger: Deck.Reject | Payload: *CardPayload[ID]
	EventRejected

	// EventReconciled signals the element collection was replaced
	// Trigger: Deck.SetElements | Payload: *ReconciledPayload[ID]
	EventReconciled

	// EventTracking signals a direct visual write during finger tracking
	// Trigger: Deck.SetVisualDirect | Payload: *CardPayload[ID]
	// High frequency; subscribers must stay cheap
	EventTracking
)

// Event is a single notification
type Event struct {
	Type EventType
	// Generation is the deck generation after the mutation
	Generation uint64
	Payload    any
}
