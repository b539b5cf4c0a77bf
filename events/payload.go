package events

import (
	"github.com/lixenwraith/card-deck/gesture"
)

// CardPayload names the affected card
type CardPayload[ID comparable] struct {
	ID ID
}

// DirectionPayload carries a commit or undo
type DirectionPayload[ID comparable] struct {
	ID        ID
	Direction gesture.Direction
}

// ReconciledPayload summarizes a collection replacement
type ReconciledPayload[ID comparable] struct {
	Added   []ID
	Removed []ID
	// Reordered is true when judged cards before the target were rotated out
	Reordered bool
}

// ChangedPayload reports where the target sits after a mutation
type ChangedPayload[ID comparable] struct {
	Target    ID
	HasTarget bool
	Cause     EventType
}
