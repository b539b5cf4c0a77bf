package deck

import (
	"slices"

	"github.com/lixenwraith/card-deck/anim"
	"github.com/lixenwraith/card-deck/events"
)

// SetElements replaces the collection and reconciles deck state
//
// Removed ids lose their pose, judged flag and recorded direction; inserted
// ids start neutral. If the target survived, the new order is the target and
// everything after it, followed by the unjudged cards that preceded it; judged
// cards that preceded it leave the deck. A target that did not survive resets
// to the first element. Replacing the collection with the same id sequence
// only refreshes the records.
func (d *Deck[ID, E]) SetElements(elements []E) {
	next := dedupe[ID](elements)

	if slices.EqualFunc(d.elements, next, func(a, b E) bool { return a.CardID() == b.CardID() }) {
		d.elements = next
		return
	}

	incoming := make(map[ID]struct{}, len(next))
	for _, e := range next {
		incoming[e.CardID()] = struct{}{}
	}

	var added, removed []ID
	for _, e := range d.elements {
		if _, ok := incoming[e.CardID()]; !ok {
			removed = append(removed, e.CardID())
		}
	}
	for _, e := range next {
		id := e.CardID()
		if _, ok := d.position[id]; !ok {
			added = append(added, id)
			d.visual[id] = anim.Neutral
		}
	}

	reordered := false
	if _, kept := incoming[d.target]; d.hasTarget && kept {
		ti := slices.IndexFunc(next, func(e E) bool { return e.CardID() == d.target })
		if ti > 0 {
			order := make([]E, 0, len(next))
			order = append(order, next[ti:]...)
			for _, e := range next[:ti] {
				if d.judged[e.CardID()] {
					// Resolved before the target; drops out with its state
					removed = append(removed, e.CardID())
					continue
				}
				order = append(order, e)
			}
			next = order
			reordered = true
		}
	}

	for _, id := range removed {
		delete(d.visual, id)
		delete(d.judged, id)
		delete(d.directions, id)
		d.driver.Forget(id)
		d.Deactivate(id)
	}

	d.elements = next
	d.reindex()
	if len(d.elements) > 0 {
		d.target, d.hasTarget = d.elements[0].CardID(), true
	} else {
		var zero ID
		d.target, d.hasTarget = zero, false
	}
	d.generation++

	d.metrics.reconciles.Add(1)
	d.metrics.size.Store(int64(len(d.elements)))
	d.log.Debug("deck reconcile",
		"added", len(added),
		"removed", len(removed),
		"reordered", reordered,
		"size", len(d.elements),
	)
	d.publish(events.EventReconciled, &events.ReconciledPayload[ID]{
		Added:     added,
		Removed:   removed,
		Reordered: reordered,
	})
}
