package deck

import (
	"github.com/lixenwraith/card-deck/anim"
	"github.com/lixenwraith/card-deck/events"
	"github.com/lixenwraith/card-deck/gesture"
)

// Swipe commits id in dir: the card flies to dir's off-screen destination,
// the target advances to the next unjudged card after id, and OnJudged fires
// Unknown ids and dir None are ignored
// When no unjudged card follows id the target stays on id, see Exhausted
func (d *Deck[ID, E]) Swipe(dir gesture.Direction, id ID) {
	i, ok := d.position[id]
	if !ok || dir == gesture.None {
		return
	}

	d.judged[id] = true
	d.directions[id] = dir
	d.animate(id, Visual{Offset: dir.Destination(d.bounds), Angle: dir.RestingAngle()}, anim.Swipe)

	if next, ok := d.nextUnjudged(i); ok {
		d.target = next
	} else {
		d.target = id
	}
	d.hasTarget = true
	d.generation++

	d.metrics.swipes.Add(1)
	d.metrics.last.Store(dir.String())
	d.log.Debug("deck swipe", "id", id, "direction", dir.String(), "target", d.target)

	if d.callbacks.OnJudged != nil {
		d.callbacks.OnJudged(id, dir)
	}
	d.publish(events.EventJudged, &events.DirectionPayload[ID]{ID: id, Direction: dir})
}

// Cancel returns id to the neutral pose without touching judged state or target
func (d *Deck[ID, E]) Cancel(id ID) {
	if !d.Contains(id) {
		return
	}
	d.animate(id, anim.Neutral, anim.Cancel)
	d.metrics.cancels.Add(1)
	d.log.Debug("deck cancel", "id", id)
	d.publish(events.EventCancelled, &events.CardPayload[ID]{ID: id})
}

// Reject is Cancel plus forcing the target back to id
// The judged flag and recorded direction are kept, unlike Back
func (d *Deck[ID, E]) Reject(id ID) {
	if !d.Contains(id) {
		return
	}
	d.animate(id, anim.Neutral, anim.Cancel)
	d.target, d.hasTarget = id, true
	d.generation++

	d.metrics.rejects.Add(1)
	d.log.Debug("deck reject", "id", id)
	d.publish(events.EventRejected, &events.CardPayload[ID]{ID: id})
}

// Back undoes the commit of id: neutral pose, judged cleared, target = id,
// then OnBack with the recorded direction
// Without a recorded direction the reset still happens but no callback fires
func (d *Deck[ID, E]) Back(id ID) {
	if !d.Contains(id) {
		return
	}
	dir, recorded := d.directions[id]

	d.animate(id, anim.Neutral, anim.Cancel)
	delete(d.judged, id)
	delete(d.directions, id)
	d.target, d.hasTarget = id, true
	d.generation++

	d.metrics.backs.Add(1)
	d.log.Debug("deck back", "id", id, "recorded", recorded)

	if !recorded {
		d.publish(events.EventChanged, nil)
		return
	}
	if d.callbacks.OnBack != nil {
		d.callbacks.OnBack(id, dir)
	}
	d.publish(events.EventBack, &events.DirectionPayload[ID]{ID: id, Direction: dir})
}

// SetVisualDirect writes pose for id with no animation
// Reserved for 1:1 finger tracking; returns false for unknown ids
func (d *Deck[ID, E]) SetVisualDirect(id ID, pose Visual) bool {
	if !d.Contains(id) {
		return false
	}
	d.visual[id] = pose
	d.driver.Jump(id, pose)
	d.router.Publish(events.Event{
		Type:       events.EventTracking,
		Generation: d.generation,
		Payload:    &events.CardPayload[ID]{ID: id},
	})
	return true
}

// Animate moves id toward pose along curve without other state changes
// Used by binders for snap-back of undecided drags
func (d *Deck[ID, E]) Animate(id ID, pose Visual, curve anim.Curve) {
	if !d.Contains(id) {
		return
	}
	d.animate(id, pose, curve)
	d.publish(events.EventChanged, nil)
}

func (d *Deck[ID, E]) animate(id ID, pose Visual, curve anim.Curve) {
	d.visual[id] = pose
	d.driver.Animate(anim.Request[ID]{ID: id, Target: pose, Curve: curve})
}

func (d *Deck[ID, E]) nextUnjudged(from int) (ID, bool) {
	for j := from + 1; j < len(d.elements); j++ {
		id := d.elements[j].CardID()
		if !d.judged[id] {
			return id, true
		}
	}
	var zero ID
	return zero, false
}

// publish emits the specific event, when given, followed by EventChanged
func (d *Deck[ID, E]) publish(t events.EventType, payload any) {
	if t != events.EventChanged {
		d.router.Publish(events.Event{Type: t, Generation: d.generation, Payload: payload})
	}
	d.router.Publish(events.Event{
		Type:       events.EventChanged,
		Generation: d.generation,
		Payload: &events.ChangedPayload[ID]{
			Target:    d.target,
			HasTarget: d.hasTarget,
			Cause:     t,
		},
	})
}
