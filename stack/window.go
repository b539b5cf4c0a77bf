// Package stack turns deck state into something drawable and drives the deck
// from gesture input
//
// Rendering is a pure function of deck state: Window and BuildFrame never
// mutate anything. Input arrives through the Binder's three-event protocol,
// Begin, Update and End, independent of any platform input API.
package stack

import (
	"slices"

	"github.com/lixenwraith/card-deck/anim"
	"github.com/lixenwraith/card-deck/deck"
	"github.com/lixenwraith/card-deck/gesture"
)

// Window returns up to visible elements starting one before the target,
// ordered back-to-front so the last element is drawn on top
// The card before the target stays in the window so its exit animation remains visible
func Window[ID comparable, E deck.Identifiable[ID]](elements []E, target ID, hasTarget bool, visible int) []E {
	if len(elements) == 0 || visible < 1 {
		return nil
	}
	start := 0
	if hasTarget {
		if i := slices.IndexFunc(elements, func(e E) bool { return e.CardID() == target }); i > 0 {
			start = i - 1
		}
	}
	end := min(start+visible, len(elements))
	out := slices.Clone(elements[start:end])
	slices.Reverse(out)
	return out
}

// Source is the read side of a deck
type Source[ID comparable, E deck.Identifiable[ID]] interface {
	Elements() []E
	Target() (ID, bool)
	Visual(id ID) (deck.Visual, bool)
	IsJudged(id ID) bool
}

// Card is one drawable entry of a frame
type Card[ID comparable, E deck.Identifiable[ID]] struct {
	ID      ID
	Element E
	Pose    anim.Pose
	// Depth counts cards above this one, 0 is topmost
	Depth    int
	IsTarget bool
	Judged   bool
}

// PoseSource overrides model poses with presented ones, e.g. an in-flight animation
type PoseSource[ID comparable] func(id ID) (anim.Pose, bool)

// BuildFrame computes the drawable stack back-to-front
// present may be nil, in which case model poses are drawn
func BuildFrame[ID comparable, E deck.Identifiable[ID]](src Source[ID, E], opt gesture.Option, present PoseSource[ID]) []Card[ID, E] {
	opt = opt.Normalize()
	target, hasTarget := src.Target()
	window := Window[ID](src.Elements(), target, hasTarget, opt.VisibleCards)

	frame := make([]Card[ID, E], len(window))
	for i, e := range window {
		id := e.CardID()
		pose, _ := src.Visual(id)
		if present != nil {
			if p, ok := present(id); ok {
				pose = p
			}
		}
		frame[i] = Card[ID, E]{
			ID:       id,
			Element:  e,
			Pose:     pose,
			Depth:    len(window) - 1 - i,
			IsTarget: hasTarget && id == target,
			Judged:   src.IsJudged(id),
		}
	}
	return frame
}
