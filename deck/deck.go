// Package deck owns the ordered card collection and its per-card state
//
// A Deck tracks which card is the target (topmost, eligible for gestures),
// the visual pose of every card, and which cards have been judged. It is
// mutated only through its methods, on a single goroutine; it takes no locks.
// Every mutation is published on the deck's event router.
package deck

import (
	"log/slog"
	"slices"
	"sync/atomic"

	"github.com/lixenwraith/card-deck/anim"
	"github.com/lixenwraith/card-deck/events"
	"github.com/lixenwraith/card-deck/gesture"
	"github.com/lixenwraith/card-deck/status"
	"github.com/lixenwraith/card-deck/vmath"
)

// Identifiable is implemented by business records placed in a deck
// CardID must be stable and unique within one collection
type Identifiable[ID comparable] interface {
	CardID() ID
}

// Visual is the per-card pose, the only render-affecting state besides the record itself
type Visual = anim.Pose

// DefaultBounds is the viewport used for off-screen destinations when none is configured
var DefaultBounds = vmath.V2(390, 844)

// Metric keys published to the status registry
const (
	MetricSwipes     = "deck.swipes"
	MetricBacks      = "deck.backs"
	MetricRejects    = "deck.rejects"
	MetricCancels    = "deck.cancels"
	MetricReconciles = "deck.reconciles"
	MetricSize       = "deck.size"
	MetricLastJudged = "deck.last_direction"
)

// Callbacks are the host's commit and undo slots, both optional
type Callbacks[ID comparable] struct {
	OnJudged func(id ID, dir gesture.Direction)
	OnBack   func(id ID, dir gesture.Direction)
}

// Config wires a deck to its collaborators; the zero value is usable
type Config[ID comparable] struct {
	Callbacks Callbacks[ID]
	// Driver receives animation requests, nil discards them
	Driver anim.Driver[ID]
	// Bounds is the viewport size for off-screen destinations
	Bounds vmath.Vec2
	// Status receives activity counters, nil disables metrics
	Status *status.Registry
	// Logger receives debug traces of transitions, nil discards
	Logger *slog.Logger
}

// Deck is the aggregate root of the card stack
type Deck[ID comparable, E Identifiable[ID]] struct {
	elements []E
	position map[ID]int

	target    ID
	hasTarget bool

	visual     map[ID]Visual
	judged     map[ID]bool
	directions map[ID]gesture.Direction

	active    ID
	hasActive bool

	generation uint64

	callbacks Callbacks[ID]
	driver    anim.Driver[ID]
	bounds    vmath.Vec2
	router    *events.Router
	log       *slog.Logger
	metrics   metrics
}

type metrics struct {
	swipes, backs, rejects, cancels, reconciles, size *atomic.Int64
	last                                              *status.AtomicString
}

// New creates a deck over elements; duplicate ids keep their first occurrence
// The first element becomes the target
func New[ID comparable, E Identifiable[ID]](elements []E, cfg Config[ID]) *Deck[ID, E] {
	d := &Deck[ID, E]{
		visual:     make(map[ID]Visual),
		judged:     make(map[ID]bool),
		directions: make(map[ID]gesture.Direction),
		callbacks:  cfg.Callbacks,
		driver:     cfg.Driver,
		bounds:     cfg.Bounds,
		router:     events.NewRouter(),
		log:        cfg.Logger,
	}
	if d.driver == nil {
		d.driver = anim.NopDriver[ID]{}
	}
	if vmath.V2IsZero(d.bounds) {
		d.bounds = DefaultBounds
	}
	if d.log == nil {
		d.log = slog.New(slog.DiscardHandler)
	}
	d.metrics = newMetrics(cfg.Status)

	d.elements = dedupe[ID](elements)
	d.reindex()
	for _, e := range d.elements {
		d.visual[e.CardID()] = anim.Neutral
	}
	if len(d.elements) > 0 {
		d.target, d.hasTarget = d.elements[0].CardID(), true
	}
	d.metrics.size.Store(int64(len(d.elements)))
	return d
}

func newMetrics(reg *status.Registry) metrics {
	if reg == nil {
		// Private cells keep the hot path branch-free
		reg = status.NewRegistry()
	}
	return metrics{
		swipes:     reg.Ints.Get(MetricSwipes),
		backs:      reg.Ints.Get(MetricBacks),
		rejects:    reg.Ints.Get(MetricRejects),
		cancels:    reg.Ints.Get(MetricCancels),
		reconciles: reg.Ints.Get(MetricReconciles),
		size:       reg.Ints.Get(MetricSize),
		last:       reg.Strings.Get(MetricLastJudged),
	}
}

// Subscribe registers h for deck events and returns its unsubscribe func
func (d *Deck[ID, E]) Subscribe(h events.Handler) (unsubscribe func()) {
	return d.router.Register(h)
}

// Elements returns a copy of the ordered collection
func (d *Deck[ID, E]) Elements() []E {
	return slices.Clone(d.elements)
}

// IDs returns the ordered ids
func (d *Deck[ID, E]) IDs() []ID {
	ids := make([]ID, len(d.elements))
	for i, e := range d.elements {
		ids[i] = e.CardID()
	}
	return ids
}

// Len returns the number of elements
func (d *Deck[ID, E]) Len() int {
	return len(d.elements)
}

// Element returns the record for id
func (d *Deck[ID, E]) Element(id ID) (E, bool) {
	i, ok := d.position[id]
	if !ok {
		var zero E
		return zero, false
	}
	return d.elements[i], true
}

// Contains reports whether id is in the deck
func (d *Deck[ID, E]) Contains(id ID) bool {
	_, ok := d.position[id]
	return ok
}

// Index returns the position of id, -1 when absent
func (d *Deck[ID, E]) Index(id ID) int {
	if i, ok := d.position[id]; ok {
		return i
	}
	return -1
}

// Target returns the topmost card id, ok=false only for an empty deck
func (d *Deck[ID, E]) Target() (ID, bool) {
	return d.target, d.hasTarget
}

// Visual returns the model pose of id
func (d *Deck[ID, E]) Visual(id ID) (Visual, bool) {
	v, ok := d.visual[id]
	return v, ok
}

// IsJudged reports whether id has an unreverted commit
func (d *Deck[ID, E]) IsJudged(id ID) bool {
	return d.judged[id]
}

// DirectionOf returns the recorded commit direction of id, None when absent
func (d *Deck[ID, E]) DirectionOf(id ID) gesture.Direction {
	return d.directions[id]
}

// Exhausted reports whether the target itself is judged, i.e. no card after
// the last commit was left to advance to
func (d *Deck[ID, E]) Exhausted() bool {
	return d.hasTarget && d.judged[d.target]
}

// Generation increments whenever the target or the collection changes
// Deferred work compares it to detect that the deck moved on
func (d *Deck[ID, E]) Generation() uint64 {
	return d.generation
}

// Bounds returns the viewport used for off-screen destinations
func (d *Deck[ID, E]) Bounds() vmath.Vec2 {
	return d.bounds
}

// SetBounds updates the viewport, e.g. after a resize
func (d *Deck[ID, E]) SetBounds(b vmath.Vec2) {
	if !vmath.V2IsZero(b) {
		d.bounds = b
	}
}

// Next returns the id after id, ok=false at the end or for unknown ids
func (d *Deck[ID, E]) Next(id ID) (ID, bool) {
	return d.neighbor(id, 1)
}

// Previous returns the id before id, ok=false at the start or for unknown ids
func (d *Deck[ID, E]) Previous(id ID) (ID, bool) {
	return d.neighbor(id, -1)
}

func (d *Deck[ID, E]) neighbor(id ID, step int) (ID, bool) {
	var zero ID
	i, ok := d.position[id]
	if !ok {
		return zero, false
	}
	j := i + step
	if j < 0 || j >= len(d.elements) {
		return zero, false
	}
	return d.elements[j].CardID(), true
}

// Activate marks id as the card under an active gesture
// Fails when id is unknown or another card is already active
func (d *Deck[ID, E]) Activate(id ID) bool {
	if !d.Contains(id) {
		return false
	}
	if d.hasActive && d.active != id {
		return false
	}
	d.active, d.hasActive = id, true
	return true
}

// Deactivate clears the active card if it is id
func (d *Deck[ID, E]) Deactivate(id ID) {
	if d.hasActive && d.active == id {
		var zero ID
		d.active, d.hasActive = zero, false
	}
}

// Active returns the card under an active gesture
func (d *Deck[ID, E]) Active() (ID, bool) {
	return d.active, d.hasActive
}

func (d *Deck[ID, E]) reindex() {
	d.position = make(map[ID]int, len(d.elements))
	for i, e := range d.elements {
		d.position[e.CardID()] = i
	}
}

func dedupe[ID comparable, E Identifiable[ID]](in []E) []E {
	seen := make(map[ID]struct{}, len(in))
	out := make([]E, 0, len(in))
	for _, e := range in {
		id := e.CardID()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, e)
	}
	return out
}
