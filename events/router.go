package events

// Handler processes specific event types
// Subscribers implement this interface or wrap a func with HandlerFunc
type Handler interface {
	// HandleEvent processes a single event
	// Called synchronously during dispatch
	HandleEvent(event Event)

	// EventTypes returns the event types this handler processes
	// The router uses this for registration
	EventTypes() []EventType
}

type funcHandler struct {
	fn    func(Event)
	types []EventType
}

func (h *funcHandler) HandleEvent(event Event)  { h.fn(event) }
func (h *funcHandler) EventTypes() []EventType { return h.types }

// HandlerFunc adapts fn to a Handler for the given types, all types when none given
func HandlerFunc(fn func(Event), types ...EventType) Handler {
	if len(types) == 0 {
		types = AllTypes()
	}
	return &funcHandler{fn: fn, types: types}
}

// Router dispatches published events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
//   - Events published from inside a handler are queued and delivered after
//     the current event finishes, preserving FIFO order
type Router struct {
	handlers    map[EventType][]*registration
	queue       *EventQueue
	dispatching bool
	nextID      uint64
}

type registration struct {
	id      uint64
	handler Handler
}

// NewRouter creates a router with its own queue
func NewRouter() *Router {
	return &Router{
		handlers: make(map[EventType][]*registration),
		queue:    NewEventQueue(),
	}
}

// Register adds a handler for its declared event types and returns a func
// that removes it again
func (r *Router) Register(handler Handler) (unregister func()) {
	r.nextID++
	reg := &registration{id: r.nextID, handler: handler}
	types := handler.EventTypes()
	for _, t := range types {
		r.handlers[t] = append(r.handlers[t], reg)
	}
	return func() {
		for _, t := range types {
			r.handlers[t] = removeRegistration(r.handlers[t], reg.id)
		}
	}
}

// Publish queues event and dispatches everything pending unless a dispatch
// is already running further up the stack
func (r *Router) Publish(event Event) {
	r.queue.Push(event)
	if r.dispatching {
		return
	}
	r.DispatchAll()
}

// DispatchAll drains the queue in FIFO order
func (r *Router) DispatchAll() {
	r.dispatching = true
	defer func() { r.dispatching = false }()

	for {
		ev, ok := r.queue.Pop()
		if !ok {
			return
		}
		// Copy so unregistering inside a handler does not skip siblings
		regs := append([]*registration(nil), r.handlers[ev.Type]...)
		for _, reg := range regs {
			reg.handler.HandleEvent(ev)
		}
	}
}

func removeRegistration(regs []*registration, id uint64) []*registration {
	out := regs[:0]
	for _, reg := range regs {
		if reg.id != id {
			out = append(out, reg)
		}
	}
	return out
}
