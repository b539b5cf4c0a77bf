package events

var typeToName = map[EventType]string{
	EventChanged:    "EventChanged",
	EventJudged:     "EventJudged",
	EventBack:       "EventBack",
	EventCancelled:  "EventCancelled",
	EventRejected:   "EventRejected",
	EventReconciled: "EventReconciled",
	EventTracking:   "EventTracking",
}

// String returns the registered name
func (t EventType) String() string {
	if n, ok := typeToName[t]; ok {
		return n
	}
	return "EventUnknown"
}

// AllTypes returns every registered event type in declaration order
func AllTypes() []EventType {
	return []EventType{
		EventChanged,
		EventJudged,
		EventBack,
		EventCancelled,
		EventRejected,
		EventReconciled,
		EventTracking,
	}
}
