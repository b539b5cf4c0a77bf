// Package status holds lock-free counters and gauges for deck activity
//
// Writers cache metric pointers once and update atomics directly; readers such
// as a debug overlay take a sorted Snapshot from any goroutine.
package status

import "sync/atomic"

// Registry is the central metrics facade
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Sample is one metric rendered for display
type Sample struct {
	Key   string
	Value any
}

// Snapshot returns all metrics, ints first then floats then strings, each sorted by key
func (r *Registry) Snapshot() []Sample {
	out := make([]Sample, 0, r.Ints.Count()+r.Floats.Count()+r.Strings.Count())
	r.Ints.Range(func(key string, v *atomic.Int64) {
		out = append(out, Sample{Key: key, Value: v.Load()})
	})
	r.Floats.Range(func(key string, v *AtomicFloat) {
		out = append(out, Sample{Key: key, Value: v.Get()})
	})
	r.Strings.Range(func(key string, v *AtomicString) {
		out = append(out, Sample{Key: key, Value: v.Load()})
	})
	return out
}
