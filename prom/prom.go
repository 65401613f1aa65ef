// Package prom exports memoization stats to Prometheus.
package prom

import (
	"context"
	"sync"

	"github.com/bool64/stats"
	"github.com/prometheus/client_golang/prometheus"
)

// Tracker implements stats.Tracker with Prometheus counters and gauges.
//
// Metric vectors are created lazily on first use of a name; the label set
// used with a given metric name must stay stable across calls. Safe for
// concurrent use; all Prometheus metric types are goroutine-safe.
type Tracker struct {
	mu       sync.Mutex
	counters map[string]*prometheus.CounterVec
	gauges   map[string]*prometheus.GaugeVec

	reg prometheus.Registerer
	ns  string
	sub string
}

// New constructs a Prometheus tracker.
//   - reg:      registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:  Prometheus namespace and subsystem, either may be empty
func New(reg prometheus.Registerer, ns, sub string) *Tracker {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	return &Tracker{
		counters: make(map[string]*prometheus.CounterVec),
		gauges:   make(map[string]*prometheus.GaugeVec),
		reg:      reg,
		ns:       ns,
		sub:      sub,
	}
}

// Add increments a counter.
func (t *Tracker) Add(_ context.Context, name string, increment float64, labelsAndValues ...string) {
	names, values := splitLabels(labelsAndValues)

	t.mu.Lock()
	v, ok := t.counters[name]
	if !ok {
		v = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: t.ns,
			Subsystem: t.sub,
			Name:      name,
			Help:      "Tracked counter " + name + ".",
		}, names)
		t.reg.MustRegister(v)
		t.counters[name] = v
	}
	t.mu.Unlock()

	v.WithLabelValues(values...).Add(increment)
}

// Set updates a gauge with an absolute value.
func (t *Tracker) Set(_ context.Context, name string, absolute float64, labelsAndValues ...string) {
	names, values := splitLabels(labelsAndValues)

	t.mu.Lock()
	v, ok := t.gauges[name]
	if !ok {
		v = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: t.ns,
			Subsystem: t.sub,
			Name:      name,
			Help:      "Tracked gauge " + name + ".",
		}, names)
		t.reg.MustRegister(v)
		t.gauges[name] = v
	}
	t.mu.Unlock()

	v.WithLabelValues(values...).Set(absolute)
}

// splitLabels unzips a flat list of label name/value pairs.
func splitLabels(labelsAndValues []string) (names, values []string) {
	names = make([]string, 0, len(labelsAndValues)/2)
	values = make([]string, 0, len(labelsAndValues)/2)

	for i := 0; i+1 < len(labelsAndValues); i += 2 {
		names = append(names, labelsAndValues[i])
		values = append(values, labelsAndValues[i+1])
	}

	return names, values
}

// Compile-time check: ensure Tracker implements stats.Tracker.
var _ stats.Tracker = &Tracker{}
