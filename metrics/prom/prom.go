package prom

import (
	"github.com/IvanBrykalov/usagetracker/tracker"
	"github.com/prometheus/client_golang/prometheus"
)

// Adapter implements tracker.Metrics and exports Prometheus counters,
// a histogram, and gauges. Safe for concurrent use, since all Prometheus
// metric types are goroutine-safe, so one Adapter may be shared by several
// Trackers driven from different goroutines.
type Adapter struct {
	promotions prometheus.Counter
	demotions  prometheus.Counter
	epochSecs  prometheus.Histogram
	tableSize  prometheus.Gauge
	admitSize  prometheus.Gauge
}

// New constructs a Prometheus metrics adapter.
//   - reg:          registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		promotions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "promotions_total",
			Help:        "Keys promoted into the top-K set",
			ConstLabels: constLabels,
		}),
		demotions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "demotions_total",
			Help:        "Keys demoted out of the top-K set",
			ConstLabels: constLabels,
		}),
		epochSecs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "epoch_duration_seconds",
			Help:        "Wall-clock duration of a Progress() call",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}),
		tableSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "table_size",
			Help:        "Live elements in the score table after the last Progress()",
			ConstLabels: constLabels,
		}),
		admitSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "admit_size",
			Help:        "Keys held by the admission filter after the last Progress(), which resets it",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.promotions, a.demotions, a.epochSecs, a.tableSize, a.admitSize)
	return a
}

// Progressed records one Progress() call's wall-clock duration, in seconds.
func (a *Adapter) Progressed(d float64) { a.epochSecs.Observe(d) }

// Promoted increments the promotion counter.
func (a *Adapter) Promoted() { a.promotions.Inc() }

// Demoted increments the demotion counter.
func (a *Adapter) Demoted() { a.demotions.Inc() }

// Size updates the table-size and admit-size gauges.
func (a *Adapter) Size(tableLen, admitLen int) {
	a.tableSize.Set(float64(tableLen))
	a.admitSize.Set(float64(admitLen))
}

// Compile-time check: ensure Adapter implements tracker.Metrics.
var _ tracker.Metrics = (*Adapter)(nil)
