// Package metrics provides Prometheus instrumentation for the scholar store.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sort order labels.
const (
	OrderAlphabetical = "alphabetical"
	OrderDistance     = "distance"
)

// Metrics tracks sort cache behavior and record churn for one store.
type Metrics struct {
	SortRecomputed     *prometheus.CounterVec
	SortCacheHits      *prometheus.CounterVec
	RecordsAdded       *prometheus.CounterVec
	RecordsRemoved     *prometheus.CounterVec
	ReferencesRejected prometheus.Counter
}

// New creates the store metrics and registers them with reg. A nil reg
// leaves the collectors unregistered, which suits tests and one-shot
// commands.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SortRecomputed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scholar_sort_recomputed_total",
			Help: "Total full sorts of the affiliation id list by order",
		}, []string{"order"}),
		SortCacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scholar_sort_cache_hits_total",
			Help: "Total ordered reads served from a valid sort cache by order",
		}, []string{"order"}),
		RecordsAdded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scholar_records_added_total",
			Help: "Total records inserted by kind",
		}, []string{"kind"}),
		RecordsRemoved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scholar_records_removed_total",
			Help: "Total records removed by kind",
		}, []string{"kind"}),
		ReferencesRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "scholar_references_rejected_total",
			Help: "Total reference edges rejected because they would close a cycle",
		}),
	}
}

// ObserveSort records an ordered read, either a recompute or a cache hit.
func (m *Metrics) ObserveSort(order string, recomputed bool) {
	if recomputed {
		m.SortRecomputed.WithLabelValues(order).Inc()
		return
	}
	m.SortCacheHits.WithLabelValues(order).Inc()
}

// IncrementAdded records a successful insertion of the given kind.
func (m *Metrics) IncrementAdded(kind string) {
	m.RecordsAdded.WithLabelValues(kind).Inc()
}

// IncrementRemoved records a successful removal of the given kind.
func (m *Metrics) IncrementRemoved(kind string) {
	m.RecordsRemoved.WithLabelValues(kind).Inc()
}

// IncrementReferenceRejected records a refused cycle-forming reference.
func (m *Metrics) IncrementReferenceRejected() {
	m.ReferencesRejected.Inc()
}
