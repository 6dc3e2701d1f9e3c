// Package metrics counts pipeline resolution outcomes: which tier
// served each fetch, content cache hit rates per layer, and preload
// volume.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Tier labels for FetchResolved.
const (
	TierMemory     = "memory"
	TierPersistent = "persistent"
	TierNetwork    = "network"
	TierFallback   = "fallback"
)

// Content cache layer labels.
const (
	LayerMemory     = "memory"
	LayerPersistent = "persistent"
)

type Metrics struct {
	fetchResolved    *prometheus.CounterVec
	contentCacheHit  *prometheus.CounterVec
	contentCacheMiss prometheus.Counter
	preloadFetches   prometheus.Counter
}

// New registers the pipeline metrics with reg and returns them.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		fetchResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oddly_fetch_resolved_total",
			Help: "Fetches resolved, by the tier that served them.",
		}, []string{"tier"}),
		contentCacheHit: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oddly_content_cache_hits_total",
			Help: "Content cache hits, by layer.",
		}, []string{"layer"}),
		contentCacheMiss: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "oddly_content_cache_misses_total",
			Help: "Content cache misses across both layers.",
		}),
		preloadFetches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "oddly_preload_fetches_total",
			Help: "Content fetches issued by the preloader.",
		}),
	}
	reg.MustRegister(m.fetchResolved, m.contentCacheHit, m.contentCacheMiss, m.preloadFetches)
	return m
}

// All methods are nil-safe so components can run unmetered.

func (m *Metrics) FetchResolved(tier string) {
	if m == nil {
		return
	}
	m.fetchResolved.WithLabelValues(tier).Inc()
}

func (m *Metrics) ContentCacheHit(layer string) {
	if m == nil {
		return
	}
	m.contentCacheHit.WithLabelValues(layer).Inc()
}

func (m *Metrics) ContentCacheMiss() {
	if m == nil {
		return
	}
	m.contentCacheMiss.Inc()
}

func (m *Metrics) PreloadFetch() {
	if m == nil {
		return
	}
	m.preloadFetches.Inc()
}
