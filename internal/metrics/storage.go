// SPDX-License-Identifier: MIT

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RevisionAppendsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lintrc_revision_appends_total",
		Help: "Total number of revision history appends by backend and result",
	}, []string{"backend", "result"})

	RevisionsPruned = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lintrc_revisions_pruned_total",
		Help: "Total number of revisions removed by retention pruning",
	}, []string{"backend"})

	CacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lintrc_cache_hits_total",
		Help: "Total number of cache hits by backend",
	}, []string{"backend"})

	CacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lintrc_cache_misses_total",
		Help: "Total number of cache misses by backend",
	}, []string{"backend"})
)

// RecordRevisionAppend records one history append outcome.
func RecordRevisionAppend(backend string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	if backend == "" {
		backend = "unknown"
	}
	RevisionAppendsTotal.WithLabelValues(backend, result).Inc()
}
