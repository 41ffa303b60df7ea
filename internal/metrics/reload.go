// SPDX-License-Identifier: MIT

package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReloadTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lintrc_reload_total",
		Help: "Total number of configuration reload attempts by trigger and result",
	}, []string{"trigger", "result"})

	ReloadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lintrc_reload_duration_seconds",
		Help:    "Time spent resolving and validating a configuration snapshot",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})

	LastReloadTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lintrc_last_reload_timestamp_seconds",
		Help: "Unix timestamp of the last successful configuration reload",
	})

	DeprecatedOptionTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lintrc_deprecated_option_total",
		Help: "Total number of deprecated options seen in loaded configuration files",
	}, []string{"section", "option"})

	WatchEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lintrc_watch_events_total",
		Help: "Total number of file watcher events by operation",
	}, []string{"op"})
)

// RecordReload records one reload attempt outcome.
func RecordReload(trigger string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	ReloadTotal.WithLabelValues(normalizeTriggerLabel(trigger), result).Inc()
}

// RecordDeprecatedOption records one deprecated option occurrence.
func RecordDeprecatedOption(section, option string) {
	if section == "" {
		section = "unknown"
	}
	if option == "" {
		option = "unknown"
	}
	DeprecatedOptionTotal.WithLabelValues(section, option).Inc()
}

func normalizeTriggerLabel(trigger string) string {
	switch strings.ToLower(strings.TrimSpace(trigger)) {
	case "boot", "watch", "signal", "api", "manual":
		return strings.ToLower(strings.TrimSpace(trigger))
	default:
		return "unknown"
	}
}
