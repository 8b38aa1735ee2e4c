// Package metrics defines all custom Prometheus metrics for the guest
// management API. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hiru"

// GuestsCreatedTotal counts new guest registrations.
// Label:
//   - branch: the hotel branch the guest was registered at
var GuestsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guests_created_total",
		Help:      "Total number of guest records created, by branch.",
	},
	[]string{"branch"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "not_found", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ExtractionsTotal counts document extraction calls.
// Labels:
//   - doc_type: "passport" or "handwritten"
//   - result: "success", "parse_error", "not_configured", or "error"
var ExtractionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "extractions_total",
		Help:      "Total number of document extraction attempts, by document type and result.",
	},
	[]string{"doc_type", "result"},
)

// ExtractionDuration measures the end-to-end latency of an extraction call,
// the only unbounded-latency dependency in the system.
var ExtractionDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "extraction_duration_seconds",
		Help:      "Duration of external document extraction calls.",
		Buckets:   prometheus.DefBuckets,
	},
)

// StatsCacheTotal counts dashboard stats cache lookups.
// Label:
//   - result: "hit" or "miss"
var StatsCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_cache_total",
		Help:      "Total number of dashboard stats cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)
