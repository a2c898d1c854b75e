package score

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/govsnap/govsnap/metrics"
)

const (
	subsystem = "score"

	outcomeOK    = "ok"
	outcomeError = "error"
	outcomeOpen  = "circuit_open"
)

var (
	requests = metrics.NewCounter(
		"requests",
		subsystem,
		"number of score api requests by outcome",
		[]string{"outcome"},
	)
	cacheLookups = metrics.NewCounter(
		"cache_lookups",
		subsystem,
		"number of per-address score cache lookups by result",
		[]string{"result"},
	)
	sharedRequests = metrics.NewCounter(
		"shared_requests",
		subsystem,
		"number of score lookups that shared one api request with identical concurrent lookups",
		[]string{},
	).WithLabelValues()
	requestDuration = metrics.NewHistogramWithBuckets(
		"request_duration_seconds",
		subsystem,
		"time in seconds to fetch scores including retries",
		[]string{},
		prometheus.ExponentialBuckets(0.05, 2, 12),
	).WithLabelValues()
)
