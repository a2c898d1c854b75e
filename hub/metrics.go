package hub

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/govsnap/govsnap/metrics"
)

const (
	subsystem = "hub"

	outcomeAccepted = "accepted"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

var (
	submissions = metrics.NewCounter(
		"submissions",
		subsystem,
		"number of envelopes submitted to the hub by outcome",
		[]string{"outcome"},
	)
	submitDuration = metrics.NewHistogramWithBuckets(
		"submit_duration_seconds",
		subsystem,
		"time in seconds to submit an envelope including retries",
		[]string{},
		prometheus.ExponentialBuckets(0.05, 2, 10),
	).WithLabelValues()
)
