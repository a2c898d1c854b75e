package router

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/govsnap/govsnap/metrics"
)

const subsystem = "router"

var (
	transitionsTotal = metrics.NewCounter(
		"transitions",
		subsystem,
		"number of sign request transitions by target status",
		[]string{"status"},
	)
	signDuration = metrics.NewHistogramWithBuckets(
		"sign_duration_seconds",
		subsystem,
		"time in seconds from sign request to signature by backend",
		[]string{"backend"},
		prometheus.ExponentialBuckets(0.01, 3, 12),
	)
	remoteQueued = metrics.NewGauge(
		"remote_queued",
		subsystem,
		"number of sign calls waiting for or holding the remote session",
		[]string{},
	).WithLabelValues()
)
