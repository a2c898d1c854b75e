package tally

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/govsnap/govsnap/metrics"
)

const (
	subsystem = "tally"

	outcomeOK          = "ok"
	outcomeUnavailable = "unavailable"
	outcomeInvalid     = "invalid"
)

var (
	tabulations = metrics.NewCounter(
		"tabulations",
		subsystem,
		"number of proposals tabulated by voting method and outcome",
		[]string{"method", "outcome"},
	)
	skippedVotes = metrics.NewCounter(
		"skipped_votes",
		subsystem,
		"number of votes skipped because their choice does not fit the voting method",
		[]string{},
	).WithLabelValues()
	tabulateDuration = metrics.NewHistogramWithBuckets(
		"tabulate_duration_seconds",
		subsystem,
		"time in seconds to tabulate a proposal including scoring",
		[]string{},
		prometheus.ExponentialBuckets(0.001, 4, 10),
	).WithLabelValues()
)
