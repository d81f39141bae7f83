package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service implements Metrics backed by Prometheus collectors.
type Service struct {
	MatchesRecorded    prometheus.Counter
	DuplicateRejected  prometheus.Counter
	MatchesReversed    prometheus.Counter
	CommandDuration    prometheus.Histogram
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
