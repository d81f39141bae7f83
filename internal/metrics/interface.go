package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMatchesRecorded()
	IncDuplicateRejected()
	IncMatchesReversed()
	ObserveCommandDuration(duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}

// MetricsStore persists per-command usage counters in the database.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
