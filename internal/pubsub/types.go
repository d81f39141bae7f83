package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// Topics for match lifecycle events.
const (
	EventMatchRecorded = "match-recorded"
	EventMatchReversed = "match-reversed"
)
