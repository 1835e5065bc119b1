// Package pubsub provides a generic topic-based publish/subscribe broker.
// It backs the live log stream: each log category publishes on its own
// topic and subscribers can follow all topics or a chosen subset.
package pubsub

import (
	"context"
	"time"
)

// Topic names an event stream within a broker.
type Topic string

// Event is a published value together with its topic and publish time.
type Event[T any] struct {
	Topic     Topic
	Payload   T
	Timestamp time.Time
}

// Subscriber provides subscription channels, optionally filtered by topic.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context, topics ...Topic) <-chan Event[T]
}

// Publisher publishes events on a topic.
type Publisher[T any] interface {
	Publish(topic Topic, payload T)
}
