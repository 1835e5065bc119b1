package pubsub

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBroker_Subscribe(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := broker.Subscribe(ctx)

	broker.Publish("cache", "hit")

	select {
	case event := <-ch:
		require.Equal(t, "hit", event.Payload)
		require.Equal(t, Topic("cache"), event.Topic)
		require.False(t, event.Timestamp.IsZero())
	case <-time.After(100 * time.Millisecond):
		require.Fail(t, "timeout waiting for event")
	}
}

func TestBroker_TopicFilter(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx := context.Background()

	cacheOnly := broker.Subscribe(ctx, "cache")
	all := broker.Subscribe(ctx)

	broker.Publish("markup", "parsed")
	broker.Publish("cache", "hit")

	// The filtered subscriber sees only the cache event.
	select {
	case event := <-cacheOnly:
		require.Equal(t, Topic("cache"), event.Topic)
		require.Equal(t, "hit", event.Payload)
	case <-time.After(100 * time.Millisecond):
		require.Fail(t, "timeout waiting for filtered event")
	}
	select {
	case event := <-cacheOnly:
		require.Fail(t, "unexpected event on filtered channel", "%+v", event)
	default:
	}

	// The unfiltered subscriber sees both, in publish order.
	first := <-all
	second := <-all
	require.Equal(t, Topic("markup"), first.Topic)
	require.Equal(t, Topic("cache"), second.Topic)
}

func TestBroker_MultipleSubscribers(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx := context.Background()

	ch1 := broker.Subscribe(ctx)
	ch2 := broker.Subscribe(ctx)
	ch3 := broker.Subscribe(ctx)

	require.Equal(t, 3, broker.SubscriberCount())

	broker.Publish("render", 42)

	for i, ch := range []<-chan Event[int]{ch1, ch2, ch3} {
		select {
		case event := <-ch:
			require.Equal(t, 42, event.Payload, "subscriber %d", i)
			require.Equal(t, Topic("render"), event.Topic, "subscriber %d", i)
		case <-time.After(100 * time.Millisecond):
			require.Fail(t, "timeout waiting for event", "subscriber %d", i)
		}
	}
}

func TestBroker_ContextCancellation(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())

	ch := broker.Subscribe(ctx)
	require.Equal(t, 1, broker.SubscriberCount())

	cancel()
	time.Sleep(20 * time.Millisecond) // wait for cleanup goroutine

	require.Equal(t, 0, broker.SubscriberCount())

	_, ok := <-ch
	require.False(t, ok, "channel should be closed")
}

func TestBroker_NonBlocking(t *testing.T) {
	broker := NewBrokerWithBuffer[int](1)
	defer broker.Close()

	ctx := context.Background()

	ch := broker.Subscribe(ctx)

	// Fill the buffer.
	broker.Publish("markup", 1)

	// These must not block even though the buffer is full.
	done := make(chan bool)
	go func() {
		broker.Publish("markup", 2)
		broker.Publish("markup", 3)
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		require.Fail(t, "Publish blocked")
	}

	// Only the first event made it into the buffer.
	event := <-ch
	require.Equal(t, 1, event.Payload)
}

func TestBroker_Close(t *testing.T) {
	broker := NewBroker[string]()

	ctx := context.Background()

	ch1 := broker.Subscribe(ctx)
	ch2 := broker.Subscribe(ctx, "cache")

	require.Equal(t, 2, broker.SubscriberCount())

	broker.Close()

	_, ok1 := <-ch1
	_, ok2 := <-ch2

	require.False(t, ok1, "ch1 should be closed")
	require.False(t, ok2, "ch2 should be closed")

	require.Equal(t, 0, broker.SubscriberCount())

	// Subscribe after close returns an already-closed channel.
	ch3 := broker.Subscribe(ctx)
	_, ok3 := <-ch3
	require.False(t, ok3, "ch3 should be closed immediately")

	// Publish after close must not panic.
	broker.Publish("cache", "test")
}

func TestBroker_CloseReleasesCleanupGoroutines(t *testing.T) {
	before := runtime.NumGoroutine()

	broker := NewBroker[string]()
	for i := 0; i < 8; i++ {
		// Never-cancelled contexts: only Close can release these.
		broker.Subscribe(context.Background())
	}
	broker.Close()

	require.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, 2*time.Second, 10*time.Millisecond, "subscriber cleanup goroutines should exit on Close")
}

func TestBroker_CloseIdempotent(t *testing.T) {
	broker := NewBroker[string]()

	ctx := context.Background()
	ch := broker.Subscribe(ctx)

	broker.Close()
	broker.Close()
	broker.Close()

	_, ok := <-ch
	require.False(t, ok, "channel should be closed")
}
