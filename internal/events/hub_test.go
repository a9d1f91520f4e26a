//go:build unit

package events_test

import (
	"testing"
	"time"

	"playpoint/internal/domain/session"
	"playpoint/internal/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedEvent(at time.Time) events.SessionStarted {
	return events.SessionStarted{
		Session:    session.Snapshot{ID: uuid.New(), StationID: uuid.New()},
		OccurredAt: at,
	}
}

func TestHubFanOut(t *testing.T) {
	hub := events.NewHub(8, nil)
	a := hub.Subscribe()
	b := hub.Subscribe()

	ev := startedEvent(time.Now())
	hub.Publish(ev)

	for _, sub := range []*events.Subscriber{a, b} {
		got := <-sub.Events()
		assert.Equal(t, events.TypeSessionStarted, got.EventType())
	}
}

func TestHubPublishNeverBlocks(t *testing.T) {
	hub := events.NewHub(2, nil)
	sub := hub.Subscribe()

	done := make(chan struct{})
	go func() {
		// Far more events than the buffer holds, with nobody draining.
		for i := 0; i < 100; i++ {
			hub.Publish(startedEvent(time.Now()))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}

	assert.Positive(t, sub.TakeDropped())
}

func TestHubDropOldest(t *testing.T) {
	hub := events.NewHub(1, nil)
	sub := hub.Subscribe()

	first := startedEvent(time.Unix(1, 0))
	second := startedEvent(time.Unix(2, 0))
	hub.Publish(first)
	hub.Publish(second)

	// The buffer held one slot; the older event was evicted.
	got := <-sub.Events()
	assert.Equal(t, second.At(), got.At())
	assert.Equal(t, 1, sub.TakeDropped())
	assert.Zero(t, sub.TakeDropped(), "TakeDropped resets the counter")
}

func TestHubUnsubscribe(t *testing.T) {
	hub := events.NewHub(8, nil)
	sub := hub.Subscribe()
	require.Equal(t, 1, hub.SubscriberCount())

	hub.Unsubscribe(sub)
	assert.Equal(t, 0, hub.SubscriberCount())

	_, open := <-sub.Events()
	assert.False(t, open, "channel closes on unsubscribe")

	// Double unsubscribe is a no-op, and publishing after is safe.
	hub.Unsubscribe(sub)
	hub.Publish(startedEvent(time.Now()))
}

func TestHubOrderingPerSubscriber(t *testing.T) {
	hub := events.NewHub(16, nil)
	sub := hub.Subscribe()

	for i := 1; i <= 10; i++ {
		hub.Publish(startedEvent(time.Unix(int64(i), 0)))
	}

	var last time.Time
	for i := 0; i < 10; i++ {
		got := <-sub.Events()
		assert.True(t, got.At().After(last))
		last = got.At()
	}
}
