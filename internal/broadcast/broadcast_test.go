package broadcast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBroadcastDeliversOnlyToMatchingSessionSubscribers(t *testing.T) {
	b := New()
	var gotA, gotB []Update

	b.Subscribe("sess-a", SubscriberFunc(func(u Update) { gotA = append(gotA, u) }))
	b.Subscribe("sess-b", SubscriberFunc(func(u Update) { gotB = append(gotB, u) }))

	b.Broadcast(Update{SessionID: "sess-a", NewClauses: []string{"cat(fluffy)."}})

	assert.Len(t, gotA, 1)
	assert.Empty(t, gotB)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()
	var count int
	sub := SubscriberFunc(func(u Update) { count++ })

	b.Subscribe("sess-a", sub)
	b.Broadcast(Update{SessionID: "sess-a"})
	b.Unsubscribe("sess-a", sub)
	b.Broadcast(Update{SessionID: "sess-a"})

	assert.Equal(t, 1, count)
}

func TestUnsubscribeAllRemovesFromEverySession(t *testing.T) {
	b := New()
	var count int
	sub := SubscriberFunc(func(u Update) { count++ })

	b.Subscribe("sess-a", sub)
	b.Subscribe("sess-b", sub)
	b.UnsubscribeAll(sub)

	b.Broadcast(Update{SessionID: "sess-a"})
	b.Broadcast(Update{SessionID: "sess-b"})

	assert.Equal(t, 0, count)
}

func TestBroadcastRecoversFromPanickingSubscriber(t *testing.T) {
	b := New()
	var delivered bool

	b.Subscribe("sess-a", SubscriberFunc(func(u Update) { panic("boom") }))
	b.Subscribe("sess-a", SubscriberFunc(func(u Update) { delivered = true }))

	assert.NotPanics(t, func() {
		b.Broadcast(Update{SessionID: "sess-a"})
	})
	assert.True(t, delivered)
}

func TestBroadcastToSessionWithNoSubscribersIsNoop(t *testing.T) {
	b := New()
	assert.NotPanics(t, func() {
		b.Broadcast(Update{SessionID: "unknown"})
	})
}
