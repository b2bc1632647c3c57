// Package broadcast implements the KB Update Broadcaster: best-effort
// pub/sub fan-out of session mutations to interested subscribers.
package broadcast

import (
	"sync"

	"github.com/automenta/mcr/internal/logging"
)

// Update is the payload delivered after a successful assertion.
type Update struct {
	SessionID  string
	NewClauses []string
	FullKB     []string
}

// Subscriber receives Updates. Notify must not block for long; the
// Broadcaster calls it synchronously during broadcast.
type Subscriber interface {
	Notify(update Update)
}

// SubscriberFunc adapts a plain function to Subscriber.
type SubscriberFunc func(update Update)

func (f SubscriberFunc) Notify(update Update) { f(update) }

// Broadcaster maintains sessionId -> set<subscriber> and delivers
// updates best-effort: a subscriber that panics is dropped rather than
// failing the caller's assertion path.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[string]map[Subscriber]struct{}
	log  *logging.Logger
}

// New builds an empty Broadcaster.
func New() *Broadcaster {
	return &Broadcaster{
		subs: make(map[string]map[Subscriber]struct{}),
		log:  logging.Get(logging.CategoryBroadcast),
	}
}

// Subscribe registers sub for updates on sessionID.
func (b *Broadcaster) Subscribe(sessionID string, sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	set, ok := b.subs[sessionID]
	if !ok {
		set = make(map[Subscriber]struct{})
		b.subs[sessionID] = set
	}
	set[sub] = struct{}{}
}

// Unsubscribe removes sub from sessionID's subscriber set.
func (b *Broadcaster) Unsubscribe(sessionID string, sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	set, ok := b.subs[sessionID]
	if !ok {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(b.subs, sessionID)
	}
}

// UnsubscribeAll removes sub from every session it is registered under.
func (b *Broadcaster) UnsubscribeAll(sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sessionID, set := range b.subs {
		delete(set, sub)
		if len(set) == 0 {
			delete(b.subs, sessionID)
		}
	}
}

// Broadcast delivers update to every current subscriber of
// update.SessionID. A snapshot of the subscriber set is taken under
// lock so that concurrent subscribe/unsubscribe during delivery cannot
// corrupt the iteration; a subscriber that panics is recovered and
// dropped rather than propagating to the caller.
func (b *Broadcaster) Broadcast(update Update) {
	b.mu.Lock()
	set := b.subs[update.SessionID]
	snapshot := make([]Subscriber, 0, len(set))
	for sub := range set {
		snapshot = append(snapshot, sub)
	}
	b.mu.Unlock()

	for _, sub := range snapshot {
		b.deliver(sub, update)
	}
}

func (b *Broadcaster) deliver(sub Subscriber, update Update) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Warn("broadcast: subscriber panicked, dropping: %v", r)
			b.Unsubscribe(update.SessionID, sub)
		}
	}()
	sub.Notify(update)
}
