// Package realtime is the in-process publish/subscribe broker behind the
// SSE endpoints. Services publish an event after every successful write;
// stream handlers subscribe to the topics their page cares about.
//
// Within one topic, events are delivered to each subscriber in publish
// order. Ordering across topics is not coordinated: a trip update and a chat
// message may reach the client in either order.
package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// Event is one unit of change pushed to subscribers. Payload must be
// JSON-marshalable; stream handlers serialize it verbatim.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// subscriberBuffer is the per-subscriber channel capacity. Publish never
// blocks: when a subscriber's buffer is full the event is dropped for that
// subscriber only. A dropped event is only made up for by the next event on
// the same record, so the buffer is sized well above any realistic burst;
// a client that falls that far behind recovers by reconnecting, which
// replays current state as a fresh snapshot frame.
const subscriberBuffer = 16

// Hub fans events out to per-topic subscribers.
// The zero value is not usable; construct with NewHub.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[uint64]chan Event
	nextID uint64
}

// NewHub constructs an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[uint64]chan Event)}
}

// Subscribe registers a new subscriber for topic and returns its event
// channel plus a cancel function. Cancel is idempotent and must be called on
// teardown — an unreleased subscription leaks its channel for the life of
// the process. The channel is closed by cancel, never by Publish.
func (h *Hub) Subscribe(topic string) (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[uint64]chan Event)
	}
	h.subs[topic][id] = ch
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			if subs, ok := h.subs[topic]; ok {
				delete(subs, id)
				if len(subs) == 0 {
					delete(h.subs, topic)
				}
			}
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers ev to every current subscriber of topic without blocking.
// Subscribers whose buffers are full miss this event.
func (h *Hub) Publish(topic string, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs[topic] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Topic naming. One topic per trip-list (keyed by collaborator email), one
// per trip subcollection, and a single global chat topic.

// TripsTopic is the per-user trip list topic.
func TripsTopic(email string) string { return "trips:" + email }

// TripMessagesTopic is the per-trip chat channel topic.
func TripMessagesTopic(tripID uuid.UUID) string { return "trip:" + tripID.String() + ":messages" }

// TripActivitiesTopic is the per-trip audit trail topic.
func TripActivitiesTopic(tripID uuid.UUID) string { return "trip:" + tripID.String() + ":activities" }

// ChatTopic is the single global chat channel topic.
const ChatTopic = "chat"
