package events

import (
	"encoding/json"
	"log"
	"sync"
)

// Event names sent to board viewers.
const (
	TaskCreated = "task-created"
	TaskUpdated = "task-updated"
	TaskDeleted = "task-deleted"
)

// Message is one event frame: a name plus its JSON-encoded payload.
type Message struct {
	Event string
	Data  string
}

// Broker fans mutation events out to every connected viewer. Subscribers
// live for the duration of their event-stream connection; the set is
// in-process only.
type Broker struct {
	mu   sync.Mutex
	subs map[chan Message]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[chan Message]struct{})}
}

// Subscribe registers a new viewer and returns its channel. The channel is
// buffered so a slow reader never stalls Broadcast.
func (b *Broker) Subscribe() chan Message {
	ch := make(chan Message, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a viewer and closes its channel.
func (b *Broker) Unsubscribe(ch chan Message) {
	b.mu.Lock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}

// Broadcast serializes payload once and pushes the event to every current
// subscriber. A subscriber whose buffer is full misses the event; delivery
// to the others is unaffected.
func (b *Broker) Broadcast(event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("broadcast %s: %v", event, err)
		return
	}
	msg := Message{Event: event, Data: string(data)}

	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- msg:
		default:
		}
	}
}

// SubscriberCount reports how many viewers are connected.
func (b *Broker) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
