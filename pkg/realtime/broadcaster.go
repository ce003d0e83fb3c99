package realtime

import "sync"

// Message is one named event delivered to SSE subscribers. Data is optional.
type Message struct {
	Event string
	Data  string
}

// Broadcaster publishes lightweight events to SSE subscribers.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[chan Message]struct{}
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subs: make(map[chan Message]struct{}),
	}
}

// Subscribe registers a new subscriber and returns its event channel.
func (b *Broadcaster) Subscribe() chan Message {
	ch := make(chan Message, 32)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Broadcaster) Unsubscribe(ch chan Message) {
	b.mu.Lock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}

// Publish delivers a message to all subscribers.
func (b *Broadcaster) Publish(msg Message) {
	b.mu.Lock()
	for ch := range b.subs {
		select {
		case ch <- msg:
		default:
			// Drop if the subscriber is lagging; the next snapshot catches it up.
		}
	}
	b.mu.Unlock()
}

// Count returns the number of live subscribers.
func (b *Broadcaster) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
