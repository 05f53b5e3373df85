package events

import (
	"fmt"
	"sync"
)

// Bus is a simple event bus for UI services. Dispatch is synchronous: every
// handler runs before Publish returns, so a reaction always observes the
// publisher's fully updated state. All UI services live on the bubbletea
// update loop, so handlers never race with each other.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]*listener
}

type listener struct {
	fn func(interface{})
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[string][]*listener),
	}
}

// Subscribe registers a handler for an event type and returns an unsubscribe
// function.
func (b *Bus) Subscribe(eventType string, handler func(interface{})) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	l := &listener{fn: handler}
	b.listeners[eventType] = append(b.listeners[eventType], l)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		ls := b.listeners[eventType]
		for i, candidate := range ls {
			if candidate == l {
				b.listeners[eventType] = append(ls[:i], ls[i+1:]...)
				break
			}
		}
	}
}

// Publish sends an event to all listeners registered for its type, in
// subscription order.
func (b *Bus) Publish(event interface{}) {
	b.mu.RLock()
	ls := b.listeners[TypeOf(event)]
	lsCopy := make([]*listener, len(ls))
	copy(lsCopy, ls)
	b.mu.RUnlock()

	for _, l := range lsCopy {
		l.fn(event)
	}
}

// TypeOf returns the event type key for a value: its Go type name, e.g.
// "selection.SelectionChangedEvent". Subscribers use it instead of spelling
// type names out by hand.
func TypeOf(event interface{}) string {
	return fmt.Sprintf("%T", event)
}
