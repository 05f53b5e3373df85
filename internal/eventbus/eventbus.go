package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"lineview/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventDocumentLoaded  = domain.EventDocumentLoaded
	EventDocumentChanged = domain.EventDocumentChanged
	EventError           = domain.EventError
	EventConfigLoaded    = domain.EventConfigLoaded
	EventConfigSaved     = domain.EventConfigSaved
)

// Re-export domain event types
type DocumentLoadedEvent = domain.DocumentLoadedEvent
type DocumentChangedEvent = domain.DocumentChangedEvent
type ErrorEvent = domain.ErrorEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

// registration wraps a handler so unsubscribe can find it again.
type registration struct {
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]*registration
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	quitOnce  sync.Once
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]*registration),
		eventChan: make(chan DomainEvent, 100),
		quit:      make(chan struct{}),
	}

	// Start the event dispatcher
	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	select {
	case b.eventChan <- event:
	default:
		// Channel full, log and drop
		log.Printf("Event bus channel full, dropping event: %v", event.Type())
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	reg := &registration{handler: handler}
	b.handlers[eventType] = append(b.handlers[eventType], reg)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		regs := b.handlers[eventType]
		for i, r := range regs {
			if r == reg {
				b.handlers[eventType] = append(regs[:i], regs[i+1:]...)
				break
			}
		}
	}
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			// Copy the handler list so subscribers can (un)subscribe from
			// inside a handler without holding up the lock
			b.mu.RLock()
			regs := b.handlers[event.Type()]
			regsCopy := make([]*registration, len(regs))
			copy(regsCopy, regs)
			b.mu.RUnlock()

			for _, reg := range regsCopy {
				b.call(reg.handler, event)
			}

		case <-b.quit:
			// Drain remaining events
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}

// call invokes a handler, recovering from panics so one bad subscriber
// cannot take the dispatcher down.
func (b *bus) call(handler EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Event handler panic for %s: %v\nStack: %s", event.Type(), r, debug.Stack())
		}
	}()
	handler(event)
}
