package events

// EventBus is a simple interface for publishing events between UI services.
// Subscribe returns an unsubscribe function so bindings can detach on
// teardown.
type EventBus interface {
	Publish(event interface{})
	Subscribe(eventType string, handler func(interface{})) func()
}

// NullBus is a no-op implementation of EventBus
type NullBus struct{}

func (n *NullBus) Publish(event interface{}) {}
func (n *NullBus) Subscribe(eventType string, handler func(interface{})) func() {
	return func() {}
}
