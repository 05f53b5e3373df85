package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventDocumentLoaded  EventType = "DocumentLoaded"
	EventDocumentChanged EventType = "DocumentChanged"
	EventError           EventType = "Error"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// DocumentLoadedEvent is emitted when the viewed file is first read
type DocumentLoadedEvent struct {
	Doc *Document
}

func (e DocumentLoadedEvent) Type() EventType { return EventDocumentLoaded }

// DocumentChangedEvent is emitted when the viewed file was rewritten on disk
// and reloaded
type DocumentChangedEvent struct {
	Doc *Document
}

func (e DocumentChangedEvent) Type() EventType { return EventDocumentChanged }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Theme string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
