package ui

import (
	"lineview/internal/eventbus"
)

// EventMsg wraps a domain event forwarded from the app bus into the
// bubbletea update loop.
type EventMsg struct {
	Event eventbus.DomainEvent
}

// clipboardResultMsg contains the result of a copy-permalink command
type clipboardResultMsg struct {
	err error
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}
