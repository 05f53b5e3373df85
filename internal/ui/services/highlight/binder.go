package highlight

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"lineview/internal/ui/services/events"
	"lineview/internal/ui/services/selection"
)

// Binder keeps the viewer's visual state in step with the selection service
// and translates gutter clicks into Toggle calls. At most one decoration is
// outstanding at any time.
type Binder struct {
	viewer Viewer
	sel    *selection.Service
	bus    events.EventBus

	handle int
	unsubs []func()
	closed bool
}

// NewBinder subscribes the highlight reaction and renders the initial state,
// so a selection restored from a fragment is highlighted before any
// interaction happens.
func NewBinder(viewer Viewer, sel *selection.Service, bus events.EventBus) *Binder {
	b := &Binder{
		viewer: viewer,
		sel:    sel,
		bus:    bus,
		handle: NoHandle,
	}

	b.unsubs = append(b.unsubs,
		bus.Subscribe(events.TypeOf(selection.SelectionChangedEvent{}), func(interface{}) {
			b.refresh()
		}),
		bus.Subscribe(events.TypeOf(ContentChangedEvent{}), func(interface{}) {
			b.refresh()
		}),
	)

	b.refresh()
	return b
}

// HandleMouse routes a gutter click to the selection service. It reports
// whether the click was consumed. Clicks outside the gutter, non-left
// buttons, and cells whose text does not parse to a positive line number are
// all ignored here so Toggle never sees invalid input.
func (b *Binder) HandleMouse(msg tea.MouseMsg) bool {
	if b.closed {
		return false
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return false
	}

	text, ok := b.viewer.GutterLineAt(msg)
	if !ok {
		return false
	}
	line, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || line < 1 {
		return false
	}

	b.sel.Toggle(line, msg.Shift)
	return true
}

// refresh is the reactive body: remove the previous decoration, then apply
// and reveal the current range. It runs on every selection change and every
// content change; a content reload invalidates old handles on the viewer
// side, so the stale handle is dropped either way.
func (b *Binder) refresh() {
	if b.closed {
		return
	}

	if b.handle != NoHandle {
		b.viewer.RemoveHighlight(b.handle)
		b.handle = NoHandle
	}

	lo, hi, ok := b.sel.Range()
	if !ok {
		return
	}

	b.handle = b.viewer.ApplyLineRangeHighlight(lo, hi)
	if lo == hi {
		b.viewer.RevealLine(lo)
	} else {
		b.viewer.RevealLineRange(lo, hi)
	}
}

// Close detaches the reactions and releases the outstanding decoration.
// Safe to call more than once; it runs on every teardown path.
func (b *Binder) Close() {
	if b.closed {
		return
	}
	b.closed = true

	for _, unsub := range b.unsubs {
		unsub()
	}
	b.unsubs = nil

	if b.handle != NoHandle {
		b.viewer.RemoveHighlight(b.handle)
		b.handle = NoHandle
	}
}
