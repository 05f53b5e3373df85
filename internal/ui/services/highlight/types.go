package highlight

import (
	tea "github.com/charmbracelet/bubbletea"
)

// NoHandle marks the absence of an outstanding decoration.
const NoHandle = 0

// Viewer is the slice of the text widget the binder drives. Decoration
// handles are lookup keys into viewer state, not ownership: the viewer may
// invalidate them wholesale when its content is replaced, which is why the
// binder re-applies after every ContentChangedEvent.
type Viewer interface {
	// ApplyLineRangeHighlight decorates lines start..end inclusive with the
	// selection style and returns a handle for later removal.
	ApplyLineRangeHighlight(start, end int) int
	// RemoveHighlight releases a decoration. Unknown handles are ignored.
	RemoveHighlight(handle int)
	// RevealLine centers line if it is outside the current viewport.
	RevealLine(line int)
	// RevealLineRange scrolls just enough to bring the range into view; it
	// never re-centers a range that is already visible.
	RevealLineRange(start, end int)
	// GutterLineAt reports whether the click landed on a line-number gutter
	// cell, and if so the cell's textual line number.
	GutterLineAt(msg tea.MouseMsg) (string, bool)
}

// ContentChangedEvent is published on the UI service bus when the viewer's
// document was replaced. Decoration handles issued before it are invalid.
type ContentChangedEvent struct {
	Version int
}
