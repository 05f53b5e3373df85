package selection

import (
	"lineview/internal/fragment"
	"lineview/internal/session"
	"lineview/internal/ui/services/events"
)

// Service owns the canonical line selection and mirrors every change into
// the host fragment. Nothing else writes the selection or the fragment while
// the view is mounted.
type Service struct {
	state *State
	bus   events.EventBus
	host  session.Host
}

// NewService seeds the selection from the host's current fragment. A
// fragment that doesn't match #L<n> or #L<n>-<m> counts as no selection.
func NewService(bus events.EventBus, host session.Host) *Service {
	s := &Service{
		state: &State{Anchor: None, Focus: None},
		bus:   bus,
		host:  host,
	}

	if start, end, ok := fragment.Parse(host.Fragment()); ok {
		s.state.Anchor = start
		s.state.Focus = end
	}

	return s
}

// Toggle applies a gutter click at line. The cases are evaluated in order
// against the current state:
//
//  1. clicking the single currently-selected line again clears the selection
//  2. a plain click, or any click while nothing is selected, starts a fresh
//     single-line selection
//  3. a shift-click extends the range to line, keeping the anchor fixed
//
// Case 1 fires only on exact single-line reselection: clicking an endpoint
// of a multi-line range does not collapse, it falls through to case 2.
//
// line must be a positive line number; the click router filters everything
// else out before calling.
func (s *Service) Toggle(line int, shiftHeld bool) {
	switch {
	case s.state.Anchor == line && s.state.Focus == line:
		s.state.Anchor = None
		s.state.Focus = None
	case s.state.Anchor == None || !shiftHeld:
		s.state.Anchor = line
		s.state.Focus = line
	default:
		s.state.Focus = line
	}

	s.syncFragment()
}

// Selection returns the raw anchor/focus pair, in click order.
func (s *Service) Selection() (anchor, focus int) {
	return s.state.Anchor, s.state.Focus
}

// Range returns the normalized inclusive bounds for rendering. ok is false
// when nothing is selected.
func (s *Service) Range() (lo, hi int, ok bool) {
	if s.state.Anchor == None {
		return 0, 0, false
	}
	lo, hi = s.state.Anchor, s.state.Focus
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi, true
}

// HasSelection returns true if a line or range is selected.
func (s *Service) HasSelection() bool {
	return s.state.Anchor != None
}

// syncFragment rewrites the host fragment and notifies bound reactions. The
// state is fully updated before either side effect runs, so every subscriber
// observes a consistent pair.
func (s *Service) syncFragment() {
	frag := fragment.Format(s.state.Anchor, s.state.Focus)
	s.host.ReplaceFragment(frag)

	s.bus.Publish(SelectionChangedEvent{
		Anchor:   s.state.Anchor,
		Focus:    s.state.Focus,
		Fragment: frag,
	})
}
