package selection

// None is the sentinel for "no selection". Either both components of the
// state are None or both are valid 1-based line numbers.
const None = -1

// State holds the current line selection. Anchor is the first line clicked,
// Focus the most recently extended-to line. The pair is deliberately left
// unordered while stored; bounds are min/max'd only when rendering or
// serializing.
type State struct {
	Anchor int
	Focus  int
}

// SelectionChangedEvent is published after every state change, once the new
// pair is fully in place. Fragment carries the serialized form that was
// written to the host ("" when the selection was cleared).
type SelectionChangedEvent struct {
	Anchor   int
	Focus    int
	Fragment string
}
