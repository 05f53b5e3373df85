package domain

// Document is a source file loaded for viewing. Lines hold the raw text
// without trailing newlines. Version is bumped on every reload so consumers
// can tell a fresh load from the one they last rendered.
type Document struct {
	Path    string
	Lines   []string
	Version int
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	if d == nil {
		return 0
	}
	return len(d.Lines)
}

// InRange reports whether line is a valid 1-based line number for this
// document.
func (d *Document) InRange(line int) bool {
	return line >= 1 && line <= d.LineCount()
}
