package viewer

import (
	"bytes"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"lineview/internal/domain"
	"lineview/internal/ui/views"
)

const zonePrefix = "gutter:"

// lineRange is one whole-line decoration, bounds inclusive and 1-based.
type lineRange struct {
	start, end int
}

// Viewer renders a document with a line-number gutter and implements the
// widget half of the highlight contract: whole-line decorations, reveal
// scrolling, and gutter hit-testing for the click router. Scrolling is
// offset-based; offset is the first visible line, 0-based.
type Viewer struct {
	zones  *zone.Manager
	styles *views.Styles
	theme  string

	doc        *domain.Document
	rendered   []string // syntax-highlighted lines, same length as doc.Lines
	showGutter bool

	offset int
	width  int
	height int

	decorations map[int]lineRange
	nextHandle  int
}

// New creates a viewer. zones is the shared hit-test manager owned by the
// root model; theme is a chroma style name.
func New(zones *zone.Manager, st *views.Styles, theme string, showGutter bool) *Viewer {
	return &Viewer{
		zones:       zones,
		styles:      st,
		theme:       theme,
		showGutter:  showGutter,
		decorations: make(map[int]lineRange),
	}
}

// SetSize updates the visible area. Height is content rows only; the caller
// accounts for any chrome around the viewer.
func (v *Viewer) SetSize(width, height int) {
	v.width = width
	v.height = height
	if v.height < 1 {
		v.height = 1
	}
	v.clampOffset()
}

// SetDocument replaces the displayed content. All previously issued
// decoration handles become invalid; callers holding one must re-apply.
func (v *Viewer) SetDocument(doc *domain.Document) {
	v.doc = doc
	v.rendered = v.highlightSource(doc)
	v.decorations = make(map[int]lineRange)
	v.clampOffset()
}

// LineCount returns the number of lines in the current document.
func (v *Viewer) LineCount() int {
	return v.doc.LineCount()
}

// ApplyLineRangeHighlight decorates lines start..end inclusive and returns
// the decoration handle.
func (v *Viewer) ApplyLineRangeHighlight(start, end int) int {
	v.nextHandle++
	v.decorations[v.nextHandle] = lineRange{start: start, end: end}
	return v.nextHandle
}

// RemoveHighlight releases a decoration. Handles invalidated by a content
// reload are simply unknown here and ignored.
func (v *Viewer) RemoveHighlight(handle int) {
	delete(v.decorations, handle)
}

// RevealLine centers line if it is outside the current viewport; a line
// already on screen stays where it is.
func (v *Viewer) RevealLine(line int) {
	idx := line - 1
	if idx >= v.offset && idx < v.offset+v.height {
		return
	}
	v.offset = idx - v.height/2
	v.clampOffset()
}

// RevealLineRange scrolls just enough to bring the range into view. Unlike
// RevealLine it never re-centers; a partially visible range moves the
// minimum distance, and a range taller than the viewport pins its start to
// the top.
func (v *Viewer) RevealLineRange(start, end int) {
	lo, hi := start-1, end-1
	if hi-lo+1 >= v.height {
		v.offset = lo
	} else if lo < v.offset {
		v.offset = lo
	} else if hi >= v.offset+v.height {
		v.offset = hi - v.height + 1
	}
	v.clampOffset()
}

// GutterLineAt reports whether the mouse event landed on a gutter cell and,
// if so, the cell's line number text. Hit-testing goes through the zone
// marks laid down at render time, never raw coordinates, so layout changes
// cannot desync it. Only visible cells have zones, so the scan is bounded by
// the viewport height.
func (v *Viewer) GutterLineAt(msg tea.MouseMsg) (string, bool) {
	if !v.showGutter || v.doc == nil {
		return "", false
	}
	last := v.offset + v.height
	if last > v.doc.LineCount() {
		last = v.doc.LineCount()
	}
	for idx := v.offset; idx < last; idx++ {
		line := idx + 1
		z := v.zones.Get(zoneID(line))
		if z.IsZero() {
			continue
		}
		if z.InBounds(msg) {
			return strconv.Itoa(line), true
		}
	}
	return "", false
}

// ScrollBy moves the viewport by delta lines.
func (v *Viewer) ScrollBy(delta int) {
	v.offset += delta
	v.clampOffset()
}

// Page moves the viewport by whole pages.
func (v *Viewer) Page(pages int) {
	v.ScrollBy(pages * v.height)
}

// ScrollToTop jumps to the first line.
func (v *Viewer) ScrollToTop() {
	v.offset = 0
}

// ScrollToBottom jumps so the last line is visible.
func (v *Viewer) ScrollToBottom() {
	v.offset = v.doc.LineCount() - v.height
	v.clampOffset()
}

// Offset returns the first visible line index, 0-based.
func (v *Viewer) Offset() int {
	return v.offset
}

// View renders the visible window.
func (v *Viewer) View() string {
	if v.doc == nil || v.doc.LineCount() == 0 {
		return v.styles.Placeholder.Render("(empty file)")
	}

	gutterWidth := v.gutterWidth()
	last := v.offset + v.height
	if last > v.doc.LineCount() {
		last = v.doc.LineCount()
	}

	var b strings.Builder
	for idx := v.offset; idx < last; idx++ {
		line := idx + 1
		selected := v.decorated(line)

		if v.showGutter {
			cell := fmt.Sprintf("%*d ", gutterWidth, line)
			if selected {
				cell = v.styles.GutterSelected.Render(cell)
			} else {
				cell = v.styles.Gutter.Render(cell)
			}
			// Zone-marked so clicks resolve to this cell by identity.
			b.WriteString(v.zones.Mark(zoneID(line), cell))
		}

		if selected {
			// Decorated lines drop syntax colors for a whole-line selection
			// background, padded to the content width.
			b.WriteString(v.styles.SelectionBg.Render(v.padLine(v.doc.Lines[idx], gutterWidth)))
		} else {
			b.WriteString(v.rendered[idx])
		}

		if idx < last-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// decorated reports whether line falls inside any active decoration.
func (v *Viewer) decorated(line int) bool {
	for _, d := range v.decorations {
		if line >= d.start && line <= d.end {
			return true
		}
	}
	return false
}

// padLine pads raw text so the selection background spans the content area.
func (v *Viewer) padLine(text string, gutterWidth int) string {
	contentWidth := v.width
	if v.showGutter {
		contentWidth -= gutterWidth + 1
	}
	if pad := contentWidth - lipgloss.Width(text); pad > 0 {
		return text + strings.Repeat(" ", pad)
	}
	return text
}

// gutterWidth sizes the gutter to the widest line number, with a floor of 3.
func (v *Viewer) gutterWidth() int {
	w := len(strconv.Itoa(v.doc.LineCount()))
	if w < 3 {
		w = 3
	}
	return w
}

// clampOffset keeps the viewport inside the document.
func (v *Viewer) clampOffset() {
	max := v.doc.LineCount() - v.height
	if max < 0 {
		max = 0
	}
	if v.offset > max {
		v.offset = max
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

// highlightSource runs the document through chroma, falling back to the raw
// lines when highlighting fails.
func (v *Viewer) highlightSource(doc *domain.Document) []string {
	if doc.LineCount() == 0 {
		return nil
	}
	source := strings.Join(doc.Lines, "\n")

	lexer := lexers.Match(doc.Path)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(v.theme)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		log.Printf("Tokenize failed for %s: %v", doc.Path, err)
		return append([]string(nil), doc.Lines...)
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		log.Printf("Highlight failed for %s: %v", doc.Path, err)
		return append([]string(nil), doc.Lines...)
	}

	rendered := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(rendered) != doc.LineCount() {
		// Keep gutter numbers and content aligned no matter what the
		// formatter produced.
		return append([]string(nil), doc.Lines...)
	}
	return rendered
}

func zoneID(line int) string {
	return zonePrefix + strconv.Itoa(line)
}
