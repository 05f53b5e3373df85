package ui

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"lineview/internal/config"
	"lineview/internal/domain"
	"lineview/internal/eventbus"
	"lineview/internal/session"
	"lineview/internal/ui/services/events"
	"lineview/internal/ui/services/highlight"
	"lineview/internal/ui/services/selection"
	"lineview/internal/ui/viewer"
	"lineview/internal/ui/views"
)

// chromeHeight is the rows taken by the title and status bars around the
// viewer.
const chromeHeight = 2

// Host is the ambient location the selection lives in, plus the shareable
// form of it. Injected rather than reached for globally so the model is
// testable in isolation.
type Host interface {
	session.Host
	Permalink() string
}

// Model represents the UI state
type Model struct {
	cfg     *config.Config
	bus     eventbus.EventBus
	uiBus   events.EventBus
	host    Host
	zones   *zone.Manager
	styles  *views.Styles
	helpOps *HelpOps

	viewer *viewer.Viewer
	sel    *selection.Service
	binder *highlight.Binder

	keys keyMap
	help help.Model

	width     int
	height    int
	statusMsg string
	quitting  bool

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. doc may be nil; it arrives later as a
// DocumentLoadedEvent in that case.
func NewModel(cfg *config.Config, doc *domain.Document, host Host, bus eventbus.EventBus) *Model {
	uiBus := events.NewBus()
	zones := zone.New()
	st := views.NewStyles()

	m := &Model{
		cfg:    cfg,
		bus:    bus,
		uiBus:  uiBus,
		host:   host,
		zones:  zones,
		styles: st,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}

	m.viewer = viewer.New(zones, st, cfg.Theme, cfg.UISettings.ShowGutter)
	if doc != nil {
		m.viewer.SetDocument(doc)
	}

	// The selection seeds itself from the host fragment; the binder renders
	// the restored highlight immediately after.
	m.sel = selection.NewService(uiBus, host)
	m.binder = highlight.NewBinder(m.viewer, m.sel, uiBus)

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewer.SetSize(msg.Width, msg.Height-chromeHeight)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case EventMsg:
		return m.handleEvent(msg.Event)

	case clipboardResultMsg:
		if msg.err != nil {
			m.statusMsg = m.styles.StatusError.Render("Copy failed: " + msg.err.Error())
		} else {
			m.statusMsg = "Permalink copied"
		}

	case helpPagerMsg:
		if msg.err != nil {
			log.Printf("Help pager error: %v", msg.err)
			m.statusMsg = m.styles.StatusError.Render("Failed to open help")
		}
	}

	return m, nil
}

// handleKey processes keyboard input
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.teardown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Down):
		m.viewer.ScrollBy(1)
	case key.Matches(msg, m.keys.Up):
		m.viewer.ScrollBy(-1)
	case key.Matches(msg, m.keys.PageDown):
		m.viewer.Page(1)
	case key.Matches(msg, m.keys.PageUp):
		m.viewer.Page(-1)
	case key.Matches(msg, m.keys.Top):
		m.viewer.ScrollToTop()
	case key.Matches(msg, m.keys.Bottom):
		m.viewer.ScrollToBottom()

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyPermalinkCmd()

	case key.Matches(msg, m.keys.Help):
		return m, m.showHelpCmd()
	}

	return m, nil
}

// handleMouse routes clicks through the highlight binder and handles wheel
// scrolling itself.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.viewer.ScrollBy(-3)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.viewer.ScrollBy(3)
		return m, nil
	}

	if m.binder.HandleMouse(msg) {
		m.statusMsg = ""
	}
	return m, nil
}

// handleEvent processes domain events forwarded from the app bus
func (m *Model) handleEvent(event eventbus.DomainEvent) (tea.Model, tea.Cmd) {
	switch e := event.(type) {
	case eventbus.DocumentLoadedEvent:
		m.setDocument(e.Doc)

	case eventbus.DocumentChangedEvent:
		m.setDocument(e.Doc)
		m.statusMsg = "File reloaded"

	case eventbus.ErrorEvent:
		log.Printf("Error event: %s: %v", e.Message, e.Err)
		m.statusMsg = m.styles.StatusError.Render(e.Message)
	}

	return m, nil
}

// setDocument swaps the viewer content and lets bound reactions re-apply
// their decorations against the new version.
func (m *Model) setDocument(doc *domain.Document) {
	m.viewer.SetDocument(doc)
	m.uiBus.Publish(highlight.ContentChangedEvent{Version: doc.Version})
}

// copyPermalinkCmd copies the current locator to the system clipboard.
func (m *Model) copyPermalinkCmd() tea.Cmd {
	link := m.host.Permalink()
	return func() tea.Msg {
		return clipboardResultMsg{err: clipboard.WriteAll(link)}
	}
}

// showHelpCmd opens the keybinding help in the ov pager.
func (m *Model) showHelpCmd() tea.Cmd {
	if m.helpOps == nil {
		return nil
	}
	content := NewHelpRenderer().RenderHelpContent()
	return func() tea.Msg {
		return helpPagerMsg{err: m.helpOps.ShowHelpInPager(content)}
	}
}

// teardown releases resources on every exit path: the binder's decoration
// and subscriptions, then the zone manager's worker.
func (m *Model) teardown() {
	if m.quitting {
		return
	}
	m.quitting = true
	m.binder.Close()
	m.zones.Close()
}

// View renders the UI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	title := m.styles.Title.Render("lineview")
	name := m.styles.Dim.Render(" " + filepath.Base(m.host.Permalink()))
	header := title + name

	status := m.statusMsg
	if status == "" {
		status = m.styles.Status.Render(m.statusLine())
	}

	frame := lipgloss.JoinVertical(lipgloss.Left, header, m.viewer.View(), status)

	// Scan registers this frame's zone marks so the next click hit-tests
	// against what is actually on screen.
	return m.zones.Scan(frame)
}

// statusLine summarizes the selection and the standing key hints.
func (m *Model) statusLine() string {
	hint := m.help.View(m.keys)
	if lo, hi, ok := m.sel.Range(); ok {
		if lo == hi {
			return fmt.Sprintf("L%d · %s", lo, hint)
		}
		return fmt.Sprintf("L%d-%d · %s", lo, hi, hint)
	}
	return hint
}
