package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"lineview/internal/config"
	"lineview/internal/document"
	"lineview/internal/eventbus"
	"lineview/internal/fragment"
	"lineview/internal/session"
	"lineview/internal/ui"
)

func main() {
	// Parse command line arguments
	var lineFlag string
	var themeFlag string
	flag.StringVar(&lineFlag, "line", "", "Line or range to select, e.g. 5 or 3-9")
	flag.StringVar(&lineFlag, "L", "", "Line or range to select (shorthand)")
	flag.StringVar(&themeFlag, "theme", "", "Chroma style name, overrides the configured theme")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: lineview [-L line[-line]] [-theme name] file[#L3-9]")
		os.Exit(2)
	}

	// A locator argument may carry the fragment directly: main.go#L3-9
	path, frag := fragment.SplitLocator(flag.Arg(0))
	if frag == "" && lineFlag != "" {
		frag = normalizeLineFlag(lineFlag)
	}

	// Resolve to absolute path
	absPath, err := filepath.Abs(path)
	if err != nil {
		fmt.Printf("Error resolving path: %v\n", err)
		os.Exit(1)
	}

	// Set up logging
	logFile, err := os.OpenFile("lineview.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create event bus
	bus := eventbus.New()

	// Load configuration
	configSvc := config.NewConfigServiceWithBus(bus)
	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		cfg = config.DefaultConfig()
	}
	if themeFlag != "" {
		cfg.Theme = themeFlag
	}

	// The session store is the host the selection fragment lives in: the CLI
	// fragment wins, otherwise the record from the previous run is restored.
	store := session.NewStore(absPath, frag, cfg.UISettings.RestoreSession)

	// Load the document up front so the first frame has content
	docSvc := document.NewService(bus, absPath)
	doc, err := docSvc.Load()
	if err != nil {
		fmt.Printf("Error opening %s: %v\n", absPath, err)
		os.Exit(1)
	}

	// Create UI model
	uiModel := ui.NewModel(cfg, doc, store, bus)

	// Create Bubble Tea program
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UISettings.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(uiModel, opts...)
	uiModel.SetProgram(p)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	bus.Subscribe(eventbus.EventDocumentChanged, forward)
	bus.Subscribe(eventbus.EventError, forward)

	// Start forwarding events to UI in background
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Watch the file for changes so the view follows edits made elsewhere
	go func() {
		if err := docSvc.Watch(ctx); err != nil {
			log.Printf("File watch stopped: %v", err)
		}
	}()

	// Run the UI
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	// Cleanup
	close(eventChan)
	cancel()
}

// normalizeLineFlag turns the -L flag's accepted spellings (5, 3-9, L5,
// #L3-9) into fragment form.
func normalizeLineFlag(value string) string {
	value = strings.TrimPrefix(value, "#")
	value = strings.TrimPrefix(value, "L")
	return "#L" + value
}
