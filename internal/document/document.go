package document

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"lineview/internal/domain"
	"lineview/internal/eventbus"
)

// Service loads the viewed file and republishes it when it changes on disk,
// so the highlight reaction can re-run against fresh content.
type Service struct {
	bus  eventbus.EventBus
	path string

	mu      sync.Mutex
	version int
}

// NewService creates a document service for the file at path.
func NewService(bus eventbus.EventBus, path string) *Service {
	return &Service{
		bus:  bus,
		path: path,
	}
}

// Load reads the file and publishes a DocumentLoadedEvent.
func (s *Service) Load() (*domain.Document, error) {
	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	s.bus.Publish(eventbus.DocumentLoadedEvent{Doc: doc})
	return doc, nil
}

// Watch re-reads the file whenever it is written or replaced on disk and
// publishes DocumentChangedEvent. It blocks until ctx is cancelled. Editors
// that save via rename only touch the directory entry, so the watch is on
// the parent directory and filters by name.
func (s *Service) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(s.path), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != s.path {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}

			doc, err := s.read()
			if err != nil {
				// A transient window where the file is mid-replace is
				// expected; report and keep watching.
				s.bus.Publish(eventbus.ErrorEvent{
					Message: fmt.Sprintf("Failed to reload %s", s.path),
					Err:     err,
				})
				continue
			}
			s.bus.Publish(eventbus.DocumentChangedEvent{Doc: doc})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// read loads the file contents into a new Document with a bumped version.
func (s *Service) read() (*domain.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var lines []string
	if len(data) > 0 {
		lines = strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	}

	s.mu.Lock()
	s.version++
	version := s.version
	s.mu.Unlock()

	return &domain.Document{
		Path:    s.path,
		Lines:   lines,
		Version: version,
	}, nil
}
