package session

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Host is the ambient location the selection fragment lives in: read once
// when the view mounts, replaced in place on every selection change. Replace
// semantics mean no history accumulates; the previous value is simply
// overwritten.
type Host interface {
	Fragment() string
	ReplaceFragment(frag string)
}

// record is the on-disk shape of the session file: one fragment per viewed
// file path.
type record struct {
	Locations map[string]string `toml:"locations"`
}

// Store is the production Host. The initial fragment comes from the locator
// argument when one was given, otherwise from the session record saved by a
// previous run. Every replace rewrites the record so the selection survives
// a restart and the permalink can be shared at any time.
type Store struct {
	filePath    string // absolute path of the viewed file
	frag        string // current fragment, "" when no selection
	sessionPath string // where the record lives, "" disables persistence
	locations   map[string]string
}

// NewStore creates a session store for filePath. argFragment is the fragment
// carried by the CLI locator ("" when none); restore controls whether a
// missing argument falls back to the saved record.
func NewStore(filePath, argFragment string, restore bool) *Store {
	return newStoreAt(filePath, argFragment, restore, defaultSessionPath())
}

// newStoreAt is NewStore with an explicit session file location.
func newStoreAt(filePath, argFragment string, restore bool, sessionPath string) *Store {
	s := &Store{
		filePath:    filePath,
		sessionPath: sessionPath,
		locations:   make(map[string]string),
	}
	s.load()

	switch {
	case argFragment != "":
		s.frag = argFragment
	case restore:
		s.frag = s.locations[filePath]
	}
	return s
}

// Fragment returns the current fragment string. Read once at initialization
// by the selection store; malformed content is the parser's problem, not
// ours.
func (s *Store) Fragment() string {
	return s.frag
}

// ReplaceFragment overwrites the current fragment and the session record.
// Persistence failures are logged and swallowed: the fragment write is a
// fire-and-forget host primitive, not a fallible operation the caller
// handles.
func (s *Store) ReplaceFragment(frag string) {
	s.frag = frag
	if frag == "" {
		delete(s.locations, s.filePath)
	} else {
		s.locations[s.filePath] = frag
	}
	if err := s.save(); err != nil {
		log.Printf("Failed to save session record: %v", err)
	}
}

// Permalink returns the shareable locator for the current state, e.g.
// "/home/x/main.go#L3-9". Without a selection it is just the file path.
func (s *Store) Permalink() string {
	return s.filePath + s.frag
}

// load reads the session record. A missing or unreadable file starts clean.
func (s *Store) load() {
	if s.sessionPath == "" {
		return
	}
	data, err := os.ReadFile(s.sessionPath)
	if err != nil {
		return
	}
	var rec record
	if err := toml.Unmarshal(data, &rec); err != nil {
		log.Printf("Failed to parse session record: %v", err)
		return
	}
	if rec.Locations != nil {
		s.locations = rec.Locations
	}
}

// save rewrites the whole session record.
func (s *Store) save() error {
	if s.sessionPath == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.sessionPath), 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	data, err := toml.Marshal(record{Locations: s.locations})
	if err != nil {
		return fmt.Errorf("failed to marshal session record: %w", err)
	}
	if err := os.WriteFile(s.sessionPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write session record: %w", err)
	}
	return nil
}

// defaultSessionPath resolves the session file under the user config dir.
func defaultSessionPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "lineview", "session.toml")
}

// MemoryHost keeps the fragment in memory only. Used by tests and anywhere
// persistence is unwanted.
type MemoryHost struct {
	frag string
}

// NewMemoryHost creates a MemoryHost seeded with frag.
func NewMemoryHost(frag string) *MemoryHost {
	return &MemoryHost{frag: frag}
}

func (h *MemoryHost) Fragment() string            { return h.frag }
func (h *MemoryHost) ReplaceFragment(frag string) { h.frag = frag }
