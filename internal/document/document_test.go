package document

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lineview/internal/eventbus"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSplitsLines(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.go", "package main\n\nfunc main() {}\n")

	svc := NewService(eventbus.New(), path)
	doc, err := svc.Load()
	require.NoError(t, err)

	assert.Equal(t, path, doc.Path)
	assert.Equal(t, []string{"package main", "", "func main() {}"}, doc.Lines)
	assert.Equal(t, 1, doc.Version)
}

func TestLoadWithoutTrailingNewline(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "one\ntwo")

	svc := NewService(eventbus.New(), path)
	doc, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, doc.Lines)
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.txt", "")

	svc := NewService(eventbus.New(), path)
	doc, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, doc.LineCount())
}

func TestLoadMissingFile(t *testing.T) {
	svc := NewService(eventbus.New(), filepath.Join(t.TempDir(), "nope.txt"))
	_, err := svc.Load()
	assert.Error(t, err)
}

func TestLoadPublishesDocumentLoaded(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "hello\n")
	bus := eventbus.New()

	loaded := make(chan eventbus.DomainEvent, 1)
	bus.Subscribe(eventbus.EventDocumentLoaded, func(e eventbus.DomainEvent) {
		loaded <- e
	})

	svc := NewService(bus, path)
	_, err := svc.Load()
	require.NoError(t, err)

	select {
	case e := <-loaded:
		event := e.(eventbus.DocumentLoadedEvent)
		assert.Equal(t, []string{"hello"}, event.Doc.Lines)
	case <-time.After(time.Second):
		t.Fatal("DocumentLoadedEvent was not published")
	}
}

func TestWatchPublishesOnRewrite(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "first\n")
	bus := eventbus.New()

	changed := make(chan eventbus.DomainEvent, 4)
	bus.Subscribe(eventbus.EventDocumentChanged, func(e eventbus.DomainEvent) {
		changed <- e
	})

	svc := NewService(bus, path)
	_, err := svc.Load()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = svc.Watch(ctx)
	}()

	// Give the watcher a moment to establish before touching the file.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("second\n"), 0644))

	select {
	case e := <-changed:
		event := e.(eventbus.DocumentChangedEvent)
		assert.Equal(t, []string{"second"}, event.Doc.Lines)
		assert.Greater(t, event.Doc.Version, 1, "reload bumps the version")
	case <-time.After(3 * time.Second):
		t.Fatal("DocumentChangedEvent was not published")
	}
}

func TestWatchIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "content\n")
	bus := eventbus.New()

	changed := make(chan eventbus.DomainEvent, 4)
	bus.Subscribe(eventbus.EventDocumentChanged, func(e eventbus.DomainEvent) {
		changed <- e
	})

	svc := NewService(bus, path)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = svc.Watch(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	writeFile(t, dir, "other.txt", "noise\n")

	select {
	case <-changed:
		t.Fatal("sibling file write must not trigger a reload")
	case <-time.After(300 * time.Millisecond):
	}
}
