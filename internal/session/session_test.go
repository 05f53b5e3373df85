package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSessionPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.toml")
}

func TestArgumentFragmentWins(t *testing.T) {
	path := testSessionPath(t)

	first := newStoreAt("/src/main.go", "", true, path)
	first.ReplaceFragment("#L10")

	// A fresh locator argument overrides whatever the record says.
	second := newStoreAt("/src/main.go", "#L3-9", true, path)
	assert.Equal(t, "#L3-9", second.Fragment())
}

func TestRestoreFromRecord(t *testing.T) {
	path := testSessionPath(t)

	first := newStoreAt("/src/main.go", "", true, path)
	first.ReplaceFragment("#L4")

	second := newStoreAt("/src/main.go", "", true, path)
	assert.Equal(t, "#L4", second.Fragment())
}

func TestRestoreDisabled(t *testing.T) {
	path := testSessionPath(t)

	first := newStoreAt("/src/main.go", "", true, path)
	first.ReplaceFragment("#L4")

	second := newStoreAt("/src/main.go", "", false, path)
	assert.Equal(t, "", second.Fragment())
}

func TestRecordsAreKeyedByFile(t *testing.T) {
	path := testSessionPath(t)

	a := newStoreAt("/src/a.go", "", true, path)
	a.ReplaceFragment("#L1")
	b := newStoreAt("/src/b.go", "", true, path)
	b.ReplaceFragment("#L2-5")

	assert.Equal(t, "#L1", newStoreAt("/src/a.go", "", true, path).Fragment())
	assert.Equal(t, "#L2-5", newStoreAt("/src/b.go", "", true, path).Fragment())
}

func TestReplaceOverwritesWithoutHistory(t *testing.T) {
	path := testSessionPath(t)

	store := newStoreAt("/src/main.go", "", true, path)
	store.ReplaceFragment("#L1")
	store.ReplaceFragment("#L2")
	store.ReplaceFragment("#L3")

	// Only the latest value survives.
	assert.Equal(t, "#L3", newStoreAt("/src/main.go", "", true, path).Fragment())
}

func TestEmptyFragmentClearsRecord(t *testing.T) {
	path := testSessionPath(t)

	store := newStoreAt("/src/main.go", "", true, path)
	store.ReplaceFragment("#L4")
	store.ReplaceFragment("")

	assert.Equal(t, "", newStoreAt("/src/main.go", "", true, path).Fragment())
}

func TestPermalink(t *testing.T) {
	store := newStoreAt("/src/main.go", "#L3-9", true, "")
	assert.Equal(t, "/src/main.go#L3-9", store.Permalink())

	store.ReplaceFragment("")
	assert.Equal(t, "/src/main.go", store.Permalink())
}

func TestCorruptRecordStartsClean(t *testing.T) {
	path := testSessionPath(t)
	require.NoError(t, os.WriteFile(path, []byte("not = [valid toml"), 0644))

	store := newStoreAt("/src/main.go", "", true, path)
	assert.Equal(t, "", store.Fragment())

	// And the store still works afterwards.
	store.ReplaceFragment("#L2")
	assert.Equal(t, "#L2", newStoreAt("/src/main.go", "", true, path).Fragment())
}

func TestMemoryHost(t *testing.T) {
	host := NewMemoryHost("#L5")
	assert.Equal(t, "#L5", host.Fragment())

	host.ReplaceFragment("#L1-2")
	assert.Equal(t, "#L1-2", host.Fragment())
}
