package fragment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSingleLine(t *testing.T) {
	start, end, ok := Parse("#L5")
	require.True(t, ok)
	assert.Equal(t, 5, start)
	assert.Equal(t, 5, end)
}

func TestParseRange(t *testing.T) {
	start, end, ok := Parse("#L3-9")
	require.True(t, ok)
	assert.Equal(t, 3, start)
	assert.Equal(t, 9, end)
}

func TestParseMalformed(t *testing.T) {
	malformed := []string{
		"",
		"#",
		"#L",
		"#Lxyz",
		"#L5-",
		"#L-9",
		"#L5-9-12",
		"#L 5",
		"L5",
		"#l5",
		"#L0",
		"#L5-0",
		"something#L5",
	}
	for _, frag := range malformed {
		_, _, ok := Parse(frag)
		assert.False(t, ok, "expected %q to be rejected", frag)
	}
}

func TestFormatEmpty(t *testing.T) {
	assert.Equal(t, "", Format(-1, -1))
}

func TestFormatSingleLine(t *testing.T) {
	assert.Equal(t, "#L7", Format(7, 7))
}

func TestFormatNormalizesOrder(t *testing.T) {
	assert.Equal(t, "#L2-4", Format(4, 2))
	assert.Equal(t, "#L2-4", Format(2, 4))
}

func TestRoundTripIsIdempotent(t *testing.T) {
	pairs := [][2]int{{1, 1}, {4, 2}, {2, 4}, {10, 200}, {7, 7}}
	for _, pair := range pairs {
		frag := Format(pair[0], pair[1])
		start, end, ok := Parse(frag)
		require.True(t, ok, "fragment %q should parse", frag)

		lo, hi := pair[0], pair[1]
		if lo > hi {
			lo, hi = hi, lo
		}
		assert.Equal(t, lo, start)
		assert.Equal(t, hi, end)

		// A second round-trip is a no-op: the parsed pair is already
		// normalized.
		assert.Equal(t, frag, Format(start, end))
	}
}

func TestSplitLocator(t *testing.T) {
	path, frag := SplitLocator("internal/ui/model.go#L12-40")
	assert.Equal(t, "internal/ui/model.go", path)
	assert.Equal(t, "#L12-40", frag)

	path, frag = SplitLocator("plain/path.go")
	assert.Equal(t, "plain/path.go", path)
	assert.Equal(t, "", frag)
}
