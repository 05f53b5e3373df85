package fragment

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// pattern is the full grammar of a shareable line fragment: "#L5" or "#L3-9".
// Anything else is not a line fragment.
var pattern = regexp.MustCompile(`^#L(\d+)(-(\d+))?$`)

// Parse reads a fragment string and returns the encoded line bounds. A missing
// second number means a single line (end == start). Malformed or empty input
// reports ok == false, never an error.
func Parse(frag string) (start, end int, ok bool) {
	m := pattern.FindStringSubmatch(frag)
	if m == nil {
		return 0, 0, false
	}
	start, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, false
	}
	end = start
	if m[3] != "" {
		if end, err = strconv.Atoi(m[3]); err != nil {
			return 0, 0, false
		}
	}
	if start < 1 || end < 1 {
		// Line numbers are 1-based; "#L0" is not a valid fragment.
		return 0, 0, false
	}
	return start, end, true
}

// Format renders the fragment for an anchor/focus pair. This is the only
// place endpoint order is normalized; the stored pair stays unordered.
// The empty selection (-1, -1) renders as the empty string.
func Format(a, b int) string {
	if a < 1 || b < 1 {
		return ""
	}
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		return fmt.Sprintf("#L%d", lo)
	}
	return fmt.Sprintf("#L%d-%d", lo, hi)
}

// SplitLocator splits a locator argument like "internal/ui/model.go#L12-40"
// into its file path and fragment parts. A locator without a "#" is all path.
func SplitLocator(arg string) (path, frag string) {
	if i := strings.LastIndex(arg, "#"); i >= 0 {
		return arg[:i], arg[i:]
	}
	return arg, ""
}
