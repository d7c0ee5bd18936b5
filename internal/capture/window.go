package capture

import (
	"strings"
	"unicode/utf8"
)

// Window slices a window of before/after bytes around the first occurrence
// of selected in full. Boundaries are clamped to full's extent and snapped
// inward to valid rune boundaries — the window shrinks rather than include a
// partial rune. It returns ok=false when selected does not occur in full.
//
// The returned slice always contains selected, except in the degenerate case
// where snapping collapses the window (start ≥ end); then the whole capture
// is returned rather than a malformed slice, which still contains selected.
func Window(full, selected string, before, after int) (string, bool) {
	start := strings.Index(full, selected)
	if start < 0 {
		return "", false
	}
	end := start + len(selected)

	lo := start - before
	if lo < 0 {
		lo = 0
	}
	hi := end + after
	if hi > len(full) {
		hi = len(full)
	}

	// Snap inward, never outward: a fixed byte budget can land mid-rune.
	for lo < len(full) && !utf8.RuneStart(full[lo]) {
		lo++
	}
	for hi > lo && hi < len(full) && !utf8.RuneStart(full[hi]) {
		hi--
	}

	if lo >= hi {
		return full, true
	}
	return full[lo:hi], true
}
