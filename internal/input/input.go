// Package input issues synthetic key events to the OS input queue.
//
// Key injection is inherently unreliable: the OS may reject events (missing
// accessibility permission, secure input fields) and an event cannot be
// recalled once issued. Every operation therefore returns an error, and a
// process-wide lock serializes raw key sequences so concurrent captures
// cannot interleave their keystrokes.
package input

import "runtime"

// Simulator issues synthetic key events.
type Simulator interface {
	// Tap presses and releases key while holding mods.
	// Key names follow robotgo conventions: "c", "a", "right", "left", "esc".
	Tap(key string, mods ...string) error

	// ReleaseModifiers releases every modifier key. A modifier stuck down
	// from an earlier operation would corrupt the next shortcut, so the
	// strategies call this before each simulated shortcut.
	ReleaseModifiers() error
}

// PrimaryModifier returns the modifier used for copy/select-all shortcuts on
// the current platform: "cmd" on macOS, "ctrl" elsewhere.
func PrimaryModifier() string {
	if runtime.GOOS == "darwin" {
		return "cmd"
	}
	return "ctrl"
}
