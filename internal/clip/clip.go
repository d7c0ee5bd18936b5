// Package clip provides the clipboard accessor the capture strategies drive.
// Build constraints select the implementation:
//
//	clip_system.go   — desktop platforms via golang.design/x/clipboard
//	clip_headless.go — stub for headless / CI builds (tag "headless")
//
// The capture strategies mutate the clipboard destructively (sentinel writes,
// simulated copies), so every caller is expected to Take a Snapshot first and
// Restore it on every exit path.
package clip

import "errors"

// ErrNoContent reports that the clipboard holds nothing in the requested
// format. It is a normal condition, not a backend failure.
var ErrNoContent = errors.New("clip: no content")

// Clipboard is the minimal surface the capture strategies need.
type Clipboard interface {
	// ReadText returns the clipboard's text payload, or ErrNoContent when
	// the clipboard holds no text.
	ReadText() (string, error)

	// ReadImage returns the clipboard's image payload (PNG bytes), or
	// ErrNoContent when the clipboard holds no image.
	ReadImage() ([]byte, error)

	WriteText(text string) error
	WriteImage(data []byte) error

	// Clear empties the clipboard.
	Clear() error
}
