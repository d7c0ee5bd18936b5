package capture

import "errors"

var (
	// ErrNotInContext reports that a full-document capture succeeded but did
	// not contain the previously captured selection. This usually means the
	// select-all landed in a different scope than the original selection
	// (a sub-field vs. the whole document), so it is kept distinct from
	// "no context available".
	ErrNotInContext = errors.New("capture: selection not found in captured text")

	// ErrTimeout reports that a clipboard-mutating sequence exceeded its
	// time budget. The budget is checked between phases only: a synthetic
	// key event cannot be cancelled once issued.
	ErrTimeout = errors.New("capture: clipboard sequence exceeded time budget")
)

// ClipboardError wraps a failure of the clipboard backend.
type ClipboardError struct {
	Err error
}

func (e *ClipboardError) Error() string { return "capture: clipboard: " + e.Err.Error() }
func (e *ClipboardError) Unwrap() error { return e.Err }

// InputError wraps a failure of the key simulator.
type InputError struct {
	Err error
}

func (e *InputError) Error() string { return "capture: input: " + e.Err.Error() }
func (e *InputError) Unwrap() error { return e.Err }
