package selgrab

import (
	"errors"
	"fmt"

	"github.com/selgrab/selgrab/internal/capture"
)

// Kind classifies an acquisition failure. Callers branch on Kind, never on
// the message text.
type Kind uint8

const (
	// KindOther covers failures outside the named categories.
	KindOther Kind = iota
	// KindClipboard is a clipboard backend failure.
	KindClipboard
	// KindOS is a platform-service failure (AppleScript execution, frontmost
	// application lookup).
	KindOS
	// KindUIA is a Windows UI Automation failure.
	KindUIA
	// KindInput is a rejected or failed synthetic key event.
	KindInput
	// KindNoSelection means no strategy could locate any selected text.
	KindNoSelection
	// KindNotInContext means a full-document capture succeeded but did not
	// contain the previously captured selection.
	KindNotInContext
	// KindTimeout means a clipboard-mutating sequence exceeded its budget.
	KindTimeout
	// KindUnimplemented means the platform has no strategy wired up.
	KindUnimplemented
)

func (k Kind) String() string {
	switch k {
	case KindClipboard:
		return "clipboard"
	case KindOS:
		return "os"
	case KindUIA:
		return "uia"
	case KindInput:
		return "input"
	case KindNoSelection:
		return "no selection"
	case KindNotInContext:
		return "selection not in context"
	case KindTimeout:
		return "timeout"
	case KindUnimplemented:
		return "unimplemented"
	}
	return "other"
}

// Error is the one error type this package returns.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("selgrab: %s: %s", e.Kind, e.Detail)
	case e.Err != nil:
		return fmt.Sprintf("selgrab: %s: %v", e.Kind, e.Err)
	}
	return "selgrab: " + e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// wrapError maps internal strategy errors onto the public taxonomy. Errors
// already carrying a Kind pass through untouched.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	var pub *Error
	if errors.As(err, &pub) {
		return err
	}
	switch {
	case errors.Is(err, capture.ErrTimeout):
		return &Error{Kind: KindTimeout, Err: err}
	case errors.Is(err, capture.ErrNotInContext):
		return &Error{Kind: KindNotInContext, Err: err}
	}
	var clipErr *capture.ClipboardError
	if errors.As(err, &clipErr) {
		return &Error{Kind: KindClipboard, Err: err}
	}
	var inputErr *capture.InputError
	if errors.As(err, &inputErr) {
		return &Error{Kind: KindInput, Err: err}
	}
	return &Error{Kind: KindOther, Err: err}
}
