// Package selgrab captures the text currently selected in whatever
// application has input focus, plus a best-effort window of surrounding
// document context, without cooperation from that application.
//
// No single OS facility does this reliably, so each platform runs an
// ordered chain of strategies: accessibility queries first where they
// exist, clipboard simulation as the fallback. Process-wide locks keep
// concurrent calls from interleaving keystrokes or clobbering each other's
// clipboard snapshot, and the caller's clipboard comes back intact on
// every path, including timeouts.
package selgrab

import (
	"sync"
	"time"

	"github.com/selgrab/selgrab/internal/capture"
	"github.com/selgrab/selgrab/internal/clip"
	"github.com/selgrab/selgrab/internal/input"
)

// Selection is the result of a capture. Context is meaningful only when
// HasContext is set, and then it always contains Text as an exact
// substring.
type Selection struct {
	Text       string
	Context    string
	HasContext bool
}

// Options tunes subsequent captures. Zero-valued fields keep their current
// settings.
type Options struct {
	// Timeout bounds any clipboard-mutating sequence.
	Timeout time.Duration
	// ContextBefore and ContextAfter size the context window around the
	// selection, in bytes (snapped to rune boundaries).
	ContextBefore int
	ContextAfter  int
	// WebContentRoles overrides the accessibility roles treated as web
	// content on macOS, where context is trusted only from the value
	// attribute.
	WebContentRoles []string
}

var (
	optMu   sync.Mutex
	options Options
)

// SetOptions adjusts tuning for all subsequent calls.
func SetOptions(o Options) {
	optMu.Lock()
	defer optMu.Unlock()
	if o.Timeout > 0 {
		options.Timeout = o.Timeout
	}
	if o.ContextBefore > 0 {
		options.ContextBefore = o.ContextBefore
	}
	if o.ContextAfter > 0 {
		options.ContextAfter = o.ContextAfter
	}
	if o.WebContentRoles != nil {
		options.WebContentRoles = append([]string(nil), o.WebContentRoles...)
	}
}

func currentConfig() capture.Config {
	cfg := capture.DefaultConfig()
	optMu.Lock()
	defer optMu.Unlock()
	if options.Timeout > 0 {
		cfg.Timeout = options.Timeout
	}
	if options.ContextBefore > 0 {
		cfg.ContextBefore = options.ContextBefore
	}
	if options.ContextAfter > 0 {
		cfg.ContextAfter = options.ContextAfter
	}
	return cfg
}

// systemEngine wires the real clipboard and input simulator into a capture
// engine with the current tuning.
func systemEngine() (*capture.Engine, error) {
	c, err := clip.System()
	if err != nil {
		return nil, &Error{Kind: KindClipboard, Err: err}
	}
	return capture.New(c, input.System(), currentConfig()), nil
}

// GetSelectedText returns the focused application's current selection, or
// "" when nothing is selected. With cancelSelect the visual selection is
// collapsed to its end afterwards, where the capture path involves a copy
// simulation at all.
func GetSelectedText(cancelSelect bool) (string, error) {
	text, err := getSelectedText(cancelSelect)
	if err != nil {
		return "", wrapError(err)
	}
	return text, nil
}

// GetSelectedTextWithContext captures the selection and then tries, best
// effort, to surround it with document context. Failing to find context is
// not an error; losing the selection itself is.
func GetSelectedTextWithContext(cancelSelect bool) (Selection, error) {
	sel, err := getSelectedTextWithContext(cancelSelect)
	if err != nil {
		return Selection{}, wrapError(err)
	}
	return sel, nil
}
