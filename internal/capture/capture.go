// Package capture implements the clipboard-based acquisition strategies:
// capturing the current selection by simulating the platform copy shortcut
// against a sentinel clipboard value, and recovering surrounding document
// context by simulating select-all.
//
// Both strategies mutate two global resources — the system clipboard and the
// keyboard input queue — against an application that offers no transactional
// guarantees. The package-level copy-paste lock totally orders all
// clipboard-mutating sequences process-wide, and every sequence snapshots the
// clipboard before touching it and restores it on every exit path.
package capture

import (
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/selgrab/selgrab/internal/clip"
	"github.com/selgrab/selgrab/internal/input"
)

// Config tunes the capture engine. Durations are settle intervals: fixed
// sleeps that let the OS and the focused application process a synthetic
// event before the next read. They are empirical, not negotiable handshakes.
type Config struct {
	// SettleWrite follows the sentinel write and each simulated shortcut.
	SettleWrite time.Duration
	// SettleRead precedes the clipboard read after a copy; applications can
	// take noticeably longer to service a copy than a keystroke.
	SettleRead time.Duration
	// SettleCancel separates the best-effort visual-cancel attempts.
	SettleCancel time.Duration
	// SettleFallback precedes a fallback strategy, to avoid racing the side
	// effects of whatever strategy just ran.
	SettleFallback time.Duration

	// Timeout bounds any clipboard-mutating sequence. It is enforced
	// between phases; in-flight OS calls are never killed.
	Timeout time.Duration
	// Poll is the sleep increment while waiting on a background sequence.
	Poll time.Duration

	// ContextBefore and ContextAfter bound the context window around a
	// located selection, in bytes of UTF-8, snapped inward to rune
	// boundaries.
	ContextBefore int
	ContextAfter  int
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		SettleWrite:    50 * time.Millisecond,
		SettleRead:     250 * time.Millisecond,
		SettleCancel:   100 * time.Millisecond,
		SettleFallback: 100 * time.Millisecond,
		Timeout:        5 * time.Second,
		Poll:           10 * time.Millisecond,
		ContextBefore:  150,
		ContextAfter:   150,
	}
}

// copyPasteMu totally orders all clipboard-mutating sequences process-wide.
// No two captures may interleave their sentinel-write/copy/read/restore
// cycles, even when called concurrently.
var copyPasteMu sync.Mutex

// sentinel is written to the clipboard before the copy simulation. Reading
// it back afterwards distinguishes "nothing was selected" from "the copy
// produced the same content the clipboard already had".
const sentinel = ""

// Engine drives a clipboard accessor and a key simulator.
type Engine struct {
	clip  clip.Clipboard
	input input.Simulator
	cfg   Config
}

// New returns an Engine over the given backends.
func New(c clip.Clipboard, in input.Simulator, cfg Config) *Engine {
	return &Engine{clip: c, input: in, cfg: cfg}
}

// Config returns the engine's tuning.
func (e *Engine) Config() Config { return e.cfg }

// CopySelection captures whatever is currently selected in the focused
// application by simulating the platform copy shortcut. It returns "" when
// nothing was selected. cancelSelect additionally taps the right arrow after
// the copy, collapsing the visible selection to its end.
//
// The OS-call-heavy portion runs on a background goroutine while the caller
// polls against the time budget. Key events cannot be recalled, so on
// timeout the sequence is still awaited to completion before the timeout is
// reported; only the caller's wait is bounded.
func (e *Engine) CopySelection(cancelSelect bool) (string, error) {
	copyPasteMu.Lock()
	defer copyPasteMu.Unlock()

	snap := clip.Take(e.clip)

	type outcome struct {
		text string
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		text, err := e.copySequence(cancelSelect)
		done <- outcome{text, err}
	}()

	deadline := time.Now().Add(e.cfg.Timeout)
	var out outcome
	timedOut := false
poll:
	for {
		select {
		case out = <-done:
			break poll
		case <-time.After(e.cfg.Poll):
			if time.Now().Before(deadline) {
				continue
			}
			slog.Debug("copy sequence over budget, awaiting completion")
			timedOut = true
			out = <-done
			break poll
		}
	}

	if rerr := snap.Restore(e.clip); rerr != nil {
		slog.Warn("clipboard restore failed", "err", rerr)
		if out.err == nil && !timedOut {
			out.err = &ClipboardError{rerr}
		}
	}

	if timedOut {
		return "", ErrTimeout
	}
	if out.err != nil {
		return "", out.err
	}
	return out.text, nil
}

// copySequence is the side-effecting core of CopySelection: sentinel write,
// settle, copy shortcut, optional selection cancel, settle, read.
func (e *Engine) copySequence(cancelSelect bool) (string, error) {
	if err := e.clip.WriteText(sentinel); err != nil {
		return "", &ClipboardError{err}
	}
	time.Sleep(e.cfg.SettleWrite)

	if err := e.copyShortcut(); err != nil {
		return "", err
	}

	if cancelSelect {
		if err := e.input.Tap("right"); err != nil {
			return "", &InputError{err}
		}
	}

	time.Sleep(e.cfg.SettleRead)

	text, err := e.clip.ReadText()
	if err != nil {
		if errors.Is(err, clip.ErrNoContent) {
			// The copy produced nothing at all; same as no selection.
			return "", nil
		}
		return "", &ClipboardError{err}
	}
	if strings.TrimSpace(text) == sentinel {
		return "", nil
	}
	return text, nil
}

// copyShortcut releases all modifiers and taps the platform copy shortcut.
func (e *Engine) copyShortcut() error {
	if err := e.input.ReleaseModifiers(); err != nil {
		return &InputError{err}
	}
	if err := e.input.Tap("c", input.PrimaryModifier()); err != nil {
		return &InputError{err}
	}
	return nil
}
