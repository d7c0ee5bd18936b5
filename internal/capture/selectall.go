package capture

import (
	"errors"
	"log/slog"
	"time"

	"github.com/selgrab/selgrab/internal/clip"
	"github.com/selgrab/selgrab/internal/input"
)

// SelectAllContext recovers the document text surrounding selected by
// simulating select-all + copy, locating selected in the capture, and
// slicing a bounded window around it. It returns ok=false without any
// simulation when selected is empty — context is meaningless without a
// selection.
//
// Every phase is bounded by the engine's time budget: if the budget is
// already spent when a phase would start, the sequence aborts with
// ErrTimeout and skips straight to the clipboard restore. When the capture
// succeeds but does not contain selected, the error is ErrNotInContext.
func (e *Engine) SelectAllContext(selected string) (string, bool, error) {
	if selected == "" {
		return "", false, nil
	}

	copyPasteMu.Lock()
	defer copyPasteMu.Unlock()

	start := time.Now()
	snap := clip.Take(e.clip)

	full, err := e.selectAllSequence(start)

	// The select-all left the whole document visually selected. Undoing
	// that is cosmetic: the result is already determined, so every cleanup
	// failure is discarded. Skipped on timeout — restore comes first.
	if !errors.Is(err, ErrTimeout) {
		e.cancelSelectAll()
	}

	if rerr := snap.Restore(e.clip); rerr != nil {
		slog.Warn("clipboard restore failed", "err", rerr)
		if err == nil {
			err = &ClipboardError{rerr}
		}
	}
	if err != nil {
		return "", false, err
	}

	ctx, ok := Window(full, selected, e.cfg.ContextBefore, e.cfg.ContextAfter)
	if !ok {
		return "", false, ErrNotInContext
	}
	return ctx, true, nil
}

// selectAllSequence simulates select-all + copy and reads the result,
// checking the elapsed budget before each phase.
func (e *Engine) selectAllSequence(start time.Time) (string, error) {
	if err := e.input.ReleaseModifiers(); err != nil {
		return "", &InputError{err}
	}
	time.Sleep(e.cfg.SettleWrite)

	if e.overBudget(start) {
		return "", ErrTimeout
	}
	if err := e.input.Tap("a", input.PrimaryModifier()); err != nil {
		return "", &InputError{err}
	}
	time.Sleep(e.cfg.SettleWrite)

	if e.overBudget(start) {
		return "", ErrTimeout
	}
	if err := e.copyShortcut(); err != nil {
		return "", err
	}
	time.Sleep(e.cfg.SettleRead)

	if e.overBudget(start) {
		return "", ErrTimeout
	}
	text, err := e.clip.ReadText()
	if err != nil {
		return "", &ClipboardError{err}
	}
	return text, nil
}

// cancelSelectAll tries, in order, the tricks that un-highlight a select-all
// in most applications: escape, a left-arrow tap, a right-arrow tap, and an
// explicit modifier release. Individual failures are ignored.
func (e *Engine) cancelSelectAll() {
	_ = e.input.Tap("esc")
	time.Sleep(e.cfg.SettleCancel)
	_ = e.input.Tap("left")
	time.Sleep(e.cfg.SettleCancel)
	_ = e.input.Tap("right")
	time.Sleep(e.cfg.SettleCancel)
	_ = e.input.ReleaseModifiers()
}

func (e *Engine) overBudget(start time.Time) bool {
	return time.Since(start) > e.cfg.Timeout
}
