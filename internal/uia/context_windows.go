//go:build windows

package uia

import (
	"log/slog"
	"runtime"
	"strings"

	ole "github.com/go-ole/go-ole"

	"github.com/selgrab/selgrab/internal/capture"
)

// maxParentHops bounds the focused-element-to-root walk. Twenty levels is
// deeper than any sane control hierarchy; past that the focus is stale.
const maxParentHops = 20

// ContextFromFocus walks up from the focused element looking for an ancestor
// with a text pattern whose active selection matches selected (whitespace is
// ignored in the comparison: UI Automation and the clipboard disagree about
// line endings). On a match it returns, in order of preference: the
// selection's enclosing paragraph, a before/after byte window cut from the
// document range, or the raw pattern selection as its own context.
//
// ok=false with a nil error means no ancestor applied — a structural miss,
// not a failure; callers move on to the next strategy.
func ContextFromFocus(selected string, before, after int) (string, bool, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	needUninit := true
	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		// Already initialized on this thread in another mode; piggyback.
		needUninit = false
	}
	if needUninit {
		defer ole.CoUninitialize()
	}

	auto, err := newAutomation()
	if err != nil {
		return "", false, &Error{"create automation", err}
	}
	defer auto.Release()

	el, err := auto.focusedElement()
	if err != nil {
		return "", false, &Error{"focused element", err}
	}

	walker, err := auto.controlViewWalker()
	if err != nil {
		el.Release()
		return "", false, &Error{"control view walker", err}
	}
	defer walker.Release()

	for hop := 0; el != nil && hop < maxParentHops; hop++ {
		pat, perr := el.textPattern()
		if perr == nil {
			ctx, ok, cerr := contextFromPattern(pat, selected, before, after)
			pat.Release()
			if cerr != nil {
				el.Release()
				return "", false, cerr
			}
			if ok {
				el.Release()
				return ctx, true, nil
			}
		}

		parent, werr := walker.parent(el)
		el.Release()
		if werr != nil || parent == nil {
			el = nil
			break
		}
		el = parent
	}
	if el != nil {
		el.Release()
	}
	slog.Debug("no ancestor exposed a matching text pattern")
	return "", false, nil
}

// contextFromPattern checks whether pattern's active selection is the same
// selection the clipboard captured, and if so expands it into context.
func contextFromPattern(pat *textPattern, selected string, before, after int) (string, bool, error) {
	ranges, err := pat.selection()
	if err != nil {
		return "", false, &Error{"get selection", err}
	}
	defer ranges.Release()

	n, err := ranges.length()
	if err != nil {
		return "", false, &Error{"selection length", err}
	}
	if n == 0 {
		return "", false, nil
	}

	sel, err := ranges.element(0)
	if err != nil {
		return "", false, &Error{"selection range", err}
	}
	defer sel.Release()

	patternText, err := sel.text(-1)
	if err != nil {
		return "", false, &Error{"range text", err}
	}

	// A stale focus can leave the pattern holding some other selection;
	// only a two-way substring match proves it is ours.
	if !sameSelection(patternText, selected) {
		return "", false, nil
	}

	// Preferred: the enclosing paragraph, when it still holds the selection.
	if para, cerr := sel.clone(); cerr == nil {
		if para.expandToEnclosingUnit(textUnitParagraph) == nil {
			if text, terr := para.text(-1); terr == nil && strings.Contains(text, patternText) {
				para.Release()
				return text, true, nil
			}
		}
		para.Release()
	}

	// Fallback: cut a window out of the whole document.
	if doc, derr := pat.documentRange(); derr == nil {
		full, terr := doc.text(-1)
		doc.Release()
		if terr == nil {
			if ctx, ok := capture.Window(full, patternText, before, after); ok {
				return ctx, true, nil
			}
		}
	}

	// Last resort: the selection stands in for its own context.
	return patternText, true, nil
}

// sameSelection compares two captures of one selection, ignoring all
// whitespace.
func sameSelection(a, b string) bool {
	na := strings.Join(strings.Fields(a), "")
	nb := strings.Join(strings.Fields(b), "")
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}
