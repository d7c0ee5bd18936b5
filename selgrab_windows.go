//go:build windows

package selgrab

import (
	"github.com/selgrab/selgrab/internal/uia"
)

func getSelectedText(cancelSelect bool) (string, error) {
	eng, err := systemEngine()
	if err != nil {
		return "", err
	}
	return eng.CopySelection(cancelSelect)
}

func getSelectedTextWithContext(cancelSelect bool) (Selection, error) {
	eng, err := systemEngine()
	if err != nil {
		return Selection{}, err
	}
	text, err := eng.CopySelection(cancelSelect)
	if err != nil {
		return Selection{}, err
	}
	cfg := eng.Config()
	return withContext(text, uiaStrategy(cfg.ContextBefore, cfg.ContextAfter), selectAllStrategy()), nil
}

// uiaStrategy asks UI Automation for the context around the focused
// selection, without any clipboard mutation.
func uiaStrategy(before, after int) contextStrategy {
	return func(selected string) (string, bool, error) {
		ctx, ok, err := uia.ContextFromFocus(selected, before, after)
		if err != nil {
			return "", false, &Error{Kind: KindUIA, Err: err}
		}
		return ctx, ok, nil
	}
}
