//go:build darwin

package selgrab

import (
	"errors"
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/selgrab/selgrab/internal/ax"
	"github.com/selgrab/selgrab/internal/capture"
	"github.com/selgrab/selgrab/internal/clip"
)

// speculativePeekLimit caps how long a clipboard remnant may be before the
// accessibility chain refuses to guess that it is the selection.
const speculativePeekLimit = 256

var (
	resolverOnce sync.Once
	resolver     *capture.Resolver
)

// systemResolver ties the accessibility chain and the osascript clipboard
// fallback together under the per-application method cache.
func systemResolver() *capture.Resolver {
	resolverOnce.Do(func() {
		resolver = capture.NewResolver(ax.FrontmostAppName, accessibilitySelectedText, ax.SelectedTextViaScript)
	})
	return resolver
}

// accessibilitySelectedText runs the AX chain; when the tree exposes no
// selection, a short clipboard remnant is taken as a speculative guess
// before giving up on the accessibility method entirely.
func accessibilitySelectedText() (string, error) {
	text, err := ax.SelectedText()
	if err == nil {
		return text, nil
	}
	if c, cerr := clip.System(); cerr == nil {
		if peek, perr := c.ReadText(); perr == nil && peek != "" && utf8.RuneCountInString(peek) <= speculativePeekLimit {
			slog.Debug("guessing selection from short clipboard content", "bytes", len(peek))
			return peek, nil
		}
	}
	return "", err
}

// getSelectedText ignores cancelSelect: neither the accessibility query nor
// the osascript round trip leaves the visual selection disturbed.
func getSelectedText(cancelSelect bool) (string, error) {
	_ = cancelSelect
	text, err := systemResolver().Resolve()
	if err != nil {
		return "", darwinError(err)
	}
	return text, nil
}

func getSelectedTextWithContext(cancelSelect bool) (Selection, error) {
	// The focused element can hand over selection and candidate context in
	// one query; withContext still verifies containment before trusting it.
	if text, ctx, err := ax.SelectionWithContext(currentWebRoles()); err == nil && text != "" {
		axContext := func(string) (string, bool, error) { return ctx, ctx != "", nil }
		return withContext(text, axContext, selectAllStrategy()), nil
	}
	text, err := getSelectedText(cancelSelect)
	if err != nil {
		return Selection{}, err
	}
	return withContext(text, selectAllStrategy()), nil
}

func currentWebRoles() map[string]bool {
	optMu.Lock()
	roles := options.WebContentRoles
	optMu.Unlock()
	if roles == nil {
		return ax.DefaultWebRoles()
	}
	m := make(map[string]bool, len(roles))
	for _, r := range roles {
		m[r] = true
	}
	return m
}

func darwinError(err error) error {
	if errors.Is(err, ax.ErrNoFocus) || errors.Is(err, ax.ErrNoSelection) {
		return &Error{Kind: KindNoSelection, Err: err}
	}
	return &Error{Kind: KindOS, Err: err}
}
