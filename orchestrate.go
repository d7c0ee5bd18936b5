package selgrab

import (
	"log/slog"
	"strings"
	"time"
)

// contextStrategy produces candidate context for an already-captured
// selection. ok=false means the strategy structurally does not apply here;
// a non-nil error means it ran and failed. Neither is fatal to the call.
type contextStrategy func(selected string) (string, bool, error)

// withContext runs strategies in order until one yields context that
// provably contains selected, byte for byte. Candidates failing that check
// are dropped — a strategy may only return what it can prove.
func withContext(selected string, strategies ...contextStrategy) Selection {
	sel := Selection{Text: selected}
	if selected == "" {
		return sel
	}
	for _, strategy := range strategies {
		ctx, ok, err := strategy(selected)
		if err != nil {
			slog.Debug("context strategy failed", "err", err)
			continue
		}
		if !ok {
			continue
		}
		if !strings.Contains(ctx, selected) {
			slog.Debug("dropping context that does not contain the selection")
			continue
		}
		sel.Context = ctx
		sel.HasContext = true
		return sel
	}
	return sel
}

// selectAllStrategy is the universal context fallback: select-all + copy,
// then a bounded window around the selection. The settle sleep keeps it
// from racing the side effects of whatever strategy ran before it.
func selectAllStrategy() contextStrategy {
	return func(selected string) (string, bool, error) {
		eng, err := systemEngine()
		if err != nil {
			return "", false, err
		}
		time.Sleep(eng.Config().SettleFallback)
		return eng.SelectAllContext(selected)
	}
}
