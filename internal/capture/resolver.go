package capture

import (
	"fmt"
	"log/slog"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Method identifies which acquisition strategy last worked for an
// application.
type Method uint8

const (
	// MethodAccessibility reads the selection from the accessibility tree
	// without touching the clipboard.
	MethodAccessibility Method = iota
	// MethodClipboard captures the selection via clipboard simulation.
	MethodClipboard
)

func (m Method) String() string {
	if m == MethodAccessibility {
		return "accessibility"
	}
	return "clipboard"
}

// methodCacheSize bounds the per-application method cache.
const methodCacheSize = 100

// Resolver picks between an accessibility-based reader and a clipboard
// fallback, remembering per application which one worked so later calls for
// the same application skip a strategy known to fail there.
//
// The cache is advisory and updated only on success: an application with no
// entry always gets the accessibility attempt first, and nothing ever
// un-caches an entry during the process lifetime. It is never persisted.
type Resolver struct {
	mu    sync.Mutex
	cache *lru.Cache[string, Method]

	appName       func() (string, error)
	accessibility func() (string, error)
	clipboard     func() (string, error)
}

// NewResolver builds a Resolver over the given strategies. appName
// identifies the frontmost application; it keys the method cache.
func NewResolver(appName, accessibility, clipboard func() (string, error)) *Resolver {
	cache, _ := lru.New[string, Method](methodCacheSize)
	return &Resolver{
		cache:         cache,
		appName:       appName,
		accessibility: accessibility,
		clipboard:     clipboard,
	}
}

// Resolve captures the current selection using the remembered method for the
// frontmost application, or by trying accessibility first and falling back
// to the clipboard strategy.
func (r *Resolver) Resolve() (string, error) {
	app, err := r.appName()
	if err != nil {
		return "", fmt.Errorf("active application: %w", err)
	}

	r.mu.Lock()
	method, known := r.cache.Get(app)
	r.mu.Unlock()

	if known {
		slog.Debug("using cached capture method", "app", app, "method", method)
		if method == MethodAccessibility {
			return r.accessibility()
		}
		return r.clipboard()
	}

	text, err := r.accessibility()
	if err == nil {
		if text != "" {
			r.remember(app, MethodAccessibility)
		}
		return text, nil
	}
	slog.Debug("accessibility capture failed, trying clipboard", "app", app, "err", err)

	text, err = r.clipboard()
	if err != nil {
		return "", err
	}
	if text != "" {
		r.remember(app, MethodClipboard)
	}
	return text, nil
}

func (r *Resolver) remember(app string, m Method) {
	r.mu.Lock()
	r.cache.Add(app, m)
	r.mu.Unlock()
}
