package input

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/go-vgo/robotgo"
)

// keyMu is the process-wide input lock: no two raw key sequences may
// interleave, even from concurrent captures on different goroutines.
var keyMu sync.Mutex

type robot struct{}

// System returns the robotgo-backed simulator.
func System() Simulator {
	return robot{}
}

func (robot) Tap(key string, mods ...string) error {
	keyMu.Lock()
	defer keyMu.Unlock()

	args := make([]interface{}, len(mods))
	for i, m := range mods {
		args[i] = m
	}
	if err := robotgo.KeyTap(key, args...); err != nil {
		return fmt.Errorf("key tap %q: %w", key, err)
	}
	return nil
}

func (robot) ReleaseModifiers() error {
	keyMu.Lock()
	defer keyMu.Unlock()

	mods := []string{"ctrl", "alt", "shift", "space", "tab"}
	if runtime.GOOS == "darwin" {
		mods = append(mods, "cmd")
	}
	for _, m := range mods {
		if err := robotgo.KeyToggle(m, "up"); err != nil {
			return fmt.Errorf("release %q: %w", m, err)
		}
	}
	return nil
}
