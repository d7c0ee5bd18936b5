//go:build headless || !(darwin || windows || linux)

package clip

import "errors"

// System returns an error on platforms without a clipboard.
func System() (Clipboard, error) {
	return nil, errors.New("clip: no clipboard backend on this platform")
}
