//go:build (darwin || windows || linux) && !headless

package clip

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"
)

var (
	initOnce sync.Once
	initErr  error
)

type systemClipboard struct{}

// System returns the real system clipboard.
// clipboard.Init is called on first use rather than in init() so that code
// paths that never touch the clipboard (accessibility-only captures) don't
// fail on headless systems.
func System() (Clipboard, error) {
	initOnce.Do(func() {
		initErr = clipboard.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("clipboard init: %w", initErr)
	}
	return systemClipboard{}, nil
}

func (systemClipboard) ReadText() (string, error) {
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return "", ErrNoContent
	}
	return string(data), nil
}

func (systemClipboard) ReadImage() ([]byte, error) {
	data := clipboard.Read(clipboard.FmtImage)
	if len(data) == 0 {
		return nil, ErrNoContent
	}
	return data, nil
}

func (systemClipboard) WriteText(text string) error {
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

func (systemClipboard) WriteImage(data []byte) error {
	clipboard.Write(clipboard.FmtImage, data)
	return nil
}

func (systemClipboard) Clear() error {
	clipboard.Write(clipboard.FmtText, nil)
	return nil
}
