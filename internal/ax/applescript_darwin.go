//go:build darwin

package ax

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// copyScript performs the copy the way a user would, entirely inside one
// osascript invocation: save the pasteboard and its change count, mute the
// alert sound, send Cmd-C, and put everything back. An unchanged change
// count means the copy was a no-op, reported as an empty result.
const copyScript = `
use AppleScript version "2.4"
use scripting additions
use framework "Foundation"
use framework "AppKit"

set savedAlertVolume to alert volume of (get volume settings)
set savedClipboard to the clipboard

set thePasteboard to current application's NSPasteboard's generalPasteboard()
set theCount to thePasteboard's changeCount()

tell application "System Events"
    set volume alert volume 0
end tell

tell application "System Events" to keystroke "c" using {command down}
delay 0.1

tell application "System Events"
    set volume alert volume savedAlertVolume
end tell

if thePasteboard's changeCount() is theCount then
    return ""
end if

set theSelectedText to the clipboard
set the clipboard to savedClipboard
theSelectedText
`

// SelectedTextViaScript captures the selection with an osascript-driven
// clipboard round trip. System Events keystrokes work in some applications
// that reject synthetic CGEvents, which makes this worth remembering as a
// per-application fallback.
func SelectedTextViaScript() (string, error) {
	out, err := exec.Command("osascript", "-e", copyScript).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("osascript: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("osascript: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
