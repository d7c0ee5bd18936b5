//go:build linux

package selgrab

func getSelectedText(cancelSelect bool) (string, error) {
	eng, err := systemEngine()
	if err != nil {
		return "", err
	}
	return eng.CopySelection(cancelSelect)
}

// Context on Linux comes from the select-all fallback alone: there is no
// accessibility query that works across both X11 and Wayland compositors.
func getSelectedTextWithContext(cancelSelect bool) (Selection, error) {
	text, err := getSelectedText(cancelSelect)
	if err != nil {
		return Selection{}, err
	}
	return withContext(text, selectAllStrategy()), nil
}
