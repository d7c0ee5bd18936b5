//go:build !windows && !darwin && !linux

package selgrab

func getSelectedText(_ bool) (string, error) {
	return "", &Error{Kind: KindUnimplemented, Detail: "no capture strategy for this platform"}
}

func getSelectedTextWithContext(_ bool) (Selection, error) {
	return Selection{}, &Error{Kind: KindUnimplemented, Detail: "no capture strategy for this platform"}
}
