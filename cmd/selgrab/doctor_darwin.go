//go:build darwin

package main

import "github.com/selgrab/selgrab/internal/ax"

func permissionStatus(prompt bool) (string, bool) {
	if ax.Trusted() {
		return "ok (accessibility trusted)", true
	}
	if prompt && ax.PromptForTrust() {
		return "ok (accessibility trusted)", true
	}
	return "missing accessibility permission (System Settings > Privacy & Security > Accessibility)", false
}
