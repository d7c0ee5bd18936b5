//go:build !darwin

package main

func permissionStatus(_ bool) (string, bool) {
	return "ok (no special permission required)", true
}
