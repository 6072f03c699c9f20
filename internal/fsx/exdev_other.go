//go:build !unix

package fsx

// Non-unix platforms report cross-device renames with platform-specific
// errors we cannot reliably classify; treat them as plain failures.
func isEXDEV(error) bool { return false }
