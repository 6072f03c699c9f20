// Package term owns the ANSI palette and terminal detection for the CLI's
// output surfaces.
//
// The palette is a set of package-level string variables consumed by the
// logging levels and the banner through plain concatenation; when colors
// are off every entry is the empty string, so call sites need no
// branching. [Configure] resolves the mode once during startup.
package term

import (
	"os"
	"strings"

	"github.com/backmassage/tcap/internal/config"
)

// Palette entries. Empty when colors are disabled.
var (
	Red     = "" // error lines
	Green   = "" // success lines
	Yellow  = "" // warnings
	Blue    = "" // info
	Cyan    = "" // debug
	Magenta = "" // banner
	NC      = "" // reset
)

// palette pairs each entry with its escape sequence so Configure can set
// or clear all of them in one pass.
var palette = []struct {
	entry *string
	seq   string
}{
	{&Red, "\033[1;91m"},
	{&Green, "\033[1;92m"},
	{&Yellow, "\033[1;93m"},
	{&Blue, "\033[1;94m"},
	{&Cyan, "\033[1;96m"},
	{&Magenta, "\033[1;95m"},
	{&NC, "\033[0m"},
}

// Configure applies the resolved color mode to the palette. Called once
// from logging.NewLogger; calling it again reconfigures in place.
func Configure(mode config.ColorMode) {
	on := shouldColor(mode)
	for _, p := range palette {
		if on {
			*p.entry = p.seq
		} else {
			*p.entry = ""
		}
	}
}

// Enabled reports whether the palette is currently active.
func Enabled() bool { return NC != "" }

// shouldColor resolves ColorAuto against the environment: stdout must be a
// TTY, NO_COLOR unset (https://no-color.org), and the terminal not dumb.
func shouldColor(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	return IsTerminal(os.Stdout) &&
		os.Getenv("NO_COLOR") == "" &&
		!strings.EqualFold(os.Getenv("TERM"), "dumb")
}

// IsTerminal reports whether f is attached to a TTY (character device).
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
