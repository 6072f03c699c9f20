package ffmpeg

import (
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// ToolError reports a failed external tool invocation. It carries enough
// context (full command line, exit code, captured stderr) to diagnose the
// failure without re-running the tool.
type ToolError struct {
	Tool     string
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func newToolError(tool string, args []string, stderr string, err error) *ToolError {
	te := &ToolError{
		Tool:     tool,
		Args:     args,
		ExitCode: -1,
		Stderr:   stderr,
		Err:      err,
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		te.ExitCode = ee.ExitCode()
	}
	return te
}

func (e *ToolError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s failed (exit %d): %s %s",
		e.Tool, e.ExitCode, e.Tool, strings.Join(e.Args, " "))
	if tail := stderrTail(e.Stderr, 10); tail != "" {
		b.WriteString("\nSTDERR:\n")
		b.WriteString(tail)
	}
	return b.String()
}

func (e *ToolError) Unwrap() error { return e.Err }

// stderrTail returns the last n non-empty lines of stderr output.
func stderrTail(stderr string, n int) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return ""
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

// Pre-compiled regexes for classifying ffmpeg stderr into known failure
// categories. Used to annotate hard errors with a likely cause; they never
// trigger a retry.
var (
	reConcatMismatch = regexp.MustCompile(
		`(?i)do not match the corresponding output link|` +
			`Impossible to open|` +
			`concat:.*Invalid|` +
			`All the streams in a concat .* must have the same|` +
			`changed dimensions|changed frame properties`)

	reTimestampIssue = regexp.MustCompile(
		`(?i)Non-monotonous DTS|non monotonically increasing dts|` +
			`DTS .*out of order|PTS .*out of order|` +
			`pts has no value|missing PTS|Timestamps are unset`)

	reUnsafeListPath = regexp.MustCompile(`(?i)Unsafe file name`)
)

// ClassifyStderr returns a short human-readable hint for a known ffmpeg
// failure pattern, or "" when the output matches nothing recognizable.
func ClassifyStderr(stderr string) string {
	switch {
	case reConcatMismatch.MatchString(stderr):
		return "stream parameters of the still clip do not match the source (codec/geometry/timebase mismatch)"
	case reTimestampIssue.MatchString(stderr):
		return "timestamp discontinuity across the concatenation point"
	case reUnsafeListPath.MatchString(stderr):
		return "concat list rejected a file path (quoting issue)"
	default:
		return ""
	}
}
