// Package ffmpeg executes the external ffmpeg/ffprobe tools with stderr
// capture, per-invocation timeouts, and typed failures.
//
// All pipeline stages go through [Runner] so that every tool failure
// surfaces as a [ToolError] carrying the full command line, exit code, and
// captured diagnostic output. Stderr classification (errors.go) is used to
// annotate fast-path failures with a likely cause; it never triggers a
// silent retry or fallback.
package ffmpeg
