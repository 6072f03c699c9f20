package ffmpeg

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/backmassage/tcap/internal/config"
)

// Runner invokes ffmpeg and ffprobe as blocking subprocesses. All
// invocations are read-only with respect to their inputs; only ffmpeg
// output paths are written.
type Runner struct {
	FFmpeg  string
	FFprobe string
	Timeout time.Duration // Per-invocation bound; 0 = unbounded.
	Verbose bool          // Tee ffmpeg stderr to os.Stderr in real time.
}

// NewRunner builds a Runner from config.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{
		FFmpeg:  cfg.FFmpegPath,
		FFprobe: cfg.FFprobePath,
		Timeout: cfg.ToolTimeout,
		Verbose: cfg.Verbose,
	}
}

// Run executes ffmpeg with args and waits for completion. On non-zero exit
// it returns a *ToolError with the captured stderr.
func (r *Runner) Run(ctx context.Context, args ...string) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.FFmpeg, args...)

	var stderrBuf bytes.Buffer
	if r.Verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	if err := cmd.Run(); err != nil {
		return newToolError(r.FFmpeg, args, stderrBuf.String(), err)
	}
	return nil
}

// Probe executes ffprobe with args and returns its stdout. On non-zero
// exit it returns a *ToolError with the captured stderr.
func (r *Runner) Probe(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.FFprobe, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if err := cmd.Run(); err != nil {
		return nil, newToolError(r.FFprobe, args, stderrBuf.String(), err)
	}
	return stdoutBuf.Bytes(), nil
}

// bound applies the configured per-invocation timeout to ctx.
func (r *Runner) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.Timeout)
}
