// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for ffmpeg, ffprobe, libx264, and AAC.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/backmassage/tcap/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool or encoder is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
	ErrX264Failed      = errors.New("libx264 test encode failed")
	ErrAACFailed       = errors.New("AAC test encode failed")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the interactive --check flow: prints availability of ffmpeg
// and ffprobe and runs short libx264 and AAC test encodes. Informational
// only, it does not stop on failure.
func RunCheck(cfg *config.Config, log Logger) {
	log.Info("=== System Check ===")

	checkTool(log, cfg.FFmpegPath, "ffmpeg")
	checkTool(log, cfg.FFprobePath, "ffprobe")
	checkX264(cfg, log)
	checkAAC(cfg, log)
}

// checkTool verifies a tool is reachable and logs its version string.
func checkTool(log Logger, path, label string) {
	if _, err := exec.LookPath(path); err != nil {
		log.Error("%s not found", label)
		return
	}
	out, err := exec.Command(path, "-version").Output()
	if err != nil {
		log.Warn("%s found but -version failed: %v", label, err)
		return
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("%s: %s", label, firstLine)
}

// checkX264 runs a minimal libx264 encode, the codec every fallback output
// and most synthesized stills depend on.
func checkX264(cfg *config.Config, log Logger) {
	log.Info("Testing libx264...")
	if runSilent(cfg.FFmpegPath, x264TestArgs()...) {
		log.Success("libx264 works")
	} else {
		log.Error("libx264 test encode failed")
	}
}

// checkAAC runs a minimal AAC encode to verify the audio encoder works.
func checkAAC(cfg *config.Config, log Logger) {
	log.Info("Testing AAC encoder...")
	if runSilent(cfg.FFmpegPath, aacTestArgs()...) {
		log.Success("AAC encoder works")
	} else {
		log.Error("AAC encoder test failed")
	}
}

// CheckDeps is the pre-pipeline validation: it verifies that ffmpeg and
// ffprobe are reachable and that the x264 and AAC encoders actually work.
// Returns a sentinel error on failure.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.FFmpegPath); err != nil {
		return ErrFfmpegNotFound
	}
	if _, err := exec.LookPath(cfg.FFprobePath); err != nil {
		return ErrFfprobeNotFound
	}
	if !runSilent(cfg.FFmpegPath, x264TestArgs()...) {
		return ErrX264Failed
	}
	if !runSilent(cfg.FFmpegPath, aacTestArgs()...) {
		return ErrAACFailed
	}
	return nil
}

// x264TestArgs returns the ffmpeg arguments for a minimal libx264 test
// encode. Shared by checkX264 and CheckDeps.
func x264TestArgs() []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
		"-c:v", "libx264",
		"-f", "null", "-",
	}
}

// aacTestArgs returns the ffmpeg arguments for a minimal AAC test encode.
func aacTestArgs() []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "sine=frequency=1000:duration=0.1",
		"-c:a", "aac", "-f", "null", "-",
	}
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
