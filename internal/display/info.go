package display

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/backmassage/tcap/internal/config"
)

// PrintInfo prints the --info report: version, install location, and the
// resolved external tool paths.
func PrintInfo(cfg *config.Config, version string) {
	exe, err := os.Executable()
	if err != nil {
		exe = "unknown"
	}

	fmt.Printf("[tcap] Version: %s\n", version)
	fmt.Printf("[tcap] Entry point: %s\n", exe)
	fmt.Printf("[tcap] Install dir: %s\n", filepath.Dir(exe))
	fmt.Printf("[tcap] ffmpeg: %s\n", resolveTool(cfg.FFmpegPath))
	fmt.Printf("[tcap] ffprobe: %s\n", resolveTool(cfg.FFprobePath))
}

// resolveTool returns the absolute path a tool name resolves to on PATH,
// or a marker when it is missing.
func resolveTool(name string) string {
	path, err := exec.LookPath(name)
	if err != nil {
		return name + " (not on PATH)"
	}
	return path
}
