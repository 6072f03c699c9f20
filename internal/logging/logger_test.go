package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/tcap/internal/config"
)

func TestNewLogger_FileSink(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "logs", "tcap.log")

	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = logPath

	log, err := NewLogger(&cfg)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	log.Info("probing %s", "clip.mp4")
	log.Success("done")
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "[INFO] probing clip.mp4") {
		t.Errorf("log file missing INFO line: %q", content)
	}
	if !strings.Contains(content, "[SUCCESS] done") {
		t.Errorf("log file missing SUCCESS line: %q", content)
	}
}

func TestNewLogger_NoFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever

	log, err := NewLogger(&cfg)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	// Close without a file sink is a no-op.
	if err := log.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
