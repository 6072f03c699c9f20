package config

// Environment overrides are applied between DefaultConfig and flag parsing,
// so a flag always wins over its environment counterpart.

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// envOverrides mirrors the env-tunable subset of Config. A separate struct
// keeps envconfig tags off Config itself and makes "unset" detectable.
type envOverrides struct {
	FFmpegPath  string        `env:"TCAP_FFMPEG"`
	FFprobePath string        `env:"TCAP_FFPROBE"`
	ToolTimeout time.Duration `env:"TCAP_TOOL_TIMEOUT"`
	TempDir     string        `env:"TCAP_TEMP_DIR"`
	LogFile     string        `env:"TCAP_LOG_FILE"`
	ColorMode   string        `env:"TCAP_COLOR"`
}

// ApplyEnv reads TCAP_* environment variables into cfg. Unset variables
// leave the corresponding field untouched.
func ApplyEnv(ctx context.Context, cfg *Config) error {
	var ov envOverrides
	if err := envconfig.Process(ctx, &ov); err != nil {
		return fmt.Errorf("environment: %w", err)
	}

	if ov.FFmpegPath != "" {
		cfg.FFmpegPath = ov.FFmpegPath
	}
	if ov.FFprobePath != "" {
		cfg.FFprobePath = ov.FFprobePath
	}
	if ov.ToolTimeout != 0 {
		cfg.ToolTimeout = ov.ToolTimeout
	}
	if ov.TempDir != "" {
		cfg.TempDir = ov.TempDir
	}
	if ov.LogFile != "" {
		cfg.LogFile = ov.LogFile
	}
	if ov.ColorMode != "" {
		cfg.ColorMode = ColorMode(ov.ColorMode)
	}
	return nil
}
