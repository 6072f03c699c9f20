// Package config holds runtime configuration: defaults, environment
// overrides, CLI flag parsing, and validation.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// --- Enum types for validated string fields ---

// Mode selects how the append route is chosen.
type Mode string

const (
	ModeAuto     Mode = "auto"     // Gate decides: stream-copy when compatible, re-encode otherwise (default).
	ModeCopy     Mode = "copy"     // Force the stream-copy fast path; incompatible sources are a hard error.
	ModeReencode Mode = "reencode" // Force the full filter-graph re-encode.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally adjusted by [ApplyEnv], and then mutated by [ParseFlags]
// before being passed (by pointer) to packages that need it.
type Config struct {
	// Inputs (set from flags).
	VideoPath string // Source video (from --pair or -v/--video).
	ImagePath string // Still image (from -t/--thumb, or inferred in pair mode).
	OutPath   string // Destination (default: <stem>_thumb.mp4 next to the input).
	InPlace   bool   // Overwrite the source via atomic same-directory replace.
	PairMode  bool   // True when the video came from --pair (image inferred by stem).

	// Append parameters.
	StillDuration float64 // Seconds of appended still. Default: 0.3.
	CRF           int     // x264 CRF for the synthesized still / fallback encode. Default: 18.
	AudioBitrate  string  // AAC bitrate for re-encoded audio. Default: "192k".
	Mode          Mode    // Route selection. Default: "auto".

	// External tools (env-overridable, see env.go).
	FFmpegPath  string        // Default: "ffmpeg".
	FFprobePath string        // Default: "ffprobe".
	ToolTimeout time.Duration // Per-invocation bound. 0 = unbounded (legacy behavior).
	TempDir     string        // Workspace parent. "" = os.TempDir().

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode
	LogFile   string // Optional append-mode log file.
	CheckOnly bool   // Run --check diagnostics and exit.
	InfoOnly  bool   // Print install/version info and exit.
}

// DefaultConfig returns a Config with defaults matching the original tcap
// CLI behavior. Used as the base before [ApplyEnv] and [ParseFlags].
func DefaultConfig() Config {
	return Config{
		StillDuration: 0.3,
		CRF:           18,
		AudioBitrate:  "192k",
		Mode:          ModeAuto,
		FFmpegPath:    "ffmpeg",
		FFprobePath:   "ffprobe",
		ColorMode:     ColorAuto,
	}
}

// Validate checks enum fields, numeric ranges, and input-mode consistency.
// Info and check modes skip the input requirements.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeAuto, ModeCopy, ModeReencode:
		// valid
	default:
		return errors.New("invalid mode (use 'auto', 'copy' or 'reencode')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.StillDuration <= 0 {
		return fmt.Errorf("still duration must be positive (got %g)", c.StillDuration)
	}
	if c.CRF < 0 || c.CRF > 51 {
		return fmt.Errorf("CRF must be in [0, 51] (got %d)", c.CRF)
	}
	if c.ToolTimeout < 0 {
		return errors.New("tool timeout must not be negative")
	}

	normalized, err := normalizeAudioBitrate(c.AudioBitrate)
	if err != nil {
		return err
	}
	c.AudioBitrate = normalized

	if c.CheckOnly || c.InfoOnly {
		return nil
	}
	if c.VideoPath == "" {
		return errors.New("no input video (use --pair or -v/--video)")
	}
	if c.ImagePath == "" {
		return errors.New("no still image (use -t/--thumb with -v/--video)")
	}
	return nil
}

// normalizeAudioBitrate validates and canonicalizes user bitrate input.
// Accepted forms: "192", "192k", "192K", "192kbps". Output is "<n>k".
func normalizeAudioBitrate(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", errors.New("audio bitrate must not be empty")
	}
	if strings.HasSuffix(s, "kbps") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "kbps"))
	} else if strings.HasSuffix(s, "k") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "k"))
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("invalid audio bitrate %q (use positive Kbps value, e.g. 192k)", raw)
	}
	return fmt.Sprintf("%dk", n), nil
}
