package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into inputs, append parameters, behavior, and display.
// Short aliases are registered as separate flags bound to the same field.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// ParseFlags parses args (os.Args[1:]) into cfg. On --help or --version it
// prints and exits. On error it returns non-nil (e.g. unknown flag,
// conflicting input modes).
func ParseFlags(cfg *Config, version string, args []string) error {
	fs := flag.NewFlagSet("tcap", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	var (
		pairPath    string
		showHelp    bool
		showVersion bool
		forceColor  bool
		noColor     bool
	)

	// Inputs.
	fs.StringVar(&pairPath, "pair", "", "Pair mode: provide a video; the still is inferred as <stem>.png")
	fs.StringVar(&cfg.VideoPath, "video", "", "Explicit video path (use with -t/--thumb)")
	fs.StringVar(&cfg.VideoPath, "v", "", "Same as --video")
	fs.StringVar(&cfg.ImagePath, "thumb", "", "Explicit still image path (required with -v/--video)")
	fs.StringVar(&cfg.ImagePath, "t", "", "Same as --thumb")
	fs.StringVar(&cfg.OutPath, "out", "", "Output path (default: <stem>_thumb.mp4)")
	fs.StringVar(&cfg.OutPath, "o", "", "Same as --out")
	fs.BoolVar(&cfg.InPlace, "inplace", false, "Overwrite the original via atomic same-directory replace")

	// Append parameters.
	fs.Float64Var(&cfg.StillDuration, "duration", cfg.StillDuration, "Still duration in seconds")
	fs.Float64Var(&cfg.StillDuration, "d", cfg.StillDuration, "Same as --duration")
	fs.IntVar(&cfg.CRF, "crf", cfg.CRF, "x264 CRF quality (lower = higher quality/larger files)")
	fs.StringVar(&cfg.AudioBitrate, "audio-bitrate", cfg.AudioBitrate, "AAC bitrate for the re-encode path")
	fs.Var(&modeValue{&cfg.Mode}, "mode", "Append route: auto | copy | reencode")

	// Tools and behavior.
	fs.DurationVar(&cfg.ToolTimeout, "timeout", cfg.ToolTimeout, "Per-tool-invocation timeout (0 = unbounded)")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.BoolVar(&cfg.InfoOnly, "info", false, "Show install details and version, then exit")

	// Display.
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output (tool stderr passthrough)")
	fs.BoolVar(&forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored logs")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")

	// Utility.
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&showVersion, "V", false, "Same as --version")
	fs.BoolVar(&showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&showHelp, "h", false, "Same as --help")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if showVersion {
		fmt.Fprintln(os.Stdout, "tcap v"+version)
		os.Exit(0)
	}

	if noColor {
		cfg.ColorMode = ColorNever
	} else if forceColor {
		cfg.ColorMode = ColorAlways
	}

	if pairPath != "" {
		if cfg.VideoPath != "" || cfg.ImagePath != "" {
			return fmt.Errorf("--pair cannot be combined with -v/--video or -t/--thumb")
		}
		cfg.VideoPath = pairPath
		cfg.PairMode = true
	}

	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected argument %q (inputs are given via --pair or -v/--video)", fs.Args()[0])
	}
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 30
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "tcap v" + version + ": append a still image to the end of a video for thumbnail selection"},
		{"", ""},
		{"  tcap --pair <video> [OPTIONS]", ""},
		{"  tcap -v <video> -t <image> [OPTIONS]", ""},
		{"", ""},
		{"Inputs", ""},
		{"  --pair <path>", "Video path; still inferred as <stem>.png"},
		{"  -v, --video <path>", "Explicit video path (use with -t/--thumb)"},
		{"  -t, --thumb <path>", "Explicit still image path"},
		{"  -o, --out <path>", "Output path (default: <stem>_thumb.mp4)"},
		{"  --inplace", "Overwrite the original (atomic replace, same folder)"},
		{"", ""},
		{"Append", ""},
		{"  -d, --duration <sec>", "Still duration in seconds (default: 0.3)"},
		{"  --crf <value>", "x264 CRF quality (default: 18)"},
		{"  --audio-bitrate <rate>", "AAC bitrate for the re-encode path (default: 192k)"},
		{"  --mode <auto|copy|reencode>", "Route: gate-decided, forced copy, or forced re-encode"},
		{"", ""},
		{"Behavior", ""},
		{"  --timeout <duration>", "Per-tool timeout, e.g. 5m (default: unbounded)"},
		{"  -c, --check", "System diagnostics (ffmpeg, ffprobe, x264, AAC)"},
		{"  --info", "Show install details and version, then exit"},
		{"", ""},
		{"Display", ""},
		{"  --verbose", "Verbose output"},
		{"  --color / --no-color", "Force / disable colored logs"},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		switch {
		case l.flags == "" && l.desc == "":
			fmt.Fprintln(os.Stderr)
		case l.desc == "":
			fmt.Fprintln(os.Stderr, l.flags)
		case l.flags == "":
			fmt.Fprintln(os.Stderr, l.desc)
		default:
			padding := col1 - len(l.flags)
			if padding < 1 {
				padding = 1
			}
			fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
		}
	}
}

// flag.Value adapter so the Mode enum can be used with flag.Var.

type modeValue struct{ p *Mode }

func (m *modeValue) String() string {
	if m.p == nil {
		return ""
	}
	return string(*m.p)
}

func (m *modeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "auto":
		*m.p = ModeAuto
	case "copy":
		*m.p = ModeCopy
	case "reencode":
		*m.p = ModeReencode
	default:
		return fmt.Errorf("invalid mode %q (use 'auto', 'copy' or 'reencode')", s)
	}
	return nil
}
