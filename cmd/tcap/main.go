// Command tcap appends a short still-image segment to the end of a video
// so a thumbnail frame can be picked from the tail. It parses flags and
// environment overrides, resolves the pair-mode paths, and either runs the
// system check (--check), prints install info (--info), or executes the
// append pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/tcap/internal/check"
	"github.com/backmassage/tcap/internal/config"
	"github.com/backmassage/tcap/internal/display"
	"github.com/backmassage/tcap/internal/logging"
	"github.com/backmassage/tcap/internal/naming"
	"github.com/backmassage/tcap/internal/pipeline"
)

// version is set at build time via -ldflags.
var version = "2.0.0-dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()

	// 1. Config: defaults, then env overrides, then CLI flags.
	cfg := config.DefaultConfig()
	if err := config.ApplyEnv(ctx, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "tcap: %v\n", err)
		return 1
	}
	if err := config.ParseFlags(&cfg, version, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "tcap: %v\n", err)
		return 1
	}

	// 2. Pair mode: infer the still image next to the video.
	if cfg.PairMode {
		img, err := naming.PairImage(cfg.VideoPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tcap: %v\n", err)
			return 1
		}
		cfg.ImagePath = img
	}
	if cfg.OutPath == "" && cfg.VideoPath != "" && !cfg.InPlace {
		cfg.OutPath = naming.DefaultOutput(cfg.VideoPath)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "tcap: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tcap: %v\n", err)
		return 1
	}
	defer log.Close()

	// 3. Informational modes exit before any media work.
	if cfg.InfoOnly {
		display.PrintInfo(&cfg, version)
		return 0
	}
	if cfg.CheckOnly {
		display.PrintBanner()
		check.RunCheck(&cfg, log)
		return 0
	}

	// 4. Fail fast when the external tools are unusable.
	if err := check.CheckDeps(&cfg); err != nil {
		log.Error("%v", err)
		return 1
	}

	// 5. Run the pipeline under a signal-cancelled context so an interrupt
	// stops the current tool invocation and the workspace cleanup still runs.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := pipeline.Run(ctx, &cfg, log)
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	if cfg.InPlace {
		log.Success("Updated in place: %s", result.OutputPath)
	} else {
		log.Success("Done: %s", result.OutputPath)
	}
	log.Info("Appended via %s", result.Summary())
	return 0
}
