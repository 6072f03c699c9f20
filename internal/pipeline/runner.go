// Package pipeline orchestrates one append invocation: validate inputs,
// probe the source, decide the route, execute it into a staged file, and
// atomically move the result into place.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/backmassage/tcap/internal/concat"
	"github.com/backmassage/tcap/internal/config"
	"github.com/backmassage/tcap/internal/display"
	"github.com/backmassage/tcap/internal/ffmpeg"
	"github.com/backmassage/tcap/internal/fsx"
	"github.com/backmassage/tcap/internal/logging"
	"github.com/backmassage/tcap/internal/naming"
	"github.com/backmassage/tcap/internal/planner"
	"github.com/backmassage/tcap/internal/probe"
	"github.com/backmassage/tcap/internal/still"
)

// Run executes the full append pipeline. Every step is a blocking external
// invocation; steps run strictly in sequence because each derives its
// parameters from the previous step's output. The destination is never
// touched until the final atomic replace.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (*Result, error) {
	dest := cfg.OutPath
	if cfg.InPlace {
		dest = cfg.VideoPath
	}

	inSize, err := validateInputs(cfg, dest)
	if err != nil {
		return nil, err
	}

	run := ffmpeg.NewRunner(cfg)
	prober := &probe.Prober{Run: run}

	// --- Probe ---
	res, err := prober.Probe(ctx, cfg.VideoPath)
	if err != nil {
		return nil, err
	}
	logProbe(cfg, log, res)

	// --- Route decision (computed once, never re-derived) ---
	decision := planner.Decide(res, cfg.Mode)
	if decision.Forced {
		log.Warn("Route: %s (%s)", decision.Route, decision.Reason)
	} else {
		log.Info("Route: %s (%s)", decision.Route, decision.Reason)
	}

	// --- Workspace and staging ---
	workDir, cleanup, err := NewWorkspace(cfg.TempDir)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	staged, err := fsx.StagePath(dest)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if decision.Route == planner.RouteFastPath {
		err = runFastPath(ctx, cfg, log, run, res, workDir, staged)
	} else {
		err = concat.Fallback(ctx, run, cfg.VideoPath, cfg.ImagePath, staged,
			res, cfg.StillDuration, cfg.CRF, cfg.AudioBitrate)
	}
	if err != nil {
		fsx.DiscardStaged(staged)
		return nil, err
	}

	// --- Atomic replace ---
	if err := fsx.Replace(staged, dest); err != nil {
		return nil, err
	}

	result := &Result{
		OutputPath: dest,
		Route:      decision.Route,
		Forced:     decision.Forced,
		Elapsed:    time.Since(start),
		InputBytes: inSize,
	}
	if fi, err := os.Stat(dest); err == nil {
		result.OutputBytes = fi.Size()
	}
	return result, nil
}

// runFastPath synthesizes a video-only still clip matching the source
// stream and appends it by stream copy. The image is letterboxed to the
// source geometry beforehand so the scale filter never distorts it.
func runFastPath(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	run *ffmpeg.Runner,
	res *probe.Result,
	workDir, staged string,
) error {
	prepared, err := still.PrepareImage(cfg.ImagePath, workDir, res.Video.Width, res.Video.Height)
	if err != nil {
		return err
	}
	if prepared != cfg.ImagePath {
		log.Debug(cfg.Verbose, "Letterboxed still image to %dx%d", res.Video.Width, res.Video.Height)
	}

	spec := still.SpecFromProbe(res, cfg.StillDuration, false)
	stillPath := filepath.Join(workDir, "still"+stillExt(spec.Codec))

	log.Debug(cfg.Verbose, "Synthesizing %s still clip (%s, GOP %d)",
		display.FormatSeconds(spec.Duration), spec.Codec, spec.GOPSize())
	if err := still.Synthesize(ctx, run, prepared, stillPath, spec, cfg.CRF, cfg.AudioBitrate); err != nil {
		return err
	}

	return concat.FastPath(ctx, run, workDir, cfg.VideoPath, stillPath, staged, res.Audio != nil)
}

// stillExt picks the intermediate container for the still clip. ProRes
// needs mov; everything else the synthesizer emits fits mp4.
func stillExt(codec string) string {
	if codec == "prores" {
		return ".mov"
	}
	return ".mp4"
}

// validateInputs checks that both input files exist and the destination
// carries a supported extension before any tool runs. Whether the video is
// actually a usable container is the prober's call, not a size heuristic.
// Returns the source video size.
func validateInputs(cfg *config.Config, dest string) (int64, error) {
	fi, err := os.Stat(cfg.VideoPath)
	if err != nil {
		return 0, fmt.Errorf("input video not found: %s", cfg.VideoPath)
	}
	if _, err := os.Stat(cfg.ImagePath); err != nil {
		return 0, fmt.Errorf("still image not found: %s", cfg.ImagePath)
	}
	if err := naming.ValidateOutput(dest); err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

func logProbe(cfg *config.Config, log *logging.Logger, res *probe.Result) {
	v := res.Video
	audio := "none"
	if res.Audio != nil {
		audio = fmt.Sprintf("%s %d Hz %s", res.Audio.Codec, res.Audio.SampleRate, res.Audio.ChannelLayout)
	}
	log.Info("Source: %dx%d %s @ %.3f fps, %s, audio: %s",
		v.Width, v.Height, v.Codec, v.FPS, display.FormatSeconds(v.Duration), audio)
	log.Debug(cfg.Verbose, "  pix_fmt=%s sar=%s time_base=%d/%d",
		v.PixFmt, v.SAR, v.TimeBaseNum, v.TimeBaseDen)
}
