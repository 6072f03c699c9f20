package still

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/backmassage/tcap/internal/ffmpeg"
)

// Synthesize produces the still clip at outPath according to spec.
// Returns *UnsupportedCodecError when the source codec has no encoder
// mapping, or the runner's error when the encode itself fails.
func Synthesize(ctx context.Context, run *ffmpeg.Runner, imagePath, outPath string, spec Spec, crf int, audioBitrate string) error {
	args, err := BuildArgs(imagePath, outPath, spec, crf, audioBitrate)
	if err != nil {
		return err
	}
	if err := run.Run(ctx, args...); err != nil {
		return fmt.Errorf("synthesize still clip: %w", err)
	}
	return nil
}

// BuildArgs constructs the complete ffmpeg argument slice for the still
// clip. Split from Synthesize so the command shape is testable without an
// ffmpeg binary.
func BuildArgs(imagePath, outPath string, spec Spec, crf int, audioBitrate string) ([]string, error) {
	ec, err := encoderFor(spec.Codec)
	if err != nil {
		return nil, err
	}

	dur := formatSeconds(spec.Duration)
	args := make([]string, 0, 48)

	// --- Preamble ---
	args = append(args, "-hide_banner", "-nostdin", "-y", "-loglevel", "error")

	// --- Inputs: looped image, optional silent audio source ---
	args = append(args, "-loop", "1", "-t", dur, "-i", imagePath)
	if spec.Audio != nil {
		args = append(args,
			"-f", "lavfi", "-t", dur,
			"-i", fmt.Sprintf("anullsrc=r=%d:cl=%s", spec.Audio.SampleRate, spec.Audio.ChannelLayout),
		)
	}

	// --- Video filter chain ---
	args = append(args, "-vf", buildFilter(spec))

	// --- Stream maps ---
	args = append(args, "-map", "0:v")
	if spec.Audio != nil {
		args = append(args, "-map", "1:a")
	}

	// --- Video codec ---
	args = append(args, "-c:v", ec.Encoder)
	if ec.Profile != "" {
		args = append(args, "-profile:v", ec.Profile)
	}
	if ec.Level != "" {
		args = append(args, "-level", ec.Level)
	}
	if ec.Preset != "" {
		args = append(args, "-preset", ec.Preset)
	}
	args = append(args, ec.quality(crf)...)

	// One GOP spanning the whole clip, scene-cut detection off.
	if ec.InterFrame {
		args = append(args,
			"-g", strconv.Itoa(spec.GOPSize()),
			"-sc_threshold", "0",
		)
	}

	// --- Color tags ---
	if spec.ColorPrimaries != "" {
		args = append(args, "-color_primaries", spec.ColorPrimaries)
	}
	if spec.ColorTransfer != "" {
		args = append(args, "-color_trc", spec.ColorTransfer)
	}
	if spec.ColorSpace != "" {
		args = append(args, "-colorspace", spec.ColorSpace)
	}

	// --- Container timescale (only for canonical 1/N source time bases) ---
	if spec.TimescaleDen > 0 {
		args = append(args, "-video_track_timescale", strconv.Itoa(spec.TimescaleDen))
	}

	// --- Audio codec ---
	if spec.Audio != nil {
		args = append(args,
			"-c:a", "aac",
			"-b:a", audioBitrate,
			"-ar", strconv.Itoa(spec.Audio.SampleRate),
		)
	}

	// --- Output ---
	args = append(args, "-movflags", "+faststart", outPath)
	return args, nil
}

// buildFilter assembles the scale/fps/format/setsar chain that conforms
// the image to the source stream's geometry.
func buildFilter(spec Spec) string {
	parts := []string{
		fmt.Sprintf("scale=%d:%d:flags=lanczos", spec.Width, spec.Height),
		"fps=" + formatSeconds(spec.FPS),
	}
	pf := spec.PixFmt
	if pf == "" {
		pf = "yuv420p"
	}
	parts = append(parts, "format="+pf)

	sar := spec.SAR
	if sar == "" {
		sar = "1"
	}
	parts = append(parts, "setsar="+sar)

	return strings.Join(parts, ",")
}

// formatSeconds renders a float the way the original CLI did (%.6f), which
// both -t and the fps filter accept.
func formatSeconds(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}
