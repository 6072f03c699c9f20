package concat

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/backmassage/tcap/internal/ffmpeg"
	"github.com/backmassage/tcap/internal/probe"
)

// Fallback re-encodes the source and the still image together through a
// single filter graph and writes the result to outPath. The output is
// normalized to H.264 high/4.1 with yuv420p video and 48 kHz stereo AAC,
// regardless of the source codecs.
func Fallback(ctx context.Context, run *ffmpeg.Runner, videoPath, imagePath, outPath string, res *probe.Result, stillDuration float64, crf int, audioBitrate string) error {
	args := BuildFallbackArgs(videoPath, imagePath, outPath, res, stillDuration, crf, audioBitrate)
	if err := run.Run(ctx, args...); err != nil {
		return describe("re-encode concat", err)
	}
	return nil
}

// BuildFallbackArgs constructs the full re-encode command. Split out so the
// graph shape is testable without an ffmpeg binary.
func BuildFallbackArgs(videoPath, imagePath, outPath string, res *probe.Result, stillDuration float64, crf int, audioBitrate string) []string {
	dur := formatFixed(stillDuration)

	args := append([]string{}, preamble...)
	args = append(args,
		"-i", videoPath,
		"-loop", "1", "-t", dur, "-i", imagePath,
		"-filter_complex", buildFallbackGraph(res, stillDuration),
		"-map", "[v]", "-map", "[a]",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-profile:v", "high",
		"-level", "4.1",
		"-crf", strconv.Itoa(crf),
		"-preset", "medium",
		"-c:a", "aac",
		"-b:a", audioBitrate,
	)
	args = append(args, faststartArgs(outPath)...)
	return append(args, outPath)
}

// buildFallbackGraph assembles the filter graph: the source video and audio
// pass through with reset timestamps, the still image is conformed to the
// source geometry and trimmed, and both pairs feed a two-segment concat.
// A source without audio gets a silent bed so the concat stays v=1:a=1.
func buildFallbackGraph(res *probe.Result, stillDuration float64) string {
	v := res.Video
	dur := formatFixed(stillDuration)

	v0 := "[0:v]setpts=PTS-STARTPTS[v0]"

	var a0 string
	if res.Audio != nil {
		a0 = "[0:a]aresample=48000,aformat=channel_layouts=stereo,asetpts=PTS-STARTPTS[a0]"
	} else {
		a0 = fmt.Sprintf(
			"anullsrc=r=48000:cl=stereo,atrim=duration=%s,asetpts=PTS-STARTPTS[a0]",
			formatFixed(v.Duration))
	}

	v1 := fmt.Sprintf(
		"[1:v]scale=%d:%d,fps=%s,format=yuv420p,setsar=1,trim=duration=%s,setpts=PTS-STARTPTS[v1]",
		v.Width, v.Height, formatFixed(v.FPS), dur)

	a1 := fmt.Sprintf(
		"anullsrc=r=48000:cl=stereo,atrim=duration=%s,asetpts=PTS-STARTPTS[a1]",
		dur)

	return strings.Join([]string{
		v0, a0, v1, a1,
		"[v0][a0][v1][a1]concat=n=2:v=1:a=1[v][a]",
	}, ";")
}

// formatFixed renders a float with six decimals, the form both -t and the
// trim/fps filters accept.
func formatFixed(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}
