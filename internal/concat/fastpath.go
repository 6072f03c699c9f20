package concat

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/backmassage/tcap/internal/ffmpeg"
)

// preamble is shared by every ffmpeg invocation the engine issues.
var preamble = []string{"-hide_banner", "-nostdin", "-y", "-loglevel", "error"}

// FastPath appends stillPath to videoPath by stream copy and writes the
// result to outPath. stillPath must be a video-only clip whose stream
// parameters already match the source. All intermediates live in workDir.
//
// Any stage failure is returned as a hard error, annotated with a likely
// cause when the tool output matches a known pattern.
func FastPath(ctx context.Context, run *ffmpeg.Runner, workDir, videoPath, stillPath, outPath string, hasAudio bool) error {
	srcExt := filepath.Ext(videoPath)

	videoOnly := filepath.Join(workDir, "video_only"+srcExt)
	if err := run.Run(ctx, buildExtractVideoArgs(videoPath, videoOnly)...); err != nil {
		return describe("isolate video stream", err)
	}

	audioOnly := ""
	if hasAudio {
		audioOnly = filepath.Join(workDir, "audio_only"+srcExt)
		if err := run.Run(ctx, buildExtractAudioArgs(videoPath, audioOnly)...); err != nil {
			return describe("isolate audio stream", err)
		}
	}

	listPath := filepath.Join(workDir, "concat.txt")
	if err := WriteList(listPath, []string{videoOnly, stillPath}); err != nil {
		return err
	}

	joined := filepath.Join(workDir, "joined"+filepath.Ext(outPath))
	if err := run.Run(ctx, buildConcatArgs(listPath, joined)...); err != nil {
		return describe("concat video streams", err)
	}

	if err := run.Run(ctx, buildRemuxArgs(joined, audioOnly, outPath)...); err != nil {
		return describe("remux output", err)
	}
	return nil
}

// buildExtractVideoArgs copies the first video stream into its own file.
func buildExtractVideoArgs(videoPath, outPath string) []string {
	args := append([]string{}, preamble...)
	return append(args, "-i", videoPath, "-map", "0:v:0", "-c", "copy", "-an", outPath)
}

// buildExtractAudioArgs copies the first audio stream into its own file.
func buildExtractAudioArgs(videoPath, outPath string) []string {
	args := append([]string{}, preamble...)
	return append(args, "-i", videoPath, "-map", "0:a:0", "-c", "copy", "-vn", outPath)
}

// buildConcatArgs joins the list entries through the concat demuxer without
// re-encoding. -safe 0 permits absolute paths in the list file.
func buildConcatArgs(listPath, outPath string) []string {
	args := append([]string{}, preamble...)
	return append(args, "-f", "concat", "-safe", "0", "-i", listPath, "-c", "copy", outPath)
}

// buildRemuxArgs multiplexes the concatenated video with the isolated audio
// (when present) into the final container, still without re-encoding. The
// still segment carries no audio; players treat the tail as silent.
func buildRemuxArgs(videoPath, audioPath, outPath string) []string {
	args := append([]string{}, preamble...)
	args = append(args, "-i", videoPath)
	if audioPath != "" {
		args = append(args, "-i", audioPath, "-map", "0:v:0", "-map", "1:a:0")
	} else {
		args = append(args, "-map", "0:v:0")
	}
	args = append(args, "-c", "copy")
	args = append(args, faststartArgs(outPath)...)
	return append(args, outPath)
}

// faststartArgs returns the mov/mp4 faststart flag for containers that
// support it. The matroska muxer rejects -movflags outright.
func faststartArgs(outPath string) []string {
	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".mp4", ".m4v", ".mov":
		return []string{"-movflags", "+faststart"}
	}
	return nil
}

// describe wraps a stage failure, attaching the stderr classification when
// the tool output matches a known pattern.
func describe(stage string, err error) error {
	var te *ffmpeg.ToolError
	if errors.As(err, &te) {
		if hint := ffmpeg.ClassifyStderr(te.Stderr); hint != "" {
			return fmt.Errorf("%s: %s: %w", stage, hint, err)
		}
	}
	return fmt.Errorf("%s: %w", stage, err)
}
