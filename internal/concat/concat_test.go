package concat

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/tcap/internal/ffmpeg"
	"github.com/backmassage/tcap/internal/fsx"
	"github.com/backmassage/tcap/internal/probe"
)

// --- Concat list ---

func TestWriteList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concat.txt")
	require.NoError(t, WriteList(path, []string{
		"/work/video_only.mp4",
		"/work/still with space.mp4",
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"file '/work/video_only.mp4'\nfile '/work/still with space.mp4'\n",
		string(data))
}

func TestQuoteListPath_EmbeddedQuote(t *testing.T) {
	assert.Equal(t, `'it'\''s.mp4'`, quoteListPath("it's.mp4"))
}

// --- Fast-path command shapes ---

func TestBuildExtractVideoArgs(t *testing.T) {
	joined := strings.Join(buildExtractVideoArgs("in.mp4", "video_only.mp4"), " ")
	assert.Contains(t, joined, "-i in.mp4")
	assert.Contains(t, joined, "-map 0:v:0 -c copy -an")
	assert.True(t, strings.HasSuffix(joined, "video_only.mp4"))
}

func TestBuildExtractAudioArgs(t *testing.T) {
	joined := strings.Join(buildExtractAudioArgs("in.mp4", "audio_only.mp4"), " ")
	assert.Contains(t, joined, "-map 0:a:0 -c copy -vn")
}

func TestBuildConcatArgs(t *testing.T) {
	joined := strings.Join(buildConcatArgs("list.txt", "joined.mp4"), " ")
	assert.Contains(t, joined, "-f concat -safe 0 -i list.txt -c copy")
	assert.NotContains(t, joined, "-c:v", "concat step must never re-encode")
}

func TestBuildRemuxArgs_WithAudio(t *testing.T) {
	joined := strings.Join(buildRemuxArgs("joined.mp4", "audio_only.mp4", "out.mp4"), " ")
	assert.Contains(t, joined, "-i joined.mp4 -i audio_only.mp4")
	assert.Contains(t, joined, "-map 0:v:0 -map 1:a:0")
	assert.Contains(t, joined, "-c copy")
	assert.Contains(t, joined, "-movflags +faststart")
}

func TestBuildRemuxArgs_VideoOnly(t *testing.T) {
	joined := strings.Join(buildRemuxArgs("joined.mp4", "", "out.mp4"), " ")
	assert.NotContains(t, joined, "1:a")
	assert.Contains(t, joined, "-map 0:v:0")
}

func TestBuildArgs_StagedOutputKeepsContainer(t *testing.T) {
	staged, err := fsx.StagePath(filepath.Join(t.TempDir(), "clip.mp4"))
	require.NoError(t, err)

	// The muxer is picked from the output extension; a staged path without
	// the container suffix would fail every real write.
	require.Equal(t, ".mp4", filepath.Ext(staged))
	assert.Equal(t, []string{"-movflags", "+faststart"}, faststartArgs(staged))

	remux := buildRemuxArgs("joined.mp4", "", staged)
	assert.Equal(t, staged, remux[len(remux)-1])
	assert.Contains(t, strings.Join(remux, " "), "-movflags +faststart")

	fallback := BuildFallbackArgs("in.mp4", "cover.png", staged, fallbackResult(true), 0.3, 18, "192k")
	assert.Equal(t, staged, fallback[len(fallback)-1])
	assert.Contains(t, strings.Join(fallback, " "), "-movflags +faststart")
}

func TestFaststartArgs(t *testing.T) {
	assert.Equal(t, []string{"-movflags", "+faststart"}, faststartArgs("out.mp4"))
	assert.Equal(t, []string{"-movflags", "+faststart"}, faststartArgs("out.MOV"))
	assert.Nil(t, faststartArgs("out.mkv"))
}

// --- Fallback graph ---

func fallbackResult(withAudio bool) *probe.Result {
	res := &probe.Result{
		Video: probe.VideoInfo{
			Width: 1920, Height: 1080, FPS: 29.97, Duration: 10,
			Codec: "vp9", PixFmt: "yuv420p",
		},
	}
	if withAudio {
		res.Audio = &probe.AudioInfo{Codec: "opus", SampleRate: 48000, ChannelLayout: "stereo"}
	}
	return res
}

func TestBuildFallbackGraph_WithAudio(t *testing.T) {
	graph := buildFallbackGraph(fallbackResult(true), 0.3)

	assert.Contains(t, graph, "[0:v]setpts=PTS-STARTPTS[v0]")
	assert.Contains(t, graph, "[0:a]aresample=48000,aformat=channel_layouts=stereo,asetpts=PTS-STARTPTS[a0]")
	assert.Contains(t, graph, "[1:v]scale=1920:1080,fps=29.970000,format=yuv420p,setsar=1,trim=duration=0.300000,setpts=PTS-STARTPTS[v1]")
	assert.Contains(t, graph, "anullsrc=r=48000:cl=stereo,atrim=duration=0.300000,asetpts=PTS-STARTPTS[a1]")
	assert.Contains(t, graph, "[v0][a0][v1][a1]concat=n=2:v=1:a=1[v][a]")
}

func TestBuildFallbackGraph_SilentSourceGetsAudioBed(t *testing.T) {
	graph := buildFallbackGraph(fallbackResult(false), 0.3)

	assert.Contains(t, graph, "anullsrc=r=48000:cl=stereo,atrim=duration=10.000000,asetpts=PTS-STARTPTS[a0]")
	assert.NotContains(t, graph, "[0:a]")
}

func TestBuildFallbackArgs(t *testing.T) {
	args := BuildFallbackArgs("in.webm", "cover.png", "out.mp4", fallbackResult(true), 0.3, 18, "192k")
	joined := strings.Join(args, " ")

	assert.Contains(t, joined, "-i in.webm")
	assert.Contains(t, joined, "-loop 1 -t 0.300000 -i cover.png")
	assert.Contains(t, joined, "-map [v] -map [a]")
	assert.Contains(t, joined, "-c:v libx264 -pix_fmt yuv420p -profile:v high -level 4.1 -crf 18 -preset medium")
	assert.Contains(t, joined, "-c:a aac -b:a 192k")
	assert.Contains(t, joined, "-movflags +faststart")
	assert.Equal(t, "out.mp4", args[len(args)-1])
}

// --- Error annotation ---

func TestDescribe_ClassifiesKnownStderr(t *testing.T) {
	te := &ffmpeg.ToolError{
		Tool:     "ffmpeg",
		ExitCode: 1,
		Stderr:   "[concat] Non-monotonous DTS in output stream 0:0",
	}
	err := describe("concat video streams", te)
	assert.Contains(t, err.Error(), "timestamp discontinuity")

	var unwrapped *ffmpeg.ToolError
	assert.True(t, errors.As(err, &unwrapped), "original tool error must stay unwrappable")
}

func TestDescribe_UnknownStderrKeepsStage(t *testing.T) {
	te := &ffmpeg.ToolError{Tool: "ffmpeg", ExitCode: 1, Stderr: "something odd"}
	err := describe("remux output", te)
	assert.True(t, strings.HasPrefix(err.Error(), "remux output: "))
}
