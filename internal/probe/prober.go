package probe

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/backmassage/tcap/internal/ffmpeg"
)

// Prober runs ffprobe queries through the shared tool runner.
type Prober struct {
	Run *ffmpeg.Runner
}

// Probe inspects path and returns a fully resolved Result. It fails with a
// *Error when the file is missing, has no video stream, or the probing
// tool reports malformed output. A failure of the audio query alone
// degrades to "no audio" rather than propagating.
func (p *Prober) Probe(ctx context.Context, path string) (*Result, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &Error{Path: path, Reason: "input video not found", Err: err}
	}

	out, err := p.Run.Probe(ctx,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=codec_name,width,height,pix_fmt,avg_frame_rate,"+
			"duration,nb_frames,sample_aspect_ratio,time_base,"+
			"color_primaries,color_transfer,color_space",
		"-of", "json",
		path,
	)
	if err != nil {
		return nil, &Error{Path: path, Reason: "video stream query failed", Err: err}
	}

	vi, nbFrames, perr := parseVideoJSON(out)
	if perr != nil {
		return nil, &Error{Path: path, Reason: perr.Error()}
	}

	// Stream-level duration absent or non-positive: ask the container,
	// then fall back to a frame-count estimate, then 0.0.
	if vi.Duration <= 0 {
		vi.Duration = p.containerDuration(ctx, path)
	}
	if vi.Duration <= 0 && nbFrames > 0 && vi.FPS > 0 {
		vi.Duration = float64(nbFrames) / vi.FPS
	}
	if vi.Duration < 0 || math.IsNaN(vi.Duration) {
		vi.Duration = 0
	}

	audio := p.probeAudio(ctx, path)
	vi.HasAudio = audio != nil

	return &Result{Video: vi, Audio: audio}, nil
}

// containerDuration queries format-level duration; 0 on any failure.
func (p *Prober) containerDuration(ctx context.Context, path string) float64 {
	out, err := p.Run.Probe(ctx,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "json",
		path,
	)
	if err != nil {
		return 0
	}
	var raw struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(out, &raw); err != nil {
		return 0
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(raw.Format.Duration), 64)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// probeAudio queries the first audio stream. Any failure, including the
// query itself erroring, is treated as "no audio"; nil is the explicit
// absent outcome, not an error.
func (p *Prober) probeAudio(ctx context.Context, path string) *AudioInfo {
	out, err := p.Run.Probe(ctx,
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "stream=codec_name,sample_rate,channel_layout",
		"-of", "json",
		path,
	)
	if err != nil {
		return nil
	}
	return parseAudioJSON(out)
}

// --- ffprobe JSON wire types ---

type videoStreamJSON struct {
	CodecName         string `json:"codec_name"`
	Width             int    `json:"width"`
	Height            int    `json:"height"`
	PixFmt            string `json:"pix_fmt"`
	AvgFrameRate      string `json:"avg_frame_rate"`
	Duration          string `json:"duration"`
	NbFrames          string `json:"nb_frames"`
	SampleAspectRatio string `json:"sample_aspect_ratio"`
	TimeBase          string `json:"time_base"`
	ColorPrimaries    string `json:"color_primaries"`
	ColorTransfer     string `json:"color_transfer"`
	ColorSpace        string `json:"color_space"`
}

type audioStreamJSON struct {
	CodecName     string `json:"codec_name"`
	SampleRate    string `json:"sample_rate"`
	ChannelLayout string `json:"channel_layout"`
}

// --- Conversion from wire types to domain types ---

// parseVideoJSON converts the raw video-stream query output. The returned
// frame count is 0 when the field is absent.
func parseVideoJSON(data []byte) (VideoInfo, int64, error) {
	var raw struct {
		Streams []videoStreamJSON `json:"streams"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return VideoInfo{}, 0, errMalformed{err}
	}
	if len(raw.Streams) == 0 {
		return VideoInfo{}, 0, errNoVideoStream{}
	}
	s := raw.Streams[0]

	if s.Width <= 0 || s.Height <= 0 {
		return VideoInfo{}, 0, errBadDimensions{s.Width, s.Height}
	}

	vi := VideoInfo{
		Width:          s.Width,
		Height:         s.Height,
		FPS:            fpsFromRational(s.AvgFrameRate),
		Duration:       parsePositiveFloat(s.Duration),
		Codec:          s.CodecName,
		PixFmt:         s.PixFmt,
		SAR:            normalizeSAR(s.SampleAspectRatio),
		ColorPrimaries: s.ColorPrimaries,
		ColorTransfer:  s.ColorTransfer,
		ColorSpace:     s.ColorSpace,
	}
	vi.TimeBaseNum, vi.TimeBaseDen = parseTimeBase(s.TimeBase)

	nbFrames, _ := strconv.ParseInt(strings.TrimSpace(s.NbFrames), 10, 64)
	return vi, nbFrames, nil
}

// parseAudioJSON converts the raw audio-stream query output; nil when the
// file has no audio stream or the output is malformed.
func parseAudioJSON(data []byte) *AudioInfo {
	var raw struct {
		Streams []audioStreamJSON `json:"streams"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	if len(raw.Streams) == 0 {
		return nil
	}
	s := raw.Streams[0]

	ai := &AudioInfo{
		Codec:         s.CodecName,
		SampleRate:    48000,
		ChannelLayout: "stereo",
	}
	if sr, err := strconv.Atoi(strings.TrimSpace(s.SampleRate)); err == nil && sr > 0 {
		ai.SampleRate = sr
	}
	if s.ChannelLayout != "" {
		ai.ChannelLayout = s.ChannelLayout
	}
	return ai
}

// fpsFromRational parses ffprobe's "num/den" frame rate. Denominator zero
// counts as unparsable, never a crash. Anything unparsable or outside the
// plausible [1, 360] range falls back to FallbackFPS.
func fpsFromRational(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return FallbackFPS
	}

	var fps float64
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, errN := strconv.ParseFloat(num, 64)
		d, errD := strconv.ParseFloat(den, 64)
		if errN != nil || errD != nil || d == 0 {
			return FallbackFPS
		}
		fps = n / d
	} else {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return FallbackFPS
		}
		fps = f
	}

	if math.IsNaN(fps) || math.IsInf(fps, 0) || fps < minFPS || fps > maxFPS {
		return FallbackFPS
	}
	return fps
}

// parseTimeBase parses "num/den"; returns (0, 0) for anything that is not
// a valid positive rational.
func parseTimeBase(s string) (int, int) {
	num, den, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return 0, 0
	}
	n, errN := strconv.Atoi(num)
	d, errD := strconv.Atoi(den)
	if errN != nil || errD != nil || n <= 0 || d <= 0 {
		return 0, 0
	}
	return n, d
}

// normalizeSAR maps ffprobe's "N:M" sample aspect ratio to the form the
// setsar filter accepts, dropping the unknown marker "0:1".
func normalizeSAR(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || s == "0:1" {
		return ""
	}
	return strings.ReplaceAll(s, ":", "/")
}

func parsePositiveFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

// --- parse error kinds (wrapped into *Error by Probe) ---

type errMalformed struct{ err error }

func (e errMalformed) Error() string { return "malformed ffprobe output: " + e.err.Error() }

type errNoVideoStream struct{}

func (errNoVideoStream) Error() string { return "no video stream" }

type errBadDimensions struct{ w, h int }

func (e errBadDimensions) Error() string {
	return "invalid video dimensions " + strconv.Itoa(e.w) + "x" + strconv.Itoa(e.h)
}
