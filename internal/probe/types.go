package probe

import "fmt"

// Frame-rate fallback policy: values outside this range are treated as
// probe noise and replaced with FallbackFPS.
const (
	FallbackFPS = 30.0
	minFPS      = 1.0
	maxFPS      = 360.0
)

// VideoInfo is a read-only snapshot of the primary video stream, taken once
// per invocation. Width and Height are always positive; Probe fails
// otherwise.
type VideoInfo struct {
	Width  int
	Height int

	// FPS is the parsed avg_frame_rate, normalized to a float.
	// Falls back to FallbackFPS when unparsable or outside [1, 360].
	FPS float64

	// Duration in seconds. Resolved from the stream, then the container,
	// then estimated from frame count; 0.0 when unknowable.
	Duration float64

	HasAudio bool

	Codec  string // e.g. "h264"
	PixFmt string // e.g. "yuv420p"
	SAR    string // sample aspect ratio in setsar form, e.g. "1/1" ("" when untagged)

	// Time base of the video track. Zero values mean "unknown or not of
	// the canonical 1/N form"; downstream must not derive a timescale
	// override from them.
	TimeBaseNum int
	TimeBaseDen int

	// Color tags ("" when untagged).
	ColorPrimaries string
	ColorTransfer  string
	ColorSpace     string
}

// AudioInfo describes the primary audio stream. A nil *AudioInfo means the
// source has no audio, which is a valid terminal state.
type AudioInfo struct {
	Codec         string // e.g. "aac"
	SampleRate    int    // e.g. 48000
	ChannelLayout string // e.g. "stereo"
}

// Result is the fully resolved outcome of probing one source file.
type Result struct {
	Video VideoInfo
	Audio *AudioInfo // nil when the source has no audio stream
}

// Error reports a failed probe: missing file, missing video stream, or
// malformed probing-tool output.
type Error struct {
	Path   string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("probe %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("probe %s: %s", e.Path, e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }
