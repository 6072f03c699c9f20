package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/backmassage/tcap/internal/config"
	"github.com/backmassage/tcap/internal/probe"
)

// --- Helper builders ---

func h264AAC() *probe.Result {
	return &probe.Result{
		Video: probe.VideoInfo{
			Codec: "h264", PixFmt: "yuv420p",
			Width: 1920, Height: 1080, FPS: 30, Duration: 10,
			HasAudio: true,
		},
		Audio: &probe.AudioInfo{Codec: "aac", SampleRate: 48000, ChannelLayout: "stereo"},
	}
}

func h264Silent() *probe.Result {
	r := h264AAC()
	r.Audio = nil
	r.Video.HasAudio = false
	return r
}

func hevcAAC() *probe.Result {
	r := h264AAC()
	r.Video.Codec = "hevc"
	return r
}

func h264AC3() *probe.Result {
	r := h264AAC()
	r.Audio = &probe.AudioInfo{Codec: "ac3", SampleRate: 48000, ChannelLayout: "5.1"}
	return r
}

// --- Gate decision matrix ---

func TestDecide_Auto(t *testing.T) {
	tests := []struct {
		name string
		res  *probe.Result
		want Route
	}{
		{"h264 with aac takes fast path", h264AAC(), RouteFastPath},
		{"h264 without audio takes fast path", h264Silent(), RouteFastPath},
		{"hevc forces re-encode", hevcAAC(), RouteReencode},
		{"h264 with ac3 forces re-encode", h264AC3(), RouteReencode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.res, config.ModeAuto)
			assert.Equal(t, tt.want, d.Route)
			assert.False(t, d.Forced)
			assert.NotEmpty(t, d.Reason)
		})
	}
}

func TestDecide_ForcedModes(t *testing.T) {
	// copy mode forces the fast path even for a gate-failing source; the
	// synthesizer is then responsible for the hard unsupported-codec stop.
	d := Decide(hevcAAC(), config.ModeCopy)
	assert.Equal(t, RouteFastPath, d.Route)
	assert.True(t, d.Forced)

	// reencode mode forces the filter-graph path even for a compatible source.
	d = Decide(h264AAC(), config.ModeReencode)
	assert.Equal(t, RouteReencode, d.Route)
	assert.True(t, d.Forced)
}

func TestDecide_ComputedOnce(t *testing.T) {
	res := h264AAC()
	first := Decide(res, config.ModeAuto)

	// Mutating probe data afterwards must not affect an existing decision.
	res.Video.Codec = "mpeg4"
	assert.Equal(t, RouteFastPath, first.Route)
}

func TestGateFastPath_Reasons(t *testing.T) {
	ok, reason := GateFastPath(&probe.VideoInfo{Codec: "vp9"}, nil)
	assert.False(t, ok)
	assert.Contains(t, reason, "vp9")

	ok, reason = GateFastPath(&probe.VideoInfo{Codec: "h264"},
		&probe.AudioInfo{Codec: "opus"})
	assert.False(t, ok)
	assert.Contains(t, reason, "opus")

	ok, _ = GateFastPath(&probe.VideoInfo{Codec: "h264"},
		&probe.AudioInfo{Codec: "aac"})
	assert.True(t, ok)
}
