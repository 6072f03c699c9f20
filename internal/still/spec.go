package still

import (
	"math"

	"github.com/backmassage/tcap/internal/probe"
)

// Spec describes the clip to synthesize. It is derived from probe data,
// owned by this package, and discarded after the clip file is produced.
type Spec struct {
	Width    int
	Height   int
	FPS      float64
	Duration float64 // seconds

	Codec  string // source codec name; key into the encoder table
	PixFmt string // "" = encoder default (yuv420p for the common codecs)
	SAR    string // sample aspect ratio for setsar, "" = square pixels

	// TimescaleDen is N when the source video track's time base is the
	// canonical 1/N form; the synthesized clip's container timescale is
	// forced to match. 0 = no override (encoder default).
	TimescaleDen int

	// Color tags, passed through when the source carries them.
	ColorPrimaries string
	ColorTransfer  string
	ColorSpace     string

	// Audio, when non-nil, adds a silent track matching the source's
	// sample rate and channel layout. Nil produces a video-only clip.
	Audio *AudioTarget
}

// AudioTarget describes the silent audio track of the synthesized clip.
type AudioTarget struct {
	SampleRate    int
	ChannelLayout string
}

// SpecFromProbe derives a Spec for a clip of the given duration. When
// withAudio is true and the source has audio, the clip gets a matching
// silent track.
func SpecFromProbe(res *probe.Result, duration float64, withAudio bool) Spec {
	v := res.Video
	s := Spec{
		Width:          v.Width,
		Height:         v.Height,
		FPS:            v.FPS,
		Duration:       duration,
		Codec:          v.Codec,
		PixFmt:         v.PixFmt,
		SAR:            v.SAR,
		ColorPrimaries: v.ColorPrimaries,
		ColorTransfer:  v.ColorTransfer,
		ColorSpace:     v.ColorSpace,
	}
	if v.TimeBaseNum == 1 && v.TimeBaseDen > 0 {
		s.TimescaleDen = v.TimeBaseDen
	}
	if withAudio && res.Audio != nil {
		s.Audio = &AudioTarget{
			SampleRate:    res.Audio.SampleRate,
			ChannelLayout: res.Audio.ChannelLayout,
		}
	}
	return s
}

// GOPSize returns the forced keyframe interval: one GOP spanning the whole
// clip (round(fps*duration), at least 1), so the clip is self-contained
// regardless of player seek behavior.
func (s Spec) GOPSize() int {
	g := int(math.Round(s.FPS * s.Duration))
	if g < 1 {
		g = 1
	}
	return g
}
