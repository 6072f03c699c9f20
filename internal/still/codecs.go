package still

import (
	"fmt"
	"strconv"
)

// encoderConfig maps a source codec family to the encoder that can
// reproduce it bit-compatibly for concatenation.
type encoderConfig struct {
	Encoder    string
	Profile    string // "" = encoder default
	Level      string // "" = encoder default
	InterFrame bool   // GOP forcing applies only to inter-frame codecs
	Preset     string // "" = no -preset flag

	// quality returns the encoder-specific quality arguments for the
	// user-supplied CRF value.
	quality func(crf int) []string
}

func crfQuality(crf int) []string {
	return []string{"-crf", strconv.Itoa(crf)}
}

// mpeg4 has no CRF; map the 0-51 CRF scale onto its 1-31 qscale range.
func qscaleQuality(crf int) []string {
	q := 1 + crf*30/51
	if q < 1 {
		q = 1
	}
	if q > 31 {
		q = 31
	}
	return []string{"-q:v", strconv.Itoa(q)}
}

// encoders is the fixed source-codec to encoder mapping. Anything not
// listed cannot be reproduced for a stream-copy concat and is a hard
// error via [UnsupportedCodecError].
var encoders = map[string]encoderConfig{
	"h264": {
		Encoder:    "libx264",
		Profile:    "high",
		Level:      "4.1",
		InterFrame: true,
		Preset:     "medium",
		quality:    crfQuality,
	},
	"hevc": {
		Encoder:    "libx265",
		InterFrame: true,
		Preset:     "medium",
		quality:    crfQuality,
	},
	"mpeg4": {
		Encoder:    "mpeg4",
		InterFrame: true,
		quality:    qscaleQuality,
	},
	"prores": {
		Encoder: "prores_ks",
		Profile: "3", // ProRes 422 HQ
		quality: func(int) []string { return nil },
	},
}

// UnsupportedCodecError reports a source codec the synthesizer cannot
// reproduce. Fatal on the fast path: there is no way to append a
// bit-compatible still for it.
type UnsupportedCodecError struct {
	Codec string
}

func (e *UnsupportedCodecError) Error() string {
	return fmt.Sprintf("unsupported source codec %q: cannot synthesize a concat-compatible still", e.Codec)
}

// Supported reports whether the synthesizer can reproduce codec.
func Supported(codec string) bool {
	_, ok := encoders[codec]
	return ok
}

// encoderFor resolves the encoder configuration for a source codec name.
func encoderFor(codec string) (encoderConfig, error) {
	ec, ok := encoders[codec]
	if !ok {
		return encoderConfig{}, &UnsupportedCodecError{Codec: codec}
	}
	return ec, nil
}
