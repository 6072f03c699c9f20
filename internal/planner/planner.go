// Package planner decides, once per invocation, whether the append runs as
// a stream-copy concatenation or a full re-encode.
//
// The gate is a conservative, explicit allow-list, never a heuristic. An
// incorrect fast-path attempt risks a desynchronized or unplayable trailing
// segment, so anything not positively known to be reproducible by the still
// synthesizer forces the re-encode route.
package planner

import (
	"fmt"

	"github.com/backmassage/tcap/internal/config"
	"github.com/backmassage/tcap/internal/probe"
)

// Route is the chosen append strategy.
type Route int

const (
	RouteFastPath Route = iota // Stream-copy concat; original bitstream untouched.
	RouteReencode              // Full filter-graph re-encode of both inputs.
)

func (r Route) String() string {
	if r == RouteFastPath {
		return "fast-path (stream copy)"
	}
	return "re-encode"
}

// Decision is the gate outcome. It is computed once per invocation and
// never re-derived mid-pipeline.
type Decision struct {
	Route  Route
	Reason string
	Forced bool // True when --mode bypassed the gate.
}

// Codecs the still synthesizer can reproduce bit-compatibly for concat.
// Deliberately narrow: H.264 via libx264 with matched profile/level/pix_fmt
// is the only combination validated end to end.
var fastPathVideoCodecs = map[string]bool{
	"h264": true,
}

// Audio codecs safe to carry through the copy-concat remux.
var fastPathAudioCodecs = map[string]bool{
	"aac": true,
}

// Decide selects the route for one invocation. Pure function of the probe
// result and the configured mode; no side effects.
func Decide(res *probe.Result, mode config.Mode) Decision {
	switch mode {
	case config.ModeCopy:
		return Decision{
			Route:  RouteFastPath,
			Reason: "forced by --mode copy",
			Forced: true,
		}
	case config.ModeReencode:
		return Decision{
			Route:  RouteReencode,
			Reason: "forced by --mode reencode",
			Forced: true,
		}
	}

	if ok, reason := GateFastPath(&res.Video, res.Audio); !ok {
		return Decision{Route: RouteReencode, Reason: reason}
	}
	return Decision{Route: RouteFastPath, Reason: "source codecs in copy allow-list"}
}

// GateFastPath reports whether a stream-copy concatenation is permitted:
// the video codec must be in the reproducible allow-list, and the source
// must either have no audio or carry an allow-listed audio codec.
func GateFastPath(v *probe.VideoInfo, a *probe.AudioInfo) (bool, string) {
	if !fastPathVideoCodecs[v.Codec] {
		return false, fmt.Sprintf("video codec %q not in copy allow-list", v.Codec)
	}
	if a == nil {
		return true, ""
	}
	if !fastPathAudioCodecs[a.Codec] {
		return false, fmt.Sprintf("audio codec %q not in copy allow-list", a.Codec)
	}
	return true, ""
}
