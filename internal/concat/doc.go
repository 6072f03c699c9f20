// Package concat joins the source footage with the synthesized still clip.
//
// Two routes exist. The fast path isolates the source's elementary streams
// by stream copy, concatenates the video stream with the still clip through
// the concat demuxer (no re-encode), and remuxes the original audio back
// untouched. The fallback decodes both inputs into a single filter graph
// and re-encodes the unified result end to end.
//
// A fast-path stage failure is a hard error. The engine never degrades to
// the fallback on its own; route selection happens once, before any work.
package concat
