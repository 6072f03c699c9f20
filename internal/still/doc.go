// Package still synthesizes the short encoded clip that gets appended to
// the source video.
//
// The clip is parameterized entirely from probed source properties
// (geometry, frame rate, pixel format, colorimetry, time base) so that the
// fast path's stream-copy concatenation stays frame-accurate. Codec
// selection is a fixed table from source codec name to encoder
// configuration; an unrecognized codec is a hard error, because silently
// fabricating an incompatible still would corrupt the concatenation
// without detection.
package still
