// Package probe provides ffprobe-based media inspection and typed result
// structures.
//
// Three read-only queries are made per source file: video stream fields,
// container duration (only when the stream-level duration is unusable), and
// audio stream presence. A failed audio query degrades to "no audio"
// because absence of audio is a legitimate file state, not an error; the
// distinction is carried in the type (Result.Audio is nil when absent).
//
// Every optional field has a documented fallback: frame rate falls back to
// 30.0 when the rational is unparsable or implausible, duration degrades
// through container duration and frame-count estimation to 0.0, and the
// time base is left unset when it is not of the canonical 1/N form.
package probe
