package ffmpeg

import (
	"strings"
	"testing"
)

func TestClassifyStderr(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   string
	}{
		{
			"concat parameter mismatch",
			"[Parsed_concat_0 @ 0x5] Input link in1:v0 parameters (size 1280x720, SAR 1:1) do not match the corresponding output link in0:v0 parameters (1920x1080, SAR 1:1)",
			"stream parameters",
		},
		{
			"concat demuxer stream mismatch",
			"[concat @ 0x5] All the streams in a concat demuxer input must have the same codec",
			"stream parameters",
		},
		{
			"non-monotonous dts",
			"[mp4 @ 0x5] Non-monotonous DTS in output stream 0:0; previous: 9000, current: 8000",
			"timestamp discontinuity",
		},
		{
			"unsafe list path",
			"[concat @ 0x5] Unsafe file name '/tmp/x.mp4'",
			"quoting",
		},
		{
			"unknown error",
			"Error opening input: No such file or directory",
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyStderr(tt.stderr)
			if tt.want == "" {
				if got != "" {
					t.Errorf("ClassifyStderr() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("ClassifyStderr() = %q, want substring %q", got, tt.want)
			}
		})
	}
}

func TestToolError_Message(t *testing.T) {
	err := newToolError("ffmpeg", []string{"-i", "in.mp4", "out.mp4"},
		"line one\nline two\n", nil)
	msg := err.Error()
	if !strings.Contains(msg, "ffmpeg -i in.mp4 out.mp4") {
		t.Errorf("message missing command line: %q", msg)
	}
	if !strings.Contains(msg, "line two") {
		t.Errorf("message missing stderr: %q", msg)
	}
}

func TestStderrTail(t *testing.T) {
	in := "a\nb\nc\nd"
	if got := stderrTail(in, 2); got != "c\nd" {
		t.Errorf("stderrTail = %q, want %q", got, "c\nd")
	}
	if got := stderrTail("", 2); got != "" {
		t.Errorf("stderrTail(empty) = %q, want empty", got)
	}
}
