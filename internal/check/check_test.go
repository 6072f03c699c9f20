package check

import (
	"errors"
	"testing"

	"github.com/backmassage/tcap/internal/config"
)

func TestCheckDeps_MissingTools(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.FFmpegPath = "tcap-no-such-ffmpeg"

	if err := CheckDeps(&cfg); !errors.Is(err, ErrFfmpegNotFound) {
		t.Errorf("CheckDeps = %v, want ErrFfmpegNotFound", err)
	}

	cfg = config.DefaultConfig()
	cfg.FFmpegPath = "/bin/true" // resolves, so the probe check runs next
	cfg.FFprobePath = "tcap-no-such-ffprobe"

	if err := CheckDeps(&cfg); !errors.Is(err, ErrFfprobeNotFound) {
		t.Errorf("CheckDeps = %v, want ErrFfprobeNotFound", err)
	}
}
