package term

import (
	"testing"

	"github.com/backmassage/tcap/internal/config"
)

func TestConfigure(t *testing.T) {
	t.Cleanup(func() { Configure(config.ColorNever) })

	Configure(config.ColorAlways)
	if !Enabled() {
		t.Fatal("ColorAlways must enable the palette")
	}
	for name, entry := range map[string]string{
		"Red": Red, "Green": Green, "Yellow": Yellow,
		"Blue": Blue, "Cyan": Cyan, "Magenta": Magenta, "NC": NC,
	} {
		if entry == "" {
			t.Errorf("%s empty with colors enabled", name)
		}
	}

	Configure(config.ColorNever)
	if Enabled() {
		t.Fatal("ColorNever must clear the palette")
	}
	for name, entry := range map[string]string{
		"Red": Red, "Green": Green, "Yellow": Yellow,
		"Blue": Blue, "Cyan": Cyan, "Magenta": Magenta, "NC": NC,
	} {
		if entry != "" {
			t.Errorf("%s = %q, want empty with colors disabled", name, entry)
		}
	}
}

func TestShouldColor(t *testing.T) {
	if !shouldColor(config.ColorAlways) {
		t.Error("always must color")
	}
	if shouldColor(config.ColorNever) {
		t.Error("never must not color")
	}

	// NO_COLOR wins over everything in auto mode.
	t.Setenv("NO_COLOR", "1")
	if shouldColor(config.ColorAuto) {
		t.Error("NO_COLOR must disable auto colors")
	}
}
