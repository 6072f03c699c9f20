package pipeline

import (
	"fmt"
	"time"

	"github.com/backmassage/tcap/internal/display"
	"github.com/backmassage/tcap/internal/planner"
)

// Result summarizes one completed append invocation.
type Result struct {
	OutputPath  string
	Route       planner.Route
	Forced      bool
	Elapsed     time.Duration
	InputBytes  int64
	OutputBytes int64
}

// Summary renders the one-line completion report.
func (r *Result) Summary() string {
	return fmt.Sprintf("%s in %s (%s -> %s)",
		r.Route,
		display.FormatElapsed(r.Elapsed),
		display.FormatBytes(r.InputBytes),
		display.FormatBytes(r.OutputBytes))
}
