package display

import (
	"fmt"
	"os"

	"github.com/backmassage/tcap/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Magenta != "" {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, ` _
| |_ ___ __ _ _ __
| __/ __/ _`+"`"+` | '_ \
| || (_| (_| | |_) |
 \__\___\__,_| .__/
             |_|
`)
	if term.Magenta != "" {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
