package concat

import (
	"fmt"
	"os"
	"strings"
)

// WriteList writes a concat-demuxer list file: one single-quoted path per
// line. Paths are quoted unconditionally so spaces and shell metacharacters
// never need special-casing.
func WriteList(path string, entries []string) error {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "file %s\n", quoteListPath(e))
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}
	return nil
}

// quoteListPath single-quotes a path for the concat demuxer. An embedded
// single quote closes the quote, emits an escaped quote, and reopens:
// it's -> 'it'\''s'.
func quoteListPath(p string) string {
	return "'" + strings.ReplaceAll(p, "'", `'\''`) + "'"
}
