// Package fsx implements the atomic output-replacement discipline: the
// final artifact is staged in the destination's own directory and moved
// into place with a single rename. Cross-filesystem staging is rejected
// outright: a temp-then-copy replace would not be atomic, so EXDEV is a
// hard error rather than a fallback.
package fsx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// CrossDeviceError reports a rename that failed because source and
// destination are on different filesystems.
type CrossDeviceError struct {
	Src string
	Dst string
	Err error
}

func (e *CrossDeviceError) Error() string {
	return fmt.Sprintf("atomic replace %q -> %q crosses filesystems; stage the output in the destination directory", e.Src, e.Dst)
}

func (e *CrossDeviceError) Unwrap() error { return e.Err }

// IsCrossDevice reports whether err is a cross-filesystem rename failure.
func IsCrossDevice(err error) bool {
	var e *CrossDeviceError
	return errors.As(err, &e)
}

// StagePath returns a not-yet-existing hidden staging path in the same
// directory as dst, so the final rename is a same-filesystem atomic
// operation. The destination's extension comes after the random token:
// ffmpeg selects the muxer from the output extension, so the staged path
// must end in the real container suffix. The leading dot keeps the file
// out of media library views.
func StagePath(dst string) (string, error) {
	dir := filepath.Dir(dst)
	base := filepath.Base(dst)

	f, err := os.CreateTemp(dir, "."+base+".tcap-*"+filepath.Ext(base))
	if err != nil {
		return "", fmt.Errorf("stage in %s: %w", dir, err)
	}
	name := f.Name()
	// The caller's tool writes the file itself; we only reserved the name.
	if err := f.Close(); err != nil {
		return "", err
	}
	if err := os.Remove(name); err != nil {
		return "", err
	}
	return name, nil
}

// Replace atomically moves the staged file over dst. On failure the staged
// file is removed and dst is left untouched.
func Replace(staged, dst string) error {
	if err := rename(staged, dst); err != nil {
		_ = os.Remove(staged)
		return err
	}
	return nil
}

// DiscardStaged removes a staged file if it exists. Safe to call on every
// exit path.
func DiscardStaged(staged string) {
	if staged == "" {
		return
	}
	if err := os.Remove(staged); err != nil && !os.IsNotExist(err) {
		// Nothing actionable; the file lives in the destination directory
		// with a dot prefix and will be visible to the user.
		_ = err
	}
}

// rename wraps os.Rename, marking EXDEV explicitly.
func rename(src, dst string) error {
	if err := os.Rename(src, dst); err != nil {
		if isEXDEV(err) {
			return &CrossDeviceError{Src: src, Dst: dst, Err: err}
		}
		return err
	}
	return nil
}
