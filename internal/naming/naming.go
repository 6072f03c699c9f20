// Package naming resolves the file-path conventions of the pair workflow:
// inferring the thumbnail image that sits next to a video, deriving the
// default output path, and validating output container extensions.
package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// pairExtensions are the image extensions tried, in order, when inferring
// the thumbnail for a video in --pair mode.
var pairExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff"}

// outputContainers are the extensions accepted for the output file.
// The concatenated streams are written with mov/mp4-family muxer options,
// so the list stays narrow on purpose.
var outputContainers = map[string]bool{
	".mp4": true,
	".m4v": true,
	".mov": true,
	".mkv": true,
}

// Stem returns the video path without its extension.
func Stem(videoPath string) string {
	return strings.TrimSuffix(videoPath, filepath.Ext(videoPath))
}

// PairImage infers the thumbnail image belonging to videoPath by probing
// <stem>.<ext> for each known image extension. The first existing regular
// file wins.
func PairImage(videoPath string) (string, error) {
	stem := Stem(videoPath)
	for _, ext := range pairExtensions {
		candidate := stem + ext
		if fi, err := os.Stat(candidate); err == nil && fi.Mode().IsRegular() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no thumbnail found next to %s (tried %s + %s)",
		videoPath, filepath.Base(stem), strings.Join(pairExtensions, "/"))
}

// DefaultOutput returns the default output path for a video:
// <stem>_thumb.mp4 in the same directory as the input.
func DefaultOutput(videoPath string) string {
	return Stem(videoPath) + "_thumb.mp4"
}

// ValidateOutput checks that the output path carries a supported container
// extension.
func ValidateOutput(outPath string) error {
	ext := strings.ToLower(filepath.Ext(outPath))
	if ext == "" {
		return fmt.Errorf("output path %s has no container extension", outPath)
	}
	if !outputContainers[ext] {
		return fmt.Errorf("unsupported output container %s (use mp4, m4v, mov, or mkv)", ext)
	}
	return nil
}
