package still

import (
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// PrepareImage validates the still image and conforms its pixel geometry to
// the target stream. When the file already matches width x height the
// original path is returned unchanged; otherwise the image is fitted and
// letterboxed onto black, and the result is written into workDir.
//
// Decoding up front catches corrupt or non-image files with a clear error
// before any encoder is launched.
func PrepareImage(srcPath, workDir string, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid target geometry %dx%d", width, height)
	}

	img, err := imaging.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("still image %s not usable: %w", srcPath, err)
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return "", fmt.Errorf("still image %s is empty", srcPath)
	}
	if b.Dx() == width && b.Dy() == height {
		return srcPath, nil
	}

	fitted := imaging.Fit(img, width, height, imaging.Lanczos)
	canvas := imaging.New(width, height, color.Black)
	canvas = imaging.PasteCenter(canvas, fitted)

	outPath := filepath.Join(workDir, "still_prepared.png")
	if err := imaging.Save(canvas, outPath); err != nil {
		return "", fmt.Errorf("write prepared still: %w", err)
	}
	return outPath, nil
}
