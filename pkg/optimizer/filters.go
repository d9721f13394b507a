package optimizer

import (
	"image"

	"github.com/disintegration/imaging"
)

// applyFilters runs the optional pre-composite adjustments in the fixed
// order blur -> sharpen -> gamma. Each filter is a no-op at its zero value,
// so the common case returns the input untouched.
func applyFilters(img *image.NRGBA, opts Options) *image.NRGBA {
	if opts.Blur > 0 {
		img = imaging.Blur(img, opts.Blur)
	}
	if opts.Sharpen > 0 {
		img = imaging.Sharpen(img, opts.Sharpen)
	}
	if opts.Gamma > 0 && opts.Gamma != 1.0 {
		img = imaging.AdjustGamma(img, opts.Gamma)
	}
	return img
}
