package optimizer

import (
	"fmt"
	"image"
	"math"
)

// Geometry is the planned output of a resize: target dimensions plus, for
// cover fits, the source region that will be drawn.
type Geometry struct {
	Width  int
	Height int

	// Crop, when non-nil, is the source rectangle to draw from. It always
	// lies within the source bounds.
	Crop *image.Rectangle
}

// Plan computes the target geometry for a source of srcW x srcH under opts.
// Missing bounds default to the source dimension on that axis, so a zero
// Options plans a no-op.
//
// Tie-break rule: cover and fill satisfy the larger dimension's demand
// (covering scale factor), contain/inside/outside the smaller (containing).
func Plan(srcW, srcH int, opts Options) (Geometry, error) {
	if srcW <= 0 || srcH <= 0 {
		return Geometry{}, &GeometryError{Reason: fmt.Sprintf("zero-area source (%dx%d)", srcW, srcH)}
	}
	if opts.MaxWidth < 0 || opts.MaxHeight < 0 {
		return Geometry{}, &GeometryError{Reason: fmt.Sprintf("negative bounds (%dx%d)", opts.MaxWidth, opts.MaxHeight)}
	}

	boundW, boundH := opts.MaxWidth, opts.MaxHeight
	if boundW == 0 {
		boundW = srcW
	}
	if boundH == 0 {
		boundH = srcH
	}

	switch opts.Fit {
	case FitFill:
		return Geometry{Width: boundW, Height: boundH}, nil

	case FitContain:
		w, h := containDims(srcW, srcH, boundW, boundH)
		return Geometry{Width: w, Height: h}, nil

	case FitInside:
		if srcW <= boundW && srcH <= boundH {
			return Geometry{Width: srcW, Height: srcH}, nil
		}
		w, h := containDims(srcW, srcH, boundW, boundH)
		return Geometry{Width: w, Height: h}, nil

	case FitOutside:
		if srcW >= boundW || srcH >= boundH {
			return Geometry{Width: srcW, Height: srcH}, nil
		}
		w, h := containDims(srcW, srcH, boundW, boundH)
		return Geometry{Width: w, Height: h}, nil

	default: // FitCover
		crop := coverCrop(srcW, srcH, boundW, boundH, opts.Position)
		return Geometry{Width: boundW, Height: boundH, Crop: &crop}, nil
	}
}

// containDims scales (srcW, srcH) by the containing factor
// min(boundW/srcW, boundH/srcH), preserving aspect ratio.
func containDims(srcW, srcH, boundW, boundH int) (int, int) {
	scale := math.Min(float64(boundW)/float64(srcW), float64(boundH)/float64(srcH))
	w := int(math.Max(1, math.Round(float64(srcW)*scale)))
	h := int(math.Max(1, math.Round(float64(srcH)*scale)))
	return w, h
}

// coverCrop selects the source sub-region matching the target aspect ratio,
// positioned by anchor. AnchorSmart falls back to center here; callers with
// pixel data recenter via RecenterCrop.
func coverCrop(srcW, srcH, boundW, boundH int, anchor Anchor) image.Rectangle {
	targetAspect := float64(boundW) / float64(boundH)
	srcAspect := float64(srcW) / float64(srcH)

	cropW, cropH := srcW, srcH
	if srcAspect > targetAspect {
		cropW = int(math.Round(float64(srcH) * targetAspect))
	} else if srcAspect < targetAspect {
		cropH = int(math.Round(float64(srcW) / targetAspect))
	}
	cropW = clampInt(cropW, 1, srcW)
	cropH = clampInt(cropH, 1, srcH)

	var x, y int
	switch anchor {
	case AnchorLeft, AnchorTopLeft, AnchorBottomLeft:
		x = 0
	case AnchorRight, AnchorTopRight, AnchorBottomRight:
		x = srcW - cropW
	default:
		x = (srcW - cropW) / 2
	}
	switch anchor {
	case AnchorTop, AnchorTopLeft, AnchorTopRight:
		y = 0
	case AnchorBottom, AnchorBottomLeft, AnchorBottomRight:
		y = srcH - cropH
	default:
		y = (srcH - cropH) / 2
	}

	return image.Rect(x, y, x+cropW, y+cropH)
}

// RecenterCrop moves crop so that it is centered on focal, clamped to stay
// inside [0,srcW) x [0,srcH). The crop size is unchanged.
func RecenterCrop(crop image.Rectangle, focal image.Point, srcW, srcH int) image.Rectangle {
	w, h := crop.Dx(), crop.Dy()
	x := clampInt(focal.X-w/2, 0, srcW-w)
	y := clampInt(focal.Y-h/2, 0, srcH-h)
	return image.Rect(x, y, x+w, y+h)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
