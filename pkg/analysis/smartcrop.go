package analysis

import (
	"image"
	"math"
)

// FindSubject locates the most visually busy region of img for a crop
// window of cropW x cropH (source coordinates) and returns the point, in
// source coordinates, that the crop should center on.
//
// The heuristic scores overlapping candidate windows on the analysis grid
// by local contrast: the busiest block is assumed to contain the subject.
// There is no correctness guarantee beyond the returned point lying within
// the image bounds.
func FindSubject(img image.Image, cropW, cropH int) image.Point {
	b := img.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	center := image.Pt(b.Min.X+srcW/2, b.Min.Y+srcH/2)
	if srcW <= 0 || srcH <= 0 || cropW <= 0 || cropH <= 0 {
		return center
	}

	small := downsample(img)
	sb := small.Bounds()
	gw, gh := sb.Dx(), sb.Dy()

	// Scale the crop window down to grid coordinates.
	blockW := clamp(cropW*gw/srcW, 2, gw)
	blockH := clamp(cropH*gh/srcH, 2, gh)
	if blockW >= gw && blockH >= gh {
		return center
	}

	stepX := max(1, blockW/2)
	stepY := max(1, blockH/2)

	bestScore := -1.0
	bestX, bestY := (gw-blockW)/2, (gh-blockH)/2

	for y := 0; y <= gh-blockH; y += stepY {
		for x := 0; x <= gw-blockW; x += stepX {
			score := regionContrast(small, image.Rect(x, y, x+blockW, y+blockH))
			if score > bestScore {
				bestScore = score
				bestX, bestY = x, y
			}
		}
	}

	// Map the winning block's center back to source coordinates.
	cx := b.Min.X + (bestX+blockW/2)*srcW/gw
	cy := b.Min.Y + (bestY+blockH/2)*srcH/gh
	return image.Pt(cx, cy)
}

// regionContrast is the population standard deviation of luma inside r,
// in 0-1. r must lie within img's bounds.
func regionContrast(img *image.NRGBA, r image.Rectangle) float64 {
	n := r.Dx() * r.Dy()
	if n <= 0 {
		return 0
	}

	var sum, sqSum float64
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := y * img.Stride
		for x := r.Min.X; x < r.Max.X; x++ {
			i := off + x*4
			lum := luma(img.Pix[i], img.Pix[i+1], img.Pix[i+2])
			sum += lum
			sqSum += lum * lum
		}
	}

	mean := sum / float64(n)
	variance := sqSum/float64(n) - mean*mean
	if variance < 0 {
		return 0
	}
	return math.Sqrt(variance)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
