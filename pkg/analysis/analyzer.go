// Package analysis derives approximate color metadata from decoded images:
// dominant colors, brightness, contrast, transparency and a grayscale/rgb
// classification, plus a contrast-based subject finder used for smart
// cropping. Everything runs on a small downsampled grid, trading accuracy
// for speed; results are deterministic for a given input.
package analysis

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

const (
	// analysisGrid bounds the sampling grid on each axis.
	analysisGrid = 64

	// grayTolerance is the max per-channel spread for a "gray" pixel.
	grayTolerance = 10

	// grayShare is the fraction of gray samples that classifies an image
	// as grayscale.
	grayShare = 0.9

	// bucketWidth quantizes RGB channels for dominant-color counting.
	bucketWidth = 32

	// dominantCount is how many buckets Analyze reports.
	dominantCount = 5
)

// Profile classifies the color content of an image.
type Profile string

const (
	ProfileRGB       Profile = "rgb"
	ProfileGrayscale Profile = "grayscale"
)

// Analysis holds the sampled color metadata for one image.
type Analysis struct {
	// DominantColors are the most frequent quantized colors, most
	// frequent first, at most dominantCount entries.
	DominantColors []color.NRGBA

	// Brightness is the mean luma over all samples, 0-1.
	Brightness float64

	// Contrast is the population standard deviation of luma, 0-1.
	Contrast float64

	// HasTransparency is true if any sampled alpha is below 255.
	HasTransparency bool

	// Profile is ProfileGrayscale when >= 90% of samples are gray.
	Profile Profile

	// Samples is the number of pixels inspected.
	Samples int
}

// Analyze samples img on a grid of at most analysisGrid x analysisGrid
// pixels and reports approximate color metadata. Calling it twice on the
// same image yields identical results.
func Analyze(img image.Image) Analysis {
	small := downsample(img)
	b := small.Bounds()
	w, h := b.Dx(), b.Dy()
	n := w * h
	if n == 0 {
		return Analysis{Profile: ProfileRGB}
	}

	var (
		lumaSum   float64
		lumaSqSum float64
		grayCount int
		hasAlpha  bool
		buckets   = make(map[uint32]int)
	)

	for y := 0; y < h; y++ {
		off := y * small.Stride
		for x := 0; x < w; x++ {
			i := off + x*4
			r := small.Pix[i]
			g := small.Pix[i+1]
			bl := small.Pix[i+2]
			a := small.Pix[i+3]

			lum := luma(r, g, bl)
			lumaSum += lum
			lumaSqSum += lum * lum

			if a < 255 {
				hasAlpha = true
			}
			if channelSpread(r, g, bl) <= grayTolerance {
				grayCount++
			}

			key := uint32(quantize(r))<<16 | uint32(quantize(g))<<8 | uint32(quantize(bl))
			buckets[key]++
		}
	}

	mean := lumaSum / float64(n)
	variance := lumaSqSum/float64(n) - mean*mean
	if variance < 0 {
		variance = 0
	}

	profile := ProfileRGB
	if float64(grayCount) >= grayShare*float64(n) {
		profile = ProfileGrayscale
	}

	return Analysis{
		DominantColors:  topBuckets(buckets, dominantCount),
		Brightness:      mean,
		Contrast:        math.Sqrt(variance),
		HasTransparency: hasAlpha,
		Profile:         profile,
		Samples:         n,
	}
}

// downsample shrinks img to the analysis grid and normalizes to NRGBA.
// NearestNeighbor keeps the sampling cheap and deterministic.
func downsample(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() > analysisGrid || b.Dy() > analysisGrid {
		img = resize.Thumbnail(analysisGrid, analysisGrid, img, resize.NearestNeighbor)
	}
	return imaging.Clone(img)
}

// luma is the Rec. 601 weighted luminance, normalized to 0-1.
func luma(r, g, b uint8) float64 {
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255.0
}

func channelSpread(r, g, b uint8) int {
	lo, hi := r, r
	if g < lo {
		lo = g
	}
	if g > hi {
		hi = g
	}
	if b < lo {
		lo = b
	}
	if b > hi {
		hi = b
	}
	return int(hi) - int(lo)
}

// quantize rounds a channel to the nearest bucketWidth multiple, capped at 255.
func quantize(v uint8) uint8 {
	q := (int(v) + bucketWidth/2) / bucketWidth * bucketWidth
	if q > 255 {
		q = 255
	}
	return uint8(q)
}

// topBuckets orders buckets by frequency (ties broken by packed RGB value
// so the ordering is stable) and unpacks the top n.
func topBuckets(buckets map[uint32]int, n int) []color.NRGBA {
	type entry struct {
		key   uint32
		count int
	}
	entries := make([]entry, 0, len(buckets))
	for k, c := range buckets {
		entries = append(entries, entry{key: k, count: c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	out := make([]color.NRGBA, len(entries))
	for i, e := range entries {
		out[i] = color.NRGBA{
			R: uint8(e.key >> 16),
			G: uint8(e.key >> 8),
			B: uint8(e.key),
			A: 255,
		}
	}
	return out
}
