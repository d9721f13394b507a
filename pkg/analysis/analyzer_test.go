package analysis

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func TestAnalyzeSolidColor(t *testing.T) {
	img := solid(100, 100, color.NRGBA{255, 0, 0, 255})
	a := Analyze(img)

	require.NotEmpty(t, a.DominantColors)
	dom := a.DominantColors[0]
	assert.InDelta(t, 255, int(dom.R), float64(bucketWidth))
	assert.InDelta(t, 0, int(dom.G), float64(bucketWidth))
	assert.InDelta(t, 0, int(dom.B), float64(bucketWidth))

	assert.Equal(t, ProfileRGB, a.Profile)
	assert.False(t, a.HasTransparency)
	assert.InDelta(t, 0.299, a.Brightness, 0.02)
	assert.InDelta(t, 0, a.Contrast, 0.001)
}

func TestAnalyzeGrayscale(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			off := y*img.Stride + x*4
			v := uint8(x * 4)
			img.Pix[off] = v
			img.Pix[off+1] = v
			img.Pix[off+2] = v
			img.Pix[off+3] = 255
		}
	}

	a := Analyze(img)
	assert.Equal(t, ProfileGrayscale, a.Profile)
	assert.False(t, a.HasTransparency)
	assert.Greater(t, a.Contrast, 0.1, "gradient should have spread")
}

func TestAnalyzeTransparency(t *testing.T) {
	img := solid(50, 50, color.NRGBA{0, 128, 255, 255})
	img.Pix[3] = 100 // one translucent pixel

	a := Analyze(img)
	assert.True(t, a.HasTransparency)
}

func TestAnalyzeDeterministic(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 200, 150))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 31)
	}

	first := Analyze(img)
	second := Analyze(img)
	assert.Equal(t, first, second)
}

func TestAnalyzeBrightnessBounds(t *testing.T) {
	black := Analyze(solid(10, 10, color.NRGBA{0, 0, 0, 255}))
	white := Analyze(solid(10, 10, color.NRGBA{255, 255, 255, 255}))

	assert.InDelta(t, 0, black.Brightness, 0.001)
	assert.InDelta(t, 1, white.Brightness, 0.001)
	assert.Equal(t, ProfileGrayscale, black.Profile)
}

func TestAnalyzeDominantOrder(t *testing.T) {
	// 3/4 blue, 1/4 yellow: blue must come first.
	img := solid(64, 64, color.NRGBA{0, 0, 255, 255})
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			off := y*img.Stride + x*4
			img.Pix[off] = 255
			img.Pix[off+1] = 255
			img.Pix[off+2] = 0
		}
	}

	a := Analyze(img)
	require.GreaterOrEqual(t, len(a.DominantColors), 2)
	assert.Greater(t, int(a.DominantColors[0].B), int(a.DominantColors[0].R))
	assert.Greater(t, int(a.DominantColors[1].R), int(a.DominantColors[1].B))
	assert.LessOrEqual(t, len(a.DominantColors), dominantCount)
}

func TestFindSubjectPrefersBusyRegion(t *testing.T) {
	// Flat image with a noisy block in the bottom-right quadrant.
	img := solid(400, 400, color.NRGBA{60, 60, 60, 255})
	for y := 300; y < 380; y++ {
		for x := 300; x < 380; x++ {
			off := y*img.Stride + x*4
			v := uint8((x*7 + y*13) % 256)
			img.Pix[off] = v
			img.Pix[off+1] = 255 - v
			img.Pix[off+2] = v / 2
		}
	}

	focal := FindSubject(img, 150, 150)
	assert.Greater(t, focal.X, 200)
	assert.Greater(t, focal.Y, 200)
	assert.True(t, image.Pt(focal.X, focal.Y).In(img.Bounds()))
}

func TestFindSubjectDegenerateInputs(t *testing.T) {
	img := solid(100, 80, color.NRGBA{10, 10, 10, 255})

	// Crop covering everything falls back to the center.
	focal := FindSubject(img, 100, 80)
	assert.Equal(t, image.Pt(50, 40), focal)

	focal = FindSubject(img, 0, 50)
	assert.Equal(t, image.Pt(50, 40), focal)
}

func TestRegionContrast(t *testing.T) {
	flat := solid(32, 32, color.NRGBA{100, 100, 100, 255})
	assert.InDelta(t, 0, regionContrast(flat, flat.Bounds()), 0.0001)

	half := solid(32, 32, color.NRGBA{0, 0, 0, 255})
	for y := 0; y < 32; y++ {
		for x := 16; x < 32; x++ {
			off := y*half.Stride + x*4
			half.Pix[off] = 255
			half.Pix[off+1] = 255
			half.Pix[off+2] = 255
		}
	}
	assert.Greater(t, regionContrast(half, half.Bounds()), 0.4)
}
