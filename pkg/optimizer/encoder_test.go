package optimizer

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTestImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := y*img.Stride + x*4
			img.Pix[off] = uint8(x * 255 / w)
			img.Pix[off+1] = uint8(y * 255 / h)
			img.Pix[off+2] = uint8((x + y) % 256)
			img.Pix[off+3] = 0xff
		}
	}
	return img
}

func makeSolidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func TestEncodeJPEG(t *testing.T) {
	img := makeTestImage(64, 48)
	data, err := Encode(img, FormatJPEG, Options{Quality: 0.8})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	decoded, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 64, decoded.Bounds().Dx())
	assert.Equal(t, 48, decoded.Bounds().Dy())
}

func TestEncodePNG(t *testing.T) {
	img := makeTestImage(64, 48)
	data, err := Encode(img, FormatPNG, Options{Quality: 0.3})
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 64, decoded.Bounds().Dx())
}

func TestEncodeWebP(t *testing.T) {
	img := makeTestImage(64, 48)
	data, err := Encode(img, FormatWebP, Options{Quality: 0.8})
	require.NoError(t, err)
	require.NotEmpty(t, data)
}

func TestEncodeRejectsAuto(t *testing.T) {
	img := makeTestImage(8, 8)
	_, err := Encode(img, FormatAuto, Options{})
	var ee *EncodeError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, FormatAuto, ee.Format)
}

func TestEncodeQualityAffectsJPEGSize(t *testing.T) {
	img := makeTestImage(200, 200)
	low, err := Encode(img, FormatJPEG, Options{Quality: 0.3})
	require.NoError(t, err)
	high, err := Encode(img, FormatJPEG, Options{Quality: 0.95})
	require.NoError(t, err)
	assert.Less(t, len(low), len(high))
}

func TestEncodeAutoPicksSmallest(t *testing.T) {
	img := makeTestImage(100, 100)
	opts := Options{Quality: 0.8}

	data, format, err := EncodeAuto(img, opts)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Contains(t, autoCandidates, format)

	for _, f := range autoCandidates {
		candidate, err := Encode(img, f, opts)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(data), len(candidate), "auto output larger than %s", f)
	}
}

func TestPickSmallestFirstWinsTies(t *testing.T) {
	results := []encoded{
		{format: FormatWebP, data: make([]byte, 10)},
		{format: FormatJPEG, data: make([]byte, 10)},
		{format: FormatPNG, data: make([]byte, 20)},
	}
	best, ok := pickSmallest(results)
	require.True(t, ok)
	assert.Equal(t, FormatWebP, best.format)

	results[1].data = make([]byte, 5)
	best, ok = pickSmallest(results)
	require.True(t, ok)
	assert.Equal(t, FormatJPEG, best.format)

	_, ok = pickSmallest(nil)
	assert.False(t, ok)
}
