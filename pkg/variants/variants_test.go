package variants

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelmill/pkg/optimizer"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := y*img.Stride + x*4
			img.Pix[off] = uint8(x * 255 / w)
			img.Pix[off+1] = uint8(y * 255 / h)
			img.Pix[off+2] = 128
			img.Pix[off+3] = 255
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessVariants(t *testing.T) {
	data := testPNG(t, 200, 100)
	named := map[string]optimizer.Options{
		"small": {MaxWidth: 50, MaxHeight: 25, Fit: optimizer.FitCover, Format: optimizer.FormatPNG},
		"thumb": {MaxWidth: 20, MaxHeight: 20, Fit: optimizer.FitCover, Format: optimizer.FormatPNG},
	}

	set, err := ProcessVariants(context.Background(), data, named)
	require.NoError(t, err)
	require.Len(t, set, 2)
	assert.Equal(t, 50, set["small"].Width)
	assert.Equal(t, 25, set["small"].Height)
	assert.Equal(t, 20, set["thumb"].Width)
	assert.Equal(t, 20, set["thumb"].Height)
}

func TestProcessVariantsPartialFailure(t *testing.T) {
	data := testPNG(t, 100, 100)
	named := map[string]optimizer.Options{
		"good": {MaxWidth: 40, MaxHeight: 40, Fit: optimizer.FitInside, Format: optimizer.FormatPNG},
		"bad":  {MaxWidth: -1, Format: optimizer.FormatPNG},
	}

	set, err := ProcessVariants(context.Background(), data, named)

	// The good variant survives the bad one.
	require.Len(t, set, 1)
	assert.NotNil(t, set["good"])

	var errs VariantErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 1)
	assert.Equal(t, "bad", errs[0].Name)
	assert.Equal(t, optimizer.StagePlan, errs[0].Stage)
}

func TestProcessVariantsDecodeFailureFailsAll(t *testing.T) {
	named := map[string]optimizer.Options{
		"any": {MaxWidth: 10, MaxHeight: 10},
	}
	set, err := ProcessVariants(context.Background(), []byte("garbage"), named)
	assert.Nil(t, set)

	var de *optimizer.DecodeError
	require.ErrorAs(t, err, &de)
}

func TestResolveOrder(t *testing.T) {
	named := map[string]optimizer.Options{
		"a": {}, "b": {}, "c": {},
	}

	// Caller order first, remaining names sorted, unknown names dropped.
	got := resolveOrder(named, []string{"c", "x", "a", "c"})
	assert.Equal(t, []string{"c", "a", "b"}, got)

	got = resolveOrder(named, nil)
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestVariantErrorsMessage(t *testing.T) {
	errs := VariantErrors{
		{Name: "thumb", Stage: optimizer.StageEncode, Err: errors.New("boom")},
	}
	assert.Contains(t, errs.Error(), `"thumb"`)
	assert.Contains(t, errs.Error(), "encode")

	assert.NoError(t, VariantErrors{}.orNil())
}
