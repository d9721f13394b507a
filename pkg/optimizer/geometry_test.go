package optimizer

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanFill(t *testing.T) {
	geom, err := Plan(4000, 2000, Options{MaxWidth: 800, MaxHeight: 600, Fit: FitFill})
	require.NoError(t, err)
	assert.Equal(t, 800, geom.Width)
	assert.Equal(t, 600, geom.Height)
	assert.Nil(t, geom.Crop)
}

func TestPlanContainPreservesAspect(t *testing.T) {
	geom, err := Plan(4000, 2000, Options{MaxWidth: 800, MaxHeight: 800, Fit: FitContain})
	require.NoError(t, err)
	assert.Equal(t, 800, geom.Width)
	assert.Equal(t, 400, geom.Height)
	assert.Nil(t, geom.Crop)
}

func TestPlanCoverAnchors(t *testing.T) {
	tests := []struct {
		name   string
		anchor Anchor
		want   image.Rectangle
	}{
		{"top", AnchorTop, image.Rect(1000, 0, 3000, 2000)},
		{"center", AnchorCenter, image.Rect(1000, 0, 3000, 2000)},
		{"left", AnchorLeft, image.Rect(0, 0, 2000, 2000)},
		{"right", AnchorRight, image.Rect(2000, 0, 4000, 2000)},
		{"top-left", AnchorTopLeft, image.Rect(0, 0, 2000, 2000)},
		{"bottom-right", AnchorBottomRight, image.Rect(2000, 0, 4000, 2000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geom, err := Plan(4000, 2000, Options{
				MaxWidth:  800,
				MaxHeight: 800,
				Fit:       FitCover,
				Position:  tt.anchor,
			})
			require.NoError(t, err)
			assert.Equal(t, 800, geom.Width)
			assert.Equal(t, 800, geom.Height)
			require.NotNil(t, geom.Crop)
			assert.Equal(t, tt.want, *geom.Crop)
		})
	}
}

func TestPlanCoverTallSource(t *testing.T) {
	// Tall source into a wide box crops vertically.
	geom, err := Plan(1000, 3000, Options{MaxWidth: 400, MaxHeight: 200, Fit: FitCover, Position: AnchorBottom})
	require.NoError(t, err)
	require.NotNil(t, geom.Crop)
	assert.Equal(t, image.Rect(0, 2500, 1000, 3000), *geom.Crop)
}

func TestPlanCropStaysInBounds(t *testing.T) {
	anchors := []Anchor{
		AnchorCenter, AnchorTop, AnchorBottom, AnchorLeft, AnchorRight,
		AnchorTopLeft, AnchorTopRight, AnchorBottomLeft, AnchorBottomRight,
	}
	for _, a := range anchors {
		geom, err := Plan(1237, 911, Options{MaxWidth: 300, MaxHeight: 500, Fit: FitCover, Position: a})
		require.NoError(t, err)
		require.NotNil(t, geom.Crop)
		assert.True(t, geom.Crop.In(image.Rect(0, 0, 1237, 911)), "anchor %s: crop %v out of bounds", a, geom.Crop)
	}
}

func TestPlanInsideNeverUpscales(t *testing.T) {
	geom, err := Plan(100, 100, Options{MaxWidth: 500, MaxHeight: 500, Fit: FitInside})
	require.NoError(t, err)
	assert.Equal(t, 100, geom.Width)
	assert.Equal(t, 100, geom.Height)
	assert.Nil(t, geom.Crop)
}

func TestPlanInsideDownscales(t *testing.T) {
	geom, err := Plan(1000, 500, Options{MaxWidth: 200, MaxHeight: 200, Fit: FitInside})
	require.NoError(t, err)
	assert.Equal(t, 200, geom.Width)
	assert.Equal(t, 100, geom.Height)
}

func TestPlanOutsideOnlyUpscales(t *testing.T) {
	geom, err := Plan(100, 50, Options{MaxWidth: 400, MaxHeight: 400, Fit: FitOutside})
	require.NoError(t, err)
	assert.Equal(t, 400, geom.Width)
	assert.Equal(t, 200, geom.Height)

	geom, err = Plan(800, 600, Options{MaxWidth: 400, MaxHeight: 400, Fit: FitOutside})
	require.NoError(t, err)
	assert.Equal(t, 800, geom.Width)
	assert.Equal(t, 600, geom.Height)
}

func TestPlanZeroBoundsDefaultToSource(t *testing.T) {
	geom, err := Plan(640, 480, Options{Fit: FitCover})
	require.NoError(t, err)
	assert.Equal(t, 640, geom.Width)
	assert.Equal(t, 480, geom.Height)
	require.NotNil(t, geom.Crop)
	assert.Equal(t, image.Rect(0, 0, 640, 480), *geom.Crop)
}

func TestPlanRejectsDegenerateInput(t *testing.T) {
	_, err := Plan(0, 100, Options{})
	var ge *GeometryError
	require.ErrorAs(t, err, &ge)

	_, err = Plan(100, 100, Options{MaxWidth: -1})
	require.ErrorAs(t, err, &ge)
}

func TestRecenterCropClamps(t *testing.T) {
	crop := image.Rect(1000, 0, 3000, 2000)

	// Focal near the right edge pushes the crop as far right as it can go.
	got := RecenterCrop(crop, image.Pt(3900, 100), 4000, 2000)
	assert.Equal(t, image.Rect(2000, 0, 4000, 2000), got)

	// Focal near the left edge.
	got = RecenterCrop(crop, image.Pt(50, 1900), 4000, 2000)
	assert.Equal(t, image.Rect(0, 0, 2000, 2000), got)

	// Crop size never changes.
	assert.Equal(t, crop.Dx(), got.Dx())
	assert.Equal(t, crop.Dy(), got.Dy())
}
