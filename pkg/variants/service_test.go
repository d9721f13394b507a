package variants

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelmill/pkg/cache"
	"pixelmill/pkg/optimizer"
)

func testService(t *testing.T, enabled bool) *Service {
	t.Helper()
	presets := map[string]optimizer.Options{
		"thumb": {MaxWidth: 16, MaxHeight: 16, Fit: optimizer.FitCover, Format: optimizer.FormatPNG},
		"small": {MaxWidth: 32, MaxHeight: 32, Fit: optimizer.FitInside, Format: optimizer.FormatPNG},
	}
	c := cache.New(cache.Config{Enabled: enabled, MaxCapacityMB: 1, TTL: time.Minute})
	return NewService(presets, c)
}

func TestServiceProcess(t *testing.T) {
	svc := testService(t, true)
	data := testPNG(t, 100, 100)

	out, err := svc.Process(context.Background(), data, "thumb")
	require.NoError(t, err)
	assert.Equal(t, 16, out.Width)
	assert.Equal(t, 16, out.Height)
}

func TestServiceProcessCaches(t *testing.T) {
	svc := testService(t, true)
	data := testPNG(t, 100, 100)

	first, err := svc.Process(context.Background(), data, "thumb")
	require.NoError(t, err)
	assert.Equal(t, 1, svc.cache.Len())

	second, err := svc.Process(context.Background(), data, "thumb")
	require.NoError(t, err)
	assert.Equal(t, first.Data, second.Data)
	assert.Equal(t, first.Format, second.Format)

	// Different preset, different cache entry.
	_, err = svc.Process(context.Background(), data, "small")
	require.NoError(t, err)
	assert.Equal(t, 2, svc.cache.Len())
}

func TestServiceUnknownPreset(t *testing.T) {
	svc := testService(t, false)
	_, err := svc.Process(context.Background(), testPNG(t, 10, 10), "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestServicePresets(t *testing.T) {
	svc := testService(t, false)
	assert.Equal(t, []string{"small", "thumb"}, svc.Presets())

	opts, ok := svc.Options("thumb")
	require.True(t, ok)
	assert.Equal(t, 16, opts.MaxWidth)

	_, ok = svc.Options("nope")
	assert.False(t, ok)
}

func TestServiceProcessAll(t *testing.T) {
	svc := testService(t, false)
	set, err := svc.ProcessAll(context.Background(), testPNG(t, 100, 100))
	require.NoError(t, err)
	require.Len(t, set, 2)
	assert.Contains(t, set, "thumb")
	assert.Contains(t, set, "small")
}
