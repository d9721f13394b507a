package variants

import (
	"context"
	"fmt"
	"sort"

	"pixelmill/pkg/optimizer"
)

// DefaultBreakpoints are the responsive widths used when a caller does not
// supply its own set.
var DefaultBreakpoints = []int{320, 640, 768, 1024, 1280, 1920}

// Responsive produces one variant per requested breakpoint width, named
// "w<width>" ("w640", ...). Widths at or above the source width are
// silently skipped, since responsive sets never upscale, and each height
// follows from the source aspect ratio. base supplies quality, format and
// filter settings; its dimension and fit fields are overridden per width.
func Responsive(ctx context.Context, src *optimizer.Source, widths []int, base optimizer.Options) (VariantSet, error) {
	if len(widths) == 0 {
		widths = DefaultBreakpoints
	}

	ws := make([]int, 0, len(widths))
	seen := make(map[int]bool, len(widths))
	for _, w := range widths {
		if w <= 0 || w >= src.Width() || seen[w] {
			continue
		}
		ws = append(ws, w)
		seen[w] = true
	}
	sort.Ints(ws)

	named := make(map[string]optimizer.Options, len(ws))
	order := make([]string, 0, len(ws))
	for _, w := range ws {
		opts := base
		opts.MaxWidth = w
		opts.MaxHeight = 0
		opts.Fit = optimizer.FitInside
		name := fmt.Sprintf("w%d", w)
		named[name] = opts
		order = append(order, name)
	}

	return FromSource(ctx, src, named, order...)
}
