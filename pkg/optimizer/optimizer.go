// Package optimizer is the core image pipeline: decode a blob once, plan
// target geometry for a fit mode, apply optional filters, composite into a
// destination surface and encode to jpeg/png/webp (or whichever of the
// three comes out smallest).
//
// The pipeline has no hidden global state. Every surface is owned by the
// caller of the stage that produced it, and a Source is safe to reuse
// across variants because no stage writes into it.
package optimizer

import (
	"context"

	"pixelmill/pkg/analysis"
)

// Optimize decodes data and runs the full pipeline under opts.
func Optimize(ctx context.Context, data []byte, opts Options) (*Optimized, error) {
	if err := opts.report(ctx, StageDecode, 0); err != nil {
		return nil, err
	}

	src, err := Load(data)
	if err != nil {
		return nil, stageErr(StageDecode, err)
	}
	return OptimizeSource(ctx, src, opts)
}

// OptimizeSource runs the pipeline on an already-decoded source. Use this
// to produce several variants from one decode.
func OptimizeSource(ctx context.Context, src *Source, opts Options) (*Optimized, error) {
	if err := opts.report(ctx, StagePlan, 0.2); err != nil {
		return nil, err
	}

	geom, err := planSource(src, opts)
	if err != nil {
		return nil, stageErr(StagePlan, err)
	}

	if err := opts.report(ctx, StageFilter, 0.4); err != nil {
		return nil, err
	}
	img := applyFilters(src.Image(), opts)

	if err := opts.report(ctx, StageComposite, 0.6); err != nil {
		return nil, err
	}
	surface, err := render(img, geom, opts)
	if err != nil {
		return nil, stageErr(StageComposite, err)
	}

	if err := opts.report(ctx, StageEncode, 0.8); err != nil {
		return nil, err
	}

	var (
		data   []byte
		format = opts.Format
	)
	if format == FormatAuto {
		data, format, err = EncodeAuto(surface, opts)
	} else {
		data, err = Encode(surface, format, opts)
	}
	if err != nil {
		return nil, stageErr(StageEncode, err)
	}

	if err := opts.report(ctx, StageEncode, 1.0); err != nil {
		return nil, err
	}

	b := surface.Bounds()
	return &Optimized{
		Data:    data,
		Width:   b.Dx(),
		Height:  b.Dy(),
		Format:  format,
		Size:    int64(len(data)),
		Quality: opts.quality01(),
	}, nil
}

// planSource plans geometry for src, resolving AnchorSmart by contrast
// scoring over the decoded pixels.
func planSource(src *Source, opts Options) (Geometry, error) {
	geom, err := Plan(src.Width(), src.Height(), opts)
	if err != nil {
		return Geometry{}, err
	}

	if opts.Position == AnchorSmart && geom.Crop != nil {
		focal := analysis.FindSubject(src.Image(), geom.Crop.Dx(), geom.Crop.Dy())
		crop := RecenterCrop(*geom.Crop, focal, src.Width(), src.Height())
		geom.Crop = &crop
	}
	return geom, nil
}

// PlanFor is planSource exposed for callers that want the geometry without
// running the rest of the pipeline.
func PlanFor(src *Source, opts Options) (Geometry, error) {
	return planSource(src, opts)
}
