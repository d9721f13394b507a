package optimizer

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// render draws the planned source region into a fresh destination surface.
// When a background is set the destination is filled first, which flattens
// transparency for alpha-free output formats. A contain fit with an opaque
// background letterboxes: the canvas becomes the exact requested box and
// the scaled image is centered inside it.
func render(src *image.NRGBA, geom Geometry, opts Options) (*image.NRGBA, error) {
	if geom.Width <= 0 || geom.Height <= 0 {
		return nil, &GeometryError{Reason: "non-positive target dimensions"}
	}

	bg, hasBG := background(opts)

	canvasW, canvasH := geom.Width, geom.Height
	if opts.Fit == FitContain && hasBG && opts.MaxWidth > 0 && opts.MaxHeight > 0 {
		canvasW, canvasH = opts.MaxWidth, opts.MaxHeight
	}

	dst := image.NewNRGBA(image.Rect(0, 0, canvasW, canvasH))
	if hasBG {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}

	srcRect := src.Bounds()
	if geom.Crop != nil {
		srcRect = *geom.Crop
	}

	// Centering is a no-op unless the canvas is larger than the plan.
	offX := (canvasW - geom.Width) / 2
	offY := (canvasH - geom.Height) / 2
	dstRect := image.Rect(offX, offY, offX+geom.Width, offY+geom.Height)

	xdraw.CatmullRom.Scale(dst, dstRect, src, srcRect, xdraw.Over, nil)
	return dst, nil
}
