package optimizer

import (
	"context"
	"fmt"
	"strings"
)

// Version is the library version.
const Version = "1.0.0"

// Format represents an output image format.
type Format int

const (
	// FormatAuto lets the encoder pick whichever format yields the
	// smallest output (webp, then jpeg, then png on byte ties).
	FormatAuto Format = iota
	// FormatJPEG for photographs and other alpha-free continuous-tone images.
	FormatJPEG
	// FormatPNG for lossless output and images with transparency.
	FormatPNG
	// FormatWebP supports both lossy and lossless encoding.
	FormatWebP
)

func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatPNG:
		return "png"
	case FormatWebP:
		return "webp"
	default:
		return "auto"
	}
}

// MIME returns the media type for the format.
func (f Format) MIME() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	case FormatWebP:
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// Ext returns the canonical file extension, including the dot.
func (f Format) Ext() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatPNG:
		return ".png"
	case FormatWebP:
		return ".webp"
	default:
		return ""
	}
}

// ParseFormat converts a user-supplied format name into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	case "webp":
		return FormatWebP, nil
	default:
		return FormatAuto, fmt.Errorf("unknown format %q (use auto|jpeg|png|webp)", s)
	}
}

// FitMode controls how the source is mapped into the requested box.
type FitMode int

const (
	// FitCover scales so the box is fully covered, cropping the overflow.
	FitCover FitMode = iota
	// FitContain scales so the whole image fits inside the box.
	FitContain
	// FitFill stretches to exactly the requested box, ignoring aspect ratio.
	FitFill
	// FitInside is FitContain that never upscales.
	FitInside
	// FitOutside is the mirror of FitInside: it only ever upscales.
	FitOutside
)

func (m FitMode) String() string {
	switch m {
	case FitContain:
		return "contain"
	case FitFill:
		return "fill"
	case FitInside:
		return "inside"
	case FitOutside:
		return "outside"
	default:
		return "cover"
	}
}

// ParseFit converts a user-supplied fit mode name into a FitMode.
func ParseFit(s string) (FitMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cover":
		return FitCover, nil
	case "contain":
		return FitContain, nil
	case "fill":
		return FitFill, nil
	case "inside":
		return FitInside, nil
	case "outside":
		return FitOutside, nil
	default:
		return FitCover, fmt.Errorf("unknown fit mode %q (use cover|contain|fill|inside|outside)", s)
	}
}

// Anchor selects which part of the source survives a cover crop.
type Anchor int

const (
	AnchorCenter Anchor = iota
	AnchorTop
	AnchorBottom
	AnchorLeft
	AnchorRight
	AnchorTopLeft
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
	// AnchorSmart places the crop over the most visually busy region,
	// found by contrast scoring. Best effort.
	AnchorSmart
)

func (a Anchor) String() string {
	switch a {
	case AnchorTop:
		return "top"
	case AnchorBottom:
		return "bottom"
	case AnchorLeft:
		return "left"
	case AnchorRight:
		return "right"
	case AnchorTopLeft:
		return "top-left"
	case AnchorTopRight:
		return "top-right"
	case AnchorBottomLeft:
		return "bottom-left"
	case AnchorBottomRight:
		return "bottom-right"
	case AnchorSmart:
		return "smart"
	default:
		return "center"
	}
}

// ParseAnchor converts a user-supplied position name into an Anchor.
func ParseAnchor(s string) (Anchor, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "-")) {
	case "", "center", "centre":
		return AnchorCenter, nil
	case "top":
		return AnchorTop, nil
	case "bottom":
		return AnchorBottom, nil
	case "left":
		return AnchorLeft, nil
	case "right":
		return AnchorRight, nil
	case "top-left", "topleft":
		return AnchorTopLeft, nil
	case "top-right", "topright":
		return AnchorTopRight, nil
	case "bottom-left", "bottomleft":
		return AnchorBottomLeft, nil
	case "bottom-right", "bottomright":
		return AnchorBottomRight, nil
	case "smart", "attention":
		return AnchorSmart, nil
	default:
		return AnchorCenter, fmt.Errorf("unknown position %q", s)
	}
}

// DefaultQuality is used whenever Options.Quality is unset.
const DefaultQuality = 0.8

// ProgressFunc reports pipeline progress. stage is the operation currently
// running, percent is 0.0-1.0. Returning a non-nil error aborts the run.
type ProgressFunc func(stage Stage, percent float64) error

// Options configures a single optimization pass. The zero value is a
// cover-fit, center-anchored, auto-format encode at DefaultQuality with the
// source dimensions as bounds.
type Options struct {
	// Quality in 0-1. 0 means DefaultQuality. For JPEG and lossy WebP it
	// maps to the encoder's 1-100 scale; for PNG anything <= 0.5 selects
	// best compression.
	Quality float64

	// MaxWidth and MaxHeight bound the output. 0 defaults to the source
	// dimension on that axis.
	MaxWidth  int
	MaxHeight int

	// Format of the encoded output. FormatAuto picks the smallest.
	Format Format

	// Fit controls geometry planning, Position anchors cover crops.
	Fit      FitMode
	Position Anchor

	// Blur is a Gaussian blur sigma in pixels, Sharpen an unsharp-mask
	// amount, Gamma a gamma correction factor (1.0 = unchanged). Zero
	// values are no-ops. Applied blur -> sharpen -> gamma.
	Blur    float64
	Sharpen float64
	Gamma   float64

	// Background fills the destination before drawing. Accepts CSS color
	// names or hex ("#rgb"/"#rrggbb"). Empty or "transparent" means no
	// fill. Required to letterbox contain fits and to flatten
	// transparency for JPEG output.
	Background string

	// Lossless switches WebP output to lossless encoding.
	Lossless bool

	// OnProgress, when set, receives stage progress callbacks.
	OnProgress ProgressFunc
}

// DefaultOptions returns the options used by the preset table fallbacks.
func DefaultOptions() Options {
	return Options{
		Quality: DefaultQuality,
		Format:  FormatAuto,
		Fit:     FitInside,
	}
}

// quality01 resolves the effective 0-1 quality.
func (o Options) quality01() float64 {
	q := o.Quality
	if q <= 0 {
		return DefaultQuality
	}
	if q > 1 {
		return 1
	}
	return q
}

// report invokes the progress callback and honors context cancellation
// between stages. In-flight stages run to completion once started.
func (o *Options) report(ctx context.Context, stage Stage, percent float64) error {
	if ctx != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
	if o.OnProgress != nil {
		return o.OnProgress(stage, percent)
	}
	return nil
}

// Optimized is the result of one optimization pass. It holds no reference
// back to the decoded source.
type Optimized struct {
	// Data is the encoded output.
	Data []byte

	// Width and Height of the encoded image.
	Width  int
	Height int

	// Format actually used (resolved when FormatAuto was requested).
	Format Format

	// Size is len(Data), kept as int64 for summing across batches.
	Size int64

	// Quality is the effective 0-1 quality used by the encoder.
	Quality float64
}

func (o *Optimized) String() string {
	return fmt.Sprintf("%s %dx%d (%s, q=%.2f)",
		o.Format, o.Width, o.Height, FormatBytes(o.Size), o.Quality)
}

// FormatBytes renders a byte count with a binary-prefix unit.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
