package optimizer

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"math"

	"github.com/chai2010/webp"
)

// Encode serializes img into the requested format. FormatAuto is not a
// concrete format here; use EncodeAuto for smallest-output selection.
func Encode(img image.Image, format Format, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	q := opts.quality01()

	switch format {
	case FormatJPEG:
		jq := clampInt(int(math.Round(q*100)), 1, 100)
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jq}); err != nil {
			return nil, &EncodeError{Format: format, Err: err}
		}
	case FormatPNG:
		// PNG is lossless; quality selects compression effort.
		level := png.DefaultCompression
		if q <= 0.5 {
			level = png.BestCompression
		}
		enc := png.Encoder{CompressionLevel: level}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, &EncodeError{Format: format, Err: err}
		}
	case FormatWebP:
		wopts := &webp.Options{Lossless: opts.Lossless, Quality: float32(q * 100)}
		if err := webp.Encode(&buf, img, wopts); err != nil {
			return nil, &EncodeError{Format: format, Err: err}
		}
	default:
		return nil, &EncodeError{Format: format, Err: errors.New("unsupported format")}
	}

	return buf.Bytes(), nil
}

// autoCandidates is the auto-format preference order; on equal byte size
// the earlier format wins.
var autoCandidates = []Format{FormatWebP, FormatJPEG, FormatPNG}

type encoded struct {
	format Format
	data   []byte
}

// EncodeAuto encodes img in every candidate format and returns the smallest
// output. Per-format encode failures are soft; only all candidates failing
// is an error.
func EncodeAuto(img image.Image, opts Options) ([]byte, Format, error) {
	var (
		results []encoded
		lastErr error
	)
	for _, f := range autoCandidates {
		data, err := Encode(img, f, opts)
		if err != nil {
			lastErr = err
			continue
		}
		results = append(results, encoded{format: f, data: data})
	}

	best, ok := pickSmallest(results)
	if !ok {
		return nil, FormatAuto, &EncodeError{Format: FormatAuto, Err: lastErr}
	}
	return best.data, best.format, nil
}

// pickSmallest returns the first strictly-smallest candidate, so input
// order expresses tie preference.
func pickSmallest(results []encoded) (encoded, bool) {
	if len(results) == 0 {
		return encoded{}, false
	}
	best := results[0]
	for _, r := range results[1:] {
		if len(r.data) < len(best.data) {
			best = r
		}
	}
	return best, true
}
