package optimizer

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoding
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding
	"io"
	"os"
	"path/filepath"

	_ "github.com/chai2010/webp" // register WebP decoding
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // register BMP decoding
	_ "golang.org/x/image/tiff" // register TIFF decoding
)

// Source is a decoded image plus the metadata of the blob it came from.
// It is read-only after Load and owns its pixel buffer; discard it once all
// variants for the input have been produced.
type Source struct {
	img      *image.NRGBA
	width    int
	height   int
	size     int64
	format   string
	filename string
}

// Load decodes an image blob into a Source.
func Load(data []byte) (*Source, error) {
	src, err := LoadReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	src.size = int64(len(data))
	return src, nil
}

// LoadReader decodes an image from r into a Source.
func LoadReader(r io.Reader) (*Source, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, &DecodeError{Err: fmt.Errorf("empty image (%dx%d)", b.Dx(), b.Dy())}
	}

	// Clone into NRGBA so the whole pipeline works on one representation
	// (8-bit RGBA, zero-origin bounds).
	return &Source{
		img:    imaging.Clone(img),
		width:  b.Dx(),
		height: b.Dy(),
		format: format,
	}, nil
}

// LoadFile decodes an image file into a Source, recording name and size.
func LoadFile(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	src, err := LoadReader(f)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", path, err)
	}

	src.filename = filepath.Base(path)
	if stat, err := f.Stat(); err == nil {
		src.size = stat.Size()
	}
	return src, nil
}

// Image exposes the decoded pixels. Treat the buffer as read-only.
func (s *Source) Image() *image.NRGBA { return s.img }

// Width of the decoded image in pixels.
func (s *Source) Width() int { return s.width }

// Height of the decoded image in pixels.
func (s *Source) Height() int { return s.height }

// Size is the original blob size in bytes (0 when unknown).
func (s *Source) Size() int64 { return s.size }

// SourceFormat is the registered name of the decoded format ("jpeg", ...).
func (s *Source) SourceFormat() string { return s.format }

// Filename is the base name the source was loaded from, if any.
func (s *Source) Filename() string { return s.filename }

// MIME returns the media type of the original blob.
func (s *Source) MIME() string {
	switch s.format {
	case "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "bmp":
		return "image/bmp"
	case "tiff":
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}
