// Package sink contains the places decoded sheets can be written to: a
// directory of image files, a zip archive, or several of those at once.
// Everything here implements pic.Sink.
package sink

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"

	"github.com/andybons/gogif"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
)

// Format is an output image encoding.
type Format string

const (
	PNG  Format = "png"
	BMP  Format = "bmp"
	GIF  Format = "gif"
	PNG8 Format = "png8" // paletted png, 255 colors plus transparency
)

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case PNG, BMP, GIF, PNG8:
		return f, nil
	default:
		return "", errors.Errorf("unknown image format %q, want one of png, bmp, gif, png8", s)
	}
}

// Ext returns the file name extension for f, without the dot.
func (f Format) Ext() string {
	if f == PNG8 {
		return "png"
	}
	return string(f)
}

// MIME returns the media type of images encoded as f.
func (f Format) MIME() string {
	switch f {
	case BMP:
		return "image/bmp"
	case GIF:
		return "image/gif"
	default:
		return "image/png"
	}
}

// ErrEmptyImage is returned when asked to encode an image without pixels,
// which none of the supported formats can represent.
var ErrEmptyImage = errors.New("image has no pixels")

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	if img.Bounds().Empty() {
		return ErrEmptyImage
	}
	switch f {
	case PNG:
		return png.Encode(w, img)
	case BMP:
		// bmp only keeps the alpha channel of NRGBA and RGBA images.
		return bmp.Encode(w, toNRGBA(img))
	case GIF:
		return gif.Encode(w, Paletted(img), nil)
	case PNG8:
		return png.Encode(w, quantizePNG8(img))
	default:
		return errors.Errorf("unknown image format %q", f)
	}
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	n := image.NewNRGBA(b)
	draw.Draw(n, b, img, b.Min, draw.Src)
	return n
}

// Paletted reduces img to at most 255 colors with gogif's median cut
// quantizer. Index 0 of the palette is transparent, so skipped pixels stay
// transparent.
func Paletted(img image.Image) *image.Paletted {
	b := img.Bounds()
	pal := image.NewPaletted(b, nil)
	quantizer := gogif.MedianCutQuantizer{NumColor: 255}
	quantizer.Quantize(pal, b, img, b.Min)

	// gogif fills the paletted copy as well as computing the palette; only
	// the palette is kept, and the image is redrawn on top of a
	// transparent background.
	out := image.NewPaletted(b, append(color.Palette{color.Transparent}, pal.Palette...))
	draw.Draw(out, b, img, b.Min, draw.Over)
	return out
}

func quantizePNG8(img image.Image) *image.Paletted {
	b := img.Bounds()
	q := quantize.MedianCutQuantizer{}
	pal := q.Quantize(make(color.Palette, 0, 255), img)
	pm := image.NewPaletted(b, append(color.Palette{color.RGBA{}}, pal...))
	draw.Draw(pm, b, img, b.Min, draw.Src)
	return pm
}
