package pic

// This file contains the in-memory raster that sheets are decoded into. It
// is modeled after image.RGBA, but stores channels in the order the
// original client's bitmaps used: blue, green, red, alpha.

import (
	"image"
	"image/color"
	"math"
)

// BGRA is an in-memory image whose At method returns color.RGBA values.
//
// Pix holds 4 bytes per pixel: B, G, R, A. Decoded pixels are either fully
// opaque or fully transparent black, so straight and premultiplied alpha
// coincide.
type BGRA struct {
	// Pix holds the image's pixels in B, G, R, A order. The pixel at
	// (x, y) starts at Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)*4].
	Pix []uint8
	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
	// Rect is the image's bounds.
	Rect image.Rectangle
}

// NewBGRA returns a new, fully transparent BGRA image with the given bounds.
// Like image.NewRGBA, it panics if the pixel buffer's size would overflow an
// int.
func NewBGRA(r image.Rectangle) *BGRA {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		w, h = 0, 0
	}
	if w > math.MaxInt/4 || (w > 0 && h > math.MaxInt/4/w) {
		panic("pic: NewBGRA Rectangle has huge dimensions")
	}
	return &BGRA{
		Pix:    make([]uint8, 4*w*h),
		Stride: 4 * w,
		Rect:   r,
	}
}

func (p *BGRA) ColorModel() color.Model { return color.RGBAModel }

func (p *BGRA) Bounds() image.Rectangle { return p.Rect }

func (p *BGRA) At(x, y int) color.Color {
	return p.RGBAAt(x, y)
}

// RGBAAt returns the pixel at (x, y) with its channels put back in R, G, B,
// A order.
func (p *BGRA) RGBAAt(x, y int) color.RGBA {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+4 : i+4]
	return color.RGBA{R: s[2], G: s[1], B: s[0], A: s[3]}
}

// PixOffset returns the index of the first element of Pix that corresponds
// to the pixel at (x, y).
func (p *BGRA) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*4
}

func (p *BGRA) Set(x, y int, c color.Color) {
	p.SetRGBA(x, y, color.RGBAModel.Convert(c).(color.RGBA))
}

// SetRGBA stores c at (x, y). Points outside of Rect are ignored.
func (p *BGRA) SetRGBA(x, y int, c color.RGBA) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+4 : i+4]
	s[0] = c.B
	s[1] = c.G
	s[2] = c.R
	s[3] = c.A
}

// SubImage returns an image representing the portion of p visible through r.
// The returned value shares pixels with the original image.
func (p *BGRA) SubImage(r image.Rectangle) image.Image {
	return p.subImage(r)
}

func (p *BGRA) subImage(r image.Rectangle) *BGRA {
	r = r.Intersect(p.Rect)
	if r.Empty() {
		return &BGRA{}
	}
	i := p.PixOffset(r.Min.X, r.Min.Y)
	return &BGRA{
		Pix:    p.Pix[i:],
		Stride: p.Stride,
		Rect:   r,
	}
}

// Opaque scans the entire image and reports whether it is fully opaque.
func (p *BGRA) Opaque() bool {
	if p.Rect.Empty() {
		return true
	}
	i0, i1 := 3, p.Rect.Dx()*4
	for y := p.Rect.Min.Y; y < p.Rect.Max.Y; y++ {
		for i := i0; i < i1; i += 4 {
			if p.Pix[i] != 0xff {
				return false
			}
		}
		i0 += p.Stride
		i1 += p.Stride
	}
	return true
}
