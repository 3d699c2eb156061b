package pic

// This file contains code reading the pic header and the sprite sheet
// table that follows it.

import (
	"encoding/binary"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/bradfitz/iter"
	"github.com/golang/glog"
)

const (
	// TileSize is the width and height of a single tile, in pixels.
	TileSize = 32
	// TilePixels is the number of pixels a tile's runs must account for.
	TilePixels = TileSize * TileSize
	// MaxSheetSide is the widest or tallest a sheet can be, in pixels.
	MaxSheetSide = math.MaxUint8 * TileSize
)

// Header is the fixed-size start of a pic file.
type Header struct {
	Version    uint32
	SheetCount uint16
}

type sheetHeader struct {
	WidthTiles, HeightTiles uint8
	KeyR, KeyG, KeyB        uint8
}

// SpriteSheet is a single entry in the sheet table: a grid of tiles, and the
// absolute position in the file at which each tile's pixel data starts.
type SpriteSheet struct {
	WidthTiles, HeightTiles uint8

	// TransparentKey is the background color the client uses for this
	// sheet. Decoding does not apply it; skipped pixels are left
	// transparent instead.
	TransparentKey color.RGBA

	// TileOffsets are stored left to right, top to bottom.
	TileOffsets []uint32
}

// TileCount returns the number of tiles in the sheet.
func (s *SpriteSheet) TileCount() int {
	return int(s.WidthTiles) * int(s.HeightTiles)
}

// Bounds returns the bounds of the assembled sheet.
func (s *SpriteSheet) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(s.WidthTiles)*TileSize, int(s.HeightTiles)*TileSize)
}

// TileOrigin returns the top-left corner of tile b in the assembled sheet.
func (s *SpriteSheet) TileOrigin(b int) image.Point {
	w := int(s.WidthTiles)
	return image.Pt((b%w)*TileSize, (b/w)*TileSize)
}

// TileBounds returns the rectangle covered by tile b in the assembled sheet.
func (s *SpriteSheet) TileBounds(b int) image.Rectangle {
	o := s.TileOrigin(b)
	return image.Rectangle{Min: o, Max: o.Add(image.Pt(TileSize, TileSize))}
}

// Container is the parsed index of a pic file. It does not hold any pixel
// data; tiles are decoded from the file on demand.
type Container struct {
	Header
	Sheets []SpriteSheet
}

// countingReader remembers how many bytes have been read through it, so
// errors can report where in the file they happened.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// ReadHeader reads just the header of a pic file.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return Header{}, readError("reading header", 0, err)
	}
	return h, nil
}

// ReadContainer reads the header and the sheet table from r, which must be
// positioned at the start of the file. It consumes r sequentially and does
// not check tile offsets; bad offsets surface when the tiles are decoded.
func ReadContainer(r io.Reader) (*Container, error) {
	cr := &countingReader{r: r}

	h, err := ReadHeader(cr)
	if err != nil {
		return nil, err
	}
	glog.V(2).Infof("pic: version %d, %d sheets", h.Version, h.SheetCount)

	c := &Container{
		Header: h,
		Sheets: make([]SpriteSheet, h.SheetCount),
	}
	for i := range iter.N(int(h.SheetCount)) {
		if err := readSheet(cr, &c.Sheets[i]); err != nil {
			return nil, withSheet(err, i)
		}
	}
	return c, nil
}

func readSheet(cr *countingReader, s *SpriteSheet) error {
	start := cr.n
	var sh sheetHeader
	if err := binary.Read(cr, binary.LittleEndian, &sh); err != nil {
		return readError("reading sheet header", start, err)
	}
	s.WidthTiles = sh.WidthTiles
	s.HeightTiles = sh.HeightTiles
	s.TransparentKey = color.RGBA{R: sh.KeyR, G: sh.KeyG, B: sh.KeyB, A: 0xff}

	s.TileOffsets = make([]uint32, s.TileCount())
	if len(s.TileOffsets) == 0 {
		return nil
	}
	start = cr.n
	if err := binary.Read(cr, binary.LittleEndian, s.TileOffsets); err != nil {
		return readError("reading tile offsets", start, err)
	}
	return nil
}
