package pic

// This file contains code directly related to decoding a single tile's
// run-length encoded pixel block.

import (
	"bytes"
	"encoding/binary"
	"image"
	"io"
)

// Options control how strictly tiles are decoded and how extraction
// proceeds. A nil *Options is equivalent to the zero value.
type Options struct {
	// AllowShortTiles accepts tile blocks whose runs cover fewer than
	// TilePixels pixels, leaving the rest of the tile transparent. By
	// default such a block is rejected with ErrFormat.
	AllowShortTiles bool

	// KeepGoing makes Extract and ExtractParallel skip sheets whose tiles
	// fail to decode, returning the collected errors at the end instead
	// of stopping at the first one.
	KeepGoing bool

	// Workers limits the number of sheets ExtractParallel decodes at
	// once. Zero or less means runtime.GOMAXPROCS(0).
	Workers int
}

func (o *Options) allowShortTiles() bool { return o != nil && o.AllowShortTiles }
func (o *Options) keepGoing() bool       { return o != nil && o.KeepGoing }

// DecodeTile seeks r to offset, reads one tile block and writes its colored
// pixels into the top-left 32x32 pixels of dst. Skipped pixels are left
// untouched.
func DecodeTile(r io.ReadSeeker, offset uint32, dst *BGRA, opts *Options) error {
	off := int64(offset)
	if dst.Rect.Dx() < TileSize || dst.Rect.Dy() < TileSize {
		return formatError("decoding tile", off, "destination %v is smaller than a tile", dst.Rect)
	}

	if _, err := r.Seek(off, io.SeekStart); err != nil {
		e := newError(ErrIO, "seeking to tile", err)
		e.Offset = off
		return e
	}

	var size uint16
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return readError("reading tile block length", off, err)
	}

	buf := bytes.Buffer{}
	n, err := buf.ReadFrom(io.LimitReader(r, int64(size)))
	if err != nil {
		return readError("reading tile block", off+2, err)
	}
	if n != int64(size) {
		return formatError("reading tile block", off+2, "block truncated: read %d bytes, want %d", n, size)
	}

	return decodeRuns(buf.Bytes(), off+2, dst, opts.allowShortTiles())
}

// DecodeTileImage decodes the tile at offset into a new 32x32 image.
func DecodeTileImage(r io.ReadSeeker, offset uint32, opts *Options) (*BGRA, error) {
	img := NewBGRA(image.Rect(0, 0, TileSize, TileSize))
	if err := DecodeTile(r, offset, img, opts); err != nil {
		return nil, err
	}
	return img, nil
}

// decodeRuns walks the runs in data, which starts at file position base.
// Each run is a u16 count of transparent pixels followed by a u16 count of
// colored pixels and that many R, G, B triples.
func decodeRuns(data []byte, base int64, dst *BGRA, allowShort bool) error {
	c := 0
	p := 0
	for p < len(data) {
		if len(data)-p < 4 {
			return formatError("decoding tile", base+int64(p), "run header cut short: %d bytes left in block", len(data)-p)
		}
		skip := int(binary.LittleEndian.Uint16(data[p:]))
		colored := int(binary.LittleEndian.Uint16(data[p+2:]))
		if c+skip+colored > TilePixels {
			return formatError("decoding tile", base+int64(p), "run of %d transparent and %d colored pixels at pixel %d overflows the tile", skip, colored, c)
		}
		p += 4
		c += skip

		if len(data)-p < colored*3 {
			return formatError("decoding tile", base+int64(p), "%d colored pixels need %d bytes, %d left in block", colored, colored*3, len(data)-p)
		}
		for i := 0; i < colored; i++ {
			o := dst.PixOffset(dst.Rect.Min.X+c%TileSize, dst.Rect.Min.Y+c/TileSize)
			px := dst.Pix[o : o+4 : o+4]
			px[0] = data[p+2] // blue
			px[1] = data[p+1] // green
			px[2] = data[p]   // red
			px[3] = 0xff
			p += 3
			c++
		}
	}

	if c < TilePixels && !allowShort {
		return formatError("decoding tile", base+int64(p), "runs cover %d pixels, want %d", c, TilePixels)
	}
	return nil
}
