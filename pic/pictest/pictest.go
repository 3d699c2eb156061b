// Package pictest builds small in-memory pic files for tests.
package pictest

import (
	"bytes"
	"encoding/binary"
	"image/color"
)

// Run is one run of a tile block: Skip transparent pixels followed by the
// colored pixels in Colors.
type Run struct {
	Skip   uint16
	Colors []color.RGBA
}

// Block encodes runs as a tile block, including the leading block length.
func Block(runs ...Run) []byte {
	body := &bytes.Buffer{}
	for _, r := range runs {
		binary.Write(body, binary.LittleEndian, r.Skip)
		binary.Write(body, binary.LittleEndian, uint16(len(r.Colors)))
		for _, c := range r.Colors {
			body.Write([]byte{c.R, c.G, c.B})
		}
	}
	return RawBlock(body.Bytes())
}

// RawBlock prefixes body with its length, without checking its contents.
func RawBlock(body []byte) []byte {
	b := make([]byte, 2+len(body))
	binary.LittleEndian.PutUint16(b, uint16(len(body)))
	copy(b[2:], body)
	return b
}

// Solid returns a tile block that paints the whole tile with c.
func Solid(c color.RGBA) []byte {
	cols := make([]color.RGBA, 32*32)
	for i := range cols {
		cols[i] = c
	}
	return Block(Run{Colors: cols})
}

// Pixel returns a tile block with a single colored pixel at index at, and
// the remaining pixels explicitly skipped.
func Pixel(c color.RGBA, at int) []byte {
	return Block(
		Run{Skip: uint16(at), Colors: []color.RGBA{c}},
		Run{Skip: uint16(32*32 - 1 - at)},
	)
}

// Empty returns a fully transparent tile block.
func Empty() []byte {
	return Block(Run{Skip: 32 * 32})
}

// Sheet describes one sprite sheet to build.
type Sheet struct {
	W, H uint8
	Key  color.RGBA

	// Tiles are the tile blocks, row-major. They are written after the
	// sheet table in order.
	Tiles [][]byte

	// Offsets, if set, replaces the offsets that would otherwise point at
	// Tiles.
	Offsets []uint32
}

// Build returns a complete pic file.
func Build(version uint32, sheets ...Sheet) []byte {
	table := 6
	for _, s := range sheets {
		table += 5 + 4*int(s.W)*int(s.H)
	}

	head := &bytes.Buffer{}
	blocks := &bytes.Buffer{}
	binary.Write(head, binary.LittleEndian, version)
	binary.Write(head, binary.LittleEndian, uint16(len(sheets)))
	for _, s := range sheets {
		head.Write([]byte{s.W, s.H, s.Key.R, s.Key.G, s.Key.B})
		offsets := make([]uint32, int(s.W)*int(s.H))
		for i := range offsets {
			if i < len(s.Tiles) {
				offsets[i] = uint32(table + blocks.Len())
				blocks.Write(s.Tiles[i])
			}
		}
		if s.Offsets != nil {
			copy(offsets, s.Offsets)
		}
		binary.Write(head, binary.LittleEndian, offsets)
	}
	return append(head.Bytes(), blocks.Bytes()...)
}
