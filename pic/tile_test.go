package pic

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"io"
	"testing"

	"badc0de.net/pkg/go-tibia-pic/pic/pictest"
	"badc0de.net/pkg/go-tibia-pic/ttesting"
)

// decodeBlock decodes a single tile block placed at offset 0 of a stream.
func decodeBlock(block []byte, opts *Options) (*BGRA, error) {
	return DecodeTileImage(bytes.NewReader(block), 0, opts)
}

func TestDecodeTileChannelOrder(t *testing.T) {
	block := pictest.Pixel(color.RGBA{R: 0x10, G: 0x20, B: 0x30}, 0)
	img, err := decodeBlock(block, nil)
	if err != nil {
		t.Fatalf("failed to decode tile: %v", err)
	}

	ttesting.AssertEqualBytes(t, "stored bgra", img.Pix[0:4], []byte{0x30, 0x20, 0x10, 0xff})
	ttesting.AssertEqualRGBA(t, "color at 0,0", img.RGBAAt(0, 0), color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff})
	ttesting.AssertEqualBytes(t, "next pixel transparent", img.Pix[4:8], []byte{0, 0, 0, 0})
}

func TestDecodeTileCursor(t *testing.T) {
	for _, at := range []int{0, 1, 31, 32, 33, 500, 1023} {
		t.Run(fmt.Sprintf("pixel %d", at), func(t *testing.T) {
			img, err := decodeBlock(pictest.Pixel(white, at), nil)
			if err != nil {
				t.Fatalf("failed to decode tile: %v", err)
			}
			for y := 0; y < TileSize; y++ {
				for x := 0; x < TileSize; x++ {
					got := img.RGBAAt(x, y)
					want := color.RGBA{}
					if y*TileSize+x == at {
						want = white
					}
					if got != want {
						t.Fatalf("pixel %d,%d: got %v; want %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestDecodeTileRunTotals(t *testing.T) {
	three := []color.RGBA{red, green, blue}
	for _, tc := range []struct {
		name    string
		runs    []pictest.Run
		short   bool
		wantErr bool
	}{
		{name: "one skip", runs: []pictest.Run{{Skip: 1024}}},
		{name: "split", runs: []pictest.Run{{Skip: 500, Colors: three}, {Skip: 521}}},
		{name: "colors at the end", runs: []pictest.Run{{Skip: 1021, Colors: three}}},
		{name: "skip past end", runs: []pictest.Run{{Skip: 1025}}, wantErr: true},
		{name: "colors past end", runs: []pictest.Run{{Skip: 1022, Colors: three}}, wantErr: true},
		{name: "second run past end", runs: []pictest.Run{{Skip: 1000}, {Skip: 20, Colors: three}, {Skip: 2}}, wantErr: true},
		{name: "short", runs: []pictest.Run{{Skip: 3, Colors: three}}, wantErr: true},
		{name: "short allowed", runs: []pictest.Run{{Skip: 3, Colors: three}}, short: true},
		{name: "empty block", runs: nil, wantErr: true},
		{name: "empty block allowed", runs: nil, short: true},
		{name: "overflow even if short allowed", runs: []pictest.Run{{Skip: 1024, Colors: three}}, short: true, wantErr: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeBlock(pictest.Block(tc.runs...), &Options{AllowShortTiles: tc.short})
			if tc.wantErr {
				if !IsFormat(err) {
					t.Errorf("got %v; want format error", err)
				}
				return
			}
			if err != nil {
				t.Errorf("got %v; want no error", err)
			}
		})
	}
}

func TestDecodeTileMalformedBlock(t *testing.T) {
	full := pictest.Solid(red)
	for _, tc := range []struct {
		name  string
		block []byte
	}{
		{"no block length", []byte{0x10}},
		{"block shorter than its length", full[:len(full)-1]},
		{"run header cut short", pictest.RawBlock([]byte{0, 4, 0})},
		{"colors cut short", pictest.RawBlock([]byte{0, 0, 2, 0, 1, 2, 3, 4, 5})},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeBlock(tc.block, &Options{AllowShortTiles: true})
			if !IsFormat(err) {
				t.Errorf("got %v; want format error", err)
			}
		})
	}
}

func TestDecodeTileOffsetPastEnd(t *testing.T) {
	img := NewBGRA(image.Rect(0, 0, TileSize, TileSize))
	err := DecodeTile(bytes.NewReader(pictest.Empty()), 4096, img, nil)
	if !IsFormat(err) {
		t.Errorf("got %v; want format error", err)
	}
}

type badSeeker struct{ io.Reader }

func (badSeeker) Seek(int64, int) (int64, error) {
	return 0, fmt.Errorf("not seekable today")
}

func TestDecodeTileSeekError(t *testing.T) {
	img := NewBGRA(image.Rect(0, 0, TileSize, TileSize))
	err := DecodeTile(badSeeker{bytes.NewReader(pictest.Empty())}, 0, img, nil)
	if !IsIO(err) {
		t.Errorf("got %v; want i/o error", err)
	}
}

func TestDecodeTileSmallDestination(t *testing.T) {
	img := NewBGRA(image.Rect(0, 0, 16, 32))
	err := DecodeTile(bytes.NewReader(pictest.Empty()), 0, img, nil)
	if !IsFormat(err) {
		t.Errorf("got %v; want format error", err)
	}
}

func TestDecodeTileErrorOffset(t *testing.T) {
	// Tile at offset 10: length (2), then a run claiming 2000 skipped pixels.
	data := make([]byte, 10)
	data = append(data, pictest.Block(pictest.Run{Skip: 2000})...)

	img := NewBGRA(image.Rect(0, 0, TileSize, TileSize))
	err := DecodeTile(bytes.NewReader(data), 10, img, nil)
	e, ok := err.(*Error)
	if !ok {
		t.Fatalf("got %T (%v); want *Error", err, err)
	}
	ttesting.AssertEqualInt(t, "offset of bad run", int(e.Offset), 12)
}

func TestDecodeTileLeavesSkippedPixels(t *testing.T) {
	// Pixels a tile skips keep whatever the destination already had.
	img := NewBGRA(image.Rect(0, 0, TileSize, TileSize))
	img.SetRGBA(5, 0, green)

	block := pictest.Block(pictest.Run{Skip: 0, Colors: []color.RGBA{red}}, pictest.Run{Skip: 1023})
	if err := DecodeTile(bytes.NewReader(block), 0, img, nil); err != nil {
		t.Fatalf("failed to decode tile: %v", err)
	}
	ttesting.AssertEqualRGBA(t, "written", img.RGBAAt(0, 0), red)
	ttesting.AssertEqualRGBA(t, "skipped", img.RGBAAt(5, 0), green)
}

func TestDecodeTileBlockLength(t *testing.T) {
	block := pictest.Pixel(red, 0)
	ttesting.AssertEqualInt(t, "block length", int(binary.LittleEndian.Uint16(block)), 4+3+4)
}
