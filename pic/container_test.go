package pic

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"testing"

	"badc0de.net/pkg/go-tibia-pic/pic/pictest"
	"badc0de.net/pkg/go-tibia-pic/ttesting"
)

var (
	red   = color.RGBA{R: 0xff, A: 0xff}
	green = color.RGBA{G: 0xff, A: 0xff}
	blue  = color.RGBA{B: 0xff, A: 0xff}
	white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// twoSheets is a small file with a 2x1 sheet followed by a 1x2 sheet.
func twoSheets() []byte {
	return pictest.Build(7,
		pictest.Sheet{W: 2, H: 1, Key: color.RGBA{R: 1, G: 2, B: 3}, Tiles: [][]byte{pictest.Solid(red), pictest.Solid(green)}},
		pictest.Sheet{W: 1, H: 2, Tiles: [][]byte{pictest.Solid(blue), pictest.Empty()}},
	)
}

func TestReadContainer(t *testing.T) {
	c, err := ReadContainer(bytes.NewReader(twoSheets()))
	if err != nil {
		t.Fatalf("failed to read container: %v", err)
	}

	ttesting.AssertEqualUint32(t, "version", c.Version, 7)
	ttesting.AssertEqualInt(t, "sheet count", int(c.SheetCount), 2)
	ttesting.AssertEqualInt(t, "sheets", len(c.Sheets), 2)
	ttesting.AssertEqualInt(t, "first sheet width", int(c.Sheets[0].WidthTiles), 2)
	ttesting.AssertEqualInt(t, "first sheet height", int(c.Sheets[0].HeightTiles), 1)
	ttesting.AssertEqualRGBA(t, "first sheet key", c.Sheets[0].TransparentKey, color.RGBA{R: 1, G: 2, B: 3, A: 0xff})
	ttesting.AssertEqualInt(t, "second sheet offsets", len(c.Sheets[1].TileOffsets), 2)

	// header (6) + sheet 0 table (5+8) + sheet 1 table (5+8)
	table := uint32(6 + 13 + 13)
	ttesting.AssertEqualUint32(t, "first tile offset", c.Sheets[0].TileOffsets[0], table)
	ttesting.AssertEqualUint32(t, "second tile offset", c.Sheets[0].TileOffsets[1], table+uint32(len(pictest.Solid(red))))
}

func TestReadContainerTruncated(t *testing.T) {
	data := twoSheets()
	tableLen := 6 + 13 + 13
	for cut := 0; cut < tableLen; cut++ {
		t.Run(fmt.Sprintf("cut at %d", cut), func(t *testing.T) {
			_, err := ReadContainer(bytes.NewReader(data[:cut]))
			if err == nil {
				t.Fatalf("got no error")
			}
			if !IsFormat(err) {
				t.Errorf("got %v; want format error", err)
			}
		})
	}
}

func TestReadContainerReportsSheet(t *testing.T) {
	data := twoSheets()
	_, err := ReadContainer(bytes.NewReader(data[:6+13+3]))
	e, ok := err.(*Error)
	if !ok {
		t.Fatalf("got %T (%v); want *Error", err, err)
	}
	ttesting.AssertEqualInt(t, "sheet", e.Sheet, 1)
	ttesting.AssertEqualInt(t, "offset", int(e.Offset), 6+13)
}

type failingReader struct {
	data []byte
	err  error
}

func (f *failingReader) Read(p []byte) (int, error) {
	if len(f.data) == 0 {
		return 0, f.err
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}

func TestReadContainerIOError(t *testing.T) {
	r := &failingReader{data: twoSheets()[:8], err: fmt.Errorf("disk on fire")}
	_, err := ReadContainer(r)
	if !IsIO(err) {
		t.Errorf("got %v; want i/o error", err)
	}
	if IsFormat(err) {
		t.Errorf("i/o error %v also reported as format error", err)
	}
}

func TestSheetGeometry(t *testing.T) {
	s := &SpriteSheet{WidthTiles: 3, HeightTiles: 2, TileOffsets: make([]uint32, 6)}

	ttesting.AssertEqualInt(t, "tile count", s.TileCount(), 6)
	ttesting.AssertEqualRect(t, "bounds", s.Bounds(), image.Rect(0, 0, 96, 64))

	for _, tc := range []struct {
		b    int
		want image.Point
	}{
		{0, image.Pt(0, 0)},
		{2, image.Pt(64, 0)},
		{3, image.Pt(0, 32)},
		{5, image.Pt(64, 32)},
	} {
		t.Run(fmt.Sprintf("tile %d", tc.b), func(t *testing.T) {
			if got := s.TileOrigin(tc.b); got != tc.want {
				t.Errorf("got %v; want %v", got, tc.want)
			}
			if got := s.TileBounds(tc.b).Size(); got != image.Pt(TileSize, TileSize) {
				t.Errorf("tile size %v; want 32x32", got)
			}
		})
	}
}
