package pic

import (
	"io"

	"github.com/bradfitz/iter"
)

// AssembleSheet decodes every tile of s from r and returns the complete
// sheet. Tiles are placed left to right, top to bottom, in the order of
// s.TileOffsets. A sheet without tiles yields an empty image.
func AssembleSheet(r io.ReadSeeker, s *SpriteSheet, opts *Options) (*BGRA, error) {
	if len(s.TileOffsets) != s.TileCount() {
		return nil, formatError("assembling sheet", -1, "sheet has %d tile offsets, want %dx%d", len(s.TileOffsets), s.WidthTiles, s.HeightTiles)
	}

	img := NewBGRA(s.Bounds())
	for b := range iter.N(len(s.TileOffsets)) {
		tile := img.subImage(s.TileBounds(b))
		if err := DecodeTile(r, s.TileOffsets[b], tile, opts); err != nil {
			if e, ok := err.(*Error); ok {
				e.Tile = b
			}
			return nil, err
		}
	}
	return img, nil
}
