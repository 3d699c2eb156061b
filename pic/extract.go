package pic

import (
	"context"
	stderrors "errors"
	"image"
	"io"
	"runtime"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Sink receives assembled sheets. Index is the sheet's 0-based position in
// the container. The image is not used by the caller after Put returns.
//
// Sinks passed to ExtractParallel must be safe for concurrent use.
type Sink interface {
	Put(index int, img image.Image) error
}

// SinkFunc adapts an ordinary function to the Sink interface.
type SinkFunc func(index int, img image.Image) error

func (f SinkFunc) Put(index int, img image.Image) error {
	return f(index, img)
}

func (o *Options) workers() int {
	if o == nil || o.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Workers
}

// Extract reads the container from r, which must be positioned at the start
// of the file, and puts every sheet into sink in order.
//
// Errors in the header or the sheet table stop extraction immediately. A
// sheet whose tiles are malformed stops it too, unless opts.KeepGoing is
// set; then the sheet is skipped and its error is included in the returned
// error once all other sheets are done.
func Extract(r io.ReadSeeker, sink Sink, opts *Options) error {
	c, err := ReadContainer(r)
	if err != nil {
		return err
	}

	failed := make([]error, len(c.Sheets))
	for i := range c.Sheets {
		if err := extractSheet(r, c, i, sink, opts); err != nil {
			if !skippable(err, opts) {
				return err
			}
			failed[i] = err
		}
	}
	return stderrors.Join(failed...)
}

// ExtractParallel works like Extract, but decodes up to opts.Workers sheets
// at the same time. Each worker reads through its own io.SectionReader over
// ra, so no read position is shared.
func ExtractParallel(ra io.ReaderAt, size int64, sink Sink, opts *Options) error {
	c, err := ReadContainer(io.NewSectionReader(ra, 0, size))
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(opts.workers())

	failed := make([]error, len(c.Sheets))
	for i := range c.Sheets {
		i := i
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			sr := io.NewSectionReader(ra, 0, size)
			if err := extractSheet(sr, c, i, sink, opts); err != nil {
				if !skippable(err, opts) {
					return err
				}
				failed[i] = err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return stderrors.Join(failed...)
}

func skippable(err error, opts *Options) bool {
	if !opts.keepGoing() || !IsFormat(err) {
		return false
	}
	glog.Warningf("skipping sheet: %v", err)
	return true
}

func extractSheet(r io.ReadSeeker, c *Container, i int, sink Sink, opts *Options) error {
	img, err := AssembleSheet(r, &c.Sheets[i], opts)
	if err != nil {
		return withSheet(err, i)
	}
	glog.V(2).Infof("pic: sheet %d assembled, %dx%d", i, img.Rect.Dx(), img.Rect.Dy())

	if err := sink.Put(i, img); err != nil {
		e := newError(ErrResource, "putting sheet", err)
		e.Sheet = i
		return e
	}
	return nil
}

// Picture is a fully decoded pic file.
type Picture struct {
	Container *Container
	// Images holds one image per sheet. With Options.KeepGoing, sheets
	// that failed to decode are nil.
	Images []*BGRA
}

// DecodeAll decodes every sheet in r.
func DecodeAll(r io.ReadSeeker, opts *Options) (*Picture, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, newError(ErrIO, "seeking to start", err)
	}
	c, err := ReadContainer(r)
	if err != nil {
		return nil, err
	}

	p := &Picture{Container: c, Images: make([]*BGRA, len(c.Sheets))}
	failed := make([]error, len(c.Sheets))
	for i := range c.Sheets {
		img, err := AssembleSheet(r, &c.Sheets[i], opts)
		if err != nil {
			err = withSheet(err, i)
			if !skippable(err, opts) {
				return nil, err
			}
			failed[i] = err
			continue
		}
		p.Images[i] = img
	}
	return p, stderrors.Join(failed...)
}

// DecodeSheet decodes the sheet with the passed 0-based index.
func DecodeSheet(r io.ReadSeeker, which int, opts *Options) (*BGRA, error) {
	c, err := readContainerAt(r)
	if err != nil {
		return nil, err
	}
	if which < 0 || which >= len(c.Sheets) {
		return nil, errors.Errorf("pic: sheet %d out of range, file has %d sheets", which, len(c.Sheets))
	}
	img, err := AssembleSheet(r, &c.Sheets[which], opts)
	if err != nil {
		return nil, withSheet(err, which)
	}
	return img, nil
}

// DecodeTileAt decodes tile b of the sheet with the passed 0-based index.
func DecodeTileAt(r io.ReadSeeker, which, b int, opts *Options) (*BGRA, error) {
	c, err := readContainerAt(r)
	if err != nil {
		return nil, err
	}
	if which < 0 || which >= len(c.Sheets) {
		return nil, errors.Errorf("pic: sheet %d out of range, file has %d sheets", which, len(c.Sheets))
	}
	s := &c.Sheets[which]
	if b < 0 || b >= len(s.TileOffsets) {
		return nil, errors.Errorf("pic: tile %d out of range, sheet %d has %d tiles", b, which, len(s.TileOffsets))
	}
	img, err := DecodeTileImage(r, s.TileOffsets[b], opts)
	if err != nil {
		if e, ok := err.(*Error); ok {
			e.Sheet, e.Tile = which, b
		}
		return nil, err
	}
	return img, nil
}

// readContainerAt rewinds r and reads the container index.
func readContainerAt(r io.ReadSeeker) (*Container, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, newError(ErrIO, "seeking to start", err)
	}
	return ReadContainer(r)
}
