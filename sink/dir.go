package sink

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/golang/glog"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// Dir writes each sheet to its own file in a directory. Sheet index i is
// written as "<i+1>.<ext>", the same naming the original extractor used.
type Dir struct {
	dir    string
	format Format

	thumbW, thumbH uint

	mu      sync.Mutex
	written []string
}

// DirOption configures a Dir.
type DirOption func(*Dir)

// WithThumbnail makes Dir also write "<i+1>_thumb.<ext>", scaled down to fit
// within maxW x maxH while keeping the aspect ratio.
func WithThumbnail(maxW, maxH uint) DirOption {
	return func(d *Dir) {
		d.thumbW, d.thumbH = maxW, maxH
	}
}

// NewDir creates dir, including any missing parents, and returns a sink
// writing into it.
func NewDir(dir string, format Format, opts ...DirOption) (*Dir, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "creating output directory %q", dir)
	}
	d := &Dir{dir: dir, format: format}
	for _, o := range opts {
		o(d)
	}
	return d, nil
}

// Put encodes img and writes it to the directory. Images without pixels
// are skipped, since no supported format can hold them.
func (d *Dir) Put(index int, img image.Image) error {
	if img.Bounds().Empty() {
		glog.V(1).Infof("sink: not writing sheet %d, it has no pixels", index+1)
		return nil
	}

	name := fmt.Sprintf("%d.%s", index+1, d.format.Ext())
	if err := d.write(name, img); err != nil {
		return err
	}

	if d.thumbW > 0 && d.thumbH > 0 {
		thumb := resize.Thumbnail(d.thumbW, d.thumbH, img, resize.Lanczos3)
		name := fmt.Sprintf("%d_thumb.%s", index+1, d.format.Ext())
		if err := d.write(name, thumb); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dir) write(name string, img image.Image) error {
	buf := &bytes.Buffer{}
	if err := Encode(buf, img, d.format); err != nil {
		return errors.Wrapf(err, "encoding %s", name)
	}

	path := filepath.Join(d.dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	glog.V(1).Infof("sink: saved %s", path)

	d.mu.Lock()
	d.written = append(d.written, path)
	d.mu.Unlock()
	return nil
}

// Written returns the paths of all files written so far, sorted.
func (d *Dir) Written() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := append([]string(nil), d.written...)
	sort.Strings(out)
	return out
}
