package sink

import (
	"fmt"
	"image"
	"io"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/klauspost/compress/zip"
	"github.com/pkg/errors"
)

// Archive writes sheets as entries of a zip archive, named like the files
// Dir would write. Close must be called to finish the archive.
type Archive struct {
	format Format

	mu sync.Mutex
	zw *zip.Writer
	n  int
}

// NewArchive returns a sink writing a zip archive to w.
func NewArchive(w io.Writer, format Format) *Archive {
	return &Archive{format: format, zw: zip.NewWriter(w)}
}

// Put adds img to the archive. Images without pixels are skipped.
func (a *Archive) Put(index int, img image.Image) error {
	if img.Bounds().Empty() {
		glog.V(1).Infof("sink: not archiving sheet %d, it has no pixels", index+1)
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	name := fmt.Sprintf("%d.%s", index+1, a.format.Ext())
	method := zip.Deflate
	if a.format == PNG || a.format == PNG8 || a.format == GIF {
		// Already compressed.
		method = zip.Store
	}
	w, err := a.zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   method,
		Modified: time.Now(),
	})
	if err != nil {
		return errors.Wrapf(err, "adding %s to archive", name)
	}
	if err := Encode(w, img, a.format); err != nil {
		return errors.Wrapf(err, "encoding %s", name)
	}
	a.n++
	return nil
}

// Len returns the number of entries written.
func (a *Archive) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.n
}

// Close writes the archive's central directory. It does not close the
// underlying writer.
func (a *Archive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return errors.Wrap(a.zw.Close(), "finishing archive")
}
