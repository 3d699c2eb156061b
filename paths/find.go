// Package paths locates datafiles such as Tibia.pic.
package paths

import (
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Find locates the passed datafile shortname and returns an absolute or
// relative path to find the datafile at, or an empty string if it is
// nowhere to be found.
//
// For example, for "Tibia.pic" it may return "Tibia.pic" if it is in the
// working directory, or "/opt/tibia/Tibia.pic" with TIBIA_DATA=/opt/tibia.
func Find(fileName string) string {
	for _, path := range getPossiblePaths(fileName) {
		if f, err := os.Open(path); err == nil {
			f.Close()
			glog.Infof("paths.Find(%q)=%s", fileName, path)
			return path
		}
	}
	return ""
}

// Open locates the passed file in the same locations that Find would look, and
// opens it. If Find returns an empty string, an error is returned.
func Open(fileName string) (interface {
	io.ReadCloser
	io.Seeker
}, error) {
	path := Find(fileName)
	if path == "" {
		return nil, errors.Wrapf(os.ErrNotExist, "paths.Open(%q): not found in %v", fileName, getPossiblePathDirs())
	}
	return NoFindOpen(path)
}

// NoFindOpen opens the file at exactly the passed path.
func NoFindOpen(fileName string) (interface {
	io.ReadCloser
	io.Seeker
}, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "paths.NoFindOpen(%q)", fileName)
	}
	return f, nil
}
