package paths

import (
	"os"
	"path/filepath"
)

// EnvDataDir names an environment variable holding an extra directory to
// look for datafiles in. It is searched first.
const EnvDataDir = "TIBIA_DATA"

// getPossiblePathDirs returns the directories Find looks in, in order.
func getPossiblePathDirs() []string {
	var dirs []string
	if d := os.Getenv(EnvDataDir); d != "" {
		dirs = append(dirs, d)
	}
	return append(dirs, getDefaultPathDirs()...)
}

// getDefaultPathDirs returns the directories searched after $TIBIA_DATA.
func getDefaultPathDirs() []string {
	dirs := []string{"."}
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}
	if gopath := os.Getenv("GOPATH"); gopath != "" {
		dirs = append(dirs, filepath.Join(gopath, "src", "badc0de.net", "pkg", "go-tibia-pic", "datafiles"))
	}
	dirs = append(dirs, os.Args[0]+".runfiles/go_tibia_pic/datafiles")
	return dirs
}

func getPossiblePaths(fileName string) []string {
	var paths []string
	for _, d := range getPossiblePathDirs() {
		paths = append(paths, filepath.Join(d, fileName))
	}
	return paths
}
