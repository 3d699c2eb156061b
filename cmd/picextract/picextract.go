// Command picextract extracts every sprite sheet in a Tibia 7.1 Tibia.pic
// file into a directory of images, and optionally into a zip archive.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-tibia-pic/paths"
	"badc0de.net/pkg/go-tibia-pic/pic"
	"badc0de.net/pkg/go-tibia-pic/sink"
)

var (
	outDir     = flag.String("out_dir", "Sprites", "directory to write one image per sheet into; empty to skip")
	format     = flag.String("format", "bmp", "output image format: bmp, png, gif or png8")
	zipPath    = flag.String("zip", "", "if set, also write all sheets into a zip archive at this path")
	parallel   = flag.Bool("parallel", false, "decode several sheets at once")
	workers    = flag.Int("workers", 0, "number of sheets decoded at once with --parallel; 0 means one per CPU")
	keepGoing  = flag.Bool("keep_going", false, "skip sheets with malformed tiles instead of stopping")
	allowShort = flag.Bool("allow_short_tiles", false, "accept tiles whose runs cover fewer than 32x32 pixels, leaving the rest transparent; by default such tiles are malformed")
	thumbW     = flag.Uint("thumb_w", 0, "if set with --thumb_h, also write thumbnails fitting this width")
	thumbH     = flag.Uint("thumb_h", 0, "if set with --thumb_w, also write thumbnails fitting this height")
	list       = flag.Bool("list", false, "only print the sheet table, don't extract anything")

	tibiaPicPath string
)

func main() {
	paths.SetupFilePathFlag("Tibia.pic", "tibia_pic_path", &tibiaPicPath)
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if err := run(); err != nil {
		glog.Exitf("picextract: %v", err)
	}
}

func run() error {
	if tibiaPicPath == "" {
		return errors.New("Tibia.pic not found; pass --tibia_pic_path")
	}
	f, err := os.Open(tibiaPicPath)
	if err != nil {
		return errors.Wrap(err, "opening pic file")
	}
	defer f.Close()

	if *list {
		return printTable(f)
	}

	outFormat, err := sink.ParseFormat(*format)
	if err != nil {
		return err
	}

	var sinks []pic.Sink
	if *outDir != "" {
		var opts []sink.DirOption
		if *thumbW > 0 && *thumbH > 0 {
			opts = append(opts, sink.WithThumbnail(*thumbW, *thumbH))
		}
		d, err := sink.NewDir(*outDir, outFormat, opts...)
		if err != nil {
			return err
		}
		sinks = append(sinks, d)
	}
	var archive *sink.Archive
	if *zipPath != "" {
		zf, err := os.Create(*zipPath)
		if err != nil {
			return errors.Wrap(err, "creating zip archive")
		}
		defer zf.Close()
		archive = sink.NewArchive(zf, outFormat)
		sinks = append(sinks, archive)
	}
	if len(sinks) == 0 {
		return errors.New("nothing to do: both --out_dir and --zip are empty")
	}
	sinks = append(sinks, pic.SinkFunc(logSaved))

	opts := &pic.Options{
		AllowShortTiles: *allowShort,
		KeepGoing:       *keepGoing,
		Workers:         *workers,
	}
	if *parallel {
		st, err := f.Stat()
		if err != nil {
			return errors.Wrap(err, "getting pic file size")
		}
		err = pic.ExtractParallel(f, st.Size(), sink.Multi(sinks...), opts)
	} else {
		err = pic.Extract(f, sink.Multi(sinks...), opts)
	}
	if archive != nil {
		if cerr := archive.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return err
	}

	glog.Infof("all done, sheets have been extracted to %q", *outDir)
	return nil
}

func logSaved(index int, img image.Image) error {
	glog.Infof("saved sheet %d (%dx%d)", index+1, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

func printTable(f *os.File) error {
	c, err := pic.ReadContainer(f)
	if err != nil {
		return err
	}
	fmt.Printf("Version: %d\nSprite sheets: %d\n", c.Version, c.SheetCount)
	for i := range c.Sheets {
		s := &c.Sheets[i]
		k := s.TransparentKey
		fmt.Printf("%4d: %2dx%-2d tiles, %4dx%-4d px, key #%02x%02x%02x\n",
			i+1, s.WidthTiles, s.HeightTiles, s.Bounds().Dx(), s.Bounds().Dy(), k.R, k.G, k.B)
	}
	return nil
}
