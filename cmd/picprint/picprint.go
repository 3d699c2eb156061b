// Command picprint prints a sheet, or a single tile of it, from Tibia.pic
// on the terminal.
package main

import (
	"flag"
	"fmt"
	"io"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/common-nighthawk/go-figure"
	"github.com/golang/glog"

	"badc0de.net/pkg/go-tibia-pic/paths"
	"badc0de.net/pkg/go-tibia-pic/pic"
)

var (
	sheetID    = flag.Int("sheet", 1, "sheet to print, counting from 1; 0 prints all of them")
	tileID     = flag.Int("tile", -1, "if set, print only this tile of the sheet, counting from 0")
	col        = flag.Bool("col", true, "whether to use colors at all")
	col256     = flag.Bool("col256", false, "whether to use 256 col instead of 24 bit")
	iterm      = flag.Bool("iterm", false, "whether to print with iterm escape code instead of 24 bit")
	rasterm    = flag.Bool("rasterm", false, "whether to print with kitty, iterm or sixel graphics through rasterm")
	blanks     = flag.Bool("blanks", true, "whether to just use colored blanks instead of some bad ascii art")
	downsize   = flag.Bool("downsize", true, "whether to shrink images to fit the terminal")
	banner     = flag.Bool("banner", false, "whether to print a banner with the file version first")
	allowShort = flag.Bool("allow_short_tiles", false, "accept tiles whose runs cover fewer than 32x32 pixels, leaving the rest transparent; by default such tiles are malformed")

	tibiaPicPath string
)

func main() {
	paths.SetupFilePathFlag("Tibia.pic", "tibia_pic_path", &tibiaPicPath)
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	f, err := paths.NoFindOpen(tibiaPicPath)
	if err != nil {
		glog.Exitf("opening pic file: %v", err)
	}
	defer f.Close()

	opts := &pic.Options{AllowShortTiles: *allowShort, KeepGoing: true}

	if *banner {
		h, err := pic.ReadHeader(f)
		if err != nil {
			glog.Exitf("reading pic header: %v", err)
		}
		figure.NewFigure(fmt.Sprintf("pic v%d", h.Version), "", true).Print()
		fmt.Printf("%d sheets\n\n", h.SheetCount)
	}

	switch {
	case *sheetID == 0:
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			glog.Exitf("rewinding pic file: %v", err)
		}
		if err := pic.Extract(f, printer(true), opts); err != nil {
			glog.Errorf("error decoding pic: %v", err)
		}
	case *tileID >= 0:
		img, err := pic.DecodeTileAt(f, *sheetID-1, *tileID, opts)
		if err != nil {
			glog.Exitf("error decoding tile: %v", err)
		}
		out(*sheetID-1, img)
	default:
		img, err := pic.DecodeSheet(f, *sheetID-1, opts)
		if err != nil {
			glog.Exitf("error decoding sheet: %v", err)
		}
		out(*sheetID-1, img)
	}
}
