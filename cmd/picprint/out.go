package main

import (
	"image"

	"github.com/golang/glog"
	"github.com/nfnt/resize"

	"badc0de.net/pkg/go-tibia-pic/imageprint"
)

func printer(header bool) *imageprint.Printer {
	p := &imageprint.Printer{Blanks: *blanks, Header: header}
	switch {
	case *rasterm:
		p.Mode = imageprint.ModeRasTerm
	case !*col:
		p.Mode = imageprint.ModeNoColor
	case *iterm:
		p.Mode = imageprint.ModeITerm
	case *col256:
		p.Mode = imageprint.Mode256
	default:
		p.Mode = imageprint.ModeTrueColor
	}
	if *downsize {
		p.Resize = fitTerminal
	}
	return p
}

// fitTerminal shrinks img so it fits on the terminal. Character cells are
// roughly twice as tall as wide and each pixel takes two columns.
func fitTerminal(img image.Image) image.Image {
	termSize, err := GetTermSize()
	if err != nil {
		return img
	}
	if (termSize.WSXPixel != 0 && termSize.WSYPixel != 0) && (*rasterm || *iterm) {
		// Prefer printing out in native size if there's a chance we print out an image rather than pixels.
		return resize.Thumbnail(termSize.WSXPixel/2, termSize.WSYPixel/2, img, resize.Lanczos3)
	}
	return resize.Thumbnail(termSize.WSCol/2, termSize.WSRow, img, resize.Lanczos3)
}

func out(index int, img image.Image) {
	if err := printer(false).Put(index, img); err != nil {
		glog.Errorf("error printing image: %v", err)
	}
}
