package imageprint

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Mode selects how a Printer renders images.
type Mode int

const (
	ModeTrueColor Mode = iota // 24 bit background color escapes
	Mode256                   // gookit/color, 256 colors where that's all there is
	ModeNoColor               // ascii art only
	ModeITerm                 // iTerm2 inline image escape
	ModeRasTerm               // kitty, iTerm or sixel through rasterm
)

// Printer prints each image it is given to a terminal. It implements
// pic.Sink, so whole files can be previewed with pic.Extract.
type Printer struct {
	Out    io.Writer // defaults to os.Stdout
	Mode   Mode
	Blanks bool // colored blanks instead of ascii art

	// Resize, if set, is applied to every image before it is printed.
	Resize func(image.Image) image.Image

	// Header, if set, prints a line naming each image before it.
	Header bool
}

func (p *Printer) out() io.Writer {
	if p.Out == nil {
		return os.Stdout
	}
	return p.Out
}

// Put prints img. Index is only used for the header and the file name
// passed along with iTerm images.
func (p *Printer) Put(index int, img image.Image) error {
	w := p.out()
	if p.Header {
		fmt.Fprintf(w, "sheet %d: %dx%d\n", index+1, img.Bounds().Dx(), img.Bounds().Dy())
	}
	if img.Bounds().Empty() {
		return nil
	}
	if p.Resize != nil {
		img = p.Resize(img)
	}

	switch p.Mode {
	case ModeTrueColor:
		Print24bit(w, img, p.Blanks)
	case Mode256:
		Print256Color(w, img, p.Blanks)
	case ModeNoColor:
		PrintNoColor(w, img, p.Blanks)
	case ModeITerm:
		PrintITerm(w, img, fmt.Sprintf("%d.png", index+1))
	case ModeRasTerm:
		if err := PrintRasTerm(w, img); err != nil {
			return errors.Wrap(err, "printing with rasterm")
		}
	default:
		return errors.Errorf("unknown print mode %d", p.Mode)
	}
	return nil
}
