package imageprint

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"badc0de.net/pkg/go-tibia-pic/pic"
	"badc0de.net/pkg/go-tibia-pic/ttesting"
)

func TestPrinterNoColor(t *testing.T) {
	img := pic.NewBGRA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	img.SetRGBA(1, 0, color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff})

	buf := &bytes.Buffer{}
	p := &Printer{Out: buf, Mode: ModeNoColor, Header: true}
	if err := p.Put(0, img); err != nil {
		t.Fatalf("failed to print: %v", err)
	}

	want := "sheet 1: 3x2\n" +
		"##..  \n" +
		"      \n"
	if buf.String() != want {
		t.Errorf("got %q; want %q", buf.String(), want)
	}
}

func TestPrinterTrueColor(t *testing.T) {
	img := pic.NewBGRA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff})

	buf := &bytes.Buffer{}
	p := &Printer{Out: buf, Mode: ModeTrueColor, Blanks: true}
	if err := p.Put(0, img); err != nil {
		t.Fatalf("failed to print: %v", err)
	}
	ttesting.AssertTrue(t, "background escape", strings.Contains(buf.String(), "\x1b[48;2;16;32;48m  "))
}

func TestPrinterResizeAndEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	resized := 0
	p := &Printer{Out: buf, Mode: ModeNoColor, Resize: func(i image.Image) image.Image {
		resized++
		return i
	}}
	if err := p.Put(0, pic.NewBGRA(image.Rect(0, 0, 0, 0))); err != nil {
		t.Fatalf("failed to print empty image: %v", err)
	}
	if err := p.Put(1, pic.NewBGRA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("failed to print: %v", err)
	}
	ttesting.AssertEqualInt(t, "resize calls", resized, 1)
	ttesting.AssertEqualInt(t, "lines", strings.Count(buf.String(), "\n"), 2)
}
