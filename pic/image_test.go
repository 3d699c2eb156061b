package pic

import (
	"bytes"
	"image"
	"image/color"
	"io"
	"testing"

	"badc0de.net/pkg/go-tibia-pic/pic/pictest"
	"badc0de.net/pkg/go-tibia-pic/ttesting"
)

func TestDecodeConfigAll(t *testing.T) {
	cfgs, err := DecodeConfigAll(bytes.NewReader(twoSheets()))
	if err != nil {
		t.Fatalf("failed to decode configs: %v", err)
	}
	ttesting.AssertEqualInt(t, "configs", len(cfgs), 2)
	ttesting.AssertEqualInt(t, "first width", cfgs[0].Width, 64)
	ttesting.AssertEqualInt(t, "first height", cfgs[0].Height, 32)
	ttesting.AssertEqualInt(t, "second width", cfgs[1].Width, 32)
	ttesting.AssertEqualInt(t, "second height", cfgs[1].Height, 64)
	ttesting.AssertTrue(t, "color model", cfgs[0].ColorModel == color.RGBAModel)
}

func TestDecodeConfig(t *testing.T) {
	cfg, err := DecodeConfig(bytes.NewReader(twoSheets()))
	if err != nil {
		t.Fatalf("failed to decode config: %v", err)
	}
	ttesting.AssertEqualInt(t, "width", cfg.Width, 64)

	_, err = DecodeConfig(bytes.NewReader(pictest.Build(1)))
	if !IsFormat(err) {
		t.Errorf("got %v for empty file; want format error", err)
	}
}

func TestDecode(t *testing.T) {
	img, err := Decode(bytes.NewReader(twoSheets()))
	if err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	ttesting.AssertEqualRect(t, "bounds", img.Bounds(), image.Rect(0, 0, 64, 32))
	ttesting.AssertEqualRGBA(t, "left tile", img.At(0, 0).(color.RGBA), red)

	if _, err := Decode(io.LimitReader(bytes.NewReader(twoSheets()), 1000)); err == nil {
		t.Errorf("got no error for a reader without Seek")
	}
	if _, err := Decode(bytes.NewReader(pictest.Build(1))); !IsFormat(err) {
		t.Errorf("got %v for empty file; want format error", err)
	}
}
