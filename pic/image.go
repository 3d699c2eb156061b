package pic

// This file contains functions modeled after the public interface of the
// image package's decoders (Decode, DecodeConfig), plus variants that
// understand a pic file holds many images.
//
// There is no image.RegisterFormat call: 7.1 pic files start with a plain
// version number rather than a signature, so there is nothing to sniff.

import (
	"image"
	"image/color"
	"io"

	"github.com/pkg/errors"
)

func asReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		return nil, errors.New("pic: reader must be a ReadSeeker")
	}
	return rs, nil
}

// DecodeConfig returns the image.Config (width, height, color model) of the
// first sheet in a pic file.
func DecodeConfig(r io.Reader) (image.Config, error) {
	cfgs, err := DecodeConfigAll(r)
	if err != nil {
		return image.Config{}, err
	}
	if len(cfgs) == 0 {
		return image.Config{}, formatError("decoding config", -1, "file has no sheets")
	}
	return cfgs[0], nil
}

// DecodeConfigAll returns the dimensions of each of the sheets in a pic
// file. Only the sheet table is read; no tiles are decoded.
func DecodeConfigAll(r io.Reader) ([]image.Config, error) {
	c, err := ReadContainer(r)
	if err != nil {
		return nil, err
	}
	cfgs := make([]image.Config, len(c.Sheets))
	for i := range c.Sheets {
		b := c.Sheets[i].Bounds()
		cfgs[i] = image.Config{Width: b.Dx(), Height: b.Dy(), ColorModel: color.RGBAModel}
	}
	return cfgs, nil
}

// Decode returns the first sheet of a pic file. r must also implement
// io.Seeker, since tiles are located by absolute offsets.
func Decode(r io.Reader) (image.Image, error) {
	rs, err := asReadSeeker(r)
	if err != nil {
		return nil, err
	}
	c, err := ReadContainer(rs)
	if err != nil {
		return nil, err
	}
	if len(c.Sheets) == 0 {
		return nil, formatError("decoding", -1, "file has no sheets")
	}
	img, err := AssembleSheet(rs, &c.Sheets[0], nil)
	if err != nil {
		return nil, withSheet(err, 0)
	}
	return img, nil
}
