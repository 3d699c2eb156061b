package sink

import (
	"image"

	"badc0de.net/pkg/go-tibia-pic/pic"
)

type multi []pic.Sink

// Multi returns a sink that puts every image into each of sinks in turn,
// stopping at the first error.
func Multi(sinks ...pic.Sink) pic.Sink {
	return multi(sinks)
}

func (m multi) Put(index int, img image.Image) error {
	for _, s := range m {
		if err := s.Put(index, img); err != nil {
			return err
		}
	}
	return nil
}
