// Package ttesting contains small assertion helpers shared by tests. Each
// helper runs as a named subtest, so failures point at what was compared.
package ttesting

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func AssertEqualInt(t *testing.T, name string, got, want int) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertEqualUint32(t *testing.T, name string, got, want uint32) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertEqualRect(t *testing.T, name string, got, want image.Rectangle) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %v; want %v", got, want)
		}
	})
}

func AssertEqualRGBA(t *testing.T, name string, got, want color.RGBA) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %+v; want %+v", got, want)
		}
	})
}

func AssertEqualBytes(t *testing.T, name string, got, want []byte) {
	t.Run(name, func(t *testing.T) {
		if !bytes.Equal(got, want) {
			t.Errorf("got % x; want % x", got, want)
		}
	})
}

func AssertTrue(t *testing.T, name string, got bool) {
	t.Run(name, func(t *testing.T) {
		if !got {
			t.Errorf("got false; want true")
		}
	})
}
