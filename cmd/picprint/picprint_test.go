package main

import (
	"flag"
	"testing"
)

func TestAllowShortTilesDefault(t *testing.T) {
	f := flag.Lookup("allow_short_tiles")
	if f == nil {
		t.Fatal("allow_short_tiles flag not registered")
	}
	if f.DefValue != "false" {
		t.Errorf("allow_short_tiles defaults to %s; want false, like the library", f.DefValue)
	}
}
