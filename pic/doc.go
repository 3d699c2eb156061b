// Package pic implements a decoder for the Tibia 7.1 Tibia.pic file.
//
// A pic file is a container of sprite sheets. Each sheet is a grid of 32x32
// tiles, and each tile is stored as a block of the same run-length encoding
// that is used for sprites in Tibia.spr: alternating counts of transparent
// and colored pixels, with colored pixels stored as R, G, B triples.
//
// ReadContainer parses the header and the sheet table. AssembleSheet
// produces one image per sheet, and Extract and ExtractParallel drive the
// whole file into a Sink.
package pic
