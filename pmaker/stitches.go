// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pmaker

import (
	"fmt"

	"github.com/unixdj/xstitch"
	"github.com/unixdj/xstitch/wire"
)

// Cell record layout.  Byte 3 of a record selects its role.
const (
	cellEmpty = 15 // byte 3 of an empty cell
	cellFull  = 0  // byte 3 of a full stitch, byte 2 is the palette index

	// Bits 16-30 of any other record index the small stitch buffers.
	bufferShift = 16
	bufferMask  = 0x7fff
)

// A smallStitchBuffer describes the sub-stitches of one cell.
// Byte 0 flags half and quarter stitches, byte 1 flags petites,
// bytes 2-9 hold palette indices.
type smallStitchBuffer [10]byte

const (
	partFlags   = 0
	petiteFlags = 1
)

// A smallStitch is a bit of a small stitch buffer.
type smallStitch struct {
	bit      byte
	palindex int // byte holding the palette index
	dx, dy   float32
}

// Petites, in emission order: top left, bottom left, top right,
// bottom right.
var petites = [...]smallStitch{
	{1, 4, 0, 0},
	{2, 5, 0, 0.5},
	{4, 6, 0.5, 0},
	{8, 7, 0.5, 0.5},
}

// Half and quarter stitches, in emission order.  The quarter stitch
// diagonal points into the cell corner the quarter occupies.
var parts = [...]struct {
	smallStitch
	kind xstitch.PartStitchKind
	dir  xstitch.Direction
}{
	{smallStitch{1, 2, 0, 0}, xstitch.Half, xstitch.Backward},        // top
	{smallStitch{2, 3, 0, 0}, xstitch.Half, xstitch.Forward},         // bottom
	{smallStitch{4, 4, 0, 0}, xstitch.Quarter, xstitch.Backward},     // top left
	{smallStitch{8, 5, 0, 0.5}, xstitch.Quarter, xstitch.Forward},    // bottom left
	{smallStitch{16, 6, 0.5, 0}, xstitch.Quarter, xstitch.Forward},   // top right
	{smallStitch{32, 7, 0.5, 0.5}, xstitch.Quarter, xstitch.Backward}, // bottom right
}

/*
DecodeStitchGrid decodes the stitch grid of a width by height pattern
followed by smallStitchCount small stitch buffers.  r must be
positioned at the seed numbers of the cell stream.

Full and petite stitches are returned in the first slice, half and
quarter stitches in the second, both in row-major cell order.  Within
a cell petites precede half and quarter stitches.
*/
func DecodeStitchGrid(r *wire.Reader, width, height, smallStitchCount int) ([]xstitch.FullStitch, []xstitch.PartStitch, error) {
	if width < 0 || height < 0 || smallStitchCount < 0 {
		return nil, nil, fmt.Errorf("pmaker: invalid grid %dx%d with %d small stitches",
			width, height, smallStitchCount)
	}
	cells, err := decodeCells(r, width*height)
	if err != nil {
		return nil, nil, err
	}
	bufs, err := readSmallStitchBuffers(r, smallStitchCount)
	if err != nil {
		return nil, nil, err
	}
	return resolveStitches(cells, bufs, width)
}

func readSmallStitchBuffers(r *wire.Reader, n int) ([]smallStitchBuffer, error) {
	if n*len(smallStitchBuffer{}) > r.Len() {
		return nil, fmt.Errorf("%w: %d small stitch buffers at offset %d",
			wire.ErrTruncated, n, r.Offset())
	}
	bufs := make([]smallStitchBuffer, n)
	for i := range bufs {
		b, _ := r.Bytes(len(bufs[i]))
		copy(bufs[i][:], b)
	}
	return bufs, nil
}

// resolveStitches turns cell records into stitches.
func resolveStitches(cells []int32, bufs []smallStitchBuffer, width int) ([]xstitch.FullStitch, []xstitch.PartStitch, error) {
	var (
		fulls []xstitch.FullStitch
		part  []xstitch.PartStitch
	)
	for i, rec := range cells {
		b3, b2 := byte(rec>>24), byte(rec>>16)
		if b3 == cellEmpty {
			continue
		}
		x, y := float32(i%width), float32(i/width)
		if b3 == cellFull {
			fulls = append(fulls, xstitch.FullStitch{
				X: x, Y: y, Palindex: b2, Kind: xstitch.Full,
			})
			continue
		}
		pos := int(rec>>bufferShift) & bufferMask
		if pos >= len(bufs) {
			return nil, nil, fmt.Errorf("%w: cell (%v, %v) refers to buffer %d of %d",
				ErrSmallStitchIndex, x, y, pos, len(bufs))
		}
		buf := &bufs[pos]
		for _, p := range petites {
			if buf[petiteFlags]&p.bit != 0 {
				fulls = append(fulls, xstitch.FullStitch{
					X:        x + p.dx,
					Y:        y + p.dy,
					Palindex: buf[p.palindex],
					Kind:     xstitch.Petite,
				})
			}
		}
		for _, p := range parts {
			if buf[partFlags]&p.bit != 0 {
				part = append(part, xstitch.PartStitch{
					X:         x + p.dx,
					Y:         y + p.dy,
					Palindex:  buf[p.palindex],
					Kind:      p.kind,
					Direction: p.dir,
				})
			}
		}
	}
	return fulls, part, nil
}
