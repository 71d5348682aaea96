// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pmaker

import (
	"github.com/unixdj/xstitch"
	"github.com/unixdj/xstitch/wire"
)

// Seed numbers of the stitch fixture.
var testSeed = [4]int32{498347506, 626547637, 1679951037, 2146703145}

// encodeCells writes a cell stream of chunks of decoded words.  The
// cipher is an XOR, so decoding is also encoding.
func encodeCells(w *wire.Writer, seed [4]int32, chunks ...[]int32) {
	w.Int32(seed[:]...)
	c := newCipher(seed)
	for _, chunk := range chunks {
		w.Uint32(uint32(len(chunk)))
		for _, v := range chunk {
			var raw int32
			raw, c = c.decode(v)
			w.Int32(raw)
		}
	}
}

// compressRuns run-length encodes records.
func compressRuns(records []int32) []int32 {
	var out []int32
	for i := 0; i < len(records); {
		n := 1
		for i+n < len(records) && records[i+n] == records[i] && n < runMask>>runShift {
			n++
		}
		if n > 1 {
			out = append(out, runFlag|int32(n)<<runShift)
		}
		out = append(out, records[i])
		i += n
	}
	return out
}

// Cell records.
const emptyRecord = int32(cellEmpty) << 24

func fullRecord(pal uint8) int32 { return int32(pal) << 16 }

func smallRecord(pos int) int32 { return int32(-1<<31 | pos<<16) }

// stitchFixture returns the cells and small stitch buffers of a 10x10
// pattern with full stitches in the corners, a block of petites and
// quarters at (1, 1) and a block of halves at (3, 3).
func stitchFixture() ([]int32, []smallStitchBuffer) {
	cells := make([]int32, 100)
	for i := range cells {
		cells[i] = emptyRecord
	}
	at := func(x, y int) *int32 { return &cells[y*10+x] }
	*at(0, 0) = fullRecord(1)
	*at(9, 0) = fullRecord(2)
	*at(0, 9) = fullRecord(6)
	*at(9, 9) = fullRecord(0)
	for i, c := range [][2]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}, {3, 3}, {4, 3}, {3, 4}, {4, 4}} {
		*at(c[0], c[1]) = smallRecord(i)
	}
	bufs := []smallStitchBuffer{
		// petite, quarter
		{32, 1, 0, 0, 3, 0, 0, 4},  // top left, bottom right
		{8, 4, 0, 0, 0, 4, 3, 0},   // top right, bottom left
		{16, 2, 0, 0, 0, 3, 4, 0},  // bottom left, top right
		{4, 8, 0, 0, 4, 0, 0, 3},   // bottom right, top left
		{1, 0, 5},                  // half top
		{2, 0, 0, 5},               // half bottom
		{2, 0, 0, 5},               // half bottom
		{1, 0, 5},                  // half top
	}
	return cells, bufs
}

var (
	wantFulls = []xstitch.FullStitch{
		{X: 0, Y: 0, Palindex: 1, Kind: xstitch.Full},
		{X: 9, Y: 0, Palindex: 2, Kind: xstitch.Full},
		{X: 1, Y: 1, Palindex: 3, Kind: xstitch.Petite},
		{X: 2.5, Y: 1, Palindex: 3, Kind: xstitch.Petite},
		{X: 1, Y: 2.5, Palindex: 3, Kind: xstitch.Petite},
		{X: 2.5, Y: 2.5, Palindex: 3, Kind: xstitch.Petite},
		{X: 0, Y: 9, Palindex: 6, Kind: xstitch.Full},
		{X: 9, Y: 9, Palindex: 0, Kind: xstitch.Full},
	}
	wantParts = []xstitch.PartStitch{
		{X: 1.5, Y: 1.5, Palindex: 4, Kind: xstitch.Quarter, Direction: xstitch.Backward},
		{X: 2, Y: 1.5, Palindex: 4, Kind: xstitch.Quarter, Direction: xstitch.Forward},
		{X: 1.5, Y: 2, Palindex: 4, Kind: xstitch.Quarter, Direction: xstitch.Forward},
		{X: 2, Y: 2, Palindex: 4, Kind: xstitch.Quarter, Direction: xstitch.Backward},
		{X: 3, Y: 3, Palindex: 5, Kind: xstitch.Half, Direction: xstitch.Backward},
		{X: 4, Y: 3, Palindex: 5, Kind: xstitch.Half, Direction: xstitch.Forward},
		{X: 3, Y: 4, Palindex: 5, Kind: xstitch.Half, Direction: xstitch.Forward},
		{X: 4, Y: 4, Palindex: 5, Kind: xstitch.Half, Direction: xstitch.Backward},
	}
)

// writeStitches writes the stitch fixture as a compressed cell
// stream split into uneven chunks, followed by the buffers.
func writeStitches(w *wire.Writer) {
	cells, bufs := stitchFixture()
	runs := compressRuns(cells)
	encodeCells(w, testSeed, runs[:5], nil, runs[5:])
	for i := range bufs {
		w.Bytes(bufs[i][:])
	}
}

// Joint record writers.  Coordinates are in cells.

func half(v float32) uint16 { return uint16(v * 2) }

func writeKnot(w *wire.Writer, x, y float32, pal uint8) {
	w.Uint16(uint16(jointFrenchKnot), 0, half(x), half(y)).Pad(4).Uint8(pal, 0)
}

func writeBead(w *wire.Writer, x, y float32, pal uint8, rot uint16) {
	w.Uint16(uint16(jointBead), 0, half(x), half(y)).Uint8(pal, 0).Uint16(rot)
}

func writeLine(w *wire.Writer, kind jointKind, x1, y1, x2, y2 float32, pal uint8) {
	w.Uint16(uint16(kind), 0, half(x1), half(y1), half(x2), half(y2)).Uint8(pal, 0)
}

func writeCurve(w *wire.Writer, raw ...uint16) {
	w.Uint16(uint16(jointCurve)).Pad(3).Uint16(uint16(len(raw) / 2)).Uint16(raw...)
}

func writeSpecial(w *wire.Writer, x, y float32, pal, model uint8, m [4]uint16) {
	w.Uint16(uint16(jointSpecial), 0).Uint8(pal).Pad(4)
	w.Uint16(half(x), half(y)).Uint16(m[:]...).Pad(2).Uint16(uint16(model))
}

// writeJoints writes the 16 joint records of the joint fixture.
func writeJoints(w *wire.Writer) {
	writeKnot(w, 3, 3, 0)
	writeLine(w, jointBack, 1, 1, 2, 2, 1)
	writeSpecial(w, 5.5, 1, 0, 0, identity)
	writeBead(w, 3, 4.5, 2, 0)
	writeLine(w, jointBack, 3, 2, 4, 1, 1)
	writeSpecial(w, 9, 1, 0, 0, [4]uint16{0xffff, 0, 0, 1})
	writeSpecial(w, 8.5, 3, 0, 0, [4]uint16{1, 0, 0, 0xffff})
	writeBead(w, 3, 5.5, 2, 270)
	writeLine(w, jointBack, 4, 1, 5, 1, 1)
	writeSpecial(w, 12, 3, 0, 0, [4]uint16{0xffff, 0, 0, 0xffff})
	writeSpecial(w, 9, 4.5, 0, 0, [4]uint16{0, 0xffff, 1, 0})
	writeSpecial(w, 9, 5.5, 0, 0, [4]uint16{0, 1, 0xffff, 0})
	writeLine(w, jointStraight, 1, 2, 5, 2, 1)
	writeSpecial(w, 9, 6.5, 0, 0, [4]uint16{0, 1, 1, 0})
	writeSpecial(w, 9, 8, 0, 0, [4]uint16{0, 0xffff, 0xffff, 0})
	writeSpecial(w, 11, 5, 1, 1, identity)
}

var wantJoints = Joints{
	Nodes: []xstitch.NodeStitch{
		{X: 3, Y: 3, Palindex: 0, Kind: xstitch.FrenchKnot},
		{X: 3, Y: 4.5, Palindex: 2, Kind: xstitch.Bead},
		{X: 3, Y: 5.5, Palindex: 2, Kind: xstitch.Bead, Rotated: true},
	},
	Lines: []xstitch.LineStitch{
		{X1: 1, Y1: 1, X2: 2, Y2: 2, Palindex: 1, Kind: xstitch.Back},
		{X1: 3, Y1: 2, X2: 4, Y2: 1, Palindex: 1, Kind: xstitch.Back},
		{X1: 4, Y1: 1, X2: 5, Y2: 1, Palindex: 1, Kind: xstitch.Back},
		{X1: 1, Y1: 2, X2: 5, Y2: 2, Palindex: 1, Kind: xstitch.Straight},
	},
	Specials: []xstitch.SpecialStitch{
		{X: 5.5, Y: 1},
		{X: 9, Y: 1, Flip: xstitch.Flip{Horizontal: true}},
		{X: 8.5, Y: 3, Flip: xstitch.Flip{Vertical: true}},
		{X: 12, Y: 3, Flip: xstitch.Flip{Horizontal: true, Vertical: true}},
		{X: 9, Y: 4.5, Rotation: 90},
		{X: 9, Y: 5.5, Rotation: 270},
		{X: 9, Y: 6.5, Rotation: 90, Flip: xstitch.Flip{Vertical: true}},
		{X: 9, Y: 8, Rotation: 90, Flip: xstitch.Flip{Horizontal: true}},
		{X: 11, Y: 5, Palindex: 1, Model: 1},
	},
}

// Raw curve of the lazy daisy model.  Points are in thirtieths of a
// cell; the model is shifted by one cell to the right.
var lazyDaisyCurve = []uint16{
	77, 62, 48, 25, 49, 7, 54, 2, 64, 6, 71, 17, 77, 62,
}

func writeModelHeader(w *wire.Writer, unique, name string) {
	w.Uint16(modelSection).Pad(2).Bytes([]byte(modelMagic))
	w.CString(unique, modelNameLength).CString(name, modelNameLength).Pad(2)
}

// writeModels writes the model section fixture: a lazy daisy made of
// a curve, a heart of straight stitches, and two legacy models to be
// skipped.
func writeModels(w *wire.Writer) {
	w.Pad(2).Uint16(4)

	w.Uint16(3) // section tag of an unsupported model

	writeModelHeader(w, "Lasy Daisy Over 2x1", "")
	w.Pad(2).Uint16(2, 0, 4, 2) // shift, size
	w.Uint16(Signature, 1)
	writeCurve(w, lazyDaisyCurve...)
	w.Pad(modelHeaderSize).Uint16(Signature, 1)
	writeLine(w, jointBack, 0, 0, 2, 1, 0) // preview, dropped
	w.Pad(modelHeaderSize).Uint16(Signature, 0)

	w.Uint16(modelSection).Pad(2).Bytes([]byte("sps0"))

	writeModelHeader(w, "Rhodes Heart - over 6", "Rhodes Heart")
	w.Pad(2).Uint16(0, 0, 6, 6)
	w.Uint16(Signature, 4)
	for _, l := range wantHeart[:4] {
		writeLine(w, jointStraight, l.X1, l.Y1, l.X2, l.Y2, 0)
	}
	w.Pad(modelHeaderSize).Uint16(Signature, 0)
	w.Pad(modelHeaderSize).Uint16(Signature, 3)
	for _, l := range wantHeart[4:] {
		writeLine(w, jointStraight, l.X1, l.Y1, l.X2, l.Y2, 0)
	}
}

var wantHeart = []xstitch.LineStitch{
	{X1: 1, Y1: 2, X2: 2, Y2: 0, Kind: xstitch.Straight},
	{X1: 0.5, Y1: 1.5, X2: 2.5, Y2: 0, Kind: xstitch.Straight},
	{X1: 0, Y1: 1, X2: 3, Y2: 0.5, Kind: xstitch.Straight},
	{X1: 0, Y1: 0.5, X2: 3, Y2: 1, Kind: xstitch.Straight},
	{X1: 0.5, Y1: 0, X2: 2.5, Y2: 1.5, Kind: xstitch.Straight},
	{X1: 1, Y1: 0, X2: 2, Y2: 2, Kind: xstitch.Straight},
	{X1: 1.5, Y1: 0.5, X2: 1.5, Y2: 2.5, Kind: xstitch.Straight},
}

var wantModels = []xstitch.SpecialStitchModel{
	{
		UniqueName: "Lasy Daisy Over 2x1",
		Width:      2,
		Height:     1,
		Curves: []xstitch.CurvedStitch{{Points: []xstitch.Point{
			{X: 1.5666666, Y: 2.0666666},
			{X: 0.6, Y: 0.8333333},
			{X: 0.6333333, Y: 0.23333333},
			{X: 0.79999995, Y: 0.06666667},
			{X: 1.1333333, Y: 0.2},
			{X: 1.3666667, Y: 0.56666666},
			{X: 1.5666666, Y: 2.0666666},
		}}},
	},
	{
		UniqueName: "Rhodes Heart - over 6",
		Name:       "Rhodes Heart",
		Width:      3,
		Height:     3,
		Lines:      wantHeart,
	},
}
