// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package xstitch describes cross-stitch patterns.

Coordinates are fractional grid units: the cell at column x, row y
spans [x, x+1) horizontally and [y, y+1) vertically, so 0.5 is half a
cell.  Palette indices are zero based.

Decoders for particular file formats live in subpackages: pmaker
decodes Pattern Maker XSD files, ursa reads and writes OXS XML, xspro
reads XSPro palettes.
*/
package xstitch // import "github.com/unixdj/xstitch"

// A FullStitchKind is the shape of a FullStitch.
type FullStitchKind uint8

const (
	Full   FullStitchKind = iota // cross over a whole cell
	Petite                       // cross over a quarter of a cell
)

func (k FullStitchKind) String() string {
	switch k {
	case Full:
		return "full"
	case Petite:
		return "petite"
	}
	return "FullStitchKind(?)"
}

// A PartStitchKind is the coverage of a PartStitch.
type PartStitchKind uint8

const (
	Half    PartStitchKind = iota // one diagonal across a cell
	Quarter                       // one diagonal across a quarter
)

func (k PartStitchKind) String() string {
	switch k {
	case Half:
		return "half"
	case Quarter:
		return "quarter"
	}
	return "PartStitchKind(?)"
}

// A Direction is the diagonal of a PartStitch.
//
// Forward runs from bottom left to top right ("/"), Backward runs from
// top left to bottom right ("\").
type Direction uint8

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	}
	return "Direction(?)"
}

// A LineStitchKind is the kind of a LineStitch.
type LineStitchKind uint8

const (
	Back     LineStitchKind = iota // back stitch
	Straight                       // straight stitch
)

func (k LineStitchKind) String() string {
	switch k {
	case Back:
		return "back"
	case Straight:
		return "straight"
	}
	return "LineStitchKind(?)"
}

// A NodeStitchKind is the kind of a NodeStitch.
type NodeStitchKind uint8

const (
	FrenchKnot NodeStitchKind = iota
	Bead
)

func (k NodeStitchKind) String() string {
	switch k {
	case FrenchKnot:
		return "french knot"
	case Bead:
		return "bead"
	}
	return "NodeStitchKind(?)"
}

// A Point is a position on the pattern grid.
type Point struct {
	X, Y float32
}

// A FullStitch is a full or petite cross.
type FullStitch struct {
	X, Y     float32
	Palindex uint8
	Kind     FullStitchKind
}

// A PartStitch is a half or quarter diagonal.
type PartStitch struct {
	X, Y      float32
	Palindex  uint8
	Kind      PartStitchKind
	Direction Direction
}

// Fraction reports the position of the stitch inside its cell as
// quadrant flags: right is set for the right half, bottom for the
// bottom half.
func (s PartStitch) Fraction() (right, bottom bool) {
	return frac(s.X) >= 0.5, frac(s.Y) >= 0.5
}

func frac(v float32) float32 {
	return v - float32(int(v))
}

// A LineStitch connects two points.
type LineStitch struct {
	X1, Y1   float32
	X2, Y2   float32
	Palindex uint8
	Kind     LineStitchKind
}

// A NodeStitch is a French knot or a bead.  Rotated is only meaningful
// for beads and means the bead lies at 90 or 270 degrees.
type NodeStitch struct {
	X, Y     float32
	Rotated  bool
	Palindex uint8
	Kind     NodeStitchKind
}

// A CurvedStitch is a freeform curve through its control points.
type CurvedStitch struct {
	Points []Point
}

// A Flip mirrors a special stitch model.
type Flip struct {
	Horizontal, Vertical bool
}

// A SpecialStitch places a SpecialStitchModel on the pattern.
// Rotation is in degrees: 0, 90 or 270.  Model is an index into the
// pattern's model list.
type SpecialStitch struct {
	X, Y     float32
	Rotation int
	Flip     Flip
	Palindex uint8
	Model    uint8
}

// A SpecialStitchModel is a reusable named motif.
type SpecialStitchModel struct {
	UniqueName string
	Name       string
	Width      float32
	Height     float32
	Lines      []LineStitch
	Nodes      []NodeStitch
	Curves     []CurvedStitch
}

// A Thread is a palette entry of a thread palette file.  Color is
// RGB in upper-case hex.
type Thread struct {
	Brand  string
	Number string
	Name   string
	Color  string
}
