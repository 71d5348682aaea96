// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pmaker

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/unixdj/xstitch"
	"github.com/unixdj/xstitch/wire"
)

// A jointKind tags a joint record.
type jointKind uint16

const (
	jointFrenchKnot jointKind = 1 + iota
	jointBack
	jointCurve
	jointSpecial
	jointStraight
	jointBead
)

// Curve points are stored in fifteenths of the joint coordinate unit.
const curveResolution = 15

// Joints are the stitches decoded from a joint record stream.
type Joints struct {
	Lines    []xstitch.LineStitch
	Nodes    []xstitch.NodeStitch
	Specials []xstitch.SpecialStitch
	Curves   []xstitch.CurvedStitch
}

/*
Orientations of special stitches.  The four parameters of a placement
form a 2x2 matrix of signed unit values, 0xffff being -1.  Only these
combinations have been seen in files; anything else, the identity
included, means no rotation and no flip.
*/
var orientations = [...]struct {
	m        [4]uint16
	rotation int
	flip     xstitch.Flip
}{
	{[4]uint16{0xffff, 0, 0, 1}, 0, xstitch.Flip{Horizontal: true}},
	{[4]uint16{1, 0, 0, 0xffff}, 0, xstitch.Flip{Vertical: true}},
	{[4]uint16{0xffff, 0, 0, 0xffff}, 0, xstitch.Flip{Horizontal: true, Vertical: true}},
	{[4]uint16{0, 0xffff, 1, 0}, 90, xstitch.Flip{}},
	{[4]uint16{0, 1, 0xffff, 0}, 270, xstitch.Flip{}},
	{[4]uint16{0, 1, 1, 0}, 90, xstitch.Flip{Vertical: true}},
	{[4]uint16{0, 0xffff, 0xffff, 0}, 90, xstitch.Flip{Horizontal: true}},
}

var identity = [4]uint16{1, 0, 0, 1}

// orientation returns the rotation and flip for placement parameters m,
// and whether m is a known combination.
func orientation(m [4]uint16) (int, xstitch.Flip, bool) {
	for _, o := range orientations {
		if o.m == m {
			return o.rotation, o.flip, true
		}
	}
	return 0, xstitch.Flip{}, false
}

// DecodeJoints decodes count joint records: French knots, beads, back
// and straight stitches, curves and special stitch placements.
func DecodeJoints(r *wire.Reader, count int) (Joints, error) {
	return decodeJoints(r, count, logr.Discard())
}

func decodeJoints(r *wire.Reader, count int, log logr.Logger) (Joints, error) {
	f := fields{r: r}
	var j Joints
	for i := 0; i < count && f.err == nil; i++ {
		off := r.Offset()
		kind := jointKind(f.u16())
		if f.err != nil {
			break
		}
		switch kind {
		case jointFrenchKnot:
			f.skip(2)
			x, y := f.coord(), f.coord()
			f.skip(4)
			pal := f.u8()
			f.skip(1)
			j.Nodes = append(j.Nodes, xstitch.NodeStitch{
				X: x, Y: y, Palindex: pal, Kind: xstitch.FrenchKnot,
			})

		case jointBead:
			f.skip(2)
			x, y := f.coord(), f.coord()
			pal := f.u8()
			f.skip(1)
			rot := f.u16()
			j.Nodes = append(j.Nodes, xstitch.NodeStitch{
				X: x, Y: y, Palindex: pal, Kind: xstitch.Bead,
				Rotated: rot == 90 || rot == 270,
			})

		case jointBack, jointStraight:
			f.skip(2)
			s := xstitch.LineStitch{Kind: xstitch.Back}
			s.X1, s.Y1 = f.coord(), f.coord()
			s.X2, s.Y2 = f.coord(), f.coord()
			s.Palindex = f.u8()
			f.skip(1)
			if kind == jointStraight {
				s.Kind = xstitch.Straight
			}
			j.Lines = append(j.Lines, s)

		case jointCurve:
			f.skip(3)
			n := int(f.u16())
			if f.err == nil && n*4 > r.Len() {
				f.fail(fmt.Errorf("%w: curve of %d points at offset %d",
					wire.ErrTruncated, n, off))
			}
			if f.err != nil {
				break
			}
			c := xstitch.CurvedStitch{Points: make([]xstitch.Point, n)}
			for k := range c.Points {
				c.Points[k] = xstitch.Point{
					X: float32(f.u16()) / curveResolution / 2,
					Y: float32(f.u16()) / curveResolution / 2,
				}
			}
			j.Curves = append(j.Curves, c)

		case jointSpecial:
			f.skip(2)
			s := xstitch.SpecialStitch{Palindex: f.u8()}
			f.skip(4)
			s.X, s.Y = f.coord(), f.coord()
			var m [4]uint16
			for k := range m {
				m[k] = f.u16()
			}
			var ok bool
			if s.Rotation, s.Flip, ok = orientation(m); !ok && m != identity && f.err == nil {
				log.V(1).Info("unknown special stitch orientation",
					"offset", off, "matrix", m)
			}
			f.skip(2)
			s.Model = uint8(f.u16())
			j.Specials = append(j.Specials, s)

		default:
			return Joints{}, fmt.Errorf("%w %d at offset %d", ErrJointKind, kind, off)
		}
	}
	if f.err != nil {
		return Joints{}, fmt.Errorf("joints: %w", f.err)
	}
	return j, nil
}
