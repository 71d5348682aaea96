// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package ursa reads and writes the OXS XML interchange format of Ursa
Software and Ursa's thread palette files.

An OXS chart holds a palette whose item 0 is the fabric, full
stitches, part stitches, back and straight stitches, and "ornaments":
petites, French knots and beads.  Palette indices are 1-based in the
XML and 0-based in Pattern.

Quarter stitches are stored in compound form: one partstitch element
per cell and diagonal holds both quarters on that diagonal.  Encode
merges matching quarters, Decode splits them.
*/
package ursa // import "github.com/unixdj/xstitch/ursa"

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/unixdj/xstitch"
)

var (
	ErrMissingSection = errors.New("ursa: missing section")
	ErrPalette        = errors.New("ursa: malformed palette")
	ErrPalindex       = errors.New("ursa: palette index out of range")
	ErrDirection      = errors.New("ursa: bad part stitch direction")
)

// A PaletteItem is a colour of an OXS palette.  Symbol is a character
// or a character code, empty if none.
type PaletteItem struct {
	Number string
	Name   string
	Color  string
	Symbol string
}

// Properties describe an OXS chart.
type Properties struct {
	Software        string
	SoftwareVersion string
	Width, Height   uint16
	Title           string
	Author          string
	Copyright       string
	Instructions    string
	StitchesPerInch [2]uint8 // horizontal, vertical
}

// A Pattern is an OXS chart.  FullStitches holds full stitches and
// petites.
type Pattern struct {
	Properties   Properties
	Fabric       PaletteItem
	Palette      []PaletteItem
	FullStitches []xstitch.FullStitch
	PartStitches []xstitch.PartStitch
	Lines        []xstitch.LineStitch
	Nodes        []xstitch.NodeStitch
}

// coord is a grid coordinate attribute.
type coord float32

func (c coord) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	return xml.Attr{Name: name, Value: strconv.FormatFloat(float64(c), 'f', -1, 32)}, nil
}

func (c *coord) UnmarshalXMLAttr(attr xml.Attr) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(attr.Value), 32)
	if err != nil {
		return fmt.Errorf("ursa: attribute %s: %w", attr.Name.Local, err)
	}
	*c = coord(v)
	return nil
}

type chart struct {
	XMLName      xml.Name    `xml:"chart"`
	Format       *format     `xml:"format"`
	Properties   *properties `xml:"properties"`
	Palette      *palette    `xml:"palette"`
	FullStitches struct {
		Stitches []fullStitch `xml:"stitch"`
	} `xml:"fullstitches"`
	PartStitches struct {
		Stitches []partStitch `xml:"partstitch"`
	} `xml:"partstitches"`
	BackStitches struct {
		Stitches []backStitch `xml:"backstitch"`
	} `xml:"backstitches"`
	Ornaments struct {
		Objects []object `xml:"object"`
	} `xml:"ornaments_inc_knots_and_beads"`
}

type format struct {
	Comments01 string `xml:"comments01,attr"`
	Comments02 string `xml:"comments02,attr"`
	Comments03 string `xml:"comments03,attr"`
	Comments04 string `xml:"comments04,attr"`
	Comments05 string `xml:"comments05,attr"`
	Comments06 string `xml:"comments06,attr"`
	Comments07 string `xml:"comments07,attr"`
	Comments08 string `xml:"comments08,attr"`
	Comments09 string `xml:"comments09,attr"`
	Comments10 string `xml:"comments10,attr"`
	Comments11 string `xml:"comments11,attr"`
	Comments12 string `xml:"comments12,attr"`
	Comments13 string `xml:"comments13,attr"`
}

var formatComments = format{
	"Designed to allow interchange of basic pattern data between any cross stitch style software",
	"the 'properties' section establishes size, copyright, authorship and software used",
	"The features of each software package varies, but using XML each can pick out the things it can deal with, while ignoring others",
	"The basic items are :",
	"'palette'..a set of colors used in the design: palettecount excludes cloth color, which is item 0",
	"'fullstitches'.. simple crosses",
	"'backstitches'.. lines/objects with a start and end point",
	"(There is a wide variety of ways of treating part stitches, knots, beads and so on.)",
	"Colors are expressed in hex RGB format.",
	"Decimal numbers use US/UK format where '.' is the indicator - eg 0.5 is 'half'",
	"For readability, please use words not enumerations",
	"The properties, fullstitches, and backstitches elements should be considered mandatory, even if empty",
	"element and attribute names are always lowercase",
}

type properties struct {
	OXSVersion       string `xml:"oxsversion,attr"`
	Software         string `xml:"software,attr"`
	SoftwareVersion  string `xml:"software_version,attr"`
	Width            uint16 `xml:"chartwidth,attr"`
	Height           uint16 `xml:"chartheight,attr"`
	Title            string `xml:"charttitle,attr"`
	Author           string `xml:"author,attr"`
	Copyright        string `xml:"copyright,attr"`
	Instructions     string `xml:"instructions,attr"`
	StitchesPerInch  uint8  `xml:"stitchesperinch,attr"`
	StitchesPerInchY uint8  `xml:"stitchesperinch_y,attr"`
	PaletteCount     int    `xml:"palettecount,attr"`
}

type palette struct {
	Items []paletteItem `xml:"palette_item"`
}

type paletteItem struct {
	Index  int    `xml:"index,attr"`
	Number string `xml:"number,attr"`
	Name   string `xml:"name,attr"`
	Color  string `xml:"color,attr"`
	Symbol string `xml:"symbol,attr,omitempty"`
}

type fullStitch struct {
	X        coord `xml:"x,attr"`
	Y        coord `xml:"y,attr"`
	Palindex int   `xml:"palindex,attr"`
}

type partStitch struct {
	X         coord `xml:"x,attr"`
	Y         coord `xml:"y,attr"`
	Palindex1 int   `xml:"palindex1,attr"`
	Palindex2 int   `xml:"palindex2,attr"`
	Direction int   `xml:"direction,attr"`
}

type backStitch struct {
	X1         coord  `xml:"x1,attr"`
	X2         coord  `xml:"x2,attr"`
	Y1         coord  `xml:"y1,attr"`
	Y2         coord  `xml:"y2,attr"`
	Palindex   int    `xml:"palindex,attr"`
	ObjectType string `xml:"objecttype,attr"`
}

type object struct {
	X1         coord  `xml:"x1,attr"`
	Y1         coord  `xml:"y1,attr"`
	Palindex   int    `xml:"palindex,attr"`
	ObjectType string `xml:"objecttype,attr"`
}

// Object types.
const (
	typeBackStitch     = "backstitch"
	typeStraightStitch = "straightstitch"
	typePetite         = "quarter" // sic
	typeKnot           = "knot"
	typeBead           = "bead"
)

// Part stitch directions.
const (
	dirQuarterForward = 1 + iota
	dirQuarterBackward
	dirHalfForward
	dirHalfBackward
)

func direction(s xstitch.PartStitch) int {
	d := dirQuarterForward
	if s.Kind == xstitch.Half {
		d = dirHalfForward
	}
	if s.Direction == xstitch.Backward {
		d++
	}
	return d
}

// Encode writes p to w as an OXS document.
func Encode(w io.Writer, p *Pattern) error {
	c := chart{
		Format: &formatComments,
		Properties: &properties{
			OXSVersion:       "1.0",
			Software:         p.Properties.Software,
			SoftwareVersion:  p.Properties.SoftwareVersion,
			Width:            p.Properties.Width,
			Height:           p.Properties.Height,
			Title:            p.Properties.Title,
			Author:           p.Properties.Author,
			Copyright:        p.Properties.Copyright,
			Instructions:     p.Properties.Instructions,
			StitchesPerInch:  p.Properties.StitchesPerInch[0],
			StitchesPerInchY: p.Properties.StitchesPerInch[1],
			PaletteCount:     len(p.Palette),
		},
		Palette: &palette{Items: make([]paletteItem, 0, len(p.Palette)+1)},
	}
	items := append([]PaletteItem{p.Fabric}, p.Palette...)
	for i, it := range items {
		c.Palette.Items = append(c.Palette.Items, paletteItem{
			Index:  i,
			Number: it.Number,
			Name:   it.Name,
			Color:  it.Color,
			Symbol: it.Symbol,
		})
	}
	for _, s := range p.FullStitches {
		switch s.Kind {
		case xstitch.Full:
			c.FullStitches.Stitches = append(c.FullStitches.Stitches, fullStitch{
				X: coord(s.X), Y: coord(s.Y), Palindex: int(s.Palindex) + 1,
			})
		case xstitch.Petite:
			c.Ornaments.Objects = append(c.Ornaments.Objects, object{
				X1: coord(s.X), Y1: coord(s.Y), Palindex: int(s.Palindex) + 1,
				ObjectType: typePetite,
			})
		}
	}
	var err error
	if c.PartStitches.Stitches, err = compoundParts(p.PartStitches); err != nil {
		return err
	}
	for _, s := range p.Lines {
		t := typeBackStitch
		if s.Kind == xstitch.Straight {
			t = typeStraightStitch
		}
		c.BackStitches.Stitches = append(c.BackStitches.Stitches, backStitch{
			X1: coord(s.X1), X2: coord(s.X2), Y1: coord(s.Y1), Y2: coord(s.Y2),
			Palindex: int(s.Palindex) + 1, ObjectType: t,
		})
	}
	for _, s := range p.Nodes {
		t := typeKnot
		if s.Kind == xstitch.Bead {
			t = typeBead
		}
		c.Ornaments.Objects = append(c.Ornaments.Objects, object{
			X1: coord(s.X), Y1: coord(s.Y), Palindex: int(s.Palindex) + 1,
			ObjectType: t,
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	e := xml.NewEncoder(w)
	e.Indent("", "  ")
	if err := e.Encode(&c); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

/*
compoundParts merges quarter stitches into compound part stitches.

The two quarters on a forward diagonal are bottom left (palindex1) and
top right (palindex2); on a backward diagonal, top left (palindex1)
and bottom right (palindex2).  Quarters are merged when they share the
cell, palette index and direction.  A half stitch uses palindex1 only.
*/
func compoundParts(parts []xstitch.PartStitch) ([]partStitch, error) {
	quarters := make(map[xstitch.PartStitch]bool) // true once written
	for _, s := range parts {
		if s.Kind == xstitch.Quarter {
			quarters[s] = false
		}
	}
	var out []partStitch
	for _, s := range parts {
		cx, cy := trunc(s.X), trunc(s.Y)
		ps := partStitch{X: coord(cx), Y: coord(cy), Direction: direction(s)}
		if s.Kind == xstitch.Half {
			ps.Palindex1 = int(s.Palindex) + 1
			out = append(out, ps)
			continue
		}
		if quarters[s] {
			continue
		}
		right, bottom := s.Fraction()
		if (right == bottom) != (s.Direction == xstitch.Backward) {
			return nil, fmt.Errorf("%w: %v quarter stitch at (%v, %v)",
				ErrDirection, s.Direction, s.X, s.Y)
		}
		// Positions of the quarters of palindex1 and palindex2.
		slots := [2]xstitch.Point{{X: cx, Y: cy + 0.5}, {X: cx + 0.5, Y: cy}}
		if s.Direction == xstitch.Backward {
			slots = [2]xstitch.Point{{X: cx, Y: cy}, {X: cx + 0.5, Y: cy + 0.5}}
		}
		pal := [2]*int{&ps.Palindex1, &ps.Palindex2}
		own := 0
		if right {
			own = 1
		}
		*pal[own] = int(s.Palindex) + 1
		quarters[s] = true
		q := s
		q.X, q.Y = slots[1-own].X, slots[1-own].Y
		if written, ok := quarters[q]; ok && !written {
			*pal[1-own] = int(q.Palindex) + 1
			quarters[q] = true
		}
		out = append(out, ps)
	}
	return out, nil
}

func trunc(v float32) float32 { return float32(int(v)) }

// Decode reads an OXS document.  The properties and palette sections
// are required.
func Decode(r io.Reader) (*Pattern, error) {
	var c chart
	if err := xml.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("ursa: %w", err)
	}
	if c.Properties == nil {
		return nil, fmt.Errorf("%w: properties", ErrMissingSection)
	}
	if c.Palette == nil {
		return nil, fmt.Errorf("%w: palette", ErrMissingSection)
	}
	pr := c.Properties
	p := &Pattern{Properties: Properties{
		Software:        pr.Software,
		SoftwareVersion: pr.SoftwareVersion,
		Width:           pr.Width,
		Height:          pr.Height,
		Title:           pr.Title,
		Author:          pr.Author,
		Copyright:       pr.Copyright,
		Instructions:    pr.Instructions,
		StitchesPerInch: [2]uint8{pr.StitchesPerInch, pr.StitchesPerInchY},
	}}

	items := c.Palette.Items
	if pr.PaletteCount < 0 || len(items) == 0 || len(items)-1 < pr.PaletteCount {
		return nil, fmt.Errorf("%w: %d items, palettecount %d",
			ErrPalette, len(items), pr.PaletteCount)
	}
	conv := func(it paletteItem) PaletteItem {
		return PaletteItem{Number: it.Number, Name: it.Name, Color: it.Color, Symbol: it.Symbol}
	}
	p.Fabric = conv(items[0])
	for _, it := range items[1 : pr.PaletteCount+1] {
		p.Palette = append(p.Palette, conv(it))
	}

	palindex := func(v int) (uint8, error) {
		if v < 1 || v > len(p.Palette) {
			return 0, fmt.Errorf("%w: %d of %d", ErrPalindex, v, len(p.Palette))
		}
		return uint8(v - 1), nil
	}
	for _, s := range c.FullStitches.Stitches {
		pal, err := palindex(s.Palindex)
		if err != nil {
			return nil, err
		}
		p.FullStitches = append(p.FullStitches, xstitch.FullStitch{
			X: float32(s.X), Y: float32(s.Y), Palindex: pal, Kind: xstitch.Full,
		})
	}
	for _, s := range c.PartStitches.Stitches {
		if err := p.splitPart(s, palindex); err != nil {
			return nil, err
		}
	}
	for _, s := range c.BackStitches.Stitches {
		pal, err := palindex(s.Palindex)
		if err != nil {
			return nil, err
		}
		l := xstitch.LineStitch{
			X1: float32(s.X1), Y1: float32(s.Y1), X2: float32(s.X2), Y2: float32(s.Y2),
			Palindex: pal, Kind: xstitch.Back,
		}
		if s.ObjectType == typeStraightStitch {
			l.Kind = xstitch.Straight
		}
		p.Lines = append(p.Lines, l)
	}
	for _, o := range c.Ornaments.Objects {
		var (
			full *xstitch.FullStitch
			node *xstitch.NodeStitch
		)
		x, y := float32(o.X1), float32(o.Y1)
		switch {
		case o.ObjectType == typePetite:
			full = &xstitch.FullStitch{X: x, Y: y, Kind: xstitch.Petite}
		case o.ObjectType == typeKnot:
			node = &xstitch.NodeStitch{X: x, Y: y, Kind: xstitch.FrenchKnot}
		case strings.HasPrefix(o.ObjectType, typeBead):
			node = &xstitch.NodeStitch{X: x, Y: y, Kind: xstitch.Bead}
		default:
			continue
		}
		pal, err := palindex(o.Palindex)
		if err != nil {
			return nil, err
		}
		if full != nil {
			full.Palindex = pal
			p.FullStitches = append(p.FullStitches, *full)
		} else {
			node.Palindex = pal
			p.Nodes = append(p.Nodes, *node)
		}
	}
	return p, nil
}

// splitPart appends the stitches of a compound part stitch.  A zero
// palette index means no stitch.
func (p *Pattern) splitPart(s partStitch, palindex func(int) (uint8, error)) error {
	x, y := float32(s.X), float32(s.Y)
	var (
		kind  = xstitch.Quarter
		dir   = xstitch.Forward
		slots [2]xstitch.Point
	)
	switch s.Direction {
	case dirQuarterForward:
		slots = [2]xstitch.Point{{X: x, Y: y + 0.5}, {X: x + 0.5, Y: y}}
	case dirQuarterBackward:
		dir = xstitch.Backward
		slots = [2]xstitch.Point{{X: x, Y: y}, {X: x + 0.5, Y: y + 0.5}}
	case dirHalfForward, dirHalfBackward:
		kind = xstitch.Half
		if s.Direction == dirHalfBackward {
			dir = xstitch.Backward
		}
		slots = [2]xstitch.Point{{X: x, Y: y}, {X: x, Y: y}}
	default:
		return fmt.Errorf("%w %d at (%v, %v)", ErrDirection, s.Direction, x, y)
	}
	for i, v := range [2]int{s.Palindex1, s.Palindex2} {
		if v == 0 {
			continue
		}
		pal, err := palindex(v)
		if err != nil {
			return err
		}
		p.PartStitches = append(p.PartStitches, xstitch.PartStitch{
			X: slots[i].X, Y: slots[i].Y, Palindex: pal, Kind: kind, Direction: dir,
		})
	}
	return nil
}
