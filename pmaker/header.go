// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pmaker

import "fmt"

// Field sizes.
const (
	colorNumberLength      = 10
	colorNameLength        = 40
	maxBlends              = 4 // colours per blend
	blendSize              = 1 + colorNumberLength + 1
	patternNameLength      = 40
	authorNameLength       = 40
	companyNameLength      = 40
	copyrightLength        = 200
	patternNotesLength     = 2048
	fabricColorNameLength  = 40
	fabricKindNameLength   = 40
	fontNameLength         = 32
	pageHeaderFooterLength = 119
	formatLength           = 240 // maximum palette size
	stitchTypes            = 9   // full, petite, half, quarter, back, straight, knot, bead, special
	formatSize             = 10
	fontFormatSize         = 53
	unknownFormats         = 4
)

// NoSymbol is a Symbol value meaning no symbol.
const NoSymbol Symbol = 0xffff

// A Symbol is a character code in the symbol font.
type Symbol uint16

// Version is the version of the program that wrote the file.
type Version [4]uint16

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v[1], v[0], v[3], v[2])
}

// PatternInfo holds descriptive text.
type PatternInfo struct {
	Title, Author, Company, Copyright, Description string
}

// Fabric describes the cloth.
type Fabric struct {
	Width, Height   int
	StitchesPerInch [2]uint8 // horizontal, vertical
	Kind            string
	Name            string
	Color           string
}

// StitchStrands holds a strand count per stitch type.
type StitchStrands struct {
	Full, Petite, Half, Quarter, Back, Straight, FrenchKnot, Special uint8
}

// A PaletteItem is a thread colour.  BrandID is the brand in the
// file; Brand is its name, empty if unknown.  Strands are the strand
// counts of the colour, zero meaning the pattern default; they are
// nil in palette files.
type PaletteItem struct {
	BrandID uint8
	Brand   string
	Number  string
	Name    string
	Color   string
	Blends  []Blend
	Bead    *Bead
	Strands *StitchStrands
}

// A Blend is a thread of a blended colour.
type Blend struct {
	BrandID uint8
	Brand   string
	Number  string
	Strands uint8
}

// Bead dimensions in millimetres.
type Bead struct {
	Length, Diameter float32
}

// Formats holds the display formats of a palette item.
type Formats struct {
	Symbol         SymbolFormat
	BackStitch     LineStitchFormat
	StraightStitch LineStitchFormat
	FrenchKnot     NodeStitchFormat
	Bead           NodeStitchFormat
	SpecialStitch  LineStitchFormat
	Font           FontFormat
}

type SymbolFormat struct {
	UseAltBgColor bool
	BgColor       string
	FgColor       string
}

type LineStitchFormat struct {
	UseAltColor bool
	Color       string
	Style       uint16
	Thickness   float32
}

type NodeStitchFormat struct {
	UseDotStyle bool
	UseAltColor bool
	Color       string
	Thickness   float32
}

// FontFormat is the symbol font of a palette item.  FontName is
// empty for the default font.
type FontFormat struct {
	FontName        string
	Bold, Italic    bool
	StitchSize      uint8
	SmallStitchSize uint8
}

// Symbols holds the chart symbols of a palette item.
type Symbols struct {
	Full, Petite, Half, Quarter, FrenchKnot, Bead Symbol
}

type Grid struct {
	MajorLinesInterval uint16
	MinorScreenLines   GridLineStyle
	MajorScreenLines   GridLineStyle
	MinorPrinterLines  GridLineStyle
	MajorPrinterLines  GridLineStyle
}

// GridLineStyle is a grid line colour and thickness in points.
type GridLineStyle struct {
	Color     string
	Thickness float32
}

type PatternSettings struct {
	DefaultStitchFont           string
	View, Zoom                  uint16
	ShowGrid                    bool
	ShowRulers                  bool
	ShowCenteringMarks          bool
	ShowFabricColorsWithSymbols bool
	GapsBetweenStitches         bool
}

type StitchSettings struct {
	DefaultStrands StitchStrands
	// Line thickness for 1 to 12 strands, then French knots.
	DisplayThickness [13]float32
	OutlinedStitches bool
	StitchOutline    StitchOutline
}

// StitchOutline is the outline of stitches.  Color is empty when the
// outline uses ColorPercentage of the stitch colour.
type StitchOutline struct {
	Color           string
	ColorPercentage uint8
	Thickness       float32
}

type SymbolSettings struct {
	ScreenSpacing                     [2]uint16
	PrinterSpacing                    [2]uint16
	ScaleUsingMaximumFontWidth        bool
	ScaleUsingFontHeight              bool
	StitchSize                        uint8
	SmallStitchSize                   uint8
	DrawSymbolsOverBackstitches       bool
	ShowStitchColor                   bool
	UseLargeHalfStitchSymbol          bool
	UseTrianglesBehindQuarterStitches bool
}

type PrintSettings struct {
	Font                    Font
	Header, Footer          string
	Margins                 PageMargins
	ShowPageNumbers         bool
	ShowAdjacentPageNumbers bool
	CenterChartOnPages      bool
}

type Font struct {
	Name   string
	Size   uint16
	Weight uint16
	Italic bool
}

// PageMargins in inches.
type PageMargins struct {
	Left, Right, Top, Bottom, Header, Footer float32
}

func (d *decoder) version(f *fields) Version {
	var v Version
	for i := range v {
		v[i] = f.u16()
	}
	return v
}

// palette reads the palette and the per-colour sections following it.
func (d *decoder) palette(f *fields) []PaletteItem {
	d.log.V(1).Info("reading palette", "offset", f.r.Offset())
	n := int(f.u16())
	if f.err == nil && n > formatLength {
		f.fail(fmt.Errorf("%w: %d colours", ErrPaletteSize, n))
	}
	if f.err != nil {
		return nil
	}
	palette := make([]PaletteItem, n)
	for i := range palette {
		palette[i] = d.paletteItem(f)
	}
	f.skip(n * 2) // positions
	for range palette {
		for k := 0; k < stitchTypes; k++ {
			f.skip(int(f.u16())) // notes
		}
	}
	for i := range palette {
		s := strands(f)
		palette[i].Strands = &s
	}
	return palette
}

func (d *decoder) paletteItem(f *fields) PaletteItem {
	var p PaletteItem
	f.skip(2)
	p.BrandID = f.u8()
	p.Brand = d.brands[p.BrandID]
	p.Number = f.cstring(colorNumberLength)
	p.Name = f.cstring(colorNameLength)
	p.Color = f.color()
	f.skip(1)

	n := int(f.u16())
	if f.err == nil && n > maxBlends {
		f.fail(fmt.Errorf("%w: %d at offset %d", ErrBlendCount, n, f.r.Offset()))
	}
	if f.err == nil && n > 0 {
		p.Blends = make([]Blend, n)
		for i := range p.Blends {
			id := f.u8()
			if id == 0xff {
				id = 0
			}
			p.Blends[i] = Blend{
				BrandID: id,
				Brand:   d.brands[id],
				Number:  f.cstring(colorNumberLength),
			}
		}
	}
	f.skip((maxBlends - n) * blendSize)
	for i := range p.Blends {
		p.Blends[i].Strands = f.u8()
	}
	f.skip(maxBlends - n)

	if f.u32() == 1 {
		p.Bead = &Bead{Length: f.tenths(), Diameter: f.tenths()}
	} else {
		f.skip(4)
	}
	f.skip(2)
	return p
}

func strands(f *fields) StitchStrands {
	var s StitchStrands
	for _, v := range []*uint8{
		&s.Full, &s.Half, &s.Quarter, &s.Back,
		&s.FrenchKnot, &s.Petite, &s.Special, &s.Straight,
	} {
		*v = uint8(f.u16())
	}
	return s
}

func (d *decoder) formats(f *fields, n int) []Formats {
	d.log.V(1).Info("reading formats", "offset", f.r.Offset())
	fm := make([]Formats, n)
	pad := func(size int) { f.skip((formatLength - n) * size) }
	for i := range fm {
		s := &fm[i].Symbol
		s.UseAltBgColor = f.flag()
		s.BgColor = f.color()
		f.skip(1)
		s.FgColor = f.color()
		f.skip(1)
	}
	pad(formatSize)
	lines := func(get func(*Formats) *LineStitchFormat) {
		for i := range fm {
			l := get(&fm[i])
			l.UseAltColor = f.flag()
			l.Color = f.color()
			f.skip(1)
			l.Style = f.u16()
			l.Thickness = f.tenths()
		}
		pad(formatSize)
	}
	nodes := func(get func(*Formats) *NodeStitchFormat) {
		for i := range fm {
			l := get(&fm[i])
			l.UseDotStyle = f.flag()
			l.Color = f.color()
			f.skip(1)
			l.UseAltColor = f.flag()
			l.Thickness = f.tenths()
		}
		pad(formatSize)
	}
	lines(func(x *Formats) *LineStitchFormat { return &x.BackStitch })
	f.skip(formatLength * formatSize * unknownFormats)
	lines(func(x *Formats) *LineStitchFormat { return &x.SpecialStitch })
	lines(func(x *Formats) *LineStitchFormat { return &x.StraightStitch })
	nodes(func(x *Formats) *NodeStitchFormat { return &x.FrenchKnot })
	nodes(func(x *Formats) *NodeStitchFormat { return &x.Bead })
	for i := range fm {
		s := &fm[i].Font
		if s.FontName = f.cstring(fontNameLength); s.FontName == "default" {
			s.FontName = ""
		}
		f.skip(2)
		s.Bold = f.u16() == 700
		s.Italic = f.u8() == 1
		f.skip(11)
		s.StitchSize = uint8(f.u16())
		s.SmallStitchSize = uint8(f.u16())
	}
	pad(fontFormatSize)
	return fm
}

func (d *decoder) symbols(f *fields, n int) []Symbols {
	d.log.V(1).Info("reading symbols", "offset", f.r.Offset())
	s := make([]Symbols, n)
	for i := range s {
		s[i] = Symbols{
			Full:       Symbol(f.u16()),
			Petite:     Symbol(f.u16()),
			Half:       Symbol(f.u16()),
			Quarter:    Symbol(f.u16()),
			FrenchKnot: Symbol(f.u16()),
			Bead:       Symbol(f.u16()),
		}
	}
	return s
}

func (d *decoder) patternAndPrintSettings(f *fields) (PatternSettings, PrintSettings) {
	d.log.V(1).Info("reading pattern and print settings", "offset", f.r.Offset())
	var (
		ps PatternSettings
		pr PrintSettings
	)
	ps.DefaultStitchFont = f.cstring(fontNameLength)
	f.skip(20)
	pr.Font.Name = f.cstring(fontNameLength)
	pr.Font.Size = f.u16()
	pr.Font.Weight = f.u16()
	pr.Font.Italic = f.flag()
	f.skip(10)
	ps.View = f.u16()
	ps.Zoom = f.u16()
	ps.ShowGrid = f.flag()
	ps.ShowRulers = f.flag()
	ps.ShowCenteringMarks = f.flag()
	ps.ShowFabricColorsWithSymbols = f.flag()
	f.skip(4)
	ps.GapsBetweenStitches = f.flag()

	pr.Header = f.cstring(pageHeaderFooterLength)
	pr.Footer = f.cstring(pageHeaderFooterLength)
	pr.Margins = PageMargins{
		Left:   f.hundredths(),
		Right:  f.hundredths(),
		Top:    f.hundredths(),
		Bottom: f.hundredths(),
		Header: f.hundredths(),
		Footer: f.hundredths(),
	}
	pr.ShowPageNumbers = f.flag()
	pr.ShowAdjacentPageNumbers = f.flag()
	pr.CenterChartOnPages = f.flag()
	f.skip(2)
	return ps, pr
}

func (d *decoder) grid(f *fields) Grid {
	d.log.V(1).Info("reading grid", "offset", f.r.Offset())
	style := func() GridLineStyle {
		// Thousandths of an inch, in points.
		t := float32(uint32(f.u16())*72) / 1000
		f.skip(2)
		c := f.color()
		f.skip(3)
		return GridLineStyle{Color: c, Thickness: t}
	}
	var g Grid
	g.MajorLinesInterval = f.u16()
	f.skip(2)
	g.MinorScreenLines = style()
	g.MajorScreenLines = style()
	g.MinorPrinterLines = style()
	g.MajorPrinterLines = style()
	f.skip(12)
	return g
}

func (d *decoder) patternInfo(f *fields) PatternInfo {
	d.log.V(1).Info("reading pattern info", "offset", f.r.Offset())
	return PatternInfo{
		Title:       f.cstring(patternNameLength),
		Author:      f.cstring(authorNameLength),
		Company:     f.cstring(companyNameLength),
		Copyright:   f.cstring(copyrightLength),
		Description: f.cstring(patternNotesLength),
	}
}

func (d *decoder) stitchSettings(f *fields) StitchSettings {
	d.log.V(1).Info("reading stitch settings", "offset", f.r.Offset())
	var s StitchSettings
	ds := &s.DefaultStrands
	for _, v := range []*uint8{
		&ds.Full, &ds.Half, &ds.Quarter, &ds.Back,
		&ds.Petite, &ds.Special, &ds.Straight,
	} {
		*v = uint8(f.u16())
	}
	ds.FrenchKnot = 2 // not stored
	for i := range s.DisplayThickness {
		s.DisplayThickness[i] = f.tenths()
	}
	s.OutlinedStitches = f.flag()
	useColor := f.flag()
	s.StitchOutline.ColorPercentage = uint8(f.u16())
	if useColor {
		s.StitchOutline.Color = f.color()
		f.skip(1)
	} else {
		f.skip(4)
	}
	s.StitchOutline.Thickness = f.tenths()
	return s
}

func (d *decoder) symbolSettings(f *fields) SymbolSettings {
	d.log.V(1).Info("reading symbol settings", "offset", f.r.Offset())
	var s SymbolSettings
	s.ScreenSpacing = [2]uint16{f.u16(), f.u16()}
	s.PrinterSpacing = [2]uint16{f.u16(), f.u16()}
	s.ScaleUsingMaximumFontWidth = f.flag()
	s.ScaleUsingFontHeight = f.flag()
	s.SmallStitchSize = uint8(f.u16())
	s.ShowStitchColor = f.flag()
	s.UseLargeHalfStitchSymbol = f.flag()
	f.skip(6)
	s.StitchSize = uint8(f.u16())
	s.UseTrianglesBehindQuarterStitches = f.flag()
	s.DrawSymbolsOverBackstitches = f.flag()
	f.skip(2)
	return s
}
