// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package pmaker decodes Pattern Maker for Cross Stitch XSD files.

The format is undocumented.  Its layout is known from reverse
engineering and is read by walking fixed, ordered sections.  Unknown
bytes are skipped.

The stitch grid is stored as an obfuscated, run-length compressed
stream of one 32-bit record per cell.  A record holds either a full
stitch, nothing, or a reference to a small stitch buffer describing
petite, half and quarter stitches.  Knots, beads, lines, curves and
special stitch placements are stored in a separate stream of joint
records.  Special stitch models, reusable motifs, consist of joint
streams of their own.

Decode decodes a whole file.  DecodeStitchGrid, DecodeJoints and
DecodeSpecialStitchModels decode single sections for callers walking
the file themselves.  All functions are safe for concurrent use.
*/
package pmaker // import "github.com/unixdj/xstitch/pmaker"

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-logr/logr"

	"github.com/unixdj/xstitch"
	"github.com/unixdj/xstitch/wire"
)

// Signature opens XSD files and special stitch model sub-sections.
const Signature = 0x0510

var (
	ErrSignature        = errors.New("pmaker: bad signature")
	ErrSmallStitchIndex = errors.New("pmaker: small stitch index out of range")
	ErrJointKind        = errors.New("pmaker: unknown joint kind")
	ErrPaletteSize      = errors.New("pmaker: palette too large")
	ErrBlendCount       = errors.New("pmaker: too many blend colours")
)

// Options control decoding.  A nil *Options is valid and uses the
// defaults.
type Options struct {
	// Logger receives progress at V(1) and the file version at V(0).
	// The zero Logger discards.
	Logger logr.Logger

	// Brands names thread brands.  If nil, DefaultBrands is used.
	Brands Brands
}

// A Pattern is a decoded XSD file.
type Pattern struct {
	Version Version
	Info    PatternInfo
	Fabric  Fabric
	Palette []PaletteItem
	Formats []Formats
	Symbols []Symbols

	FullStitches []xstitch.FullStitch
	PartStitches []xstitch.PartStitch
	Lines        []xstitch.LineStitch
	Nodes        []xstitch.NodeStitch
	Specials     []xstitch.SpecialStitch
	Curves       []xstitch.CurvedStitch
	Models       []xstitch.SpecialStitchModel

	Grid            Grid
	PatternSettings PatternSettings
	StitchSettings  StitchSettings
	SymbolSettings  SymbolSettings
	PrintSettings   PrintSettings
}

// decoder holds the options of a decoding call.
type decoder struct {
	log    logr.Logger
	brands Brands
}

func newDecoder(opt *Options) *decoder {
	d := &decoder{log: logr.Discard(), brands: DefaultBrands()}
	if opt != nil {
		if opt.Logger.GetSink() != nil {
			d.log = opt.Logger
		}
		if opt.Brands != nil {
			d.brands = opt.Brands
		}
	}
	return d
}

// DecodeReader reads all of r and decodes it.  Gzip and zstd
// compressed files are decompressed first.
func DecodeReader(r io.Reader, opt *Options) (*Pattern, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(data, opt)
}

// Decode decodes an XSD file.  It returns a complete pattern or an
// error, never a partial pattern.
func Decode(data []byte, opt *Options) (*Pattern, error) {
	return newDecoder(opt).decode(wire.NewReader(data))
}

func (d *decoder) decode(r *wire.Reader) (*Pattern, error) {
	f := &fields{r: r}
	if sig := f.u16(); f.err == nil && sig != Signature {
		return nil, fmt.Errorf("%w: expected %#06x, found %#06x",
			ErrSignature, Signature, sig)
	}
	f.skip(4)
	v := d.version(f)
	if f.err == nil {
		d.log.Info("pattern maker file", "version", v.String())
	}
	f.skip(727)

	p := &Pattern{Version: v}
	p.Fabric.Width = int(f.u16())
	p.Fabric.Height = int(f.u16())
	smallStitches := int(f.u32())
	joints := int(f.u16())
	p.Fabric.StitchesPerInch = [2]uint8{uint8(f.u16()), uint8(f.u16())}
	f.skip(6)

	p.Palette = d.palette(f)
	p.Formats = d.formats(f, len(p.Palette))
	p.Symbols = d.symbols(f, len(p.Palette))
	p.PatternSettings, p.PrintSettings = d.patternAndPrintSettings(f)
	p.Grid = d.grid(f)

	p.Fabric.Name = f.cstring(fabricColorNameLength)
	p.Fabric.Color = f.color()
	f.skip(65)
	p.Info = d.patternInfo(f)
	f.skip(6)
	p.Fabric.Kind = f.cstring(fabricKindNameLength)
	f.skip(206)

	p.StitchSettings = d.stitchSettings(f)
	p.SymbolSettings = d.symbolSettings(f)
	f.skip(16412) // library info
	f.skip(512)   // machine export info
	if f.err != nil {
		return nil, fmt.Errorf("header: %w", f.err)
	}

	d.log.V(1).Info("reading stitches", "offset", r.Offset(),
		"width", p.Fabric.Width, "height", p.Fabric.Height,
		"small", smallStitches)
	var err error
	p.FullStitches, p.PartStitches, err = DecodeStitchGrid(r,
		p.Fabric.Width, p.Fabric.Height, smallStitches)
	if err != nil {
		return nil, err
	}

	d.log.V(1).Info("reading special stitch models", "offset", r.Offset())
	if p.Models, err = decodeModels(r, d.log); err != nil {
		return nil, err
	}

	d.log.V(1).Info("reading joints", "offset", r.Offset(), "count", joints)
	j, err := decodeJoints(r, joints, d.log)
	if err != nil {
		return nil, err
	}
	p.Lines, p.Nodes, p.Specials, p.Curves = j.Lines, j.Nodes, j.Specials, j.Curves
	return p, nil
}
