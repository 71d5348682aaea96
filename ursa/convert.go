// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ursa

import (
	"strconv"
	"strings"

	"github.com/unixdj/xstitch/pmaker"
)

const fabricNumber = "cloth"

// FromPatternMaker converts a decoded Pattern Maker pattern.  OXS has
// no special stitches or curves; they are dropped.  Colour numbers
// are prefixed with the brand name when known, and the full stitch
// symbol becomes the palette symbol.
func FromPatternMaker(p *pmaker.Pattern) *Pattern {
	o := &Pattern{
		Properties: Properties{
			Software:        "Pattern Maker",
			SoftwareVersion: p.Version.String(),
			Width:           uint16(p.Fabric.Width),
			Height:          uint16(p.Fabric.Height),
			Title:           p.Info.Title,
			Author:          p.Info.Author,
			Copyright:       p.Info.Copyright,
			Instructions:    p.Info.Description,
			StitchesPerInch: p.Fabric.StitchesPerInch,
		},
		Fabric: PaletteItem{
			Number: fabricNumber,
			Name:   p.Fabric.Name,
			Color:  p.Fabric.Color,
		},
		FullStitches: p.FullStitches,
		PartStitches: p.PartStitches,
		Lines:        p.Lines,
		Nodes:        p.Nodes,
	}
	if o.Fabric.Name == "" {
		o.Fabric.Name = fabricNumber
	}
	for i, c := range p.Palette {
		it := PaletteItem{
			Number: strings.TrimSpace(c.Brand + " " + c.Number),
			Name:   c.Name,
			Color:  c.Color,
		}
		if i < len(p.Symbols) && p.Symbols[i].Full != pmaker.NoSymbol {
			it.Symbol = strconv.Itoa(int(p.Symbols[i].Full))
		}
		o.Palette = append(o.Palette, it)
	}
	return o
}
