// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pmaker

import (
	"fmt"

	"github.com/unixdj/xstitch/wire"
)

// A PaletteKind is the kind of a Pattern Maker palette file.
type PaletteKind int

const (
	MasterPalette PaletteKind = iota // *.master
	UserPalette                      // *.user
)

// Palette file layout: item count at paletteSizeOffset, items from
// the kind's start offset.
const paletteSizeOffset = 0x04

var paletteStart = [...]int{
	MasterPalette: 0x08,
	UserPalette:   0x06,
}

// DecodePalette decodes a Pattern Maker palette file.  Items use the
// pattern file layout and have nil Strands.
func DecodePalette(data []byte, kind PaletteKind, opt *Options) ([]PaletteItem, error) {
	if kind < 0 || int(kind) >= len(paletteStart) {
		return nil, fmt.Errorf("pmaker: invalid palette kind %d", kind)
	}
	d := newDecoder(opt)
	r := wire.NewReader(data)
	f := &fields{r: r}
	f.fail(r.Seek(paletteSizeOffset))
	n := int(f.u16())
	f.fail(r.Seek(paletteStart[kind]))
	if f.err != nil {
		return nil, fmt.Errorf("palette: %w", f.err)
	}
	d.log.V(1).Info("reading palette file", "kind", kind, "size", n)
	palette := make([]PaletteItem, 0, min(n, r.Len()))
	for i := 0; i < n; i++ {
		p := d.paletteItem(f)
		if f.err != nil {
			return nil, fmt.Errorf("palette item %d: %w", i, f.err)
		}
		palette = append(palette, p)
	}
	return palette, nil
}
