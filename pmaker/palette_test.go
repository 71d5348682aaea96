// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pmaker

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/unixdj/xstitch/wire"
)

func writePaletteItem(w *wire.Writer, brand uint8, number, name string, rgb [3]uint8) {
	w.Pad(2).Uint8(brand).CString(number, colorNumberLength).CString(name, colorNameLength)
	w.Uint8(rgb[:]...).Pad(1)
	w.Uint16(0).Pad(maxBlends * blendSize).Pad(maxBlends)
	w.Uint32(0).Pad(4).Pad(2)
}

func TestDecodePalette(t *testing.T) {
	want := []PaletteItem{
		{Brand: "DMC", Number: "310", Name: "Black", Color: "000000"},
		{BrandID: 7, Number: "B5200", Name: "Snow White", Color: "FFFFFF"},
	}
	for kind, start := range paletteStart {
		var w wire.Writer
		w.Pad(paletteSizeOffset).Uint16(2)
		w.Pad(start - w.Len())
		writePaletteItem(&w, 0, "310", "Black", [3]uint8{0, 0, 0})
		writePaletteItem(&w, 7, "B5200", "Snow White", [3]uint8{0xff, 0xff, 0xff})
		got, err := DecodePalette(w.Data(), PaletteKind(kind), nil)
		if err != nil {
			t.Errorf("kind %d: %v", kind, err)
			continue
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("kind %d: mismatch (-want +got):\n%s", kind, diff)
		}
	}
}

func TestDecodePaletteErrors(t *testing.T) {
	var w wire.Writer
	w.Pad(paletteSizeOffset).Uint16(2).Pad(2)
	writePaletteItem(&w, 0, "310", "Black", [3]uint8{})
	data := w.Data()

	if _, err := DecodePalette(data, MasterPalette, nil); !errors.Is(err, wire.ErrTruncated) {
		t.Errorf("missing item: err = %v, want %v", err, wire.ErrTruncated)
	}
	if _, err := DecodePalette(data[:5], UserPalette, nil); !errors.Is(err, wire.ErrTruncated) {
		t.Errorf("short file: err = %v, want %v", err, wire.ErrTruncated)
	}
	if _, err := DecodePalette(data, PaletteKind(2), nil); err == nil {
		t.Error("invalid kind accepted")
	}
}

func TestParseBrands(t *testing.T) {
	b, err := ParseBrands(strings.NewReader("# comment\n\n 1: Anchor \n2:Madeira\n"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Brands{1: "Anchor", 2: "Madeira"}, b); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	for _, s := range []string{"Anchor\n", "256: Big\n", "x: Bad\n"} {
		if _, err := ParseBrands(strings.NewReader(s)); err == nil {
			t.Errorf("%q accepted", s)
		}
	}
}

func TestDefaultBrands(t *testing.T) {
	if b := DefaultBrands()[0]; b != "DMC" {
		t.Errorf("brand 0 = %q, want DMC", b)
	}
}
