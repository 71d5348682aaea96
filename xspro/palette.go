// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xspro decodes palette files of Cross Stitch Pro (XSPro).
//
// A palette file holds its brand name, a u16 colour count and the
// colours, each a "number name" string and an RGB triple.
package xspro // import "github.com/unixdj/xstitch/xspro"

import (
	"fmt"
	"io"
	"strings"

	"github.com/unixdj/xstitch"
	"github.com/unixdj/xstitch/wire"
)

const (
	brandLength  = 28
	numberLength = 28
)

// Decode decodes a palette file.  If brand is not empty, it replaces
// the brand stored in the file; XSPro names palettes by file name.
func Decode(data []byte, brand string) ([]xstitch.Thread, error) {
	r := wire.NewReader(data)
	stored, err := r.CString(brandLength)
	if err != nil {
		return nil, fmt.Errorf("xspro: brand: %w", err)
	}
	if brand == "" {
		brand = stored
	}
	n, err := r.Uint16()
	if err != nil {
		return nil, fmt.Errorf("xspro: palette size: %w", err)
	}
	threads := make([]xstitch.Thread, 0, min(int(n), r.Len()))
	for i := 0; i < int(n); i++ {
		s, err := r.CString(numberLength)
		if err != nil {
			return nil, fmt.Errorf("xspro: colour %d: %w", i, err)
		}
		color, err := r.HexColor()
		if err != nil {
			return nil, fmt.Errorf("xspro: colour %d: %w", i, err)
		}
		number, name, ok := strings.Cut(s, " ")
		if !ok {
			number, name = "", s
		}
		threads = append(threads, xstitch.Thread{
			Brand:  brand,
			Number: strings.TrimSpace(number),
			Name:   strings.TrimSpace(name),
			Color:  color,
		})
	}
	return threads, nil
}

// DecodeReader reads all of r and decodes it.
func DecodeReader(r io.Reader, brand string) ([]xstitch.Thread, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(data, brand)
}
