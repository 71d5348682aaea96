// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pmaker

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// Brands maps thread brand identifiers to brand names.
type Brands map[uint8]string

//go:embed brands.txt
var brandsText string

// DefaultBrands returns the built-in brand table.  The table is
// shared and must not be modified.
var DefaultBrands = sync.OnceValue(func() Brands {
	b, err := ParseBrands(strings.NewReader(brandsText))
	if err != nil {
		panic("pmaker: built-in brand table: " + err.Error())
	}
	return b
})

// ParseBrands reads a brand table of "id: name" lines.  Blank lines
// and lines starting with '#' are ignored.
func ParseBrands(r io.Reader) (Brands, error) {
	b := make(Brands)
	s := bufio.NewScanner(r)
	for n := 1; s.Scan(); n++ {
		line := strings.TrimSpace(s.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		id, name, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("brands: line %d: missing ':'", n)
		}
		v, err := strconv.ParseUint(strings.TrimSpace(id), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("brands: line %d: %w", n, err)
		}
		b[uint8(v)] = strings.TrimSpace(name)
	}
	return b, s.Err()
}
