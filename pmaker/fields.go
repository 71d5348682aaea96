// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pmaker

import "github.com/unixdj/xstitch/wire"

// fields reads consecutive fields of a record.  After the first
// error all reads return zero values and err holds the error.
type fields struct {
	r   *wire.Reader
	err error
}

func (f *fields) fail(err error) {
	if f.err == nil {
		f.err = err
	}
}

func (f *fields) skip(n int) {
	if f.err == nil {
		f.err = f.r.Skip(n)
	}
}

func (f *fields) u8() uint8 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.Uint8()
	f.err = err
	return v
}

func (f *fields) u16() uint16 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.Uint16()
	f.err = err
	return v
}

func (f *fields) u32() uint32 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.Uint32()
	f.err = err
	return v
}

func (f *fields) i32() int32 {
	return int32(f.u32())
}

func (f *fields) bytes(n int) []byte {
	if f.err != nil {
		return nil
	}
	b, err := f.r.Bytes(n)
	f.err = err
	return b
}

func (f *fields) cstring(length int) string {
	if f.err != nil {
		return ""
	}
	s, err := f.r.CString(length)
	f.err = err
	return s
}

func (f *fields) color() string {
	if f.err != nil {
		return ""
	}
	s, err := f.r.HexColor()
	f.err = err
	return s
}

// flag reads a u16 boolean.
func (f *fields) flag() bool { return f.u16() == 1 }

// coord reads a u16 coordinate in half cells.
func (f *fields) coord() float32 { return float32(f.u16()) / 2 }

// tenths reads a u16 in tenths.
func (f *fields) tenths() float32 { return float32(f.u16()) / 10 }

// hundredths reads a u16 in hundredths.
func (f *fields) hundredths() float32 { return float32(f.u16()) / 100 }
