// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package wire reads little-endian binary pattern files.

A Reader walks a byte slice holding a whole file.  Offsets are
computed by sequential positional reads; nothing in the files
describes its own layout.  Every read past the end of the data fails
with an error wrapping ErrTruncated.
*/
package wire // import "github.com/unixdj/xstitch/wire"

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var ErrTruncated = errors.New("wire: unexpected end of data")

// A Reader reads little-endian values from a byte slice.
// The zero value reads nothing.
type Reader struct {
	data []byte
	off  int
}

// NewReader returns a Reader positioned at the beginning of data.
// The Reader does not copy data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Offset returns the current read position.
func (r *Reader) Offset() int { return r.off }

// Len returns the number of unread bytes.
func (r *Reader) Len() int { return len(r.data) - r.off }

// Seek sets the read position.
func (r *Reader) Seek(off int) error {
	if off < 0 || off > len(r.data) {
		return fmt.Errorf("%w: seek to %d of %d", ErrTruncated, off, len(r.data))
	}
	r.off = off
	return nil
}

// next returns the next n bytes and advances past them.
func (r *Reader) next(n int) ([]byte, error) {
	if n < 0 || r.Len() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrTruncated, n, r.off, r.Len())
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

// Skip advances the read position by n bytes.
func (r *Reader) Skip(n int) error {
	_, err := r.next(n)
	return err
}

// Bytes returns the next n bytes.  The result aliases the
// underlying data.
func (r *Reader) Bytes(n int) ([]byte, error) {
	return r.next(n)
}

func (r *Reader) Uint8() (uint8, error) {
	b, err := r.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) Uint16() (uint16, error) {
	b, err := r.next(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) Uint32() (uint32, error) {
	b, err := r.next(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) Int32() (int32, error) {
	v, err := r.Uint32()
	return int32(v), err
}

/*
CString reads a NUL-terminated string stored in a fixed field of
length+1 bytes.  The content is UTF-8 if valid, otherwise Windows-1251,
the encoding of Cyrillic installations of the programs producing
these files.  A field with no terminator holds garbage and reads as
the empty string.
*/
func (r *Reader) CString(length int) (string, error) {
	b, err := r.next(length + 1)
	if err != nil {
		return "", err
	}
	n := bytes.IndexByte(b, 0)
	if n < 0 {
		return "", nil
	}
	b = b[:n]
	if utf8.Valid(b) {
		return string(b), nil
	}
	s, err := charmap.Windows1251.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(s), nil
}

// HexColor reads three bytes of RGB as upper case hex digits.
func (r *Reader) HexColor() (string, error) {
	b, err := r.next(3)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02X%02X%02X", b[0], b[1], b[2]), nil
}
