// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import "encoding/binary"

// A Writer appends little-endian values to a byte slice.  It is the
// inverse of Reader and is mostly used to build files for tests.
// The zero value is an empty Writer ready to use.
type Writer struct {
	buf []byte
}

// Data returns the bytes written so far.
func (w *Writer) Data() []byte { return w.buf }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

func (w *Writer) Uint8(v ...uint8) *Writer {
	w.buf = append(w.buf, v...)
	return w
}

func (w *Writer) Uint16(v ...uint16) *Writer {
	for _, v := range v {
		w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
	}
	return w
}

func (w *Writer) Uint32(v ...uint32) *Writer {
	for _, v := range v {
		w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
	}
	return w
}

func (w *Writer) Int32(v ...int32) *Writer {
	for _, v := range v {
		w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(v))
	}
	return w
}

// Pad appends n zero bytes.
func (w *Writer) Pad(n int) *Writer {
	w.buf = append(w.buf, make([]byte, n)...)
	return w
}

// CString appends s in a field of length+1 bytes, NUL padded.
// s is truncated to length bytes.
func (w *Writer) CString(s string, length int) *Writer {
	if len(s) > length {
		s = s[:length]
	}
	w.buf = append(w.buf, s...)
	return w.Pad(length + 1 - len(s))
}

// Bytes appends b verbatim.
func (w *Writer) Bytes(b []byte) *Writer {
	w.buf = append(w.buf, b...)
	return w
}
