// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"errors"
	"testing"
)

func TestReaderValues(t *testing.T) {
	r := NewReader([]byte{
		0x10, 0x05,
		0x78, 0x56, 0x34, 0x12,
		0xff, 0xff, 0xff, 0xff,
		0x2c, 0x32, 0x25,
		0x07,
	})
	if v, err := r.Uint16(); err != nil || v != 0x0510 {
		t.Fatalf("Uint16 = %#x, %v", v, err)
	}
	if v, err := r.Uint32(); err != nil || v != 0x12345678 {
		t.Fatalf("Uint32 = %#x, %v", v, err)
	}
	if v, err := r.Int32(); err != nil || v != -1 {
		t.Fatalf("Int32 = %d, %v", v, err)
	}
	if v, err := r.HexColor(); err != nil || v != "2C3225" {
		t.Fatalf("HexColor = %q, %v", v, err)
	}
	if v, err := r.Uint8(); err != nil || v != 7 {
		t.Fatalf("Uint8 = %d, %v", v, err)
	}
	if r.Len() != 0 || r.Offset() != 14 {
		t.Fatalf("Len = %d, Offset = %d", r.Len(), r.Offset())
	}
}

func TestReaderTruncated(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})
	if err := r.Skip(2); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Uint16(); !errors.Is(err, ErrTruncated) {
		t.Fatalf("Uint16 past end: err = %v", err)
	}
	// A failed read leaves the position alone.
	if r.Offset() != 2 {
		t.Fatalf("Offset = %d after failed read", r.Offset())
	}
	if err := r.Seek(4); !errors.Is(err, ErrTruncated) {
		t.Fatalf("Seek past end: err = %v", err)
	}
	if err := r.Skip(-1); !errors.Is(err, ErrTruncated) {
		t.Fatalf("Skip(-1): err = %v", err)
	}
}

func TestCString(t *testing.T) {
	for _, tc := range []struct {
		name string
		data []byte
		len  int
		want string
	}{
		{"ascii", []byte("310\x00\x00\x00"), 5, "310"},
		{"utf8", []byte("Ц\x00\x00"), 2, "Ц"},
		{"cp1251", []byte{0xcf, 0xcd, 0xca, 0x00}, 3, "ПНК"},
		{"garbage", []byte("abcd"), 3, ""},
		{"empty", []byte{0, 'x', 'y'}, 2, ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := NewReader(tc.data)
			s, err := r.CString(tc.len)
			if err != nil {
				t.Fatal(err)
			}
			if s != tc.want {
				t.Errorf("CString = %q, want %q", s, tc.want)
			}
			if r.Offset() != tc.len+1 {
				t.Errorf("Offset = %d, want %d", r.Offset(), tc.len+1)
			}
		})
	}
}

func TestWriterReader(t *testing.T) {
	var w Writer
	w.Uint16(0x0510).Int32(-228908503).CString("Black", 10).Uint8(1, 2)
	if w.Len() != 2+4+11+2 {
		t.Fatalf("Len = %d", w.Len())
	}
	r := NewReader(w.Data())
	sig, _ := r.Uint16()
	key, _ := r.Int32()
	name, _ := r.CString(10)
	b, err := r.Bytes(2)
	if err != nil {
		t.Fatal(err)
	}
	if sig != 0x0510 || key != -228908503 || name != "Black" || b[0] != 1 || b[1] != 2 {
		t.Errorf("read back %#x %d %q %v", sig, key, name, b)
	}
}
