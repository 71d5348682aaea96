// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pmaker

import (
	"fmt"
	"math/bits"

	"github.com/unixdj/xstitch/wire"
)

/*
The cell stream opens with four seed numbers followed by chunks, each
a u32 word count and that many obfuscated words.  Every word is XORed
with a running key and the first seed; after each word the key is
rotated left by the next entry of a 16-slot table, and the second
seed is added to the first.  The state carries over chunk
boundaries.

A decoded word with bit 30 set is a run marker: bits 16-29 hold a
count of copies of the following word.
*/

const (
	runFlag  = 1 << 30
	runMask  = runFlag - 1
	runShift = 16
)

// A keySchedule holds the initial key and the rotation table derived
// from the seed numbers.
type keySchedule struct {
	key int32
	rot [16]uint32
}

// newKeySchedule derives the key schedule from the seed numbers.
//
// The key is, from the most significant byte down: low byte of seed
// 0, byte 1 of seed 1, byte 2 of seed 2, byte 0 of seed 3.  Word i/4
// of the 16 seed bytes shifted right by i%4 gives rotation i.
func newKeySchedule(seed [4]int32) keySchedule {
	k := (seed[0]<<8 | int32(byte(seed[1]>>8))) << 8
	k = (k | int32(byte(seed[2]>>16))) << 8
	k |= seed[3] & 0xff
	ks := keySchedule{key: k}
	for i := range ks.rot {
		ks.rot[i] = uint32(seed[i/4]) >> (i % 4) % 32
	}
	return ks
}

// A cipher is the decoding state of one cell stream.
type cipher struct {
	key          int32
	rot          [16]uint32
	seed0, seed1 int32
	n            int // rotation index
}

func newCipher(seed [4]int32) cipher {
	ks := newKeySchedule(seed)
	return cipher{
		key:   ks.key,
		rot:   ks.rot,
		seed0: seed[0],
		seed1: seed[1],
	}
}

// decode returns the decoded word and the state for the next word.
func (c cipher) decode(raw int32) (int32, cipher) {
	v := raw ^ c.key ^ c.seed0
	c.key = int32(bits.RotateLeft32(uint32(c.key), int(c.rot[c.n])))
	c.seed0 += c.seed1
	c.n = (c.n + 1) % len(c.rot)
	return v, c
}

// decodeCells reads a cell stream of exactly n records.
func decodeCells(r *wire.Reader, n int) ([]int32, error) {
	f := fields{r: r}
	var seed [4]int32
	for i := range seed {
		seed[i] = f.i32()
	}
	if f.err != nil {
		return nil, fmt.Errorf("cell stream seed: %w", f.err)
	}
	c := newCipher(seed)
	// Runs may expand past the input, so n only bounds the capacity.
	cells := make([]int32, 0, min(n, r.Len()))
	var chunk []int32
	for len(cells) < n {
		size, err := r.Uint32()
		if err != nil {
			return nil, fmt.Errorf("cell stream: %d of %d records: %w",
				len(cells), n, err)
		}
		if size == 0 {
			continue
		}
		if uint64(size)*4 > uint64(r.Len()) {
			return nil, fmt.Errorf("%w: cell chunk of %d words at offset %d",
				wire.ErrTruncated, size, r.Offset())
		}
		chunk = chunk[:0]
		for ; size > 0; size-- {
			raw, _ := r.Int32()
			var v int32
			v, c = c.decode(raw)
			chunk = append(chunk, v)
		}
		if cells, err = expandRuns(cells, chunk, n); err != nil {
			return nil, err
		}
	}
	return cells, nil
}

// expandRuns appends the run-length expansion of chunk to dst,
// stopping at n records.
func expandRuns(dst, chunk []int32, n int) ([]int32, error) {
	for i := 0; i < len(chunk) && len(dst) < n; i++ {
		v, count := chunk[i], 1
		if v&runFlag != 0 {
			count = int(v&runMask) >> runShift
			if i++; i == len(chunk) {
				return nil, fmt.Errorf("%w: run of %d with no value",
					wire.ErrTruncated, count)
			}
			v = chunk[i]
		}
		for ; count > 0 && len(dst) < n; count-- {
			dst = append(dst, v)
		}
	}
	return dst, nil
}
