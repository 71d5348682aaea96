// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ursa

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/unixdj/xstitch"
)

// Some palettes end with a "STOP" line.  It is skipped.
const stopLine = "STOP"

/*
DecodePalette reads an Ursa palette file.  Each line holds quoted,
comma-separated fields:

	"DMC    310","Black",789516

The first field is the brand and the colour number, split at the
last space.  The third is the RGB colour as a decimal number.  Lines
of fewer than three fields are skipped.  Line endings may be LF, CRLF
or CR.
*/
func DecodePalette(r io.Reader) ([]xstitch.Thread, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(string(data))
	var threads []xstitch.Thread
	for n, line := range strings.Split(text, "\n") {
		t, ok, err := parseThread(line)
		if err != nil {
			return nil, fmt.Errorf("ursa: palette line %d: %w", n+1, err)
		}
		if ok {
			threads = append(threads, t)
		}
	}
	return threads, nil
}

func parseThread(line string) (xstitch.Thread, bool, error) {
	f := strings.Split(line, ",")
	if len(f) < 3 {
		return xstitch.Thread{}, false, nil
	}
	for i := range f {
		f[i] = strings.TrimSpace(strings.ReplaceAll(f[i], `"`, ""))
	}
	if f[0] == stopLine {
		return xstitch.Thread{}, false, nil
	}
	var t xstitch.Thread
	t.Number = f[0]
	if i := strings.LastIndexByte(f[0], ' '); i >= 0 {
		t.Brand = strings.TrimSpace(f[0][:i])
		t.Number = strings.TrimSpace(f[0][i+1:])
	}
	t.Name = f[1]
	rgb, err := strconv.ParseUint(f[2], 10, 24)
	if err != nil {
		return xstitch.Thread{}, false, err
	}
	t.Color = fmt.Sprintf("%06X", rgb)
	return t, true, nil
}
