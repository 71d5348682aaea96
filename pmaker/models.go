// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pmaker

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/unixdj/xstitch"
	"github.com/unixdj/xstitch/wire"
)

const (
	modelSection    = 4      // section tag of a special stitch model
	modelMagic      = "sps1" // model format tag
	modelNameLength = 255
	modelHeaderSize = 10 // sub-section header
	modelParts      = 3  // sub-sections per model
)

/*
DecodeSpecialStitchModels decodes the special stitch model section.

A model consists of up to three sub-sections of joints.  The first
carries the model's size and the offset of its curves, and the first
and last hold its geometry.  The middle one seems to be a preview; it
is read and dropped.  A sub-section not starting with the file
signature ends the model.  Models with an unknown section tag or
format tag are skipped.
*/
func DecodeSpecialStitchModels(r *wire.Reader) ([]xstitch.SpecialStitchModel, error) {
	return decodeModels(r, logr.Discard())
}

func decodeModels(r *wire.Reader, log logr.Logger) ([]xstitch.SpecialStitchModel, error) {
	f := fields{r: r}
	f.skip(2)
	n := int(f.u16())
	if f.err != nil {
		return nil, fmt.Errorf("special stitch models: %w", f.err)
	}
	models := make([]xstitch.SpecialStitchModel, 0, min(n, r.Len()/2))
	for i := 0; i < n; i++ {
		m, ok, err := decodeModel(r, log)
		if err != nil {
			return nil, fmt.Errorf("special stitch model %d: %w", i, err)
		}
		if ok {
			models = append(models, m)
		}
	}
	return models, nil
}

// decodeModel decodes a single model.  It returns false if the model
// is of an unknown kind.
func decodeModel(r *wire.Reader, log logr.Logger) (xstitch.SpecialStitchModel, bool, error) {
	var m xstitch.SpecialStitchModel
	f := fields{r: r}
	off := r.Offset()
	if tag := f.u16(); tag != modelSection {
		if f.err == nil {
			log.V(1).Info("skipping special stitch model", "offset", off, "section", tag)
		}
		return m, false, f.err
	}
	f.skip(2)
	if magic := string(f.bytes(len(modelMagic))); magic != modelMagic {
		if f.err == nil {
			log.V(1).Info("skipping special stitch model", "offset", off, "format", magic)
		}
		return m, false, f.err
	}
	m.UniqueName = f.cstring(modelNameLength)
	m.Name = f.cstring(modelNameLength)
	f.skip(2)

	var shift xstitch.Point
	for i := 0; i < modelParts && f.err == nil; i++ {
		if i == 0 {
			f.skip(2)
			shift.X, shift.Y = f.coord(), f.coord()
			m.Width, m.Height = f.coord(), f.coord()
		} else {
			f.skip(modelHeaderSize)
		}
		if sig := f.u16(); sig != Signature {
			break
		}
		count := int(f.u16())
		if f.err != nil || count == 0 {
			continue
		}
		j, err := decodeJoints(r, count, log)
		if err != nil {
			return m, false, err
		}
		if i != 1 {
			m.Lines = append(m.Lines, j.Lines...)
			m.Nodes = append(m.Nodes, j.Nodes...)
			m.Curves = append(m.Curves, j.Curves...)
		}
	}
	if f.err != nil {
		return m, false, f.err
	}

	for _, c := range m.Curves {
		for k := range c.Points {
			c.Points[k].X -= shift.X
			c.Points[k].Y -= shift.Y
		}
	}
	return m, true, nil
}
