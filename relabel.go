/*
Copyright © 2026 the relabel authors.
This file is part of relabel.

relabel is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

relabel is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with relabel.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package relabel converts per-reach river hydrology files to the
// variable schema used by the SWOT discharge algorithms.
package relabel

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ctessum/sparse"
)

// Version gives the version of this software.
const Version = "0.1.0"

// Relabel converts the per-reach file at inputPath to the discharge
// schema, writing a file with the same base name to outputDir, which
// must exist. It returns the path of the file it wrote. Converting the
// same input twice produces identical files.
func Relabel(inputPath, outputDir string) (string, error) {
	return relabelFile(inputPath, outputDir, false)
}

// RelabelTruncated is Relabel with every output variable clamped to the
// first 10 time steps and the first 5 entries along every other
// dimension, for building small test data sets.
func RelabelTruncated(inputPath, outputDir string) (string, error) {
	return relabelFile(inputPath, outputDir, true)
}

func relabelFile(inputPath, outputDir string, truncated bool) (string, error) {
	d, err := ReadReach(inputPath)
	if err != nil {
		return "", err
	}
	o, err := d.transform(inputPath)
	if err != nil {
		return "", err
	}
	if truncated {
		o.truncate()
	}
	outputPath := filepath.Join(outputDir, filepath.Base(inputPath))
	w, err := os.Create(outputPath)
	if err != nil {
		return "", &IOError{Op: "creating", Path: outputPath, Err: err}
	}
	if err := o.Write(w); err != nil {
		w.Close()
		return "", &IOError{Op: "writing", Path: outputPath, Err: err}
	}
	if err := w.Close(); err != nil {
		return "", &IOError{Op: "writing", Path: outputPath, Err: err}
	}
	return outputPath, nil
}

// cleanName replaces characters that commonly break downstream NetCDF
// tooling, keeping letters, digits, and "_ .-".
func cleanName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '_' || r == ' ' || r == '.' || r == '-':
			return r
		}
		return '_'
	}, s)
}

// source returns the first of d's variables matching one of the
// candidate source names, in candidate order. Qualified candidates
// match the group path a variable had in the input file; bare
// candidates match variables read from the file root.
func (d *ReachData) source(candidates []string) (string, *Variable) {
	for _, c := range candidates {
		for _, name := range d.names() {
			if d.Data[name].source == c {
				return name, d.Data[name]
			}
		}
	}
	return "", nil
}

// transform builds the output data set for d: the schema fields
// relabeled with their prescribed names and attributes, Qhat and
// d_x_area derived, and every other variable passed through with its
// dimensions renamed.
func (d *ReachData) transform(path string) (*ReachData, error) {
	widthName, width := d.source(widthField.sources)
	slopeName, slope := d.source(slopeField.sources)
	wseName, wse := d.source(wseField.sources)
	for _, req := range []struct {
		v *Variable
		f *schemaField
	}{{width, widthField}, {slope, slopeField}, {wse, wseField}} {
		if req.v == nil {
			return nil, newFormatError(path, req.f.sources[0],
				"missing source variable for %s", req.f.name)
		}
	}
	if len(width.Data.Shape) != 2 {
		return nil, newFormatError(path, width.source,
			"width data must have a temporal and a spatial dimension, not %d", len(width.Data.Shape))
	}
	if len(wse.Data.Shape) != 2 || wse.Data.Shape[0] != width.Data.Shape[0] ||
		wse.Data.Shape[1] != width.Data.Shape[1] {
		return nil, newFormatError(path, wse.source,
			"water surface elevation data must have the same extent as width data")
	}

	// The temporal dimension comes first in the width data; both its
	// dimensions take standard names in the output.
	timeName, spaceName := width.Dims[0], width.Dims[1]
	rename := func(dims []string) []string {
		o := make([]string, len(dims))
		for i, dim := range dims {
			switch dim {
			case timeName:
				o[i] = timeDim
			case spaceName:
				o[i] = spaceDim
			default:
				o[i] = cleanName(dim)
			}
		}
		return o
	}

	o := &ReachData{Title: d.Title}
	consumed := map[string]bool{widthName: true, slopeName: true, wseName: true}
	for _, rv := range []struct {
		f *schemaField
		v *Variable
	}{{widthField, width}, {slopeField, slope}, {wseField, wse}} {
		o.AddVariable(rv.f.name, &Variable{
			Dims:  rename(rv.v.Dims),
			Attrs: rv.f.attrs(),
			Type:  TypeDouble,
			Data:  rv.v.Data,
		})
	}

	wFill := fillOf(width)
	o.AddVariable(dxaField.name, &Variable{
		Dims:  rename(width.Dims),
		Attrs: dxaField.attrs(),
		Type:  TypeDouble,
		Data:  deriveDXArea(width.Data, wse.Data, wFill, fillOf(wse)),
	})

	// Qhat comes from measured discharge when the producer recorded it,
	// otherwise from discharge estimated from width.
	qName, q := d.source(dischargeField.sources)
	var qhat *sparse.DenseArray
	var qhatDims []string
	if q != nil {
		if len(q.Data.Shape) != 2 {
			return nil, newFormatError(path, q.source,
				"discharge data must have a temporal and a spatial dimension, not %d", len(q.Data.Shape))
		}
		qhat = deriveQhat(q.Data, fillOf(q))
		qhatDims = rename(q.Dims)
		consumed[qName] = true
	} else {
		qhat = deriveQhat(estimateDischarge(width.Data, wFill), FillValue)
		qhatDims = rename(width.Dims)
	}
	o.AddVariable(qhatField.name, &Variable{
		Dims:  qhatDims,
		Attrs: qhatField.attrs(),
		Type:  TypeDouble,
		Data:  qhat,
	})

	// Coordinate variables take the names of the dimensions they
	// describe. They are optional; nothing is synthesized when the
	// producer left them out.
	for _, f := range []*schemaField{timeField, crossSectionField} {
		name, v := d.source(f.sources)
		if v == nil {
			continue
		}
		o.AddVariable(f.name, &Variable{
			Dims:  rename(v.Dims),
			Attrs: f.attrs(),
			Type:  TypeInt,
			Data:  v.Data,
		})
		consumed[name] = true
	}

	for _, name := range d.names() {
		if consumed[name] {
			continue
		}
		if _, ok := o.Data[name]; ok {
			return nil, newFormatError(path, name, "variable collides with a schema field name")
		}
		v := d.Data[name]
		o.AddVariable(name, &Variable{
			Dims:  rename(v.Dims),
			Attrs: v.Attrs,
			Type:  v.Type,
			Data:  v.Data,
		})
	}

	if _, _, err := o.dimensions(); err != nil {
		return nil, &FileFormatError{Path: path, Msg: err.Error()}
	}
	return o, nil
}
