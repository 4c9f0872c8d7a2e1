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

package relabel

import (
	"fmt"
	"os"
	"sort"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// A VarType is the external storage type of a variable. Data is held as
// float64 in memory regardless of type; the type controls how values are
// written to the output file.
type VarType int

const (
	TypeDouble VarType = iota // 64-bit float
	TypeFloat                 // 32-bit float
	TypeInt                   // 32-bit integer
	TypeShort                 // 16-bit integer
	TypeByte                  // 8-bit unsigned integer
)

// proto returns the prototype value that selects t when defining a
// variable in a NetCDF header.
func (t VarType) proto() interface{} {
	switch t {
	case TypeFloat:
		return []float32{0}
	case TypeInt:
		return []int32{0}
	case TypeShort:
		return []int16{0}
	case TypeByte:
		return []uint8{0}
	default:
		return []float64{0}
	}
}

// An Attribute is one name-value pair attached to a variable. Values must
// be strings or slices of a fixed-size numeric type.
type Attribute struct {
	Name  string
	Value interface{}
}

// A Variable is one array in a per-reach file.
type Variable struct {
	Dims  []string           // dimension names, outermost first
	Attrs []Attribute        // attributes, in file order
	Type  VarType            // external storage type
	Data  *sparse.DenseArray // variable data

	// source is the name the variable had in the input file, qualified
	// with its group path for files that use groups.
	source string
}

// attr returns the value of the named attribute, or nil if v does not
// have it.
func (v *Variable) attr(name string) interface{} {
	for _, a := range v.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return nil
}

// ReachData holds the contents of one per-reach file: a set of named
// variables plus the file title.
type ReachData struct {
	// Title is the value of the global title attribute, if any.
	Title string

	// Data is a map of the file's variables, with the keys being the
	// variable names.
	Data map[string]*Variable
}

// AddVariable adds data for a new variable to d.
func (d *ReachData) AddVariable(name string, v *Variable) {
	if d.Data == nil {
		d.Data = make(map[string]*Variable)
	}
	d.Data[name] = v
}

// names returns d's variable names in sorted order so that files write
// the same way every time.
func (d *ReachData) names() []string {
	names := make([]string, 0, len(d.Data))
	for n := range d.Data {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// dimensions returns the dimension names and lengths used by d's
// variables, in order of first appearance over the sorted variable
// names. It returns an error if two variables disagree about the length
// of a dimension.
func (d *ReachData) dimensions() ([]string, []int, error) {
	var dims []string
	lengths := make(map[string]int)
	for _, name := range d.names() {
		v := d.Data[name]
		if len(v.Dims) != len(v.Data.Shape) {
			return nil, nil, fmt.Errorf("variable %s has %d dimensions but %d axes of data",
				name, len(v.Dims), len(v.Data.Shape))
		}
		for i, dim := range v.Dims {
			if l, ok := lengths[dim]; ok {
				if l != v.Data.Shape[i] {
					return nil, nil, fmt.Errorf("inconsistent lengths for dimension %s: %d != %d",
						dim, l, v.Data.Shape[i])
				}
				continue
			}
			lengths[dim] = v.Data.Shape[i]
			dims = append(dims, dim)
		}
	}
	l := make([]int, len(dims))
	for i, dim := range dims {
		l[i] = lengths[dim]
	}
	return dims, l, nil
}

// Write writes d to netcdf file w.
func (d *ReachData) Write(w *os.File) error {
	dims, lengths, err := d.dimensions()
	if err != nil {
		return fmt.Errorf("relabel: %v", err)
	}
	h := cdf.NewHeader(dims, lengths)
	if d.Title != "" {
		h.AddAttribute("", "title", d.Title)
	}

	names := d.names()
	for _, name := range names {
		v := d.Data[name]
		h.AddVariable(name, v.Dims, v.Type.proto())
		for _, a := range v.Attrs {
			h.AddAttribute(name, a.Name, a.Value)
		}
	}
	h.Define()

	f, err := cdf.Create(w, h) // writes the header to w
	if err != nil {
		return err
	}

	for _, name := range names {
		if err = writeNCF(f, name, d.Data[name]); err != nil {
			return fmt.Errorf("relabel: writing variable %s to netcdf file: %v", name, err)
		}
	}
	return cdf.UpdateNumRecs(w)
}

func writeNCF(f *cdf.File, Var string, v *Variable) error {
	// Check that data matches dimensions.
	n := 1
	for _, l := range v.Data.Shape {
		n *= l
	}
	if len(v.Data.Elements) != n {
		return fmt.Errorf("dims are %d but array length is %d", n, len(v.Data.Elements))
	}

	var data interface{}
	switch v.Type {
	case TypeFloat:
		d32 := make([]float32, len(v.Data.Elements))
		for i, e := range v.Data.Elements {
			d32[i] = float32(e)
		}
		data = d32
	case TypeInt:
		di := make([]int32, len(v.Data.Elements))
		for i, e := range v.Data.Elements {
			di[i] = int32(e)
		}
		data = di
	case TypeShort:
		ds := make([]int16, len(v.Data.Elements))
		for i, e := range v.Data.Elements {
			ds[i] = int16(e)
		}
		data = ds
	case TypeByte:
		db := make([]uint8, len(v.Data.Elements))
		for i, e := range v.Data.Elements {
			db[i] = uint8(e)
		}
		data = db
	default:
		data = v.Data.Elements
	}

	end := f.Header.Lengths(Var)
	start := make([]int, len(end))
	wr := f.Writer(Var, start, end)
	if _, err := wr.Write(data); err != nil {
		return err
	}
	return nil
}
