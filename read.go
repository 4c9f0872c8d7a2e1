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
	"reflect"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/ctessum/sparse"
)

// ReadReach reads the per-reach file at path. Files that use groups are
// flattened: every variable is keyed by its base name, and its original
// group-qualified name is kept for source matching. Two variables
// flattening to the same name is a FileFormatError.
func ReadReach(path string) (*ReachData, error) {
	nc, err := netcdf.Open(path)
	if err != nil {
		return nil, &IOError{Op: "reading", Path: path, Err: err}
	}
	defer nc.Close()

	d := new(ReachData)
	if t, ok := nc.Attributes().Get("title"); ok {
		if s, ok := t.(string); ok {
			d.Title = s
		}
	}
	if err := readGroup(path, nc, "", d); err != nil {
		return nil, err
	}
	return d, nil
}

func readGroup(path string, g api.Group, prefix string, d *ReachData) error {
	for _, name := range g.ListVariables() {
		vr, err := g.GetVariable(name)
		if err != nil {
			return &IOError{Op: "reading", Path: path, Err: err}
		}
		data, vt, err := flattenValues(vr.Values)
		if err != nil {
			return newFormatError(path, prefix+name, "%v", err)
		}
		if len(vr.Dimensions) != len(data.Shape) {
			return newFormatError(path, prefix+name, "%d dimension names for %d axes of data",
				len(vr.Dimensions), len(data.Shape))
		}
		if _, ok := d.Data[name]; ok {
			return newFormatError(path, prefix+name, "variable name appears in more than one group")
		}
		d.AddVariable(name, &Variable{
			Dims:   vr.Dimensions,
			Attrs:  fromAttributes(vr.Attributes),
			Type:   vt,
			Data:   data,
			source: prefix + name,
		})
	}
	for _, sub := range g.ListSubgroups() {
		sg, err := g.GetGroup(sub)
		if err != nil {
			return &IOError{Op: "reading", Path: path, Err: err}
		}
		err = readGroup(path, sg, prefix+sub+"/", d)
		sg.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// flattenValues converts the possibly nested slices holding a variable's
// data into a dense array, recording the external type the data had.
func flattenValues(val interface{}) (*sparse.DenseArray, VarType, error) {
	typ := reflect.TypeOf(val)
	ndims := 0
	for typ.Kind() == reflect.Slice {
		ndims++
		typ = typ.Elem()
	}
	var vt VarType
	switch typ.Kind() {
	case reflect.Float64:
		vt = TypeDouble
	case reflect.Float32:
		vt = TypeFloat
	case reflect.Int, reflect.Int32, reflect.Int64, reflect.Uint, reflect.Uint32, reflect.Uint64:
		vt = TypeInt
	case reflect.Int16, reflect.Uint16:
		vt = TypeShort
	case reflect.Int8, reflect.Uint8:
		vt = TypeByte
	case reflect.String:
		return nil, 0, fmt.Errorf("text data cannot be represented in the output format")
	default:
		return nil, 0, fmt.Errorf("unsupported data type %T", val)
	}
	if ndims == 0 {
		return nil, 0, fmt.Errorf("scalar variables are not supported")
	}

	shape := make([]int, ndims)
	rv := reflect.ValueOf(val)
	for i := 0; ; i++ {
		shape[i] = rv.Len()
		if i == ndims-1 || rv.Len() == 0 {
			break
		}
		rv = rv.Index(0)
	}

	arr := sparse.ZerosDense(shape...)
	i := 0
	var walk func(v reflect.Value, depth int) error
	walk = func(v reflect.Value, depth int) error {
		if v.Len() != shape[depth] {
			return fmt.Errorf("ragged data: axis %d has lengths %d and %d",
				depth, shape[depth], v.Len())
		}
		for j := 0; j < v.Len(); j++ {
			e := v.Index(j)
			if depth < ndims-1 {
				if err := walk(e, depth+1); err != nil {
					return err
				}
				continue
			}
			switch e.Kind() {
			case reflect.Float64, reflect.Float32:
				arr.Elements[i] = e.Float()
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				arr.Elements[i] = float64(e.Int())
			default:
				arr.Elements[i] = float64(e.Uint())
			}
			i++
		}
		return nil
	}
	if err := walk(reflect.ValueOf(val), 0); err != nil {
		return nil, 0, err
	}
	return arr, vt, nil
}

func fromAttributes(am api.AttributeMap) []Attribute {
	if am == nil {
		return nil
	}
	var attrs []Attribute
	for _, key := range am.Keys() {
		val, ok := am.Get(key)
		if !ok {
			continue
		}
		if cv, ok := attrValue(val); ok {
			attrs = append(attrs, Attribute{Name: key, Value: cv})
		}
	}
	return attrs
}

// attrValue converts an attribute value as read into one of the types
// the classic format can store. Single values become one-element slices,
// unsigned integers are reinterpreted at the same width, and 64-bit
// integers are narrowed; values with no classic representation are
// dropped.
func attrValue(val interface{}) (interface{}, bool) {
	switch v := val.(type) {
	case string:
		return v, true
	case []float64:
		return v, true
	case float64:
		return []float64{v}, true
	case []float32:
		return v, true
	case float32:
		return []float32{v}, true
	case []int32:
		return v, true
	case int32:
		return []int32{v}, true
	case []int16:
		return v, true
	case int16:
		return []int16{v}, true
	case []uint8:
		return v, true
	case uint8:
		return []uint8{v}, true
	case []int8:
		b := make([]uint8, len(v))
		for i, x := range v {
			b[i] = uint8(x)
		}
		return b, true
	case int8:
		return []uint8{uint8(v)}, true
	case []int64:
		iv := make([]int32, len(v))
		for i, x := range v {
			iv[i] = int32(x)
		}
		return iv, true
	case int64:
		return []int32{int32(v)}, true
	case []uint16:
		iv := make([]int16, len(v))
		for i, x := range v {
			iv[i] = int16(x)
		}
		return iv, true
	case uint16:
		return []int16{int16(v)}, true
	case []uint32:
		iv := make([]int32, len(v))
		for i, x := range v {
			iv[i] = int32(x)
		}
		return iv, true
	case uint32:
		return []int32{int32(v)}, true
	case []uint64:
		iv := make([]int32, len(v))
		for i, x := range v {
			iv[i] = int32(x)
		}
		return iv, true
	case uint64:
		return []int32{int32(v)}, true
	default:
		return nil, false
	}
}
