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
	"math"
	"testing"

	"github.com/ctessum/sparse"
)

func arrayCompare(have, want *sparse.DenseArray, tolerance float64, name string, t *testing.T) {
	if len(have.Shape) != len(want.Shape) {
		t.Errorf("%s: want shape %v but have shape %v", name, want.Shape, have.Shape)
		return
	}
	for i, l := range want.Shape {
		if have.Shape[i] != l {
			t.Errorf("%s: want shape %v but have shape %v", name, want.Shape, have.Shape)
			return
		}
	}
	for i, wantv := range want.Elements {
		havev := have.Elements[i]
		if math.IsNaN(havev) || math.IsInf(havev, 0) {
			t.Errorf("%s, element %d: is %g", name, i, havev)
		}
		if math.Abs(havev-wantv)/math.Abs(havev+wantv)*2 > tolerance {
			t.Errorf("%s, element %d: want %g but have %g", name, i, wantv, havev)
		}
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want float64
	}{
		{"odd", []float64{3, 1, 2}, 2},
		{"even", []float64{4, 1, 3, 2}, 2.5},
		{"single", []float64{5}, 5},
	}
	for _, test := range tests {
		if have := median(test.in); have != test.want {
			t.Errorf("%s: want %g but have %g", test.name, test.want, have)
		}
	}
}

func TestFillOf(t *testing.T) {
	v := &Variable{Attrs: []Attribute{{Name: "_FillValue", Value: []float64{-999}}}}
	if have := fillOf(v); have != -999 {
		t.Errorf("want -999 but have %g", have)
	}
	v = &Variable{Attrs: []Attribute{{Name: "_FillValue", Value: []float32{9999}}}}
	if have := fillOf(v); have != 9999 {
		t.Errorf("want 9999 but have %g", have)
	}
	v = &Variable{}
	if have := fillOf(v); have != FillValue {
		t.Errorf("want %g but have %g", float64(FillValue), have)
	}
}

func TestDeriveDXArea(t *testing.T) {
	w := sparse.ZerosDense(2, 3)
	w.Elements = []float64{10, 20, 30, 40, 50, FillValue}
	h := sparse.ZerosDense(2, 3)
	h.Elements = []float64{1, 2, 3, 4, 5, 6}

	// The median of the valid widths is 30 and the median of the
	// elevations is 3.5.
	want := sparse.ZerosDense(2, 3)
	want.Elements = []float64{-25, -7.5, 0, -2.5, -15, FillValue}

	arrayCompare(deriveDXArea(w, h, FillValue, FillValue), want, 1.0e-10, "d_x_area", t)
}

func TestDeriveDXAreaAllInvalid(t *testing.T) {
	w := sparse.ZerosDense(1, 2)
	w.Elements = []float64{FillValue, FillValue}
	h := sparse.ZerosDense(1, 2)
	h.Elements = []float64{1, 2}

	have := deriveDXArea(w, h, FillValue, FillValue)
	for i, v := range have.Elements {
		if v != FillValue {
			t.Errorf("element %d: want the fill value but have %g", i, v)
		}
	}
}

func TestDeriveQhat(t *testing.T) {
	q := sparse.ZerosDense(3, 3)
	q.Elements = []float64{
		1, 2, 3,
		4, FillValue, 6,
		FillValue, FillValue, FillValue,
	}
	want := sparse.ZerosDense(3, 3)
	want.Elements = []float64{
		2, 2, 2,
		5, 5, 5,
		QhatFillValue, QhatFillValue, QhatFillValue,
	}
	arrayCompare(deriveQhat(q, FillValue), want, 1.0e-10, "Qhat", t)
}

func TestEstimateDischarge(t *testing.T) {
	w := sparse.ZerosDense(2, 2)
	w.Elements = []float64{7.2, 14.4, 0, FillValue}
	want := sparse.ZerosDense(2, 2)
	want.Elements = []float64{1, 4, 0, FillValue}
	arrayCompare(estimateDischarge(w, FillValue), want, 1.0e-10, "discharge", t)
}
