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
	"sort"

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/floats"
)

func isValid(v, fill float64) bool {
	return v != fill && !math.IsNaN(v)
}

// validValues returns the entries of a that are not fill values.
func validValues(a *sparse.DenseArray, fill float64) []float64 {
	var vals []float64
	for _, v := range a.Elements {
		if isValid(v, fill) {
			vals = append(vals, v)
		}
	}
	return vals
}

func mean(v []float64) float64 {
	return floats.Sum(v) / float64(len(v))
}

// median returns the middle value of v, averaging the two central
// values when v has an even number of entries.
func median(v []float64) float64 {
	s := make([]float64, len(v))
	copy(s, v)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

// fillOf returns the fill value marking invalid cells in v, or the
// schema default if v does not declare one.
func fillOf(v *Variable) float64 {
	switch fv := v.attr("_FillValue").(type) {
	case []float64:
		if len(fv) > 0 {
			return fv[0]
		}
	case []float32:
		if len(fv) > 0 {
			return float64(fv[0])
		}
	case []int32:
		if len(fv) > 0 {
			return float64(fv[0])
		}
	case []int16:
		if len(fv) > 0 {
			return float64(fv[0])
		}
	case []uint8:
		if len(fv) > 0 {
			return float64(fv[0])
		}
	}
	return FillValue
}

// deriveDXArea computes the change in cross-sectional area
// (wbar - w) * (h - hbar) / 2 from width and water surface elevation,
// where wbar and hbar are the medians of the valid cells. Cells where
// either input is invalid get the fill value.
func deriveDXArea(w, h *sparse.DenseArray, wFill, hFill float64) *sparse.DenseArray {
	o := sparse.ZerosDense(w.Shape...)
	wv := validValues(w, wFill)
	hv := validValues(h, hFill)
	if len(wv) == 0 || len(hv) == 0 {
		for i := range o.Elements {
			o.Elements[i] = FillValue
		}
		return o
	}
	wbar, hbar := median(wv), median(hv)
	for i, wi := range w.Elements {
		hi := h.Elements[i]
		if !isValid(wi, wFill) || !isValid(hi, hFill) {
			o.Elements[i] = FillValue
			continue
		}
		o.Elements[i] = (wbar - wi) * (hi - hbar) / 2
	}
	return o
}

// deriveQhat averages discharge over the cross sections at each time
// step and broadcasts the average back along the spatial axis, so that
// the result has the same shape as the discharge series. Time steps
// with no valid discharge get the Qhat fill value.
func deriveQhat(q *sparse.DenseArray, fill float64) *sparse.DenseArray {
	o := sparse.ZerosDense(q.Shape...)
	nt, nx := q.Shape[0], q.Shape[1]
	for t := 0; t < nt; t++ {
		var vals []float64
		for x := 0; x < nx; x++ {
			if v := q.Get(t, x); isValid(v, fill) {
				vals = append(vals, v)
			}
		}
		qbar := QhatFillValue
		if len(vals) > 0 {
			qbar = mean(vals)
		}
		for x := 0; x < nx; x++ {
			o.Set(qbar, t, x)
		}
	}
	return o
}

// estimateDischarge estimates discharge from width through the
// hydraulic geometry relation w = 7.2 q^0.5, for reaches where no
// discharge was measured. Invalid width cells stay invalid.
func estimateDischarge(w *sparse.DenseArray, fill float64) *sparse.DenseArray {
	o := sparse.ZerosDense(w.Shape...)
	for i, wi := range w.Elements {
		if !isValid(wi, fill) {
			o.Elements[i] = FillValue
			continue
		}
		q := wi / widthCoefficient
		o.Elements[i] = q * q
	}
	return o
}
