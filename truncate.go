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

import "github.com/ctessum/sparse"

// truncate clamps every variable in d to at most truncTimeSteps entries
// along the temporal dimension and truncCrossSections entries along
// every other dimension, keeping the leading window. Variables already
// within the limits are left alone.
func (d *ReachData) truncate() {
	for _, v := range d.Data {
		shape := make([]int, len(v.Data.Shape))
		changed := false
		for i, dim := range v.Dims {
			limit := truncCrossSections
			if dim == timeDim {
				limit = truncTimeSteps
			}
			shape[i] = v.Data.Shape[i]
			if shape[i] > limit {
				shape[i] = limit
				changed = true
			}
		}
		if !changed {
			continue
		}
		o := sparse.ZerosDense(shape...)
		idx := make([]int, len(shape))
		for n := range o.Elements {
			o.Elements[n] = v.Data.Get(idx...)
			for i := len(idx) - 1; i >= 0; i-- {
				idx[i]++
				if idx[i] < shape[i] {
					break
				}
				idx[i] = 0
			}
		}
		v.Data = o
	}
}
