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

const (
	// FillValue marks invalid cells in the schema fields.
	FillValue = -999999999999.

	// QhatFillValue marks time steps with no valid discharge data.
	QhatFillValue = 99999.
)

// Names of the output dimensions. Arrays are time-major: the temporal
// dimension comes first.
const (
	timeDim  = "nt"
	spaceDim = "nx"
)

// The truncated mode clamps every variable to this window.
const (
	truncTimeSteps     = 10
	truncCrossSections = 5
)

// widthCoefficient relates river width to discharge in the hydraulic
// geometry relation w = 7.2 q^0.5 (Moody and Troutman, 2002), used to
// estimate discharge for reaches with no measured discharge field.
const widthCoefficient = 7.2

// A schemaField describes one variable in the target schema: the name it
// takes in the output, the names the producer may store its source data
// under, and the attributes the schema prescribes for it.
type schemaField struct {
	name     string   // name in the output file
	sources  []string // candidate source names, in order of preference
	required bool     // a missing required source is a FileFormatError

	longName string
	units    string

	validMin, validMax float64
	hasRange           bool

	fill    float64
	hasFill bool
}

// attrs returns the attribute list the schema prescribes for the field.
func (f *schemaField) attrs() []Attribute {
	a := []Attribute{
		{Name: "long_name", Value: f.longName},
		{Name: "units", Value: f.units},
	}
	if f.hasRange {
		a = append(a,
			Attribute{Name: "valid_min", Value: []float64{f.validMin}},
			Attribute{Name: "valid_max", Value: []float64{f.validMax}},
		)
	}
	if f.hasFill {
		a = append(a, Attribute{Name: "_FillValue", Value: []float64{f.fill}})
	}
	return a
}

// The schema fields. Source names are tried group-qualified first for
// NetCDF4 inputs and bare for classic inputs; the slope field has been
// published under two resolutions, so both are candidates. "XS_Timseries"
// is the producer's spelling.
var (
	widthField = &schemaField{
		name:     "width",
		sources:  []string{"XS_Timseries/W", "W"},
		required: true,
		longName: "node width",
		units:    "m",
		validMin: 0, validMax: 100000, hasRange: true,
		fill: FillValue, hasFill: true,
	}

	slopeField = &schemaField{
		name:     "slope2",
		sources:  []string{"Reach_Timeseries/S_90m", "Reach_Timeseries/S_1km", "S_90m", "S_1km"},
		required: true,
		longName: "enhanced water surface slope with respect to geoid",
		units:    "m/m",
		validMin: -0.001, validMax: 0.1, hasRange: true,
		fill: FillValue, hasFill: true,
	}

	wseField = &schemaField{
		name:     "wse",
		sources:  []string{"XS_Timseries/H_1km", "H_1km"},
		required: true,
		longName: "water surface elevation with respect to the geoid",
		units:    "m",
		validMin: -1000, validMax: 100000, hasRange: true,
		fill: FillValue, hasFill: true,
	}

	// The measured discharge field is consumed by the Qhat derivation
	// when present and does not appear in the output under its own name.
	// It is not required because Qhat can be estimated from width.
	dischargeField = &schemaField{
		sources: []string{"XS_Timseries/Q", "Q"},
	}

	dxaField = &schemaField{
		name:     "d_x_area",
		longName: "change in cross-sectional area",
		units:    "m^2",
		validMin: -10000000, validMax: 10000000, hasRange: true,
		fill: FillValue, hasFill: true,
	}

	qhatField = &schemaField{
		name:     "Qhat",
		longName: "Qhat",
		units:    "m^3/s",
		fill:     QhatFillValue, hasFill: true,
	}

	timeField = &schemaField{
		name:     timeDim,
		sources:  []string{"Time steps"},
		longName: "nt",
		units:    "day",
	}

	crossSectionField = &schemaField{
		name:     spaceDim,
		sources:  []string{"XS_90m"},
		longName: "nx",
		units:    "orthogonals",
	}
)
