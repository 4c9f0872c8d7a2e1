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

// Command relabel converts per-reach river hydrology NetCDF files to
// the variable schema used by the SWOT discharge algorithms.
package main

import (
	"fmt"
	"os"

	"github.com/swothydro/relabel/relabelutil"
)

func main() {
	if err := relabelutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
