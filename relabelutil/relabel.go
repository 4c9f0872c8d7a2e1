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

package relabelutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/swothydro/relabel"
)

// Log is the logger the batch converter reports skipped files to.
var Log logrus.FieldLogger = logrus.StandardLogger()

// RelabelAll converts every NetCDF file in inputDir to the discharge
// schema, writing one output file per input file to outputDir and
// creating outputDir if it does not exist. Files that cannot be
// converted are logged and skipped, and an error is returned at the end
// if any file failed. Progress messages are sent to msgChan if it is
// not nil.
func RelabelAll(inputDir, outputDir string, truncated bool, msgChan chan string) error {
	files, err := filepath.Glob(filepath.Join(inputDir, "*.nc"))
	if err != nil {
		return fmt.Errorf("relabel: listing input files: %v", err)
	}
	sort.Strings(files)
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return fmt.Errorf("relabel: creating output directory: %v", err)
	}
	convert := relabel.Relabel
	if truncated {
		convert = relabel.RelabelTruncated
	}
	var failed int
	for i, file := range files {
		if msgChan != nil {
			msgChan <- fmt.Sprintf("Converting file %d of %d: %s\n",
				i+1, len(files), filepath.Base(file))
		}
		if _, err := convert(file, outputDir); err != nil {
			Log.WithFields(logrus.Fields{
				"file": file,
			}).WithError(err).Error("converting file")
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("relabel: %d of %d files failed", failed, len(files))
	}
	return nil
}
