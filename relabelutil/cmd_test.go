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
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/swothydro/relabel"
)

func TestVersionCmd(t *testing.T) {
	buf := new(bytes.Buffer)
	Root.SetOutput(buf)
	defer Root.SetOutput(nil)
	Root.SetArgs([]string{"version"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	if want := "relabel v" + relabel.Version; !strings.Contains(buf.String(), want) {
		t.Errorf("want output containing %q but have %q", want, buf.String())
	}
}

func TestRunCmd(t *testing.T) {
	dir, err := ioutil.TempDir("", "relabelutil")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	inDir := filepath.Join(dir, "in")
	if err = os.MkdirAll(inDir, os.ModePerm); err != nil {
		t.Fatal(err)
	}
	writeInput(t, inDir, "reach.nc", 6, 4, true)
	outDir := filepath.Join(dir, "out")

	Cfg.Set("InputDir", inDir)
	Cfg.Set("OutputDir", outDir)
	Root.SetArgs([]string{"run"})
	if err = Root.Execute(); err != nil {
		t.Fatal(err)
	}
	if _, err = os.Stat(filepath.Join(outDir, "reach.nc")); err != nil {
		t.Errorf("missing output file: %v", err)
	}
}

func TestTruncatedCmd(t *testing.T) {
	dir, err := ioutil.TempDir("", "relabelutil")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	inDir := filepath.Join(dir, "in")
	if err = os.MkdirAll(inDir, os.ModePerm); err != nil {
		t.Fatal(err)
	}
	writeInput(t, inDir, "reach.nc", 30, 8, true)
	outDir := filepath.Join(dir, "out")

	Cfg.Set("InputDir", inDir)
	Cfg.Set("OutputDir", outDir)
	Root.SetArgs([]string{"truncated"})
	if err = Root.Execute(); err != nil {
		t.Fatal(err)
	}
	o, err := relabel.ReadReach(filepath.Join(outDir, "reach.nc"))
	if err != nil {
		t.Fatal(err)
	}
	width := o.Data["width"]
	if width == nil {
		t.Fatal("width variable missing")
	}
	if width.Data.Shape[0] != 10 || width.Data.Shape[1] != 5 {
		t.Errorf("width: want shape [10 5] but have %v", width.Data.Shape)
	}
}
