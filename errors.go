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

import "fmt"

// A FileFormatError reports an input file whose contents do not match
// the expected per-reach layout: a missing source variable, a shape the
// schema cannot accept, or a type that cannot be represented in the
// output format.
type FileFormatError struct {
	Path string // the input file
	Var  string // the offending variable, if any
	Msg  string
}

func (e *FileFormatError) Error() string {
	if e.Var == "" {
		return fmt.Sprintf("relabel: %s: %s", e.Path, e.Msg)
	}
	return fmt.Sprintf("relabel: %s: variable %s: %s", e.Path, e.Var, e.Msg)
}

// An IOError reports a file that could not be read or written.
type IOError struct {
	Op   string // "reading", "writing", or "creating"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("relabel: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func newFormatError(path, v, format string, args ...interface{}) error {
	return &FileFormatError{Path: path, Var: v, Msg: fmt.Sprintf(format, args...)}
}
