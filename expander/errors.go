/*
NaiveSystems Analyze - A tool for static code analysis
Copyright (C) 2023  Naive Systems Ltd.

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package expander

import (
	"fmt"
	"strings"
)

// InvalidPathError is returned when an input path does not exist.
type InvalidPathError struct {
	Path  string
	Cause error
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("cannot access %q: %v", e.Path, e.Cause)
}

func (e *InvalidPathError) Unwrap() error {
	return e.Cause
}

// EmptyResultError is returned together with an empty file list when no
// input yielded a file. Callers may treat it as a warning.
type EmptyResultError struct {
	Inputs []string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no files to lint found in %s", strings.Join(e.Inputs, ", "))
}
