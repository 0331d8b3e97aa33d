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

package cpplint

import "fmt"

// UpstreamUnavailableError reports that cpplint could not be started, died,
// or its output could not be read to the end.
type UpstreamUnavailableError struct {
	Cmd   string
	Cause error
}

func (e *UpstreamUnavailableError) Error() string {
	if e.Cmd == "" {
		return fmt.Sprintf("cpplint unavailable: %v", e.Cause)
	}
	return fmt.Sprintf("cpplint unavailable (%s): %v", e.Cmd, e.Cause)
}

func (e *UpstreamUnavailableError) Unwrap() error {
	return e.Cause
}
