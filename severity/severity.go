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

package severity

type Severity int

const (
	Unknown Severity = iota
	Info
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return "unknown"
}

// FromConfidence maps cpplint's confidence score (1-5) to a severity.
// 5 means cpplint is certain the line is a problem.
func FromConfidence(confidence int) Severity {
	switch {
	case confidence == 5:
		return Error
	case confidence == 3 || confidence == 4:
		return Warning
	case confidence == 1 || confidence == 2:
		return Info
	}
	return Unknown
}

// Parse is the inverse of String. Unrecognized names yield Unknown and false.
func Parse(name string) (Severity, bool) {
	for _, s := range []Severity{Info, Warning, Error, Unknown} {
		if s.String() == name {
			return s, true
		}
	}
	return Unknown, false
}
