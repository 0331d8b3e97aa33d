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

import (
	"regexp"
	"strconv"
	"strings"

	"naive.systems/cclint/severity"
)

// cpplint's default (emacs) output format:
//
//	src/foo.cc:12:  Missing space before {  [whitespace/braces] [5]
var diagnosticLine = regexp.MustCompile(`^(.+?):(\d+):  (.*)  \[([^\[\]]+)\] \[(\d)\]$`)

var (
	doneLine     = regexp.MustCompile(`^Done processing (.+)$`)
	totalLine    = regexp.MustCompile(`^Total errors found: \d+$`)
	skippingLine = regexp.MustCompile(`^Skipping input '(.+)': (.+)$`)
	ignoringLine = regexp.MustCompile(`^Ignoring (.+?); (.+)$`)
)

type Diagnostic struct {
	Path       string
	LineNumber int
	Message    string
	Category   string
	Confidence int
	Severity   severity.Severity
}

// ParseLine parses one line of cpplint output. Lines in any other shape
// (summaries, other --output formats, stray text) return false.
func ParseLine(line string) (Diagnostic, bool) {
	match := diagnosticLine.FindStringSubmatch(strings.TrimRight(line, "\r"))
	if match == nil {
		return Diagnostic{}, false
	}
	linenum, err := strconv.Atoi(match[2])
	if err != nil {
		return Diagnostic{}, false
	}
	confidence, err := strconv.Atoi(match[5])
	if err != nil {
		return Diagnostic{}, false
	}
	return Diagnostic{
		Path:       match[1],
		LineNumber: linenum,
		Message:    match[3],
		Category:   match[4],
		Confidence: confidence,
		Severity:   severity.FromConfidence(confidence),
	}, true
}

type ControlKind int

const (
	// ControlDone marks the end of a file.
	ControlDone ControlKind = iota + 1
	// ControlTotal is cpplint's own summary line.
	ControlTotal
	// ControlNotice is a file cpplint skipped, with the reason.
	ControlNotice
)

type Control struct {
	Kind   ControlKind
	Path   string
	Reason string
}

// ParseControl recognizes the bookkeeping lines cpplint prints around
// diagnostics.
func ParseControl(line string) (Control, bool) {
	line = strings.TrimRight(line, "\r")
	if m := doneLine.FindStringSubmatch(line); m != nil {
		return Control{Kind: ControlDone, Path: m[1]}, true
	}
	if totalLine.MatchString(line) {
		return Control{Kind: ControlTotal}, true
	}
	if m := skippingLine.FindStringSubmatch(line); m != nil {
		return Control{Kind: ControlNotice, Path: m[1], Reason: lowerFirst(m[2])}, true
	}
	if m := ignoringLine.FindStringSubmatch(line); m != nil {
		return Control{Kind: ControlNotice, Path: m[1], Reason: lowerFirst(m[2])}, true
	}
	return Control{}, false
}

func lowerFirst(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
