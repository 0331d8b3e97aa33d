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

package formatter

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/golang/glog"
	"golang.org/x/text/message"
	"naive.systems/cclint/cpplint"
	"naive.systems/cclint/i18n"
	"naive.systems/cclint/severity"
	"naive.systems/cclint/source"
	"naive.systems/cclint/stats"
)

const (
	fileIndent = "      "
	lineIndent = "        "
	codeIndent = "          "
)

// LineSource is a finite, non-restartable sequence of output lines.
// *bufio.Scanner and *cpplint.Stream both satisfy it.
type LineSource interface {
	Scan() bool
	Text() string
	Err() error
}

type Options struct {
	Color   bool
	Palette Palette
	// KnownFiles is the list cpplint was run on. When set, a diagnostic
	// for any other file is flagged. Directories cover the files below them.
	KnownFiles []string
	ShowCode   bool
	// Charset of the source files, for ShowCode.
	Charset string
	Printer *message.Printer
}

type FileGroup struct {
	File        string
	Diagnostics []cpplint.Diagnostic
	// Unexpected is set when File is not among Options.KnownFiles.
	Unexpected bool
}

type Notice struct {
	File   string
	Reason string
}

type Report struct {
	Groups      []FileGroup
	Counts      stats.SeverityCount
	Passthrough []string
	Notices     []Notice
	// Passed lists the files cpplint finished without a diagnostic.
	Passed []string
}

func (r *Report) Total() int {
	return r.Counts.Total()
}

func (r *Report) Clean() bool {
	return r.Counts.Total() == 0
}

type formatter struct {
	w      io.Writer
	opts   Options
	p      *message.Printer
	known  map[string]struct{}
	report *Report
	// index of the open group in report.Groups, or -1
	current int
	// files with at least one diagnostic so far
	reported map[string]bool
	entries  int
	prevFail bool
	writeErr error

	fail, pass, warn, lineNo, dim, note *color.Color
	sevColors                           map[severity.Severity]*color.Color
}

func newColor(enabled bool, attrs ...color.Attribute) *color.Color {
	if len(attrs) == 0 {
		return nil
	}
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func paint(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

func newFormatter(w io.Writer, opts Options) *formatter {
	f := &formatter{
		w:        w,
		opts:     opts,
		p:        opts.Printer,
		report:   &Report{Groups: []FileGroup{}, Passthrough: []string{}, Notices: []Notice{}, Passed: []string{}},
		current:  -1,
		reported: make(map[string]bool),
	}
	if f.p == nil {
		f.p = i18n.GetPrinter("en")
	}
	if len(opts.KnownFiles) > 0 {
		f.known = make(map[string]struct{})
		for _, k := range opts.KnownFiles {
			f.known[filepath.Clean(k)] = struct{}{}
		}
	}
	palette := opts.Palette
	if palette == nil {
		palette = DefaultPalette()
	}
	f.fail = newColor(opts.Color, color.FgRed)
	f.pass = newColor(opts.Color, color.FgGreen)
	f.warn = newColor(opts.Color, color.FgYellow)
	f.lineNo = newColor(opts.Color, color.FgYellow)
	f.dim = newColor(opts.Color, color.Faint)
	f.note = newColor(opts.Color, color.FgCyan, color.Faint)
	f.sevColors = make(map[severity.Severity]*color.Color)
	for sev, attrs := range palette {
		f.sevColors[sev] = newColor(opts.Color, attrs...)
	}
	return f
}

// Format reads cpplint's output from lines and writes it to w regrouped by
// file, followed by a summary. Each line is written as soon as it is read.
// Lines that are neither diagnostics nor cpplint's bookkeeping are echoed
// unchanged.
//
// If lines fails, the partial report is returned with an
// *cpplint.UpstreamUnavailableError and no summary is written.
func Format(w io.Writer, lines LineSource, opts Options) (*Report, error) {
	f := newFormatter(w, opts)
	for lines.Scan() {
		f.handle(lines.Text())
	}
	f.closeGroup()
	if err := lines.Err(); err != nil {
		var upstream *cpplint.UpstreamUnavailableError
		if !errors.As(err, &upstream) {
			err = &cpplint.UpstreamUnavailableError{Cause: err}
		}
		return f.report, err
	}
	f.summary()
	if f.writeErr != nil {
		return f.report, fmt.Errorf("writing report: %v", f.writeErr)
	}
	return f.report, nil
}

func (f *formatter) printf(format string, a ...interface{}) {
	if f.writeErr != nil {
		return
	}
	_, f.writeErr = fmt.Fprintf(f.w, format, a...)
}

func (f *formatter) handle(line string) {
	if d, ok := cpplint.ParseLine(line); ok {
		f.diagnostic(d)
		return
	}
	if c, ok := cpplint.ParseControl(line); ok {
		switch c.Kind {
		case cpplint.ControlDone:
			f.done(c.Path)
		case cpplint.ControlNotice:
			f.notice(c.Path, c.Reason)
		case cpplint.ControlTotal:
			// replaced by our own summary
		}
		return
	}
	f.report.Passthrough = append(f.report.Passthrough, line)
	f.printf("%s\n", line)
}

func (f *formatter) diagnostic(d cpplint.Diagnostic) {
	if f.current < 0 || f.report.Groups[f.current].File != d.Path {
		f.closeGroup()
		if f.reported[d.Path] {
			glog.Warningf("diagnostics for %s are not contiguous, starting a new group", d.Path)
		}
		f.openGroup(d.Path)
	}
	g := &f.report.Groups[f.current]
	g.Diagnostics = append(g.Diagnostics, d)
	f.reported[d.Path] = true
	f.report.Counts.Accumulate(d.Severity)

	f.printf("%s%s %s %s\n", lineIndent,
		paint(f.lineNo, fmt.Sprintf("#%d", d.LineNumber)),
		paint(f.sevColors[d.Severity], d.Severity.String()),
		paint(f.dim, fmt.Sprintf("[%s] %s", d.Category, d.Message)))
	if f.opts.ShowCode {
		f.code(d)
	}
}

func (f *formatter) code(d cpplint.Diagnostic) {
	snippet, err := source.GetCode(d.Path, d.LineNumber, f.opts.Charset)
	if err != nil {
		glog.Warningf("source.GetCode(%s, %d): %v", d.Path, d.LineNumber, err)
		return
	}
	for _, l := range strings.SplitAfter(snippet, "\n") {
		if l == "" {
			continue
		}
		f.printf("%s%s\n", codeIndent, paint(f.dim, strings.TrimSuffix(l, "\n")))
	}
}

func (f *formatter) openGroup(file string) {
	unexpected := !f.isKnown(file)
	if unexpected {
		glog.Warningf("cpplint reported %s, which is not in the file list", file)
	}
	f.report.Groups = append(f.report.Groups, FileGroup{File: file, Unexpected: unexpected})
	f.current = len(f.report.Groups) - 1

	f.printf("\n")
	header := fmt.Sprintf("%s%s %s", fileIndent, paint(f.fail, "✗"), file)
	if unexpected {
		header += " " + paint(f.warn, "⚠")
	}
	f.printf("%s\n", header)
	f.entries++
	f.prevFail = true
}

func (f *formatter) closeGroup() {
	f.current = -1
}

func (f *formatter) done(file string) {
	if f.current >= 0 && f.report.Groups[f.current].File == file {
		f.closeGroup()
		return
	}
	if f.reported[file] {
		return
	}
	f.report.Passed = append(f.report.Passed, file)
	f.entry(paint(f.pass, "✓"), file)
}

func (f *formatter) notice(file, reason string) {
	f.report.Notices = append(f.report.Notices, Notice{File: file, Reason: reason})
	f.entry(paint(f.warn, "⚠"), file)
	f.printf("%s%s\n", lineIndent, paint(f.note, "// "+reason))
}

// entry writes a one line file status, separated from a preceding failed
// group by a blank line.
func (f *formatter) entry(mark, file string) {
	if f.entries == 0 || f.prevFail {
		f.printf("\n")
	}
	f.printf("%s%s %s\n", fileIndent, mark, file)
	f.entries++
	f.prevFail = false
}

func (f *formatter) isKnown(file string) bool {
	if f.known == nil {
		return true
	}
	clean := filepath.Clean(file)
	if _, ok := f.known[clean]; ok {
		return true
	}
	for dir := filepath.Dir(clean); ; dir = filepath.Dir(dir) {
		if _, ok := f.known[dir]; ok {
			return true
		}
		if parent := filepath.Dir(dir); parent == dir {
			return false
		}
	}
}

func (f *formatter) summary() {
	c := f.report.Counts
	f.printf("\n")
	if c.Total() == 0 {
		f.printf("%s\n", paint(f.pass, f.p.Sprintf(i18n.Clean)))
		return
	}
	var text string
	if c.Unknown > 0 {
		text = f.p.Sprintf(i18n.SummaryUnknown, c.Total(), c.Error, c.Warning, c.Info, c.Unknown)
	} else {
		text = f.p.Sprintf(i18n.Summary, c.Total(), c.Error, c.Warning, c.Info)
	}
	summaryColor := f.warn
	if c.Error > 0 {
		summaryColor = f.fail
	}
	f.printf("%s\n", paint(summaryColor, text))
}
