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

package options

import (
	"flag"
	"fmt"

	"github.com/google/shlex"
	"naive.systems/cclint/cpplint"
	"naive.systems/cclint/expander"
	"naive.systems/cclint/formatter"
	"naive.systems/cclint/i18n"
)

type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

var colorModes = map[string]ColorMode{"auto": ColorAuto, "always": ColorAlways, "never": ColorNever}

var expandModes = map[string]bool{"no": true, "yes": true, "recursive": true}

// Config is everything a run needs, resolved once from the command line,
// the configuration file and the defaults, in that order of precedence.
type Config struct {
	Inputs      []expander.FileSpec
	Expand      expander.Options
	CpplintArgs []string
	Runner      cpplint.Runner
	Color       ColorMode
	Palette     formatter.Palette
	Strict      bool
	ShowCode    bool
	CountLines  bool
	DiffFile    string
	Lang        string
}

type resolver struct {
	set map[string]bool
}

func (r resolver) str(name, flagValue, fileValue string) string {
	if r.set[name] || fileValue == "" {
		return flagValue
	}
	return fileValue
}

func (r resolver) boolean(name string, flagValue bool, fileValue *bool) bool {
	if r.set[name] || fileValue == nil {
		return flagValue
	}
	return *fileValue
}

// Resolve combines parsed flags and the configuration file. fs must have
// been parsed already.
func Resolve(fs *flag.FlagSet, opts *SharedOptions, args *Args, file *File) (*Config, error) {
	r := resolver{set: make(map[string]bool)}
	fs.Visit(func(f *flag.Flag) {
		r.set[f.Name] = true
	})
	if file == nil {
		file = &File{}
	}

	expandDir := r.str("expanddir", opts.GetExpandDir(), file.ExpandDir)
	if !expandModes[expandDir] {
		return nil, fmt.Errorf("the only allowed expanddir formats are no, yes and recursive, got %q", expandDir)
	}
	colorName := r.str("color", opts.GetColor(), file.Color)
	colorMode, ok := colorModes[colorName]
	if !ok {
		return nil, fmt.Errorf("the only allowed color modes are auto, always and never, got %q", colorName)
	}
	lang := r.str("lang", opts.GetLang(), file.Lang)
	if !i18n.Supported(lang) {
		return nil, fmt.Errorf("unsupported language %q", lang)
	}
	palette, err := formatter.ParsePalette(file.Palette)
	if err != nil {
		return nil, err
	}

	cpplintArgs := []string{}
	if file.CpplintArgs != "" {
		fileArgs, err := shlex.Split(file.CpplintArgs)
		if err != nil {
			return nil, fmt.Errorf("shlex.Split(%s): %v", file.CpplintArgs, err)
		}
		cpplintArgs = append(cpplintArgs, fileArgs...)
	}
	cpplintArgs = append(cpplintArgs, args.Passthrough...)

	excludeDirs := []string{}
	excludeDirs = append(excludeDirs, file.ExcludeDirs...)
	excludeDirs = append(excludeDirs, opts.GetExcludeDirs()...)

	return &Config{
		Inputs: expander.ParseInputs(args.Positional, opts.GetDirs()),
		Expand: expander.Options{
			Extensions:  extensions(cpplintArgs, file.Extensions),
			ExpandDirs:  expandDir != "no",
			Recursive:   expandDir == "recursive",
			ExcludeDirs: excludeDirs,
		},
		CpplintArgs: cpplintArgs,
		Runner: cpplint.Runner{
			Bin:       r.str("cpplint_bin", opts.GetCpplintBin(), file.CpplintBin),
			PythonBin: opts.GetPythonBin(),
			Script:    opts.GetCpplintScript(),
			Charset:   r.str("charset", opts.GetCharset(), file.Charset),
		},
		Color:      colorMode,
		Palette:    palette,
		Strict:     r.boolean("strict", opts.GetStrict(), file.Strict),
		ShowCode:   r.boolean("show_code", opts.GetShowCode(), file.ShowCode),
		CountLines: opts.GetCountLines(),
		DiffFile:   opts.GetDiffFile(),
		Lang:       lang,
	}, nil
}

// extensions follows cpplint: --extensions replaces the defaults and
// --headers adds to them.
func extensions(cpplintArgs []string, fromFile []string) expander.ExtensionSet {
	base := cpplintValues(cpplintArgs, "extensions")
	if len(base) == 0 {
		base = fromFile
	}
	if len(base) == 0 {
		base = expander.DefaultExtensions
	}
	all := append([]string{}, base...)
	all = append(all, cpplintValues(cpplintArgs, "headers")...)
	return expander.NewExtensionSet(all...)
}
