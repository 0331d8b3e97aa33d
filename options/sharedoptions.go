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
	"strings"
)

type ArrayFlags []string

func (i *ArrayFlags) String() string {
	if i == nil {
		return ""
	}
	return strings.Join(*i, ",")
}

func (i *ArrayFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

type SharedOptions struct {
	Charset       *string
	Color         *string
	Config        *string
	CountLines    *bool
	CpplintBin    *string
	CpplintScript *string
	DiffFile      *string
	Dirs          ArrayFlags
	ExcludeDirs   ArrayFlags
	ExpandDir     *string
	Lang          *string
	PythonBin     *string
	ShowCode      *bool
	Strict        *bool
}

func (s SharedOptions) GetCharset() string {
	return *s.Charset
}

func (s SharedOptions) GetColor() string {
	return *s.Color
}

func (s SharedOptions) GetConfig() string {
	return *s.Config
}

func (s SharedOptions) GetCountLines() bool {
	return *s.CountLines
}

func (s SharedOptions) GetCpplintBin() string {
	return *s.CpplintBin
}

func (s SharedOptions) GetCpplintScript() string {
	return *s.CpplintScript
}

func (s SharedOptions) GetDiffFile() string {
	return *s.DiffFile
}

func (s SharedOptions) GetDirs() ArrayFlags {
	return s.Dirs
}

func (s SharedOptions) GetExcludeDirs() ArrayFlags {
	return s.ExcludeDirs
}

func (s SharedOptions) GetExpandDir() string {
	return *s.ExpandDir
}

func (s SharedOptions) GetLang() string {
	return *s.Lang
}

func (s SharedOptions) GetPythonBin() string {
	return *s.PythonBin
}

func (s SharedOptions) GetShowCode() bool {
	return *s.ShowCode
}

func (s SharedOptions) GetStrict() bool {
	return *s.Strict
}

var Defaults = struct {
	Charset       string
	Color         string
	Config        string
	CountLines    bool
	CpplintBin    string
	CpplintScript string
	DiffFile      string
	ExpandDir     string
	Lang          string
	PythonBin     string
	ShowCode      bool
	Strict        bool
}{
	Charset:       "utf-8",
	Color:         "auto",
	Config:        "",
	CountLines:    false,
	CpplintBin:    "cpplint",
	CpplintScript: "",
	DiffFile:      "",
	ExpandDir:     "no",
	Lang:          "en",
	PythonBin:     "python3",
	ShowCode:      false,
	Strict:        false,
}

// flagNames are the flags cclint adds on top of cpplint's, in usage order.
var flagNames = []string{
	"expanddir", "dir", "excludedir", "color", "strict", "cclint_config",
	"cpplint_bin", "cpplint_script", "python_bin", "charset",
	"show_code", "count_lines", "diff_file", "lang",
}

func NewSharedOptions(fs *flag.FlagSet) *SharedOptions {
	option := &SharedOptions{}

	option.Charset = fs.String("charset", Defaults.Charset, "Encoding of cpplint's output and of the source files")
	option.Color = fs.String("color", Defaults.Color, "Colorize the output: auto, always or never")
	option.Config = fs.String("cclint_config", Defaults.Config, "Path of the configuration file, default .cclint.yaml if it exists")
	option.CountLines = fs.Bool("count_lines", Defaults.CountLines, "Show the number of code lines checked")
	option.CpplintBin = fs.String("cpplint_bin", Defaults.CpplintBin, "Cpplint binary location")
	option.CpplintScript = fs.String("cpplint_script", Defaults.CpplintScript, "Cpplint script location, run with python_bin instead of cpplint_bin")
	option.DiffFile = fs.String("diff_file", Defaults.DiffFile, "Only check the files changed by this unified diff")
	option.ExpandDir = fs.String("expanddir", Defaults.ExpandDir, "How to deal with directory arguments: no, yes or recursive")
	option.Lang = fs.String("lang", Defaults.Lang, "Language of the summary: en or zh")
	option.PythonBin = fs.String("python_bin", Defaults.PythonBin, "Python binary location")
	option.ShowCode = fs.Bool("show_code", Defaults.ShowCode, "Print the source lines around each diagnostic")
	option.Strict = fs.Bool("strict", Defaults.Strict, "Fail when no file to check is found")

	fs.Var(&option.Dirs, "dir", "Directory whose files with matched extensions are checked, can be repeated")
	fs.Var(&option.ExcludeDirs, "excludedir", "Glob pattern of directories to skip, can be repeated")

	return option
}
