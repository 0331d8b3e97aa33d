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
	"io"
	"strings"
)

// cpplint options that take a value. They may be written as "--x v" and
// always go to cpplint, even when a flag of ours has the same name.
var cpplintValueFlags = map[string]bool{
	"config":       true,
	"counting":     true,
	"exclude":      true,
	"extensions":   true,
	"filter":       true,
	"headers":      true,
	"includeorder": true,
	"linelength":   true,
	"output":       true,
	"repository":   true,
	"root":         true,
	"v":            true,
	"verbose":      true,
}

type boolFlag interface {
	IsBoolFlag() bool
}

// Args is the command line split between cclint and cpplint.
type Args struct {
	// Own are cclint's flags, ready for flag.FlagSet.Parse.
	Own []string
	// Passthrough are cpplint's flags in their original order.
	Passthrough []string
	Positional  []string
}

// SplitArgs separates the flags fs knows from everything else, which is
// meant for cpplint. "-h" and "--help" return flag.ErrHelp.
func SplitArgs(fs *flag.FlagSet, args []string) (*Args, error) {
	split := &Args{Own: []string{}, Passthrough: []string{}, Positional: []string{}}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			split.Positional = append(split.Positional, args[i+1:]...)
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			split.Positional = append(split.Positional, arg)
			continue
		}
		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if name == "h" || name == "help" {
			return nil, flag.ErrHelp
		}
		f := fs.Lookup(name)
		if f == nil || cpplintValueFlags[name] {
			split.Passthrough = append(split.Passthrough, arg)
			if !hasValue && cpplintValueFlags[name] && strings.HasPrefix(arg, "--") && i+1 < len(args) {
				i++
				split.Passthrough = append(split.Passthrough, args[i])
			}
			continue
		}
		split.Own = append(split.Own, arg)
		if b, ok := f.Value.(boolFlag); hasValue || (ok && b.IsBoolFlag()) {
			continue
		}
		if i+1 >= len(args) {
			return nil, fmt.Errorf("flag needs an argument: %s", arg)
		}
		i++
		split.Own = append(split.Own, args[i])
	}
	return split, nil
}

// cpplintValues returns the values given to cpplint's --name flag.
func cpplintValues(passthrough []string, name string) []string {
	values := []string{}
	for i := 0; i < len(passthrough); i++ {
		arg := passthrough[i]
		if !strings.HasPrefix(arg, "--") {
			continue
		}
		n, v, hasValue := strings.Cut(arg[2:], "=")
		if n != name {
			continue
		}
		if !hasValue {
			if i+1 >= len(passthrough) {
				continue
			}
			i++
			v = passthrough[i]
		}
		values = append(values, v)
	}
	return values
}

// Usage prints cclint's flags after cpplint's synopsis.
func Usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, "Syntax: cclint [--expanddir=no|yes|recursive] [--dir=dir]... [--excludedir=pattern]...\n")
	fmt.Fprintf(w, "               [cpplint flags] <file|dir> [file|dir] ...\n\n")
	fmt.Fprintf(w, "  Every flag not listed below is passed to cpplint, see `cpplint --help`.\n\n")
	fmt.Fprintf(w, "  Flags added by cclint:\n\n")
	for _, name := range flagNames {
		f := fs.Lookup(name)
		if f == nil || cpplintValueFlags[name] {
			continue
		}
		if f.DefValue != "" {
			fmt.Fprintf(w, "    --%s (default %q)\n", f.Name, f.DefValue)
		} else {
			fmt.Fprintf(w, "    --%s\n", f.Name)
		}
		fmt.Fprintf(w, "      %s\n", f.Usage)
	}
}
