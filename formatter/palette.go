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
	"fmt"
	"strings"

	"github.com/fatih/color"
	"naive.systems/cclint/severity"
)

// Palette maps a severity to the attributes its label is printed with.
// An empty attribute list prints the terminal's default color.
type Palette map[severity.Severity][]color.Attribute

func DefaultPalette() Palette {
	return Palette{
		severity.Error:   {color.FgRed},
		severity.Warning: {color.FgYellow},
		severity.Info:    {},
		severity.Unknown: {color.FgMagenta},
	}
}

var colorNames = map[string]color.Attribute{
	"black":   color.FgBlack,
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"cyan":    color.FgCyan,
	"white":   color.FgWhite,
}

// hi turns a foreground color into its high intensity variant.
const hi = color.FgHiBlack - color.FgBlack

// ParsePalette reads a palette from configuration, such as
//
//	error: bold red
//	info: hi blue
//
// Severities that are not mentioned keep their default.
func ParsePalette(spec map[string]string) (Palette, error) {
	p := DefaultPalette()
	for name, value := range spec {
		sev, ok := severity.Parse(name)
		if !ok {
			return nil, fmt.Errorf("unknown severity %q in palette", name)
		}
		attrs, err := parseColor(value)
		if err != nil {
			return nil, fmt.Errorf("palette %s: %v", name, err)
		}
		p[sev] = attrs
	}
	return p, nil
}

func parseColor(value string) ([]color.Attribute, error) {
	attrs := []color.Attribute{}
	var modifiers []color.Attribute
	high := false
	var fg color.Attribute
	for _, word := range strings.Fields(strings.ToLower(value)) {
		switch word {
		case "bold":
			modifiers = append(modifiers, color.Bold)
		case "dim":
			modifiers = append(modifiers, color.Faint)
		case "underline":
			modifiers = append(modifiers, color.Underline)
		case "hi":
			high = true
		case "default":
			fg = 0
		default:
			attr, ok := colorNames[word]
			if !ok {
				return nil, fmt.Errorf("unknown color %q", word)
			}
			fg = attr
		}
	}
	attrs = append(attrs, modifiers...)
	if fg != 0 {
		if high {
			fg += hi
		}
		attrs = append(attrs, fg)
	}
	return attrs, nil
}
