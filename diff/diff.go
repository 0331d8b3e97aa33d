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

package diff

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var hunkHeader = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

type Hunk struct {
	OldPos, OldLines, NewPos, NewLines int
}

type File struct {
	// OldName is empty for added files, NewName is empty for deleted files.
	OldName string
	NewName string
	Hunks   []*Hunk
}

type Patch struct {
	Files []*File
}

/*
Parse reads a unified diff as produced by `git diff`.

Only the "--- ", "+++ " and "@@ -" lines matter; everything else (diff
headers, index lines, hunk bodies) is skipped. Names keep git's a/ and b/
prefixes stripped, and /dev/null becomes the empty string:

	--- a/src/foo.cc
	+++ b/src/foo.cc
	@@ -2,12 +2,11 @@ namespace foo {
*/
func Parse(text string) (*Patch, error) {
	var p Patch
	var f *File
	for i, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "--- "):
			name, err := stripName(line, "--- ", "a/")
			if err != nil {
				return nil, fmt.Errorf("line %d: %v", i+1, err)
			}
			f = &File{OldName: name}
			p.Files = append(p.Files, f)
		case strings.HasPrefix(line, "+++ "):
			if f == nil || len(f.Hunks) > 0 || f.NewName != "" {
				return nil, fmt.Errorf("line %d: unexpected '%s'", i+1, line)
			}
			name, err := stripName(line, "+++ ", "b/")
			if err != nil {
				return nil, fmt.Errorf("line %d: %v", i+1, err)
			}
			f.NewName = name
		case strings.HasPrefix(line, "@@ -"):
			if f == nil {
				return nil, fmt.Errorf("line %d: hunk outside of a file", i+1)
			}
			h, err := parseHunk(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %v", i+1, err)
			}
			f.Hunks = append(f.Hunks, h)
		}
	}
	return &p, nil
}

func ParseFile(path string) (*Patch, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %v", err)
	}
	return Parse(string(content))
}

func stripName(line, marker, prefix string) (string, error) {
	name := strings.TrimPrefix(line, marker)
	// git appends a tab and a timestamp for some diff formats
	name, _, _ = strings.Cut(name, "\t")
	if name == "/dev/null" {
		return "", nil
	}
	if !strings.HasPrefix(name, prefix) {
		return "", fmt.Errorf("invalid file name '%s'", name)
	}
	return strings.TrimPrefix(name, prefix), nil
}

func parseHunk(line string) (*Hunk, error) {
	match := hunkHeader.FindStringSubmatch(line)
	if match == nil {
		return nil, fmt.Errorf("could not extract hunk info from '%s'", line)
	}
	nums := [4]int{0, 1, 0, 1}
	for i, s := range match[1:] {
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("strconv.Atoi(%s): %v", s, err)
		}
		nums[i] = n
	}
	return &Hunk{OldPos: nums[0], OldLines: nums[1], NewPos: nums[2], NewLines: nums[3]}, nil
}

// ChangedFiles lists the post-image names of files the patch adds or
// modifies, in patch order. Deleted files are left out.
func (p *Patch) ChangedFiles() []string {
	var names []string
	for _, f := range p.Files {
		if f.NewName != "" {
			names = append(names, f.NewName)
		}
	}
	return names
}
