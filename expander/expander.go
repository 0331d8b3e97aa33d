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
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/golang/glog"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"naive.systems/cclint/diff"
)

// cpplint's default --extensions
var DefaultExtensions = []string{"c", "c++", "cc", "cpp", "cu", "cuh", "cxx", "h", "h++", "hh", "hpp", "hxx"}

type Kind int

const (
	// KindAuto is a positional argument, classified when it is stat'ed.
	KindAuto Kind = iota
	KindFile
	KindDir
)

type FileSpec struct {
	Path string
	Kind Kind
}

// ExtensionSet holds file name suffixes without the leading dot.
// The zero value matches nothing.
type ExtensionSet struct {
	exts map[string]struct{}
}

// NewExtensionSet accepts "cc", ".cc" and comma separated lists like "cc,h".
func NewExtensionSet(exts ...string) ExtensionSet {
	set := ExtensionSet{exts: make(map[string]struct{})}
	for _, e := range exts {
		for _, part := range strings.Split(e, ",") {
			part = strings.TrimPrefix(strings.TrimSpace(part), ".")
			if part != "" {
				set.exts[part] = struct{}{}
			}
		}
	}
	return set
}

func (s ExtensionSet) Contains(path string) bool {
	ext := filepath.Ext(path)
	if ext == "" {
		return false
	}
	_, ok := s.exts[ext[1:]]
	return ok
}

func (s ExtensionSet) List() []string {
	list := maps.Keys(s.exts)
	slices.Sort(list)
	return list
}

func (s ExtensionSet) Len() int {
	return len(s.exts)
}

type Options struct {
	Extensions ExtensionSet
	// ExpandDirs controls KindAuto directories. When false they are kept
	// verbatim for the linter to handle. KindDir inputs are always expanded.
	ExpandDirs bool
	Recursive  bool
	// ExcludeDirs are doublestar patterns matched against slash separated
	// directory paths as they are walked.
	ExcludeDirs []string
}

// ParseInputs tags positional arguments as KindAuto and the values of the
// directory flag as KindDir, keeping command line order.
func ParseInputs(args []string, dirs []string) []FileSpec {
	specs := make([]FileSpec, 0, len(args)+len(dirs))
	for _, a := range args {
		specs = append(specs, FileSpec{Path: a, Kind: KindAuto})
	}
	for _, d := range dirs {
		specs = append(specs, FileSpec{Path: d, Kind: KindDir})
	}
	return specs
}

type walker struct {
	opts  Options
	seen  map[string]struct{}
	files []string
}

// Expand resolves inputs into the ordered, deduplicated list of files to
// lint. Explicit files are never filtered by extension.
func Expand(inputs []FileSpec, opts Options) ([]string, error) {
	for _, p := range opts.ExcludeDirs {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("malformed excludedir pattern %s", p)
		}
	}
	w := &walker{
		opts:  opts,
		seen:  make(map[string]struct{}),
		files: []string{},
	}
	for _, in := range inputs {
		info, err := os.Stat(in.Path)
		if err != nil {
			return nil, &InvalidPathError{Path: in.Path, Cause: err}
		}
		if !info.IsDir() {
			if in.Kind == KindDir {
				return nil, &InvalidPathError{Path: in.Path, Cause: fmt.Errorf("not a directory")}
			}
			if w.excluded(filepath.Dir(in.Path)) {
				glog.V(1).Infof("%s skipped: its directory is excluded", in.Path)
				continue
			}
			w.add(in.Path)
			continue
		}
		if w.excluded(in.Path) {
			glog.V(1).Infof("directory %s excluded", in.Path)
			continue
		}
		if in.Kind == KindFile || (in.Kind == KindAuto && !opts.ExpandDirs) {
			w.add(in.Path)
			continue
		}
		if err := w.walkDir(in.Path); err != nil {
			return nil, err
		}
	}
	if len(w.files) == 0 {
		paths := make([]string, 0, len(inputs))
		for _, in := range inputs {
			paths = append(paths, in.Path)
		}
		return w.files, &EmptyResultError{Inputs: paths}
	}
	return w.files, nil
}

func (w *walker) walkDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("os.ReadDir(%s): %v", dir, err)
	}
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		mode := e.Type()
		if mode&fs.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil {
				glog.Warningf("skipping dangling symlink %s: %v", path, err)
				continue
			}
			if target.IsDir() {
				glog.V(1).Infof("not following directory symlink %s", path)
				continue
			}
			mode = target.Mode().Type()
		}
		if mode.IsDir() {
			if !w.opts.Recursive || w.excluded(path) {
				continue
			}
			if err := w.walkDir(path); err != nil {
				glog.Warningf("skipping %s: %v", path, err)
			}
			continue
		}
		if mode.IsRegular() && w.opts.Extensions.Contains(path) {
			w.add(path)
		}
	}
	return nil
}

func (w *walker) excluded(dir string) bool {
	slashed := filepath.ToSlash(filepath.Clean(dir))
	for _, p := range w.opts.ExcludeDirs {
		matched, err := doublestar.Match(p, slashed)
		if err != nil {
			glog.Errorf("malformed excludedir pattern %s", p)
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

func (w *walker) add(path string) {
	key := filepath.Clean(path)
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}
	if _, ok := w.seen[key]; ok {
		return
	}
	w.seen[key] = struct{}{}
	w.files = append(w.files, path)
}

// KeepChanged narrows files to those the patch adds or modifies. Patch
// names are repository relative, so a file matches when its slash path
// equals a changed name or ends with "/" + name.
func KeepChanged(files []string, patch *diff.Patch) []string {
	changed := patch.ChangedFiles()
	kept := []string{}
	for _, f := range files {
		slashed := filepath.ToSlash(filepath.Clean(f))
		for _, c := range changed {
			if slashed == c || strings.HasSuffix(slashed, "/"+c) {
				kept = append(kept, f)
				break
			}
		}
	}
	return kept
}
