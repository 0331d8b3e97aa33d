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
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"golang.org/x/exp/slices"
	"naive.systems/cclint/diff"
)

var ccAndH = NewExtensionSet("cc", "h")

// makeTree creates files (and their parent directories) under a new temp dir.
func makeTree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
			t.Fatalf("os.MkdirAll: %v", err)
		}
		if err := os.WriteFile(path, nil, 0644); err != nil {
			t.Fatalf("os.WriteFile: %v", err)
		}
	}
	return root
}

func join(root string, names ...string) []string {
	paths := []string{}
	for _, n := range names {
		paths = append(paths, filepath.Join(root, filepath.FromSlash(n)))
	}
	return paths
}

func TestNewExtensionSet(t *testing.T) {
	set := NewExtensionSet(".cc", "h,hpp", " cpp ")
	expected := []string{"cc", "cpp", "h", "hpp"}
	if !reflect.DeepEqual(set.List(), expected) {
		t.Errorf("List() = %v, expected %v", set.List(), expected)
	}
	for path, want := range map[string]bool{
		"a.cc":       true,
		"dir/a.hpp":  true,
		"a.CC":       false,
		"a.txt":      false,
		"Makefile":   false,
		"dir.cc/abc": false,
	} {
		if got := set.Contains(path); got != want {
			t.Errorf("Contains(%q) = %v, expected %v", path, got, want)
		}
	}
	var zero ExtensionSet
	if zero.Contains("a.cc") || zero.Len() != 0 {
		t.Error("zero ExtensionSet should match nothing")
	}
}

func TestExpandNonRecursive(t *testing.T) {
	root := makeTree(t, "b.cc", "a.h", "c.txt", "sub/d.cc")
	files, err := Expand([]FileSpec{{Path: root, Kind: KindDir}}, Options{Extensions: ccAndH})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := join(root, "a.h", "b.cc")
	if !reflect.DeepEqual(files, expected) {
		t.Errorf("unexpected result. got: %v. expected: %v.", files, expected)
	}
}

func TestExpandRecursive(t *testing.T) {
	root := makeTree(t, "b.cc", "a.h", "c.txt", "sub/d.cc", "sub/deeper/e.h", "sub/deeper/f.py")
	opts := Options{Extensions: ccAndH, Recursive: true}
	files, err := Expand([]FileSpec{{Path: root, Kind: KindDir}}, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := join(root, "a.h", "b.cc", "sub/d.cc", "sub/deeper/e.h")
	if !reflect.DeepEqual(files, expected) {
		t.Errorf("unexpected result. got: %v. expected: %v.", files, expected)
	}

	flat, err := Expand([]FileSpec{{Path: root, Kind: KindDir}}, Options{Extensions: ccAndH})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, f := range flat {
		if !slices.Contains(files, f) {
			t.Errorf("recursive result is missing %s", f)
		}
	}
}

func TestExpandDeterministic(t *testing.T) {
	root := makeTree(t, "z.cc", "m.cc", "a.cc", "k/b.h")
	in := []FileSpec{{Path: root, Kind: KindDir}}
	opts := Options{Extensions: ccAndH, Recursive: true}
	first, err := Expand(in, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Expand(in, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two runs differ: %v vs %v", first, second)
	}
}

func TestExplicitFileBypassesExtensions(t *testing.T) {
	root := makeTree(t, "foo.txt")
	path := filepath.Join(root, "foo.txt")
	files, err := Expand([]FileSpec{{Path: path, Kind: KindAuto}}, Options{Extensions: ccAndH, ExpandDirs: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(files, []string{path}) {
		t.Errorf("unexpected result: %v", files)
	}
}

func TestExpandDeduplicates(t *testing.T) {
	root := makeTree(t, "a.cc", "sub/b.cc")
	in := []FileSpec{
		{Path: filepath.Join(root, "a.cc"), Kind: KindAuto},
		{Path: root, Kind: KindDir},
		{Path: filepath.Join(root, "sub"), Kind: KindDir},
		{Path: filepath.Join(root, "sub", "..", "a.cc"), Kind: KindFile},
	}
	files, err := Expand(in, Options{Extensions: ccAndH, Recursive: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := join(root, "a.cc", "sub/b.cc")
	if !reflect.DeepEqual(files, expected) {
		t.Errorf("unexpected result. got: %v. expected: %v.", files, expected)
	}
}

func TestExpandAutoDirectories(t *testing.T) {
	root := makeTree(t, "a.cc")
	in := []FileSpec{{Path: root, Kind: KindAuto}}

	verbatim, err := Expand(in, Options{Extensions: ccAndH})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(verbatim, []string{root}) {
		t.Errorf("directory should be kept verbatim without expansion, got %v", verbatim)
	}

	expanded, err := Expand(in, Options{Extensions: ccAndH, ExpandDirs: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(expanded, join(root, "a.cc")) {
		t.Errorf("unexpected result: %v", expanded)
	}
}

func TestExpandInvalidPath(t *testing.T) {
	root := t.TempDir()
	missing := filepath.Join(root, "missing")
	_, err := Expand([]FileSpec{{Path: missing, Kind: KindAuto}}, Options{Extensions: ccAndH})
	var pathErr *InvalidPathError
	if !errors.As(err, &pathErr) {
		t.Fatalf("expected InvalidPathError, got %v", err)
	}
	if pathErr.Path != missing || !os.IsNotExist(pathErr.Cause) {
		t.Errorf("unexpected error content: %+v", pathErr)
	}

	file := makeTree(t, "a.cc")
	_, err = Expand([]FileSpec{{Path: filepath.Join(file, "a.cc"), Kind: KindDir}}, Options{Extensions: ccAndH})
	if !errors.As(err, &pathErr) {
		t.Errorf("expected InvalidPathError for a file given as directory, got %v", err)
	}
}

func TestExpandEmptyResult(t *testing.T) {
	root := makeTree(t, "readme.md")
	files, err := Expand([]FileSpec{{Path: root, Kind: KindDir}}, Options{Extensions: ccAndH})
	var emptyErr *EmptyResultError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("expected EmptyResultError, got %v", err)
	}
	if files == nil || len(files) != 0 {
		t.Errorf("expected an empty, non-nil list, got %#v", files)
	}
	if !reflect.DeepEqual(emptyErr.Inputs, []string{root}) {
		t.Errorf("unexpected inputs: %v", emptyErr.Inputs)
	}
}

func TestExpandExcludeDirs(t *testing.T) {
	root := makeTree(t, "a.cc", "build/gen.cc", "src/b.cc", "src/third_party/c.cc")
	slashRoot := filepath.ToSlash(root)
	opts := Options{
		Extensions:  ccAndH,
		Recursive:   true,
		ExcludeDirs: []string{slashRoot + "/build", slashRoot + "/**/third_party"},
	}
	in := []FileSpec{
		{Path: root, Kind: KindDir},
		{Path: filepath.Join(root, "build", "gen.cc"), Kind: KindAuto},
	}
	files, err := Expand(in, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := join(root, "a.cc", "src/b.cc")
	if !reflect.DeepEqual(files, expected) {
		t.Errorf("unexpected result. got: %v. expected: %v.", files, expected)
	}
}

func TestExpandMalformedExclude(t *testing.T) {
	root := makeTree(t, "a.cc")
	_, err := Expand([]FileSpec{{Path: root, Kind: KindDir}}, Options{Extensions: ccAndH, ExcludeDirs: []string{"[a-"}})
	if err == nil {
		t.Error("expected an error for a malformed pattern")
	}
}

func TestExpandSkipsDirectorySymlinks(t *testing.T) {
	root := makeTree(t, "real/a.cc")
	if err := os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	if err := os.Symlink(filepath.Join(root, "real", "a.cc"), filepath.Join(root, "alias.cc")); err != nil {
		t.Fatalf("os.Symlink: %v", err)
	}
	files, err := Expand([]FileSpec{{Path: root, Kind: KindDir}}, Options{Extensions: ccAndH, Recursive: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := join(root, "alias.cc", "real/a.cc")
	if !reflect.DeepEqual(files, expected) {
		t.Errorf("unexpected result. got: %v. expected: %v.", files, expected)
	}
}

func TestParseInputs(t *testing.T) {
	specs := ParseInputs([]string{"a.cc", "src"}, []string{"lib"})
	expected := []FileSpec{
		{Path: "a.cc", Kind: KindAuto},
		{Path: "src", Kind: KindAuto},
		{Path: "lib", Kind: KindDir},
	}
	if !reflect.DeepEqual(specs, expected) {
		t.Errorf("unexpected result. got: %v. expected: %v.", specs, expected)
	}
}

func TestKeepChanged(t *testing.T) {
	patch := &diff.Patch{Files: []*diff.File{
		{OldName: "src/a.cc", NewName: "src/a.cc"},
		{OldName: "gone.cc", NewName: ""},
	}}
	files := []string{"/repo/src/a.cc", "/repo/src/b.cc", "src/a.cc", "/repo/gone.cc", "/repo/xsrc/a.cc"}
	expected := []string{"/repo/src/a.cc", "src/a.cc"}
	if actual := KeepChanged(files, patch); !reflect.DeepEqual(actual, expected) {
		t.Errorf("unexpected result. got: %v. expected: %v.", actual, expected)
	}
}
