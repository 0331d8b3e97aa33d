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
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// fakeCpplint writes an executable shell script standing in for cpplint.
func fakeCpplint(t *testing.T, body string) string {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	path := filepath.Join(t.TempDir(), "cpplint")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}
	return path
}

func collect(t *testing.T, s *Stream) []string {
	t.Helper()
	lines := []string{}
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	return lines
}

func TestStartMergesOutput(t *testing.T) {
	bin := fakeCpplint(t, `echo "a.cc:3:  Missing space  [whitespace/braces] [5]" >&2
echo "Done processing a.cc" >&2
echo "Total errors found: 1" >&2
exit 1
`)
	r := &Runner{Bin: bin}
	s, err := r.Start(context.Background(), nil, []string{"a.cc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := collect(t, s)
	expected := []string{
		"a.cc:3:  Missing space  [whitespace/braces] [5]",
		"Done processing a.cc",
		"Total errors found: 1",
	}
	if !reflect.DeepEqual(lines, expected) {
		t.Errorf("unexpected result. got: %v. expected: %v.", lines, expected)
	}
	if s.Err() != nil {
		t.Errorf("exit code 1 should not be an error, got %v", s.Err())
	}
	if s.ExitCode() != 1 {
		t.Errorf("ExitCode() = %d, expected 1", s.ExitCode())
	}
}

func TestStartPassesArgsBeforeFiles(t *testing.T) {
	bin := fakeCpplint(t, `for a in "$@"; do echo "$a"; done
`)
	r := &Runner{Bin: bin}
	s, err := r.Start(context.Background(), []string{"--filter=-whitespace", "--quiet"}, []string{"a.cc", "b.h"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := collect(t, s)
	expected := []string{"--filter=-whitespace", "--quiet", "a.cc", "b.h"}
	if !reflect.DeepEqual(lines, expected) {
		t.Errorf("unexpected result. got: %v. expected: %v.", lines, expected)
	}
	if s.Err() != nil || s.ExitCode() != 0 {
		t.Errorf("unexpected status: %v, %d", s.Err(), s.ExitCode())
	}
}

func TestStartReplacesInvalidBytes(t *testing.T) {
	bin := fakeCpplint(t, `printf 'bad \377 byte\n'
`)
	s, err := (&Runner{Bin: bin}).Start(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := collect(t, s)
	if !reflect.DeepEqual(lines, []string{"bad � byte"}) {
		t.Errorf("unexpected result: %q", lines)
	}
}

func TestStartCharset(t *testing.T) {
	bin := fakeCpplint(t, `printf 'caf\351\n'
`)
	s, err := (&Runner{Bin: bin, Charset: "ISO-8859-1"}).Start(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lines := collect(t, s); !reflect.DeepEqual(lines, []string{"café"}) {
		t.Errorf("unexpected result: %q", lines)
	}
}

func TestAbnormalExit(t *testing.T) {
	bin := fakeCpplint(t, `echo "Traceback (most recent call last):" >&2
exit 3
`)
	s, err := (&Runner{Bin: bin}).Start(context.Background(), nil, []string{"a.cc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := collect(t, s)
	if !reflect.DeepEqual(lines, []string{"Traceback (most recent call last):"}) {
		t.Errorf("unexpected result: %v", lines)
	}
	var upstream *UpstreamUnavailableError
	if !errors.As(s.Err(), &upstream) {
		t.Fatalf("expected UpstreamUnavailableError, got %v", s.Err())
	}
	if s.ExitCode() != 3 {
		t.Errorf("ExitCode() = %d, expected 3", s.ExitCode())
	}
}

func TestMissingBinary(t *testing.T) {
	r := &Runner{Bin: filepath.Join(t.TempDir(), "no-cpplint")}
	_, err := r.Start(context.Background(), nil, []string{"a.cc"})
	var upstream *UpstreamUnavailableError
	if !errors.As(err, &upstream) {
		t.Errorf("expected UpstreamUnavailableError, got %v", err)
	}
	if _, err := r.ResolveBinary(); err == nil {
		t.Error("expected ResolveBinary to fail")
	}
}

func TestCloseStopsProcess(t *testing.T) {
	bin := fakeCpplint(t, `echo started
sleep 30
`)
	s, err := (&Runner{Bin: bin}).Start(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Scan() || s.Text() != "started" {
		t.Fatalf("expected the first line, got %q", s.Text())
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if s.Scan() {
		t.Error("Scan should return false after Close")
	}
}

func TestCommandWithScript(t *testing.T) {
	r := &Runner{PythonBin: "/usr/bin/python3", Script: "/opt/cpplint.py"}
	cmd := r.Command(context.Background(), []string{"--quiet"}, []string{"a.cc"})
	expected := []string{"/usr/bin/python3", "/opt/cpplint.py", "--quiet", "a.cc"}
	if !reflect.DeepEqual(cmd.Args, expected) {
		t.Errorf("unexpected result. got: %v. expected: %v.", cmd.Args, expected)
	}
}

func TestCommandUnbufferedPython(t *testing.T) {
	t.Setenv("CCLINT_TEST_VAR", "kept")
	for _, r := range []*Runner{
		{Bin: "/usr/bin/cpplint"},
		{Script: "/opt/cpplint.py"},
	} {
		cmd := r.Command(context.Background(), nil, []string{"a.cc"})
		env := strings.Join(cmd.Env, "\n")
		if !strings.Contains(env, "PYTHONUNBUFFERED=1") {
			t.Errorf("%v: PYTHONUNBUFFERED is not set", cmd.Args)
		}
		if !strings.Contains(env, "CCLINT_TEST_VAR=kept") {
			t.Errorf("%v: the parent environment is lost", cmd.Args)
		}
	}
}

func TestStartSeesUnbufferedPython(t *testing.T) {
	bin := fakeCpplint(t, `echo "$PYTHONUNBUFFERED"
`)
	s, err := (&Runner{Bin: bin}).Start(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lines := collect(t, s); !reflect.DeepEqual(lines, []string{"1"}) {
		t.Errorf("unexpected result: %q", lines)
	}
}

func TestStartTruncatesLongLine(t *testing.T) {
	bin := fakeCpplint(t, `head -c 2097152 /dev/zero | tr '\0' x
echo
echo "a.cc:3:  Missing space  [whitespace/braces] [5]" >&2
printf 'no newline'
`)
	s, err := (&Runner{Bin: bin}).Start(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := collect(t, s)
	if s.Err() != nil {
		t.Fatalf("a long line should not fail the run: %v", s.Err())
	}
	if len(lines) != 3 {
		t.Fatalf("got %d lines, expected 3", len(lines))
	}
	if len(lines[0]) != maxLineSize || strings.Trim(lines[0], "x") != "" {
		t.Errorf("first line has %d bytes, expected %d", len(lines[0]), maxLineSize)
	}
	if lines[1] != "a.cc:3:  Missing space  [whitespace/braces] [5]" || lines[2] != "no newline" {
		t.Errorf("unexpected result: %q", lines[1:])
	}
}
