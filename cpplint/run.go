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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/golang/glog"
	"golang.org/x/text/transform"
	"naive.systems/cclint/basic"
	"naive.systems/cclint/source"
)

// Longer output lines are cut to this size.
const maxLineSize = 1024 * 1024

type Runner struct {
	// Bin is the cpplint executable, used unless Script is set.
	Bin       string
	PythonBin string
	// Script is a cpplint.py to run with PythonBin.
	Script  string
	Charset string
}

// Command builds the cpplint invocation: passthrough args first, then files.
func (r *Runner) Command(ctx context.Context, args, files []string) *exec.Cmd {
	cmdArgs := make([]string, 0, len(args)+len(files)+1)
	if r.Script != "" {
		cmdArgs = append(cmdArgs, r.Script)
	}
	cmdArgs = append(cmdArgs, args...)
	cmdArgs = append(cmdArgs, files...)
	if r.Script != "" {
		python := r.PythonBin
		if python == "" {
			python = "python3"
		}
		return withUnbufferedPython(exec.CommandContext(ctx, python, cmdArgs...))
	}
	return withUnbufferedPython(exec.CommandContext(ctx, r.Bin, cmdArgs...))
}

// cpplint writes diagnostics to stderr and its summary to stdout; a piped
// stdout would be block buffered and arrive out of order.
func withUnbufferedPython(cmd *exec.Cmd) *exec.Cmd {
	cmd.Env = append(os.Environ(), "PYTHONUNBUFFERED=1")
	return cmd
}

// ResolveBinary returns the absolute path of the executable the runner
// would start.
func (r *Runner) ResolveBinary() (string, error) {
	if r.Script != "" {
		if _, err := os.Stat(r.Script); err != nil {
			return "", err
		}
		if r.PythonBin == "" {
			return basic.ResolveBinaryPath("python3")
		}
		return basic.ResolveBinaryPath(r.PythonBin)
	}
	return basic.ResolveBinaryPath(r.Bin)
}

// Start runs cpplint with its stdout and stderr merged into a single
// stream of lines, in the order they were written.
func (r *Runner) Start(ctx context.Context, args, files []string) (*Stream, error) {
	decoder, err := source.Decoder(r.Charset)
	if err != nil {
		return nil, err
	}
	cmd := r.Command(ctx, args, files)
	reader, writer, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("os.Pipe: %v", err)
	}
	cmd.Stdout = writer
	cmd.Stderr = writer
	glog.V(1).Info("executing: ", cmd.String())
	if err := cmd.Start(); err != nil {
		reader.Close()
		writer.Close()
		return nil, &UpstreamUnavailableError{Cmd: cmd.String(), Cause: err}
	}
	// the child holds its own copy
	writer.Close()

	out := bufio.NewReaderSize(transform.NewReader(reader, decoder), 64*1024)
	return &Stream{cmd: cmd, pipe: reader, out: out}, nil
}

// Stream yields cpplint's output line by line. Once Scan returns false the
// process has been waited for and Err reports whether it ended normally.
type Stream struct {
	cmd      *exec.Cmd
	pipe     *os.File
	out      *bufio.Reader
	line     string
	done     bool
	err      error
	exitCode int
}

func (s *Stream) Scan() bool {
	if s.done {
		return false
	}
	line, err := s.readLine()
	if err == nil {
		s.line = line
		return true
	}
	if err == io.EOF {
		err = nil
	}
	s.finish(err)
	return false
}

func (s *Stream) Text() string {
	return s.line
}

// readLine returns the next line without its end of line. A final line
// with no newline is still returned; io.EOF comes only after it.
func (s *Stream) readLine() (string, error) {
	var buf []byte
	truncated := false
	for {
		chunk, isPrefix, err := s.out.ReadLine()
		if err != nil {
			if err == io.EOF && (len(buf) > 0 || truncated) {
				break
			}
			return "", err
		}
		if room := maxLineSize - len(buf); len(chunk) > room {
			chunk = chunk[:room]
			truncated = true
		}
		buf = append(buf, chunk...)
		if !isPrefix {
			break
		}
	}
	if truncated {
		glog.Warningf("cpplint output line longer than %d bytes truncated", maxLineSize)
	}
	return string(buf), nil
}

func (s *Stream) Err() error {
	return s.err
}

// ExitCode is cpplint's exit status, valid after Scan has returned false.
// cpplint exits 1 when it reported errors.
func (s *Stream) ExitCode() int {
	return s.exitCode
}

// Close stops a process whose output has not been read to the end.
func (s *Stream) Close() error {
	if s.done {
		return nil
	}
	if err := s.cmd.Process.Kill(); err != nil {
		glog.Warningf("killing cpplint: %v", err)
	}
	s.finish(nil)
	return nil
}

func (s *Stream) finish(readErr error) {
	s.done = true
	if readErr != nil {
		// nobody drains the pipe any more
		if err := s.cmd.Process.Kill(); err != nil {
			glog.Warningf("killing cpplint: %v", err)
		}
	}
	s.pipe.Close()
	waitErr := s.cmd.Wait()
	if s.cmd.ProcessState != nil {
		s.exitCode = s.cmd.ProcessState.ExitCode()
	}
	if readErr != nil {
		s.err = &UpstreamUnavailableError{Cmd: s.cmd.String(), Cause: fmt.Errorf("reading output: %v", readErr)}
		return
	}
	if waitErr == nil {
		return
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) && exitErr.ExitCode() == 1 {
		return
	}
	s.err = &UpstreamUnavailableError{Cmd: s.cmd.String(), Cause: waitErr}
}
