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

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/golang/glog"
	"github.com/google/uuid"
	"golang.org/x/term"
	"naive.systems/cclint/basic"
	"naive.systems/cclint/cpplint"
	"naive.systems/cclint/diff"
	"naive.systems/cclint/expander"
	"naive.systems/cclint/formatter"
	"naive.systems/cclint/i18n"
	"naive.systems/cclint/options"
	"naive.systems/cclint/stats"
)

const (
	exitClean       = 0
	exitDiagnostics = 1
	exitUsage       = 2
	exitUpstream    = 3
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, flag.CommandLine, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func newColor(enabled bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func colorEnabled(mode options.ColorMode, w io.Writer) bool {
	switch mode {
	case options.ColorAlways:
		return true
	case options.ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// logsOffDisk sends glog to stderr instead of files in $TMPDIR, unless a
// logging flag asks otherwise. Info lines are V(1), so a plain run only
// prints warnings and errors.
func logsOffDisk(fs *flag.FlagSet) {
	if fs.Lookup("logtostderr") == nil {
		return
	}
	set := false
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log_dir", "logtostderr", "alsologtostderr":
			set = true
		}
	})
	if set {
		return
	}
	if err := fs.Set("logtostderr", "true"); err != nil {
		glog.Fatalf("failed to set default logtostderr: %v", err)
	}
}

func run(ctx context.Context, fs *flag.FlagSet, args []string, stdout, stderr io.Writer) int {
	sharedOptions := options.NewSharedOptions(fs)
	split, err := options.SplitArgs(fs, args)
	if errors.Is(err, flag.ErrHelp) {
		options.Usage(stdout, fs)
		return exitClean
	}
	if err != nil {
		fmt.Fprintf(stderr, "cclint: %v\n", err)
		return exitUsage
	}
	fs.SetOutput(stderr)
	if err := fs.Parse(split.Own); err != nil {
		return exitUsage
	}
	defer glog.Flush()
	logsOffDisk(fs)

	runID := uuid.New().String()
	glog.V(1).Infof("run %s: %s", runID, strings.Join(args, " "))

	file, err := options.LoadFile(sharedOptions.GetConfig())
	if err != nil {
		fmt.Fprintf(stderr, "cclint: %v\n", err)
		return exitUsage
	}
	cfg, err := options.Resolve(fs, sharedOptions, split, file)
	if err != nil {
		fmt.Fprintf(stderr, "cclint: %v\n", err)
		return exitUsage
	}
	if len(cfg.Inputs) == 0 {
		fmt.Fprintf(stderr, "cclint: no files specified\n")
		options.Usage(stderr, fs)
		return exitUsage
	}
	printer := i18n.GetPrinter(cfg.Lang)
	useColor := colorEnabled(cfg.Color, stdout)

	files, err := expander.Expand(cfg.Inputs, cfg.Expand)
	var emptyErr *expander.EmptyResultError
	switch {
	case errors.As(err, &emptyErr):
		if cfg.Strict {
			fmt.Fprintf(stderr, "cclint: %v\n", err)
			return exitUsage
		}
		fmt.Fprintln(stderr, printer.Sprintf(i18n.NoFiles, err))
	case err != nil:
		fmt.Fprintf(stderr, "cclint: %v\n", err)
		return exitUsage
	}
	if cfg.DiffFile != "" {
		patch, err := diff.ParseFile(cfg.DiffFile)
		if err != nil {
			fmt.Fprintf(stderr, "cclint: %v\n", err)
			return exitUsage
		}
		files = expander.KeepChanged(files, patch)
		glog.V(1).Infof("%d files changed by %s", len(files), cfg.DiffFile)
	}
	glog.V(1).Infof("checking %d files with extensions %v", len(files), cfg.Expand.Extensions.List())

	// validated even without files, so a broken setup never passes silently
	bin, err := cfg.Runner.ResolveBinary()
	if err != nil {
		fmt.Fprintf(stderr, "cclint: cannot find cpplint: %v\n", err)
		return exitUpstream
	}
	glog.V(1).Info("cpplint: ", bin)

	fmt.Fprintln(stdout, newColor(useColor, color.FgCyan, color.Bold).Sprint("\n=== CCLINT ==="))
	start := time.Now()

	var lines formatter.LineSource
	var stream *cpplint.Stream
	if len(files) == 0 {
		lines = bufio.NewScanner(strings.NewReader(""))
	} else {
		stream, err = cfg.Runner.Start(ctx, cfg.CpplintArgs, files)
		if err != nil {
			fmt.Fprintf(stderr, "cclint: %v\n", err)
			return exitUpstream
		}
		defer stream.Close()
		lines = stream
	}

	report, err := formatter.Format(stdout, lines, formatter.Options{
		Color:      useColor,
		Palette:    cfg.Palette,
		KnownFiles: files,
		ShowCode:   cfg.ShowCode,
		Charset:    cfg.Runner.Charset,
		Printer:    printer,
	})
	if err != nil {
		fmt.Fprintf(stderr, "cclint: %v\n", err)
		return exitUpstream
	}
	if counts, err := report.Counts.Bytes(); err == nil {
		glog.V(1).Infof("run %s: %s", runID, counts)
	}

	if cfg.CountLines {
		n, err := stats.CountLines(files)
		if err != nil {
			glog.Warningf("stats.CountLines: %v", err)
		} else {
			fmt.Fprintln(stdout, printer.Sprintf(i18n.LinesOfCode, n))
		}
	}

	elapsed := basic.FormatTimeDuration(time.Since(start))
	footer := newColor(useColor, color.FgGreen, color.Bold)
	msg, code := i18n.Succeeded, exitClean
	// cpplint may report in an --output format we do not parse
	if !report.Clean() || (stream != nil && stream.ExitCode() == 1) {
		footer = newColor(useColor, color.FgRed, color.Bold)
		msg, code = i18n.Failed, exitDiagnostics
	}
	fmt.Fprintf(stdout, "\n%s\n\n", footer.Sprint(printer.Sprintf(msg, elapsed)))
	return code
}
