// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmdutil holds the plumbing shared by the benchmark
// commands: flag parsing, logging, and mapping errors to exit codes.
package cmdutil

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// ErrUsage is returned by a command whose arguments are invalid. The
// usage message has already been printed.
var ErrUsage = errors.New("usage error")

// Exit codes.
const (
	ExitOK    = 0
	ExitFatal = 1
	ExitUsage = 2
)

// NewFlagSet returns a flag set for tool that reports errors instead
// of exiting. usage is printed, followed by the flag defaults, when
// the arguments are invalid or help is requested.
func NewFlagSet(tool, usage string, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(tool, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = false
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: %s %s\n", tool, usage)
		fmt.Fprintf(stderr, "options:\n")
		fs.PrintDefaults()
	}
	return fs
}

// Parse parses args with fs. A parse error is printed with the usage
// message and reported as ErrUsage. A request for help is reported as
// pflag.ErrHelp.
func Parse(fs *pflag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return err
	}
	fmt.Fprintf(fs.Output(), "%s: %v\n", fs.Name(), err)
	fs.Usage()
	return ErrUsage
}

// NewLogger returns a logger for diagnostics of tool written to w.
// Debug messages are only written if verbose is set.
func NewLogger(tool string, w io.Writer, verbose bool) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})
	l.SetLevel(logrus.InfoLevel)
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}
	return l.WithField("tool", tool)
}

// ExitCode returns the process exit code for the error returned by a
// command.
func ExitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, pflag.ErrHelp):
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	}
	return ExitFatal
}

// Main runs a command with the process's standard streams and
// arguments, prints a fatal error as a single line, and exits with
// the matching code.
func Main(tool string, run func(stdout, stderr io.Writer, args []string) error, exit func(int)) {
	err := run(os.Stdout, os.Stderr, os.Args[1:])
	code := ExitCode(err)
	if code == ExitFatal {
		fmt.Fprintf(os.Stderr, "%s: %v\n", tool, err)
	}
	exit(code)
}
