// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Checkmatmul verifies the matrix product printed by a kernel test.
//
// Usage:
//
//	checkmatmul [flags] [test.log]
//
// The log, read from standard input if no file is given, must print
// the operands and the result after "A> Print Matrix",
// "B> Print Matrix" and "C> Print Matrix" headers. Checkmatmul echoes
// the log with each matrix cut down to its top-left tile, then
// recomputes A×B in single precision and reports whether C matches
// within the tolerance |c-r| <= atol + rtol*|r|.
//
// A missing matrix or mismatched dimensions is an error (exit status
// 1). An incorrect product is reported but only fails with -strict.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rvv-matmul/benchtools/internal/cmdutil"
	"github.com/rvv-matmul/benchtools/internal/config"
	"github.com/rvv-matmul/benchtools/matcheck"
)

var (
	exit            = os.Exit // replaced during testing
	stdin io.Reader = os.Stdin
)

// errIncorrect is returned in strict mode when the product is wrong.
var errIncorrect = errors.New("matrix multiplication is incorrect")

func main() {
	cmdutil.Main("checkmatmul", run, exit)
}

func run(stdout, stderr io.Writer, args []string) error {
	fs := cmdutil.NewFlagSet("checkmatmul", "[flags] [test.log]", stderr)
	flagStrict := fs.Bool("strict", false, "exit with status 1 if the product is incorrect")
	flagTile := fs.Int("tile", 10, "echo at most `n` rows and columns of each matrix")
	flagAbs := fs.Float64("atol", matcheck.DefaultTolerance.Abs, "absolute `tolerance`")
	flagRel := fs.Float64("rtol", matcheck.DefaultTolerance.Rel, "relative `tolerance`")
	flagConfig := fs.String("config", "", "read default settings from YAML `file`")
	flagVerbose := fs.BoolP("verbose", "v", false, "log the matrices found")
	if err := cmdutil.Parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return cmdutil.ErrUsage
	}
	log := cmdutil.NewLogger("checkmatmul", stderr, *flagVerbose)

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		return err
	}
	tol := matcheck.Tolerance{Abs: cfg.Check.AbsTol, Rel: cfg.Check.RelTol}
	tile := cfg.Check.Tile
	if fs.Changed("atol") {
		tol.Abs = *flagAbs
	}
	if fs.Changed("rtol") {
		tol.Rel = *flagRel
	}
	if fs.Changed("tile") {
		tile = *flagTile
	}
	if tile < 1 || tol.Abs < 0 || tol.Rel < 0 {
		fs.Usage()
		return cmdutil.ErrUsage
	}

	in := stdin
	if fs.NArg() == 1 && fs.Arg(0) != "-" {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	l, err := matcheck.Read(in)
	if err != nil {
		return err
	}
	for _, s := range l.Sections {
		log.WithField("matrix", s.Name).Debugf("%d rows at lines %d-%d", len(s.Rows), s.Header+1, s.End)
	}

	if err := l.Render(stdout, tile, tile); err != nil {
		return err
	}

	a, b, c, err := l.Matrices()
	if err != nil {
		return err
	}
	v, err := matcheck.Check(a, b, c, tol)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, v)
	if !v.Correct && *flagStrict {
		return errIncorrect
	}
	return nil
}
