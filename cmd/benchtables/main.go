// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchtables extracts the benchmark runs recorded in matrix-multiply
// benchmark logs into a CSV table.
//
// Usage:
//
//	benchtables [flags] input.log... output.csv
//
// Every "BENCHMARK_RECORD : key=value, ..." marker in the input logs
// becomes one row. The L1-dcache-loads and L1-dcache-load-misses
// counters printed after a marker, up to the next marker, fill the
// l1d-load, l1d-misses and cachemiss-rate columns. An input named "-"
// is read from standard input.
//
// If no marker carries any data, benchtables reports "no data" and
// exits with status 1 without writing the output.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rvv-matmul/benchtools/benchlog"
	"github.com/rvv-matmul/benchtools/benchtab"
	"github.com/rvv-matmul/benchtools/internal/cmdutil"
	"github.com/rvv-matmul/benchtools/internal/config"
)

var exit = os.Exit // replaced during testing

func main() {
	cmdutil.Main("benchtables", run, exit)
}

func run(stdout, stderr io.Writer, args []string) error {
	fs := cmdutil.NewFlagSet("benchtables", "[flags] input.log... output.csv", stderr)
	flagTimeKey := fs.StringP("time-key", "t", "time", "marker `key` holding the execution time")
	flagExtra := fs.Bool("extra", false, "also write marker keys other than the standard ones")
	flagConfig := fs.String("config", "", "read default settings from YAML `file`")
	flagVerbose := fs.BoolP("verbose", "v", false, "log every extracted record")
	if err := cmdutil.Parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return cmdutil.ErrUsage
	}
	log := cmdutil.NewLogger("benchtables", stderr, *flagVerbose)

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		return err
	}
	timeKey, extra := cfg.Log.TimeKey, cfg.Log.Extra
	if fs.Changed("time-key") {
		timeKey = *flagTimeKey
	}
	if fs.Changed("extra") {
		extra = *flagExtra
	}

	inputs, output := fs.Args()[:fs.NArg()-1], fs.Arg(fs.NArg()-1)
	files := &benchlog.Files{Paths: inputs, AllowStdin: true}
	var recs []*benchlog.Record
	for files.Scan() {
		rec := files.Result()
		name, line := rec.Pos()
		log.WithField("pos", fmt.Sprintf("%s:%d", name, line)).Debugf("record %s size=%s", rec.Version(), get(rec, benchlog.KeySize))
		recs = append(recs, rec)
	}
	if err := files.Err(); err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) && errors.Is(err, os.ErrNotExist) {
			return &benchtab.MissingFileError{Path: pe.Path}
		}
		return err
	}
	for _, warn := range files.Warnings() {
		log.Warn(warn)
	}
	switch {
	case files.Markers() == 0:
		return fmt.Errorf("%w: no BENCHMARK_RECORD line found in %s", benchlog.ErrNoData, strings.Join(inputs, ", "))
	case len(recs) == 0:
		return fmt.Errorf("%w: no valid record extracted from %s", benchlog.ErrNoData, strings.Join(inputs, ", "))
	}

	var buf bytes.Buffer
	tw := benchlog.NewTableWriter(&buf)
	tw.TimeKey, tw.Extra = timeKey, extra
	if err := tw.WriteAll(recs); err != nil {
		return err
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return err
		}
	}
	if err := os.WriteFile(output, buf.Bytes(), 0666); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%d records written to %s\n", len(recs), output)
	fmt.Fprintf(stdout, "columns: %s\n", strings.Join(tw.Columns(recs), ", "))
	return nil
}

func get(rec *benchlog.Record, key string) string {
	v, _ := rec.Get(key)
	return v
}
