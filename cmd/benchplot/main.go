// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchplot draws execution time and cache charts of benchmark runs.
//
// Usage:
//
//	benchplot [flags] file...
//
// Each file is a result table written by benchtables, or a raw
// benchmark log if it ends in ".log" or -log is given. Column headers
// are matched loosely, so tables with translated or decorated headers
// ("Tempo di esecuzione (s)", "L1-dcache-loads") are accepted.
//
// In compare mode benchplot writes:
//
//	benchmark_all_versions    time vs size of every configuration
//	benchmark_<version>       time vs size of one version
//	benchmark_size_<n>        L1 loads and misses of every configuration at size n
//	benchmark_<version>_size_<n>
//	                          L1 loads and misses of one version at size n
//	benchmark_all_cache_events
//	                          L1 loads and misses of every run, if no run
//	                          sets kernel, LMUL or unroll
//
// Single mode, the default when the files hold one version, leaves out
// the charts across versions, and draws one bar chart of every size
// when the version has a single configuration per size.
//
// Files that cannot be read are reported and skipped.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rvv-matmul/benchtools/benchchart"
	"github.com/rvv-matmul/benchtools/benchlog"
	"github.com/rvv-matmul/benchtools/benchtab"
	"github.com/rvv-matmul/benchtools/internal/cmdutil"
	"github.com/rvv-matmul/benchtools/internal/config"
	"github.com/sirupsen/logrus"
)

var exit = os.Exit // replaced during testing

// errNoData is returned when none of the inputs yields a run.
var errNoData = errors.New("no benchmark data found")

func main() {
	cmdutil.Main("benchplot", run, exit)
}

func run(stdout, stderr io.Writer, args []string) error {
	fs := cmdutil.NewFlagSet("benchplot", "[flags] file...", stderr)
	flagMode := fs.String("mode", string(benchchart.ModeAuto), "chart `mode`: auto, single or compare")
	flagNoGlobal := fs.Bool("no-global", false, "skip the chart of every configuration")
	flagNoVersion := fs.Bool("no-version", false, "skip the time chart of each version")
	flagNoSize := fs.Bool("no-size", false, "skip the cache chart of each size")
	flagNoVersionSize := fs.Bool("no-version-size", false, "skip the cache chart of each version and size")
	flagCompare := fs.StringSlice("compare-files", nil, "additional `files` to compare against")
	flagLog := fs.Bool("log", false, "read every input as a raw benchmark log")
	flagTimeKey := fs.StringP("time-key", "t", "time", "marker `key` holding the execution time in raw logs")
	flagDir := fs.StringP("output-dir", "d", ".", "write charts to `dir`")
	flagFormat := fs.StringP("format", "f", "png", "image `format`: "+strings.Join(benchchart.Formats, ", "))
	flagDPI := fs.Int("dpi", benchchart.DefaultDPI, "resolution of PNG charts")
	flagConfig := fs.String("config", "", "read default settings from YAML `file`")
	flagVerbose := fs.BoolP("verbose", "v", false, "log every chart as it is drawn")
	if err := cmdutil.Parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return cmdutil.ErrUsage
	}
	mode, err := benchchart.ParseMode(*flagMode)
	if err != nil {
		fmt.Fprintf(stderr, "benchplot: %v\n", err)
		fs.Usage()
		return cmdutil.ErrUsage
	}
	log := cmdutil.NewLogger("benchplot", stderr, *flagVerbose)

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		return err
	}
	format, dpi, timeKey := cfg.Chart.Format, cfg.Chart.DPI, cfg.Log.TimeKey
	if fs.Changed("format") {
		format = *flagFormat
	}
	if fs.Changed("dpi") {
		dpi = *flagDPI
	}
	if fs.Changed("time-key") {
		timeKey = *flagTimeKey
	}
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if !validFormat(format) {
		fmt.Fprintf(stderr, "benchplot: unsupported image format %q\n", format)
		fs.Usage()
		return cmdutil.ErrUsage
	}

	inputs := append(append([]string(nil), fs.Args()...), *flagCompare...)
	var runs []benchchart.Run
	for _, path := range inputs {
		var rs []benchchart.Run
		var err error
		if *flagLog || strings.HasSuffix(path, ".log") {
			rs, err = loadLog(path, timeKey, log)
		} else {
			rs, err = loadTable(path)
		}
		if err != nil {
			log.WithField("file", path).Error(err)
			continue
		}
		log.WithField("file", path).Debugf("%d runs", len(rs))
		runs = append(runs, rs...)
	}
	if len(runs) == 0 {
		return errNoData
	}

	charts, mode, err := benchchart.Plan(runs, benchchart.PlanOptions{
		Mode:          mode,
		NoGlobal:      *flagNoGlobal,
		NoVersion:     *flagNoVersion,
		NoSize:        *flagNoSize,
		NoVersionSize: *flagNoVersionSize,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "runs: %d, versions: %d, mode: %s\n", len(runs), countVersions(runs), mode)

	for _, c := range charts {
		path := filepath.Join(*flagDir, c.Name+"."+format)
		log.WithField("chart", c.Name).Debugf("%.1fx%.1f in", c.W.Points()/72, c.H.Points()/72)
		if err := benchchart.Save(c.Plot, path, c.W, c.H, dpi); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "saved: %s\n", path)
	}
	fmt.Fprintf(stdout, "%d charts written to %s\n", len(charts), *flagDir)
	return nil
}

func loadTable(path string) ([]benchchart.Run, error) {
	t, err := benchtab.Load(path)
	if err != nil {
		return nil, err
	}
	return benchchart.RunsFromTable(t, path)
}

func loadLog(path, timeKey string, log *logrus.Entry) ([]benchchart.Run, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &benchtab.MissingFileError{Path: path}
		}
		return nil, err
	}
	defer f.Close()
	r := benchlog.NewReader(f, path)
	var recs []*benchlog.Record
	for r.Scan() {
		recs = append(recs, r.Result())
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	for _, warn := range r.Warnings() {
		log.Warn(warn)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%s: %w", path, benchlog.ErrNoData)
	}
	return benchchart.RunsFromRecords(recs, timeKey)
}

func validFormat(f string) bool {
	for _, g := range benchchart.Formats {
		if f == g {
			return true
		}
	}
	return false
}

func countVersions(runs []benchchart.Run) int {
	seen := make(map[string]bool)
	for _, r := range runs {
		seen[r.Version] = true
	}
	return len(seen)
}
