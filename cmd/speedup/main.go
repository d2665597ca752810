// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Speedup computes the speedup of an optimized benchmark table over a
// baseline table.
//
// Usage:
//
//	speedup [flags] base.csv opt.csv
//
// Each row of opt.csv is matched with the rows of base.csv that have
// the same join keys (-k, default "size,kernel,lmul,unroll"). Missing
// lmul and unroll columns default to 1, and lmul may be written as a
// fraction. The speedup is base/opt of the metric column (-m, default
// "time"), rounded to three decimal places. The output (-o, default
// result_speedup.csv) has the columns of opt.csv followed by
// "speedup"; rows without a match have an empty speedup.
//
// The -summary flag prints per-group statistics, grouping rows by the
// given columns. The -html flag additionally writes the result as an
// HTML table.
package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rvv-matmul/benchtools/benchtab"
	"github.com/rvv-matmul/benchtools/internal/cmdutil"
	"github.com/rvv-matmul/benchtools/internal/config"
	"github.com/rvv-matmul/benchtools/internal/texttab"
	"github.com/rvv-matmul/benchtools/speedup"
)

var exit = os.Exit // replaced during testing

func main() {
	cmdutil.Main("speedup", run, exit)
}

func run(stdout, stderr io.Writer, args []string) error {
	fs := cmdutil.NewFlagSet("speedup", "[flags] base.csv opt.csv", stderr)
	flagOutput := fs.StringP("output", "o", "result_speedup.csv", "write the result to `file`")
	flagMetric := fs.StringP("metric", "m", "time", "compare the `column` holding time or cycles")
	flagKeys := fs.StringP("keys", "k", "size,kernel,lmul,unroll", "match rows on these comma-separated `columns`")
	flagSummary := fs.String("summary", "", "print speedup statistics grouped by comma-separated `columns` (\"-\" for all rows)")
	flagHTML := fs.String("html", "", "also write the result as an HTML table to `file`")
	flagConfig := fs.String("config", "", "read default settings from YAML `file`")
	flagVerbose := fs.BoolP("verbose", "v", false, "log details of the join")
	if err := cmdutil.Parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return cmdutil.ErrUsage
	}
	log := cmdutil.NewLogger("speedup", stderr, *flagVerbose)

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		return err
	}
	opts := speedup.Options{Metric: cfg.Speedup.Metric, Keys: cfg.Speedup.Keys}
	cols := make([]string, 0, len(cfg.Speedup.Defaults))
	for col := range cfg.Speedup.Defaults {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	for _, col := range cols {
		opts.Defaults = append(opts.Defaults, speedup.NewDefault(col, cfg.Speedup.Defaults[col]))
	}
	output := cfg.Speedup.Output
	if fs.Changed("metric") {
		opts.Metric = *flagMetric
	}
	if fs.Changed("keys") || len(opts.Keys) == 0 {
		if opts.Keys, err = speedup.ParseKeys(*flagKeys); err != nil {
			return err
		}
	}
	if fs.Changed("output") || output == "" {
		output = *flagOutput
	}
	log.WithField("keys", strings.Join(opts.Keys, ",")).WithField("metric", opts.Metric).Debug("options")

	basePath, optPath := fs.Arg(0), fs.Arg(1)
	fmt.Fprintf(stdout, "loading optimized: %s\n", optPath)
	opt, err := benchtab.Load(optPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "loading baseline: %s\n", basePath)
	base, err := benchtab.Load(basePath)
	if err != nil {
		return err
	}
	log.Debugf("%d baseline rows, %d optimized rows", base.Len(), opt.Len())

	res, err := speedup.Compute(base, opt, opts)
	if err != nil {
		var mc *speedup.MissingColumnError
		if errors.As(err, &mc) && !mc.Metric {
			return fmt.Errorf("%w even after applying defaults", err)
		}
		return err
	}
	if res.Unmatched > 0 {
		fmt.Fprintf(stdout, "[warning] %d rows without a baseline match\n", res.Unmatched)
	}
	if err := res.WriteFile(output); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "saved to: %s\n", output)

	if *flagHTML != "" {
		f, err := os.Create(*flagHTML)
		if err != nil {
			return err
		}
		if err := speedup.FormatHTML(f, res); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		log.Debugf("wrote %s", *flagHTML)
	}

	if *flagSummary != "" {
		var groupBy []string
		if *flagSummary != "-" {
			if groupBy, err = speedup.ParseKeys(*flagSummary); err != nil {
				return err
			}
		}
		groups, err := res.Groups(groupBy...)
		if err != nil {
			return err
		}
		printGroups(stdout, groups)
	}

	fmt.Fprintln(stdout, res.Summary)
	return nil
}

func printGroups(w io.Writer, groups []speedup.Group) {
	var tab texttab.Table
	for col := 1; col <= 6; col++ {
		tab.SetRight(col)
	}
	tab.Row().Cell("group").Cell("rows").Cell("matched").Cell("mean").Cell("geomean").Cell("min").Cell("max")
	for _, g := range groups {
		tab.Row().Cell(g.LabelString()).
			Cell(strconv.Itoa(g.N)).
			Cell(strconv.Itoa(g.Defined)).
			Cell(ratio(g.Mean)).
			Cell(ratio(g.GeoMean)).
			Cell(ratio(g.Min)).
			Cell(ratio(g.Max))
	}
	tab.Format(w)
}

func ratio(x float64) string {
	if math.IsNaN(x) {
		return "-"
	}
	return strconv.FormatFloat(x, 'f', 3, 64)
}
