// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Speedplot draws the speedups computed by the speedup command.
//
// Usage:
//
//	speedplot [flags] file.csv
//
// Speedplot plots the -y column against the -x column, with one line
// per distinct combination of the -g columns and a red reference line
// at a speedup of 1. The image format follows the extension of -o.
//
// Parameter sweeps often also run the default value of the swept
// parameter, duplicating a configuration that exists elsewhere in the
// table. -exclude-param and -exclude-value drop those rows, but only
// where the same x and group values also have rows with another value
// of the parameter:
//
//	speedplot -g kernel,lmul --exclude-param lmul --exclude-value 1 result_speedup.csv
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rvv-matmul/benchtools/benchchart"
	"github.com/rvv-matmul/benchtools/benchtab"
	"github.com/rvv-matmul/benchtools/internal/cmdutil"
	"github.com/rvv-matmul/benchtools/internal/config"
	"github.com/rvv-matmul/benchtools/speedup"
	"gonum.org/v1/plot/vg"
)

var exit = os.Exit // replaced during testing

func main() {
	cmdutil.Main("speedplot", run, exit)
}

func run(stdout, stderr io.Writer, args []string) error {
	fs := cmdutil.NewFlagSet("speedplot", "[flags] file.csv", stderr)
	flagGroupBy := fs.StringP("groupby", "g", "", "comma-separated `columns` that distinguish the series")
	flagX := fs.StringP("x", "x", "size", "x axis `column`")
	flagY := fs.StringP("y", "y", speedup.Column, "y axis `column`")
	flagOut := fs.StringP("output", "o", "speedup.png", "write the chart to `file`")
	flagParam := fs.String("exclude-param", "", "drop duplicate rows of the swept `parameter`")
	flagValue := fs.Float64("exclude-value", 1, "`value` of -exclude-param to drop")
	flagDPI := fs.Int("dpi", benchchart.DefaultDPI, "resolution of PNG charts")
	flagConfig := fs.String("config", "", "read default settings from YAML `file`")
	flagVerbose := fs.BoolP("verbose", "v", false, "log the table as it is filtered")
	if err := cmdutil.Parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return cmdutil.ErrUsage
	}
	if fs.Changed("exclude-value") && *flagParam == "" {
		fmt.Fprintln(stderr, "speedplot: -exclude-value requires -exclude-param")
		fs.Usage()
		return cmdutil.ErrUsage
	}
	log := cmdutil.NewLogger("speedplot", stderr, *flagVerbose)

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		return err
	}
	dpi := cfg.Chart.DPI
	if fs.Changed("dpi") {
		dpi = *flagDPI
	}

	path := fs.Arg(0)
	t, err := benchtab.Load(path)
	if err != nil {
		return err
	}
	log.WithField("file", path).Debugf("%d rows, columns %s", t.Len(), strings.Join(t.Columns(), ", "))

	groupBy := splitList(*flagGroupBy)
	if *flagParam != "" {
		var removed int
		t, removed, err = benchchart.ExcludeDuplicates(t, *flagParam, *flagValue, append([]string{*flagX}, groupBy...))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Fprintf(stdout, "filtered %d duplicates with %s=%s\n", removed, *flagParam, strconv.FormatFloat(*flagValue, 'g', -1, 64))
	}

	p, n, err := benchchart.SpeedupChart(t, benchchart.SpeedupOptions{
		X:       *flagX,
		Y:       *flagY,
		GroupBy: groupBy,
		Title:   "Speedup - " + filepath.Base(path),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	w, h := vg.Length(cfg.Chart.Width)*vg.Inch, vg.Length(cfg.Chart.Height)*vg.Inch
	if err := benchchart.Save(p, *flagOut, w, h, dpi); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "saved: %s (%d series)\n", *flagOut, n)
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
