// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package speedup computes the speedup of an optimized benchmark run
// over a baseline run.
//
// Both runs are CSV tables with one row per configuration. Each
// optimized row is matched against the baseline rows that agree on
// every join key, and the speedup is the baseline metric divided by
// the optimized metric, rounded to three decimal places. Optimized
// rows without a baseline match are kept with an undefined speedup.
package speedup

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"github.com/rvv-matmul/benchtools/benchtab"
	"github.com/rvv-matmul/benchtools/lmul"
)

// Column is the name of the column added to the optimized table.
const Column = "speedup"

// Options configures Compute.
type Options struct {
	// Metric is the column compared between the two runs.
	Metric string

	// Keys are the columns that identify a configuration.
	Keys []string

	// Defaults fill in configuration columns missing from either
	// table before the join.
	Defaults []benchtab.Default
}

// DefaultOptions returns the options used by the speedup command:
// compare "time" on size, kernel, lmul and unroll, with lmul and
// unroll defaulting to 1.
func DefaultOptions() Options {
	return Options{
		Metric: "time",
		Keys:   []string{"size", "kernel", "lmul", "unroll"},
		Defaults: []benchtab.Default{
			NewDefault("lmul", lmul.Default),
			NewDefault("unroll", 1),
		},
	}
}

// NewDefault returns a default of v for column col. LMUL columns are
// parsed with lmul.Parse, so "1/2" and "-2" are both one half.
func NewDefault(col string, v float64) benchtab.Default {
	d := benchtab.Default{Column: col, Value: v}
	if col == "lmul" {
		d.Parse = parseLMUL
	}
	return d
}

func parseLMUL(s string) (float64, bool) {
	if strings.TrimSpace(s) == "" {
		return 0, false
	}
	return lmul.Parse(s), true
}

// A MissingColumnError reports a join key or metric column that is
// absent from one of the input tables even after defaults have been
// applied.
type MissingColumnError struct {
	Column string
	Table  string // "baseline" or "optimized"
	Metric bool
}

func (e *MissingColumnError) Error() string {
	kind := "key"
	if e.Metric {
		kind = "metric"
	}
	return fmt.Sprintf("%s column %q not found in %s table", kind, e.Column, e.Table)
}

// A Result is the optimized table annotated with speedups.
type Result struct {
	// Table holds Columns. Every column is a []string except the
	// speedup column, which is a []float64 with NaN for undefined
	// speedups.
	Table *table.Table

	// Columns are the columns of the optimized input, in their
	// original order, followed by the speedup column.
	Columns []string

	// Unmatched is the number of optimized rows that had no
	// baseline row with equal keys.
	Unmatched int

	Summary Summary
}

// Speedups returns the speedup column of r.
func (r *Result) Speedups() []float64 {
	return r.Table.MustColumn(Column).([]float64)
}

// Compute joins opt against base and computes the speedup of every
// optimized row. Neither input table is modified.
func Compute(base, opt *table.Table, opts Options) (*Result, error) {
	if len(opts.Keys) == 0 {
		return nil, fmt.Errorf("no join keys given")
	}

	// The output keeps the optimized table's own columns, not the
	// ones synthesized by the defaults.
	var cols []string
	for _, col := range opt.Columns() {
		if col != Column {
			cols = append(cols, col)
		}
	}

	base = benchtab.WithDefaults(base, opts.Defaults)
	optD := benchtab.WithDefaults(opt, opts.Defaults)

	for _, key := range opts.Keys {
		if base.Column(key) == nil {
			return nil, &MissingColumnError{Column: key, Table: "baseline"}
		}
		if optD.Column(key) == nil {
			return nil, &MissingColumnError{Column: key, Table: "optimized"}
		}
	}
	if base.Column(opts.Metric) == nil {
		return nil, &MissingColumnError{Column: opts.Metric, Table: "baseline", Metric: true}
	}
	if optD.Column(opts.Metric) == nil {
		return nil, &MissingColumnError{Column: opts.Metric, Table: "optimized", Metric: true}
	}

	// Index the baseline rows by key.
	baseKeys := rowKeys(base, opts.Keys)
	index := make(map[string][]int)
	for i, k := range baseKeys {
		index[k] = append(index[k], i)
	}

	// Left join, keeping baseline duplicates.
	var idxOpt, idxBase []int
	unmatched := 0
	for i, k := range rowKeys(optD, opts.Keys) {
		rows := index[k]
		if len(rows) == 0 {
			unmatched++
			idxOpt, idxBase = append(idxOpt, i), append(idxBase, -1)
			continue
		}
		for _, j := range rows {
			idxOpt, idxBase = append(idxOpt, i), append(idxBase, j)
		}
	}

	baseMetric := benchtab.Floats(base, opts.Metric)
	optMetric := benchtab.Floats(optD, opts.Metric)
	speedups := make([]float64, len(idxOpt))
	for n, i := range idxOpt {
		if j := idxBase[n]; j >= 0 {
			speedups[n] = Ratio(baseMetric[j], optMetric[i])
		} else {
			speedups[n] = math.NaN()
		}
	}

	defaulted := make(map[string]bool)
	for _, d := range opts.Defaults {
		defaulted[d.Column] = true
	}
	var b table.Builder
	for _, col := range cols {
		var data []string
		switch {
		case col == "lmul" && defaulted[col]:
			data = formatCol(optD, col, lmul.Format)
		case defaulted[col]:
			data = formatCol(optD, col, func(v float64) string {
				return strconv.FormatFloat(v, 'f', -1, 64)
			})
		default:
			data = benchtab.Strings(opt, col)
		}
		b.Add(col, slice.Select(data, idxOpt))
	}
	b.Add(Column, speedups)

	return &Result{
		Table:     b.Done(),
		Columns:   append(cols, Column),
		Unmatched: unmatched,
		Summary:   Summarize(speedups),
	}, nil
}

// Ratio returns base/opt rounded to three decimal places. Infinite
// and undefined ratios are NaN.
func Ratio(base, opt float64) float64 {
	r := base / opt
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return math.NaN()
	}
	return math.Round(r*1000) / 1000
}

func formatCol(t *table.Table, col string, format func(float64) string) []string {
	vs := benchtab.Floats(t, col)
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = format(v)
	}
	return out
}

// rowKeys returns, for each row of t, a string identifying the row's
// values in keys. Numeric cells are canonicalized so that "128" and
// "128.0" match.
func rowKeys(t *table.Table, keys []string) []string {
	cols := make([][]string, len(keys))
	for i, key := range keys {
		cols[i] = benchtab.Strings(t, key)
	}
	out := make([]string, t.Len())
	var sb strings.Builder
	for row := range out {
		sb.Reset()
		for i := range keys {
			if i > 0 {
				sb.WriteByte(0)
			}
			sb.WriteString(canonCell(cols[i][row]))
		}
		out[row] = sb.String()
	}
	return out
}

func canonCell(s string) string {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return s
}

// FormatSpeedup formats a speedup for a CSV cell. Undefined speedups
// are empty.
func FormatSpeedup(s float64) string {
	if math.IsNaN(s) {
		return ""
	}
	return strconv.FormatFloat(s, 'f', -1, 64)
}

// Write writes r to w as CSV.
func (r *Result) Write(w io.Writer) error {
	return benchtab.Write(w, r.Table, r.Columns, r.formatters())
}

// WriteFile writes r as CSV to the named file, creating its directory
// if needed.
func (r *Result) WriteFile(path string) error {
	return benchtab.WriteFile(path, r.Table, r.Columns, r.formatters())
}

func (r *Result) formatters() map[string]benchtab.Formatter {
	return map[string]benchtab.Formatter{Column: FormatSpeedup}
}
