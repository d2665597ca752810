// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchchart draws charts of matrix-multiply benchmark
// results: execution time against input size, L1 cache events per
// configuration, and speedup against a baseline.
package benchchart

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/rvv-matmul/benchtools/benchlog"
	"github.com/rvv-matmul/benchtools/benchtab"
	"github.com/rvv-matmul/benchtools/benchunit"
	"github.com/rvv-matmul/benchtools/lmul"
)

// NoKernel is the kernel of a run that does not report one.
const NoKernel = "N/A"

// A Run is one benchmark run as shown in charts. Configuration
// parameters are kept in display form.
type Run struct {
	Version string
	Size    int

	// Kernel is NoKernel if the run has no kernel parameter.
	// LMUL and Unroll are "1" when absent.
	Kernel, LMUL, Unroll string

	// Time is NaN if the run has no execution time.
	Time float64

	// HasCounters reports whether Loads, Misses and MissRate are
	// known.
	HasCounters   bool
	Loads, Misses int64
	MissRate      float64
	Source        string
}

// Simple reports whether r uses the default value of every
// configuration parameter.
func (r Run) Simple() bool {
	return (r.Kernel == NoKernel || r.Kernel == "0") && r.LMUL == "1" && r.Unroll == "1"
}

// Label returns the version of r, followed by its non-default
// parameters, as in "tiling (k=4, LMUL=1/2, UNROLL=2)".
func (r Run) Label() string {
	var params []string
	if r.Kernel != NoKernel && r.Kernel != "0" {
		params = append(params, "k="+r.Kernel)
	}
	if r.LMUL != "1" {
		params = append(params, "LMUL="+r.LMUL)
	}
	if r.Unroll != "1" {
		params = append(params, "UNROLL="+r.Unroll)
	}
	if len(params) == 0 {
		return r.Version
	}
	return r.Version + " (" + strings.Join(params, ", ") + ")"
}

// ConfigLabel labels r within a chart of a single version, as in
// "k=4 LMUL=1/2 UNROLL=2".
func (r Run) ConfigLabel() string {
	s := "k=" + r.Kernel + " LMUL=" + r.LMUL
	if r.Unroll != "1" {
		s += " UNROLL=" + r.Unroll
	}
	return s
}

type config struct {
	version, kernel, lmul, unroll string
}

func (r Run) config() config {
	return config{r.Version, r.Kernel, r.LMUL, r.Unroll}
}

// less orders runs by version, then numerically by kernel, LMUL and
// unroll.
func (r Run) less(o Run) bool {
	if r.Version != o.Version {
		return r.Version < o.Version
	}
	if a, b := paramValue(r.Kernel), paramValue(o.Kernel); a != b {
		return a < b
	}
	if a, b := lmul.Parse(r.LMUL), lmul.Parse(o.LMUL); a != b {
		return a < b
	}
	if a, b := paramValue(r.Unroll), paramValue(o.Unroll); a != b {
		return a < b
	}
	return r.Size < o.Size
}

func paramValue(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// SortRuns sorts runs by configuration and size.
func SortRuns(runs []Run) {
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].less(runs[j]) })
}

func param(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

func newRun(version, size, kernel, lm, unroll string) (Run, error) {
	n, err := benchunit.ParseCount(size)
	if err != nil {
		return Run{}, fmt.Errorf("bad size %q", size)
	}
	r := Run{
		Version: strings.TrimSpace(version),
		Size:    int(n),
		Kernel:  param(kernel, NoKernel),
		LMUL:    "1",
		Unroll:  param(unroll, "1"),
		Time:    math.NaN(),
	}
	if s := strings.TrimSpace(lm); s != "" {
		r.LMUL = lmul.Normalize(s)
	}
	return r, nil
}

func (r *Run) setCounters(loads, misses, rate string) {
	l, err1 := benchunit.ParseCount(loads)
	m, err2 := benchunit.ParseCount(misses)
	if err1 != nil || err2 != nil {
		return
	}
	r.HasCounters, r.Loads, r.Misses = true, l, m
	if v, err := benchunit.ParseNumber(rate); err == nil {
		r.MissRate = v
	} else if l > 0 {
		r.MissRate = float64(m) / float64(l) * 100
	}
}

// RunsFromRecords converts records extracted from a log. timeKey names
// the execution time field.
func RunsFromRecords(recs []*benchlog.Record, timeKey string) ([]Run, error) {
	var runs []Run
	for _, rec := range recs {
		get := func(k string) string { v, _ := rec.Get(k); return v }
		r, err := newRun(rec.Version(), get(benchlog.KeySize), get(benchlog.KeyKernel), get(benchlog.KeyLMUL), get(benchlog.KeyUnroll))
		if err != nil {
			file, line := rec.Pos()
			return nil, fmt.Errorf("%s:%d: %w", file, line, err)
		}
		if t, ok := rec.Float(timeKey); ok {
			r.Time = t
		}
		r.setCounters(get(benchlog.KeyLoads), get(benchlog.KeyMisses), get(benchlog.KeyMissRate))
		r.Source, _ = rec.Pos()
		runs = append(runs, r)
	}
	return runs, nil
}

// A MissingColumnsError reports required columns that a result table
// lacks.
type MissingColumnsError struct {
	Source  string
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: required columns not found: %s", e.Source, strings.Join(e.Missing, ", "))
}

// RunsFromTable converts a result table. Column headers may use any
// of the spellings known to the benchtab resolvers.
func RunsFromTable(t *table.Table, source string) ([]Run, error) {
	header := t.Columns()
	cols := make(map[string][]string)
	var missing []string
	for _, c := range []struct {
		name     string
		r        benchtab.Resolver
		required bool
	}{
		{"version", benchtab.VersionCol, true},
		{"size", benchtab.SizeCol, true},
		{"kernel", benchtab.KernelCol, false},
		{"lmul", benchtab.LMULCol, false},
		{"unroll", benchtab.UnrollCol, false},
		{"loads", benchtab.LoadsCol, true},
		{"misses", benchtab.MissesCol, true},
		{"rate", benchtab.MissRateCol, false},
		{"time", benchtab.TimeCol, true},
	} {
		h, ok := c.r.Resolve(header)
		if !ok {
			if c.required {
				missing = append(missing, c.name+" ("+c.r.String()+")")
			}
			cols[c.name] = make([]string, t.Len())
			continue
		}
		cols[c.name] = benchtab.Strings(t, h)
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{source, missing}
	}

	runs := make([]Run, t.Len())
	for i := range runs {
		r, err := newRun(cols["version"][i], cols["size"][i], cols["kernel"][i], cols["lmul"][i], cols["unroll"][i])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", source, i+2, err)
		}
		if v, err := benchunit.ParseNumber(cols["time"][i]); err == nil {
			r.Time = v
		}
		r.setCounters(cols["loads"][i], cols["misses"][i], cols["rate"][i])
		r.Source = source
		runs[i] = r
	}
	return runs, nil
}

// SafeName turns s into a string usable in a file name.
func SafeName(s string) string {
	return strings.NewReplacer(" ", "_", "/", "_", ".", "_").Replace(s)
}
