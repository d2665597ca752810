// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// A Mode selects which charts Plan produces.
type Mode string

const (
	// ModeAuto is ModeSingle if the runs have a single version
	// and ModeCompare otherwise.
	ModeAuto Mode = "auto"

	// ModeSingle charts one version: no global chart and no
	// per-size charts across versions.
	ModeSingle Mode = "single"

	// ModeCompare charts several versions against each other.
	ModeCompare Mode = "compare"
)

// ParseMode parses the name of a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeAuto, ModeSingle, ModeCompare:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q (want auto, single or compare)", s)
}

// PlanOptions disables individual groups of charts.
type PlanOptions struct {
	Mode Mode

	NoGlobal      bool // time chart of every configuration
	NoVersion     bool // time chart per version
	NoSize        bool // cache chart per size, across versions
	NoVersionSize bool // cache chart per version and size
}

// A Chart is a plot ready to be saved.
type Chart struct {
	// Name is the file name of the chart, without extension.
	Name string
	Plot *plot.Plot

	// W and H are the size of the figure.
	W, H vg.Length
}

// ErrNoRuns is returned by Plan when there is nothing to chart.
var ErrNoRuns = errors.New("no benchmark runs")

// Plan builds the charts for runs and returns them along with the
// mode that was used. Charts with nothing to draw, such as cache
// charts of runs without counters, are left out.
func Plan(runs []Run, opts PlanOptions) ([]Chart, Mode, error) {
	if len(runs) == 0 {
		return nil, "", ErrNoRuns
	}
	runs = append([]Run(nil), runs...)
	SortRuns(runs)

	byVersion := make(map[string][]Run)
	var versions []string
	for _, r := range runs {
		if _, ok := byVersion[r.Version]; !ok {
			versions = append(versions, r.Version)
		}
		byVersion[r.Version] = append(byVersion[r.Version], r)
	}
	sort.Strings(versions)

	mode := opts.Mode
	if mode == "" || mode == ModeAuto {
		mode = ModeCompare
		if len(versions) == 1 {
			mode = ModeSingle
		}
	}
	if mode == ModeSingle {
		opts.NoGlobal = true
		opts.NoSize = true
	}

	var charts []Chart
	add := func(name string, w, h float64, p *plot.Plot, err error) error {
		if errors.Is(err, errNoPoints) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		charts = append(charts, Chart{name, p, vg.Length(w) * vg.Inch, vg.Length(h) * vg.Inch})
		return nil
	}

	if !opts.NoGlobal {
		p, err := TimeChart(runs, "Execution time vs Input size (all configurations)", Run.Label)
		if err := add("benchmark_all_versions", 15, 9, p, err); err != nil {
			return nil, mode, err
		}
	}

	if !opts.NoVersion {
		for _, v := range versions {
			p, err := TimeChart(byVersion[v], "Execution time vs Input size ("+v+")", Run.ConfigLabel)
			if err := add("benchmark_"+SafeName(v), 12, 7, p, err); err != nil {
				return nil, mode, err
			}
		}
	}

	if !opts.NoSize {
		for _, size := range sizes(runs) {
			p, err := CacheChart(barsFor(atSize(runs, size), Run.Label), CacheOptions{
				Title:     fmt.Sprintf("L1 cache events - Input size = %d", size),
				XLabel:    "Configuration",
				Width:     15 * vg.Inch,
				Slant:     true,
				LabelSize: 14,
			})
			if err := add(fmt.Sprintf("benchmark_size_%d", size), 15, 9.5, p, err); err != nil {
				return nil, mode, err
			}
		}
	}

	if allSimple(runs) && mode == ModeCompare && !opts.NoVersionSize {
		var bars []Bar
		for _, size := range sizes(runs) {
			bars = append(bars, barsFor(atSize(runs, size), func(r Run) string {
				return strconv.Itoa(r.Size) + "\n" + r.Version
			})...)
		}
		w := math.Max(10, float64(len(bars))*0.8)
		p, err := CacheChart(bars, CacheOptions{
			Title:     "L1 cache events - All versions & sizes",
			XLabel:    "Input size & Version",
			Width:     vg.Length(w) * vg.Inch,
			Slant:     true,
			LabelSize: 8,
		})
		if err := add("benchmark_all_cache_events", w, 7, p, err); err != nil {
			return nil, mode, err
		}
	}

	if !opts.NoVersionSize {
		if mode == ModeSingle && len(versions) == 1 && oneConfigPerSize(runs) {
			v := versions[0]
			p, err := CacheChart(barsFor(runs, func(r Run) string { return strconv.Itoa(r.Size) }), CacheOptions{
				Title:  "L1 cache events - " + v + " (all sizes)",
				XLabel: "Input size",
				Width:  12 * vg.Inch,
			})
			if err := add("benchmark_"+SafeName(v)+"_all_sizes", 12, 7, p, err); err != nil {
				return nil, mode, err
			}
		} else {
			for _, v := range versions {
				vruns := byVersion[v]
				for _, size := range sizes(vruns) {
					p, err := CacheChart(barsFor(atSize(vruns, size), Run.ConfigLabel), CacheOptions{
						Title:     fmt.Sprintf("L1 cache events - %s - Input size = %d", v, size),
						XLabel:    "Configuration (kernel, LMUL, UNROLL)",
						Width:     10.2 * vg.Inch,
						Slant:     true,
						LabelSize: 10,
					})
					if err := add(fmt.Sprintf("benchmark_%s_size_%d", SafeName(v), size), 10.2, 6.5, p, err); err != nil {
						return nil, mode, err
					}
				}
			}
		}
	}
	return charts, mode, nil
}

// sizes returns the distinct sizes of runs in increasing order.
func sizes(runs []Run) []int {
	seen := make(map[int]bool)
	var out []int
	for _, r := range runs {
		if !seen[r.Size] {
			seen[r.Size] = true
			out = append(out, r.Size)
		}
	}
	sort.Ints(out)
	return out
}

func atSize(runs []Run, size int) []Run {
	var out []Run
	for _, r := range runs {
		if r.Size == size {
			out = append(out, r)
		}
	}
	return out
}

func allSimple(runs []Run) bool {
	for _, r := range runs {
		if !r.Simple() {
			return false
		}
	}
	return true
}

func oneConfigPerSize(runs []Run) bool {
	n := make(map[int]int)
	for _, r := range runs {
		n[r.Size]++
		if n[r.Size] > 1 {
			return false
		}
	}
	return true
}
