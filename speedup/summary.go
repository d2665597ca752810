// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package speedup

import (
	"fmt"
	"math"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"github.com/rvv-matmul/benchtools/benchtab"
)

// A Summary summarizes a set of speedups.
type Summary struct {
	// N is the number of rows and Defined the number of rows with
	// a defined speedup.
	N, Defined int

	// Mean is the arithmetic mean of the defined speedups. It is
	// NaN if there are none.
	Mean float64

	// GeoMean is the geometric mean of the defined speedups, or
	// NaN if any of them is not positive.
	GeoMean float64

	Min, Max float64
}

// Summarize computes the summary of xs, ignoring NaN values.
func Summarize(xs []float64) Summary {
	defined := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			defined = append(defined, x)
		}
	}
	s := Summary{
		N:       len(xs),
		Defined: len(defined),
		Mean:    stats.Mean(defined),
		GeoMean: stats.GeoMean(defined),
	}
	s.Min, s.Max = stats.Bounds(defined)
	return s
}

// String formats the mean speedup the way the speedup command
// reports it.
func (s Summary) String() string {
	if s.Defined == 0 {
		return "mean speedup: undefined"
	}
	return fmt.Sprintf("mean speedup: %.4f", s.Mean)
}

// A Group is the summary of the speedups of the rows that share the
// values of some columns.
type Group struct {
	// Label gives the group's column values, in the order the
	// columns were requested.
	Label []string
	Summary
}

// Groups splits the rows of r by the values of cols and summarizes
// each group. Groups appear in order of first appearance.
func (r *Result) Groups(cols ...string) ([]Group, error) {
	for _, col := range cols {
		if r.Table.Column(col) == nil {
			return nil, &MissingColumnError{Column: col, Table: "result"}
		}
	}
	if len(cols) == 0 {
		return []Group{{Summary: r.Summary}}, nil
	}

	g := table.GroupBy(r.Table, cols...)
	var groups []Group
	for _, gid := range g.Tables() {
		t := g.Table(gid)
		label := make([]string, len(cols))
		for i, col := range cols {
			label[i] = benchtab.Strings(t, col)[0]
		}
		groups = append(groups, Group{
			Label:   label,
			Summary: Summarize(t.MustColumn(Column).([]float64)),
		})
	}
	return groups, nil
}

// LabelString joins the group's label with "/".
func (g Group) LabelString() string {
	if len(g.Label) == 0 {
		return "all"
	}
	return strings.Join(g.Label, "/")
}
