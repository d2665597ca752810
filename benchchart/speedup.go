// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/rvv-matmul/benchtools/benchtab"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SpeedupOptions selects the columns of a speedup chart.
type SpeedupOptions struct {
	// X and Y name the columns plotted on each axis.
	X, Y string

	// GroupBy lists the columns that distinguish series. If it
	// is empty, all rows form a single series labeled Y.
	GroupBy []string

	Title string
}

// SpeedupChart plots Y against X for the rows of t, with one line per
// distinct combination of the GroupBy columns and a reference line at
// y = 1. Rows where X or Y is missing are left out. It returns the
// plot and the number of series drawn.
func SpeedupChart(t *table.Table, opts SpeedupOptions) (*plot.Plot, int, error) {
	have := make(map[string]bool)
	for _, c := range t.Columns() {
		have[c] = true
	}
	for _, c := range append([]string{opts.X, opts.Y}, opts.GroupBy...) {
		if !have[c] {
			return nil, 0, fmt.Errorf("column %q not found", c)
		}
	}

	type series struct {
		key []string
		xys plotter.XYs
	}
	var all []*series
	g := table.GroupBy(t, opts.GroupBy...)
	for _, gid := range g.Tables() {
		gt := g.Table(gid)
		s := &series{key: groupKey(gid)}
		xs, ys := benchtab.Floats(gt, opts.X), benchtab.Floats(gt, opts.Y)
		for i := range xs {
			if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) {
				continue
			}
			s.xys = append(s.xys, plotter.XY{X: xs[i], Y: ys[i]})
		}
		if len(s.xys) > 0 {
			all = append(all, s)
		}
	}
	if len(all) == 0 {
		return nil, 0, errNoPoints
	}
	sort.SliceStable(all, func(i, j int) bool { return keyLess(all[i].key, all[j].key) })

	p := newPlot(opts.Title, capitalize(opts.X), capitalize(opts.Y))
	p.Legend.Left = false
	addGrid(p, true)

	var xs []float64
	ymin, ymax := 1.0, 1.0
	for i, s := range all {
		sort.SliceStable(s.xys, func(i, j int) bool { return s.xys[i].X < s.xys[j].X })
		for _, xy := range s.xys {
			xs = append(xs, xy.X)
			ymin, ymax = math.Min(ymin, xy.Y), math.Max(ymax, xy.Y)
		}
		line, points, err := plotter.NewLinePoints(s.xys)
		if err != nil {
			return nil, 0, err
		}
		st := styleFor(i)
		line.LineStyle = st.line
		points.GlyphStyle = st.glyph
		p.Add(line, points)

		label := opts.Y
		if len(opts.GroupBy) > 0 {
			parts := make([]string, len(opts.GroupBy))
			for k, col := range opts.GroupBy {
				parts[k] = col + "=" + s.key[k]
			}
			label = strings.Join(parts, ", ")
		}
		p.Legend.Add(label, line, points)
	}

	ref := plotter.NewFunction(func(float64) float64 { return 1 })
	ref.Color = refColor
	ref.Width = vg.Points(2)
	p.Add(ref)
	p.Legend.Add("Baseline (1.00)", ref)

	p.Y.Min, p.Y.Max = math.Min(p.Y.Min, ymin), math.Max(p.Y.Max, ymax)
	p.X.Tick.Marker = valueTicks(xs)
	slantX(p, 9)
	if ymin == ymax {
		ymin, ymax = ymin-0.5, ymax+0.5
	}
	p.Y.Tick.Marker = ratioLines(ymin, ymax)
	return p, len(all), nil
}

// groupKey returns the labels of gid from the outermost grouping
// inwards.
func groupKey(gid table.GroupID) []string {
	var key []string
	for ; gid != table.RootGroupID; gid = gid.Parent() {
		key = append(key, fmt.Sprint(gid.Label()))
	}
	for i, j := 0, len(key)-1; i < j; i, j = i+1, j-1 {
		key[i], key[j] = key[j], key[i]
	}
	return key
}

// keyLess orders group keys element by element, numerically where
// both elements are numbers.
func keyLess(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] == b[i] {
			continue
		}
		x, err1 := strconv.ParseFloat(a[i], 64)
		y, err2 := strconv.ParseFloat(b[i], 64)
		if err1 == nil && err2 == nil && x != y {
			return x < y
		}
		return a[i] < b[i]
	}
	return len(a) < len(b)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
