// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
)

// errNoPoints is returned when a chart would have nothing to draw.
var errNoPoints = errors.New("no data points to plot")

// TimeChart plots execution time against input size with one line
// per configuration. label names each configuration's series in the
// legend. Runs without an execution time are left out.
func TimeChart(runs []Run, title string, label func(Run) string) (*plot.Plot, error) {
	runs = append([]Run(nil), runs...)
	SortRuns(runs)

	type series struct {
		label string
		xys   plotter.XYs
	}
	var all []*series
	index := make(map[config]*series)
	for _, r := range runs {
		if math.IsNaN(r.Time) {
			continue
		}
		s := index[r.config()]
		if s == nil {
			s = &series{label: label(r)}
			index[r.config()] = s
			all = append(all, s)
		}
		s.xys = append(s.xys, plotter.XY{X: float64(r.Size), Y: r.Time})
	}
	if len(all) == 0 {
		return nil, errNoPoints
	}

	p := newPlot(title, "Input size", "Execution time (s)")
	addGrid(p, true)
	for i, s := range all {
		sort.SliceStable(s.xys, func(i, j int) bool { return s.xys[i].X < s.xys[j].X })
		line, points, err := plotter.NewLinePoints(s.xys)
		if err != nil {
			return nil, err
		}
		st := styleFor(i)
		line.LineStyle = st.line
		points.GlyphStyle = st.glyph
		p.Add(line, points)
		p.Legend.Add(s.label, line, points)
	}
	if len(all) > 10 {
		p.Legend.TextStyle.Font.Size = 7
	}
	return p, nil
}
