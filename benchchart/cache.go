// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// A Bar is one configuration in a cache chart.
type Bar struct {
	Label         string
	Loads, Misses int64
}

// MissRate returns the percentage of loads that missed, or 0 if there
// were no loads.
func (b Bar) MissRate() float64 {
	if b.Loads == 0 {
		return 0
	}
	return float64(b.Misses) / float64(b.Loads) * 100
}

// CacheOptions controls the appearance of a cache chart.
type CacheOptions struct {
	Title, XLabel string

	// Width is the width of the figure. Bars are sized to fit it.
	Width vg.Length

	// Slant rotates the category labels.
	Slant bool

	// LabelSize is the font size of the category labels and of
	// the miss-rate annotations.
	LabelSize vg.Length
}

// CacheChart draws grouped bars of L1 loads and misses for each bar,
// with the miss rate written above the misses bar.
func CacheChart(bars []Bar, opts CacheOptions) (*plot.Plot, error) {
	if len(bars) == 0 {
		return nil, errNoPoints
	}
	labelSize := opts.LabelSize
	if labelSize == 0 {
		labelSize = 10
	}

	loads := make(plotter.Values, len(bars))
	misses := make(plotter.Values, len(bars))
	names := make([]string, len(bars))
	var maxLoads float64
	for i, b := range bars {
		loads[i] = float64(b.Loads)
		misses[i] = float64(b.Misses)
		names[i] = b.Label
		maxLoads = math.Max(maxLoads, loads[i])
	}

	width := opts.Width * 0.7 / vg.Length(2*len(bars))
	if limit := vg.Points(28); width > limit || width <= 0 {
		width = limit
	}

	p := newPlot(opts.Title, opts.XLabel, "Event count")
	p.Legend.Left = false
	addGrid(p, false)

	lb, err := plotter.NewBarChart(loads, width)
	if err != nil {
		return nil, err
	}
	mb, err := plotter.NewBarChart(misses, width)
	if err != nil {
		return nil, err
	}
	for _, b := range []*plotter.BarChart{lb, mb} {
		b.LineStyle.Width = vg.Points(0.6)
	}
	lb.Color, lb.Offset = loadsColor, -width/2
	mb.Color, mb.Offset = missesColor, width/2

	xys := make(plotter.XYs, len(bars))
	rates := make([]string, len(bars))
	for i, b := range bars {
		xys[i] = plotter.XY{X: float64(i), Y: misses[i] + maxLoads*0.025}
		rates[i] = fmt.Sprintf("%.1f%%", b.MissRate())
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: rates})
	if err != nil {
		return nil, err
	}
	labels.Offset = vg.Point{X: width / 2}
	for i := range labels.TextStyle {
		st := &labels.TextStyle[i]
		st.Rotation = math.Pi / 2
		st.Color = missesColor
		st.Font.Size = labelSize
		st.XAlign = draw.XLeft
		st.YAlign = draw.YCenter
	}

	p.Add(lb, mb, labels)
	p.Legend.Add("L1 loads", lb)
	p.Legend.Add("L1 misses", mb)
	p.NominalX(names...)
	p.Y.Min = 0
	p.Y.Max = maxLoads * 1.2
	if p.Y.Max == 0 {
		p.Y.Max = 1
	}
	p.Y.Tick.Marker = countTicks{}
	if opts.Slant {
		slantX(p, labelSize)
	} else {
		p.X.Tick.Label.Font.Size = labelSize
	}
	return p, nil
}

// barsFor returns a bar for each run that reports cache counters.
func barsFor(runs []Run, label func(Run) string) []Bar {
	var bars []Bar
	for _, r := range runs {
		if !r.HasCounters {
			continue
		}
		bars = append(bars, Bar{Label: label(r), Loads: r.Loads, Misses: r.Misses})
	}
	return bars
}
