// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	loadsColor  = color.NRGBA{0x27, 0xae, 0x60, 0xd9}
	missesColor = color.NRGBA{0xc0, 0x39, 0x2b, 0xd9}
	refColor    = color.NRGBA{0xff, 0, 0, 0xff}
)

// seriesColors cycles through a qualitative palette. Combined with
// the dash and glyph cycles of plotutil, consecutive series stay
// distinguishable well past the palette's size.
var seriesColors = func() []color.Color {
	p, err := brewer.GetPalette(brewer.TypeQualitative, "Paired", 12)
	if err != nil {
		panic(err)
	}
	return p.Colors()
}()

type seriesStyle struct {
	line  draw.LineStyle
	glyph draw.GlyphStyle
}

func styleFor(i int) seriesStyle {
	c := seriesColors[i%len(seriesColors)]
	return seriesStyle{
		line: draw.LineStyle{
			Color:  c,
			Width:  vg.Points(2),
			Dashes: plotutil.Dashes(i),
		},
		glyph: draw.GlyphStyle{
			Color:  c,
			Radius: vg.Points(3),
			Shape:  plotutil.Shape(i),
		},
	}
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = 15
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.X.Label.TextStyle.Font.Size = 12
	p.Y.Label.TextStyle.Font.Size = 12
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.Padding = 1 * vg.Millimeter
	return p
}

func addGrid(p *plot.Plot, vertical bool) {
	g := plotter.NewGrid()
	g.Horizontal.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	g.Vertical.Dashes = g.Horizontal.Dashes
	if !vertical {
		g.Vertical.Color = nil
	}
	p.Add(g)
}

// slantX rotates the X tick labels so long configuration labels do
// not overlap.
func slantX(p *plot.Plot, size vg.Length) {
	p.X.Tick.Label.Rotation = -math.Pi / 6
	p.X.Tick.Label.YAlign = draw.YTop
	p.X.Tick.Label.XAlign = draw.XLeft
	p.X.Tick.Label.Font.Size = size
}
