// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// DefaultDPI is the resolution of PNG charts.
const DefaultDPI = 200

// Formats lists the file formats Save can write.
var Formats = []string{"png", "svg", "pdf"}

// Save draws p on a w×h canvas and writes it to path. The format is
// chosen by the extension of path. dpi applies to PNG output only; if
// it is zero, DefaultDPI is used. Missing parent directories are
// created.
func Save(p *plot.Plot, path string, w, h vg.Length, dpi int) error {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	var can vg.CanvasWriterTo
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "png":
		can = vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h),
			vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(color.White))}
	case "svg":
		can = vgsvg.New(w, h)
	case "pdf":
		can = vgpdf.New(w, h)
	default:
		return fmt.Errorf("%s: unsupported image format %q", path, ext)
	}
	p.Draw(draw.New(can))

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := can.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
