// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/rvv-matmul/benchtools/benchunit"
	"gonum.org/v1/plot"
)

// ratioTicks places grid lines at roundish steps around 1.0, so that a
// speedup chart always shows where the baseline is.
type ratioTicks struct {
	ticks []plot.Tick
}

func (r ratioTicks) Ticks(min, max float64) []plot.Tick {
	return r.ticks
}

// roundish finds a roundish fraction less than x, and the number of digits for formatting.
// x is distance from 1.0, so 1 +/- roundish(x) gives a good location for a grid line.
func roundish(x float64) (float64, int) {
	if !(x > 0) { // catch NaN also.
		panic(fmt.Sprintf("roundish(%.9g <= 0)", x))
	}
	if x >= 1 {
		return math.Trunc(x), 0
	}
	if x >= 0.5 {
		return 0.5, 1
	}
	if x >= 0.25 {
		return 0.25, 2
	}
	if x >= 0.2 {
		return 0.2, 1
	}
	if x >= 0.1 {
		return 0.1, 1
	}
	x, n := roundish(x * 10)
	return x / 10, n + 1
}

func reverseTicks(ticks []plot.Tick) []plot.Tick {
	l := len(ticks)
	for i := 0; i < l/2; i++ {
		ticks[i], ticks[l-i-1] = ticks[l-i-1], ticks[i]
	}
	return ticks
}

// ratioLines returns ticks for ratios in [low, high]. 1.0 is always
// one of the ticks.
func ratioLines(low, high float64) ratioTicks {
	if high <= 1 {
		if low == 1 {
			return ratioTicks{[]plot.Tick{one}}
		}
		step, k := roundish(1 - low)
		var ticks []plot.Tick
		for t := 1.0; t > low-step; t -= step {
			ticks = append(ticks, tick(t, k))
		}
		return ratioTicks{reverseTicks(ticks)}
	} else if low >= 1 {
		step, k := roundish(high - 1)
		var ticks []plot.Tick
		for t := 1.0; t < high+step; t += step {
			ticks = append(ticks, tick(t, k))
		}
		return ratioTicks{ticks}
	}
	rmin, kmin := roundish(1 - low)
	rmax, k := roundish(high - 1)
	if rmax < rmin {
		rmax = rmin
		k = kmin
	}

	step := rmax
	var ticks []plot.Tick
	for t := 1.0; t > low-step; t -= step {
		ticks = append(ticks, tick(t, k))
	}
	ticks = reverseTicks(ticks)
	for t := 1.0 + step; t < high+step; t += step {
		ticks = append(ticks, tick(t, k))
	}
	return ratioTicks{ticks}
}

func tick(x float64, k int) plot.Tick {
	if k < 2 {
		k = 2
	}
	return plot.Tick{Value: x, Label: strconv.FormatFloat(x, 'f', k, 64)}
}

var one = plot.Tick{Value: 1.0, Label: "1.00"}

// countTicks labels the default ticks of an event-count axis with
// thousands separators.
type countTicks struct{}

func (countTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = benchunit.FormatCount(int64(math.Round(ticks[i].Value)))
		}
	}
	return ticks
}

// valueTicks places a labeled tick at each distinct value in xs.
func valueTicks(xs []float64) plot.ConstantTicks {
	seen := make(map[float64]bool)
	var vals []float64
	for _, x := range xs {
		if !seen[x] {
			seen[x] = true
			vals = append(vals, x)
		}
	}
	sort.Float64s(vals)
	ticks := make([]plot.Tick, len(vals))
	for i, v := range vals {
		ticks[i] = plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)}
	}
	return plot.ConstantTicks(ticks)
}
