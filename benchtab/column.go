// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/aclements/go-gg/table"
	"github.com/rvv-matmul/benchtools/benchunit"
)

// Strings returns column col of t rendered as strings, or nil if t
// has no such column. NaN values render as "".
func Strings(t *table.Table, col string) []string {
	switch vs := t.Column(col).(type) {
	case nil:
		return nil
	case []string:
		return vs
	case []float64:
		out := make([]string, len(vs))
		for i, v := range vs {
			if !math.IsNaN(v) {
				out[i] = strof(v)
			}
		}
		return out
	case []int:
		out := make([]string, len(vs))
		for i, v := range vs {
			out[i] = strconv.Itoa(v)
		}
		return out
	default:
		rv := reflect.ValueOf(vs)
		out := make([]string, rv.Len())
		for i := range out {
			out[i] = fmt.Sprint(rv.Index(i).Interface())
		}
		return out
	}
}

// Floats returns column col of t as float64 values, or nil if t has no
// such column. Cells that are not numbers are NaN. Thousands
// separators are accepted.
func Floats(t *table.Table, col string) []float64 {
	switch vs := t.Column(col).(type) {
	case nil:
		return nil
	case []float64:
		return vs
	case []int:
		out := make([]float64, len(vs))
		for i, v := range vs {
			out[i] = float64(v)
		}
		return out
	default:
		strs := Strings(t, col)
		out := make([]float64, len(strs))
		for i, s := range strs {
			v, err := benchunit.ParseNumber(s)
			if err != nil {
				v = math.NaN()
			}
			out[i] = v
		}
		return out
	}
}

// A Default fills in a numeric configuration column.
type Default struct {
	Column string
	Value  float64

	// Parse converts a cell to a number. It reports false if the
	// cell cannot be parsed, in which case Value is used. If Parse
	// is nil, cells are parsed as plain numbers.
	Parse func(s string) (float64, bool)
}

func (d Default) parse(s string) float64 {
	if d.Parse != nil {
		if v, ok := d.Parse(s); ok {
			return v
		}
		return d.Value
	}
	v, err := benchunit.ParseNumber(s)
	if err != nil || math.IsNaN(v) {
		return d.Value
	}
	return v
}

// WithDefaults returns a new table in which every column named in
// defs is present and holds []float64 values. A column that t lacks is
// added as a constant column of the default value. Cells of an
// existing column that cannot be parsed take the default value.
//
// t itself is not modified.
func WithDefaults(t *table.Table, defs []Default) *table.Table {
	b := table.NewBuilder(t)
	for _, d := range defs {
		if t.Column(d.Column) == nil {
			b.AddConst(d.Column, d.Value)
			continue
		}
		if vs, ok := t.Column(d.Column).([]float64); ok {
			out := make([]float64, len(vs))
			for i, v := range vs {
				if math.IsNaN(v) {
					v = d.Value
				}
				out[i] = v
			}
			b.Add(d.Column, out)
			continue
		}
		strs := Strings(t, d.Column)
		out := make([]float64, len(strs))
		for i, s := range strs {
			out[i] = d.parse(s)
		}
		b.Add(d.Column, out)
	}
	return b.Done()
}
