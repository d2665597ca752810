// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"fmt"
	"strings"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"github.com/rvv-matmul/benchtools/benchlog"
	"github.com/rvv-matmul/benchtools/benchtab"
	"github.com/rvv-matmul/benchtools/benchunit"
	"github.com/rvv-matmul/benchtools/lmul"
)

// ExcludeDuplicates drops the rows of t whose param column equals
// value, but only in groups that also have rows with another value of
// param. Rows are grouped by groupCols, ignoring param itself. This
// removes the default-parameter runs that duplicate a sweep over
// param while keeping configurations that only exist at the default.
//
// It returns the filtered table and the number of rows removed.
func ExcludeDuplicates(t *table.Table, param string, value float64, groupCols []string) (*table.Table, int, error) {
	have := make(map[string]bool)
	for _, c := range t.Columns() {
		have[c] = true
	}
	if !have[param] {
		return nil, 0, fmt.Errorf("parameter %q not found", param)
	}
	var keyCols []string
	for _, c := range groupCols {
		if c == param {
			continue
		}
		if !have[c] {
			return nil, 0, fmt.Errorf("column %q not found", c)
		}
		keyCols = append(keyCols, c)
	}

	parse := func(s string) (float64, bool) {
		v, err := benchunit.ParseNumber(s)
		return v, err == nil
	}
	if param == benchlog.KeyLMUL {
		parse = func(s string) (float64, bool) {
			if strings.TrimSpace(s) == "" {
				return 0, false
			}
			return lmul.Parse(s), true
		}
	}

	vals := benchtab.Strings(t, param)
	cols := make([][]string, len(keyCols))
	for i, c := range keyCols {
		cols[i] = benchtab.Strings(t, c)
	}
	is := make([]bool, t.Len())
	type mix struct{ match, other bool }
	groups := make(map[string]*mix)
	keys := make([]string, t.Len())
	for i := range keys {
		parts := make([]string, len(cols))
		for j := range cols {
			parts[j] = cols[j][i]
		}
		keys[i] = strings.Join(parts, "\x00")
		m := groups[keys[i]]
		if m == nil {
			m = new(mix)
			groups[keys[i]] = m
		}
		v, ok := parse(vals[i])
		is[i] = ok && v == value
		if is[i] {
			m.match = true
		} else {
			m.other = true
		}
	}

	var keep []int
	for i := range keys {
		if m := groups[keys[i]]; is[i] && m.match && m.other {
			continue
		}
		keep = append(keep, i)
	}
	removed := t.Len() - len(keep)
	if removed == 0 {
		return t, 0, nil
	}
	var b table.Builder
	for _, c := range t.Columns() {
		b.Add(c, slice.Select(t.Column(c), keep))
	}
	return b.Done(), removed, nil
}
