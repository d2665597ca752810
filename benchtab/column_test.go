// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"math"
	"reflect"
	"testing"

	"github.com/aclements/go-gg/table"
)

func TestFloats(t *testing.T) {
	tab := table.TableFromStrings(
		[]string{"n"},
		[][]string{{"1,024"}, {"2.5"}, {"N/A"}, {""}},
		false)
	got := Floats(tab, "n")
	if got[0] != 1024 || got[1] != 2.5 || !math.IsNaN(got[2]) || !math.IsNaN(got[3]) {
		t.Errorf("Floats = %v", got)
	}
	if Floats(tab, "missing") != nil {
		t.Error("Floats of missing column is not nil")
	}
}

func TestWithDefaults(t *testing.T) {
	in := table.TableFromStrings(
		[]string{"size", "lmul"},
		[][]string{{"128", "1/2"}, {"256", ""}, {"512", "4"}},
		false)
	halve := func(s string) (float64, bool) {
		if s == "1/2" {
			return 0.5, true
		}
		if s == "4" {
			return 4, true
		}
		return 0, false
	}
	out := WithDefaults(in, []Default{
		{Column: "lmul", Value: 1, Parse: halve},
		{Column: "unroll", Value: 1},
	})

	if want := []string{"size", "lmul", "unroll"}; !reflect.DeepEqual(out.Columns(), want) {
		t.Errorf("columns %v, want %v", out.Columns(), want)
	}
	if got, want := out.Column("lmul"), []float64{0.5, 1, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("lmul %v, want %v", got, want)
	}
	if got, want := out.Column("unroll"), []float64{1, 1, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("unroll %v, want %v", got, want)
	}

	// The input is untouched.
	if want := []string{"size", "lmul"}; !reflect.DeepEqual(in.Columns(), want) {
		t.Errorf("input columns changed to %v", in.Columns())
	}
	if got, want := in.Column("lmul"), []string{"1/2", "", "4"}; !reflect.DeepEqual(got, want) {
		t.Errorf("input lmul changed to %v", got)
	}
}

func TestWithDefaultsNumeric(t *testing.T) {
	in := table.TableFromStrings(
		[]string{"unroll"},
		[][]string{{"2"}, {"bogus"}, {"8"}},
		false)
	out := WithDefaults(in, []Default{{Column: "unroll", Value: 1}})
	if got, want := out.Column("unroll"), []float64{2, 1, 8}; !reflect.DeepEqual(got, want) {
		t.Errorf("unroll %v, want %v", got, want)
	}
}
