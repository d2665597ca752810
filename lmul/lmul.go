// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lmul converts the vector length multiplier (LMUL) of a
// benchmark configuration between its textual and numeric forms.
//
// LMUL is written either as a whole number ("1", "2", "4", "8") or as
// a fraction ("1/2", "1/4", "1/8"). Internally it is a float64
// multiplier. Parse and Format round-trip: formatting a parsed
// canonical string yields the same string, and parsing a formatted
// multiplier yields the same multiplier.
package lmul

import (
	"math"
	"strconv"
	"strings"
)

// Default is the multiplier assumed when LMUL is missing or cannot
// be parsed.
const Default = 1.0

// tolerance is the absolute tolerance used to recognize canonical
// fractional multipliers.
const tolerance = 1e-9

var whole = []float64{1, 2, 4, 8}

var fractions = []struct {
	v float64
	s string
}{
	{0.5, "1/2"},
	{0.25, "1/4"},
	{0.125, "1/8"},
}

// Parse returns the multiplier represented by s.
//
// s may be empty, an integer, a float, or a fraction "num/den". Older
// logs encode fractional LMUL as a negative integer, so "-2" is 1/2
// and "-n" is 1/n. Anything else, including a zero denominator,
// yields Default.
func Parse(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return Default
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err1 := strconv.ParseFloat(strings.TrimSpace(num), 64)
		d, err2 := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err1 != nil || err2 != nil || d == 0 {
			return Default
		}
		return valid(n / d)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Default
	}
	if v < 0 && v == math.Trunc(v) {
		return 1 / -v
	}
	return valid(v)
}

func valid(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Default
	}
	return v
}

// Format renders a multiplier in canonical form: a plain integer for
// the whole multipliers, "1/2", "1/4" or "1/8" for the fractional
// ones, and the shortest decimal representation otherwise.
func Format(v float64) string {
	for _, w := range whole {
		if math.Abs(v-w) <= tolerance {
			return strconv.Itoa(int(w))
		}
	}
	for _, f := range fractions {
		if math.Abs(v-f.v) <= tolerance {
			return f.s
		}
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Normalize returns the canonical form of s. Missing or unparseable
// values normalize to the default multiplier.
func Normalize(s string) string {
	return Format(Parse(s))
}
