// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lmul

import "testing"

func TestParse(t *testing.T) {
	for _, test := range []struct {
		in   string
		want float64
	}{
		{"", 1},
		{"  ", 1},
		{"1", 1},
		{"4", 4},
		{"8.0", 8},
		{"1/2", 0.5},
		{" 1 / 4 ", 0.25},
		{"1/8", 0.125},
		{"0.5", 0.5},
		{"-2", 0.5},
		{"-4", 0.25},
		{"-8", 0.125},
		{"bogus", 1},
		{"1/0", 1},
		{"x/2", 1},
		{"NaN", 1},
		{"Inf", 1},
		{"3", 3},
	} {
		if got := Parse(test.in); got != test.want {
			t.Errorf("Parse(%q) = %v, want %v", test.in, got, test.want)
		}
	}
}

func TestFormat(t *testing.T) {
	for _, test := range []struct {
		in   float64
		want string
	}{
		{1, "1"},
		{2, "2"},
		{4, "4"},
		{8, "8"},
		{0.5, "1/2"},
		{0.25, "1/4"},
		{0.125, "1/8"},
		{0.5 + 1e-12, "1/2"},
		{3, "3"},
		{16, "16"},
		{0.3, "0.3"},
		{1.5, "1.5"},
		{0, "0"},
	} {
		if got := Format(test.in); got != test.want {
			t.Errorf("Format(%v) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, s := range []string{"1", "2", "4", "8", "1/2", "1/4", "1/8", "3", "1.5"} {
		v := Parse(s)
		f := Format(v)
		if f != s {
			t.Errorf("Format(Parse(%q)) = %q, want %q", s, f, s)
		}
		if v2 := Parse(f); v2 != v {
			t.Errorf("Parse(Format(%v)) = %v, want %v", v, v2, v)
		}
	}

	// Non-canonical spellings converge after one pass.
	for _, s := range []string{"", "bogus", "2.0", "0.5", "-2", "2/4"} {
		once := Normalize(s)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize(%q) = %q, but Normalize(%q) = %q", s, once, once, twice)
		}
	}
}
