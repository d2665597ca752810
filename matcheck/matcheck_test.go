// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matcheck

import (
	"bytes"
	"errors"
	"math"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/rvv-matmul/benchtools/internal/diff"
)

func mat(t *testing.T, rows ...[]float32) *Matrix {
	t.Helper()
	m, err := NewMatrix("test", rows)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestCheck(t *testing.T) {
	a := mat(t, []float32{1, 2, 3}, []float32{4, 5, 6})
	b := mat(t, []float32{7, 8}, []float32{9, 10}, []float32{11, 12})
	c := mat(t, []float32{58, 64}, []float32{139, 154})

	v, err := Check(a, b, c, DefaultTolerance)
	if err != nil {
		t.Fatal(err)
	}
	if !v.Correct || v.MaxAbsDiff != 0 {
		t.Errorf("got %+v, want correct", v)
	}

	c.Data[3] += 1
	v, err = Check(a, b, c, DefaultTolerance)
	if err != nil {
		t.Fatal(err)
	}
	if v.Correct {
		t.Fatal("perturbed result reported correct")
	}
	if math.Abs(v.MaxAbsDiff-1) > 1e-6 {
		t.Errorf("MaxAbsDiff = %v, want 1", v.MaxAbsDiff)
	}
	if v.Mismatches != 1 || v.Row != 1 || v.Col != 1 {
		t.Errorf("mismatch at %d mismatches [%d,%d], want 1 at [1,1]", v.Mismatches, v.Row, v.Col)
	}
}

func TestCheckTolerance(t *testing.T) {
	a := mat(t, []float32{1000})
	b := mat(t, []float32{1000})
	// 1e6 * 1e-5 relative tolerance admits a difference of 10.
	c := mat(t, []float32{1e6 + 8})
	v, err := Check(a, b, c, DefaultTolerance)
	if err != nil {
		t.Fatal(err)
	}
	if !v.Correct {
		t.Errorf("got %+v, want correct within relative tolerance", v)
	}
}

func TestCheckShape(t *testing.T) {
	a := mat(t, []float32{1, 2, 3}, []float32{4, 5, 6})
	b := mat(t, []float32{1, 2}, []float32{3, 4})
	c2x2 := mat(t, []float32{1, 2}, []float32{3, 4})
	b3x2 := mat(t, []float32{1, 2}, []float32{3, 4}, []float32{5, 6})
	c3x3 := mat(t, []float32{1, 2, 3}, []float32{1, 2, 3}, []float32{1, 2, 3})

	for _, test := range []struct {
		a, b, c *Matrix
		matrix  string
		msg     string
	}{
		{a, b, c2x2, "B", "incompatible dimensions for A×B: A is 2x3, B is 2x2"},
		{a, b3x2, c3x3, "C", "C is 3x3, want 2x2 for A (2x3) × B (3x2)"},
		{&Matrix{}, b3x2, c2x2, "A", "empty matrix"},
	} {
		_, err := Check(test.a, test.b, test.c, DefaultTolerance)
		var se *ShapeError
		if !errors.As(err, &se) {
			t.Errorf("got error %v, want ShapeError", err)
			continue
		}
		if se.Matrix != test.matrix || se.Msg != test.msg {
			t.Errorf("got %+v, want matrix %s: %s", se, test.matrix, test.msg)
		}
	}
}

func TestNewMatrixRagged(t *testing.T) {
	_, err := NewMatrix("A", [][]float32{{1, 2}, {3}})
	var se *ShapeError
	if !errors.As(err, &se) || se.Matrix != "A" {
		t.Fatalf("got error %v, want ShapeError for A", err)
	}
	if want := "matrix A: row 2 has 1 values, row 1 has 2"; err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestTile(t *testing.T) {
	big := &Matrix{Rows: 12, Cols: 11, Data: make([]float32, 12*11)}
	for i := range big.Data {
		big.Data[i] = float32(i) / 4
	}
	lines := Tile(big, 10, 10)
	if len(lines) != 11 {
		t.Fatalf("got %d lines, want 11", len(lines))
	}
	if want := "0.0\t0.2\t0.5\t0.8\t1.0\t1.2\t1.5\t1.8\t2.0\t2.2\t..."; lines[0] != want {
		t.Errorf("first row %q, want %q", lines[0], want)
	}
	if lines[10] != "...\t..." {
		t.Errorf("last row %q, want ...\\t...", lines[10])
	}

	tall := &Matrix{Rows: 11, Cols: 1, Data: make([]float32, 11)}
	lines = Tile(tall, 10, 10)
	if len(lines) != 11 || lines[0] != "0.0" || lines[10] != "..." {
		t.Errorf("tall tile %q", lines)
	}

	small := mat(t, []float32{1.25, -2})
	if got, want := Tile(small, 10, 10), []string{"1.2\t-2.0"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParse(t *testing.T) {
	f, err := os.Open("testdata/small.log")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	l, err := Read(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(l.Sections))
	}
	a, b, c, err := l.Matrices()
	if err != nil {
		t.Fatal(err)
	}
	if a.Shape() != "2x3" || b.Shape() != "3x2" || c.Shape() != "2x2" {
		t.Errorf("shapes %s %s %s, want 2x3 3x2 2x2", a.Shape(), b.Shape(), c.Shape())
	}
	v, err := Check(a, b, c, DefaultTolerance)
	if err != nil {
		t.Fatal(err)
	}
	if !v.Correct {
		t.Errorf("got %v, want correct", v)
	}
}

func TestParseNegative(t *testing.T) {
	l := Parse(strings.Split("A> Print Matrix\n-1 2\n---\n-3.5 -4\nEMU done", "\n"))
	want := [][]float32{{-1, 2}, {-3.5, -4}}
	if s := l.Section("A"); s == nil || !reflect.DeepEqual(s.Rows, want) {
		t.Errorf("got %+v, want rows %v", s, want)
	}
}

func TestMissingMatrix(t *testing.T) {
	l := Parse([]string{"A> Print Matrix", "1", "B> Print Matrix", "1"})
	if _, _, _, err := l.Matrices(); err == nil || err.Error() != "matrix C not found" {
		t.Errorf("got error %v, want matrix C not found", err)
	}
}

func TestRender(t *testing.T) {
	data, err := os.ReadFile("testdata/small.log")
	if err != nil {
		t.Fatal(err)
	}
	l, err := Read(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	var got bytes.Buffer
	if err := l.Render(&got, 10, 10); err != nil {
		t.Fatal(err)
	}
	diff.Golden(t, "testdata/small.golden", got.Bytes())
}
