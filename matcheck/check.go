// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matcheck

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

// A ShapeError reports matrices whose dimensions do not allow the
// check to proceed.
type ShapeError struct {
	Matrix string
	Msg    string
}

func (e *ShapeError) Error() string {
	return "matrix " + e.Matrix + ": " + e.Msg
}

// Tolerance is the allowed difference between a result element c and
// its reference value r: |c-r| <= Abs + Rel*|r|.
type Tolerance struct {
	Abs, Rel float64
}

// DefaultTolerance matches single-precision kernels that reorder
// their accumulation.
var DefaultTolerance = Tolerance{Abs: 1e-5, Rel: 1e-5}

// A Verdict is the outcome of Check.
type Verdict struct {
	Correct bool

	// MaxAbsDiff is the largest |c-r| over all elements.
	MaxAbsDiff float64

	// Mismatches is the number of elements outside the tolerance.
	// Row and Col locate the first of them.
	Mismatches int
	Row, Col   int
}

func (v Verdict) String() string {
	if v.Correct {
		return "matrix multiplication is CORRECT"
	}
	return fmt.Sprintf("matrix multiplication is INCORRECT: %d mismatches, first at [%d,%d], maximum absolute difference %.6f",
		v.Mismatches, v.Row, v.Col, v.MaxAbsDiff)
}

// Reference returns the float32 product a×b.
func Reference(a, b *Matrix) (*Matrix, error) {
	if a.Cols != b.Rows {
		return nil, &ShapeError{
			Matrix: "B",
			Msg:    fmt.Sprintf("incompatible dimensions for A×B: A is %s, B is %s", a.Shape(), b.Shape()),
		}
	}
	r := &Matrix{Rows: a.Rows, Cols: b.Cols, Data: make([]float32, a.Rows*b.Cols)}
	if r.Rows > 0 && r.Cols > 0 {
		blas32.Gemm(blas.NoTrans, blas.NoTrans, 1, a.general(), b.general(), 0, r.general())
	}
	return r, nil
}

// Check verifies that c is the product a×b within tol.
func Check(a, b, c *Matrix, tol Tolerance) (Verdict, error) {
	for _, m := range []struct {
		name string
		m    *Matrix
	}{{"A", a}, {"B", b}, {"C", c}} {
		if m.m.Rows == 0 || m.m.Cols == 0 {
			return Verdict{}, &ShapeError{Matrix: m.name, Msg: "empty matrix"}
		}
	}
	r, err := Reference(a, b)
	if err != nil {
		return Verdict{}, err
	}
	if c.Rows != r.Rows || c.Cols != r.Cols {
		return Verdict{}, &ShapeError{
			Matrix: "C",
			Msg:    fmt.Sprintf("C is %s, want %s for A (%s) × B (%s)", c.Shape(), r.Shape(), a.Shape(), b.Shape()),
		}
	}

	v := Verdict{Correct: true}
	for i := 0; i < c.Rows; i++ {
		for j := 0; j < c.Cols; j++ {
			got, want := float64(c.At(i, j)), float64(r.At(i, j))
			d := math.Abs(got - want)
			if d > v.MaxAbsDiff || math.IsNaN(d) {
				v.MaxAbsDiff = d
			}
			if !(d <= tol.Abs+tol.Rel*math.Abs(want)) {
				if v.Mismatches == 0 {
					v.Row, v.Col = i, j
				}
				v.Mismatches++
				v.Correct = false
			}
		}
	}
	return v, nil
}
