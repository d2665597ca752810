// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matcheck

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/blas/blas32"
)

// A Matrix is a dense row-major matrix of float32 values.
type Matrix struct {
	Rows, Cols int
	Data       []float32
}

// NewMatrix returns a Matrix built from rows, which must all have the
// same length.
func NewMatrix(name string, rows [][]float32) (*Matrix, error) {
	m := &Matrix{Rows: len(rows)}
	if len(rows) > 0 {
		m.Cols = len(rows[0])
	}
	m.Data = make([]float32, 0, m.Rows*m.Cols)
	for i, row := range rows {
		if len(row) != m.Cols {
			return nil, &ShapeError{
				Matrix: name,
				Msg:    fmt.Sprintf("row %d has %d values, row 1 has %d", i+1, len(row), m.Cols),
			}
		}
		m.Data = append(m.Data, row...)
	}
	return m, nil
}

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) float32 {
	return m.Data[i*m.Cols+j]
}

// Shape returns the dimensions of m as "RxC".
func (m *Matrix) Shape() string {
	return fmt.Sprintf("%dx%d", m.Rows, m.Cols)
}

func (m *Matrix) general() blas32.General {
	stride := m.Cols
	if stride < 1 {
		stride = 1
	}
	return blas32.General{Rows: m.Rows, Cols: m.Cols, Stride: stride, Data: m.Data}
}

// Tile formats the top-left maxRows by maxCols block of m, one line
// per row with tab-separated values. A trailing "..." column marks
// truncated columns, and a final "..." row marks truncated rows.
func Tile(m *Matrix, maxRows, maxCols int) []string {
	rows, cols := m.Rows, m.Cols
	moreRows, moreCols := rows > maxRows, cols > maxCols
	if moreRows {
		rows = maxRows
	}
	if moreCols {
		cols = maxCols
	}

	var lines []string
	vals := make([]string, 0, cols+1)
	for i := 0; i < rows; i++ {
		vals = vals[:0]
		for j := 0; j < cols; j++ {
			vals = append(vals, strconv.FormatFloat(float64(m.At(i, j)), 'f', 1, 32))
		}
		if moreCols {
			vals = append(vals, "...")
		}
		lines = append(lines, strings.Join(vals, "\t"))
	}
	if moreRows {
		if moreCols {
			lines = append(lines, "...\t...")
		} else {
			lines = append(lines, "...")
		}
	}
	return lines
}
