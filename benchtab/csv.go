// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchtab reads and writes the CSV result tables produced by
// benchtables and consumed by speedup and the plotting tools.
//
// Tables are held as immutable go-gg tables. Read produces one
// []string column per CSV column; WithDefaults returns a new table
// with numeric configuration columns filled in.
package benchtab

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
)

// A MissingFileError reports an input table that does not exist.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return "file not found: " + e.Path
}

// Read reads a CSV table with a header row from r. Header names and
// cells have surrounding whitespace trimmed. Rows shorter than the
// header are padded with empty cells. name is used in error messages.
func Read(r io.Reader, name string) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%s: missing header row", name)
	}

	header := make([]string, len(recs[0]))
	seen := make(map[string]bool)
	for i, h := range recs[0] {
		h = strings.TrimSpace(h)
		if seen[h] {
			return nil, fmt.Errorf("%s: duplicate column %q", name, h)
		}
		seen[h] = true
		header[i] = h
	}

	rows := recs[1:]
	for i, row := range rows {
		if len(row) > len(header) {
			return nil, fmt.Errorf("%s:%d: %d fields, header has %d", name, i+2, len(row), len(header))
		}
		for j := range row {
			row[j] = strings.TrimSpace(row[j])
		}
		for len(row) < len(header) {
			row = append(row, "")
		}
		rows[i] = row
	}
	return table.TableFromStrings(header, rows, false), nil
}

// Load reads the CSV table stored at path. If path does not exist,
// Load returns a *MissingFileError.
func Load(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingFileError{path}
		}
		return nil, err
	}
	defer f.Close()
	return Read(f, path)
}

// A Formatter renders the values of a numeric column.
type Formatter func(v float64) string

// Write writes columns cols of t to w as CSV, preceded by a header
// row. Numeric columns are formatted with the Formatter registered
// for the column, if any, or in their shortest form. NaN values are
// written as empty cells.
func Write(w io.Writer, t *table.Table, cols []string, fmts map[string]Formatter) error {
	data := make([][]string, len(cols))
	for i, col := range cols {
		if vs, ok := t.Column(col).([]float64); ok {
			f := fmts[col]
			if f == nil {
				f = strof
			}
			cells := make([]string, len(vs))
			for j, v := range vs {
				if !math.IsNaN(v) {
					cells[j] = f(v)
				}
			}
			data[i] = cells
			continue
		}
		data[i] = Strings(t, col)
		if data[i] == nil {
			return fmt.Errorf("unknown column %q", col)
		}
	}

	csvw := csv.NewWriter(w)
	csvw.Write(cols)
	row := make([]string, len(cols))
	for j := 0; j < t.Len(); j++ {
		for i := range cols {
			row[i] = data[i][j]
		}
		csvw.Write(row)
	}
	csvw.Flush()
	return csvw.Error()
}

// WriteFile is like Write, but writes to the named file, creating its
// parent directories first.
func WriteFile(path string, t *table.Table, cols []string, fmts map[string]Formatter) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o777); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, t, cols, fmts); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

func strof(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
