// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/rvv-matmul/benchtools/lmul"
)

// optionalKeys are the configuration parameters that get a column
// only when some record carries them.
var optionalKeys = []string{KeyKernel, KeyLMUL, KeyUnroll}

// A TableWriter writes benchmark records as a CSV table with one row
// per record.
type TableWriter struct {
	// TimeKey is the record key holding the run's execution
	// metric, written as the last column. If empty, "time" is
	// used.
	TimeKey string

	// Extra appends any other marker keys, in first-seen order,
	// after the configuration columns.
	Extra bool

	w *csv.Writer
}

// NewTableWriter returns a writer that writes a CSV table to w.
func NewTableWriter(w io.Writer) *TableWriter {
	return &TableWriter{w: csv.NewWriter(w)}
}

func (w *TableWriter) timeKey() string {
	if w.TimeKey == "" {
		return KeyTime
	}
	return w.TimeKey
}

// Columns returns the header of the table for recs:
//
//	version, size, [kernel, lmul, unroll,] [extra...,] l1d-load, l1d-misses, cachemiss-rate, time
func (w *TableWriter) Columns(recs []*Record) []string {
	cols := []string{KeyVersion, KeySize}
	for _, key := range optionalKeys {
		for _, rec := range recs {
			if rec.Has(key) {
				cols = append(cols, key)
				break
			}
		}
	}
	tail := []string{KeyLoads, KeyMisses, KeyMissRate, w.timeKey()}
	if w.Extra {
		seen := make(map[string]bool)
		for _, c := range append(append([]string{KeyName}, cols...), tail...) {
			seen[c] = true
		}
		for _, rec := range recs {
			for _, f := range rec.Fields {
				if seen[f.Key] || strings.HasPrefix(f.Key, ".") {
					continue
				}
				seen[f.Key] = true
				cols = append(cols, f.Key)
			}
		}
	}
	return append(cols, tail...)
}

// WriteAll writes the header and one row per record, then flushes.
// Missing values are written as empty cells. LMUL values are written
// in canonical form, so "-2" and "0.5" both become "1/2".
func (w *TableWriter) WriteAll(recs []*Record) error {
	cols := w.Columns(recs)
	if err := w.w.Write(cols); err != nil {
		return err
	}
	row := make([]string, len(cols))
	for _, rec := range recs {
		for i, col := range cols {
			if col == KeyVersion {
				row[i] = rec.Version()
				continue
			}
			row[i], _ = rec.Get(col)
			if col == KeyLMUL && strings.TrimSpace(row[i]) != "" {
				row[i] = lmul.Normalize(row[i])
			}
		}
		if err := w.w.Write(row); err != nil {
			return err
		}
	}
	w.w.Flush()
	return w.w.Error()
}
