// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"strconv"

	"github.com/rvv-matmul/benchtools/benchunit"
)

// Well-known record keys.
const (
	KeyVersion  = "version"
	KeyName     = "name"
	KeySize     = "size"
	KeyKernel   = "kernel"
	KeyLMUL     = "lmul"
	KeyUnroll   = "unroll"
	KeyTime     = "time"
	KeyLoads    = "l1d-load"
	KeyMisses   = "l1d-misses"
	KeyMissRate = "cachemiss-rate"

	// KeyFile is added by Files to every record. Because it
	// starts with ".", it cannot collide with a key written in a
	// log.
	KeyFile = ".file"
)

// A Field is a single key=value pair of a Record.
type Field struct {
	Key   string
	Value string
}

// A Record is one benchmark run: the key=value pairs of a
// BENCHMARK_RECORD marker followed by the performance counters found
// before the next marker.
type Record struct {
	// Fields lists the fields of the record in the order they
	// were found. Keys are unique.
	Fields []Field

	fileName string
	line     int
}

// Pos returns the file name and line number of the record's marker.
func (r *Record) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// Get returns the value of key and whether it is present.
func (r *Record) Get(key string) (string, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Has reports whether key is present in r.
func (r *Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Set sets key to val, replacing an existing value in place or
// appending a new field.
func (r *Record) Set(key, val string) {
	for i := range r.Fields {
		if r.Fields[i].Key == key {
			r.Fields[i].Value = val
			return
		}
	}
	r.Fields = append(r.Fields, Field{key, val})
}

// Float returns the value of key parsed as a float64. Thousands
// separators are accepted.
func (r *Record) Float(key string) (float64, bool) {
	s, ok := r.Get(key)
	if !ok {
		return 0, false
	}
	v, err := benchunit.ParseNumber(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Int returns the value of key parsed as an event count.
func (r *Record) Int(key string) (int64, bool) {
	s, ok := r.Get(key)
	if !ok {
		return 0, false
	}
	v, err := benchunit.ParseCount(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Version returns the kernel variant of r. Older logs call it "name".
func (r *Record) Version() string {
	if v, ok := r.Get(KeyVersion); ok {
		return v
	}
	v, _ := r.Get(KeyName)
	return v
}

// Clone returns a copy of r that shares no state with r.
func (r *Record) Clone() *Record {
	r2 := *r
	r2.Fields = append([]Field(nil), r.Fields...)
	return &r2
}

// setCounters records the L1 counters found in a record's window and
// derives the miss rate when the log did not print one.
func (r *Record) setCounters(loads, misses int64, haveLoads, haveMisses bool, rate string) {
	if haveLoads {
		r.Set(KeyLoads, strconv.FormatInt(loads, 10))
	}
	if haveMisses {
		r.Set(KeyMisses, strconv.FormatInt(misses, 10))
	}
	switch {
	case rate != "":
		r.Set(KeyMissRate, rate)
	case haveLoads && haveMisses && loads > 0:
		r.Set(KeyMissRate, strconv.FormatFloat(float64(misses)/float64(loads)*100, 'f', 2, 64))
	}
}
