// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchlog extracts benchmark runs from the free-form text
// logs produced by the matrix-multiply benchmark harness.
//
// A run starts with a marker line of the form
//
//	> BENCHMARK_RECORD : version=tiling, size=128, kernel=4, lmul=1/2, time=0.031
//
// and is followed by arbitrary output, usually including a perf stat
// report. The first "L1-dcache-loads" and "L1-dcache-load-misses"
// counters printed before the next marker belong to that run:
//
//	1,234,567      L1-dcache-loads
//	   12,345      L1-dcache-load-misses     #    1.00% of all L1-dcache accesses
//
// Older logs use a positional marker, "BENCHMARK_RECORD : name, time,
// size[, kernel[, lmul]]", which is accepted as well.
package benchlog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/rvv-matmul/benchtools/benchunit"
)

// ErrNoData is returned (wrapped) by ReadAll when a log contains no
// usable benchmark record.
var ErrNoData = errors.New("no data")

// A SyntaxError reports a malformed counter in a benchmark log. It is
// not fatal: the counter is skipped.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

var (
	markerRE = regexp.MustCompile(`BENCHMARK_RECORD\s*:(.*)$`)
	loadsRE  = regexp.MustCompile(`(\d+(?:,\d+)*)\s+L1-dcache-loads`)
	missesRE = regexp.MustCompile(`(\d+(?:,\d+)*)\s+L1-dcache-load-misses\S*(?:\s+#\s+([\d.]+)%)?`)
)

// legacyKeys names the fields of a positional marker.
var legacyKeys = []string{KeyVersion, KeyTime, KeySize, KeyKernel, KeyLMUL}

// A Reader reads benchmark records from a log.
//
// Its API is modeled on bufio.Scanner. Records are produced lazily
// in marker order; a Reader makes a single pass over its input and
// can only be restarted by calling Reset.
//
// To construct a new Reader, either call NewReader, or call Reset on
// a zeroed Reader.
type Reader struct {
	s   *bufio.Scanner
	err error // current I/O error

	fileName   string
	line       int
	markers    int
	initConfig []Field

	// pending is the run whose counter window is being read.
	pending *block
	result  *Record

	warnings []error
}

// block accumulates the counters found in one marker's window.
type block struct {
	rec                   *Record
	loads, misses         int64
	haveLoads, haveMisses bool
	rate                  string
}

// NewReader constructs a reader to parse benchmark records from r.
// fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input.
//
// initConfig is an alternating sequence of keys and values that is
// added to every record read from this input.
func (r *Reader) Reset(ior io.Reader, fileName string, initConfig ...string) {
	r.s = bufio.NewScanner(ior)
	r.s.Buffer(nil, 1<<20)
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.err = nil
	r.fileName = fileName
	r.line = 0
	r.markers = 0
	r.pending = nil
	r.result = nil
	r.warnings = nil

	if len(initConfig)%2 != 0 {
		panic("len(initConfig) must be a multiple of 2")
	}
	r.initConfig = r.initConfig[:0]
	for i := 0; i < len(initConfig); i += 2 {
		r.initConfig = append(r.initConfig, Field{initConfig[i], initConfig[i+1]})
	}
}

// Scan advances the reader to the next record and reports whether a
// record was read. The caller should use the Result method to get the
// record. If Scan reaches EOF or an I/O error occurs, it returns
// false, in which case the caller should use the Err method to check
// for errors.
func (r *Reader) Scan() bool {
	if r.err != nil || r.s == nil {
		return false
	}

	for r.s.Scan() {
		r.line++
		line := r.s.Bytes()
		if m := markerRE.FindSubmatch(line); m != nil {
			prev := r.pending
			r.markers++
			r.pending = r.newBlock(string(m[1]))
			if rec := prev.finish(); rec != nil {
				r.result = rec
				return true
			}
			continue
		}
		if r.pending != nil {
			r.scanCounters(line)
		}
	}

	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line, err)
		r.pending = nil
		return false
	}

	// EOF closes the window of the last marker.
	prev := r.pending
	r.pending = nil
	if rec := prev.finish(); rec != nil {
		r.result = rec
		return true
	}
	return false
}

// Result returns the record that was just read by Scan. Each record
// is freshly allocated, so callers may retain it.
func (r *Reader) Result() *Record {
	return r.result
}

// Err returns the first non-EOF I/O error that was encountered by the
// Reader.
func (r *Reader) Err() error {
	return r.err
}

// Markers returns the number of BENCHMARK_RECORD markers seen so far,
// including markers whose record was dropped for carrying no data.
func (r *Reader) Markers() int {
	return r.markers
}

// Warnings returns the non-fatal problems found so far, such as
// counters that could not be parsed.
func (r *Reader) Warnings() []error {
	return r.warnings
}

func (r *Reader) newBlock(params string) *block {
	rec := &Record{fileName: r.fileName, line: r.line}
	for _, f := range r.initConfig {
		rec.Set(f.Key, f.Value)
	}
	for _, f := range parseParams(params) {
		rec.Set(f.Key, f.Value)
	}
	return &block{rec: rec}
}

// parseParams splits the comma-separated parameters of a marker.
func parseParams(params string) []Field {
	parts := strings.Split(params, ",")
	positional := true
	for _, p := range parts {
		if strings.Contains(p, "=") {
			positional = false
			break
		}
	}

	var fields []Field
	if positional {
		for i, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" || i >= len(legacyKeys) {
				continue
			}
			fields = append(fields, Field{legacyKeys[i], p})
		}
		return fields
	}
	for _, p := range parts {
		key, val, ok := strings.Cut(p, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		fields = append(fields, Field{key, strings.TrimSpace(val)})
	}
	return fields
}

func (r *Reader) scanCounters(line []byte) {
	b := r.pending
	if !b.haveLoads {
		if m := loadsRE.FindSubmatch(line); m != nil {
			n, err := benchunit.ParseCount(string(m[1]))
			if err != nil {
				r.warn("bad L1-dcache-loads count %q: %v", m[1], err)
			} else {
				b.loads, b.haveLoads = n, true
			}
		}
	}
	if !b.haveMisses {
		if m := missesRE.FindSubmatch(line); m != nil {
			n, err := benchunit.ParseCount(string(m[1]))
			if err != nil {
				r.warn("bad L1-dcache-load-misses count %q: %v", m[1], err)
			} else {
				b.misses, b.haveMisses = n, true
				b.rate = string(m[2])
			}
		}
	}
}

func (r *Reader) warn(format string, args ...interface{}) {
	r.warnings = append(r.warnings, &SyntaxError{r.fileName, r.line, fmt.Sprintf(format, args...)})
}

// finish returns the completed record, or nil if the block carries no
// data at all.
func (b *block) finish() *Record {
	if b == nil {
		return nil
	}
	b.rec.setCounters(b.loads, b.misses, b.haveLoads, b.haveMisses, b.rate)
	for _, f := range b.rec.Fields {
		if !strings.HasPrefix(f.Key, ".") {
			return b.rec
		}
	}
	return nil
}

// ReadAll reads every record from r. If r contains no marker, or no
// marker carries any data, ReadAll returns an error wrapping
// ErrNoData.
func ReadAll(r io.Reader, fileName string) ([]*Record, error) {
	rd := NewReader(r, fileName)
	var recs []*Record
	for rd.Scan() {
		recs = append(recs, rd.Result())
	}
	if err := rd.Err(); err != nil {
		return nil, err
	}
	if rd.Markers() == 0 {
		return nil, fmt.Errorf("%s: %w: no BENCHMARK_RECORD line found", rd.fileName, ErrNoData)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%s: %w: no valid record extracted", rd.fileName, ErrNoData)
	}
	return recs, nil
}
