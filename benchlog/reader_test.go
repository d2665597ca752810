// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func parseAll(t *testing.T, data string) ([]*Record, *Reader) {
	t.Helper()
	r := NewReader(strings.NewReader(data), "test")
	var out []*Record
	for r.Scan() {
		rec := r.Result().Clone()
		// Wipe position information for comparisons.
		rec.fileName, rec.line = "", 0
		out = append(out, rec)
	}
	if err := r.Err(); err != nil {
		t.Fatal("parsing failed: ", err)
	}
	return out, r
}

func rec(keyVals ...string) *Record {
	r := &Record{}
	for i := 0; i < len(keyVals); i += 2 {
		r.Fields = append(r.Fields, Field{keyVals[i], keyVals[i+1]})
	}
	return r
}

func compareRecords(t *testing.T, got, want []*Record) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("got %d records, want %d", len(got), len(want))
	}
	for i := 0; i < len(got) && i < len(want); i++ {
		if !reflect.DeepEqual(got[i], want[i]) {
			t.Errorf("[%d] got:\n%+v\nwant:\n%+v", i, got[i].Fields, want[i].Fields)
		}
	}
}

func TestReader(t *testing.T) {
	type testCase struct {
		name, input string
		want        []*Record
	}
	for _, test := range []testCase{
		{
			"basic",
			`> BENCHMARK_RECORD : version=baseline, size=128, time=1.5
     1,234,567      L1-dcache-loads
        12,345      L1-dcache-load-misses     #    1.00% of all L1-dcache accesses
`,
			[]*Record{
				rec("version", "baseline", "size", "128", "time", "1.5",
					"l1d-load", "1234567", "l1d-misses", "12345", "cachemiss-rate", "1.00"),
			},
		},
		{
			"window",
			// Counters after the second marker belong to it,
			// not the first.
			`> BENCHMARK_RECORD : version=a, size=1
> BENCHMARK_RECORD : version=b, size=2
  100 L1-dcache-loads
  10 L1-dcache-load-misses # 10.00%
`,
			[]*Record{
				rec("version", "a", "size", "1"),
				rec("version", "b", "size", "2",
					"l1d-load", "100", "l1d-misses", "10", "cachemiss-rate", "10.00"),
			},
		},
		{
			"first counter wins",
			`> BENCHMARK_RECORD : version=a, size=1
  100 L1-dcache-loads
  200 L1-dcache-loads
  7 L1-dcache-load-misses # 7.00%
  9 L1-dcache-load-misses # 4.50%
`,
			[]*Record{
				rec("version", "a", "size", "1",
					"l1d-load", "100", "l1d-misses", "7", "cachemiss-rate", "7.00"),
			},
		},
		{
			"derived rate",
			`> BENCHMARK_RECORD : version=a, size=1
  400 L1-dcache-loads
  100 L1-dcache-load-misses
`,
			[]*Record{
				rec("version", "a", "size", "1",
					"l1d-load", "400", "l1d-misses", "100", "cachemiss-rate", "25.00"),
			},
		},
		{
			"zero loads",
			`> BENCHMARK_RECORD : version=a, size=1
  0 L1-dcache-loads
  0 L1-dcache-load-misses
`,
			[]*Record{
				rec("version", "a", "size", "1", "l1d-load", "0", "l1d-misses", "0"),
			},
		},
		{
			"missing misses",
			`> BENCHMARK_RECORD : version=a, size=1, lmul=2
  400 L1-dcache-loads
`,
			[]*Record{
				rec("version", "a", "size", "1", "lmul", "2", "l1d-load", "400"),
			},
		},
		{
			"empty marker dropped",
			`> BENCHMARK_RECORD : nothing here
> BENCHMARK_RECORD : version=a
`,
			[]*Record{
				// A positional marker with one field names
				// the version.
				rec("version", "nothing here"),
				rec("version", "a"),
			},
		},
		{
			"no fields",
			`> BENCHMARK_RECORD : ,
> BENCHMARK_RECORD : version=a
`,
			[]*Record{
				rec("version", "a"),
			},
		},
		{
			"legacy positional",
			`BENCHMARK_RECORD: tiling_v2, 0.25, 256, 8
  1,000 L1-dcache-loads
  50 L1-dcache-load-misses
`,
			[]*Record{
				rec("version", "tiling_v2", "time", "0.25", "size", "256", "kernel", "8",
					"l1d-load", "1000", "l1d-misses", "50", "cachemiss-rate", "5.00"),
			},
		},
		{
			"duplicate key",
			`> BENCHMARK_RECORD : version=a, size=1, size=2, junk
`,
			[]*Record{
				rec("version", "a", "size", "2"),
			},
		},
		{
			"no markers",
			`  1,000 L1-dcache-loads
just text
`,
			nil,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, _ := parseAll(t, test.input)
			compareRecords(t, got, test.want)
		})
	}
}

func TestReaderMarkers(t *testing.T) {
	_, r := parseAll(t, "> BENCHMARK_RECORD : ,\n> BENCHMARK_RECORD : size=1\n")
	if got := r.Markers(); got != 2 {
		t.Errorf("Markers() = %d, want 2", got)
	}
}

func TestReaderPos(t *testing.T) {
	r := NewReader(strings.NewReader("header\n> BENCHMARK_RECORD : size=1\nx\n> BENCHMARK_RECORD : size=2\n"), "log.txt")
	var lines []int
	for r.Scan() {
		name, line := r.Result().Pos()
		if name != "log.txt" {
			t.Errorf("file name %q, want log.txt", name)
		}
		lines = append(lines, line)
	}
	if want := []int{2, 4}; !reflect.DeepEqual(lines, want) {
		t.Errorf("lines %v, want %v", lines, want)
	}
}

func TestReaderWarnings(t *testing.T) {
	_, r := parseAll(t, "> BENCHMARK_RECORD : size=1\n 99999999999999999999 L1-dcache-loads\n")
	if len(r.Warnings()) != 1 {
		t.Fatalf("got warnings %v, want 1", r.Warnings())
	}
}

func TestReset(t *testing.T) {
	r := NewReader(strings.NewReader("> BENCHMARK_RECORD : size=1\n"), "a")
	for r.Scan() {
	}
	r.Reset(strings.NewReader("> BENCHMARK_RECORD : size=2\n"), "b", "label", "x")
	if !r.Scan() {
		t.Fatal("no record after Reset")
	}
	want := rec("label", "x", "size", "2")
	got := r.Result().Clone()
	got.fileName, got.line = "", 0
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got.Fields, want.Fields)
	}
	if r.Markers() != 1 {
		t.Errorf("Markers() = %d after Reset, want 1", r.Markers())
	}
}

func TestReadAllNoData(t *testing.T) {
	for _, input := range []string{
		"",
		"no markers at all\n",
		"> BENCHMARK_RECORD : ,\n",
	} {
		_, err := ReadAll(strings.NewReader(input), "test")
		if !errors.Is(err, ErrNoData) {
			t.Errorf("ReadAll(%q) error = %v, want ErrNoData", input, err)
		}
	}
}

func TestRecordAccessors(t *testing.T) {
	r := rec("name", "old", "size", "1,024", "time", "0.5")
	if got := r.Version(); got != "old" {
		t.Errorf("Version() = %q, want old", got)
	}
	if v, ok := r.Int("size"); !ok || v != 1024 {
		t.Errorf("Int(size) = %v, %v", v, ok)
	}
	if v, ok := r.Float("time"); !ok || v != 0.5 {
		t.Errorf("Float(time) = %v, %v", v, ok)
	}
	if _, ok := r.Float("missing"); ok {
		t.Error("Float(missing) reported present")
	}
	r.Set("version", "new")
	if got := r.Version(); got != "new" {
		t.Errorf("Version() = %q after Set, want new", got)
	}
}
