// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"bytes"
	"reflect"
	"testing"
)

func TestColumns(t *testing.T) {
	recs := []*Record{
		rec("version", "a", "size", "1", "lmul", "2", "time", "0.5"),
		rec("name", "b", "size", "2", "cores", "4", "unroll", "8"),
	}
	w := NewTableWriter(nil)
	want := []string{"version", "size", "lmul", "unroll", "l1d-load", "l1d-misses", "cachemiss-rate", "time"}
	if got := w.Columns(recs); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	w.Extra = true
	w.TimeKey = "exec"
	want = []string{"version", "size", "lmul", "unroll", "time", "cores", "l1d-load", "l1d-misses", "cachemiss-rate", "exec"}
	if got := w.Columns(recs); !reflect.DeepEqual(got, want) {
		t.Errorf("with Extra: got %v, want %v", got, want)
	}
}

func TestWriteAll(t *testing.T) {
	recs, err := ReadAll(bytes.NewReader([]byte(`> BENCHMARK_RECORD : version=baseline, size=64, time=0.5
  1,000 L1-dcache-loads
  100 L1-dcache-load-misses # 10.00%
> BENCHMARK_RECORD : version=tiling, size=64, kernel=4, time=0.25
  800 L1-dcache-loads
`)), "test")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := NewTableWriter(&buf).WriteAll(recs); err != nil {
		t.Fatal(err)
	}
	want := `version,size,kernel,l1d-load,l1d-misses,cachemiss-rate,time
baseline,64,,1000,100,10.00,0.5
tiling,64,4,800,,,0.25
`
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteAllLMUL(t *testing.T) {
	recs := []*Record{
		rec("version", "v", "size", "8", "lmul", "-2"),
		rec("version", "v", "size", "8", "lmul", "0.25"),
		rec("version", "v", "size", "8", "lmul", "4"),
		rec("version", "v", "size", "8", "lmul", ""),
		rec("version", "v", "size", "8"),
	}
	var buf bytes.Buffer
	if err := NewTableWriter(&buf).WriteAll(recs); err != nil {
		t.Fatal(err)
	}
	want := `version,size,lmul,l1d-load,l1d-misses,cachemiss-rate,time
v,8,1/2,,,,
v,8,1/4,,,,
v,8,4,,,,
v,8,,,,,
v,8,,,,,
`
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}
