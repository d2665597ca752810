// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/rvv-matmul/benchtools/benchlog"
	"github.com/rvv-matmul/benchtools/benchtab"
)

func TestLabel(t *testing.T) {
	for _, test := range []struct {
		run          Run
		label, confg string
		simple       bool
	}{
		{Run{Version: "baseline", Kernel: NoKernel, LMUL: "1", Unroll: "1"}, "baseline", "k=N/A LMUL=1", true},
		{Run{Version: "v", Kernel: "0", LMUL: "1", Unroll: "1"}, "v", "k=0 LMUL=1", true},
		{Run{Version: "tiling", Kernel: "4", LMUL: "1/2", Unroll: "1"}, "tiling (k=4, LMUL=1/2)", "k=4 LMUL=1/2", false},
		{Run{Version: "unroll", Kernel: "8", LMUL: "2", Unroll: "4"}, "unroll (k=8, LMUL=2, UNROLL=4)", "k=8 LMUL=2 UNROLL=4", false},
		{Run{Version: "u", Kernel: NoKernel, LMUL: "1", Unroll: "2"}, "u (UNROLL=2)", "k=N/A LMUL=1 UNROLL=2", false},
	} {
		if got := test.run.Label(); got != test.label {
			t.Errorf("%+v.Label() = %q, want %q", test.run, got, test.label)
		}
		if got := test.run.ConfigLabel(); got != test.confg {
			t.Errorf("%+v.ConfigLabel() = %q, want %q", test.run, got, test.confg)
		}
		if got := test.run.Simple(); got != test.simple {
			t.Errorf("%+v.Simple() = %v, want %v", test.run, got, test.simple)
		}
	}
}

func TestSortRuns(t *testing.T) {
	runs := []Run{
		{Version: "b", Kernel: "4", LMUL: "1", Unroll: "1", Size: 128},
		{Version: "a", Kernel: "8", LMUL: "1", Unroll: "1", Size: 128},
		{Version: "a", Kernel: "8", LMUL: "1/2", Unroll: "1", Size: 256},
		{Version: "a", Kernel: "8", LMUL: "1/2", Unroll: "1", Size: 128},
		{Version: "a", Kernel: "16", LMUL: "1", Unroll: "1", Size: 128},
	}
	SortRuns(runs)
	var got []string
	for _, r := range runs {
		got = append(got, r.Label()+"@"+strconv.Itoa(r.Size))
	}
	want := []string{
		"a (k=8, LMUL=1/2)@128",
		"a (k=8, LMUL=1/2)@256",
		"a (k=8)@128",
		"a (k=16)@128",
		"b (k=4)@128",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRunsFromTable(t *testing.T) {
	tab, err := benchtab.Load("testdata/results.csv")
	if err != nil {
		t.Fatal(err)
	}
	runs, err := RunsFromTable(tab, "results.csv")
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 4 {
		t.Fatalf("got %d runs, want 4", len(runs))
	}
	want := Run{
		Version: "tiling", Size: 256, Kernel: "4", LMUL: "1/2", Unroll: "1",
		Time: 0.25, HasCounters: true, Loads: 8000000, Misses: 160000, MissRate: 2,
		Source: "results.csv",
	}
	if !reflect.DeepEqual(runs[1], want) {
		t.Errorf("runs[1] = %+v, want %+v", runs[1], want)
	}
	if runs[0].MissRate != 1 {
		t.Errorf("runs[0].MissRate = %v, want 1", runs[0].MissRate)
	}
}

func TestRunsFromTableMissing(t *testing.T) {
	tab, err := benchtab.Read(strings.NewReader("version,size,time\nv,128,1\n"), "x.csv")
	if err != nil {
		t.Fatal(err)
	}
	_, err = RunsFromTable(tab, "x.csv")
	var me *MissingColumnsError
	if !errors.As(err, &me) {
		t.Fatalf("got %v, want *MissingColumnsError", err)
	}
	if len(me.Missing) != 2 || !strings.HasPrefix(me.Missing[0], "loads") || !strings.HasPrefix(me.Missing[1], "misses") {
		t.Errorf("Missing = %q, want loads and misses", me.Missing)
	}
}

func TestRunsFromRecords(t *testing.T) {
	log := `> BENCHMARK_RECORD : version=base, size=64, time=0.5
     1,000      L1-dcache-loads
        50      L1-dcache-load-misses
> BENCHMARK_RECORD : version=tiling, size=64, kernel=4, lmul=-4
`
	recs, err := benchlog.ReadAll(strings.NewReader(log), "run.log")
	if err != nil {
		t.Fatal(err)
	}
	runs, err := RunsFromRecords(recs, benchlog.KeyTime)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	base, tiling := runs[0], runs[1]
	if !base.HasCounters || base.Loads != 1000 || base.Misses != 50 || base.MissRate != 5 || base.Time != 0.5 {
		t.Errorf("base = %+v", base)
	}
	if tiling.HasCounters || !math.IsNaN(tiling.Time) || tiling.LMUL != "1/4" || tiling.Kernel != "4" {
		t.Errorf("tiling = %+v", tiling)
	}
	if base.Source != "run.log" {
		t.Errorf("Source = %q, want run.log", base.Source)
	}
}

func TestSafeName(t *testing.T) {
	if got, want := SafeName("tiling v2/rvv.1"), "tiling_v2_rvv_1"; got != want {
		t.Errorf("SafeName = %q, want %q", got, want)
	}
}
