// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/aclements/go-gg/table"
)

func TestRead(t *testing.T) {
	tab, err := Read(strings.NewReader(" size , time ,kernel\n128, 1.5 ,4\n256,3\n"), "test.csv")
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"size", "time", "kernel"}; !reflect.DeepEqual(tab.Columns(), want) {
		t.Errorf("columns %q, want %q", tab.Columns(), want)
	}
	if got, want := tab.Column("time"), []string{"1.5", "3"}; !reflect.DeepEqual(got, want) {
		t.Errorf("time column %q, want %q", got, want)
	}
	if got, want := tab.Column("kernel"), []string{"4", ""}; !reflect.DeepEqual(got, want) {
		t.Errorf("kernel column %q, want %q", got, want)
	}
}

func TestReadErrors(t *testing.T) {
	for _, test := range []struct {
		input, want string
	}{
		{"", "missing header row"},
		{"a,a\n1,2\n", `duplicate column "a"`},
		{"a,b\n1,2,3\n", "test.csv:2: 3 fields, header has 2"},
	} {
		_, err := Read(strings.NewReader(test.input), "test.csv")
		if err == nil || !strings.Contains(err.Error(), test.want) {
			t.Errorf("Read(%q) error = %v, want %q", test.input, err, test.want)
		}
	}
}

func TestLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.csv")
	_, err := Load(path)
	var mfe *MissingFileError
	if !errors.As(err, &mfe) || mfe.Path != path {
		t.Fatalf("Load error = %v, want MissingFileError for %s", err, path)
	}
	if got, want := err.Error(), "file not found: "+path; got != want {
		t.Errorf("message %q, want %q", got, want)
	}
}

func TestWrite(t *testing.T) {
	var b table.Builder
	b.Add("version", []string{"a", "b"})
	b.Add("lmul", []float64{0.5, math.NaN()})
	b.AddConst("unroll", 2.0)
	tab := b.Done()

	var buf bytes.Buffer
	fmts := map[string]Formatter{"lmul": func(v float64) string { return "x" }}
	if err := Write(&buf, tab, []string{"unroll", "version", "lmul"}, fmts); err != nil {
		t.Fatal(err)
	}
	want := "unroll,version,lmul\n2,a,x\n2,b,\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}

	if err := Write(&buf, tab, []string{"missing"}, nil); err == nil {
		t.Error("Write with unknown column succeeded")
	}
}

func TestWriteFile(t *testing.T) {
	tab := table.TableFromStrings([]string{"size"}, [][]string{{"1"}}, false)
	path := filepath.Join(t.TempDir(), "out", "nested", "r.csv")
	if err := WriteFile(path, tab, []string{"size"}, nil); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "size\n1\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
