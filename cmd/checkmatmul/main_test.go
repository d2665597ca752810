// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/rvv-matmul/benchtools/internal/cmdutil"
	"github.com/rvv-matmul/benchtools/internal/diff"
	"github.com/rvv-matmul/benchtools/matcheck"
)

func TestCorrect(t *testing.T) {
	golden(t, "small", "testdata/small.log")
}

func TestIncorrect(t *testing.T) {
	golden(t, "wrong", "testdata/wrong.log")

	var stdout, stderr bytes.Buffer
	err := run(&stdout, &stderr, []string{"--strict", "testdata/wrong.log"})
	if err != errIncorrect || cmdutil.ExitCode(err) != 1 {
		t.Errorf("strict: got %v, want errIncorrect", err)
	}

	// A loose enough tolerance accepts the product.
	stdout.Reset()
	if err := run(&stdout, &stderr, []string{"--strict", "--atol", "1", "testdata/wrong.log"}); err != nil {
		t.Errorf("atol 1: %v", err)
	}
}

func TestStdin(t *testing.T) {
	f, err := os.Open("testdata/small.log")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	defer func(r io.Reader) { stdin = r }(stdin)
	stdin = f

	var stdout, stderr bytes.Buffer
	if err := run(&stdout, &stderr, nil); err != nil {
		t.Fatal(err)
	}
	diff.Golden(t, "testdata/small.stdout", stdout.Bytes())
}

func TestTile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(&stdout, &stderr, []string{"--tile", "1", "testdata/small.log"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "A> Print Matrix\n-------------\n1.0\t...\n...\t...\n") {
		t.Errorf("A not tiled to 1x1:\n%s", stdout.String())
	}
}

func TestErrors(t *testing.T) {
	for _, test := range []struct {
		name string
		args []string
		code int
		want string
	}{
		{"missing", []string{"testdata/missing.log"}, 1, "matrix C not found"},
		{"shape", []string{"testdata/shape.log"}, 1, "matrix B: incompatible dimensions for A×B: A is 2x3, B is 2x2"},
		{"no-file", []string{"testdata/none.log"}, 1, ""},
		{"two-files", []string{"a.log", "b.log"}, 2, ""},
		{"bad-tile", []string{"--tile", "0", "testdata/small.log"}, 2, ""},
	} {
		t.Run(test.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(&stdout, &stderr, test.args)
			if got := cmdutil.ExitCode(err); got != test.code {
				t.Fatalf("exit code %d (%v), want %d", got, err, test.code)
			}
			if test.want != "" && err.Error() != test.want {
				t.Errorf("error %q, want %q", err, test.want)
			}
		})
	}

	var stdout, stderr bytes.Buffer
	err := run(&stdout, &stderr, []string{"testdata/shape.log"})
	var se *matcheck.ShapeError
	if !errors.As(err, &se) || se.Matrix != "B" {
		t.Errorf("got %v, want ShapeError for B", err)
	}
}

func golden(t *testing.T, name string, args ...string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	if err := run(&stdout, &stderr, args); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	diff.Golden(t, "testdata/"+name+".stdout", stdout.Bytes())
	if stderr.Len() != 0 {
		t.Errorf("unexpected stderr:\n%s", stderr.String())
	}
}
