// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"io"
	"os"
	"strconv"
	"strings"
)

// A Files reads benchmark records from a sequence of log files.
//
// Every record gets a ".file" field naming the input it came from.
// This is the path as given in Paths, with duplicate paths
// disambiguated by appending "#N". If AllowLabels is true, entries in
// Paths may be of the form label=path, and the label is used instead.
type Files struct {
	Paths []string

	// AllowStdin makes "-" stand for standard input, which is also
	// read when Paths is empty.
	AllowStdin bool

	AllowLabels bool

	inputs  []input // nil until the first Scan
	next    int
	reader  Reader
	closer  io.Closer // open file, or nil between files and for stdin
	reading bool

	markers  int
	warnings []error
	err      error
}

type input struct {
	path, label string
	stdin       bool
}

// plan resolves Paths into inputs and their labels.
func (f *Files) plan() []input {
	ins := []input{}
	if f.AllowStdin && len(f.Paths) == 0 {
		return append(ins, input{"-", "-", true})
	}
	unlabeled := make(map[string]int)
	for _, p := range f.Paths {
		in := input{path: p, label: p}
		if label, path, ok := strings.Cut(p, "="); f.AllowLabels && ok {
			in.path, in.label = path, label
		} else {
			unlabeled[p]++
		}
		in.stdin = f.AllowStdin && in.path == "-"
		ins = append(ins, in)
	}
	seen := make(map[string]int)
	for i, in := range ins {
		if in.label != in.path || unlabeled[in.path] < 2 {
			continue
		}
		ins[i].label = in.path + "#" + strconv.Itoa(seen[in.path])
		seen[in.path]++
	}
	return ins
}

// open starts reading the next input. It reports false when there
// are no inputs left or the input cannot be opened.
func (f *Files) open() bool {
	if f.next >= len(f.inputs) {
		return false
	}
	in := f.inputs[f.next]
	f.next++
	var r io.Reader = os.Stdin
	f.closer = nil
	if !in.stdin {
		file, err := os.Open(in.path)
		if err != nil {
			f.err = err
			return false
		}
		r, f.closer = file, file
	}
	f.reader.Reset(r, in.path, KeyFile, in.label)
	f.reading = true
	return true
}

// finish collects the counts of the input just read and closes it.
func (f *Files) finish() {
	f.reading = false
	f.markers += f.reader.Markers()
	f.warnings = append(f.warnings, f.reader.Warnings()...)
	f.err = f.reader.Err()
	if f.closer != nil {
		f.closer.Close()
		f.closer = nil
	}
}

// Scan advances to the next record in the sequence of files and
// reports whether a record was read. If Scan reaches the end of the
// file sequence, or if an I/O error occurs, it returns false. In this
// case, the caller should use the Err method to check for errors.
func (f *Files) Scan() bool {
	if f.inputs == nil {
		f.inputs = f.plan()
	}
	for f.err == nil {
		if !f.reading && !f.open() {
			return false
		}
		if f.reader.Scan() {
			return true
		}
		f.finish()
	}
	return false
}

// Result returns the record that was just read by Scan.
func (f *Files) Result() *Record {
	return f.reader.Result()
}

// Err returns the I/O error that stopped Scan, if any.
func (f *Files) Err() error {
	return f.err
}

// Markers returns the number of markers found in the files that
// have been read to completion.
func (f *Files) Markers() int {
	return f.markers
}

// Warnings returns the non-fatal problems found in the files that
// have been read to completion.
func (f *Files) Warnings() []error {
	return f.warnings
}
