// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package matcheck verifies the result of a matrix multiplication
// printed in a kernel's test log.
//
// The log prints the operands and the result in sections introduced
// by "A> Print Matrix", "B> Print Matrix" and "C> Print Matrix". Each
// numeric line of a section is one row of the matrix; other lines,
// such as emulator chatter and separators, are ignored.
package matcheck

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Names lists the matrix sections of a log in the order of the
// product C = A×B.
var Names = []string{"A", "B", "C"}

var headerRE = regexp.MustCompile(`\b([A-Z])>\s*Print Matrix`)

// skipPrefixes mark harness output that is never a matrix row.
var skipPrefixes = []string{"->", "EMU", "Execution", ">", "Testing", "BENCHMARK"}

// A Section is the part of a log that prints one matrix.
type Section struct {
	Name string

	// Header is the index of the section's header line. The
	// section's body runs from Header+1 up to End.
	Header, End int

	// Rows holds the parsed numeric rows and RowLines the index of
	// the line each came from.
	Rows     [][]float32
	RowLines []int
}

// Matrix returns the section's rows as a Matrix. It returns a
// *ShapeError if the rows have different lengths.
func (s *Section) Matrix() (*Matrix, error) {
	return NewMatrix(s.Name, s.Rows)
}

// A Log is a parsed test log.
type Log struct {
	Lines    []string
	Sections []*Section
}

// Section returns the last section named name, or nil.
func (l *Log) Section(name string) *Section {
	var found *Section
	for _, s := range l.Sections {
		if s.Name == name {
			found = s
		}
	}
	return found
}

// Matrices returns the A, B and C matrices of l.
func (l *Log) Matrices() (a, b, c *Matrix, err error) {
	ms := make([]*Matrix, len(Names))
	for i, name := range Names {
		s := l.Section(name)
		if s == nil {
			return nil, nil, nil, fmt.Errorf("matrix %s not found", name)
		}
		if ms[i], err = s.Matrix(); err != nil {
			return nil, nil, nil, err
		}
	}
	return ms[0], ms[1], ms[2], nil
}

// Read reads a log from r and parses it.
func Read(r io.Reader) (*Log, error) {
	var lines []string
	s := bufio.NewScanner(r)
	s.Buffer(nil, 16<<20)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return Parse(lines), nil
}

// Parse locates the matrix sections of lines. A section runs from its
// header to the next section header or the end of the log.
func Parse(lines []string) *Log {
	l := &Log{Lines: lines}
	var cur *Section
	for i, line := range lines {
		if m := headerRE.FindStringSubmatch(line); m != nil {
			if cur != nil {
				cur.End = i
			}
			cur = &Section{Name: m[1], Header: i}
			l.Sections = append(l.Sections, cur)
			continue
		}
		if cur == nil {
			continue
		}
		if row, ok := parseRow(line); ok {
			cur.Rows = append(cur.Rows, row)
			cur.RowLines = append(cur.RowLines, i)
		}
	}
	if cur != nil {
		cur.End = len(lines)
	}
	return l
}

// parseRow parses a line of whitespace-separated numbers.
func parseRow(line string) ([]float32, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, false
	}
	for _, p := range skipPrefixes {
		if strings.HasPrefix(line, p) {
			return nil, false
		}
	}
	fields := strings.Fields(line)
	row := make([]float32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, false
		}
		row[i] = float32(v)
	}
	return row, true
}

// Render writes the log to w with the rows of each section replaced by
// a maxRows by maxCols tile. Other lines are copied unchanged.
func (l *Log) Render(w io.Writer, maxRows, maxCols int) error {
	bw := bufio.NewWriter(w)
	tiles := make(map[int][]string)
	drop := make(map[int]bool)
	for _, s := range l.Sections {
		m, err := s.Matrix()
		if err != nil || len(s.RowLines) == 0 {
			// Leave malformed matrices as printed.
			continue
		}
		tiles[s.RowLines[0]] = Tile(m, maxRows, maxCols)
		for _, i := range s.RowLines {
			drop[i] = true
		}
	}
	for i, line := range l.Lines {
		for _, t := range tiles[i] {
			bw.WriteString(t)
			bw.WriteByte('\n')
		}
		if drop[i] {
			continue
		}
		bw.WriteString(line)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
