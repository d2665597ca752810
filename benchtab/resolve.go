// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import "strings"

// A Predicate matches a column header. Matching is
// case-insensitive and ignores surrounding whitespace.
type Predicate struct {
	Name  string
	Match func(header string) bool
}

// Exact returns a Predicate that matches headers equal to name.
func Exact(name string) Predicate {
	name = strings.ToLower(strings.TrimSpace(name))
	return Predicate{
		Name:  name,
		Match: func(h string) bool { return normHeader(h) == name },
	}
}

// Contains returns a Predicate that matches headers containing sub.
func Contains(sub string) Predicate {
	sub = strings.ToLower(strings.TrimSpace(sub))
	return Predicate{
		Name:  "*" + sub + "*",
		Match: func(h string) bool { return strings.Contains(normHeader(h), sub) },
	}
}

func normHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// A Resolver finds a logical column in a table whose header may be
// spelled several ways. Its predicates are tried in order; the first
// predicate that matches any header wins.
type Resolver []Predicate

// Resolve returns the header in header that r selects.
func (r Resolver) Resolve(header []string) (string, bool) {
	for _, p := range r {
		for _, h := range header {
			if p.Match(h) {
				return h, true
			}
		}
	}
	return "", false
}

func (r Resolver) String() string {
	names := make([]string, len(r))
	for i, p := range r {
		names[i] = p.Name
	}
	return strings.Join(names, "|")
}

// Resolvers for the columns written by benchtables and by the older
// result spreadsheets, which used Italian headers.
var (
	VersionCol  = Resolver{Exact("version"), Exact("nome versione"), Exact("name")}
	SizeCol     = Resolver{Exact("size"), Exact("input size")}
	KernelCol   = Resolver{Exact("kernel")}
	LMULCol     = Resolver{Exact("lmul")}
	UnrollCol   = Resolver{Exact("unroll")}
	LoadsCol    = Resolver{Exact("l1d-load"), Contains("l1-dcache-loads")}
	MissesCol   = Resolver{Exact("l1d-misses"), Contains("l1-dcache-load-misses")}
	MissRateCol = Resolver{Exact("cachemiss-rate"), Contains("cache miss rate")}
	TimeCol     = Resolver{Exact("time"), Contains("tempo di esecuzione"), Contains("exec time")}
)
