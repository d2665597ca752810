// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package speedup

import (
	"io"
	"math"

	"github.com/google/safehtml/template"
	"github.com/rvv-matmul/benchtools/benchtab"
)

var htmlTemplate = template.Must(template.New("speedup").Parse(`
<table class='speedup'>
<tr>{{range .Columns}}<th>{{.}}{{end}}
{{range .Rows -}}
<tr class='{{.Class}}'>{{range .Cells}}<td>{{.}}{{end}}
{{end -}}
<tr class='summary'><td colspan='{{len .Columns}}'>{{.Summary}}; {{.Unmatched}} rows without match
</table>
`))

type htmlRow struct {
	Class string
	Cells []string
}

// FormatHTML writes r to w as an HTML table. Rows are classed
// "better", "worse", "same" or "unmatched" by their speedup.
func FormatHTML(w io.Writer, r *Result) error {
	cols := make([][]string, len(r.Columns))
	for i, col := range r.Columns {
		cols[i] = benchtab.Strings(r.Table, col)
	}
	speedups := r.Speedups()
	rows := make([]htmlRow, r.Table.Len())
	for i := range rows {
		cells := make([]string, len(cols))
		for j := range cols {
			cells[j] = cols[j][i]
		}
		rows[i] = htmlRow{rowClass(speedups[i]), cells}
	}
	return htmlTemplate.Execute(w, struct {
		Columns   []string
		Rows      []htmlRow
		Summary   string
		Unmatched int
	}{r.Columns, rows, r.Summary.String(), r.Unmatched})
}

func rowClass(s float64) string {
	switch {
	case math.IsNaN(s):
		return "unmatched"
	case s > 1:
		return "better"
	case s < 1:
		return "worse"
	}
	return "same"
}
