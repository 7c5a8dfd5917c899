// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report formats summarized runs and their derived metric as
// text or HTML tables.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/sparrust/scaleplot/internal/scale"
	"github.com/sparrust/scaleplot/internal/texttab"
	"github.com/sparrust/scaleplot/runseries"
)

// A Row is one line of a report.
type Row struct {
	Label   string
	Workers string
	N       string
	Mean    string
	StdDev  string // relative, as a percentage
	Median  string
	Value   string // derived metric
	Err     string
}

// A Report is a table of summarized runs.
type Report struct {
	Title  string
	Metric string
	Chart  string // optional image of the chart
	Rows   []Row
}

// New builds the report of c for metric m. The baseline, if present,
// is the first row.
func New(title string, c *runseries.Collection, m runseries.Metric) *Report {
	r := &Report{Title: title, Metric: m.String()}

	runs := c.Runs()
	var means, values []float64
	base, hasBase := c.Baseline()
	if hasBase {
		means = append(means, base.Mean, base.Median)
		values = append(values, c.BaselinePoint(m).Value)
	}
	for _, run := range runs {
		means = append(means, run.Summary.Mean, run.Summary.Median)
	}
	ms := scale.Common(means)

	// Points are looked up by key because the baseline point may
	// or may not lead each series.
	points := make(map[runseries.Key]runseries.Point)
	for _, s := range c.Series(m) {
		for _, p := range s.Points {
			if !p.Baseline {
				points[runseries.Key{Runtime: s.Runtime, Workers: p.Workers}] = p
				values = append(values, p.Value)
			}
		}
	}
	vs := scale.Common(values)

	if hasBase {
		bp := c.BaselinePoint(m)
		r.Rows = append(r.Rows, Row{
			Label:   "sequential",
			Workers: "1",
			N:       strconv.Itoa(base.N),
			Mean:    ms.Format(base.Mean),
			StdDev:  pct(base.StdDev, base.Mean),
			Median:  ms.Format(base.Median),
			Value:   vs.Format(bp.Value),
			Err:     vs.Format(bp.Err),
		})
	}
	for _, run := range runs {
		p := points[run.Key]
		r.Rows = append(r.Rows, Row{
			Label:   c.Label(run.Runtime),
			Workers: strconv.Itoa(run.Workers),
			N:       strconv.Itoa(run.Summary.N),
			Mean:    ms.Format(run.Summary.Mean),
			StdDev:  pct(run.Summary.StdDev, run.Summary.Mean),
			Median:  ms.Format(run.Summary.Median),
			Value:   vs.Format(p.Value),
			Err:     vs.Format(p.Err),
		})
	}
	return r
}

func pct(sd, mean float64) string {
	if mean == 0 {
		return "?"
	}
	return fmt.Sprintf("%.0f%%", 100*sd/math.Abs(mean))
}

// WriteText writes r to w as a column-aligned text table.
func (r *Report) WriteText(w io.Writer) error {
	var t texttab.Table
	for col := 1; col <= 7; col++ {
		t.SetAlign(col, texttab.Right)
	}
	t.Row().Cell(r.Title, texttab.Left).Cell("workers").Cell("n").Cell("mean").Cell("±").Cell("median").Cell(r.Metric).Cell("±")
	for _, row := range r.Rows {
		t.Row().Cell(row.Label).Cell(row.Workers).Cell(row.N).Cell(row.Mean).Cell(row.StdDev).Cell(row.Median).Cell(row.Value).Cell(row.Err)
	}
	return t.Format(w)
}
