// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runseries

// A Collection is the immutable result of a Builder.
type Collection struct {
	runs []Run // sorted by Key

	baseline    Baseline
	hasBaseline bool
	items       int
	hasItems    bool

	labeler         Labeler
	includeBaseline bool
}

// Runs returns the summarized runs, ordered by key.
func (c *Collection) Runs() []Run {
	return append([]Run(nil), c.runs...)
}

// Baseline returns the sequential baseline and whether a baseline
// was added. A missing baseline is the zero Baseline.
func (c *Collection) Baseline() (Baseline, bool) {
	return c.baseline, c.hasBaseline
}

// Items returns the workload size and whether one was set. A missing
// workload size is 0.
func (c *Collection) Items() (int, bool) {
	return c.items, c.hasItems
}

// Label returns the display name of runtime.
func (c *Collection) Label(runtime string) string {
	return c.labeler.Label(runtime)
}

// Runtimes returns the distinct runtimes, in order.
func (c *Collection) Runtimes() []string {
	var rts []string
	for i, r := range c.runs {
		if i == 0 || c.runs[i-1].Runtime != r.Runtime {
			rts = append(rts, r.Runtime)
		}
	}
	return rts
}

func (c *Collection) inputs() Inputs {
	return Inputs{Items: c.items, Baseline: c.baseline.Mean}
}

// BaselinePoint returns the baseline expressed as m at one worker.
func (c *Collection) BaselinePoint(m Metric) Point {
	v, err := m.Derive(c.inputs(), c.baseline.Mean, c.baseline.StdDev, 1)
	return Point{Workers: 1, Value: v, Err: err, Baseline: true}
}

// Series derives m for every run and returns one Series per runtime,
// ordered by runtime. Each call returns fresh slices.
func (c *Collection) Series(m Metric) []*Series {
	var out []*Series
	var cur *Series
	in := c.inputs()
	for _, r := range c.runs {
		if cur == nil || cur.Runtime != r.Runtime {
			cur = &Series{Runtime: r.Runtime, Label: c.labeler.Label(r.Runtime), Metric: m}
			if c.hasBaseline && c.includeBaseline && r.Workers > 1 {
				cur.Points = append(cur.Points, c.BaselinePoint(m))
			}
			out = append(out, cur)
		}
		v, err := m.Derive(in, r.Summary.Mean, r.Summary.StdDev, r.Workers)
		cur.Points = append(cur.Points, Point{Workers: r.Workers, Value: v, Err: err})
	}
	return out
}

// A Point is one derived value of a Series.
type Point struct {
	Workers int
	Value   float64
	Err     float64

	// Baseline is set if the point is the sequential run rather
	// than a measured configuration.
	Baseline bool
}

// Stage returns the number of replicated stages of p: one fewer
// than its worker count.
func (p Point) Stage() int {
	return p.Workers - 1
}

// A Series is a derived metric for one runtime across worker counts.
// Points are in strictly increasing worker order.
type Series struct {
	Runtime string
	Label   string
	Metric  Metric
	Points  []Point
}

// X returns the worker counts of s.
func (s *Series) X() []int {
	xs := make([]int, len(s.Points))
	for i, p := range s.Points {
		xs[i] = p.Workers
	}
	return xs
}

// Y returns the metric values of s.
func (s *Series) Y() []float64 {
	ys := make([]float64, len(s.Points))
	for i, p := range s.Points {
		ys[i] = p.Value
	}
	return ys
}

// Errs returns the error bounds of s.
func (s *Series) Errs() []float64 {
	es := make([]float64, len(s.Points))
	for i, p := range s.Points {
		es[i] = p.Err
	}
	return es
}
