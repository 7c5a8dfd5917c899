// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runseries assembles summarized runs into per-runtime series
// of derived scaling metrics and renders them as charts.
package runseries

import (
	"fmt"
	"os"
	"sort"

	"github.com/sparrust/scaleplot/runfmt"
	"github.com/sparrust/scaleplot/runmath"
)

// A DupePolicy says what a Builder does when a key is added twice.
type DupePolicy int

const (
	// DupeReplace keeps only the measurements added last.
	DupeReplace DupePolicy = iota
	// DupeCombine pools the measurements of all additions.
	DupeCombine
)

type BuilderOptions struct {
	Labeler Labeler

	// IncludeBaseline prepends the baseline as a one-worker point
	// to every series that does not already start at one worker.
	IncludeBaseline bool

	Dupes DupePolicy

	Warn func(format string, args ...interface{})
}

// DefaultBuilderOptions returns the options used by the scaleplot
// command.
func DefaultBuilderOptions() *BuilderOptions {
	return &BuilderOptions{
		IncludeBaseline: true,
		Dupes:           DupeReplace,
		Warn: func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format, args...)
		},
	}
}

// A Builder accumulates runs, the baseline, and the workload size,
// and produces an immutable Collection.
type Builder struct {
	opts BuilderOptions

	samples  map[Key][]float64
	baseline []float64
	items    int

	hasBaseline, hasItems bool
}

// NewBuilder returns an empty Builder. A nil bo is equivalent to
// DefaultBuilderOptions.
func NewBuilder(bo *BuilderOptions) *Builder {
	if bo == nil {
		bo = DefaultBuilderOptions()
	}
	b := &Builder{opts: *bo, samples: make(map[Key][]float64)}
	if b.opts.Warn == nil {
		b.opts.Warn = func(string, ...interface{}) {}
	}
	return b
}

// SetItems records the workload size.
func (b *Builder) SetItems(n int) {
	b.items, b.hasItems = n, true
}

// SetBaseline records the measurements of the sequential run. The
// Builder keeps its own copy of samples.
func (b *Builder) SetBaseline(samples []float64) {
	b.baseline, b.hasBaseline = append([]float64(nil), samples...), true
}

// AddRun records the measurements of one configuration. The Builder
// keeps its own copy of samples.
func (b *Builder) AddRun(k Key, samples []float64) {
	samples = append([]float64(nil), samples...)
	prev, dup := b.samples[k]
	if !dup {
		b.samples[k] = samples
		return
	}
	switch b.opts.Dupes {
	case DupeCombine:
		b.opts.Warn("duplicate run %s; combining measurements\n", k)
		b.samples[k] = append(prev, samples...)
	default:
		b.opts.Warn("duplicate run %s; replacing earlier measurements\n", k)
		b.samples[k] = samples
	}
}

// AddRecords adds every record read from a run directory.
func (b *Builder) AddRecords(recs []runfmt.Record) {
	for _, rec := range recs {
		switch rec.File.Kind {
		case runfmt.Run:
			b.AddRun(Key{rec.File.Runtime, rec.File.Workers}, rec.Samples)
		case runfmt.Baseline:
			b.SetBaseline(rec.Samples)
		case runfmt.ItemCount:
			b.SetItems(rec.Items)
		}
	}
}

// Build summarizes the accumulated measurements. The Builder may
// continue to be used afterwards; later additions do not affect the
// returned Collection.
func (b *Builder) Build() *Collection {
	c := &Collection{
		labeler:         b.opts.Labeler,
		includeBaseline: b.opts.IncludeBaseline,
		items:           b.items,
		hasItems:        b.hasItems,
		hasBaseline:     b.hasBaseline,
	}
	if b.hasBaseline {
		c.baseline = Baseline{runmath.Summarize(b.baseline)}
	}
	for k, xs := range b.samples {
		c.runs = append(c.runs, Run{Key: k, Summary: runmath.Summarize(xs)})
	}
	sort.Slice(c.runs, func(i, j int) bool {
		return c.runs[i].Key.Less(c.runs[j].Key)
	})
	return c
}
