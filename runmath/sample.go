// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runmath computes descriptive statistics over the repeated
// timing measurements of a single run configuration.
//
// The statistics here are deliberately plain: the arithmetic mean and
// the population standard deviation are what the scaling charts plot
// and propagate into error bars. Empty inputs are not an error; they
// summarize to zero.
package runmath

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// Mean returns the arithmetic mean of xs, or 0 if xs is empty.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stats.Mean(xs)
}

// StdDev returns the population standard deviation of xs around mean.
// It divides by len(xs), not len(xs)-1. It returns 0 if xs is empty.
func StdDev(xs []float64, mean float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var dev float64
	for _, x := range xs {
		d := x - mean
		dev += d * d
	}
	return math.Sqrt(dev / float64(len(xs)))
}

// A Sample is a set of repeated measurements of one run.
type Sample struct {
	// Values are the measured values, in ascending order.
	Values []float64
}

// NewSample constructs a Sample from a set of measurements. The
// caller's slice is not modified.
func NewSample(values []float64) *Sample {
	vs := append([]float64(nil), values...)
	sort.Float64s(vs)
	return &Sample{vs}
}

func (s *Sample) sample() stats.Sample {
	return stats.Sample{Xs: s.Values, Sorted: true}
}

// A Summary summarizes a Sample.
type Summary struct {
	N int

	Mean, StdDev float64

	// Median, Min and Max are order statistics of the sample. They
	// are 0 for an empty sample.
	Median, Min, Max float64
}

// Summary computes the Summary of s.
func (s *Sample) Summary() Summary {
	if len(s.Values) == 0 {
		return Summary{}
	}
	m := Mean(s.Values)
	sum := Summary{
		N:      len(s.Values),
		Mean:   m,
		StdDev: StdDev(s.Values, m),
		Median: s.sample().Quantile(0.5),
	}
	sum.Min, sum.Max = s.sample().Bounds()
	return sum
}

// Summarize is shorthand for NewSample(values).Summary().
func Summarize(values []float64) Summary {
	return NewSample(values).Summary()
}

// Rel returns the standard deviation relative to the mean as a
// fraction, or 0 if the mean is 0.
func (s Summary) Rel() float64 {
	if s.Mean == 0 {
		return 0
	}
	return s.StdDev / math.Abs(s.Mean)
}
