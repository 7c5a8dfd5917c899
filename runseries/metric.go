// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runseries

import "fmt"

// A Metric is a quantity derived from a run's mean time.
type Metric int

const (
	// Throughput is items processed per unit of time: items/mean.
	Throughput Metric = iota
	// Speedup is the baseline time over the run time.
	Speedup
	// Efficiency is the speedup per worker, in percent.
	Efficiency
)

var metricNames = map[string]Metric{
	"throughput": Throughput,
	"speedup":    Speedup,
	"efficiency": Efficiency,
}

// ParseMetric parses the name of a Metric.
func ParseMetric(s string) (Metric, error) {
	if m, ok := metricNames[s]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("unknown metric %q (want throughput, speedup, or efficiency)", s)
}

func (m Metric) String() string {
	switch m {
	case Throughput:
		return "throughput"
	case Speedup:
		return "speedup"
	case Efficiency:
		return "efficiency"
	}
	return fmt.Sprintf("Metric(%d)", int(m))
}

// Inputs holds the run-independent inputs of a Metric.
type Inputs struct {
	// Items is the workload size.
	Items int
	// Baseline is the mean time of the sequential run.
	Baseline float64
}

// Value returns m for a run of the given workers whose mean time is
// mean. Degenerate inputs (a zero mean or worker count) produce
// infinities or NaNs rather than errors.
func (m Metric) Value(in Inputs, mean float64, workers int) float64 {
	switch m {
	case Throughput:
		return float64(in.Items) / mean
	case Speedup:
		return in.Baseline / mean
	case Efficiency:
		return 100 * (in.Baseline / mean) / float64(workers)
	}
	panic(fmt.Sprintf("bad Metric %v", m))
}

// Derive returns m and its error bound for a run with the given mean
// and standard deviation. The error bound is the change in m when
// the mean grows by one standard deviation:
//
//	m(mean) - m(mean+stddev)
func (m Metric) Derive(in Inputs, mean, stddev float64, workers int) (value, err float64) {
	value = m.Value(in, mean, workers)
	return value, value - m.Value(in, mean+stddev, workers)
}
