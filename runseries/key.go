// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runseries

import (
	"fmt"

	"github.com/sparrust/scaleplot/runmath"
)

// A Key identifies one measured configuration.
type Key struct {
	Runtime string
	Workers int
}

func (k Key) String() string {
	return fmt.Sprintf("%s-%d", k.Runtime, k.Workers)
}

// Less orders keys by runtime, then by worker count.
func (k Key) Less(o Key) bool {
	if k.Runtime != o.Runtime {
		return k.Runtime < o.Runtime
	}
	return k.Workers < o.Workers
}

// A Run is the summarized measurements of one configuration.
type Run struct {
	Key
	Summary runmath.Summary
}

// A Baseline is the summarized measurements of the sequential
// reference run. Every other run is normalized against it.
type Baseline struct {
	runmath.Summary
}

// Runtime identifiers with display names of their own.
const (
	MPIRuntime  = "MPI"
	OursRuntime = "SPAR_RUST_MPI"
)

// DefaultOursLabel is the display name of OursRuntime unless a Labeler
// says otherwise.
const DefaultOursLabel = "Our Work"

// A Labeler maps runtime identifiers to display names.
type Labeler struct {
	// Ours is the display name of OursRuntime. If empty,
	// DefaultOursLabel is used.
	Ours string
}

// Label returns the display name of runtime. Runtimes without a
// display name of their own are returned unchanged.
func (l Labeler) Label(runtime string) string {
	switch runtime {
	case OursRuntime:
		if l.Ours != "" {
			return l.Ours
		}
		return DefaultOursLabel
	case MPIRuntime:
		return "Raw MPI"
	}
	return runtime
}
