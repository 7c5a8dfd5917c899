// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runfmt reads directories of per-run timing measurements.
//
// A run directory holds one plain-text file per measured
// configuration, named "<runtime>-<workers>", each containing one
// floating-point measurement per line. Two file names are special:
// SEQUENTIAL holds the measurements of the sequential baseline and
// ITEMS holds the workload size as a single integer.
package runfmt

import (
	"fmt"
	"strconv"
	"strings"
)

// Special file names in a run directory.
const (
	BaselineName  = "SEQUENTIAL"
	ItemCountName = "ITEMS"
)

// A Kind classifies a file in a run directory.
type Kind int

const (
	// Unrecognized files are skipped.
	Unrecognized Kind = iota
	// Run files hold the measurements of one (runtime, workers)
	// configuration.
	Run
	// Baseline is the SEQUENTIAL file.
	Baseline
	// ItemCount is the ITEMS file.
	ItemCount
)

func (k Kind) String() string {
	switch k {
	case Unrecognized:
		return "unrecognized"
	case Run:
		return "run"
	case Baseline:
		return "baseline"
	case ItemCount:
		return "items"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// A ParsedFilename is the classification of a run directory entry.
// Runtime and Workers are only meaningful when Kind is Run.
type ParsedFilename struct {
	Kind    Kind
	Runtime string
	Workers int
}

func (p ParsedFilename) String() string {
	if p.Kind == Run {
		return fmt.Sprintf("%s-%d", p.Runtime, p.Workers)
	}
	return p.Kind.String()
}

// ParseFilename classifies name. A run name splits on "-" into
// exactly two parts, the second of which is a decimal integer.
// Names that are neither runs nor one of the special names are
// Unrecognized; that is not an error.
func ParseFilename(name string) ParsedFilename {
	if parts := strings.Split(name, "-"); len(parts) == 2 {
		if n, err := strconv.Atoi(parts[1]); err == nil {
			return ParsedFilename{Kind: Run, Runtime: parts[0], Workers: n}
		}
	}
	switch name {
	case BaselineName:
		return ParsedFilename{Kind: Baseline}
	case ItemCountName:
		return ParsedFilename{Kind: ItemCount}
	}
	return ParsedFilename{Kind: Unrecognized}
}
