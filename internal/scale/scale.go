// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scale formats numbers with SI prefixes so that a column of
// related values shares one prefix and precision.
package scale

import (
	"fmt"
	"math"
	"strconv"
)

// A Scaler represents a scaling factor for a number and
// its scientific representation.
type Scaler struct {
	Prec   int     // Digits after the decimal point
	Factor float64 // Unscaled value of 1 Prefix (e.g., 1 k => 1000)
	Prefix string  // Unit prefix ("k", "M", etc)
}

// Format formats val and appends the prefix of s. For example, with a
// Scaler chosen for 123456789, Format(123456789) returns "123.5M".
// Non-finite values are formatted as by strconv.
func (s Scaler) Format(val float64) string {
	if math.IsInf(val, 0) || math.IsNaN(val) {
		return strconv.FormatFloat(val, 'g', -1, 64)
	}
	buf := make([]byte, 0, 20)
	buf = strconv.AppendFloat(buf, val/s.Factor, 'f', s.Prec, 64)
	buf = append(buf, s.Prefix...)
	return string(buf)
}

// Exact formats numbers with the smallest number of digits necessary
// to capture the exact value, and no prefix. It is intended for
// output consumed by another program.
var Exact = Scaler{-1, 1, ""}

type factor struct {
	factor float64
	prefix string
	// Thresholds for 100.0, 10.00, 1.000.
	t100, t10, t1 float64
}

var siFactors = mkSIFactors()

func mkSIFactors() []factor {
	// Build the thresholds by parsing printed representations so
	// they round exactly as printing does.
	var factors []factor
	exp := 12
	for _, p := range []string{"T", "G", "M", "k", "", "m", "µ", "n"} {
		t100, _ := strconv.ParseFloat(fmt.Sprintf("99.995e%d", exp), 64)
		t10, _ := strconv.ParseFloat(fmt.Sprintf("9.9995e%d", exp), 64)
		t1, _ := strconv.ParseFloat(fmt.Sprintf(".99995e%d", exp), 64)
		factors = append(factors, factor{math.Pow(10, float64(exp)), p, t100, t10, t1})
		exp -= 3
	}
	return factors
}

// Scale formats val using at least three significant digits and an
// SI prefix.
func Scale(val float64) string {
	return Common([]float64{val}).Format(val)
}

// Common returns a Scaler that shows at least three significant
// digits for every finite value in vals. The scale is determined by
// the non-zero value closest to zero.
func Common(vals []float64) Scaler {
	var min float64
	for _, v := range vals {
		v = math.Abs(v)
		if math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		if v != 0 && (min == 0 || v < min) {
			min = v
		}
	}
	if min == 0 {
		return Scaler{3, 1, ""}
	}

	for _, f := range siFactors {
		switch {
		case min >= f.t100:
			return Scaler{1, f.factor, f.prefix}
		case min >= f.t10:
			return Scaler{2, f.factor, f.prefix}
		case min >= f.t1:
			return Scaler{3, f.factor, f.prefix}
		}
	}

	// Smaller than the smallest prefix: print with enough digits
	// for three significant figures, up to a limit.
	f := siFactors[len(siFactors)-1]
	prec := 3
	for v := min / f.factor; v < 0.99995 && prec < 10; v *= 10 {
		prec++
	}
	return Scaler{prec, f.factor, f.prefix}
}
