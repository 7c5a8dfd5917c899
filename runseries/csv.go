// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runseries

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteCSV writes one row per point of every series to w, preceded
// by a header row.
func WriteCSV(w io.Writer, series []*Series) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"runtime", "label", "metric", "workers", "value", "err"})
	for _, s := range series {
		for _, p := range s.Points {
			cw.Write([]string{s.Runtime, s.Label, s.Metric.String(), strconv.Itoa(p.Workers), strof(p.Value), strof(p.Err)})
		}
	}
	cw.Flush()
	return cw.Error()
}

func strof(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
