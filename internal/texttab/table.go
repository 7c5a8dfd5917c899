// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out column-aligned text tables.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Row and Cell return the Table so callers can chain them to build up
// a row at once.
type Table struct {
	rows  [][]textCell
	align []align // per column
}

type textCell struct {
	value string
	align align
	set   bool // alignment given explicitly
}

type align int

const (
	alignLeft align = iota
	alignRight
)

// A CellOption modifies a single cell.
type CellOption func(c *textCell)

var (
	Left  CellOption = func(c *textCell) { c.align, c.set = alignLeft, true }
	Right CellOption = func(c *textCell) { c.align, c.set = alignRight, true }
)

// Row starts a new row in table t.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell adds a cell at the end of the current row.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	c := textCell{value: value}
	for _, o := range opts {
		o(&c)
	}
	r := len(t.rows) - 1
	t.rows[r] = append(t.rows[r], c)
	return t
}

// SetAlign sets the default alignment of column col to that of opt.
func (t *Table) SetAlign(col int, opt CellOption) {
	for len(t.align) <= col {
		t.align = append(t.align, alignLeft)
	}
	var c textCell
	opt(&c)
	t.align[col] = c.align
}

func (t *Table) alignOf(col int, c textCell) align {
	if c.set || col >= len(t.align) {
		return c.align
	}
	return t.align[col]
}

// Format lays out table t and writes it to w. Columns are separated
// by two spaces and trailing spaces are omitted.
func (t *Table) Format(w io.Writer) error {
	var ws []int
	for _, row := range t.rows {
		for col, c := range row {
			if col >= len(ws) {
				ws = append(ws, 0)
			}
			if n := utf8.RuneCountInString(c.value); n > ws[col] {
				ws[col] = n
			}
		}
	}

	var line strings.Builder
	for _, row := range t.rows {
		line.Reset()
		for col, c := range row {
			if col > 0 {
				line.WriteString("  ")
			}
			pad := ws[col] - utf8.RuneCountInString(c.value)
			if t.alignOf(col, c) == alignRight {
				fmt.Fprintf(&line, "%*s%s", pad, "", c.value)
			} else {
				fmt.Fprintf(&line, "%s%*s", c.value, pad, "")
			}
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}
