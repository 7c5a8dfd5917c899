// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runfmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// A SyntaxError represents a syntax error on a particular line of a
// measurement file.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// ReadSamples reads one floating-point value per line from r.
// Surrounding whitespace is ignored, as are blank lines. Any other
// line that does not parse as a float is a *SyntaxError.
// fileName is used in error messages; it is purely diagnostic.
func ReadSamples(r io.Reader, fileName string) ([]float64, error) {
	var xs []float64
	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		text := strings.TrimSpace(s.Text())
		if text == "" {
			continue
		}
		x, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, &SyntaxError{fileName, line, fmt.Sprintf("invalid measurement %q", text)}
		}
		xs = append(xs, x)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	return xs, nil
}

// ReadItems reads the workload size from the first line of r.
func ReadItems(r io.Reader, fileName string) (int, error) {
	s := bufio.NewScanner(r)
	if !s.Scan() {
		if err := s.Err(); err != nil {
			return 0, fmt.Errorf("%s: %w", fileName, err)
		}
		return 0, &SyntaxError{fileName, 1, "missing item count"}
	}
	text := strings.TrimSpace(s.Text())
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, &SyntaxError{fileName, 1, fmt.Sprintf("invalid item count %q", text)}
	}
	return n, nil
}
