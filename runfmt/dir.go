// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runfmt

import (
	"io/fs"
	"os"
	"path/filepath"
)

// A Dir reads the measurement files of one run directory.
type Dir struct {
	// FS holds the run directory. Only its top-level entries are
	// read.
	FS fs.FS

	// Name is the directory name used in error messages.
	Name string

	// Warn, if non-nil, is called for every entry that is skipped.
	Warn func(format string, args ...interface{})
}

// OpenDir returns a Dir reading the directory at path.
func OpenDir(path string) *Dir {
	return &Dir{FS: os.DirFS(path), Name: path}
}

// A Record is the content of one recognized file in a run directory.
type Record struct {
	// Name is the file name within the directory.
	Name string

	File ParsedFilename

	// Samples holds the measurements of a Run or Baseline file.
	Samples []float64

	// Items holds the workload size of an ItemCount file.
	Items int
}

// Records reads every recognized file in d, in file name order.
// Unrecognized files and subdirectories are skipped without being
// opened. The first malformed file stops reading and its error is
// returned.
func (d *Dir) Records() ([]Record, error) {
	entries, err := fs.ReadDir(d.FS, ".")
	if err != nil {
		return nil, err
	}
	var recs []Record
	for _, e := range entries {
		name := e.Name()
		pf := ParseFilename(name)
		if pf.Kind == Unrecognized || e.IsDir() {
			d.warn("skipping %s\n", d.path(name))
			continue
		}
		rec, err := d.read(name, pf)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (d *Dir) read(name string, pf ParsedFilename) (Record, error) {
	rec := Record{Name: name, File: pf}
	f, err := d.FS.Open(name)
	if err != nil {
		return rec, err
	}
	defer f.Close()
	if pf.Kind == ItemCount {
		rec.Items, err = ReadItems(f, d.path(name))
	} else {
		rec.Samples, err = ReadSamples(f, d.path(name))
	}
	return rec, err
}

func (d *Dir) path(name string) string {
	if d.Name == "" {
		return name
	}
	return filepath.Join(d.Name, name)
}

func (d *Dir) warn(format string, args ...interface{}) {
	if d.Warn != nil {
		d.Warn(format, args...)
	}
}
