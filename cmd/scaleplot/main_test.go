// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sparrust/scaleplot/internal/archive"
	"github.com/sparrust/scaleplot/runfmt"
	"github.com/sparrust/scaleplot/runseries"
)

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var got, gotErr bytes.Buffer
	t.Logf("scaleplot %s", strings.Join(args, " "))
	err = scaleplot(&got, &gotErr, args)
	return got.String(), gotErr.String(), err
}

func TestCSV(t *testing.T) {
	for _, metric := range []string{"throughput", "speedup", "efficiency"} {
		t.Run(metric, func(t *testing.T) {
			out := t.TempDir()
			stdout, stderr, err := run(t, "-o", out, "-format", "svg", "-metric", metric, "-csv", "testdata/bzip2", "bzip2")
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			want, err := os.ReadFile(filepath.Join("testdata", "bzip2-"+metric+".csv"))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(string(want), stdout); diff != "" {
				t.Errorf("stdout (-want +got):\n%s", diff)
			}
			if stderr != "" {
				t.Errorf("unexpected stderr:\n%s", stderr)
			}
			if _, err := os.Stat(filepath.Join(out, "bzip2.svg")); err != nil {
				t.Errorf("chart not written: %v", err)
			}
		})
	}
}

func TestOutputs(t *testing.T) {
	out := t.TempDir()
	html := filepath.Join(out, "bzip2.html")
	stdout, stderr, err := run(t, "-o", out, "-format", "png", "-legend", "-legend-row", "-table", "-html", html, "-v", "testdata/bzip2", "micro-bench")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	for _, name := range []string{"micro-bench.png", "micro-bench-legend.png", "micro-bench-legend-row.png", "bzip2.html"} {
		if fi, err := os.Stat(filepath.Join(out, name)); err != nil || fi.Size() == 0 {
			t.Errorf("%s not written: %v", name, err)
		}
	}
	for _, want := range []string{"micro-bench", "sequential", "Raw MPI", "Our Work", "throughput"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("table missing %q:\n%s", want, stdout)
		}
	}
	if want := "skipping " + filepath.Join("testdata/bzip2", "notes.txt") + "\n"; stderr != want {
		t.Errorf("stderr = %q, want %q", stderr, want)
	}
	page, err := os.ReadFile(html)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(page), `src="micro-bench.png"`) {
		t.Errorf("HTML does not reference the chart:\n%s", page)
	}
}

func TestOursLabel(t *testing.T) {
	stdout, _, err := run(t, "-o", t.TempDir(), "-format", "svg", "-ours", "Our Abstraction", "-csv", "testdata/bzip2", "bzip2")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "SPAR_RUST_MPI,Our Abstraction,") || strings.Contains(stdout, "Our Work") {
		t.Errorf("stdout does not use the -ours label:\n%s", stdout)
	}
}

func TestNoBaseline(t *testing.T) {
	stdout, _, err := run(t, "-o", t.TempDir(), "-format", "svg", "-baseline=false", "-csv", "testdata/bzip2", "bzip2")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(stdout, ",1,") {
		t.Errorf("baseline point present with -baseline=false:\n%s", stdout)
	}
}

func TestArchive(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "archive.db")
	for i := 0; i < 2; i++ {
		if _, _, err := run(t, "-o", t.TempDir(), "-format", "svg", "-db", dsn, "testdata/bzip2", "bzip2"); err != nil {
			t.Fatal(err)
		}
	}

	db, err := archive.OpenSQL("sqlite3", dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	ctx := context.Background()
	id, err := db.Latest(ctx, "bzip2")
	if err != nil || id != 2 {
		t.Fatalf("Latest(bzip2) = %d, %v, want 2", id, err)
	}
	c, err := db.Load(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if c.Metric != runseries.Throughput || len(c.Series) != 2 {
		t.Errorf("archived chart = %v with %d series, want throughput with 2", c.Metric, len(c.Series))
	}
}

func TestUsage(t *testing.T) {
	for _, args := range [][]string{
		nil,
		{"testdata/bzip2"},
		{"-nosuchflag", "testdata/bzip2", "bzip2"},
	} {
		_, stderr, err := run(t, args...)
		if !errors.Is(err, errUsage) {
			t.Errorf("scaleplot %v: error = %v, want usage error", args, err)
		}
		if !strings.Contains(stderr, "usage: scaleplot") {
			t.Errorf("scaleplot %v: stderr missing usage:\n%s", args, stderr)
		}
	}
}

func TestErrors(t *testing.T) {
	_, _, err := run(t, "-o", t.TempDir(), "testdata/malformed", "bzip2")
	var se *runfmt.SyntaxError
	if !errors.As(err, &se) || se.Line != 3 {
		t.Errorf("malformed input: error = %v, want syntax error on line 3", err)
	}

	if _, _, err := run(t, "-metric", "latency", "testdata/bzip2", "bzip2"); err == nil {
		t.Error("unknown metric accepted")
	}

	empty := t.TempDir()
	if _, _, err := run(t, "-o", t.TempDir(), empty, "bzip2"); err == nil {
		t.Error("directory without runs accepted")
	}
}

func TestMissingItems(t *testing.T) {
	data := t.TempDir()
	if err := os.WriteFile(filepath.Join(data, "MPI-2"), []byte("5\n5\n"), 0666); err != nil {
		t.Fatal(err)
	}
	stdout, stderr, err := run(t, "-o", t.TempDir(), "-format", "svg", "-csv", data, "bzip2")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "no ITEMS file") {
		t.Errorf("stderr missing ITEMS warning:\n%s", stderr)
	}
	if want := "runtime,label,metric,workers,value,err\nMPI,Raw MPI,throughput,2,0,0\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0666); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestNonFinite(t *testing.T) {
	for _, test := range []struct {
		name    string
		files   map[string]string
		args    []string
		wantCSV string
	}{
		{
			name:    "empty run",
			files:   map[string]string{"MPI-2": "", "MPI-3": "4\n", "ITEMS": "10\n", "SEQUENTIAL": "8\n"},
			args:    []string{"-table"},
			wantCSV: "MPI,Raw MPI,throughput,2,+Inf,NaN\n",
		},
		{
			name:    "zero workers",
			files:   map[string]string{"MPI-0": "4\n", "SEQUENTIAL": "8\n"},
			args:    []string{"-metric", "efficiency"},
			wantCSV: "MPI,Raw MPI,efficiency,0,+Inf,",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			out := t.TempDir()
			args := append([]string{"-o", out, "-format", "svg", "-csv"}, test.args...)
			stdout, _, err := run(t, append(args, writeFiles(t, test.files), "bzip2")...)
			if err == nil || !strings.Contains(err.Error(), "infinite") {
				t.Errorf("error = %v, want infinite data point error from the chart", err)
			}
			if !strings.Contains(stdout, "runtime,label,metric,workers,value,err\n") || !strings.Contains(stdout, test.wantCSV) {
				t.Errorf("stdout missing CSV row %q:\n%s", test.wantCSV, stdout)
			}
			if _, err := os.Stat(filepath.Join(out, "bzip2.svg")); err == nil {
				t.Error("chart written despite non-finite values")
			}
		})
	}
}

func TestCompare(t *testing.T) {
	if _, _, err := run(t, "-o", t.TempDir(), "-compare", "testdata/bzip2", "bzip2"); err == nil || !strings.Contains(err.Error(), "-compare requires -db") {
		t.Errorf("-compare without -db: error = %v", err)
	}

	dsn := filepath.Join(t.TempDir(), "archive.db")
	out := t.TempDir()
	_, stderr, err := run(t, "-o", out, "-format", "svg", "-db", dsn, "-compare", "testdata/bzip2", "bzip2")
	if err != nil {
		t.Fatal(err)
	}
	if want := "no archived chart bzip2 to compare with\n"; stderr != want {
		t.Errorf("stderr = %q, want %q", stderr, want)
	}
	_, stderr, err = run(t, "-o", out, "-format", "svg", "-db", dsn, "-compare", "-legend", "testdata/bzip2", "bzip2")
	if err != nil {
		t.Fatal(err)
	}
	if stderr != "" {
		t.Errorf("unexpected stderr:\n%s", stderr)
	}
	for _, name := range []string{"bzip2.svg", "bzip2-legend.svg"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestArchivedSeries(t *testing.T) {
	db, err := archive.OpenSQL("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	ctx := context.Background()

	var warnings []string
	warn := func(format string, args ...interface{}) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	b := runseries.NewBuilder(&runseries.BuilderOptions{IncludeBaseline: true})
	b.SetBaseline([]float64{10, 10})
	b.SetItems(100)
	b.AddRun(runseries.Key{Runtime: runseries.MPIRuntime, Workers: 2}, []float64{5, 5})
	id, err := db.Save(ctx, "bzip2", b.Build().Series(runseries.Speedup))
	if err != nil {
		t.Fatal(err)
	}

	old, err := archivedSeries(ctx, db, "bzip2", runseries.Speedup, warn)
	if err != nil {
		t.Fatal(err)
	}
	if len(old) != 1 {
		t.Fatalf("got %d series, want 1", len(old))
	}
	if want := fmt.Sprintf("MPI@%d", id); old[0].Runtime != want {
		t.Errorf("Runtime = %q, want %q", old[0].Runtime, want)
	}
	if !strings.HasPrefix(old[0].Label, "Raw MPI (") {
		t.Errorf("Label = %q, want Raw MPI with archive time", old[0].Label)
	}
	if diff := cmp.Diff([]float64{1, 2}, old[0].Y()); diff != "" {
		t.Errorf("Y (-want +got):\n%s", diff)
	}

	old, err = archivedSeries(ctx, db, "bzip2", runseries.Throughput, warn)
	if err != nil || old != nil {
		t.Errorf("different metric: got %v, %v, want nil, nil", old, err)
	}
	old, err = archivedSeries(ctx, db, "gzip", runseries.Speedup, warn)
	if err != nil || old != nil {
		t.Errorf("unknown chart: got %v, %v, want nil, nil", old, err)
	}
	want := []string{
		fmt.Sprintf("archived chart bzip2 (%d) plots throughput, not speedup; not comparing\n", id),
		"no archived chart gzip to compare with\n",
	}
	if diff := cmp.Diff(want, warnings); diff != "" {
		t.Errorf("warnings (-want +got):\n%s", diff)
	}
}
