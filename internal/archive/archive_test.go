// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archive_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	_ "github.com/mattn/go-sqlite3"
	. "github.com/sparrust/scaleplot/internal/archive"
	"github.com/sparrust/scaleplot/runseries"
)

func newDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenSQL("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close database: %v", err)
		}
	})
	return db
}

func series() []*runseries.Series {
	b := runseries.NewBuilder(&runseries.BuilderOptions{IncludeBaseline: true})
	b.SetBaseline([]float64{10, 10})
	b.SetItems(100)
	b.AddRun(runseries.Key{Runtime: "MPI", Workers: 2}, []float64{5, 5})
	b.AddRun(runseries.Key{Runtime: "MPI", Workers: 4}, []float64{3, 5})
	b.AddRun(runseries.Key{Runtime: "SPAR_RUST_MPI", Workers: 2}, []float64{4})
	return b.Build().Series(runseries.Speedup)
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)

	SetNow(time.Unix(86400, 0))
	defer SetNow(time.Time{})

	want := series()
	id, err := db.Save(ctx, "bzip2", want)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := db.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load(%d): %v", id, err)
	}
	if got.Name != "bzip2" || got.Metric != runseries.Speedup || !got.Created.Equal(time.Unix(86400, 0)) {
		t.Errorf("Load(%d) = %q/%v/%v, want bzip2/speedup/%v", id, got.Name, got.Metric, got.Created, time.Unix(86400, 0))
	}
	if diff := cmp.Diff(want, got.Series); diff != "" {
		t.Errorf("series (-want +got):\n%s", diff)
	}
}

func TestLatest(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)

	if id, err := db.Latest(ctx, "bzip2"); err != nil || id != 0 {
		t.Fatalf("Latest on empty archive = %d, %v, want 0, nil", id, err)
	}
	var last int64
	for i := 0; i < 3; i++ {
		id, err := db.Save(ctx, "bzip2", series())
		if err != nil {
			t.Fatal(err)
		}
		if id <= last {
			t.Errorf("Save returned id %d after %d", id, last)
		}
		last = id
	}
	if _, err := db.Save(ctx, "micro-bench", series()); err != nil {
		t.Fatal(err)
	}
	if id, err := db.Latest(ctx, "bzip2"); err != nil || id != last {
		t.Errorf("Latest(bzip2) = %d, %v, want %d", id, err, last)
	}
}

func TestSaveErrors(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)
	if _, err := db.Save(ctx, "empty", nil); err == nil {
		t.Error("Save of no series succeeded")
	}
	if _, err := db.Load(ctx, 42); err == nil {
		t.Error("Load of missing chart succeeded")
	}
}
