// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Scaleplot charts how parallel runtimes scale with the number of
// workers.
//
// Usage:
//
//	scaleplot [flags] <data-directory> <chart-name>
//
// The data directory holds one file per measured configuration, named
// "<runtime>-<workers>", each listing one elapsed time per line. The
// optional file SEQUENTIAL holds the times of the sequential baseline
// and ITEMS holds the workload size. Other files are ignored.
//
// Scaleplot summarizes each configuration by the mean and population
// standard deviation of its times and plots one of three metrics
// against the number of replicated stages (workers - 1):
//
//	throughput  items / mean
//	speedup     baseline mean / mean
//	efficiency  100 * speedup / workers
//
// Error bars show how far the metric falls when the mean grows by one
// standard deviation.
//
// The chart is written to <chart-name>.<format> in the directory
// named by -o. The chart name also selects the throughput unit:
// micro-bench (lines/sec), eye-detector (frames/sec),
// image-processing (images/sec), or anything else (chunks/sec).
//
// The -legend and -legend-row flags additionally write the legend on
// its own, as a column or as a row, for use in papers where several
// charts share one legend.
//
// The -table, -csv and -html flags report the summarized runs and
// derived metric as text, CSV, or HTML. The -db flag archives the
// derived series in a sqlite3 or mysql database. With -compare, the
// chart also shows the series last archived under the same chart name,
// labeled with the time they were archived.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sparrust/scaleplot/internal/archive"
	"github.com/sparrust/scaleplot/internal/report"
	"github.com/sparrust/scaleplot/runfmt"
	"github.com/sparrust/scaleplot/runseries"
)

var exit = os.Exit // replaced during testing

// errUsage reports a command line that was rejected after printing
// the usage message.
var errUsage = errors.New("usage")

func main() {
	log.SetPrefix("scaleplot: ")
	log.SetFlags(0)

	err := scaleplot(os.Stdout, os.Stderr, os.Args[1:])
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
		exit(0)
	case errors.Is(err, errUsage):
		exit(2)
	default:
		log.Print(err)
		exit(1)
	}
}

func usage(w io.Writer, flags *flag.FlagSet) {
	fmt.Fprintf(w, "usage: scaleplot [flags] <data-directory> <chart-name>\n")
	fmt.Fprintf(w, "flags:\n")
	flags.PrintDefaults()
}

func scaleplot(w, wErr io.Writer, args []string) error {
	flags := flag.NewFlagSet("scaleplot", flag.ContinueOnError)
	flags.SetOutput(wErr)
	flags.Usage = func() { usage(wErr, flags) }

	var (
		flagMetric    = flags.String("metric", "throughput", "plot `metric`: throughput, speedup, or efficiency")
		flagFormat    = flags.String("format", "pdf", "image `format` of the chart: pdf, svg, png, eps, jpg, or tif")
		flagOut       = flags.String("o", ".", "write images into `dir`")
		flagOurs      = flags.String("ours", runseries.DefaultOursLabel, "display `label` of the "+runseries.OursRuntime+" runtime")
		flagBaseline  = flags.Bool("baseline", true, "start every series at the sequential baseline")
		flagCombine   = flags.Bool("combine", false, "pool the measurements of duplicate runs instead of keeping the last")
		flagLegend    = flags.Bool("legend", false, "also write the legend as a column to <chart-name>-legend.<format>")
		flagLegendRow = flags.Bool("legend-row", false, "also write the legend as a row to <chart-name>-legend-row.<format>")
		flagTable     = flags.Bool("table", false, "print a summary table")
		flagCSV       = flags.Bool("csv", false, "print the derived series in CSV form")
		flagHTML      = flags.String("html", "", "write an HTML summary to `file`")
		flagDB        = flags.String("db", "", "archive the derived series in the database at `dsn`")
		flagDBDriver  = flags.String("dbdriver", "sqlite3", "database `driver` for -db: sqlite3 or mysql")
		flagCompare   = flags.Bool("compare", false, "overlay the chart of the same name last archived in -db")
		flagVerbose   = flags.Bool("v", false, "report skipped files and archive IDs")
	)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errUsage
	}
	if flags.NArg() < 2 {
		flags.Usage()
		return errUsage
	}
	dataDir, name := flags.Arg(0), flags.Arg(1)
	if *flagCompare && *flagDB == "" {
		return fmt.Errorf("-compare requires -db")
	}

	metric, err := runseries.ParseMetric(*flagMetric)
	if err != nil {
		return err
	}

	warn := func(format string, args ...interface{}) {
		fmt.Fprintf(wErr, format, args...)
	}

	dir := runfmt.OpenDir(dataDir)
	if *flagVerbose {
		dir.Warn = warn
	}
	recs, err := dir.Records()
	if err != nil {
		return err
	}

	bo := runseries.DefaultBuilderOptions()
	bo.Labeler = runseries.Labeler{Ours: *flagOurs}
	bo.IncludeBaseline = *flagBaseline
	if *flagCombine {
		bo.Dupes = runseries.DupeCombine
	}
	bo.Warn = warn
	b := runseries.NewBuilder(bo)
	b.AddRecords(recs)
	c := b.Build()

	if len(c.Runs()) == 0 {
		return fmt.Errorf("%s: no runs", dataDir)
	}
	if _, ok := c.Items(); !ok && metric == runseries.Throughput {
		warn("%s: no %s file; throughput will be zero\n", dataDir, runfmt.ItemCountName)
	}
	if _, ok := c.Baseline(); !ok && metric != runseries.Throughput {
		warn("%s: no %s file; %v is undefined\n", dataDir, runfmt.BaselineName, metric)
	}

	series := c.Series(metric)

	// Text outputs come first so they are produced even when the
	// derived values cannot be charted.
	if *flagTable {
		if err := report.New(name, c, metric).WriteText(w); err != nil {
			return err
		}
	}
	if *flagCSV {
		if err := runseries.WriteCSV(w, series); err != nil {
			return err
		}
	}

	var db *archive.DB
	if *flagDB != "" {
		db, err = archive.OpenSQL(*flagDBDriver, *flagDB)
		if err != nil {
			return fmt.Errorf("open %s database: %w", *flagDBDriver, err)
		}
		defer db.Close()
	}
	ctx := context.Background()

	charted := series
	if *flagCompare {
		old, err := archivedSeries(ctx, db, name, metric, warn)
		if err != nil {
			return err
		}
		charted = append(append([]*runseries.Series(nil), series...), old...)
	}

	opts := runseries.ChartOptions{Name: name}
	chartPath := filepath.Join(*flagOut, name+"."+*flagFormat)
	pl, err := runseries.Chart(charted, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := runseries.SaveChart(pl, chartPath, opts); err != nil {
		return err
	}
	if *flagLegend {
		if err := runseries.SaveLegend(charted, filepath.Join(*flagOut, name+"-legend."+*flagFormat), false); err != nil {
			return err
		}
	}
	if *flagLegendRow {
		if err := runseries.SaveLegend(charted, filepath.Join(*flagOut, name+"-legend-row."+*flagFormat), true); err != nil {
			return err
		}
	}

	if *flagHTML != "" {
		if err := writeHTML(*flagHTML, chartPath, report.New(name, c, metric)); err != nil {
			return err
		}
	}
	if db != nil {
		id, err := db.Save(ctx, name, series)
		if err != nil {
			return err
		}
		if *flagVerbose {
			warn("archived %s as chart %d\n", name, id)
		}
	}
	return nil
}

func writeHTML(path, chartPath string, r *report.Report) error {
	r.Chart = chartPath
	if rel, err := filepath.Rel(filepath.Dir(path), chartPath); err == nil {
		r.Chart = filepath.ToSlash(rel)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.WriteHTML(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// archivedSeries returns the series of the chart most recently
// archived under name, relabeled to set them apart from the current
// ones. It returns nil if there is no such chart or if it plots a
// different metric.
func archivedSeries(ctx context.Context, db *archive.DB, name string, m runseries.Metric, warn func(string, ...interface{})) ([]*runseries.Series, error) {
	id, err := db.Latest(ctx, name)
	if err != nil {
		return nil, err
	}
	if id == 0 {
		warn("no archived chart %s to compare with\n", name)
		return nil, nil
	}
	old, err := db.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if old.Metric != m {
		warn("archived chart %s (%d) plots %v, not %v; not comparing\n", name, id, old.Metric, m)
		return nil, nil
	}
	stamp := old.Created.UTC().Format("2006-01-02 15:04")
	for _, s := range old.Series {
		s.Runtime = fmt.Sprintf("%s@%d", s.Runtime, id)
		s.Label = fmt.Sprintf("%s (%s)", s.Label, stamp)
	}
	return old.Series, nil
}
