// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runseries

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	_ "gonum.org/v1/plot/vg/vgeps"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"
)

const (
	labelFontSize  = 20
	tickFontSize   = 16
	legendFontSize = 16

	markerRadius = 2.5
	dpi          = 300
)

// ChartOptions configures Chart and SaveChart.
type ChartOptions struct {
	// Name is the name of the chart. It selects the throughput
	// unit; see YLabel.
	Name string

	// Width and Height are the size of the saved chart. Zero
	// means 6.4in by 4.8in.
	Width, Height vg.Length
}

func (o ChartOptions) size() (vg.Length, vg.Length) {
	w, h := o.Width, o.Height
	if w == 0 {
		w = 6.4 * vg.Inch
	}
	if h == 0 {
		h = 4.8 * vg.Inch
	}
	return w, h
}

// ThroughputUnit returns the unit of throughput for the named chart.
func ThroughputUnit(name string) string {
	switch name {
	case "micro-bench":
		return "lines/sec"
	case "eye-detector":
		return "frames/sec"
	case "image-processing":
		return "images/sec"
	}
	return "chunks/sec"
}

// YLabel returns the y-axis label for m on the named chart.
func YLabel(m Metric, name string) string {
	switch m {
	case Speedup:
		return "Speedup"
	case Efficiency:
		return "Efficiency (%)"
	}
	return "Throughput (" + ThroughputUnit(name) + ")"
}

type seriesStyle struct {
	line  draw.LineStyle
	glyph draw.GlyphStyle
}

var (
	orange = color.RGBA{R: 0xFF, G: 0xA5, A: 0xFF}
	green  = color.RGBA{G: 0x80, A: 0xFF}
)

// styleFor returns the style of the i'th series. The two compared
// runtimes have fixed styles; others cycle through plotutil's.
func styleFor(i int, s *Series) seriesStyle {
	st := seriesStyle{
		line:  draw.LineStyle{Width: vg.Points(1)},
		glyph: draw.GlyphStyle{Radius: vg.Points(markerRadius)},
	}
	switch s.Runtime {
	case MPIRuntime:
		st.line.Color, st.glyph.Color = orange, orange
		st.line.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
		st.glyph.Shape = draw.BoxGlyph{}
	case OursRuntime:
		st.line.Color, st.glyph.Color = green, green
		st.line.Dashes = []vg.Length{vg.Points(1), vg.Points(2)}
		st.glyph.Shape = draw.TriangleGlyph{}
	default:
		c := plotutil.Color(i)
		st.line.Color, st.glyph.Color = c, c
		st.line.Dashes = plotutil.Dashes(i)
		st.glyph.Shape = plotutil.Shape(i)
	}
	return st
}

func (st seriesStyle) thumbnails() []plot.Thumbnailer {
	return []plot.Thumbnailer{
		&plotter.Line{LineStyle: st.line},
		&plotter.Scatter{GlyphStyle: st.glyph},
	}
}

// errorPoints are XY points with symmetric Y error bars.
type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

func pointsOf(s *Series) errorPoints {
	ep := errorPoints{
		XYs:     make(plotter.XYs, len(s.Points)),
		YErrors: make(plotter.YErrors, len(s.Points)),
	}
	for i, p := range s.Points {
		ep.XYs[i].X = float64(p.Stage())
		ep.XYs[i].Y = p.Value
		ep.YErrors[i].Low = p.Err
		ep.YErrors[i].High = p.Err
	}
	return ep
}

// Chart plots series against the number of replicated stages, one
// line with error bars per series. All series must derive the same
// metric.
func Chart(series []*Series, opts ChartOptions) (*plot.Plot, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("no series to chart")
	}
	m := series[0].Metric

	pl := plot.New()
	pl.X.Label.Text = "Replicated Stages"
	pl.X.Label.TextStyle.Font.Size = labelFontSize
	pl.Y.Label.Text = YLabel(m, opts.Name)
	pl.Y.Label.TextStyle.Font.Size = labelFontSize
	pl.X.Tick.Label.Font.Size = tickFontSize
	pl.Y.Tick.Label.Font.Size = tickFontSize

	stages := make(map[int]bool)
	for i, s := range series {
		if s.Metric != m {
			return nil, fmt.Errorf("series %s is %v, want %v", s.Label, s.Metric, m)
		}
		ep := pointsOf(s)
		line, points, err := plotter.NewLinePoints(ep.XYs)
		if err != nil {
			return nil, fmt.Errorf("series %s: %w", s.Label, err)
		}
		bars, err := plotter.NewYErrorBars(ep)
		if err != nil {
			return nil, fmt.Errorf("series %s: %w", s.Label, err)
		}
		st := styleFor(i, s)
		line.LineStyle = st.line
		points.GlyphStyle = st.glyph
		bars.LineStyle.Color = st.line.Color
		bars.LineStyle.Width = vg.Points(0.5)
		bars.CapWidth = vg.Points(6)

		pl.Add(line, points, bars)
		pl.Legend.Add(s.Label, line, points)

		for _, p := range s.Points {
			if !p.Baseline {
				stages[p.Stage()] = true
			}
		}
	}
	if len(stages) > 0 {
		pl.X.Tick.Marker = stageTicks(stages)
	}

	pl.Legend.Top = true
	pl.Legend.Left = true
	pl.Legend.TextStyle.Font.Size = legendFontSize
	return pl, nil
}

func stageTicks(stages map[int]bool) plot.ConstantTicks {
	var ticks plot.ConstantTicks
	for s := range stages {
		ticks = append(ticks, plot.Tick{Value: float64(s), Label: strconv.Itoa(s)})
	}
	sort.Slice(ticks, func(i, j int) bool {
		return ticks[i].Value < ticks[j].Value
	})
	return ticks
}

// SaveChart writes pl to path. The image format is taken from the
// extension of path.
func SaveChart(pl *plot.Plot, path string, opts ChartOptions) error {
	w, h := opts.size()
	can, err := newCanvas(w, h, path)
	if err != nil {
		return err
	}
	pl.Draw(draw.New(can))
	return writeCanvas(path, can)
}

// SaveLegend writes a standalone legend for series to path. If
// horizontal is set, the entries are laid out in a single row
// instead of a column.
func SaveLegend(series []*Series, path string, horizontal bool) error {
	if len(series) == 0 {
		return fmt.Errorf("no series for legend")
	}
	base := plot.New().Legend
	base.TextStyle.Font.Size = legendFontSize
	base.Top = true
	base.Left = true

	rowH := base.TextStyle.Height("Mg") + base.Padding
	entryW := func(label string) vg.Length {
		return base.ThumbnailWidth + 2*base.Padding + base.TextStyle.Width(label)
	}

	var w, h vg.Length
	if horizontal {
		for _, s := range series {
			w += entryW(s.Label) + base.Padding
		}
		h = rowH
	} else {
		for _, s := range series {
			if ew := entryW(s.Label); ew > w {
				w = ew
			}
		}
		h = vg.Length(len(series)) * rowH
	}
	w += 2 * base.Padding
	h += 2 * base.Padding

	can, err := newCanvas(w, h, path)
	if err != nil {
		return err
	}
	dc := draw.Crop(draw.New(can), base.Padding, -base.Padding, base.Padding, -base.Padding)
	if horizontal {
		x := dc.Min.X
		for i, s := range series {
			leg := base
			leg.Add(s.Label, styleFor(i, s).thumbnails()...)
			sub := dc
			sub.Min.X = x
			sub.Max.X = x + entryW(s.Label)
			leg.Draw(sub)
			x = sub.Max.X + base.Padding
		}
	} else {
		leg := base
		for i, s := range series {
			leg.Add(s.Label, styleFor(i, s).thumbnails()...)
		}
		leg.Draw(dc)
	}
	return writeCanvas(path, can)
}

// newCanvas returns a canvas for the image format named by the
// extension of path.
func newCanvas(w, h vg.Length, path string) (vg.CanvasWriterTo, error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch format {
	case "":
		return nil, fmt.Errorf("%s: missing image format extension", path)
	case "png":
		return vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h),
			vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(color.White))}, nil
	}
	can, err := draw.NewFormattedCanvas(w, h, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return can, nil
}

func writeCanvas(path string, can vg.CanvasWriterTo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := can.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
