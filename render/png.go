// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Image size shared by the PNG and SVG writers.
const (
	Width  = 1280
	Height = 720
)

// PNG draws series on one set of axes with gonum/plot.
func PNG(w io.Writer, title string, series []Series) error {
	if len(series) == 0 {
		return ErrNoData
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "t, s"
	p.Y.Label.Text = axisLabel(series)
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	for i, s := range series {
		s = s.finite()
		pts := make(plotter.XYs, len(s.X))
		for k := range pts {
			pts[k].X, pts[k].Y = s.X[k], s.Y[k]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("render: png %s: %w", s.Name, err)
		}
		line.LineStyle.Color = plotutil.Color(i)
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}

	wt, err := p.WriterTo(vg.Points(Width*0.75), vg.Points(Height*0.75), "png")
	if err != nil {
		return fmt.Errorf("render: png: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("render: png: %w", err)
	}
	return nil
}

// axisLabel names the y axis after the group of the first series.
func axisLabel(series []Series) string {
	s := series[0]
	if s.Unit == "" {
		return s.Group()
	}
	return s.Group() + ", " + s.Unit
}
