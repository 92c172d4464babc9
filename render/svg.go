// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart"
)

// SVG draws series on one set of axes with go-chart.
func SVG(w io.Writer, title string, series []Series) error {
	if len(series) == 0 {
		return ErrNoData
	}
	graph := chart.Chart{
		Title:      title,
		TitleStyle: chart.StyleShow(),
		Width:      Width,
		Height:     Height,
		XAxis: chart.XAxis{
			Name:      "t, s",
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
		YAxis: chart.YAxis{
			Name:      axisLabel(series),
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
	}
	for _, s := range series {
		s = s.finite()
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    s.Name,
			Style:   chart.Style{Show: true},
			XValues: s.X,
			YValues: s.Y,
		})
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render: svg: %w", err)
	}
	return nil
}
