// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/katalvlaran/statevar/topology"
)

// Graph categories for the topology chart.
const (
	categoryNode = iota
	categoryTree
	categoryChord
)

// HTML writes an interactive page: the circuit topology when g is not nil,
// then one line chart per series group.
func HTML(w io.Writer, title string, series []Series, g *topology.Graph) error {
	if len(series) == 0 {
		return ErrNoData
	}
	page := components.NewPage()
	page.PageTitle = title
	if g != nil {
		page.AddCharts(topologyChart(g))
	}
	order, groups := Grouped(series)
	for _, name := range order {
		page.AddCharts(lineChart(title, name, groups[name]))
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render: html: %w", err)
	}
	return nil
}

func lineChart(title, group string, series []Series) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: axisLabel(series),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:        "t, s",
			SplitNumber: 20,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  group,
			Scale: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
	)

	x := series[0].X
	labels := make([]string, len(x))
	for k, t := range x {
		labels[k] = strconv.FormatFloat(t, 'g', 4, 64)
	}
	line.SetXAxis(labels)
	for _, s := range series {
		s = s.finite()
		data := make([]opts.LineData, len(s.Y))
		for k, v := range s.Y {
			data[k] = opts.LineData{Value: v}
		}
		line.AddSeries(s.Name, data)
	}
	return line
}

// topologyChart draws circuit nodes and elements as a force graph; every
// element links to both of its terminals.
func topologyChart(g *topology.Graph) *charts.Graph {
	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Circuit topology",
			Subtitle: fmt.Sprintf("%d tree branches, %d chords", g.TreeLen(), g.ChordLen()),
		}),
	)

	nodeName := func(n int) string { return "node " + strconv.Itoa(n) }
	nodes := make([]opts.GraphNode, 0, g.NodeCount()+len(g.Elements()))
	for _, n := range g.Nodes() {
		gn := opts.GraphNode{
			Name:     nodeName(n),
			Category: categoryNode,
			Tooltip:  &opts.Tooltip{Show: opts.Bool(true)},
		}
		if n == 0 {
			gn.ItemStyle = &opts.ItemStyle{Color: "#000000de"}
		}
		nodes = append(nodes, gn)
	}
	var links []opts.GraphLink
	for _, e := range g.Elements() {
		cat := categoryChord
		if g.IsTree(e.ID()) {
			cat = categoryTree
		}
		nodes = append(nodes, opts.GraphNode{
			Name:     e.ID(),
			Category: cat,
			Value:    float32(e.Value()),
			Tooltip:  &opts.Tooltip{Show: opts.Bool(true)},
		})
		links = append(links,
			opts.GraphLink{Source: e.ID(), Target: nodeName(e.NodeA())},
			opts.GraphLink{Source: e.ID(), Target: nodeName(e.NodeB())},
		)
	}

	graph.AddSeries("circuit", nodes, links,
		charts.WithGraphChartOpts(opts.GraphChart{
			Layout: "force",
			Categories: []*opts.GraphCategory{
				{Name: "node", ItemStyle: &opts.ItemStyle{Color: "#1987c7b7"}},
				{Name: "tree", ItemStyle: &opts.ItemStyle{Color: "#19c77bb7"}},
				{Name: "chord", ItemStyle: &opts.ItemStyle{Color: "#c71979b7"}},
			},
			Roam:               opts.Bool(true),
			Force:              &opts.GraphForce{Repulsion: 120},
			FocusNodeAdjacency: opts.Bool(true),
		}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "right"}),
	)
	return graph
}
