// SPDX-License-Identifier: MIT

// Package render turns an integration trace into waveform files.
//
// FromTrace extracts one Series per state and per extra output. Series are
// grouped by unit so volts and amperes never share an axis:
//
//	PNG   gonum.org/v1/plot, one image per group
//	SVG   github.com/wcharczuk/go-chart, one image per group
//	HTML  github.com/go-echarts/go-echarts/v2, one page with a line chart per
//	      group and a force graph of the circuit topology
//
// WriteAll writes the selected formats into a directory with timestamped
// file names.
package render
