// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/statevar/integrate"
	"github.com/katalvlaran/statevar/statespace"
)

// Source is one input with its DC value.
type Source struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
}

// Run summarises an integration.
type Run struct {
	Step      float64   `yaml:"step"`
	Requested float64   `yaml:"requested"`
	Steps     int       `yaml:"steps"`
	Samples   int       `yaml:"samples"`
	Status    string    `yaml:"status"`
	Final     []float64 `yaml:"final"`
}

// Document is the machine-readable form of a report.
type Document struct {
	States    []string    `yaml:"states"`
	Inputs    []Source    `yaml:"inputs"`
	Outputs   []string    `yaml:"outputs"`
	A         [][]float64 `yaml:"a,flow"`
	B         [][]float64 `yaml:"b,flow"`
	C         [][]float64 `yaml:"c,flow"`
	D         [][]float64 `yaml:"d,flow"`
	X0        []float64   `yaml:"x0,flow"`
	Equations []string    `yaml:"equations"`
	Warnings  []string    `yaml:"warnings,omitempty"`
	Run       *Run        `yaml:"run,omitempty"`
}

// NewDocument captures sys and, when non-nil, the trace summary.
func NewDocument(sys *statespace.System, tr *integrate.Trace) (Document, error) {
	if sys == nil {
		return Document{}, ErrNilInput
	}
	doc := Document{
		States:   sys.StateNames(),
		A:        sys.A.RawRows(),
		B:        sys.B.RawRows(),
		C:        sys.C.RawRows(),
		D:        sys.D.RawRows(),
		X0:       sys.InitialState(),
		Warnings: append([]string(nil), sys.Warnings...),
	}
	for i, e := range sys.Inputs {
		doc.Inputs = append(doc.Inputs, Source{Name: e.ID(), Value: sys.U[i]})
	}
	for _, o := range sys.Outputs {
		doc.Outputs = append(doc.Outputs, o.Name)
	}
	for _, eq := range sys.Equations {
		doc.Equations = append(doc.Equations, eq.Format(sys.Variables()))
	}
	if tr != nil {
		doc.Run = &Run{
			Step:      tr.Step,
			Requested: tr.Requested,
			Steps:     tr.Steps,
			Samples:   tr.Len(),
			Status:    tr.Status.String(),
			Final:     tr.Final(),
		}
	}
	return doc, nil
}

// WriteYAML encodes doc with two-space indentation.
func WriteYAML(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("report: yaml: %w", err)
	}
	return enc.Close()
}
