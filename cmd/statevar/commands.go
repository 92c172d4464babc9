// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/statevar/element"
	"github.com/katalvlaran/statevar/integrate"
	"github.com/katalvlaran/statevar/netlist"
	"github.com/katalvlaran/statevar/presets"
	"github.com/katalvlaran/statevar/render"
	"github.com/katalvlaran/statevar/report"
	"github.com/katalvlaran/statevar/simulator"
	"github.com/katalvlaran/statevar/statespace"
)

func (a *app) simulateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate <netlist>",
		Short: "Simulate a circuit read from a netlist file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			elems, err := netlist.ReadFile(args[0], netlist.WithLogger(a.log))
			if err != nil {
				return err
			}
			name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			return a.run(cmd.OutOrStdout(), name, elems, nil)
		},
	}
}

func (a *app) demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "demo <" + strings.Join(presets.Names(), "|") + ">",
		Short:     "Simulate a built-in circuit",
		Args:      cobra.ExactArgs(1),
		ValidArgs: presets.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := presets.ByName(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", p.Name, p.Description)
			return a.run(cmd.OutOrStdout(), p.Name, p.Elements, p.Outputs)
		},
	}
}

func (a *app) inspectCmd() *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "inspect <netlist>",
		Short: "Print topology, Kirchhoff equations and matrices without integrating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			elems, err := netlist.ReadFile(args[0], netlist.WithLogger(a.log))
			if err != nil {
				return err
			}
			opts, err := a.options(nil)
			if err != nil {
				return err
			}
			res, err := simulator.Prepare(elems, opts...)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if asYAML {
				doc, err := report.NewDocument(res.System, nil)
				if err != nil {
					return err
				}
				return report.WriteYAML(w, doc)
			}
			return a.printModel(w, res)
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "dump the state-space model as YAML")
	return cmd
}

// options translates the configuration into simulator options.
func (a *app) options(outputs statespace.OutputPolicy) ([]simulator.Option, error) {
	total, err := a.duration(keyTime)
	if err != nil {
		return nil, err
	}
	step, err := a.duration(keyStep)
	if err != nil {
		return nil, err
	}
	integ := []integrate.Option{integrate.WithSafetyFactor(a.v.GetFloat64(keySafety))}
	if a.v.GetBool(keyFixedStep) {
		integ = append(integ, integrate.WithFixedStep())
	}
	opts := []simulator.Option{
		simulator.WithLogger(a.log),
		simulator.WithWindow(total, step),
		simulator.WithIntegrator(integ...),
	}
	if outputs != nil {
		opts = append(opts, simulator.WithOutputs(outputs))
	}
	if a.v.GetBool(keyAllowDisconnected) {
		opts = append(opts, simulator.WithAllowDisconnected())
	}
	return opts, nil
}

func (a *app) printModel(w io.Writer, res *simulator.Result) error {
	if err := report.GraphInfo(w, res.Loops); err != nil {
		return err
	}
	if a.v.GetBool(keyReportEquations) {
		if err := report.Kirchhoff(w, res.Loops); err != nil {
			return err
		}
	}
	if err := report.Equations(w, res.System); err != nil {
		return err
	}
	return report.Matrices(w, res.System)
}

// run simulates, prints the report and writes plots. A diverged run still
// prints and plots its finite samples before the error is returned.
func (a *app) run(w io.Writer, name string, elems []element.Element, outputs statespace.OutputPolicy) error {
	opts, err := a.options(outputs)
	if err != nil {
		return err
	}
	res, simErr := simulator.Simulate(elems, opts...)
	if simErr != nil && (res == nil || res.Trace == nil) {
		return simErr
	}
	if simErr != nil && !errors.Is(simErr, integrate.ErrUnstable) {
		return simErr
	}

	if err := a.printModel(w, res); err != nil {
		return err
	}
	if err := report.Results(w, res.Trace, res.System, a.v.GetInt(keyReportRows)); err != nil {
		return err
	}
	fmt.Fprintln(w, res.Summary())

	if err := a.plot(w, name, res); err != nil {
		return err
	}
	return simErr
}

func (a *app) plot(w io.Writer, name string, res *simulator.Result) error {
	formats, err := render.ParseFormats(a.v.GetString(keyPlotFormat))
	if err != nil || len(formats) == 0 {
		return err
	}
	series, err := render.FromTrace(res.Trace, res.System)
	if err != nil {
		return err
	}
	title := a.v.GetString(keyPlotTitle)
	if title == "" {
		title = name
	}
	paths, err := render.WriteAll(render.Job{
		Dir:     a.v.GetString(keyPlotDir),
		Base:    name,
		Title:   title,
		Formats: formats,
		Series:  series,
		Graph:   res.Graph,
	})
	for _, p := range paths {
		fmt.Fprintf(w, "wrote %s\n", p)
	}
	return err
}
