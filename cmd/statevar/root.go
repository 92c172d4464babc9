// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/statevar/integrate"
	"github.com/katalvlaran/statevar/netlist"
)

// Configuration keys.
const (
	keyTime              = "time"
	keyStep              = "step"
	keySafety            = "safety"
	keyFixedStep         = "fixed-step"
	keyPlotDir           = "plot.dir"
	keyPlotFormat        = "plot.format"
	keyPlotTitle         = "plot.title"
	keyReportEquations   = "report.equations"
	keyReportRows        = "report.rows"
	keyAllowDisconnected = "allow-disconnected"
	keyVerbose           = "verbose"
)

// app carries the state shared by all subcommands.
type app struct {
	v       *viper.Viper
	cfgFile string
	log     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:          "statevar",
		Short:        "State-variable simulator for linear RLC circuits",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.cfgFile, "config", "", "config file (default ./statevar.yaml or $HOME/.config/statevar/statevar.yaml)")
	f.String(keyTime, "", "simulated time, e.g. 5m or 0.005 (empty: recommended)")
	f.String(keyStep, "", "requested step, e.g. 10u (empty: recommended)")
	f.Float64(keySafety, integrate.DefaultSafety, "stability safety factor")
	f.Bool(keyFixedStep, false, "use the requested step without the stability bound")
	f.String("plot-dir", "plots", "directory for plot files")
	f.String("plot-format", "", "plot formats: png, svg, html, all or none")
	f.String("plot-title", "", "plot title (default: circuit name)")
	f.Bool("equations", true, "print Kirchhoff equations")
	f.Int("rows", 11, "result rows to print")
	f.Bool(keyAllowDisconnected, false, "simulate networks whose tree does not span every node")
	f.BoolP(keyVerbose, "v", false, "debug logging")

	bind := map[string]string{
		keyTime:              keyTime,
		keyStep:              keyStep,
		keySafety:            keySafety,
		keyFixedStep:         keyFixedStep,
		keyPlotDir:           "plot-dir",
		keyPlotFormat:        "plot-format",
		keyPlotTitle:         "plot-title",
		keyReportEquations:   "equations",
		keyReportRows:        "rows",
		keyAllowDisconnected: keyAllowDisconnected,
		keyVerbose:           keyVerbose,
	}
	for key, flag := range bind {
		if err := a.v.BindPFlag(key, f.Lookup(flag)); err != nil {
			panic(err)
		}
	}
	a.v.SetEnvPrefix("STATEVAR")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(a.simulateCmd(), a.inspectCmd(), a.demoCmd())
	return root
}

// init reads the config file and installs the logger.
func (a *app) init(stderr io.Writer) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.SetConfigName("statevar")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(filepath.Join(home, ".config", "statevar"))
		}
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("config: %w", err)
		}
	}

	level := slog.LevelInfo
	if a.v.GetBool(keyVerbose) {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.Debug("config loaded", slog.String("file", used))
	}
	return nil
}

// duration reads a time setting; an empty value means "recommend".
func (a *app) duration(key string) (float64, error) {
	s := strings.TrimSpace(a.v.GetString(key))
	if s == "" {
		return 0, nil
	}
	d, err := netlist.ParseValue(s)
	if err != nil {
		return 0, fmt.Errorf("--%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("--%s must be positive, got %s", key, s)
	}
	return d, nil
}
