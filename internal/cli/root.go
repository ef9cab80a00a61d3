// SPDX-License-Identifier: MIT

// Package cli implements the stepwise command line: run an algorithm over a
// structure and print its trace frame by frame, list the engines, and
// explain one of them.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/katalvlaran/stepwise/engine"
	"github.com/katalvlaran/stepwise/fault"
	"github.com/katalvlaran/stepwise/internal/config"
	"github.com/katalvlaran/stepwise/internal/logging"
	"github.com/katalvlaran/stepwise/internal/metrics"
)

// Exit codes.
const (
	ExitSuccess      = 0 // success
	ExitFailure      = 1 // unclassified failure (I/O, flags)
	ExitInput        = 2 // parse, precondition or empty-structure error
	ExitEngineDefect = 3 // an engine broke after its preconditions held
)

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, fault.ErrEngineDefect):
		return ExitEngineDefect
	case fault.IsPrecondition(err):
		return ExitInput
	}

	return ExitFailure
}

// RootOptions holds global flags and the state resolved from them before
// any subcommand runs.
type RootOptions struct {
	ConfigPath string
	Delay      time.Duration
	Seed       int64
	LogLevel   string
	LogFormat  string
	Color      string
	Metrics    bool

	// Resolved in PersistentPreRunE.
	Config   config.Config
	Logger   *slog.Logger
	Registry *engine.Registry
	Gatherer *prometheus.Registry
	Recorder *metrics.Recorder
}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "stepwise",
		Short: "Step through classical algorithms one state change at a time",
		Long: `stepwise runs an algorithm once over a graph, tree, array or matrix,
records every meaningful state change as an immutable snapshot, and replays
the snapshots in the terminal.

Settings resolve as defaults, then --config YAML, then STEPWISE_* variables,
then flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.resolve(cmd)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.ConfigPath, "config", "", "YAML config file")
	f.DurationVar(&opts.Delay, "delay", 0, "playback delay per frame")
	f.Int64Var(&opts.Seed, "seed", 0, "random graph seed (0 seeds from the clock)")
	f.StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	f.StringVar(&opts.LogFormat, "log-format", "", "log format (text|json)")
	f.StringVar(&opts.Color, "color", "", "color output (auto|always|never)")
	f.BoolVar(&opts.Metrics, "metrics", false, "print collected metrics on exit")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewExplainCommand(opts))

	return cmd
}

// resolve layers flags over the loaded configuration and builds the shared
// logger, registry and metrics.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("delay") {
		cfg.Delay = o.Delay
	}
	if flags.Changed("seed") {
		cfg.Seed = o.Seed
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.LogLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = o.LogFormat
	}
	if flags.Changed("color") {
		cfg.Color = o.Color
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	o.Config = cfg
	o.Logger = logging.New(cmd.ErrOrStderr(), level, cfg.LogFormat)
	o.Registry = engine.Builtin()
	o.Gatherer = prometheus.NewRegistry()
	o.Recorder = metrics.New(o.Gatherer)

	return nil
}

// output wraps w with the color profile the configuration asks for. In
// auto mode color is used only when w is a terminal.
func (o *RootOptions) output(w io.Writer) *termenv.Output {
	profile := termenv.Ascii
	switch o.Config.Color {
	case config.ColorAlways:
		profile = termenv.ANSI256
	case config.ColorAuto:
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			profile = termenv.EnvColorProfile()
		}
	}

	return termenv.NewOutput(w, termenv.WithProfile(profile))
}

// width returns the terminal width of w, or fallback when w is not a
// terminal.
func width(w io.Writer, fallback int) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			return cols
		}
	}

	return fallback
}

// dumpMetrics prints every gathered sample as name{labels} value.
func (o *RootOptions) dumpMetrics(w io.Writer) error {
	families, err := o.Gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := ""
			for i, lp := range m.GetLabel() {
				if i > 0 {
					labels += ","
				}
				labels += fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(w, "%s{%s} %g\n", mf.GetName(), labels, m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				fmt.Fprintf(w, "%s_count{%s} %d\n", mf.GetName(), labels, h.GetSampleCount())
				fmt.Fprintf(w, "%s_sum{%s} %g\n", mf.GetName(), labels, h.GetSampleSum())
			}
		}
	}

	return nil
}
