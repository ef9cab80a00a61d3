// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/stepwise/avl"
	"github.com/katalvlaran/stepwise/builder"
	"github.com/katalvlaran/stepwise/core"
	"github.com/katalvlaran/stepwise/input"
	"github.com/katalvlaran/stepwise/playback"
	"github.com/katalvlaran/stepwise/render"
	"github.com/katalvlaran/stepwise/session"
	"github.com/katalvlaran/stepwise/trace"
)

// defaultWidth is used when stdout is not a terminal.
const defaultWidth = 100

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	GraphPath string
	Random    bool
	Directed  bool
	Weighted  bool
	Array     string
	Matrix    string
	Tree      string
	Params    []string
	Play      bool
	Compact   bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <algorithm>",
		Short: "Generate a trace and print it frame by frame",
		Long: `Run an algorithm once over the given structure and print every snapshot.

Graph parameters name nodes by value. Matrix rows are separated by ';'.

Examples:
  stepwise run bfs --graph graph.yaml -p start=1
  stepwise run dijkstra --random --weighted --seed 7 -p start=1 -p target=5
  stepwise run daily-temperatures --array "73 74 75 71 69 72 76 73"
  stepwise run avl --tree "5 3" -p values="8 1 2"
  stepwise run stack --array "1 2" -p ops="push 3, pop, peek"
  stepwise run prim --graph graph.yaml -p start=1
  stepwise run rotate --matrix "1,2,3;4,5,6;7,8,9" --play
  stepwise run islands --matrix "1,1,0;0,0,1;1,0,1" -p diagonal=true`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, opts, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.GraphPath, "graph", "", "YAML graph fixture")
	f.BoolVar(&opts.Random, "random", false, "generate a random graph")
	f.BoolVar(&opts.Directed, "directed", false, "random graph: one-way edges")
	f.BoolVar(&opts.Weighted, "weighted", false, "random graph: weighted edges")
	f.StringVar(&opts.Array, "array", "", "array values, comma or space separated")
	f.StringVar(&opts.Matrix, "matrix", "", "matrix rows separated by ';', values by ','")
	f.StringVar(&opts.Tree, "tree", "", "values inserted into the starting tree")
	f.StringArrayVarP(&opts.Params, "param", "p", nil, "algorithm parameter key=value (repeatable)")
	f.BoolVar(&opts.Play, "play", false, "replay on a timer instead of printing all frames at once")
	f.BoolVar(&opts.Compact, "compact", false, "summarize decorations by tag")
	cmd.MarkFlagsMutuallyExclusive("graph", "random")

	return cmd
}

func runRun(cmd *cobra.Command, opts *RunOptions, name string) error {
	if _, err := opts.Registry.Lookup(name); err != nil {
		return err
	}
	params, err := parseParams(opts.Params)
	if err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	fw := frameWriter{out: opts.output(stdout), compact: opts.Compact, width: width(stdout, defaultWidth)}

	var (
		done     = make(chan struct{})
		doneOnce sync.Once
		printed  = -1
	)
	sopts := []session.Option{
		session.WithLogger(opts.Logger),
		session.WithMetrics(opts.Recorder),
		session.WithRegistry(opts.Registry),
		session.WithPlayback(playback.WithDelay(opts.Config.Delay)),
	}
	if opts.Play {
		sopts = append(sopts, session.WithPlayback(playback.WithListener(func(st playback.State, s *trace.Snapshot) {
			if s != nil && st.Mode != playback.Ready && st.Index != printed {
				printed = st.Index
				fw.write(st, s)
			}
			if st.Mode == playback.Complete || st.Mode == playback.Idle {
				doneOnce.Do(func() { close(done) })
			}
		})))
	}
	s := session.New(sopts...)
	defer s.Close()

	if err := opts.load(s, stdout); err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	tr, err := s.Run(ctx, name, params)
	if err != nil {
		return err
	}
	if render.NeedsPanZoomAt(tr, opts.Config.PanZoomThreshold) {
		fw.compact = true
	}
	fmt.Fprintf(stdout, "%s: %d snapshots over %d elements\n", tr.Algorithm, tr.Len(), tr.ElementCount)

	if opts.Play {
		first, err := s.Player().Snapshot()
		if err != nil {
			return err
		}
		fw.write(s.Player().State(), first)
		printed = 0
		if err := s.Player().Play(); err != nil {
			return err
		}
		select {
		case <-done:
		case <-ctx.Done():
			_ = s.Player().Pause()
			return ctx.Err()
		}
	} else if err := writeFrames(s.Player(), fw); err != nil {
		return err
	}

	if opts.Metrics {
		return opts.dumpMetrics(stdout)
	}

	return nil
}

// load puts every structure named by flags into s.
func (o *RunOptions) load(s *session.Session, w io.Writer) error {
	switch {
	case o.GraphPath != "":
		g, err := LoadGraph(o.GraphPath)
		if err != nil {
			return err
		}
		if err := s.SetGraph(g); err != nil {
			return err
		}
	case o.Random:
		var gopts []core.GraphOption
		if o.Directed {
			gopts = append(gopts, core.WithDirected())
		}
		if o.Weighted {
			gopts = append(gopts, core.WithWeighted())
		}
		if err := s.SetGraph(core.NewGraph(gopts...)); err != nil {
			return err
		}
		var bopts []builder.Option
		if o.Config.Seed != 0 {
			bopts = append(bopts, builder.WithSeed(o.Config.Seed))
		}
		if _, err := s.GenerateGraph(bopts...); err != nil {
			return err
		}
		describeGraph(w, s.Graph())
	}
	if o.Array != "" {
		if err := s.ParseArray(o.Array); err != nil {
			return err
		}
	}
	if o.Matrix != "" {
		if err := s.ParseMatrix(strings.ReplaceAll(o.Matrix, ";", "\n")); err != nil {
			return err
		}
	}
	if o.Tree != "" {
		values, err := input.ParseArray(o.Tree)
		if err != nil {
			return err
		}
		t := avl.New()
		for _, v := range values {
			t.Insert(v)
		}
		s.SetTree(t)
	}

	return nil
}

// parseParams turns key=value pairs into a parameter map. Values stay text;
// the engine decoder converts them.
func parseParams(pairs []string) (map[string]any, error) {
	params := make(map[string]any, len(pairs))
	for i, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, &input.ParseError{Line: 1, Pos: i + 1, Token: p, Reason: "parameter must be key=value"}
		}
		params[key] = strings.TrimSpace(value)
	}

	return params, nil
}

// describeGraph prints node values and edges by value.
func describeGraph(w io.Writer, g *core.Graph) {
	nodes := g.Nodes()
	fmt.Fprintf(w, "graph: %d nodes %v\n", len(nodes), g.Values())
	parts := make([]string, 0, g.EdgeCount())
	for _, e := range g.Edges() {
		sep := "-"
		if e.Directed {
			sep = "->"
		}
		part := fmt.Sprintf("%d%s%d", nodes[e.From].Value, sep, nodes[e.To].Value)
		if g.Weighted() {
			part += fmt.Sprintf(":%g", e.Weight)
		}
		parts = append(parts, part)
	}
	fmt.Fprintf(w, "edges: %s\n", strings.Join(parts, " "))
}
