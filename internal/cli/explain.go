// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/stepwise/engine"
	"github.com/katalvlaran/stepwise/internal/config"
)

// note is the extra prose explain shows for one algorithm.
type note struct {
	cost  string
	kinds string
	body  string
}

var notes = map[string]note{
	"bfs": {
		cost:  "O(V + E)",
		kinds: "start, visit, discover, done",
		body:  "Nodes leave a FIFO queue in discovery order. Each discovered node records its hop distance from the start. `max_depth` stops discovery past that many hops.",
	},
	"dfs": {
		cost:  "O(V + E)",
		kinds: "start, visit, examine, finish, done",
		body:  "Neighbors are explored in insertion order before siblings. `full` restarts from every unvisited node so the trace covers the whole forest.",
	},
	"dijkstra": {
		cost:  "O(V^2 + E)",
		kinds: "start, visit, relax, path, done",
		body:  "The unvisited node with the smallest tentative distance is finalized next; ties go to the lower node. With `target` set the finished run adds a step highlighting the shortest path to it. Negative weights are rejected before the first snapshot.",
	},
	"prim": {
		cost:  "O(E log E)",
		kinds: "start, examine, accept, reject, done",
		body:  "Candidate edges leaving the tree wait in an ordered queue; the cheapest one is examined next. An edge whose far end is already in the tree is rejected. The graph must be undirected, weighted and connected.",
	},
	"kruskal": {
		cost:  "O(E log E)",
		kinds: "start, examine, accept, reject, done",
		body:  "Edges are examined in ascending weight order, ties by edge id. An edge is accepted when its endpoints lie in different components and rejected otherwise. The scan stops once the tree spans every node.",
	},
	"avl": {
		cost:  "O(log n) per insert",
		kinds: "start, compare, insert, duplicate, rebalance, rotate, done",
		body:  "Each value descends from the root by comparison. After insertion heights are updated on the way up and the first node with balance outside [-1, 1] is fixed with a single or double rotation.",
	},
	"next-greater": {
		cost:  "O(n)",
		kinds: "start, compare, push, pop, done",
		body:  "A monotonic stack holds indices still waiting for an answer. A larger value resolves every smaller index on top of the stack.",
	},
	"next-smaller": {
		cost:  "O(n)",
		kinds: "start, compare, push, pop, done",
		body:  "Mirror of next-greater: a smaller value resolves every larger index on top of the stack.",
	},
	"daily-temperatures": {
		cost:  "O(n)",
		kinds: "start, compare, push, pop, done",
		body:  "The answer for each day is the number of days until a warmer one, or 0 when none follows.",
	},
	"linear-search": {
		cost:  "O(n)",
		kinds: "start, probe, found, done",
		body:  "Indices are probed left to right until the target appears.",
	},
	"binary-search": {
		cost:  "O(log n)",
		kinds: "start, probe, found, done",
		body:  "The array must be sorted ascending. The window halves around the middle probe until the target is found or the window is empty.",
	},
	"stack": {
		cost:  "O(1) per operation",
		kinds: "start, push, pop, peek, done",
		body:  "Operations are `push v`, `pop` and `peek`, separated by commas, semicolons or newlines. Popping an empty stack is rejected before any snapshot.",
	},
	"queue": {
		cost:  "O(1) per operation",
		kinds: "start, push, pop, peek, done",
		body:  "Operations are `enqueue v`, `dequeue` and `front`. Dequeuing an empty queue is rejected before any snapshot.",
	},
	"islands": {
		cost:  "O(R·C)",
		kinds: "start, discover, visit, done",
		body:  "Cells are scanned row by row. Each unlabeled land cell seeds a new region, which is flood-filled breadth first before the scan continues. `threshold` sets the smallest land value (default 1) and `diagonal` lets corner-touching cells join.",
	},
	"rotate": {
		cost:  "O(n^2)",
		kinds: "start, swap, done",
		body:  "Rings are rotated from the outside in, cycling four cells per step. Only square matrices are accepted.",
	},
}

// NewExplainCommand creates the explain command.
func NewExplainCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "explain <algorithm>",
		Short:         "Describe an algorithm, its parameters and the steps it records",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := rootOpts.Registry.Lookup(args[0])
			if err != nil {
				return err
			}
			stdout := cmd.OutOrStdout()
			render, err := rootOpts.markdownRenderer(stdout)
			if err != nil {
				return err
			}
			text, err := render.Render(explainMarkdown(d))
			if err != nil {
				return fmt.Errorf("render %s: %w", d.Name, err)
			}
			_, err = fmt.Fprint(stdout, text)
			return err
		},
	}
}

// markdownRenderer picks a glamour style matching the color decision for w.
func (o *RootOptions) markdownRenderer(w io.Writer) (*glamour.TermRenderer, error) {
	out := o.output(w)
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width(w, defaultWidth))}
	switch {
	case out.Profile == termenv.Ascii:
		opts = append(opts, glamour.WithStandardStyle("notty"))
	case o.Config.Color == config.ColorAlways:
		opts = append(opts, glamour.WithStandardStyle("dark"), glamour.WithColorProfile(out.Profile))
	default:
		opts = append(opts, glamour.WithAutoStyle(), glamour.WithColorProfile(out.Profile))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("markdown renderer: %w", err)
	}

	return r, nil
}

func explainMarkdown(d engine.Descriptor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n\n", d.Name, d.Summary)
	fmt.Fprintf(&b, "- **Structure:** %s\n", d.Family)
	if n, ok := notes[d.Name]; ok {
		fmt.Fprintf(&b, "- **Cost:** %s\n", n.cost)
		fmt.Fprintf(&b, "- **Steps:** %s\n", n.kinds)
	}
	b.WriteString("\n## Parameters\n\n")
	if len(d.Params) == 0 {
		b.WriteString("None.\n")
	}
	for _, p := range d.Params {
		fmt.Fprintf(&b, "- `%s`\n", p)
	}
	if n, ok := notes[d.Name]; ok && n.body != "" {
		fmt.Fprintf(&b, "\n## How it runs\n\n%s\n", n.body)
	}

	return b.String()
}
