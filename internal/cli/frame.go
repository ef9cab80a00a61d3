// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/muesli/termenv"

	"github.com/katalvlaran/stepwise/core"
	"github.com/katalvlaran/stepwise/playback"
	"github.com/katalvlaran/stepwise/render"
	"github.com/katalvlaran/stepwise/trace"
)

var tagColors = map[render.Tag]string{
	render.TagCurrent:  "#f59e0b",
	render.TagVisited:  "#22c55e",
	render.TagFrontier: "#3b82f6",
	render.TagActive:   "#ef4444",
	render.TagTree:     "#a78bfa",
	render.TagPath:     "#f472b6",
	render.TagStacked:  "#3b82f6",
	render.TagPopped:   "#ef4444",
	render.TagResolved: "#22c55e",
	render.TagProbe:    "#f59e0b",
	render.TagFound:    "#22c55e",
	render.TagOutside:  "#6b7280",
	render.TagInserted: "#22c55e",
	render.TagRotated:  "#ef4444",
	render.TagTop:      "#a78bfa",
}

// frameWriter prints one snapshot per call. Compact mode summarizes tags
// by count instead of listing every decorated element.
type frameWriter struct {
	out     *termenv.Output
	compact bool
	width   int
}

func (fw frameWriter) tag(t render.Tag) string {
	return fw.out.String(string(t)).Foreground(fw.out.Color(tagColors[t])).String()
}

func (fw frameWriter) write(st playback.State, s *trace.Snapshot) {
	if s == nil {
		return
	}
	w := fw.out
	kind := w.String(fmt.Sprintf("%-9s", s.Kind)).Bold().String()
	fmt.Fprintf(w, "[%d/%d] %s %s\n", st.Index+1, st.Len, kind, s.Message)

	ds := render.Project(s)
	if fw.compact {
		fw.writeCounts(ds)
	} else {
		fw.writeElements(ds)
	}
	for _, line := range detail(s.State) {
		fmt.Fprintf(w, "      %s\n", line)
	}
}

// writeElements lists each decorated element once, tags joined, in first
// appearance order, wrapped at the terminal width. Widths are measured on
// the uncolored text; element ids and tag names are ASCII.
func (fw frameWriter) writeElements(ds []render.Decoration) {
	if len(ds) == 0 {
		return
	}
	var order []string
	tags := map[string][]string{}
	widths := map[string]int{}
	for _, d := range ds {
		if _, seen := tags[d.ElementID]; !seen {
			order = append(order, d.ElementID)
			widths[d.ElementID] = len(d.ElementID)
		}
		tags[d.ElementID] = append(tags[d.ElementID], fw.tag(d.Tag))
		widths[d.ElementID] += len(d.Tag) + 1
	}

	const indent = "      "
	var line strings.Builder
	visible := 0
	line.WriteString(indent)
	for _, id := range order {
		plain := widths[id]
		if visible > 0 && len(indent)+visible+plain > fw.width {
			fmt.Fprintln(fw.out, line.String())
			line.Reset()
			line.WriteString(indent)
			visible = 0
		}
		if visible > 0 {
			line.WriteString("  ")
			visible += 2
		}
		fmt.Fprintf(&line, "%s %s", id, strings.Join(tags[id], ","))
		visible += plain
	}
	fmt.Fprintln(fw.out, line.String())
}

func (fw frameWriter) writeCounts(ds []render.Decoration) {
	counts := map[render.Tag]int{}
	var order []render.Tag
	for _, d := range ds {
		if counts[d.Tag] == 0 {
			order = append(order, d.Tag)
		}
		counts[d.Tag]++
	}
	parts := make([]string, 0, len(order))
	for _, t := range order {
		parts = append(parts, fmt.Sprintf("%s=%d", fw.tag(t), counts[t]))
	}
	fmt.Fprintf(fw.out, "      tags: %s\n", strings.Join(parts, " "))
}

// detail renders the structure-specific values the decorations do not show.
func detail(st trace.State) []string {
	switch st := st.(type) {
	case trace.GraphState:
		if len(st.Distance) == 0 {
			return nil
		}
		ids := make([]core.NodeID, 0, len(st.Distance))
		for id := range st.Distance {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		parts := make([]string, 0, len(ids))
		for _, id := range ids {
			d := st.Distance[id]
			if math.IsInf(d, 1) {
				parts = append(parts, fmt.Sprintf("%d=inf", id))
				continue
			}
			parts = append(parts, fmt.Sprintf("%d=%g", id, d))
		}
		return []string{"dist " + strings.Join(parts, " ")}
	case trace.ArrayState:
		return []string{fmt.Sprintf("stack %v  answers %v", st.Stack, st.Answers)}
	case trace.SearchState:
		return []string{fmt.Sprintf("target %g  window [%d,%d]", st.Target, st.Lo, st.Hi)}
	case trace.ListState:
		line := fmt.Sprintf("%s %v", st.Mode, st.Items)
		if st.HasResult {
			line += fmt.Sprintf("  -> %g", st.Result)
		}
		return []string{line}
	case trace.TreeState:
		line := fmt.Sprintf("%d nodes", len(st.Nodes))
		if st.Root != trace.None {
			line += fmt.Sprintf(", root %g height %d", st.Nodes[st.Root].Value, st.Nodes[st.Root].Height)
		}
		if st.Rotation != "" {
			line += ", rotation " + st.Rotation
		}
		return []string{line}
	case trace.MatrixState:
		lines := make([]string, len(st.Cells))
		for i, row := range st.Cells {
			lines[i] = fmt.Sprint(row)
			if st.Labels != nil {
				lines[i] += fmt.Sprintf("  regions %v", st.Labels[i])
			}
		}
		return lines
	}

	return nil
}

// writeFrames prints every snapshot of the loaded trace by stepping player
// from the first snapshot to the last.
func writeFrames(player *playback.Controller, fw frameWriter) error {
	snap, err := player.Snapshot()
	if err != nil {
		return err
	}
	fw.write(player.State(), snap)
	for st := player.State(); st.Index < st.Len-1; st = player.State() {
		if err := player.Step(); err != nil {
			return err
		}
		snap, err := player.Snapshot()
		if err != nil {
			return err
		}
		fw.write(player.State(), snap)
	}

	return nil
}
