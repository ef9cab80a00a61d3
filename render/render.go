// SPDX-License-Identifier: MIT
//
// Package render projects a snapshot onto an ordered list of element
// decorations for an external presentation layer.
//
// Element identifiers:
//
//	node:<id>      graph node
//	edge:<id>      graph edge
//	cell:<i>       array element
//	cell:<r>,<c>   matrix element
//	tree:<id>      tree node
//	item:<i>       stack/queue slot, bottom/front first
//
// Project is pure: it reads the snapshot and allocates a fresh result.
// Elements with no decoration are omitted.
package render

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/stepwise/core"
	"github.com/katalvlaran/stepwise/trace"
)

// PanZoomThreshold is the element count at which a presentation layer is
// expected to switch to a pan/zoom strategy.
const PanZoomThreshold = 100

// Tag is a decoration class.
type Tag string

// Decoration tags.
const (
	TagCurrent  Tag = "current"  // element being processed
	TagVisited  Tag = "visited"  // finalized / visited
	TagFrontier Tag = "frontier" // queued, stacked or candidate
	TagActive   Tag = "active"   // edge or cells touched by this step
	TagTree     Tag = "tree"     // edge of the search tree
	TagPath     Tag = "path"     // on the highlighted path
	TagStacked  Tag = "stacked"  // index held on the monotonic stack
	TagPopped   Tag = "popped"   // index popped by this step
	TagResolved Tag = "resolved" // index whose answer is known
	TagProbe    Tag = "probe"    // index probed by a search
	TagFound    Tag = "found"    // search hit
	TagOutside  Tag = "outside"  // eliminated from the search window
	TagInserted Tag = "inserted" // node added by this insert
	TagRotated  Tag = "rotated"  // subtree root after a rotation
	TagTop      Tag = "top"      // next item a pop/peek reads
)

// Decoration pairs an element identifier with a tag. An element may carry
// several decorations.
type Decoration struct {
	ElementID string
	Tag       Tag
}

// NeedsPanZoom reports whether tr ran over enough elements for the
// pan/zoom strategy.
func NeedsPanZoom(tr *trace.Trace) bool {
	return NeedsPanZoomAt(tr, PanZoomThreshold)
}

// NeedsPanZoomAt is NeedsPanZoom with a caller-chosen threshold.
func NeedsPanZoomAt(tr *trace.Trace, threshold int) bool {
	return tr != nil && tr.ElementCount >= threshold
}

// NodeID identifies a graph node.
func NodeID(id core.NodeID) string { return fmt.Sprintf("node:%d", id) }

// EdgeID identifies a graph edge.
func EdgeID(id core.EdgeID) string { return fmt.Sprintf("edge:%d", id) }

// CellID identifies an array element.
func CellID(i int) string { return fmt.Sprintf("cell:%d", i) }

// GridID identifies a matrix element.
func GridID(r, c int) string { return fmt.Sprintf("cell:%d,%d", r, c) }

// TreeID identifies a tree node.
func TreeID(id int) string { return fmt.Sprintf("tree:%d", id) }

// ItemID identifies a stack or queue slot.
func ItemID(i int) string { return fmt.Sprintf("item:%d", i) }

// Project returns the decorations for s in a stable order. A nil snapshot
// projects to nothing.
func Project(s *trace.Snapshot) []Decoration {
	if s == nil {
		return nil
	}
	var p projector
	switch st := s.State.(type) {
	case trace.GraphState:
		p.graph(st)
	case trace.ArrayState:
		p.array(st)
	case trace.SearchState:
		p.search(st)
	case trace.ListState:
		p.list(st)
	case trace.TreeState:
		p.tree(st)
	case trace.MatrixState:
		p.matrix(st)
	}

	return p.out
}

type projector struct {
	out []Decoration
}

func (p *projector) add(id string, tag Tag) {
	p.out = append(p.out, Decoration{ElementID: id, Tag: tag})
}

func (p *projector) graph(st trace.GraphState) {
	if st.Current != core.NoNode {
		p.add(NodeID(st.Current), TagCurrent)
	}
	for _, id := range st.Visited {
		p.add(NodeID(id), TagVisited)
	}
	for _, id := range st.Frontier {
		p.add(NodeID(id), TagFrontier)
	}
	for _, id := range st.Path {
		p.add(NodeID(id), TagPath)
	}
	if st.ActiveEdge != core.NoEdge {
		p.add(EdgeID(st.ActiveEdge), TagActive)
	}
	edges := append([]core.EdgeID(nil), st.TreeEdges...)
	sort.Slice(edges, func(i, j int) bool { return edges[i] < edges[j] })
	for _, id := range edges {
		p.add(EdgeID(id), TagTree)
	}
}

func (p *projector) array(st trace.ArrayState) {
	if st.Current != trace.None {
		p.add(CellID(st.Current), TagCurrent)
	}
	for _, i := range st.Stack {
		p.add(CellID(i), TagStacked)
	}
	if st.Popped != trace.None {
		p.add(CellID(st.Popped), TagPopped)
	}
	for i, ok := range st.Resolved {
		if ok {
			p.add(CellID(i), TagResolved)
		}
	}
}

func (p *projector) search(st trace.SearchState) {
	for i := range st.Values {
		if i < st.Lo || i > st.Hi {
			p.add(CellID(i), TagOutside)
		}
	}
	if st.Probe != trace.None {
		p.add(CellID(st.Probe), TagProbe)
	}
	if st.Found != trace.None {
		p.add(CellID(st.Found), TagFound)
	}
}

func (p *projector) list(st trace.ListState) {
	if len(st.Items) == 0 {
		return
	}
	top := len(st.Items) - 1
	if st.Mode == "queue" {
		top = 0
	}
	p.add(ItemID(top), TagTop)
	if st.Op == "push" || st.Op == "enqueue" {
		p.add(ItemID(len(st.Items)-1), TagActive)
	}
}

func (p *projector) tree(st trace.TreeState) {
	if st.Current != trace.None {
		p.add(TreeID(st.Current), TagCurrent)
	}
	for _, id := range st.Path {
		p.add(TreeID(id), TagPath)
	}
	if st.Inserted != trace.None {
		p.add(TreeID(st.Inserted), TagInserted)
	}
	if st.Rotation != "" && st.Current != trace.None {
		p.add(TreeID(st.Current), TagRotated)
	}
}

func (p *projector) matrix(st trace.MatrixState) {
	for _, c := range st.Active {
		p.add(GridID(c.Row, c.Col), TagActive)
	}
	for _, c := range st.Queue {
		p.add(GridID(c.Row, c.Col), TagFrontier)
	}
	for r, row := range st.Labels {
		for c, label := range row {
			if label > 0 {
				p.add(GridID(r, c), TagVisited)
			}
		}
	}
}
