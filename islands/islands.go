// SPDX-License-Identifier: MIT

package islands

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/stepwise/fault"
	"github.com/katalvlaran/stepwise/matrix"
	"github.com/katalvlaran/stepwise/trace"
)

// Algorithm is the name recorded on every flood-fill trace.
const Algorithm = "islands"

// Sentinel errors.
var (
	// ErrMatrixNil is returned for a nil matrix.
	ErrMatrixNil = fault.Define(fault.ErrStructuralPrecondition, "islands: matrix is nil")

	// ErrBadThreshold is returned for a NaN or infinite land threshold.
	ErrBadThreshold = fault.Define(fault.ErrStructuralPrecondition, "islands: threshold must be finite")
)

var (
	orthogonal = [][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}
	diagonal   = [][2]int{{-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}}
)

// Options configures a fill.
type Options struct {
	Ctx       context.Context
	Threshold float64
	Diagonals bool
}

// Option configures Options.
type Option func(*Options)

// WithContext sets the context checked once per labeled cell.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithThreshold sets the smallest value counted as land.
func WithThreshold(v float64) Option {
	return func(o *Options) { o.Threshold = v }
}

// WithDiagonals connects cells that touch at a corner.
func WithDiagonals() Option {
	return func(o *Options) { o.Diagonals = true }
}

// Result holds the regions in discovery order, each listing its cells in
// labeling order, and the per-cell labels.
type Result struct {
	Regions [][]trace.Cell
	Labels  [][]int
	Trace   *trace.Trace
}

type filler struct {
	opts    Options
	rec     *trace.Recorder
	cells   [][]float64
	labels  [][]int
	queue   []trace.Cell
	offsets [][2]int
}

// Fill labels every land region of m. m is not modified.
func Fill(m *matrix.Dense, opts ...Option) (*Result, error) {
	if m == nil {
		return nil, ErrMatrixNil
	}
	o := Options{Ctx: context.Background(), Threshold: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if math.IsNaN(o.Threshold) || math.IsInf(o.Threshold, 0) {
		return nil, fmt.Errorf("%w: %v", ErrBadThreshold, o.Threshold)
	}

	rows, cols := m.Rows(), m.Cols()
	f := &filler{
		opts:    o,
		rec:     trace.NewRecorder(Algorithm, rows*cols),
		cells:   m.ToRows(),
		labels:  make([][]int, rows),
		offsets: orthogonal,
	}
	if o.Diagonals {
		f.offsets = diagonal
	}
	for r := range f.labels {
		f.labels[r] = make([]int, cols)
	}
	f.emit(trace.KindStart, nil, "scan %dx%d for land >= %g", rows, cols, o.Threshold)

	var regions [][]trace.Cell
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if !f.land(r, c) || f.labels[r][c] != 0 {
				continue
			}
			region, err := f.fill(trace.Cell{Row: r, Col: c}, len(regions)+1)
			if err != nil {
				return nil, err
			}
			regions = append(regions, region)
		}
	}
	f.emit(trace.KindDone, nil, "done: %d regions", len(regions))

	tr, err := f.rec.Finish()
	if err != nil {
		return nil, err
	}

	return &Result{Regions: regions, Labels: f.labels, Trace: tr}, nil
}

func (f *filler) land(r, c int) bool {
	return r >= 0 && r < len(f.cells) && c >= 0 && c < len(f.cells[r]) && f.cells[r][c] >= f.opts.Threshold
}

// fill floods region k from seed. Cells are labeled when dequeued; queued
// tracks cells already waiting so none is queued twice.
func (f *filler) fill(seed trace.Cell, k int) ([]trace.Cell, error) {
	queued := map[trace.Cell]bool{seed: true}
	f.queue = append(f.queue[:0], seed)
	f.emit(trace.KindDiscover, []trace.Cell{seed}, "region %d starts at (%d,%d)", k, seed.Row, seed.Col)

	var region []trace.Cell
	for len(f.queue) > 0 {
		if err := f.opts.Ctx.Err(); err != nil {
			return nil, err
		}
		cur := f.queue[0]
		f.queue = f.queue[1:]
		f.labels[cur.Row][cur.Col] = k
		region = append(region, cur)
		for _, d := range f.offsets {
			next := trace.Cell{Row: cur.Row + d[0], Col: cur.Col + d[1]}
			if f.land(next.Row, next.Col) && f.labels[next.Row][next.Col] == 0 && !queued[next] {
				queued[next] = true
				f.queue = append(f.queue, next)
			}
		}
		f.emit(trace.KindVisit, []trace.Cell{cur}, "label (%d,%d) as region %d, %d queued", cur.Row, cur.Col, k, len(f.queue))
	}

	return region, nil
}

func (f *filler) emit(kind trace.Kind, active []trace.Cell, format string, args ...any) {
	f.rec.Emit(kind, trace.MatrixState{
		Cells:  f.cells,
		Layer:  trace.None,
		Active: active,
		Labels: f.labels,
		Queue:  f.queue,
	}, format, args...)
}
