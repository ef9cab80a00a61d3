// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/tidwall/btree"

	"github.com/katalvlaran/stepwise/avl"
	"github.com/katalvlaran/stepwise/core"
	"github.com/katalvlaran/stepwise/fault"
	"github.com/katalvlaran/stepwise/matrix"
	"github.com/katalvlaran/stepwise/trace"
)

// Sentinel errors.
var (
	// ErrUnknownEngine is returned for a name with no registered descriptor.
	ErrUnknownEngine = fault.Define(fault.ErrStructuralPrecondition, "engine: unknown algorithm")

	// ErrBadParams is returned when the parameter map cannot be decoded,
	// holds unknown keys or misses a required one.
	ErrBadParams = fault.Define(fault.ErrStructuralPrecondition, "engine: invalid parameters")

	// ErrNoStructure is returned when the input lacks the structure the
	// engine reads.
	ErrNoStructure = fault.Define(fault.ErrStructuralPrecondition, "engine: no structure to run on")

	// ErrDuplicateEngine is returned by Register for a name already taken.
	ErrDuplicateEngine = errors.New("engine: duplicate registration")
)

// Family names the structure an engine reads.
type Family string

// Families.
const (
	FamilyGraph  Family = "graph"
	FamilyTree   Family = "tree"
	FamilyArray  Family = "array"
	FamilyList   Family = "list"
	FamilyMatrix Family = "matrix"
)

// Input is the structure state a run reads. Engines never modify it.
type Input struct {
	Ctx    context.Context
	Graph  *core.Graph
	Tree   *avl.Tree
	Array  []float64
	Matrix *matrix.Dense
}

func (in Input) context() context.Context {
	if in.Ctx == nil {
		return context.Background()
	}

	return in.Ctx
}

// Output is the result of a run. Tree is set by engines that produce a new
// tree, Matrix by engines that produce a new matrix.
type Output struct {
	Trace  *trace.Trace
	Tree   *avl.Tree
	Matrix *matrix.Dense
}

// RunFunc decodes params and runs one engine over in.
type RunFunc func(in Input, params map[string]any) (*Output, error)

// Descriptor describes one runnable algorithm.
type Descriptor struct {
	Name    string
	Family  Family
	Summary string
	Params  []string // accepted parameter keys, required ones first
	Run     RunFunc
}

// Registry is an ordered set of descriptors keyed by name.
type Registry struct {
	byName btree.Map[string, Descriptor]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{} }

// Register adds d. Names are unique.
func (r *Registry) Register(d Descriptor) error {
	if _, ok := r.byName.Get(d.Name); ok {
		return fmt.Errorf("%w: %q", ErrDuplicateEngine, d.Name)
	}
	r.byName.Set(d.Name, d)

	return nil
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (Descriptor, error) {
	d, ok := r.byName.Get(name)
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}

	return d, nil
}

// Descriptors returns every descriptor in name order.
func (r *Registry) Descriptors() []Descriptor {
	return r.byName.Values()
}

// Names returns every registered name in order.
func (r *Registry) Names() []string {
	return r.byName.Keys()
}

// Run looks name up and runs it.
func (r *Registry) Run(name string, in Input, params map[string]any) (*Output, error) {
	d, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}

	return d.Run(in, params)
}
