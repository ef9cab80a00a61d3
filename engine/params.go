// SPDX-License-Identifier: MIT

package engine

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/katalvlaran/stepwise/core"
	"github.com/katalvlaran/stepwise/input"
)

type bfsParams struct {
	Start    int `mapstructure:"start"`
	MaxDepth int `mapstructure:"max_depth"`
}

type dfsParams struct {
	Start int  `mapstructure:"start"`
	Full  bool `mapstructure:"full"`
}

type dijkstraParams struct {
	Start       int      `mapstructure:"start"`
	Target      *int     `mapstructure:"target"`
	MaxDistance *float64 `mapstructure:"max_distance"`
}

type primParams struct {
	Start int `mapstructure:"start"`
}

type avlParams struct {
	Values []float64 `mapstructure:"values"`
}

type searchParams struct {
	Target float64 `mapstructure:"target"`
}

type linearParams struct {
	Ops string `mapstructure:"ops"`
}

type islandsParams struct {
	Threshold *float64 `mapstructure:"threshold"`
	Diagonal  bool     `mapstructure:"diagonal"`
}

type noParams struct{}

var floatsType = reflect.TypeOf([]float64(nil))

// textToFloats lets a list parameter arrive as "3, 1 4" text.
func textToFloats(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != floatsType {
		return data, nil
	}

	return input.ParseArray(data.(string))
}

// decode fills a P from raw. Keys are matched case-insensitively, scalars
// are weakly typed ("3" decodes into an int) and unknown keys fail.
func decode[P any](name string, raw map[string]any, required ...string) (P, error) {
	var p P
	for _, key := range required {
		if _, ok := raw[key]; !ok {
			return p, fmt.Errorf("%s: %w: missing %q", name, ErrBadParams, key)
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       textToFloats,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &p,
	})
	if err != nil {
		return p, fmt.Errorf("%s: %w", name, err)
	}
	if err := dec.Decode(raw); err != nil {
		return p, fmt.Errorf("%s: %w: %v", name, ErrBadParams, err)
	}

	return p, nil
}

// resolve maps a user-facing node value to its id.
func resolve(g *core.Graph, value int) (core.NodeID, error) {
	n, ok := g.NodeByValue(value)
	if !ok {
		return core.NoNode, fmt.Errorf("node value %d: %w", value, core.ErrNodeNotFound)
	}

	return n.ID, nil
}
