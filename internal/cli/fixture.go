// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/stepwise/core"
)

// GraphFile is the YAML layout of a graph fixture:
//
//	directed: false
//	weighted: true
//	nodes: [1, 2, 3]
//	edges:
//	  - {from: 1, to: 2, weight: 4}
//	  - {from: 2, to: 3, weight: 1}
type GraphFile struct {
	Directed bool       `yaml:"directed"`
	Weighted bool       `yaml:"weighted"`
	Nodes    []int      `yaml:"nodes"`
	Edges    []EdgeSpec `yaml:"edges"`
}

// EdgeSpec is one fixture edge. Weight is required on weighted graphs and
// rejected on unweighted ones.
type EdgeSpec struct {
	From   int      `yaml:"from"`
	To     int      `yaml:"to"`
	Weight *float64 `yaml:"weight"`
}

// LoadGraph reads and builds a fixture file.
func LoadGraph(path string) (*core.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read graph %s: %w", path, err)
	}
	g, err := DecodeGraph(data)
	if err != nil {
		return nil, fmt.Errorf("graph %s: %w", path, err)
	}

	return g, nil
}

// DecodeGraph builds a graph from fixture YAML. Structural errors come from
// core and keep their sentinels.
func DecodeGraph(data []byte) (*core.Graph, error) {
	var f GraphFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	var opts []core.GraphOption
	if f.Directed {
		opts = append(opts, core.WithDirected())
	}
	if f.Weighted {
		opts = append(opts, core.WithWeighted())
	}
	g := core.NewGraph(opts...)
	for _, v := range f.Nodes {
		if _, err := g.AddNode(v); err != nil {
			return nil, err
		}
	}
	for i, e := range f.Edges {
		var eopts []core.EdgeOption
		if e.Weight != nil {
			eopts = append(eopts, core.WithWeight(*e.Weight))
		}
		if _, err := g.AddEdge(e.From, e.To, eopts...); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i+1, err)
		}
	}

	return g, nil
}
