package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/dag"
)

type graph struct {
	Nodes  []node     `json:"nodes"`
	Edges  []edge     `json:"edges"`
	Cycles [][]string `json:"cycles"`
}

type node struct {
	ID   string       `json:"id"`
	Kind string       `json:"kind"`
	Meta dag.Metadata `json:"meta,omitempty"`
}

type edge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Name string `json:"name,omitempty"`
}

// WriteGraph encodes g as JSON and writes it to w, together with the cycles
// found by [dag.FindCycles].
func WriteGraph(g *dag.DAG, w io.Writer) error {
	nodes := g.Nodes()
	edges := g.Edges()
	out := graph{
		Nodes:  make([]node, len(nodes)),
		Edges:  make([]edge, len(edges)),
		Cycles: dag.FindCycles(g),
	}
	if out.Cycles == nil {
		out.Cycles = [][]string{}
	}

	for i, n := range nodes {
		out.Nodes[i] = node{ID: n.ID, Kind: n.Kind.String(), Meta: n.Meta}
	}
	for i, e := range edges {
		name, _ := e.Meta[dag.MetaName].(string)
		out.Edges[i] = edge{From: e.From, To: e.To, Name: name}
	}
	return encode(w, out)
}

// ExportGraph writes g to a JSON file at path.
func ExportGraph(g *dag.DAG, path string) error {
	return exportFile(path, func(w io.Writer) error { return WriteGraph(g, w) })
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func exportFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return write(f)
}
