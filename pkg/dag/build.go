package dag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/library"
)

// Node metadata keys set by FromIndex.
const (
	MetaPath    = "path"
	MetaCreator = "creator"
	MetaLicense = "license"
	MetaError   = "error"
	MetaName    = "name" // on edges: the dependency name as written
	MetaRoot    = "root" // on the graph: the scanned library root
)

// FromIndex builds the dependency graph of a scanned library.
//
// Every installed package becomes a [NodeKindPackage] node and every preset
// file a [NodeKindPreset] node. A dependency satisfied by an installed
// package points at that package's node; the edge keeps the name as written
// under [MetaName] when it differs. Any other dependency becomes a
// [NodeKindDependency] node.
//
// A name that collides with an existing node is left out together with its
// edges. The graph is still returned, and the error joins one entry per
// omission.
func FromIndex(ix *library.Index) (*DAG, error) {
	g := New(Metadata{MetaRoot: ix.Root})
	var errs []error
	add := func(n Node) bool {
		if err := g.AddNode(n); err != nil {
			errs = append(errs, fmt.Errorf("%s %q: %w", n.Kind, n.ID, err))
			return false
		}
		return true
	}

	for _, id := range ix.IDs() {
		pkg := ix.Packages[id]
		meta := Metadata{MetaPath: pkg.Path}
		if m := pkg.Manifest; m != nil {
			if c := m.Creator(); c != "" {
				meta[MetaCreator] = c
			}
			if l := m.License(); l != "" {
				meta[MetaLicense] = l
			}
		}
		if pkg.Err != nil {
			meta[MetaError] = pkg.Err.Error()
		}
		add(Node{ID: id, Kind: NodeKindPackage, Meta: meta})
	}
	for _, p := range ix.PresetFiles {
		add(Node{ID: p, Kind: NodeKindPreset})
	}

	combined := ix.Combined()
	for _, dep := range combined.Names() {
		if strings.TrimSpace(dep) == "" {
			continue
		}
		target, ok := ix.Satisfier(dep)
		if !ok {
			target = dep
			if !add(Node{ID: dep, Kind: NodeKindDependency}) {
				continue
			}
		}
		var meta Metadata
		if target != dep {
			meta = Metadata{MetaName: dep}
		}
		for _, from := range combined.Dependents(dep) {
			if _, ok := g.Node(from); !ok && !add(Node{ID: from, Kind: NodeKindPackage}) {
				continue
			}
			if err := g.AddEdge(Edge{From: from, To: target, Meta: meta}); err != nil {
				errs = append(errs, fmt.Errorf("edge %s -> %s: %w", from, target, err))
			}
		}
	}
	return g, errors.Join(errs...)
}
