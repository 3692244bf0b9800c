package dag_test

import (
	"fmt"

	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/dag"
)

func ExampleDAG_basic() {
	// Alice.Hair.3 needs Bob.Skin.latest, which needs nothing.
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "Alice.Hair.3", Kind: dag.NodeKindPackage})
	_ = g.AddNode(dag.Node{ID: "Bob.Skin.latest", Kind: dag.NodeKindDependency})
	_ = g.AddEdge(dag.Edge{From: "Alice.Hair.3", To: "Bob.Skin.latest"})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Dependents of Bob.Skin.latest:", g.Parents("Bob.Skin.latest"))
	// Output:
	// Nodes: 2
	// Edges: 1
	// Dependents of Bob.Skin.latest: [Alice.Hair.3]
}

func ExampleFindCycles() {
	g := dag.New(nil)
	for _, id := range []string{"A.Pack.1", "B.Pack.1", "C.Pack.1"} {
		_ = g.AddNode(dag.Node{ID: id})
	}
	_ = g.AddEdge(dag.Edge{From: "A.Pack.1", To: "B.Pack.1"})
	_ = g.AddEdge(dag.Edge{From: "B.Pack.1", To: "C.Pack.1"})
	_ = g.AddEdge(dag.Edge{From: "C.Pack.1", To: "A.Pack.1"})

	for _, c := range dag.FindCycles(g) {
		fmt.Println(c)
	}
	// Output:
	// [A.Pack.1 B.Pack.1 C.Pack.1]
}
