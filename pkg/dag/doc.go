// Package dag provides the directed dependency graph of a var library.
//
// # Overview
//
// Nodes are installed packages, referenced dependencies that are not
// installed, and preset files. An edge points from a dependent to the
// dependency it names:
//
//	Alice.Hair.3 -> Bob.Skin.latest
//	Atom/Person/Hair/p.vap -> Carol.Pose.2
//
// Build a graph from a scanned library with [FromIndex], or by hand with
// [New], [DAG.AddNode] and [DAG.AddEdge]:
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "Alice.Hair.3", Kind: dag.NodeKindPackage})
//	g.AddNode(dag.Node{ID: "Bob.Skin.latest", Kind: dag.NodeKindDependency})
//	g.AddEdge(dag.Edge{From: "Alice.Hair.3", To: "Bob.Skin.latest"})
//
// # Cycles
//
// Var packages may depend on each other in a loop. The graph does not reject
// such edges; [FindCycles] reports them and [DAG.Validate] returns
// [ErrGraphHasCycle] when any exist.
//
// # Determinism
//
// [DAG.Nodes] returns nodes sorted by ID and [DAG.Edges] returns edges in
// insertion order, so graphs built from the same library always export the
// same way.
package dag
