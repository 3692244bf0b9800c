package dag

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAddNode(t *testing.T) {
	g := New(nil)
	if err := g.AddNode(Node{}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode(empty) = %v, want ErrInvalidNodeID", err)
	}
	if err := g.AddNode(Node{ID: "a"}); err != nil {
		t.Fatalf("AddNode(a) = %v", err)
	}
	if err := g.AddNode(Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode(a) again = %v, want ErrDuplicateNodeID", err)
	}
	n, ok := g.Node("a")
	if !ok || n.Meta == nil {
		t.Errorf("Node(a) = %+v, %v, want non-nil meta", n, ok)
	}
}

func TestAddEdge(t *testing.T) {
	g := New(nil)
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})

	tests := []struct {
		name    string
		edge    Edge
		wantErr error
	}{
		{"unknown source", Edge{From: "x", To: "b"}, ErrUnknownSourceNode},
		{"unknown target", Edge{From: "a", To: "x"}, ErrUnknownTargetNode},
		{"valid", Edge{From: "a", To: "b"}, nil},
		{"duplicate is a no-op", Edge{From: "a", To: "b"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.AddEdge(tt.edge); !errors.Is(err, tt.wantErr) {
				t.Errorf("AddEdge() = %v, want %v", err, tt.wantErr)
			}
		})
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	if e := g.Edges()[0]; e.Meta == nil {
		t.Error("edge meta should be initialized")
	}
}

func TestNodesSorted(t *testing.T) {
	g := New(nil)
	for _, id := range []string{"c", "a", "b"} {
		_ = g.AddNode(Node{ID: id})
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, NodeIDs(g.Nodes())); diff != "" {
		t.Errorf("Nodes() mismatch (-want +got):\n%s", diff)
	}
}

func TestNodesOfKindAndSources(t *testing.T) {
	g := New(nil)
	_ = g.AddNode(Node{ID: "p.vap", Kind: NodeKindPreset})
	_ = g.AddNode(Node{ID: "A.B.1", Kind: NodeKindPackage})
	_ = g.AddNode(Node{ID: "C.D.2", Kind: NodeKindDependency})
	_ = g.AddEdge(Edge{From: "p.vap", To: "C.D.2"})
	_ = g.AddEdge(Edge{From: "A.B.1", To: "C.D.2"})

	if diff := cmp.Diff([]string{"C.D.2"}, NodeIDs(g.NodesOfKind(NodeKindDependency))); diff != "" {
		t.Errorf("NodesOfKind() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"A.B.1", "p.vap"}, NodeIDs(g.Sources())); diff != "" {
		t.Errorf("Sources() mismatch (-want +got):\n%s", diff)
	}
}

func TestNodeKindString(t *testing.T) {
	for k, want := range map[NodeKind]string{
		NodeKindPackage:    "package",
		NodeKindDependency: "dependency",
		NodeKindPreset:     "preset",
		NodeKind(9):        "unknown",
	} {
		if got := k.String(); got != want {
			t.Errorf("NodeKind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
