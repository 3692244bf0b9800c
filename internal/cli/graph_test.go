package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/errors"
)

func TestGraphDOT(t *testing.T) {
	vam, _ := writeLibraries(t)
	var run testRun
	if err := run.execute(t, "graph", "-p", vam); err != nil {
		t.Fatalf("graph error = %v\n%s", err, run.err.String())
	}
	out := run.out.String()
	for _, want := range []string{
		"digraph G {",
		`"Alice.Hair.3" -> "Bob.Skin.latest";`,
		`"Alice.Hair.3" -> "Carol.Pose.2";`,
		`"Atom/Person/Pose/p.vap" -> "Erin.Pose.1";`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT output missing %q:\n%s", want, out)
		}
	}
}

func TestGraphJSONFile(t *testing.T) {
	vam, _ := writeLibraries(t)
	outFile := filepath.Join(t.TempDir(), "graph.json")
	var run testRun
	if err := run.execute(t, "graph", "-p", vam, "--format", "json", "-o", outFile); err != nil {
		t.Fatalf("graph error = %v\n%s", err, run.err.String())
	}
	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatal(err)
	}
	var g struct {
		Nodes []struct {
			ID   string `json:"id"`
			Kind string `json:"kind"`
		} `json:"nodes"`
		Edges []struct {
			From string `json:"from"`
			To   string `json:"to"`
		} `json:"edges"`
	}
	if err := json.Unmarshal(data, &g); err != nil {
		t.Fatal(err)
	}
	kinds := map[string]string{}
	for _, n := range g.Nodes {
		kinds[n.ID] = n.Kind
	}
	if kinds["Carol.Pose.2"] != "dependency" || kinds["Dan.Look.1"] != "package" || kinds["Atom/Person/Pose/p.vap"] != "preset" {
		t.Errorf("node kinds = %v", kinds)
	}
	if len(g.Edges) != 3 {
		t.Errorf("edges = %v, want 3", g.Edges)
	}
}

func TestGraphSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("renders through Graphviz")
	}
	vam, _ := writeLibraries(t)
	var run testRun
	if err := run.execute(t, "graph", "-p", vam, "--format", "svg"); err != nil {
		t.Fatalf("graph error = %v\n%s", err, run.err.String())
	}
	if !strings.Contains(run.out.String(), "<svg") {
		t.Errorf("output is not SVG:\n%.200s", run.out.String())
	}
}

func TestGraphUnknownFormat(t *testing.T) {
	var run testRun
	err := run.execute(t, "graph", "--format", "png")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}
