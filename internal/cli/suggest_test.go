package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/library"
)

func TestSuggest(t *testing.T) {
	names := []string{"Alice.Hair.3", "Alice.Skin.1", "Bob.Skin.4", "Carol.Pose.2"}

	if diff := cmp.Diff([]string{"Alice.Hair.3"}, suggest("AlHr", names, 5)); diff != "" {
		t.Errorf("suggest(AlHr) mismatch (-want +got):\n%s", diff)
	}
	if got := suggest("Skin", names, 1); len(got) != 1 {
		t.Errorf("suggest(Skin, limit 1) = %v, want one name", got)
	}
	if got := suggest("Skin", names, 5); len(got) != 2 {
		t.Errorf("suggest(Skin) = %v, want both Skin packages", got)
	}
	if got := suggest("", names, 5); got != nil {
		t.Errorf("suggest(\"\") = %v, want nil", got)
	}
	if got := suggest("zzz", names, 5); len(got) != 0 {
		t.Errorf("suggest(zzz) = %v, want none", got)
	}
}

func TestSuggestionPool(t *testing.T) {
	ix := &library.Index{
		Packages: map[string]*library.Package{
			"Alice.Hair.3": {ID: "Alice.Hair.3"},
			"Bob.Skin.4":   {ID: "Bob.Skin.4"},
		},
		Manifests: make(library.Edges),
		Presets:   make(library.Edges),
	}
	ix.Manifests.Add("Bob.Skin.4", "Alice.Hair.3")
	ix.Presets.Add("Carol.Pose.2", "Atom/p.vap")

	want := []string{"Alice.Hair.3", "Bob.Skin.4", "Carol.Pose.2"}
	if diff := cmp.Diff(want, suggestionPool(ix)); diff != "" {
		t.Errorf("suggestionPool() mismatch (-want +got):\n%s", diff)
	}
}
