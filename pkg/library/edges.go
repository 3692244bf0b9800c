package library

import (
	"maps"
	"slices"
	"strings"
)

// Edges maps a dependency name to the set of dependents referencing it.
// A name is only present while it has at least one dependent.
type Edges map[string]map[string]struct{}

// Add records dependents for dep. Empty dependents are ignored, and nothing
// is stored when no dependent remains.
func (e Edges) Add(dep string, dependents ...string) {
	for _, d := range dependents {
		if d == "" {
			continue
		}
		set, ok := e[dep]
		if !ok {
			set = make(map[string]struct{})
			e[dep] = set
		}
		set[d] = struct{}{}
	}
}

// Has reports whether dep has any dependent.
func (e Edges) Has(dep string) bool {
	_, ok := e[dep]
	return ok
}

// Dependents returns the dependents of dep sorted case-insensitively.
func (e Edges) Dependents(dep string) []string {
	return sortFold(slices.Collect(maps.Keys(e[dep])))
}

// Names returns every dependency name in sorted order.
func (e Edges) Names() []string {
	return slices.Sorted(maps.Keys(e))
}

// Merge adds every edge of other into e.
func (e Edges) Merge(other Edges) {
	for dep, set := range other {
		for d := range set {
			e.Add(dep, d)
		}
	}
}

// Merge returns a new Edges holding the union of all inputs. The inputs are
// not modified.
func Merge(all ...Edges) Edges {
	out := make(Edges)
	for _, e := range all {
		out.Merge(e)
	}
	return out
}

// sortFold sorts s case-insensitively in place, breaking ties by byte order
// so the result is deterministic, and returns it.
func sortFold(s []string) []string {
	slices.SortFunc(s, func(a, b string) int {
		if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return s
}
