package library

import (
	"strings"
)

// Dependency is a dependency name together with everything that needs it.
type Dependency struct {
	Name       string
	Dependents []string
}

// QueryResult answers a name query against an index.
type QueryResult struct {
	// Name is the query with any ".var" suffix removed.
	Name string

	// Unused lists unreferenced packages whose identifier contains Name.
	Unused []string

	// Dependencies lists dependency names containing Name that something
	// depends on, with their dependents.
	Dependencies []Dependency
}

// Empty reports whether the query matched nothing.
func (r QueryResult) Empty() bool {
	return len(r.Unused) == 0 && len(r.Dependencies) == 0
}

// Query looks up name, case-insensitively and as a substring, among the
// unreferenced packages and the combined dependency edges. A trailing ".var"
// is ignored so file names can be passed directly. An empty name matches
// everything.
func (ix *Index) Query(name string) QueryResult {
	name = strings.TrimSuffix(name, PackageExt)
	needle := strings.ToLower(name)
	res := QueryResult{Name: name}

	for _, id := range ix.Unreferenced() {
		if strings.Contains(strings.ToLower(id), needle) {
			res.Unused = append(res.Unused, id)
		}
	}

	combined := ix.Combined()
	var names []string
	for dep := range combined {
		if strings.Contains(strings.ToLower(dep), needle) {
			names = append(names, dep)
		}
	}
	for _, dep := range sortFold(names) {
		res.Dependencies = append(res.Dependencies, Dependency{
			Name:       dep,
			Dependents: combined.Dependents(dep),
		})
	}
	return res
}
