package cli

import (
	"slices"

	"github.com/sahilm/fuzzy"

	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/library"
)

const maxSuggestions = 5

// suggest returns up to limit entries of names that fuzzily match query,
// best match first.
func suggest(query string, names []string, limit int) []string {
	if query == "" {
		return nil
	}
	matches := fuzzy.Find(query, names)
	out := make([]string, 0, min(limit, len(matches)))
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

// suggestionPool returns every installed identifier and dependency name,
// sorted and without duplicates.
func suggestionPool(ix *library.Index) []string {
	names := slices.Clone(ix.IDs())
	names = append(names, ix.Combined().Names()...)
	slices.Sort(names)
	return slices.Compact(names)
}
