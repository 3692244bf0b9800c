package resolve

import (
	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/library"
	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/varname"
)

// Rule identifies which matching rule produced a match.
type Rule int

const (
	// RuleExact matched the identifier verbatim.
	RuleExact Rule = iota + 1
	// RuleLatest resolved a ".latest" reference to the highest version.
	RuleLatest
	// RuleFallback replaced the requested version with the highest one
	// available.
	RuleFallback
)

func (r Rule) String() string {
	switch r {
	case RuleExact:
		return "exact"
	case RuleLatest:
		return "latest"
	case RuleFallback:
		return "fallback"
	default:
		return "none"
	}
}

// Match is a chosen source candidate.
type Match struct {
	Candidate library.Candidate
	Rule      Rule
}

// Matcher finds the best source candidate for a dependency name.
// The zero value applies all three rules.
type Matcher struct {
	// Strict disables the version fallback rule.
	Strict bool
}

// Match returns the best candidate for dep, or false when none qualifies.
// Candidates are considered in the order given.
func (m Matcher) Match(dep string, candidates []library.Candidate) (Match, bool) {
	for _, c := range candidates {
		if c.ID == dep {
			return Match{Candidate: c, Rule: RuleExact}, true
		}
	}

	if varname.IsLatest(dep) {
		if c, ok := highest(varname.TrimLatest(dep), candidates); ok {
			return Match{Candidate: c, Rule: RuleLatest}, true
		}
	}

	if m.Strict {
		return Match{}, false
	}
	if base, ok := varname.Parent(dep); ok {
		if c, ok := highest(base, candidates); ok {
			return Match{Candidate: c, Rule: RuleFallback}, true
		}
	}
	return Match{}, false
}

// highest returns the candidate "<base>.<N>" with the largest integer N.
// Equal versions are broken by the lexically larger path.
func highest(base string, candidates []library.Candidate) (library.Candidate, bool) {
	var (
		best    library.Candidate
		bestVer = -1
	)
	for _, c := range candidates {
		v, ok := varname.Version(c.ID, base)
		if !ok {
			continue
		}
		if v > bestVer || (v == bestVer && c.Path > best.Path) {
			best, bestVer = c, v
		}
	}
	return best, bestVer >= 0
}
