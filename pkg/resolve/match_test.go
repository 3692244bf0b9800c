package resolve

import (
	"testing"

	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/library"
)

func candidates(ids ...string) []library.Candidate {
	out := make([]library.Candidate, len(ids))
	for i, id := range ids {
		out[i] = library.Candidate{ID: id, Path: id + library.PackageExt}
	}
	return out
}

func TestMatcherMatch(t *testing.T) {
	tests := []struct {
		name     string
		dep      string
		pool     []string
		strict   bool
		want     string
		wantRule Rule
		wantOK   bool
	}{
		{
			name:     "latest compares numerically",
			dep:      "Foo.Bar.latest",
			pool:     []string{"Foo.Bar.1", "Foo.Bar.2", "Foo.Bar.10"},
			want:     "Foo.Bar.10",
			wantRule: RuleLatest,
			wantOK:   true,
		},
		{
			name:     "missing version falls back to highest",
			dep:      "Foo.Bar.3",
			pool:     []string{"Foo.Bar.2", "Foo.Bar.5"},
			want:     "Foo.Bar.5",
			wantRule: RuleFallback,
			wantOK:   true,
		},
		{
			name:   "no match",
			dep:    "Baz.Qux.latest",
			pool:   []string{"Foo.Bar.1"},
			wantOK: false,
		},
		{
			name:     "exact wins over higher versions",
			dep:      "Foo.Bar.2",
			pool:     []string{"Foo.Bar.10", "Foo.Bar.2"},
			want:     "Foo.Bar.2",
			wantRule: RuleExact,
			wantOK:   true,
		},
		{
			name:     "exact latest identifier",
			dep:      "Foo.Bar.latest",
			pool:     []string{"Foo.Bar.9", "Foo.Bar.latest"},
			want:     "Foo.Bar.latest",
			wantRule: RuleExact,
			wantOK:   true,
		},
		{
			name:     "non integer suffixes are ignored",
			dep:      "Foo.Bar.latest",
			pool:     []string{"Foo.Bar.beta", "Foo.Bar.3", "Foo.Bar.Baz.9"},
			want:     "Foo.Bar.3",
			wantRule: RuleLatest,
			wantOK:   true,
		},
		{
			name:     "prefix must end at a dot",
			dep:      "Foo.Bar.latest",
			pool:     []string{"Foo.Barn.7", "Foo.Bar.1"},
			want:     "Foo.Bar.1",
			wantRule: RuleLatest,
			wantOK:   true,
		},
		{
			name:     "fallback drops any last segment",
			dep:      "Foo.Bar.custom",
			pool:     []string{"Foo.Bar.4"},
			want:     "Foo.Bar.4",
			wantRule: RuleFallback,
			wantOK:   true,
		},
		{
			name:   "strict disables fallback",
			dep:    "Foo.Bar.3",
			pool:   []string{"Foo.Bar.2", "Foo.Bar.5"},
			strict: true,
			wantOK: false,
		},
		{
			name:     "strict keeps latest",
			dep:      "Foo.Bar.latest",
			pool:     []string{"Foo.Bar.2", "Foo.Bar.5"},
			strict:   true,
			want:     "Foo.Bar.5",
			wantRule: RuleLatest,
			wantOK:   true,
		},
		{
			name:   "no dot no fallback",
			dep:    "FooBar",
			pool:   []string{"FooBar.1"},
			wantOK: false,
		},
		{
			name:   "empty pool",
			dep:    "Foo.Bar.1",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := Matcher{Strict: tt.strict}.Match(tt.dep, candidates(tt.pool...))
			if ok != tt.wantOK {
				t.Fatalf("Match(%q) ok = %v, want %v", tt.dep, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if m.Candidate.ID != tt.want || m.Rule != tt.wantRule {
				t.Errorf("Match(%q) = %s (%s), want %s (%s)", tt.dep, m.Candidate.ID, m.Rule, tt.want, tt.wantRule)
			}
		})
	}
}

func TestMatcherFirstExactWins(t *testing.T) {
	pool := []library.Candidate{
		{ID: "Foo.Bar.1", Path: "b/Foo.Bar.1.var"},
		{ID: "Foo.Bar.1", Path: "a/Foo.Bar.1.var"},
	}
	m, ok := Matcher{}.Match("Foo.Bar.1", pool)
	if !ok || m.Candidate.Path != "b/Foo.Bar.1.var" {
		t.Errorf("Match() = %+v, %v, want first discovered", m, ok)
	}
}

func TestMatcherDeterministic(t *testing.T) {
	pool := candidates("Foo.Bar.10", "Foo.Bar.1", "Foo.Bar.2")
	for i := 0; i < 5; i++ {
		m, ok := Matcher{}.Match("Foo.Bar.latest", pool)
		if !ok || m.Candidate.ID != "Foo.Bar.10" {
			t.Fatalf("run %d: Match() = %+v, %v", i, m, ok)
		}
	}
}

func TestRuleString(t *testing.T) {
	for r, want := range map[Rule]string{RuleExact: "exact", RuleLatest: "latest", RuleFallback: "fallback", 0: "none"} {
		if got := r.String(); got != want {
			t.Errorf("Rule(%d).String() = %q, want %q", r, got, want)
		}
	}
}
