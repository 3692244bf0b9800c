package resolve

import (
	"context"
	"io"
	"maps"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/errors"
	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/library"
)

// Status is the terminal classification of a dependency.
type Status int

const (
	StatusSatisfied Status = iota + 1
	StatusResolved
	StatusMissing
)

func (s Status) String() string {
	switch s {
	case StatusSatisfied:
		return "satisfied"
	case StatusResolved:
		return "resolved"
	case StatusMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// Resolution records how one dependency was classified.
type Resolution struct {
	Name       string
	Status     Status
	Dependents []string

	// SatisfiedBy is the installed identifier, for StatusSatisfied.
	SatisfiedBy string

	// Match is the chosen source candidate, for StatusResolved.
	Match Match

	// Copy outcome, for StatusResolved with a destination configured.
	// CopyErr never changes Status.
	CopiedTo string
	Copied   bool
	CopyErr  error
}

// Substituted reports whether a resolved dependency was matched to a
// different version than the one named.
func (r *Resolution) Substituted() bool {
	return r.Status == StatusResolved && r.Match.Rule == RuleFallback && r.Match.Candidate.ID != r.Name
}

// Result holds every classified dependency, keyed by dependency name.
type Result struct {
	Satisfied map[string]*Resolution
	Resolved  map[string]*Resolution
	Missing   map[string]*Resolution
}

func newResult() *Result {
	return &Result{
		Satisfied: make(map[string]*Resolution),
		Resolved:  make(map[string]*Resolution),
		Missing:   make(map[string]*Resolution),
	}
}

func (r *Result) add(res *Resolution) {
	switch res.Status {
	case StatusSatisfied:
		r.Satisfied[res.Name] = res
	case StatusResolved:
		r.Resolved[res.Name] = res
	case StatusMissing:
		r.Missing[res.Name] = res
	}
}

// Sorted returns the resolutions of m ordered by dependency name.
func Sorted(m map[string]*Resolution) []*Resolution {
	out := make([]*Resolution, 0, len(m))
	for _, name := range slices.Sorted(maps.Keys(m)) {
		out = append(out, m[name])
	}
	return out
}

// Substitutions returns resolved dependencies matched to another version,
// ordered by name.
func (r *Result) Substitutions() []*Resolution {
	var out []*Resolution
	for _, res := range Sorted(r.Resolved) {
		if res.Substituted() {
			out = append(out, res)
		}
	}
	return out
}

// Options configures a Resolver.
type Options struct {
	// Dest is the directory resolved packages are copied into. Empty
	// disables copying.
	Dest string

	// Strict disables the version fallback matching rule.
	Strict bool

	// Logger receives progress and per-dependency diagnostics. Nil
	// discards them.
	Logger *log.Logger
}

// Resolver classifies a library's dependencies against a source pool.
type Resolver struct {
	matcher Matcher
	dest    string
	logger  *log.Logger
}

// New returns a Resolver configured by opts.
func New(opts Options) *Resolver {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Resolver{
		matcher: Matcher{Strict: opts.Strict},
		dest:    opts.Dest,
		logger:  logger,
	}
}

// Resolve classifies every dependency of main. Both scans must be complete.
// A nil pool leaves every unsatisfied dependency missing. Resolve fails only
// when ctx is cancelled or the destination directory cannot be created.
func (r *Resolver) Resolve(ctx context.Context, main *library.Index, pool *library.Pool) (*Result, error) {
	if r.dest != "" {
		if err := os.MkdirAll(r.dest, 0o755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "create destination %s", r.dest)
		}
		r.logger.Infof("Will copy found dependencies to: %s", r.dest)
	}

	var candidates []library.Candidate
	if pool != nil {
		candidates = pool.Candidates
	}

	combined := main.Combined()
	result := newResult()
	for _, name := range combined.Names() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if strings.TrimSpace(name) == "" {
			continue
		}
		res := r.classify(main, candidates, name, combined.Dependents(name))
		if res.Status == StatusResolved && r.dest != "" {
			r.materialize(pool, res)
		}
		result.add(res)
	}

	r.logger.Infof("Dependencies already satisfied: %d", len(result.Satisfied))
	r.logger.Infof("Found matches for %d dependencies", len(result.Resolved))
	r.logger.Infof("Missing %d dependencies", len(result.Missing))
	return result, nil
}

func (r *Resolver) classify(main *library.Index, candidates []library.Candidate, name string, dependents []string) *Resolution {
	res := &Resolution{Name: name, Dependents: dependents}

	if id, ok := main.Satisfier(name); ok {
		res.Status = StatusSatisfied
		res.SatisfiedBy = id
		r.logger.Debug("dependency already satisfied", "dependency", name, "by", id)
		return res
	}

	if m, ok := r.matcher.Match(name, candidates); ok {
		res.Status = StatusResolved
		res.Match = m
		if res.Substituted() {
			r.logger.Warn("substituting a different version", "dependency", name, "match", m.Candidate.ID)
		}
		return res
	}

	res.Status = StatusMissing
	return res
}

func (r *Resolver) materialize(pool *library.Pool, res *Resolution) {
	src := res.Match.Candidate.Path
	dst, copied, err := Copy(pool.FS, src, r.dest)
	res.CopiedTo, res.Copied, res.CopyErr = dst, copied, err
	switch {
	case copied && err != nil:
		r.logger.Warn("copied with errors", "file", src, "dest", dst, "err", err)
	case err != nil:
		r.logger.Error("failed to copy", "file", src, "dest", dst, "err", err)
	case copied:
		r.logger.Infof("Copied: %s -> %s", path.Base(src), dst)
	default:
		r.logger.Debug("already present at destination", "file", dst)
	}
}
