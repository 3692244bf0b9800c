package io

import (
	"io"
	"path/filepath"

	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/errors"
	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/library"
	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/resolve"
)

// Report is the machine-readable outcome of one scan run.
type Report struct {
	RunID        string                    `json:"run_id"`
	Main         string                    `json:"main"`
	Source       string                    `json:"source,omitempty"`
	Strict       bool                      `json:"strict,omitempty"`
	Satisfied    map[string]SatisfiedEntry `json:"satisfied"`
	Resolved     map[string]ResolvedEntry  `json:"resolved"`
	Missing      map[string]MissingEntry   `json:"missing"`
	Unreferenced []string                  `json:"unreferenced"`
}

// SatisfiedEntry describes a dependency an installed package covers.
type SatisfiedEntry struct {
	SatisfiedBy string   `json:"satisfied_by"`
	Dependents  []string `json:"dependents"`
}

// ResolvedEntry describes a dependency matched in the source library.
type ResolvedEntry struct {
	Match       string   `json:"match"`
	Path        string   `json:"path"`
	Rule        string   `json:"rule"`
	Substituted bool     `json:"substituted,omitempty"`
	CopiedTo    string   `json:"copied_to,omitempty"`
	CopyError   string   `json:"copy_error,omitempty"`
	CopyCode    string   `json:"copy_error_code,omitempty"`
	Dependents  []string `json:"dependents"`
}

// MissingEntry describes a dependency found nowhere.
type MissingEntry struct {
	Dependents []string `json:"dependents"`
}

// NewReport assembles a report from a finished run. pool may be nil when no
// source library was scanned.
func NewReport(runID string, main *library.Index, pool *library.Pool, res *resolve.Result) Report {
	r := Report{
		RunID:        runID,
		Main:         main.Root,
		Satisfied:    make(map[string]SatisfiedEntry, len(res.Satisfied)),
		Resolved:     make(map[string]ResolvedEntry, len(res.Resolved)),
		Missing:      make(map[string]MissingEntry, len(res.Missing)),
		Unreferenced: main.Unreferenced(),
	}
	if r.Unreferenced == nil {
		r.Unreferenced = []string{}
	}
	var poolRoot string
	if pool != nil {
		poolRoot = pool.Root
		r.Source = pool.Root
	}

	for name, s := range res.Satisfied {
		r.Satisfied[name] = SatisfiedEntry{SatisfiedBy: s.SatisfiedBy, Dependents: dependents(s)}
	}
	for name, s := range res.Resolved {
		e := ResolvedEntry{
			Match:       s.Match.Candidate.ID,
			Path:        filepath.Join(poolRoot, filepath.FromSlash(s.Match.Candidate.Path)),
			Rule:        s.Match.Rule.String(),
			Substituted: s.Substituted(),
			Dependents:  dependents(s),
		}
		if s.Copied {
			e.CopiedTo = s.CopiedTo
		}
		if s.CopyErr != nil {
			e.CopyError = s.CopyErr.Error()
			e.CopyCode = string(errors.GetCode(s.CopyErr))
		}
		r.Resolved[name] = e
	}
	for name, s := range res.Missing {
		r.Missing[name] = MissingEntry{Dependents: dependents(s)}
	}
	return r
}

func dependents(r *resolve.Resolution) []string {
	if r.Dependents == nil {
		return []string{}
	}
	return r.Dependents
}

// WriteReport encodes r as indented JSON.
func WriteReport(r Report, w io.Writer) error {
	return encode(w, r)
}

// ExportReport writes r to a JSON file at path.
func ExportReport(r Report, path string) error {
	return exportFile(path, func(w io.Writer) error { return WriteReport(r, w) })
}
