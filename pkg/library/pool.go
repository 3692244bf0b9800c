package library

import (
	"context"
	"io/fs"
)

// Candidate is a package file in a source library.
type Candidate struct {
	ID   string // identifier, file name without ".var"
	Path string // slash-separated path within Pool.FS
}

// Pool is the set of candidate packages found under a source root, in
// discovery order.
type Pool struct {
	Root       string
	FS         fs.FS
	Candidates []Candidate
}

// ScanPool lists every package below the root of fsys. Unlike [Scan] it does
// not require an AddonPackages directory and reads no manifests.
func ScanPool(ctx context.Context, fsys fs.FS, opts Options) (*Pool, error) {
	logger := opts.logger()
	pool := &Pool{Root: opts.Root, FS: fsys}
	seen := make(map[string]bool)
	for p, err := range Walk(fsys, ".", PackageExt) {
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
		if err != nil {
			logger.Warn("error while searching for source packages", "path", p, "err", err)
			continue
		}
		id := IDFromPath(p)
		if seen[id] {
			logger.Debug("duplicate source package", "id", id, "file", p)
		}
		seen[id] = true
		pool.Candidates = append(pool.Candidates, Candidate{ID: id, Path: p})
	}
	logger.Infof("Found %d var files in source path (%d unique names)", len(pool.Candidates), len(seen))
	return pool, nil
}
