package library

import (
	"context"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/errors"
	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/manifest"
	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/preset"
	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/varname"
)

const (
	// PackageExt is the var package file extension.
	PackageExt = ".var"

	// AddonDir is the conventional package sub-root of a library.
	AddonDir = "AddonPackages"
)

// Options configures a library scan.
type Options struct {
	// Root names the library in log output. It is not used to open files.
	Root string

	// Logger receives progress and per-file diagnostics. Nil discards them.
	Logger *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return discardLogger
	}
	return o.Logger
}

// Package is one installed package discovered during a scan.
type Package struct {
	ID   string // identifier, file name without ".var"
	Path string // slash-separated path within the scanned fs.FS

	// Manifest is nil when meta.json could not be read; Err says why.
	Manifest *manifest.Manifest
	Err      error
}

// Index is the result of scanning one library root. It is built once per
// run and not modified afterwards.
type Index struct {
	Root string

	// Packages holds every discovered package by identifier. When the same
	// identifier appears twice, the first discovered path wins; the manifests
	// of later copies still contribute to Manifests.
	Packages map[string]*Package

	// Manifests maps dependency names to the packages declaring them.
	Manifests Edges

	// Presets maps dependency names to the presets referencing them.
	Presets Edges

	// PresetFiles lists the display names of presets that were read.
	PresetFiles []string

	ids []string // sorted Packages keys, see IDs
}

// Scan builds the index of the library in fsys. It only fails when ctx is
// cancelled; every per-file problem is logged and skipped.
func Scan(ctx context.Context, fsys fs.FS, opts Options) (*Index, error) {
	ix := &Index{
		Root:      opts.Root,
		Packages:  make(map[string]*Package),
		Manifests: make(Edges),
		Presets:   make(Edges),
	}
	if err := ix.scanPackages(ctx, fsys, opts.logger()); err != nil {
		return nil, err
	}
	if err := ix.scanPresets(ctx, fsys, opts.logger()); err != nil {
		return nil, err
	}
	return ix, nil
}

func (ix *Index) scanPackages(ctx context.Context, fsys fs.FS, logger *log.Logger) error {
	root := AddonDir
	if !exists(fsys, AddonDir) {
		logger.Warn("AddonPackages path does not exist, scanning the whole library", "path", path.Join(ix.Root, AddonDir))
		root = "."
	}

	var found []string
	for p, err := range Walk(fsys, root, PackageExt) {
		if err != nil {
			logger.Warn("error while searching for packages", "path", p, "err", err)
			continue
		}
		found = append(found, p)
	}
	logger.Infof("Found %d var files to process", len(found))

	for _, p := range found {
		if err := ctx.Err(); err != nil {
			return err
		}
		id := IDFromPath(p)
		m, err := manifest.Read(fsys, p)
		if first, dup := ix.Packages[id]; dup {
			logger.Debug("duplicate package", "id", id, "file", p, "first", first.Path)
		} else {
			ix.Packages[id] = &Package{ID: id, Path: p, Manifest: m, Err: err}
		}
		if err != nil {
			if errors.Is(err, errors.ErrCodeNotFound) {
				logger.Warn("package has no manifest", "file", p, "err", err)
			} else {
				logger.Error("failed to read manifest", "file", p, "err", err)
			}
			continue
		}
		for _, dep := range m.DependencyNames() {
			ix.Manifests.Add(dep, id)
		}
	}
	return nil
}

func (ix *Index) scanPresets(ctx context.Context, fsys fs.FS, logger *log.Logger) error {
	if !exists(fsys, preset.CustomDir) {
		logger.Warn("Custom path does not exist", "path", path.Join(ix.Root, preset.CustomDir))
		return nil
	}

	var files []string
	for p, err := range Walk(fsys, preset.CustomDir, preset.Ext) {
		if err != nil {
			logger.Warn("error while searching for presets", "path", p, "err", err)
			continue
		}
		files = append(files, p)
	}
	logger.Infof("Found %d preset files in %s", len(files), path.Join(ix.Root, preset.CustomDir))

	for _, p := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		refs, err := readPreset(fsys, p)
		if err != nil {
			logger.Error("failed to read preset", "file", p, "err", err)
			continue
		}
		name := preset.DisplayName(p)
		ix.PresetFiles = append(ix.PresetFiles, name)
		for _, ref := range refs {
			ix.Presets.Add(ref, name)
		}
	}
	return nil
}

func readPreset(fsys fs.FS, p string) ([]string, error) {
	f, err := fsys.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return preset.Scan(f)
}

// IDFromPath returns the package identifier for a package path: its base
// name with the ".var" extension stripped.
func IDFromPath(p string) string {
	return strings.TrimSuffix(path.Base(p), PackageExt)
}

// IDs returns all installed identifiers in sorted order. The slice is
// computed on first use and shared; callers must not modify it.
func (ix *Index) IDs() []string {
	if ix.ids == nil {
		ix.ids = slices.Sorted(maps.Keys(ix.Packages))
	}
	return ix.ids
}

// Has reports whether id is installed.
func (ix *Index) Has(id string) bool {
	_, ok := ix.Packages[id]
	return ok
}

// Combined returns the union of manifest and preset edges as a new map.
func (ix *Index) Combined() Edges {
	return Merge(ix.Manifests, ix.Presets)
}

// Satisfier returns the first installed identifier, in sorted order, that
// satisfies dep.
func (ix *Index) Satisfier(dep string) (string, bool) {
	if ix.Has(dep) {
		return dep, true
	}
	if !varname.IsLatest(dep) {
		return "", false
	}
	// Identifiers sharing the prefix are contiguous in sorted order.
	ids := ix.IDs()
	prefix := varname.TrimLatest(dep)
	i, _ := slices.BinarySearch(ids, prefix)
	if i < len(ids) && varname.Satisfies(ids[i], dep) {
		return ids[i], true
	}
	return "", false
}

// Unreferenced returns installed packages that no manifest and no preset
// refers to by any variation of their name, sorted case-insensitively.
func (ix *Index) Unreferenced() []string {
	var out []string
	for id := range ix.Packages {
		if varname.Referenced(id, ix.Manifests.Has) || varname.Referenced(id, ix.Presets.Has) {
			continue
		}
		out = append(out, id)
	}
	return sortFold(out)
}
