package manifest

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"io/fs"
	"maps"
	"path"
	"slices"

	"github.com/klauspost/compress/zip"

	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/errors"
)

// FileName is the manifest entry name inside a var archive or package
// directory.
const FileName = "meta.json"

var utf8BOM = []byte("\xef\xbb\xbf")

// Manifest is the typed subset of meta.json the scanner understands.
type Manifest struct {
	CreatorName text `json:"creatorName"`
	PackageName text `json:"packageName"`
	LicenseType text `json:"licenseType"`
	Description text `json:"description"`

	// Dependencies maps a dependency name to its opaque metadata.
	Dependencies map[string]json.RawMessage `json:"dependencies"`
}

// DependencyNames returns the declared dependency names in sorted order.
// It returns nil when the manifest has no dependency section.
func (m *Manifest) DependencyNames() []string {
	if m == nil || len(m.Dependencies) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(m.Dependencies))
}

// Creator returns the declared creator name, or "" when absent.
func (m *Manifest) Creator() string { return string(m.CreatorName) }

// License returns the declared license type, or "" when absent.
func (m *Manifest) License() string { return string(m.LicenseType) }

// Parse decodes a meta.json body. A leading UTF-8 byte order mark is
// ignored. name identifies the source in error messages.
func Parse(data []byte, name string) (*Manifest, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformed, err, "decode %s", name)
	}
	return &m, nil
}

// Read returns the manifest of the package at name, dispatching on whether
// name is an unpacked package directory or an archive.
func Read(fsys fs.FS, name string) (*Manifest, error) {
	info, err := fs.Stat(fsys, name)
	if err != nil {
		return nil, statError(err, name)
	}
	if info.IsDir() {
		return ReadDir(fsys, name)
	}
	return ReadArchive(fsys, name)
}

// ReadDir reads meta.json from an unpacked package directory.
func ReadDir(fsys fs.FS, dir string) (*Manifest, error) {
	p := path.Join(dir, FileName)
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.New(errors.ErrCodeNotFound, "%s not found in %s", FileName, dir)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", p)
	}
	return Parse(data, p)
}

// ReadArchive reads the meta.json entry of a var archive. The archive is
// closed before ReadArchive returns.
func ReadArchive(fsys fs.FS, name string) (*Manifest, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, statError(err, name)
	}
	defer f.Close()

	zr, err := zipReader(f, name)
	if err != nil {
		return nil, err
	}

	entry := findEntry(zr, FileName)
	if entry == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "%s not found in %s", FileName, name)
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformed, err, "open %s in %s", FileName, name)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s in %s", FileName, name)
	}
	return Parse(data, name)
}

// zipReader opens f as a zip archive, reading through io.ReaderAt when the
// file supports it and buffering the whole file otherwise.
func zipReader(f fs.File, name string) (*zip.Reader, error) {
	var (
		ra   io.ReaderAt
		size int64
	)
	if r, ok := f.(io.ReaderAt); ok {
		info, err := f.Stat()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "stat %s", name)
		}
		ra, size = r, info.Size()
	} else {
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", name)
		}
		ra, size = bytes.NewReader(data), int64(len(data))
	}

	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformed, err, "open archive %s", name)
	}
	return zr, nil
}

func findEntry(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func statError(err error, name string) error {
	if stderrors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(errors.ErrCodeNotFound, err, "package %s", name)
	}
	return errors.Wrap(errors.ErrCodeIO, err, "open %s", name)
}

// text decodes a JSON string and silently drops any other JSON type, so a
// creator field written as a number does not invalidate the manifest.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*t = ""
		return nil
	}
	*t = text(s)
	return nil
}
