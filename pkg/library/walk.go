package library

import (
	"io/fs"
	"iter"
	"os"
	"slices"
	"strings"
)

// Walk yields the slash-separated path of every entry below root whose name
// ends in ext, in lexical order. Entries may be files or directories; an
// unpacked package is a directory named like its archive. Symlinked
// directories are followed once each, so a link back to an ancestor does not
// loop. Errors reading an entry are yielded with that entry's path and the
// walk continues with the next sibling. The sequence is restartable: each
// range walks the tree again.
func Walk(fsys fs.FS, root, ext string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		w := &walker{fsys: fsys, ext: ext, yield: yield}
		if info, err := fs.Stat(fsys, root); err == nil {
			w.followed = append(w.followed, info)
		}
		w.walk(root)
	}
}

type walker struct {
	fsys  fs.FS
	ext   string
	yield func(string, error) bool

	followed []fs.FileInfo // directories entered so far through links, plus the root
	stopped  bool
}

func (w *walker) walk(root string) {
	_ = fs.WalkDir(w.fsys, root, func(p string, d fs.DirEntry, err error) error {
		if w.stopped {
			return fs.SkipAll
		}
		if err != nil {
			return w.emit(p, err)
		}
		if p == root {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(name, w.ext) {
			return w.emit(p, nil)
		}
		if d.Type()&fs.ModeSymlink != 0 {
			w.follow(p)
			if w.stopped {
				return fs.SkipAll
			}
		}
		return nil
	})
}

// follow walks the directory behind the link at p unless it was entered
// before.
func (w *walker) follow(p string) {
	info, err := fs.Stat(w.fsys, p)
	if err != nil {
		w.emit(p, err)
		return
	}
	if !info.IsDir() {
		return
	}
	if slices.ContainsFunc(w.followed, func(seen fs.FileInfo) bool { return os.SameFile(seen, info) }) {
		return
	}
	w.followed = append(w.followed, info)
	w.walk(p)
}

func (w *walker) emit(p string, err error) error {
	if !w.yield(p, err) {
		w.stopped = true
		return fs.SkipAll
	}
	return nil
}

// exists reports whether name is present in fsys.
func exists(fsys fs.FS, name string) bool {
	_, err := fs.Stat(fsys, name)
	return err == nil
}
