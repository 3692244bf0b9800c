package resolve

import (
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/errors"
)

// Copy copies the package at src in fsys into destDir under the same base
// name. An existing entry at the destination is never overwritten: Copy
// returns copied=false and no error. Unpacked package directories are
// copied as a tree. Partially written files and trees are removed on
// failure. When the copy succeeds but its modification time cannot be
// preserved, Copy returns copied=true with an IO_FAILURE error.
func Copy(fsys fs.FS, src, destDir string) (dst string, copied bool, err error) {
	dst = filepath.Join(destDir, path.Base(src))
	if _, err := os.Lstat(dst); err == nil {
		return dst, false, nil
	}

	info, err := fs.Stat(fsys, src)
	if err != nil {
		return dst, false, errors.Wrap(errors.ErrCodeIO, err, "stat %s", src)
	}
	if info.IsDir() {
		sub, err := fs.Sub(fsys, src)
		if err != nil {
			return dst, false, errors.Wrap(errors.ErrCodeIO, err, "open %s", src)
		}
		if err := os.CopyFS(dst, sub); err != nil {
			if rmErr := os.RemoveAll(dst); rmErr != nil {
				err = stderrors.Join(err, rmErr)
			}
			return dst, false, errors.Wrap(errors.ErrCodeIO, err, "copy %s", src)
		}
		return dst, true, nil
	}

	if err := copyFile(fsys, src, dst); err != nil {
		if stderrors.Is(err, fs.ErrExist) {
			return dst, false, nil
		}
		return dst, false, errors.Wrap(errors.ErrCodeIO, err, "copy %s", src)
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return dst, true, errors.Wrap(errors.ErrCodeIO, err, "preserve modification time of %s", dst)
	}
	return dst, true, nil
}

func copyFile(fsys fs.FS, src, dst string) (err error) {
	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return nil
}
