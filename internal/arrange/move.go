// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arrange

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"

	"github.com/pdiddy/download-manager/pkg/types"
)

// Move moves src into the existing folder dir, keeping its base name, and
// returns the new path. It never overwrites: an existing file at the
// destination is an error. Renames that cross devices fall back to
// copy-then-delete. All failures are *types.Error of kind filesystem.
func Move(afs afero.Fs, src, dir string) (string, error) {
	info, err := afs.Stat(dir)
	if err != nil {
		return "", types.NewError(types.KindFilesystem, src, fmt.Errorf("destination folder %s: %w", dir, err))
	}
	if !info.IsDir() {
		return "", types.NewError(types.KindFilesystem, src, fmt.Errorf("destination %s is not a folder", dir))
	}

	dst := filepath.Join(dir, filepath.Base(src))
	if _, err := afs.Stat(dst); err == nil {
		return "", types.NewError(types.KindFilesystem, src, fmt.Errorf("%s: %w", dst, fs.ErrExist))
	}

	if err := afs.Rename(src, dst); err != nil {
		if !errors.Is(err, syscall.EXDEV) {
			return "", types.NewError(types.KindFilesystem, src, fmt.Errorf("moving to %s: %w", dst, err))
		}
		if err := copyThenRemove(afs, src, dst); err != nil {
			return "", types.NewError(types.KindFilesystem, src, err)
		}
	}
	return dst, nil
}

// copyThenRemove copies src to dst, preserving the permission bits, and
// deletes src only after the copy is complete. A partial copy is removed.
func copyThenRemove(afs afero.Fs, src, dst string) error {
	in, err := afs.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	out, err := afs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		afs.Remove(dst)
		return fmt.Errorf("copying to %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		afs.Remove(dst)
		return fmt.Errorf("closing %s: %w", dst, err)
	}

	if err := afs.Remove(src); err != nil {
		return fmt.Errorf("removing %s after copy: %w", src, err)
	}
	return nil
}
