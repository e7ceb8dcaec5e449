package backup

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/thoreinstein/ersm/internal/errors"
)

// copyDir recursively copies the contents of srcDir into dstDir,
// preserving file permissions. dstDir is created if needed.
func copyDir(srcDir, dstDir string) error {
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", dstDir)
	}

	return filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return errors.Wrapf(err, "relativizing %s", path)
		}
		if rel == "." {
			return nil
		}
		target := filepath.Join(dstDir, rel)

		if d.IsDir() {
			info, err := d.Info()
			if err != nil {
				return errors.Wrapf(err, "stat %s", path)
			}
			return errors.Wrapf(os.MkdirAll(target, info.Mode().Perm()), "creating %s", target)
		}

		return copyFile(path, target)
	})
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "opening source file")
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return errors.Wrap(err, "stat source file")
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrap(err, "creating destination file")
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return errors.Wrap(err, "copying file")
	}

	if err := dstFile.Close(); err != nil {
		return errors.Wrap(err, "closing destination file")
	}

	if err := os.Chmod(dst, srcInfo.Mode().Perm()); err != nil {
		return errors.Wrap(err, "setting permissions")
	}

	return nil
}

// dirSize returns the total size in bytes of all files under dir.
func dirSize(dir string) (int64, error) {
	var total int64
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, "sizing %s", dir)
	}
	return total, nil
}
