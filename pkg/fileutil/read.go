package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/ersm/internal/errors"
)

// MaxFileSize bounds how much ReadFileWithLimit loads. Sidecars and
// config files are tiny; anything near a megabyte is corrupt.
const MaxFileSize = 1 << 20

// ErrFileTooLarge reports a file over MaxFileSize.
var ErrFileTooLarge = errors.Newf("file larger than the %d byte limit", MaxFileSize)

// ReadFileWithLimit reads path in full, refusing files over MaxFileSize.
// A missing file surfaces as os.ErrNotExist in the error chain.
func ReadFileWithLimit(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	// Stat catches oversized files up front. The limited read below is
	// the real guard; it also covers files that grow after the stat.
	if info, err := f.Stat(); err == nil && info.Size() > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}
