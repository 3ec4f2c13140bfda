package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/strata/internal/errors"
)

// MaxFileSize caps how much of a state file is read (1MB). Config,
// repository state and stack registries are all far below this; hitting
// the cap means the file is corrupt or not ours.
const MaxFileSize = 1 << 20

// ErrFileTooLarge indicates that a file exceeded MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ReadFileWithLimit reads a file, refusing anything over MaxFileSize.
// The size is checked both up front and after reading, so files that
// grow mid-read are still rejected.
func ReadFileWithLimit(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

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
