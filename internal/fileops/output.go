package fileops

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	statFile   = os.Stat
	openFile   = os.OpenFile
	removeFile = os.Remove
)

// ErrOutputExists is returned by OpenOutput when the target exists and
// overwriting was not allowed.
var ErrOutputExists = errors.New("output file already exists")

// OpenInput opens path read-only.
func OpenInput(path string) (*os.File, error) {
	target := strings.TrimSpace(path)
	if target == "" {
		return nil, fmt.Errorf("input path is empty")
	}
	return openFile(target, os.O_RDONLY, 0)
}

// OpenOutput creates or truncates path for writing. An existing file is
// left untouched unless overwrite is set. The existence check and the
// create are not atomic.
func OpenOutput(path string, overwrite bool) (*os.File, error) {
	target := strings.TrimSpace(path)
	if target == "" {
		return nil, fmt.Errorf("output path is empty")
	}

	info, err := statFile(target)
	switch {
	case err == nil:
		if info.IsDir() {
			return nil, fmt.Errorf("output path is a directory: %s", target)
		}
		if !overwrite {
			return nil, ErrOutputExists
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("stat output %q: %w", target, err)
	}

	return openFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
}

// Discard closes f and removes the file behind it. Used for outputs left
// behind by a failed run.
func Discard(f *os.File) error {
	if f == nil {
		return nil
	}
	name := f.Name()
	closeErr := f.Close()
	if closeErr != nil && errors.Is(closeErr, os.ErrClosed) {
		closeErr = nil
	}
	if err := removeFile(name); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove partial output %q: %w", name, err)
	}
	return closeErr
}
