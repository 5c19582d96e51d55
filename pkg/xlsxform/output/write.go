package output

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrIO indicates the output document could not be written.
var ErrIO = errors.New("output write failed")

// WriteFile replaces path with data atomically: the bytes go to a temporary
// file in the same directory which is renamed over path once fully written.
// On failure no partial file is left behind and path is untouched.
func WriteFile(fsys afero.Fs, path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := afero.TempFile(fsys, dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrIO, path, err)
	}
	tmpName := tmp.Name()

	cleanup := func(cause error) error {
		_ = tmp.Close()
		_ = fsys.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrIO, path, cause)
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		_ = fsys.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrIO, path, err)
	}
	if err := fsys.Chmod(tmpName, 0o644); err != nil {
		_ = fsys.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrIO, path, err)
	}
	if err := fsys.Rename(tmpName, path); err != nil {
		_ = fsys.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrIO, path, err)
	}
	return nil
}
