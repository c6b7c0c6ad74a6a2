package file

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrPathIsDirectory is returned when the path provided to the Fetcher points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// Fetcher implements config.DataFetcher interface for file-based settings.
type Fetcher struct {
	fs       afero.Fs
	filepath string
}

// NewFetcher returns a constructor function that creates a new file-based Fetcher
// for fpath on fsys. A nil fsys means the OS filesystem.
// This pattern is Fx-friendly, allowing the DI container to control when instantiation happens.
// Returns an error if the file cannot be stat'ed or if the path points to a directory.
func NewFetcher(fsys afero.Fs, fpath string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		if fsys == nil {
			fsys = afero.NewOsFs()
		}

		cleanPath := filepath.Clean(fpath)

		stat, err := fsys.Stat(cleanPath)
		if err != nil {
			return nil, fmt.Errorf("stat file %q: %w", cleanPath, err)
		}

		if stat.IsDir() {
			return nil, fmt.Errorf("path %q: %w", cleanPath, ErrPathIsDirectory)
		}

		return &Fetcher{
			fs:       fsys,
			filepath: cleanPath,
		}, nil
	}
}

// Fetch reads the current contents of the file.
func (f *Fetcher) Fetch() ([]byte, error) {
	data, err := afero.ReadFile(f.fs, f.filepath)
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", f.filepath, err)
	}

	return data, nil
}

// Exists reports whether the file is still present.
func (f *Fetcher) Exists() bool {
	ok, err := afero.Exists(f.fs, f.filepath)

	return ok && err == nil
}

// Path returns the cleaned file path.
func (f *Fetcher) Path() string {
	return f.filepath
}
