// Package file provides a file-based DataFetcher implementation for the config package.
//
// This package reads settings files through an afero.Fs, so the same code runs
// against the OS filesystem in production and an in-memory filesystem in tests.
// It implements the config.DataFetcher interface, returning raw bytes for
// subsequent parsing.
//
// The file is checked at construction time but read on every Fetch, so a
// loader always sees the current contents. A file that disappears after
// construction makes Fetch fail with an error wrapping fs.ErrNotExist, and
// Exists reports false.
//
// Usage:
//
//	fetcher, err := file.NewFetcher(afero.NewOsFs(), "/etc/app/local.cfg")()
//	if err != nil {
//	    // Handle error: file not found, permission denied, path is directory, etc.
//	}
//	data, err := fetcher.Fetch()
//
// Error Handling:
//   - Construction returns an error if the file cannot be stat'ed or is a directory
//   - Errors include the filepath for easier debugging
//   - Use errors.Is(err, fs.ErrNotExist) to detect a missing file
//   - Use errors.Is(err, file.ErrPathIsDirectory) to check for directory errors
package file
