package file

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch_Success(t *testing.T) {
	t.Parallel()

	content := []byte("[dev]\nDEBUG = true\n")

	memFs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memFs, "/etc/app/local.cfg", content, 0o600))

	fetcher, err := NewFetcher(memFs, "/etc/app/local.cfg")()
	require.NoError(t, err)

	data, err := fetcher.Fetch()

	require.NoError(t, err)
	assert.Equal(t, content, data)
	assert.Equal(t, "/etc/app/local.cfg", fetcher.Path())
	assert.True(t, fetcher.Exists())
}

func TestFetcher_Fetch_RereadsFile(t *testing.T) {
	t.Parallel()

	memFs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memFs, "/local.cfg", []byte("[dev]\nA = 1\n"), 0o600))

	fetcher, err := NewFetcher(memFs, "/local.cfg")()
	require.NoError(t, err)

	require.NoError(t, afero.WriteFile(memFs, "/local.cfg", []byte("[dev]\nA = 2\n"), 0o600))

	data, err := fetcher.Fetch()

	require.NoError(t, err)
	assert.Equal(t, "[dev]\nA = 2\n", string(data))
}

func TestFetcher_Fetch_FileVanished(t *testing.T) {
	t.Parallel()

	memFs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memFs, "/local.cfg", []byte("[dev]\n"), 0o600))

	fetcher, err := NewFetcher(memFs, "/local.cfg")()
	require.NoError(t, err)

	require.NoError(t, memFs.Remove("/local.cfg"))

	assert.False(t, fetcher.Exists())

	_, err = fetcher.Fetch()

	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "reading file")
}

func TestFetcher_FileNotFound(t *testing.T) {
	t.Parallel()

	fetcher, err := NewFetcher(afero.NewMemMapFs(), "/nonexistent/path/local.cfg")()

	require.Error(t, err)
	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.Nil(t, fetcher)
	assert.Contains(t, err.Error(), "stat file")
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestFetcher_PathIsDirectory(t *testing.T) {
	t.Parallel()

	memFs := afero.NewMemMapFs()
	require.NoError(t, memFs.MkdirAll("/etc/app", 0o755))

	fetcher, err := NewFetcher(memFs, "/etc/app")()

	require.ErrorIs(t, err, ErrPathIsDirectory)
	assert.Nil(t, fetcher)
}

func TestFetcher_CleansPath(t *testing.T) {
	t.Parallel()

	memFs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memFs, "/etc/app/local.cfg", []byte("x"), 0o600))

	fetcher, err := NewFetcher(memFs, "/etc/app/../app/./local.cfg")()
	require.NoError(t, err)

	assert.Equal(t, "/etc/app/local.cfg", fetcher.Path())
}

func TestFetcher_NilFsUsesOS(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "local.cfg")
	require.NoError(t, os.WriteFile(configPath, []byte("[dev]\n"), 0o600))

	fetcher, err := NewFetcher(nil, configPath)()
	require.NoError(t, err)

	data, err := fetcher.Fetch()

	require.NoError(t, err)
	assert.Equal(t, "[dev]\n", string(data))
}
