package resolve_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/0xalexb/hjarta-settings/resolve"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	registry := resolve.NewRegistry().
		MustRegister("os.path", "path-module").
		MustRegister("app.handlers.Console", 42)

	value, err := registry.Resolve("os.path")
	require.NoError(t, err)
	assert.Equal(t, "path-module", value)

	value, err = registry.Resolve("app.handlers.Console")
	require.NoError(t, err)
	assert.Equal(t, 42, value)

	assert.Equal(t, []string{"app.handlers.Console", "os.path"}, registry.Names())
}

func TestRegistry_NotFound(t *testing.T) {
	t.Parallel()

	_, err := resolve.NewRegistry().Resolve("missing.Name")

	require.ErrorIs(t, err, resolve.ErrNotFound)
	assert.Contains(t, err.Error(), "missing.Name")
}

func TestRegistry_EmptyName(t *testing.T) {
	t.Parallel()

	err := resolve.NewRegistry().Register(" ", 1)

	require.ErrorIs(t, err, resolve.ErrEmptyName)
	assert.Panics(t, func() {
		resolve.NewRegistry().MustRegister("", 1)
	})
}

func TestFunc(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	resolver := resolve.Func(func(name string) (any, error) {
		if name == "bad" {
			return nil, errBoom
		}

		return "resolved " + name, nil
	})

	value, err := resolver.Resolve("x")
	require.NoError(t, err)
	assert.Equal(t, "resolved x", value)

	_, err = resolver.Resolve("bad")
	require.ErrorIs(t, err, errBoom)
}

func TestFromDotenv(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/app/.env", []byte("DATABASE_URL=postgres://db\nMODE=base\n"), 0o600))
	require.NoError(t, afero.WriteFile(fsys, "/app/.env.local", []byte("MODE=local\n"), 0o600))

	registry, err := resolve.FromDotenv(fsys, "env.", "/app/.env", "/app/.env.local")
	require.NoError(t, err)

	value, err := registry.Resolve("env.DATABASE_URL")
	require.NoError(t, err)
	assert.Equal(t, "postgres://db", value)

	value, err = registry.Resolve("env.MODE")
	require.NoError(t, err)
	assert.Equal(t, "local", value)
}

func TestFromDotenv_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := resolve.FromDotenv(afero.NewMemMapFs(), "", "/app/missing.env")

	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "reading dotenv")
}

func TestFromDotenv_OnlyReadsGivenFs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	name := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(name, []byte("MODE=disk\n"), 0o600))

	_, err := resolve.FromDotenv(afero.NewMemMapFs(), "", name)
	require.ErrorIs(t, err, fs.ErrNotExist)

	registry, err := resolve.FromDotenv(afero.NewOsFs(), "", name)
	require.NoError(t, err)

	value, err := registry.Resolve("MODE")
	require.NoError(t, err)
	assert.Equal(t, "disk", value)
}
