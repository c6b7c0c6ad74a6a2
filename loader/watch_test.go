package loader_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/0xalexb/hjarta-settings/loader"
	"github.com/0xalexb/hjarta-settings/tree"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loads struct {
	mu      sync.Mutex
	results []*loader.Result
	errs    []error
}

func (l *loads) record(result *loader.Result, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.results = append(l.results, result)
	l.errs = append(l.errs, err)
}

func (l *loads) last() (*loader.Result, int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.results) == 0 {
		return nil, 0, nil
	}

	return l.results[len(l.results)-1], len(l.results), l.errs[len(l.errs)-1]
}

func TestWatch_ReloadsOnChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	basePath := filepath.Join(dir, "base.cfg")
	localPath := filepath.Join(dir, "local.cfg")

	require.NoError(t, os.WriteFile(basePath, []byte("[dev]\nNAME = \"base\"\n"), 0o600))
	require.NoError(t, os.WriteFile(localPath, []byte("[dev]\nextends = \"base.cfg\"\n"), 0o600))

	l, err := loader.New(localPath, loader.WithDebounce(20*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())

	var (
		recorded loads
		done     = make(chan error, 1)
	)

	go func() {
		done <- l.Watch(ctx, tree.NewOrderedMap(), recorded.record)
	}()

	require.Eventually(t, func() bool {
		result, n, err := recorded.last()

		return n >= 1 && err == nil && result != nil
	}, 5*time.Second, 10*time.Millisecond)

	result, _, _ := recorded.last()
	name, err := result.Lookup("NAME")
	require.NoError(t, err)
	assert.Equal(t, tree.String("base"), name)

	// a change to an extended file triggers a reload
	require.NoError(t, os.WriteFile(basePath, []byte("[dev]\nNAME = \"changed\"\n"), 0o600))

	require.Eventually(t, func() bool {
		result, _, err := recorded.last()
		if err != nil || result == nil {
			return false
		}

		name, err := result.Lookup("NAME")

		return err == nil && name == tree.String("changed")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
