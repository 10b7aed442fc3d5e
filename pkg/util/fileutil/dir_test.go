package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDirNames(t *testing.T) {
	path := t.TempDir()
	for _, name := range []string{"beta", "alpha", ".hidden"} {
		require.NoError(t, os.Mkdir(filepath.Join(path, name), 0755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(path, "file"), []byte("x"), 0644))

	dirs, err := ListDirNames(path, -1)
	assert.NoError(t, err)
	assert.Len(t, dirs, 3)

	dirs, err = ListDirNames(path, 1)
	assert.NoError(t, err)
	assert.Len(t, dirs, 1)
}

func TestListVisibleDirNames(t *testing.T) {
	path := t.TempDir()
	for _, name := range []string{"beta", "alpha", ".hidden"} {
		require.NoError(t, os.Mkdir(filepath.Join(path, name), 0755))
	}

	dirs, err := ListVisibleDirNames(path, -1)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"alpha", "beta"}, dirs)

	dirs, err = ListVisibleDirNamesWithSort(path, -1)
	assert.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, dirs)
}

func TestListVisibleDirNamesEmpty(t *testing.T) {
	dirs, err := ListVisibleDirNames(t.TempDir(), -1)
	assert.NoError(t, err)
	assert.Empty(t, dirs)

	_, err = ListVisibleDirNames(filepath.Join(t.TempDir(), "nope"), -1)
	assert.Error(t, err)
}
