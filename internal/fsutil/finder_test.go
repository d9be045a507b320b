package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}
}

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "settings.hcl", "nested/plugins.hcl", "README.md")

	files, err := FindFilesByExtension(root, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "nested", "plugins.hcl"),
		filepath.Join(root, "settings.hcl"),
	}, files)

	assert.Panics(t, func() { _, _ = FindFilesByExtension(root, "") })
}

func TestExpandPaths(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.hcl", "dir/b.hcl", "dir/c.txt", "script.conf")

	files, err := ExpandPaths([]string{
		filepath.Join(root, "script.conf"),
		filepath.Join(root, "dir"),
		filepath.Join(root, "dir", "b.hcl"),
	}, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "script.conf"),
		filepath.Join(root, "dir", "b.hcl"),
	}, files)

	_, err = ExpandPaths([]string{filepath.Join(root, "missing")}, ".hcl")
	assert.ErrorContains(t, err, "cannot access")
}
