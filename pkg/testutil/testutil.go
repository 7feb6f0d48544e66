// Package testutil provides shared helpers for packup tests: an
// in-memory filesystem and tree-building utilities.
package testutil

import (
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/packup/pkg/filesystem"
	"github.com/arthur-debert/packup/pkg/types"
)

// NewMemoryFS returns an in-memory types.FS for tests
func NewMemoryFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}

// WriteTree creates a file tree under root. Keys are slash-separated
// relative paths; a key ending in "/" creates an empty directory.
func WriteTree(t *testing.T, fs types.FS, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(strings.TrimSuffix(rel, "/")))
		if strings.HasSuffix(rel, "/") {
			require.NoError(t, fs.MkdirAll(abs, 0755))
			continue
		}
		require.NoError(t, fs.MkdirAll(filepath.Dir(abs), 0755))
		require.NoError(t, fs.WriteFile(abs, []byte(content), 0644))
	}
}

// ReadFileString reads a file and fails the test on error
func ReadFileString(t *testing.T, fs types.FS, elem ...string) string {
	t.Helper()
	data, err := fs.ReadFile(filepath.Join(elem...))
	require.NoError(t, err)
	return string(data)
}

// Exists reports whether a path exists on the filesystem
func Exists(fs types.FS, elem ...string) bool {
	_, err := fs.Stat(filepath.Join(elem...))
	return err == nil
}

// ListFiles returns every regular file under root as slash-separated
// relative paths, sorted by the walk order
func ListFiles(t *testing.T, fs types.FS, root string) []string {
	t.Helper()
	var out []string
	var walk func(rel string)
	walk = func(rel string) {
		abs := root
		if rel != "" {
			abs = filepath.Join(root, filepath.FromSlash(rel))
		}
		entries, err := fs.ReadDir(abs)
		require.NoError(t, err)
		for _, e := range entries {
			entryRel := path.Join(rel, e.Name())
			if e.IsDir() {
				walk(entryRel)
			} else {
				out = append(out, entryRel)
			}
		}
	}
	walk("")
	return out
}
