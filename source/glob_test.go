package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("vocab: {}\n"), 0644))
	}
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.yml", "b.yaml", "notes.txt", "nested/c.yml", "nested/deep/d.yaml")

	t.Run("plain file", func(t *testing.T) {
		got, err := Expand([]string{filepath.Join(dir, "a.yml")})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "a.yml")}, got)
	})

	t.Run("single level glob", func(t *testing.T) {
		got, err := Expand([]string{filepath.Join(dir, "*")})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{filepath.Join(dir, "a.yml"), filepath.Join(dir, "b.yaml")}, got)
	})

	t.Run("recursive glob", func(t *testing.T) {
		got, err := Expand([]string{filepath.Join(dir, "**", "*.yml")})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{filepath.Join(dir, "a.yml"), filepath.Join(dir, "nested", "c.yml")}, got)
	})

	t.Run("directory", func(t *testing.T) {
		got, err := Expand([]string{filepath.Join(dir, "nested")})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{
			filepath.Join(dir, "nested", "c.yml"),
			filepath.Join(dir, "nested", "deep", "d.yaml"),
		}, got)
	})

	t.Run("deduplicated in order", func(t *testing.T) {
		got, err := Expand([]string{filepath.Join(dir, "b.yaml"), filepath.Join(dir, "*.y*ml")})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "b.yaml"), filepath.Join(dir, "a.yml")}, got)
	})

	t.Run("non yaml file", func(t *testing.T) {
		_, err := Expand([]string{filepath.Join(dir, "notes.txt")})
		assert.Error(t, err)
	})

	t.Run("no match", func(t *testing.T) {
		_, err := Expand([]string{filepath.Join(dir, "*.json")})
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Expand([]string{filepath.Join(dir, "nope.yml")})
		assert.Error(t, err)
	})
}

func TestIsVocabFile(t *testing.T) {
	for path, want := range map[string]bool{
		"a.yml":     true,
		"a.YAML":    true,
		"a.json":    false,
		"README":    false,
		"dir/x.yml": true,
	} {
		assert.Equal(t, want, IsVocabFile(path), path)
	}
}
