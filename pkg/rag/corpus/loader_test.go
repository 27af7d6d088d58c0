package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDirectoryLoader_LoadSources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.md"), "# B")
	writeFile(t, filepath.Join(dir, "a.txt"), "plain")
	writeFile(t, filepath.Join(dir, "sub", "c.MARKDOWN"), "# C")
	writeFile(t, filepath.Join(dir, "image.png"), "binary")

	sources, err := NewDirectoryLoader(dir).LoadSources(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []RawSection{
		{Source: "a.txt", Text: "plain"},
		{Source: "b.md", Text: "# B"},
		{Source: "sub/c.MARKDOWN", Text: "# C"},
	}, sources)
}

func TestDirectoryLoader_CreatesMissingRoot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs")

	sources, err := NewDirectoryLoader(dir).LoadSources(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sources)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDirectoryLoader_CustomExtensions(t *testing.T) {
	l := NewDirectoryLoader(t.TempDir(), ".rst")
	assert.True(t, l.Supports("x/guide.RST"))
	assert.False(t, l.Supports("guide.md"))
}

func TestDirectoryLoader_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "# A")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDirectoryLoader(dir).LoadSources(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestLoad(t *testing.T) {
	idx, err := Load(context.Background(), StaticLoader{
		{Source: "ia.md", Text: "# Intelligence Artificielle\nDéfinition."},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, idx.Len())

	_, err = Load(context.Background(), StaticLoader{{Source: "", Text: "x"}})
	var cerr *CorpusError
	assert.True(t, errors.As(err, &cerr))
}
