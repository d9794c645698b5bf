package participants

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSortedDirectoriesOnly(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "p02"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(base, "p01"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(base, ".sync"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "readme.txt"), []byte("x"), 0o644))

	names, err := List(base)
	require.NoError(t, err)
	assert.Equal(t, []string{"p01", "p02"}, names)
}

func TestListMissingBasePath(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestExists(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "p01"), 0o755))

	assert.True(t, Exists(base, "p01"))
	assert.False(t, Exists(base, "p99"))
}

func TestNotesLookupOrder(t *testing.T) {
	dir := t.TempDir()
	_, ok := Notes(dir)
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("readme"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# Notes"), 0o644))

	content, ok := Notes(dir)
	require.True(t, ok)
	assert.Equal(t, "# Notes", content, "notes.md should win over README.md")
}
