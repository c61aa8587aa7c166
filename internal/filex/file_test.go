package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesNestedDirs(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "a", "b", "data.db")

	require.NoError(t, EnsureParentDir(target))

	info, err := os.Stat(filepath.Join(base, "a", "b"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureParentDir_ExistingIsFine(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, EnsureParentDir(filepath.Join(base, "x.db")))
	require.NoError(t, EnsureParentDir(filepath.Join(base, "x.db")))
}

func TestEnsureParentDir_FileInTheWay(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := EnsureParentDir(filepath.Join(blocker, "sub", "x.db"))
	assert.Error(t, err)
}
