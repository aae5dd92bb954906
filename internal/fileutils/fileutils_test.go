package fileutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/budget-ledger/internal/fileutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.csv")
	require.NoError(t, os.WriteFile(testFile, []byte("test"), 0600))

	assert.True(t, fileutils.FileExists(testFile))
	assert.False(t, fileutils.FileExists(filepath.Join(tmpDir, "nonexistent.csv")))
	assert.False(t, fileutils.FileExists(tmpDir))
}

func TestDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()
	assert.True(t, fileutils.DirectoryExists(tmpDir))
	assert.False(t, fileutils.DirectoryExists(filepath.Join(tmpDir, "missing")))
}

func TestEnsureDirectoryExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, fileutils.EnsureDirectoryExists(dir))
	assert.True(t, fileutils.DirectoryExists(dir))
	require.NoError(t, fileutils.EnsureDirectoryExists(dir))
}

func TestOpenAndCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "summary.csv")

	_, err := fileutils.OpenFile(path)
	assert.Error(t, err)

	f, err := fileutils.CreateFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	f, err = fileutils.OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func TestIsStatementFile(t *testing.T) {
	assert.True(t, fileutils.IsStatementFile("march.CSV"))
	assert.True(t, fileutils.IsStatementFile("/tmp/checking.qfx"))
	assert.True(t, fileutils.IsStatementFile("checking.ofx"))
	assert.False(t, fileutils.IsStatementFile("notes.txt"))
}

func TestExpandStatementFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.csv", "a.ofx", "readme.txt", filepath.Join("sub", "c.qfx")} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
	}

	files, err := fileutils.ExpandStatementFiles([]string{"single.csv", dir})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"single.csv",
		filepath.Join(dir, "a.ofx"),
		filepath.Join(dir, "b.csv"),
		filepath.Join(dir, "sub", "c.qfx"),
	}, files)
}
