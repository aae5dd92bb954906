package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvFrom(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("BUDGET_ENV_ARCHIVE=from-dotenv.zip\nBUDGET_ENV_KEPT=dotenv\n"), 0600))

	t.Setenv("BUDGET_ENV_KEPT", "environment")
	t.Setenv("BUDGET_ENV_ARCHIVE", "")
	require.NoError(t, os.Unsetenv("BUDGET_ENV_ARCHIVE"))

	loaded := loadEnvFrom([]string{filepath.Join(dir, "missing.env"), envFile})
	assert.Equal(t, envFile, loaded)
	assert.Equal(t, "from-dotenv.zip", os.Getenv("BUDGET_ENV_ARCHIVE"))
	assert.Equal(t, "environment", os.Getenv("BUDGET_ENV_KEPT"))
}

func TestLoadEnvFrom_NoFile(t *testing.T) {
	assert.Empty(t, loadEnvFrom([]string{filepath.Join(t.TempDir(), ".env")}))
}

func TestEnvFiles(t *testing.T) {
	files := envFiles()
	require.NotEmpty(t, files)
	assert.Equal(t, ".env", files[0])
}
