package root_test

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/budget-ledger/cmd/root"
	"fjacquet/budget-ledger/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "budget-ledger", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "Categorize bank transactions")
	assert.NotNil(t, root.Cmd.RunE)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
	assert.True(t, root.Cmd.SilenceUsage)
}

func TestRootCommand_Flags(t *testing.T) {
	archiveFlag := root.Cmd.PersistentFlags().Lookup("archive")
	require.NotNil(t, archiveFlag)
	assert.Equal(t, "a", archiveFlag.Shorthand)

	for _, name := range []string{"config", "log-level", "log-format"} {
		assert.NotNil(t, root.Cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestApplyFlags(t *testing.T) {
	cfg := &config.Config{}
	cfg.Archive.Path = "budget.zip"
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"

	root.ApplyFlags(cfg, root.GlobalFlags{})
	assert.Equal(t, "budget.zip", cfg.Archive.Path)

	root.ApplyFlags(cfg, root.GlobalFlags{Archive: "home.zip", LogLevel: "debug", LogFormat: "json"})
	assert.Equal(t, "home.zip", cfg.Archive.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestRootCommand_PersistentPreRun(t *testing.T) {
	originalConfig, originalContainer, originalFlags := root.AppConfig, root.AppContainer, root.Flags
	defer func() {
		root.AppConfig, root.AppContainer, root.Flags = originalConfig, originalContainer, originalFlags
	}()

	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("log:\n  level: error\n"), 0600))

	root.Flags = root.GlobalFlags{ConfigFile: configFile, Archive: filepath.Join(dir, "book.zip")}
	require.NoError(t, root.Cmd.PersistentPreRunE(root.Cmd, nil))

	require.NotNil(t, root.GetContainer())
	assert.Equal(t, "error", root.GetConfig().Log.Level)
	assert.Equal(t, filepath.Join(dir, "book.zip"), root.GetContainer().GetArchive().Path)
}

func TestRootCommand_PersistentPreRunBadConfig(t *testing.T) {
	originalFlags := root.Flags
	defer func() { root.Flags = originalFlags }()

	root.Flags = root.GlobalFlags{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")}
	assert.Error(t, root.Cmd.PersistentPreRunE(root.Cmd, nil))
}
