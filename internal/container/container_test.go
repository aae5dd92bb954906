package container

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/budget-ledger/internal/book"
	"fjacquet/budget-ledger/internal/config"
	"fjacquet/budget-ledger/internal/importer"
	"fjacquet/budget-ledger/internal/logging"
	"fjacquet/budget-ledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Log.Level = "error"
	cfg.Log.Format = "text"
	cfg.Archive.Path = filepath.Join(t.TempDir(), "budget.zip")
	cfg.CSV.Delimiter = ","
	cfg.Import.Target = "imports"
	cfg.Import.Format = "auto"
	return cfg
}

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      func(t *testing.T) *config.Config
		expectError bool
		matcher     string
	}{
		{name: "nil config", config: func(*testing.T) *config.Config { return nil }, expectError: true},
		{name: "substring matching", config: testConfig, matcher: "Substring"},
		{
			name: "regex matching",
			config: func(t *testing.T) *config.Config {
				cfg := testConfig(t)
				cfg.Categorization.Regex = true
				return cfg
			},
			matcher: "Regex",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.config(t)
			c, err := NewContainer(cfg)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "configuration cannot be nil")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, cfg, c.GetConfig())
			assert.NotNil(t, c.GetLogger())
			assert.NotNil(t, c.GetSeedStore())
			assert.NotNil(t, c.GetReportGenerator())
			assert.Equal(t, tt.matcher, c.GetMatcher().Name())
			assert.Equal(t, cfg.Archive.Path, c.GetArchive().Path)
		})
	}
}

func TestNewContainerWithLogger_NilLogger(t *testing.T) {
	_, err := NewContainerWithLogger(testConfig(t), nil)
	assert.Error(t, err)
}

func TestContainer_OpenBookFromSeed(t *testing.T) {
	logger := logging.NewMockLogger()
	c, err := NewContainerWithLogger(testConfig(t), logger)
	require.NoError(t, err)

	b, err := c.OpenBook()
	require.NoError(t, err)
	budget, rules, ledger := b.Serialize()
	assert.NotEmpty(t, budget)
	assert.NotEmpty(t, rules)
	assert.Empty(t, ledger)
	assert.True(t, logger.HasEntry("INFO", "Archive not found, starting from seed data"))
}

func TestContainer_SaveAndReopen(t *testing.T) {
	c, err := NewContainerWithLogger(testConfig(t), logging.NewDiscardLogger())
	require.NoError(t, err)

	b, err := c.OpenBook()
	require.NoError(t, err)
	_, err = b.Import(strings.NewReader("Date,Description,Amount\n2020-03-02,CVS PHARMACY,-20.00\n"),
		book.ImportOptions{Source: "bank.csv", Format: importer.FormatAuto, Target: models.Ledger})
	require.NoError(t, err)
	require.NoError(t, c.SaveBook(b))

	reopened, err := c.OpenBook()
	require.NoError(t, err)
	_, _, ledger := reopened.Serialize()
	require.Len(t, ledger, 1)
	assert.Equal(t, "CVS PHARMACY", ledger[0].Memo)
}

func TestContainer_OpenBookCorruptArchive(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.Archive.Path, []byte("not a zip"), 0600))

	c, err := NewContainerWithLogger(cfg, logging.NewDiscardLogger())
	require.NoError(t, err)
	_, err = c.OpenBook()
	assert.Error(t, err)
}
