package importcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/budget-ledger/cmd/root"
	"fjacquet/budget-ledger/internal/config"
	"fjacquet/budget-ledger/internal/container"
	"fjacquet/budget-ledger/internal/importer"
	"fjacquet/budget-ledger/internal/logging"
	"fjacquet/budget-ledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statement = `Trans. Date,Description,Amount
03/02/2020,CVS PHARMACY,-20.00
03/09/2020,Trader Joe's,-100.00
03/20/2020,SHELL OIL,-40.00
`

func setup(t *testing.T) (*container.Container, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Log.Level = "error"
	cfg.Log.Format = "text"
	cfg.Archive.Path = filepath.Join(dir, "budget.zip")
	cfg.CSV.Delimiter = ","
	cfg.Import.Target = "imports"
	cfg.Import.Format = "auto"

	c, err := container.NewContainerWithLogger(cfg, logging.NewDiscardLogger())
	require.NoError(t, err)

	original := root.AppContainer
	root.AppContainer = c
	t.Cleanup(func() {
		root.AppContainer = original
		target, format, delimiter = "", "", ""
	})

	file := filepath.Join(dir, "statement.csv")
	require.NoError(t, os.WriteFile(file, []byte(statement), 0600))
	return c, file
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	Cmd.SetOut(&out)
	err := Cmd.RunE(Cmd, args)
	return out.String(), err
}

func TestImportCommand_Metadata(t *testing.T) {
	assert.Equal(t, "import PATH...", Cmd.Use)
	for _, name := range []string{"target", "format", "delimiter"} {
		assert.NotNil(t, Cmd.Flags().Lookup(name), name)
	}
}

func TestImportCommand_IntoImports(t *testing.T) {
	c, file := setup(t)

	out, err := execute(t, file)
	require.NoError(t, err)
	assert.Contains(t, out, "statement.csv: read 3, new 3, duplicates 0")
	assert.Contains(t, out, "categorized 2, unmatched 1, ambiguous 0")

	out, err = execute(t, file)
	require.NoError(t, err)
	assert.Contains(t, out, "new 0, duplicates 3")

	b, err := c.OpenBook()
	require.NoError(t, err)
	imports, duplicates := b.Staged()
	assert.Len(t, imports, 3)
	assert.Len(t, duplicates, 3)
}

func TestImportCommand_IntoLedger(t *testing.T) {
	c, file := setup(t)
	target = "ledger"

	_, err := execute(t, file)
	require.NoError(t, err)

	b, err := c.OpenBook()
	require.NoError(t, err)
	_, _, ledger := b.Serialize()
	assert.Len(t, ledger, 3)
}

func TestImportCommand_ParseErrorLeavesArchive(t *testing.T) {
	c, file := setup(t)
	bad := filepath.Join(filepath.Dir(file), "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("Date,Description,Amount\nnot-a-date,X,1\n"), 0600))

	_, err := execute(t, file, bad)
	require.Error(t, err)
	assert.False(t, c.GetArchive().Exists())
}

func TestOptions(t *testing.T) {
	opts, err := options("ledger", "qfx", ";")
	require.NoError(t, err)
	assert.Equal(t, models.Ledger, opts.Target)
	assert.Equal(t, importer.FormatOFX, opts.Format)
	assert.Equal(t, ';', opts.Delimiter)

	_, err = options("duplicates", "auto", ",")
	assert.Error(t, err)
	_, err = options("imports", "pdf", ",")
	assert.Error(t, err)
	_, err = options("imports", "auto", ";;")
	assert.Error(t, err)
}

func TestImportCommand_Directory(t *testing.T) {
	c, file := setup(t)
	dir := filepath.Dir(file)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0600))

	out, err := execute(t, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "statement.csv: read 3, new 3, duplicates 0")
	assert.NotContains(t, out, "notes.txt")

	b, err := c.OpenBook()
	require.NoError(t, err)
	imports, _ := b.Staged()
	assert.Len(t, imports, 3)
}

func TestImportCommand_EmptyDirectory(t *testing.T) {
	setup(t)
	_, err := execute(t, t.TempDir())
	assert.ErrorContains(t, err, "no statement files found")
}
