// Package importcmd implements the import command
package importcmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/budget-ledger/cmd/common"
	"fjacquet/budget-ledger/cmd/root"
	"fjacquet/budget-ledger/internal/book"
	"fjacquet/budget-ledger/internal/fileutils"
	"fjacquet/budget-ledger/internal/importer"
	"fjacquet/budget-ledger/internal/logging"
	"fjacquet/budget-ledger/internal/models"

	"github.com/spf13/cobra"
)

var (
	target    string
	format    string
	delimiter string
)

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import PATH...",
	Short: "Import bank statements into Imports or the Ledger",
	Long: `Import reads CSV or OFX bank statements, assigns each transaction a stable
identifier, routes already known transactions to Duplicates and categorizes the
new ones with the keyword rules. Files are merged in order. A directory imports
every .csv, .ofx and .qfx file below it in name order. A file that cannot be
parsed aborts the command and the archive is left unchanged.`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&target, "target", "t", "", "Destination table: imports or ledger (default from configuration)")
	Cmd.Flags().StringVarP(&format, "format", "f", "", "File format: auto, csv or ofx (default from configuration)")
	Cmd.Flags().StringVarP(&delimiter, "delimiter", "d", "", "CSV delimiter (default from configuration)")
}

func run(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return fmt.Errorf("application not initialized")
	}
	cfg := c.GetConfig()

	opts, err := options(firstNonEmpty(target, cfg.Import.Target), firstNonEmpty(format, cfg.Import.Format),
		firstNonEmpty(delimiter, cfg.CSV.Delimiter))
	if err != nil {
		return err
	}

	files, err := fileutils.ExpandStatementFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no statement files found")
	}

	return common.UpdateBook(c, func(b *book.Book) error {
		for _, file := range files {
			result, err := importFile(b, file, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: read %d, new %d, duplicates %d\n",
				filepath.Base(file), result.Read, result.New, result.Duplicates)
			common.PrintCategorizeResult(cmd.OutOrStdout(), result.Categorize)
		}
		return nil
	})
}

func importFile(b *book.Book, file string, opts book.ImportOptions) (models.ImportResult, error) {
	f, err := fileutils.OpenFile(file)
	if err != nil {
		return models.ImportResult{}, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to close file", logging.F(logging.FieldFile, file))
		}
	}()

	opts.Source = file
	return b.Import(f, opts)
}

func options(targetName, formatName, delim string) (book.ImportOptions, error) {
	kind, err := models.ParseKind(targetName)
	if err != nil {
		return book.ImportOptions{}, err
	}
	if kind != models.Imports && kind != models.Ledger {
		return book.ImportOptions{}, fmt.Errorf("cannot import into %s", kind)
	}
	f, err := importer.ParseFormat(formatName)
	if err != nil {
		return book.ImportOptions{}, err
	}
	runes := []rune(delim)
	if len(runes) != 1 {
		return book.ImportOptions{}, fmt.Errorf("delimiter must be a single character, got %q", delim)
	}
	return book.ImportOptions{Format: f, Target: kind, Delimiter: runes[0]}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
