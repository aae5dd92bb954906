package book

import (
	"io"

	"fjacquet/budget-ledger/internal/dateutils"
	"fjacquet/budget-ledger/internal/importer"
	"fjacquet/budget-ledger/internal/logging"
	"fjacquet/budget-ledger/internal/models"
	"fjacquet/budget-ledger/internal/store"
)

// ImportOptions controls how an import file is read and where it lands.
type ImportOptions struct {
	Source    string // file name, used for format detection and errors
	Format    importer.Format
	Target    models.Kind // models.Imports or models.Ledger
	Delimiter rune
}

// Import parses r and merges its transactions into the target store. A file
// that fails to parse returns a *budgeterror.ParseError and merges nothing.
func (b *Book) Import(r io.Reader, opts ImportOptions) (models.ImportResult, error) {
	records, err := importer.Parse(r, opts.Source, opts.Format, opts.Delimiter)
	if err != nil {
		b.logger.WithError(err).WithField(logging.FieldFile, opts.Source).Warn("Import file could not be parsed")
		return models.ImportResult{}, err
	}

	var result models.ImportResult
	err = b.mutate("import", func(set *store.Set) error {
		var err error
		result, err = b.merger.Merge(set, records, opts.Target)
		return err
	})
	if err != nil {
		return models.ImportResult{}, err
	}
	result.Categorize.LogSummary(b.logger, opts.Target)
	return result, nil
}

// AutoCategorize categorizes the unassigned transactions of one store.
func (b *Book) AutoCategorize(kind models.Kind) (models.CategorizeResult, error) {
	var result models.CategorizeResult
	err := b.mutate("auto_categorize", func(set *store.Set) error {
		var err error
		result, err = b.categorizer.AutoCategorize(set.Store(kind), set.Rules)
		return err
	})
	if err != nil {
		return models.CategorizeResult{}, err
	}
	result.LogSummary(b.logger, kind)
	return result, nil
}

// Accept moves categorized imports into the Ledger.
func (b *Book) Accept() (models.AcceptResult, error) {
	var result models.AcceptResult
	err := b.mutate("accept", func(set *store.Set) error {
		var err error
		result, err = b.merger.Accept(set)
		return err
	})
	return result, err
}

// Summarize computes the budget summary for [start, end] and stores the
// derived figures on the budget rows.
func (b *Book) Summarize(start, end models.Date) ([]models.SummaryRow, error) {
	var rows []models.SummaryRow
	err := b.mutate("summarize", func(set *store.Set) error {
		var err error
		rows, err = b.aggregator.Summarize(set, start, end)
		if err != nil {
			return err
		}
		set.Budget.ApplySummary(rows)
		return nil
	})
	return rows, err
}

// SummarizeYear summarizes one Ledger year, or every year for
// dateutils.AllYears.
func (b *Book) SummarizeYear(selection string) ([]models.SummaryRow, error) {
	start, end, err := dateutils.YearRange(selection, b.Years())
	if err != nil {
		return nil, err
	}
	return b.Summarize(start, end)
}

// ClearImports empties Imports and returns the number of rows removed.
func (b *Book) ClearImports() (int, error) {
	return b.clear(models.Imports)
}

// ClearDuplicates empties Duplicates and returns the number of rows removed.
func (b *Book) ClearDuplicates() (int, error) {
	return b.clear(models.Duplicates)
}

func (b *Book) clear(kind models.Kind) (int, error) {
	n := 0
	err := b.mutate("clear", func(set *store.Set) error {
		n = set.Store(kind).Clear()
		return nil
	})
	if err != nil {
		return 0, err
	}
	b.logger.WithFields(logging.F(logging.FieldTable, kind.String()), logging.F(logging.FieldCount, n)).Info("Table cleared")
	return n, nil
}
