// Package archive persists a book as a zip file holding Budget.csv,
// Rules.csv and Ledger.csv. Pending Imports and Duplicates are kept in
// Imports.csv and Duplicates.csv, which older archives may lack.
package archive

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"fjacquet/budget-ledger/internal/book"
	"fjacquet/budget-ledger/internal/fileutils"
	"fjacquet/budget-ledger/internal/logging"
	"fjacquet/budget-ledger/internal/models"
	"fjacquet/budget-ledger/internal/validation"

	"github.com/gocarina/gocsv"
)

// Entry names inside the archive.
const (
	BudgetEntry = "Budget.csv"
	RulesEntry  = "Rules.csv"
	LedgerEntry = "Ledger.csv"

	ImportsEntry    = "Imports.csv"
	DuplicatesEntry = "Duplicates.csv"
)

// Tables is the persisted content of a book.
type Tables struct {
	Budget []models.BudgetCategory
	Rules  []models.Rule
	Ledger []models.Transaction

	Imports    []models.Transaction
	Duplicates []models.Transaction
}

// Archive reads and writes one archive file.
type Archive struct {
	Path      string
	Delimiter rune
	logger    logging.Logger
}

// NewArchive creates an Archive for path. A zero delimiter means comma.
func NewArchive(path string, delimiter rune, logger logging.Logger) *Archive {
	if delimiter == 0 {
		delimiter = ','
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Archive{Path: path, Delimiter: delimiter, logger: logger}
}

// Exists reports whether the archive file is present.
func (a *Archive) Exists() bool {
	return fileutils.FileExists(a.Path)
}

// Load reads every table held by the archive.
func (a *Archive) Load() (Tables, error) {
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return Tables{}, fmt.Errorf("error reading archive: %w", err)
	}
	if info, err := os.Stat(a.Path); err == nil {
		if err := validation.IsValidFilePermissions(info.Mode().Perm()); err != nil {
			a.logger.WithError(err).Warn("Archive is readable by other users",
				logging.F(logging.FieldArchive, a.Path))
		}
	}
	tables, err := Decode(bytes.NewReader(data), int64(len(data)), a.Delimiter)
	if err != nil {
		return Tables{}, fmt.Errorf("error decoding archive %s: %w", a.Path, err)
	}
	a.logger.WithFields(
		logging.F(logging.FieldArchive, a.Path),
		logging.F("categories", len(tables.Budget)),
		logging.F("rules", len(tables.Rules)),
		logging.F("ledger", len(tables.Ledger)),
	).Debug("Archive loaded")
	return tables, nil
}

// Save writes every table. The archive is written to a temporary file
// in the same directory and renamed over the old one.
func (a *Archive) Save(tables Tables) error {
	dir := filepath.Dir(a.Path)
	if err := fileutils.EnsureDirectoryExists(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(a.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating archive: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if err := Encode(tmp, tables, a.Delimiter); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("error encoding archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error closing archive: %w", err)
	}
	if err := os.Rename(tmp.Name(), a.Path); err != nil {
		return fmt.Errorf("error replacing archive: %w", err)
	}

	a.logger.WithFields(
		logging.F(logging.FieldArchive, a.Path),
		logging.F("ledger", len(tables.Ledger)),
	).Info("Archive saved")
	return nil
}

// Encode writes tables as a zip archive to w.
func Encode(w io.Writer, tables Tables, delimiter rune) error {
	zw := zip.NewWriter(w)

	budget := make([]*BudgetRecord, len(tables.Budget))
	for i, b := range tables.Budget {
		budget[i] = fromBudget(b)
	}
	rules := make([]*RuleRecord, len(tables.Rules))
	for i, r := range tables.Rules {
		rules[i] = fromRule(r)
	}
	ledger := transactionRecords(tables.Ledger)
	imports := transactionRecords(tables.Imports)
	duplicates := transactionRecords(tables.Duplicates)

	entries := []struct {
		name    string
		records interface{}
	}{
		{BudgetEntry, &budget},
		{RulesEntry, &rules},
		{LedgerEntry, &ledger},
		{ImportsEntry, &imports},
		{DuplicatesEntry, &duplicates},
	}
	for _, e := range entries {
		f, err := zw.Create(e.name)
		if err != nil {
			return err
		}
		csvWriter := csv.NewWriter(f)
		csvWriter.Comma = delimiter
		if err := gocsv.MarshalCSV(e.records, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
			return fmt.Errorf("%s: %w", e.name, err)
		}
	}
	return zw.Close()
}

// Decode reads the tables from a zip archive. Columns the records do
// not know, such as a leading index column, are ignored.
func Decode(r io.ReaderAt, size int64, delimiter rune) (Tables, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Tables{}, err
	}

	var (
		budget     []*BudgetRecord
		rules      []*RuleRecord
		ledger     []*LedgerRecord
		imports    []*LedgerRecord
		duplicates []*LedgerRecord
	)
	if err := readEntry(zr, BudgetEntry, delimiter, &budget); err != nil {
		return Tables{}, err
	}
	if err := readEntry(zr, RulesEntry, delimiter, &rules); err != nil {
		return Tables{}, err
	}
	if err := readEntry(zr, LedgerEntry, delimiter, &ledger); err != nil {
		return Tables{}, err
	}
	for name, out := range map[string]*[]*LedgerRecord{ImportsEntry: &imports, DuplicatesEntry: &duplicates} {
		if _, err := fs.Stat(zr, name); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := readEntry(zr, name, delimiter, out); err != nil {
			return Tables{}, err
		}
	}

	var tables Tables
	for _, b := range budget {
		tables.Budget = append(tables.Budget, b.model())
	}
	for _, r := range rules {
		tables.Rules = append(tables.Rules, r.model())
	}
	tables.Ledger = transactions(ledger)
	tables.Imports = transactions(imports)
	tables.Duplicates = transactions(duplicates)
	return tables, nil
}

func readEntry(zr *zip.Reader, name string, delimiter rune, out interface{}) error {
	f, err := zr.Open(name)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	if err := gocsv.UnmarshalCSV(reader, out); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// SaveBook writes the persisted tables of b.
func (a *Archive) SaveBook(b *book.Book) error {
	budget, rules, ledger := b.Serialize()
	imports, duplicates := b.Staged()
	return a.Save(Tables{Budget: budget, Rules: rules, Ledger: ledger, Imports: imports, Duplicates: duplicates})
}

// LoadBook replaces the tables of b with the archive content. b is left
// unchanged when the archive cannot be read or fails validation.
func (a *Archive) LoadBook(b *book.Book) error {
	tables, err := a.Load()
	if err != nil {
		return err
	}
	previous := b.Snapshot()
	if err := b.Load(tables.Budget, tables.Rules, tables.Ledger); err != nil {
		return err
	}
	if err := b.RestoreStaged(tables.Imports, tables.Duplicates); err != nil {
		if restoreErr := b.LoadSet(previous); restoreErr != nil {
			a.logger.WithError(restoreErr).Error("Failed to restore book after archive load error")
		}
		return err
	}
	return nil
}
