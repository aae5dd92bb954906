// Package book is the entry point of the budget engine. A Book owns one set
// of tables and serializes every operation on it: each mutating operation
// runs against a private copy of the tables, the copy is checked for
// consistency, and only then does it replace the committed tables. Callers
// never observe a half-applied cascade.
package book

import (
	"errors"
	"sync"

	"fjacquet/budget-ledger/internal/aggregator"
	"fjacquet/budget-ledger/internal/budgeterror"
	"fjacquet/budget-ledger/internal/categorizer"
	"fjacquet/budget-ledger/internal/importer"
	"fjacquet/budget-ledger/internal/logging"
	"fjacquet/budget-ledger/internal/models"
	"fjacquet/budget-ledger/internal/reconciler"
	"fjacquet/budget-ledger/internal/store"
)

// Book is the budget, rules and transaction tables plus the components that
// operate on them.
type Book struct {
	mu  sync.Mutex
	set *store.Set

	categorizer *categorizer.Categorizer
	reconciler  *reconciler.Reconciler
	merger      *importer.Merger
	aggregator  *aggregator.Aggregator
	logger      logging.Logger
}

// New creates a Book over set. A nil set means empty tables; a nil matcher
// means regex keyword matching.
func New(set *store.Set, matcher categorizer.Matcher, logger logging.Logger) *Book {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if set == nil {
		set = store.NewSet()
	}
	c := categorizer.NewCategorizer(matcher, logger)
	return &Book{
		set:         set,
		categorizer: c,
		reconciler:  reconciler.NewReconciler(c, logger),
		merger:      importer.NewMerger(c, logger),
		aggregator:  aggregator.NewAggregator(logger),
		logger:      logger,
	}
}

// Load replaces the budget, rules and Ledger with the given rows and empties
// Imports and Duplicates. Rule usage counts are recomputed from the Ledger;
// stored counts that disagree are logged and corrected.
func (b *Book) Load(budget []models.BudgetCategory, rules []models.Rule, ledger []models.Transaction) error {
	set := store.NewSet()

	table, err := store.NewBudgetTable(budget)
	if err != nil {
		return err
	}
	set.Budget = table

	normalized := make([]models.Rule, len(rules))
	for i, r := range rules {
		r.Category = normalizeCategoryRef(r.Category)
		r.SubCategory = models.NormalizeSentinel(r.SubCategory)
		normalized[i] = r
	}
	ruleStore, err := store.NewRuleStore(normalized)
	if err != nil {
		return err
	}
	set.Rules = ruleStore

	for _, tx := range ledger {
		if err := set.Ledger.Append(normalizeTransaction(tx)); err != nil {
			return err
		}
	}

	for _, d := range set.RecountUsage() {
		b.logger.WithFields(
			logging.F(logging.FieldKeyword, d.Keyword),
			logging.F("stored", d.Stored),
			logging.F("actual", d.Actual),
		).Warn("Rule usage count did not match the ledger, corrected")
	}
	if err := set.Verify(); err != nil {
		b.logger.WithError(err).Error("Loaded tables are inconsistent")
		return err
	}

	b.mu.Lock()
	b.set = set
	b.mu.Unlock()

	b.logger.WithFields(
		logging.F("categories", set.Budget.Len()),
		logging.F("rules", set.Rules.Len()),
		logging.F("ledger", set.Ledger.Len()),
	).Debug("Book loaded")
	return nil
}

// LoadSet replaces every table with a copy of set after verifying it.
func (b *Book) LoadSet(set *store.Set) error {
	work := set.Clone()
	if err := work.Verify(); err != nil {
		return err
	}
	b.mu.Lock()
	b.set = work
	b.mu.Unlock()
	return nil
}

// Serialize returns copies of the persisted tables.
func (b *Book) Serialize() ([]models.BudgetCategory, []models.Rule, []models.Transaction) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.set.Budget.All(), b.set.Rules.All(), b.set.Ledger.All()
}

// Staged returns copies of Imports and Duplicates.
func (b *Book) Staged() (imports, duplicates []models.Transaction) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.set.Imports.All(), b.set.Duplicates.All()
}

// RestoreStaged appends previously saved Imports and Duplicates rows. Usage
// counts are not touched.
func (b *Book) RestoreStaged(imports, duplicates []models.Transaction) error {
	return b.mutate("restore_staged", func(set *store.Set) error {
		for _, tx := range imports {
			if err := set.Imports.Append(normalizeTransaction(tx)); err != nil {
				return err
			}
		}
		for _, tx := range duplicates {
			if err := set.Duplicates.Append(normalizeTransaction(tx)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Snapshot returns a copy of every table for display.
func (b *Book) Snapshot() *store.Set {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.set.Clone()
}

// Verify checks the committed tables.
func (b *Book) Verify() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.set.Verify()
}

// Years returns the distinct Ledger years, ascending.
func (b *Book) Years() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.set.Ledger.Years()
}

// Len returns the number of rows in t.
func (b *Book) Len(t Table) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return rowCount(b.set, t)
}

// Cell returns the text of one field.
func (b *Book) Cell(t Table, row int, column string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := checkCell(b.set, t, row, column); err != nil {
		return "", err
	}
	return cell(b.set, t, row, column), nil
}

// mutate runs fn on a copy of the tables and commits the copy when fn
// succeeds and the copy passes Verify.
func (b *Book) mutate(op string, fn func(set *store.Set) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	work := b.set.Clone()
	if err := fn(work); err != nil {
		b.reject(op, err)
		return err
	}
	if err := work.Verify(); err != nil {
		b.reject(op, err)
		return err
	}
	b.set = work
	return nil
}

func (b *Book) reject(op string, err error) {
	log := b.logger.WithError(err).WithField(logging.FieldOperation, op)
	var consistency *budgeterror.ConsistencyError
	if errors.As(err, &consistency) {
		log.Error("Operation aborted, tables left unchanged")
		return
	}
	log.Debug("Operation rejected")
}

// normalizeCategoryRef upper-cases a category reference, keeping the
// unassigned sentinel as is.
func normalizeCategoryRef(category string) string {
	if models.NormalizeSentinel(category) == models.Unassigned {
		return models.Unassigned
	}
	return models.NormalizeCategory(category)
}

// normalizeTransaction maps legacy sentinels to Unassigned and fills in a
// missing identifier.
func normalizeTransaction(tx models.Transaction) models.Transaction {
	tx.Keyword = models.NormalizeSentinel(tx.Keyword)
	tx.Category = normalizeCategoryRef(tx.Category)
	tx.SubCategory = models.NormalizeSentinel(tx.SubCategory)
	if tx.ID == "" {
		tx.ID = models.StableID(tx.Date(), tx.Memo, tx.Amount)
	} else {
		tx.ID = models.CanonicalID(tx.ID)
	}
	return tx
}
