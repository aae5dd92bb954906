package importer

import (
	"fmt"

	"fjacquet/budget-ledger/internal/categorizer"
	"fjacquet/budget-ledger/internal/logging"
	"fjacquet/budget-ledger/internal/models"
	"fjacquet/budget-ledger/internal/store"
)

// Merger merges parsed transactions into a set.
type Merger struct {
	categorizer *categorizer.Categorizer
	logger      logging.Logger
}

// NewMerger creates a Merger that categorizes freshly merged records with c.
func NewMerger(c *categorizer.Categorizer, logger logging.Logger) *Merger {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if c == nil {
		c = categorizer.NewCategorizer(nil, logger)
	}
	return &Merger{categorizer: c, logger: logger}
}

// Merge appends records to the target store, Imports or Ledger. A record
// whose identifier is already in the Ledger, or in the target store, goes
// to Duplicates instead; the first copy merged always wins. The new rows
// are then categorized.
func (m *Merger) Merge(set *store.Set, records []models.Transaction, target models.Kind) (models.ImportResult, error) {
	if target != models.Imports && target != models.Ledger {
		return models.ImportResult{}, fmt.Errorf("cannot import into %s", target)
	}
	ts := set.Store(target)
	result := models.ImportResult{Read: len(records)}

	first := ts.Len()
	for _, tx := range records {
		tx.Reset()
		if set.Ledger.HasID(tx.ID) || ts.HasID(tx.ID) {
			if err := set.Duplicates.Append(tx); err != nil {
				return result, err
			}
			result.Duplicates++
			m.logger.WithField(logging.FieldTransactionID, tx.ID).Debug("Duplicate transaction")
			continue
		}
		if err := ts.Append(tx); err != nil {
			return result, err
		}
		result.New++
	}

	rows := make([]int, 0, result.New)
	for i := first; i < ts.Len(); i++ {
		rows = append(rows, i)
	}
	categorized, err := m.categorizer.CategorizeRows(ts, set.Rules, rows)
	if err != nil {
		return result, err
	}
	result.Categorize = categorized

	m.logger.WithFields(
		logging.F(logging.FieldTable, target.String()),
		logging.F("read", result.Read),
		logging.F("new", result.New),
		logging.F("duplicates", result.Duplicates),
	).Info("Import merged")
	return result, nil
}

// Accept moves every categorized transaction from Imports to the Ledger.
// Uncategorized ones stay in Imports. Transactions already in the Ledger
// go to Duplicates.
func (m *Merger) Accept(set *store.Set) (models.AcceptResult, error) {
	var result models.AcceptResult

	for _, tx := range set.Imports.Take(func(tx models.Transaction) bool { return tx.HasCategory() }) {
		if set.Ledger.HasID(tx.ID) {
			if err := set.Duplicates.Append(tx); err != nil {
				return result, err
			}
			result.Duplicates++
			continue
		}
		if err := set.Ledger.Append(tx); err != nil {
			return result, err
		}
		if tx.HasKeyword() {
			if err := set.Rules.Increment(tx.Keyword); err != nil {
				return result, err
			}
		}
		result.Accepted++
	}
	result.Remaining = set.Imports.Len()

	m.logger.WithFields(
		logging.F("accepted", result.Accepted),
		logging.F("duplicates", result.Duplicates),
		logging.F("remaining", result.Remaining),
	).Info("Imports accepted")
	return result, nil
}
