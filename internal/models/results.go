package models

import "fjacquet/budget-ledger/internal/logging"

// Conflict reports a transaction whose memo matched more than one rule. The
// transaction is left unassigned.
type Conflict struct {
	TransactionID string
	Memo          string
	Keywords      []string
}

// CategorizeResult summarizes one auto-categorization pass.
type CategorizeResult struct {
	Assigned  int
	Unmatched int
	Conflicts []Conflict
}

// LogSummary logs the categorization outcome.
func (r CategorizeResult) LogSummary(logger logging.Logger, store Kind) {
	if logger == nil {
		return
	}
	logger.Info("Categorization summary",
		logging.Field{Key: logging.FieldTable, Value: store.String()},
		logging.Field{Key: "assigned", Value: r.Assigned},
		logging.Field{Key: "unmatched", Value: r.Unmatched},
		logging.Field{Key: "ambiguous", Value: len(r.Conflicts)},
	)
}

// ImportResult summarizes a merge of parsed records. Read is the number of
// records in the file, New the number stored, Duplicates the number routed
// to the Duplicates store.
type ImportResult struct {
	Read       int
	New        int
	Duplicates int
	Categorize CategorizeResult
}

// AcceptResult summarizes moving categorized imports into the Ledger.
type AcceptResult struct {
	Accepted   int
	Duplicates int
	Remaining  int
}
