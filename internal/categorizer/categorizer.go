// Package categorizer assigns keyword rules to transactions whose memo text
// matches exactly one rule. Memos matching several rules are reported as
// conflicts and left unassigned.
package categorizer

import (
	"fjacquet/budget-ledger/internal/logging"
	"fjacquet/budget-ledger/internal/models"
	"fjacquet/budget-ledger/internal/store"
)

// Categorizer applies rule keywords to unassigned transactions.
type Categorizer struct {
	matcher Matcher
	logger  logging.Logger
}

// NewCategorizer creates a Categorizer. A nil matcher means regex matching.
func NewCategorizer(matcher Matcher, logger logging.Logger) *Categorizer {
	if matcher == nil {
		matcher = NewRegexMatcher()
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Categorizer{matcher: matcher, logger: logger}
}

// Matcher returns the keyword matcher in use.
func (c *Categorizer) Matcher() Matcher {
	return c.matcher
}

// Candidates returns, in rule order, every rule whose keyword matches memo.
// Rules without a category never match.
func (c *Categorizer) Candidates(memo string, rules *store.RuleStore) []models.Rule {
	var matches []models.Rule
	for _, r := range rules.All() {
		if r.Category == models.Unassigned {
			continue
		}
		if c.matcher.Match(memo, r.Keyword) {
			matches = append(matches, r)
		}
	}
	return matches
}

// AutoCategorize categorizes every unassigned transaction of ts.
func (c *Categorizer) AutoCategorize(ts *store.TransactionStore, rules *store.RuleStore) (models.CategorizeResult, error) {
	rows := ts.Indexes(func(tx models.Transaction) bool { return !tx.HasKeyword() })
	return c.CategorizeRows(ts, rules, rows)
}

// CategorizeRows categorizes the given rows of ts. Rows that already carry a
// keyword are skipped, so running it twice changes nothing.
func (c *Categorizer) CategorizeRows(ts *store.TransactionStore, rules *store.RuleStore, rows []int) (models.CategorizeResult, error) {
	var result models.CategorizeResult

	for _, i := range rows {
		tx := ts.At(i)
		if tx.HasKeyword() {
			continue
		}

		matches := c.Candidates(tx.Memo, rules)
		switch len(matches) {
		case 0:
			result.Unmatched++
		case 1:
			if err := Tag(ts, i, matches[0], rules); err != nil {
				return result, err
			}
			result.Assigned++
			c.logger.WithFields(
				logging.F(logging.FieldTransactionID, tx.ID),
				logging.F(logging.FieldKeyword, matches[0].Keyword),
				logging.F(logging.FieldCategory, matches[0].Category),
			).Debug("Transaction categorized")
		default:
			keywords := make([]string, len(matches))
			for k, r := range matches {
				keywords[k] = r.Keyword
			}
			result.Conflicts = append(result.Conflicts, models.Conflict{
				TransactionID: tx.ID,
				Memo:          tx.Memo,
				Keywords:      keywords,
			})
			c.logger.WithFields(
				logging.F(logging.FieldMemo, tx.Memo),
				logging.F(logging.FieldKeywords, keywords),
			).Warn("Ambiguous keyword match, transaction left unassigned")
		}
	}

	return result, nil
}

// Tag assigns rule to row i of ts. When ts is counted, the usage count moves
// from the row's previous keyword to the rule's.
func Tag(ts *store.TransactionStore, i int, rule models.Rule, rules *store.RuleStore) error {
	row := ts.Row(i)
	if row.Keyword == rule.Keyword {
		row.Assign(rule)
		return nil
	}
	if ts.Counted() {
		if row.HasKeyword() {
			if err := rules.Decrement(row.Keyword); err != nil {
				return err
			}
		}
		if err := rules.Increment(rule.Keyword); err != nil {
			return err
		}
	}
	row.Assign(rule)
	return nil
}

// Untag resets row i of ts to unassigned, releasing its usage count when ts
// is counted.
func Untag(ts *store.TransactionStore, i int, rules *store.RuleStore) error {
	row := ts.Row(i)
	if ts.Counted() && row.HasKeyword() {
		if err := rules.Decrement(row.Keyword); err != nil {
			return err
		}
	}
	row.Reset()
	return nil
}
