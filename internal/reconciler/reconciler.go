// Package reconciler performs the edits that span more than one table:
// category and keyword renames, recategorization, manual keyword
// assignment and the deletes whose effects cascade. It is the only package
// that writes across stores.
//
// Every operation validates its arguments before touching a table, so a
// rejected edit leaves the set unchanged. The remaining failure mode is a
// ConsistencyError from a usage count, which callers treat as fatal and
// roll back.
package reconciler

import (
	"fmt"
	"strings"

	"fjacquet/budget-ledger/internal/budgeterror"
	"fjacquet/budget-ledger/internal/categorizer"
	"fjacquet/budget-ledger/internal/logging"
	"fjacquet/budget-ledger/internal/models"
	"fjacquet/budget-ledger/internal/store"
)

// Reconciler keeps the budget, rules and transaction stores consistent.
type Reconciler struct {
	categorizer *categorizer.Categorizer
	logger      logging.Logger
}

// NewReconciler creates a Reconciler. The categorizer's matcher decides
// whether a renamed keyword still matches a memo.
func NewReconciler(c *categorizer.Categorizer, logger logging.Logger) *Reconciler {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if c == nil {
		c = categorizer.NewCategorizer(nil, logger)
	}
	return &Reconciler{categorizer: c, logger: logger}
}

// RenameCategory renames a budget category and rewrites every rule and
// transaction that referenced it.
func (r *Reconciler) RenameCategory(set *store.Set, from, to string) error {
	from, to = models.NormalizeCategory(from), models.NormalizeCategory(to)
	if to == "" || to == models.NormalizeCategory(models.Unassigned) {
		return &budgeterror.ValidationError{Table: "Budget", Column: "Category", Value: to, Reason: "name is reserved or empty"}
	}
	idx := set.Budget.Index(from)
	if idx < 0 {
		return &budgeterror.ReferentialError{Kind: "category", Name: from, Reason: "does not exist"}
	}
	if from == to {
		return nil
	}
	if set.Budget.Has(to) {
		return &budgeterror.ReferentialError{Kind: "category", Name: to, Reason: "already exists"}
	}

	set.Budget.Rename(idx, to)
	rules := set.Rules.RenameCategory(from, to)
	txs := 0
	for _, ts := range set.TransactionStores() {
		for _, i := range ts.Indexes(func(tx models.Transaction) bool { return tx.Category == from }) {
			ts.Row(i).Category = to
			txs++
		}
	}

	r.logger.WithFields(
		logging.F(logging.FieldOperation, "rename_category"),
		logging.F(logging.FieldCategory, to),
		logging.F("previous", from),
		logging.F("rules", rules),
		logging.F("transactions", txs),
	).Info("Category renamed")
	return nil
}

// RenameKeyword renames a rule. Transactions tagged with the old keyword
// keep the rule only if the new keyword still matches their memo; the rest
// are reset to unassigned and no longer count towards the rule.
func (r *Reconciler) RenameKeyword(set *store.Set, from, to string) error {
	to = strings.TrimSpace(to)
	if err := store.ValidateKeyword(to); err != nil {
		return err
	}
	idx := set.Rules.Index(from)
	if idx < 0 {
		return &budgeterror.ReferentialError{Kind: "keyword", Name: from, Reason: "does not exist"}
	}
	if from == to {
		return nil
	}
	if set.Rules.Collides(to, idx) {
		return &budgeterror.ReferentialError{Kind: "keyword", Name: to, Reason: "already exists"}
	}

	set.Rules.Rename(idx, to)
	matcher := r.categorizer.Matcher()
	kept, reset := 0, 0
	for _, ts := range set.TransactionStores() {
		for _, i := range ts.Indexes(func(tx models.Transaction) bool { return tx.Keyword == from }) {
			row := ts.Row(i)
			if matcher.Match(row.Memo, to) {
				row.Keyword = to
				kept++
				continue
			}
			if ts.Counted() {
				if err := set.Rules.Decrement(to); err != nil {
					return err
				}
			}
			row.Reset()
			reset++
		}
	}

	r.logger.WithFields(
		logging.F(logging.FieldOperation, "rename_keyword"),
		logging.F(logging.FieldKeyword, to),
		logging.F("previous", from),
		logging.F("kept", kept),
		logging.F("reset", reset),
	).Info("Keyword renamed")
	return nil
}

// RecategorizeKeyword points a rule at another budget category and moves
// every transaction carrying the keyword with it.
func (r *Reconciler) RecategorizeKeyword(set *store.Set, keyword, category string) error {
	category = models.NormalizeCategory(category)
	idx := set.Rules.Index(keyword)
	if idx < 0 {
		return &budgeterror.ReferentialError{Kind: "keyword", Name: keyword, Reason: "does not exist"}
	}
	if !set.Budget.Has(category) {
		return &budgeterror.ReferentialError{Kind: "category", Name: category, Reason: "does not exist"}
	}

	set.Rules.SetCategory(idx, category)
	n := r.rewrite(set, keyword, func(tx *models.Transaction) { tx.Category = category })

	r.logger.WithFields(
		logging.F(logging.FieldOperation, "recategorize_keyword"),
		logging.F(logging.FieldKeyword, keyword),
		logging.F(logging.FieldCategory, category),
		logging.F(logging.FieldCount, n),
	).Info("Keyword recategorized")
	return nil
}

// ResubcategorizeKeyword sets a rule's sub-category and that of every
// transaction carrying the keyword. An empty sub-category means unassigned.
func (r *Reconciler) ResubcategorizeKeyword(set *store.Set, keyword, sub string) error {
	sub = models.NormalizeSentinel(sub)
	idx := set.Rules.Index(keyword)
	if idx < 0 {
		return &budgeterror.ReferentialError{Kind: "keyword", Name: keyword, Reason: "does not exist"}
	}

	set.Rules.SetSubCategory(idx, sub)
	n := r.rewrite(set, keyword, func(tx *models.Transaction) { tx.SubCategory = sub })

	r.logger.WithFields(
		logging.F(logging.FieldOperation, "resubcategorize_keyword"),
		logging.F(logging.FieldKeyword, keyword),
		logging.F(logging.FieldSubCategory, sub),
		logging.F(logging.FieldCount, n),
	).Info("Keyword sub-category changed")
	return nil
}

func (r *Reconciler) rewrite(set *store.Set, keyword string, edit func(*models.Transaction)) int {
	n := 0
	for _, ts := range set.TransactionStores() {
		for _, i := range ts.Indexes(func(tx models.Transaction) bool { return tx.Keyword == keyword }) {
			edit(ts.Row(i))
			n++
		}
	}
	return n
}

// AddRule appends a keyword rule. The category must exist.
func (r *Reconciler) AddRule(set *store.Set, keyword, category, sub string) error {
	category = models.NormalizeCategory(category)
	if !set.Budget.Has(category) {
		return &budgeterror.ReferentialError{Kind: "category", Name: category, Reason: "does not exist"}
	}
	rule := models.Rule{Keyword: keyword, Category: category, SubCategory: models.NormalizeSentinel(sub)}
	if err := set.Rules.Append(rule); err != nil {
		return err
	}
	r.logger.WithFields(
		logging.F(logging.FieldOperation, "add_rule"),
		logging.F(logging.FieldKeyword, rule.Keyword),
		logging.F(logging.FieldCategory, category),
	).Info("Rule added")
	return nil
}

// AssignKeyword manually tags a transaction with a rule, taking the rule's
// category and sub-category. An empty or unassigned keyword clears the tag.
func (r *Reconciler) AssignKeyword(set *store.Set, kind models.Kind, row int, keyword string) error {
	ts := set.Store(kind)
	if err := checkRow(ts.Kind().String(), row, ts.Len()); err != nil {
		return err
	}

	keyword = models.NormalizeSentinel(keyword)
	if keyword == models.Unassigned {
		return categorizer.Untag(ts, row, set.Rules)
	}
	rule, ok := set.Rules.Find(keyword)
	if !ok {
		return &budgeterror.ReferentialError{Kind: "keyword", Name: keyword, Reason: "does not exist"}
	}
	if err := categorizer.Tag(ts, row, rule, set.Rules); err != nil {
		return err
	}

	r.logger.WithFields(
		logging.F(logging.FieldOperation, "assign_keyword"),
		logging.F(logging.FieldTable, kind.String()),
		logging.F(logging.FieldTransactionID, ts.At(row).ID),
		logging.F(logging.FieldKeyword, keyword),
	).Debug("Keyword assigned")
	return nil
}

// DeleteRule removes rule i and resets every transaction carrying its
// keyword to unassigned.
func (r *Reconciler) DeleteRule(set *store.Set, i int) error {
	if err := checkRow("Rules", i, set.Rules.Len()); err != nil {
		return err
	}
	keyword := set.Rules.At(i).Keyword

	reset := 0
	for _, ts := range set.TransactionStores() {
		for _, row := range ts.Indexes(func(tx models.Transaction) bool { return tx.Keyword == keyword }) {
			if err := categorizer.Untag(ts, row, set.Rules); err != nil {
				return err
			}
			reset++
		}
	}
	set.Rules.Delete(i)

	r.logger.WithFields(
		logging.F(logging.FieldOperation, "delete_rule"),
		logging.F(logging.FieldKeyword, keyword),
		logging.F("reset", reset),
	).Info("Rule deleted")
	return nil
}

// DeleteCategory removes budget row i. A category still referenced by a
// rule or transaction cannot be deleted.
func (r *Reconciler) DeleteCategory(set *store.Set, i int) error {
	if err := checkRow("Budget", i, set.Budget.Len()); err != nil {
		return err
	}
	name := set.Budget.At(i).Category

	for _, rule := range set.Rules.All() {
		if rule.Category == name {
			return &budgeterror.ReferentialError{Kind: "category", Name: name,
				Reason: fmt.Sprintf("still used by rule %q", rule.Keyword)}
		}
	}
	for _, ts := range set.TransactionStores() {
		if n := len(ts.Indexes(func(tx models.Transaction) bool { return tx.Category == name })); n > 0 {
			return &budgeterror.ReferentialError{Kind: "category", Name: name,
				Reason: fmt.Sprintf("still used by %d %s transactions", n, ts.Kind())}
		}
	}
	set.Budget.Delete(i)

	r.logger.WithFields(
		logging.F(logging.FieldOperation, "delete_category"),
		logging.F(logging.FieldCategory, name),
	).Info("Category deleted")
	return nil
}

// DeleteTransaction removes row i of the given store. Deleting a Ledger
// row releases its usage count.
func (r *Reconciler) DeleteTransaction(set *store.Set, kind models.Kind, i int) error {
	ts := set.Store(kind)
	if err := checkRow(kind.String(), i, ts.Len()); err != nil {
		return err
	}
	if err := categorizer.Untag(ts, i, set.Rules); err != nil {
		return err
	}
	tx := ts.Delete(i)

	r.logger.WithFields(
		logging.F(logging.FieldOperation, "delete_transaction"),
		logging.F(logging.FieldTable, kind.String()),
		logging.F(logging.FieldTransactionID, tx.ID),
	).Debug("Transaction deleted")
	return nil
}

func checkRow(table string, i, n int) error {
	if i < 0 || i >= n {
		return &budgeterror.ValidationError{Table: table, Column: "row", Value: fmt.Sprint(i),
			Reason: fmt.Sprintf("out of range [0, %d)", n)}
	}
	return nil
}
