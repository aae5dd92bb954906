package book

import (
	"fmt"
	"strconv"
	"strings"

	"fjacquet/budget-ledger/internal/budgeterror"
	"fjacquet/budget-ledger/internal/currencyutils"
	"fjacquet/budget-ledger/internal/dateutils"
	"fjacquet/budget-ledger/internal/logging"
	"fjacquet/budget-ledger/internal/models"
	"fjacquet/budget-ledger/internal/store"

	"github.com/shopspring/decimal"
)

// Placeholder values of inserted rows.
const (
	NewCategoryName = "NEW CATEGORY"
	NewKeywordName  = "NEW KEYWORD"
)

// NewTransactionDate is the date of an inserted transaction row.
var NewTransactionDate = models.Date{Year: 2020, Month: 1, Day: 1}

// SetField sets one field from user text and returns the text actually
// committed. When the edit is rejected the prior text is returned together
// with a *budgeterror.ValidationError or *budgeterror.ReferentialError; the
// tables are unchanged.
func (b *Book) SetField(t Table, row int, column, text string) (string, error) {
	prior, err := b.Cell(t, row, column)
	if err != nil {
		return "", err
	}

	err = b.mutate("set_field", func(set *store.Set) error {
		return b.setField(set, t, row, column, text)
	})
	if err != nil {
		b.logger.WithFields(logging.Cell(string(t), row)...).
			Debug("Edit rejected, prior value kept", logging.F(logging.FieldColumn, column))
		return prior, err
	}
	return b.Cell(t, row, column)
}

func (b *Book) setField(set *store.Set, t Table, row int, column, text string) error {
	switch t {
	case TableBudget:
		return b.setBudgetField(set, row, column, text)
	case TableRules:
		return b.setRuleField(set, row, column, text)
	case TableDuplicates:
		return readOnly(t, column, text)
	}
	kind, _ := t.Kind()
	return b.setTransactionField(set, kind, row, column, text)
}

func (b *Book) setBudgetField(set *store.Set, row int, column, text string) error {
	switch column {
	case ColSign:
		sign, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil || (sign != 1 && sign != -1) {
			return &budgeterror.ValidationError{Table: string(TableBudget), Column: column, Value: text, Reason: "must be -1 or 1"}
		}
		set.Budget.SetSign(row, sign)
		return nil
	case ColCategory:
		return b.reconciler.RenameCategory(set, set.Budget.At(row).Category, text)
	case ColBudget:
		amount, err := currencyutils.ParseAmount(text)
		if err != nil || !amount.Equal(amount.Truncate(0)) || !amount.Abs().LessThanOrEqual(decimal.NewFromInt(1<<53)) {
			return &budgeterror.ValidationError{Table: string(TableBudget), Column: column, Value: text, Reason: "must be a whole number"}
		}
		set.Budget.SetBudget(row, amount.Abs().IntPart())
		return nil
	}
	return readOnly(TableBudget, column, text)
}

func (b *Book) setRuleField(set *store.Set, row int, column, text string) error {
	keyword := set.Rules.At(row).Keyword
	switch column {
	case ColKeyword:
		return b.reconciler.RenameKeyword(set, keyword, text)
	case ColCategory:
		return b.reconciler.RecategorizeKeyword(set, keyword, text)
	case ColSubCategory:
		return b.reconciler.ResubcategorizeKeyword(set, keyword, text)
	}
	return readOnly(TableRules, column, text)
}

func (b *Book) setTransactionField(set *store.Set, kind models.Kind, row int, column, text string) error {
	ts := set.Store(kind)
	tx := ts.Row(row)
	table := kind.String()

	switch column {
	case ColYear, ColMonth, ColDay:
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return &budgeterror.ValidationError{Table: table, Column: column, Value: text, Reason: "must be a whole number"}
		}
		date := tx.Date()
		switch column {
		case ColYear:
			if n <= dateutils.MinYear {
				return &budgeterror.ValidationError{Table: table, Column: column, Value: text,
					Reason: fmt.Sprintf("must be after %d", dateutils.MinYear)}
			}
			date.Year = n
		case ColMonth:
			if n < 1 || n > 12 {
				return &budgeterror.ValidationError{Table: table, Column: column, Value: text, Reason: "must be between 1 and 12"}
			}
			date.Month = n
		default:
			if n < 1 || n > 31 {
				return &budgeterror.ValidationError{Table: table, Column: column, Value: text, Reason: "must be between 1 and 31"}
			}
			date.Day = n
		}
		if !dateutils.IsValidDate(date) {
			return &budgeterror.ValidationError{Table: table, Column: column, Value: text,
				Reason: fmt.Sprintf("%s is not a calendar date", date)}
		}
		if tx.Memo == "" && tx.ID == models.StableID(tx.Date(), tx.Memo, tx.Amount) {
			// Inserted rows have no imported identity yet; keep the ID in
			// step with the date so several can live in the Ledger.
			if err := ts.Reidentify(row, models.StableID(date, tx.Memo, tx.Amount)); err != nil {
				return err
			}
		}
		tx.Year, tx.Month, tx.Day = date.Year, date.Month, date.Day
		return nil
	case ColKeyword:
		return b.reconciler.AssignKeyword(set, kind, row, text)
	case ColCategory:
		category := normalizeCategoryRef(text)
		if category != models.Unassigned && !set.Budget.Has(category) {
			return &budgeterror.ReferentialError{Kind: "category", Name: category, Reason: "does not exist"}
		}
		tx.Category = category
		return nil
	case ColSubCategory:
		tx.SubCategory = models.NormalizeSentinel(text)
		return nil
	}
	return readOnly(Table(table), column, text)
}

func readOnly(t Table, column, text string) error {
	return &budgeterror.ValidationError{Table: string(t), Column: column, Value: text, Reason: "column is read-only"}
}

// InsertRow inserts a placeholder row at index at (at the end when at is
// out of range) and returns its index. Budget rows get a unique
// NewCategoryName, rules a unique NewKeywordName, transactions an empty
// memo dated NewTransactionDate. Duplicates do not accept new rows.
func (b *Book) InsertRow(t Table, at int) (int, error) {
	var index int
	err := b.mutate("insert_row", func(set *store.Set) error {
		var err error
		switch t {
		case TableBudget:
			name := uniqueName(NewCategoryName, set.Budget.Has)
			err = set.Budget.Append(models.BudgetCategory{Sign: -1, Category: name})
		case TableRules:
			keyword := uniqueName(NewKeywordName, func(k string) bool { return set.Rules.Collides(k, -1) })
			err = set.Rules.Append(models.Rule{Keyword: keyword, Category: models.Unassigned, SubCategory: models.Unassigned})
		case TableLedger, TableImports:
			kind, _ := t.Kind()
			tx := models.NewTransaction(NewTransactionDate, "", decimal.Zero)
			if kind == models.Ledger && set.Ledger.HasID(tx.ID) {
				return &budgeterror.ValidationError{Table: string(t), Column: ColID, Value: tx.ID,
					Reason: fmt.Sprintf("a blank ledger row dated %s already exists; change its date first", NewTransactionDate)}
			}
			err = set.Store(kind).Append(tx)
		default:
			return &budgeterror.ValidationError{Table: string(t), Column: "row", Value: string(t), Reason: "table does not accept new rows"}
		}
		if err != nil {
			return err
		}

		index = rowCount(set, t) - 1
		if at >= 0 && at < index {
			for i := index; i > at; i-- {
				swap(set, t, i, i-1)
			}
			index = at
		}
		return nil
	})
	return index, err
}

// uniqueName returns base, or base followed by the first free number.
func uniqueName(base string, taken func(string) bool) string {
	name := base
	for n := 2; taken(name); n++ {
		name = fmt.Sprintf("%s %d", base, n)
	}
	return name
}

// DeleteRow deletes row i. Deleting a category still in use is refused;
// deleting a rule resets the transactions that carried it; deleting a
// Ledger row releases its usage count.
func (b *Book) DeleteRow(t Table, i int) error {
	return b.mutate("delete_row", func(set *store.Set) error {
		switch t {
		case TableBudget:
			return b.reconciler.DeleteCategory(set, i)
		case TableRules:
			return b.reconciler.DeleteRule(set, i)
		}
		kind, ok := t.Kind()
		if !ok {
			return &budgeterror.ValidationError{Table: string(t), Column: "row", Value: string(t), Reason: "unknown table"}
		}
		return b.reconciler.DeleteTransaction(set, kind, i)
	})
}

// SwapRows exchanges rows i and j of t.
func (b *Book) SwapRows(t Table, i, j int) error {
	return b.mutate("swap_rows", func(set *store.Set) error {
		if _, err := ParseTable(string(t)); err != nil {
			return &budgeterror.ValidationError{Table: string(t), Column: "row", Value: string(t), Reason: "unknown table"}
		}
		n := rowCount(set, t)
		for _, k := range []int{i, j} {
			if k < 0 || k >= n {
				return &budgeterror.ValidationError{Table: string(t), Column: "row", Value: strconv.Itoa(k),
					Reason: fmt.Sprintf("out of range [0, %d)", n)}
			}
		}
		swap(set, t, i, j)
		return nil
	})
}

func swap(set *store.Set, t Table, i, j int) {
	switch t {
	case TableBudget:
		set.Budget.Swap(i, j)
	case TableRules:
		set.Rules.Swap(i, j)
	default:
		kind, _ := t.Kind()
		set.Store(kind).Swap(i, j)
	}
}

// AddRule appends a keyword rule for an existing category.
func (b *Book) AddRule(keyword, category, sub string) error {
	return b.mutate("add_rule", func(set *store.Set) error {
		return b.reconciler.AddRule(set, keyword, category, sub)
	})
}

// AddCategory appends a budget category.
func (b *Book) AddCategory(name string, sign int, budget int64) error {
	return b.mutate("add_category", func(set *store.Set) error {
		return set.Budget.Append(models.BudgetCategory{Sign: sign, Category: name, Budget: budget})
	})
}

// RenameCategory renames a budget category everywhere it is referenced.
func (b *Book) RenameCategory(from, to string) error {
	return b.mutate("rename_category", func(set *store.Set) error {
		return b.reconciler.RenameCategory(set, from, to)
	})
}

// RenameKeyword renames a rule; see reconciler.Reconciler.RenameKeyword.
func (b *Book) RenameKeyword(from, to string) error {
	return b.mutate("rename_keyword", func(set *store.Set) error {
		return b.reconciler.RenameKeyword(set, from, to)
	})
}

// RecategorizeKeyword points a rule and its transactions at category.
func (b *Book) RecategorizeKeyword(keyword, category string) error {
	return b.mutate("recategorize_keyword", func(set *store.Set) error {
		return b.reconciler.RecategorizeKeyword(set, keyword, category)
	})
}

// ResubcategorizeKeyword sets the sub-category of a rule and its transactions.
func (b *Book) ResubcategorizeKeyword(keyword, sub string) error {
	return b.mutate("resubcategorize_keyword", func(set *store.Set) error {
		return b.reconciler.ResubcategorizeKeyword(set, keyword, sub)
	})
}

// DeleteRule deletes the rule with the given keyword.
func (b *Book) DeleteRule(keyword string) error {
	return b.mutate("delete_rule", func(set *store.Set) error {
		i := set.Rules.Index(keyword)
		if i < 0 {
			return &budgeterror.ReferentialError{Kind: "keyword", Name: keyword, Reason: "no such rule"}
		}
		return b.reconciler.DeleteRule(set, i)
	})
}

// DeleteCategory deletes the named budget category. A category still
// referenced by a rule or transaction is refused.
func (b *Book) DeleteCategory(name string) error {
	return b.mutate("delete_category", func(set *store.Set) error {
		i := set.Budget.Index(name)
		if i < 0 {
			return &budgeterror.ReferentialError{Kind: "category", Name: name, Reason: "no such category"}
		}
		return b.reconciler.DeleteCategory(set, i)
	})
}

// CategoryRow returns the budget row of the named category, or -1.
func (b *Book) CategoryRow(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.set.Budget.Index(name)
}
