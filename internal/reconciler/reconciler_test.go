package reconciler

import (
	"errors"
	"testing"

	"fjacquet/budget-ledger/internal/budgeterror"
	"fjacquet/budget-ledger/internal/categorizer"
	"fjacquet/budget-ledger/internal/logging"
	"fjacquet/budget-ledger/internal/models"
	"fjacquet/budget-ledger/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture returns the default seed with a categorized ledger and imports.
func fixture(t *testing.T) (*store.Set, *Reconciler) {
	t.Helper()
	set, err := store.NewSetFromSeed(store.DefaultSeed())
	require.NoError(t, err)

	add := func(ts *store.TransactionStore, day int, memo, amount string) {
		tx := models.NewTransaction(models.Date{Year: 2020, Month: 3, Day: day}, memo, decimal.RequireFromString(amount))
		require.NoError(t, ts.Append(tx))
	}
	add(set.Ledger, 1, "CVS PHARMACY", "-20")
	add(set.Ledger, 2, "CVS STORE 12", "-30")
	add(set.Ledger, 3, "Trader Joes #552", "-70")
	add(set.Ledger, 4, "GOOGLE PAYROLL", "5000")
	add(set.Imports, 5, "CVS PHARMACY", "-15")

	c := categorizer.NewCategorizer(nil, nil)
	_, err = c.AutoCategorize(set.Ledger, set.Rules)
	require.NoError(t, err)
	_, err = c.AutoCategorize(set.Imports, set.Rules)
	require.NoError(t, err)
	require.NoError(t, set.Verify())

	return set, NewReconciler(c, logging.NewMockLogger())
}

func usage(set *store.Set, keyword string) int {
	r, _ := set.Rules.Find(keyword)
	return r.Count
}

func referencing(set *store.Set, category string) (rules, txs int) {
	for _, r := range set.Rules.All() {
		if r.Category == category {
			rules++
		}
	}
	for _, ts := range set.TransactionStores() {
		txs += len(ts.Indexes(func(tx models.Transaction) bool { return tx.Category == category }))
	}
	return rules, txs
}

func TestRenameCategory_Propagates(t *testing.T) {
	set, r := fixture(t)
	beforeRules, beforeTxs := referencing(set, "GROCERIES")
	require.Equal(t, 2, beforeRules)
	require.Equal(t, 4, beforeTxs)

	require.NoError(t, r.RenameCategory(set, "GROCERIES", "food"))

	rules, txs := referencing(set, "GROCERIES")
	assert.Zero(t, rules)
	assert.Zero(t, txs)
	rules, txs = referencing(set, "FOOD")
	assert.Equal(t, beforeRules, rules)
	assert.Equal(t, beforeTxs, txs)
	assert.Equal(t, []string{"INCOME", "FOOD"}, set.Budget.Names())
	assert.NoError(t, set.Verify())
}

func TestRenameCategory_Rejections(t *testing.T) {
	set, r := fixture(t)
	before := set.Clone()

	var refErr *budgeterror.ReferentialError
	assert.True(t, errors.As(r.RenameCategory(set, "GROCERIES", "income"), &refErr))
	assert.True(t, errors.As(r.RenameCategory(set, "RENT", "HOUSING"), &refErr))

	var valErr *budgeterror.ValidationError
	assert.True(t, errors.As(r.RenameCategory(set, "GROCERIES", " "), &valErr))
	assert.True(t, errors.As(r.RenameCategory(set, "GROCERIES", "unassigned"), &valErr))

	assert.Equal(t, before.Budget.Names(), set.Budget.Names())
	assert.Equal(t, before.Ledger.All(), set.Ledger.All())
	assert.NoError(t, r.RenameCategory(set, "GROCERIES", "groceries"))
}

func TestRenameKeyword_MemoMismatchResets(t *testing.T) {
	set, r := fixture(t)
	require.Equal(t, 2, usage(set, "CVS"))

	require.NoError(t, r.RenameKeyword(set, "CVS", "WALMART"))

	assert.False(t, set.Rules.Has("CVS"))
	assert.Equal(t, 0, usage(set, "WALMART"))
	for i := 0; i < 2; i++ {
		tx := set.Ledger.At(i)
		assert.False(t, tx.HasKeyword(), tx.Memo)
		assert.False(t, tx.HasCategory(), tx.Memo)
	}
	assert.False(t, set.Imports.At(0).HasKeyword())
	assert.NoError(t, set.Verify())
}

func TestRenameKeyword_StillMatchingKeepsTag(t *testing.T) {
	set, r := fixture(t)

	require.NoError(t, r.RenameKeyword(set, "CVS", "PHARMACY"))

	assert.Equal(t, "PHARMACY", set.Ledger.At(0).Keyword)
	assert.Equal(t, "GROCERIES", set.Ledger.At(0).Category)
	assert.False(t, set.Ledger.At(1).HasKeyword(), "CVS STORE 12 does not contain PHARMACY")
	assert.Equal(t, "PHARMACY", set.Imports.At(0).Keyword)
	assert.Equal(t, 1, usage(set, "PHARMACY"))
	assert.NoError(t, set.Verify())
}

func TestRenameKeyword_Rejections(t *testing.T) {
	set, r := fixture(t)

	var refErr *budgeterror.ReferentialError
	assert.True(t, errors.As(r.RenameKeyword(set, "CVS", "GOOGLE"), &refErr))
	assert.True(t, errors.As(r.RenameKeyword(set, "CVS", "google"), &refErr))
	assert.True(t, errors.As(r.RenameKeyword(set, "WALMART", "TARGET"), &refErr))

	var valErr *budgeterror.ValidationError
	assert.True(t, errors.As(r.RenameKeyword(set, "CVS", ""), &valErr))

	assert.Equal(t, 2, usage(set, "CVS"))
	assert.NoError(t, set.Verify())
}

func TestRenameKeyword_CaseOnly(t *testing.T) {
	set, r := fixture(t)

	require.NoError(t, r.RenameKeyword(set, "CVS", "cvs"))
	assert.Equal(t, 2, usage(set, "cvs"))
	assert.Equal(t, -1, set.Rules.Index("CVS"))
	assert.NoError(t, set.Verify())
}

func TestRecategorizeKeyword(t *testing.T) {
	set, r := fixture(t)

	require.NoError(t, r.RecategorizeKeyword(set, "CVS", "income"))
	rule, _ := set.Rules.Find("CVS")
	assert.Equal(t, "INCOME", rule.Category)
	assert.Equal(t, "INCOME", set.Ledger.At(0).Category)
	assert.Equal(t, "INCOME", set.Imports.At(0).Category)
	assert.Equal(t, "GROCERIES", set.Ledger.At(2).Category)
	assert.Equal(t, 2, usage(set, "CVS"))

	var refErr *budgeterror.ReferentialError
	assert.True(t, errors.As(r.RecategorizeKeyword(set, "CVS", "RENT"), &refErr))
	assert.True(t, errors.As(r.RecategorizeKeyword(set, "NOPE", "INCOME"), &refErr))
	assert.NoError(t, set.Verify())
}

func TestResubcategorizeKeyword(t *testing.T) {
	set, r := fixture(t)

	require.NoError(t, r.ResubcategorizeKeyword(set, "CVS", "Pharmacy"))
	assert.Equal(t, "Pharmacy", set.Ledger.At(0).SubCategory)
	assert.Equal(t, "Pharmacy", set.Imports.At(0).SubCategory)

	require.NoError(t, r.ResubcategorizeKeyword(set, "CVS", ""))
	assert.Equal(t, models.Unassigned, set.Ledger.At(1).SubCategory)

	var refErr *budgeterror.ReferentialError
	assert.True(t, errors.As(r.ResubcategorizeKeyword(set, "NOPE", "x"), &refErr))
}

func TestAddRule(t *testing.T) {
	set, r := fixture(t)

	require.NoError(t, r.AddRule(set, " SHELL ", "groceries", ""))
	rule, ok := set.Rules.Find("SHELL")
	require.True(t, ok)
	assert.Equal(t, "GROCERIES", rule.Category)
	assert.Equal(t, models.Unassigned, rule.SubCategory)

	var refErr *budgeterror.ReferentialError
	assert.True(t, errors.As(r.AddRule(set, "RENTCO", "RENT", ""), &refErr))
	assert.True(t, errors.As(r.AddRule(set, "SHELL", "GROCERIES", ""), &refErr))
}

func TestAssignKeyword(t *testing.T) {
	set, r := fixture(t)

	// Ledger row 0 moves from CVS to GOOGLE.
	require.NoError(t, r.AssignKeyword(set, models.Ledger, 0, "GOOGLE"))
	assert.Equal(t, "INCOME", set.Ledger.At(0).Category)
	assert.Equal(t, 1, usage(set, "CVS"))
	assert.Equal(t, 2, usage(set, "GOOGLE"))

	require.NoError(t, r.AssignKeyword(set, models.Ledger, 0, ""))
	assert.False(t, set.Ledger.At(0).HasKeyword())
	assert.Equal(t, 1, usage(set, "GOOGLE"))

	// Imports never count.
	require.NoError(t, r.AssignKeyword(set, models.Imports, 0, "Trader Joes"))
	assert.Equal(t, 1, usage(set, "Trader Joes"))

	var refErr *budgeterror.ReferentialError
	assert.True(t, errors.As(r.AssignKeyword(set, models.Ledger, 1, "NOPE"), &refErr))
	var valErr *budgeterror.ValidationError
	assert.True(t, errors.As(r.AssignKeyword(set, models.Ledger, 99, "CVS"), &valErr))
	assert.NoError(t, set.Verify())
}

func TestDeleteRule(t *testing.T) {
	set, r := fixture(t)

	require.NoError(t, r.DeleteRule(set, set.Rules.Index("CVS")))
	assert.False(t, set.Rules.Has("CVS"))
	assert.False(t, set.Ledger.At(0).HasKeyword())
	assert.False(t, set.Imports.At(0).HasKeyword())
	assert.NoError(t, set.Verify())

	var valErr *budgeterror.ValidationError
	assert.True(t, errors.As(r.DeleteRule(set, 10), &valErr))
}

func TestDeleteCategory(t *testing.T) {
	set, r := fixture(t)

	var refErr *budgeterror.ReferentialError
	assert.True(t, errors.As(r.DeleteCategory(set, set.Budget.Index("GROCERIES")), &refErr))

	require.NoError(t, set.Budget.Append(models.BudgetCategory{Sign: -1, Category: "RENT", Budget: 1500}))
	require.NoError(t, r.DeleteCategory(set, set.Budget.Index("RENT")))
	assert.False(t, set.Budget.Has("RENT"))
}

func TestDeleteTransaction(t *testing.T) {
	set, r := fixture(t)

	require.NoError(t, r.DeleteTransaction(set, models.Ledger, 0))
	assert.Equal(t, 1, usage(set, "CVS"))
	assert.Equal(t, 3, set.Ledger.Len())

	require.NoError(t, r.DeleteTransaction(set, models.Imports, 0))
	assert.Equal(t, 0, set.Imports.Len())
	assert.Equal(t, 1, usage(set, "CVS"))
	assert.NoError(t, set.Verify())
}
