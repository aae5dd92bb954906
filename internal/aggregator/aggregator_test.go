package aggregator

import (
	"errors"
	"testing"

	"fjacquet/budget-ledger/internal/budgeterror"
	"fjacquet/budget-ledger/internal/dateutils"
	"fjacquet/budget-ledger/internal/models"
	"fjacquet/budget-ledger/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledgerTx(y, m, d int, memo, amount, category string) models.Transaction {
	tx := models.NewTransaction(models.Date{Year: y, Month: m, Day: d}, memo, decimal.RequireFromString(amount))
	tx.Category = category
	return tx
}

func newSet(t *testing.T, txs ...models.Transaction) *store.Set {
	t.Helper()
	set, err := store.NewSetFromSeed(store.DefaultSeed())
	require.NoError(t, err)
	for _, tx := range txs {
		require.NoError(t, set.Ledger.Append(tx))
	}
	return set
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func year(t *testing.T, set *store.Set, selection string) (models.Date, models.Date) {
	t.Helper()
	start, end, err := dateutils.YearRange(selection, set.Ledger.Years())
	require.NoError(t, err)
	return start, end
}

func TestSummarize_GroceriesMarch(t *testing.T) {
	set := newSet(t,
		ledgerTx(2020, 3, 2, "CVS", "-20", "GROCERIES"),
		ledgerTx(2020, 3, 9, "Trader Joes", "-100", "GROCERIES"),
	)
	start, end := year(t, set, "2020")

	rows, err := NewAggregator(nil).Summarize(set, start, end)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	income, groceries := rows[0], rows[1]
	assert.Equal(t, "INCOME", income.Category)
	assert.True(t, income.Total.IsZero())
	assert.True(t, income.Net.Equal(dec("-10000")), "income below budget is unfavorable")

	assert.Equal(t, "GROCERIES", groceries.Category)
	assert.True(t, groceries.Months[2].Equal(dec("-120")))
	assert.True(t, groceries.Months[3].IsZero())
	assert.True(t, groceries.Total.Equal(dec("120")))
	assert.True(t, groceries.Average.Equal(dec("120")))
	assert.True(t, groceries.Net.Equal(dec("880")), "unspent budget is positive under the expense sign")
	assert.Equal(t, int64(1000), groceries.Budget)
}

func TestSummarize_AverageOverDistinctMonths(t *testing.T) {
	set := newSet(t,
		ledgerTx(2020, 1, 5, "A", "-100", "GROCERIES"),
		ledgerTx(2020, 2, 5, "B", "-50", "GROCERIES"),
		ledgerTx(2020, 2, 6, "C", "3001", "INCOME"),
		ledgerTx(2020, 4, 1, "D", "-1", "GROCERIES"),
	)
	start, end := year(t, set, dateutils.AllYears)

	rows, err := NewAggregator(nil).Summarize(set, start, end)
	require.NoError(t, err)

	// Three distinct months: 151/3 = 50.33 and 3001/3 = 1000.33.
	assert.True(t, rows[1].Total.Equal(dec("151")))
	assert.True(t, rows[1].Average.Equal(dec("50")))
	assert.True(t, rows[0].Average.Equal(dec("1000")))
	assert.True(t, rows[0].Net.Equal(dec("-9000")))
}

func TestSummarize_RangeFilterAndYearsMerge(t *testing.T) {
	set := newSet(t,
		ledgerTx(2020, 12, 31, "A", "-10", "GROCERIES"),
		ledgerTx(2021, 1, 1, "B", "-20", "GROCERIES"),
		ledgerTx(2021, 12, 31, "C", "-30", "GROCERIES"),
		ledgerTx(2022, 1, 1, "D", "-40", "GROCERIES"),
	)

	start, end := year(t, set, "2021")
	rows, err := NewAggregator(nil).Summarize(set, start, end)
	require.NoError(t, err)
	assert.True(t, rows[1].Total.Equal(dec("50")), "inclusive on both ends")

	start, end = year(t, set, dateutils.AllYears)
	rows, err = NewAggregator(nil).Summarize(set, start, end)
	require.NoError(t, err)
	assert.True(t, rows[1].Months[11].Equal(dec("-40")), "December of 2020 and 2021 merge")
	assert.True(t, rows[1].Months[0].Equal(dec("-60")))
	assert.True(t, rows[1].Total.Equal(dec("100")))
	assert.True(t, rows[1].Average.Equal(dec("50")))
}

func TestSummarize_LeapDay(t *testing.T) {
	set := newSet(t,
		ledgerTx(2020, 2, 29, "A", "-10", "GROCERIES"),
		ledgerTx(2020, 3, 1, "B", "-20", "GROCERIES"),
	)
	rows, err := NewAggregator(nil).Summarize(set,
		models.Date{Year: 2020, Month: 2, Day: 29}, models.Date{Year: 2020, Month: 2, Day: 29})
	require.NoError(t, err)
	assert.True(t, rows[1].Total.Equal(dec("10")))
}

func TestSummarize_EmptyRange(t *testing.T) {
	set := newSet(t, ledgerTx(2020, 3, 2, "CVS", "-20", "GROCERIES"))
	rows, err := NewAggregator(nil).Summarize(set,
		models.Date{Year: 2019, Month: 1, Day: 1}, models.Date{Year: 2019, Month: 12, Day: 31})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.True(t, row.Total.IsZero())
		assert.True(t, row.Average.IsZero())
	}
	assert.True(t, rows[1].Net.Equal(dec("1000")))
}

func TestSummarize_SkipsUnassignedAndRejectsUnknown(t *testing.T) {
	set := newSet(t, ledgerTx(2020, 3, 2, "SHELL", "-20", models.Unassigned))
	rows, err := NewAggregator(nil).Summarize(set,
		models.Date{Year: 2020, Month: 1, Day: 1}, models.Date{Year: 2020, Month: 12, Day: 31})
	require.NoError(t, err)
	assert.True(t, rows[1].Total.IsZero())

	set = newSet(t, ledgerTx(2020, 3, 2, "LANDLORD", "-1500", "RENT"))
	_, err = NewAggregator(nil).Summarize(set,
		models.Date{Year: 2020, Month: 1, Day: 1}, models.Date{Year: 2020, Month: 12, Day: 31})
	var consErr *budgeterror.ConsistencyError
	assert.True(t, errors.As(err, &consErr))
}
