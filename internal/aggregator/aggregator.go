// Package aggregator compares Ledger actuals against the budget over a date
// range.
package aggregator

import (
	"fmt"

	"fjacquet/budget-ledger/internal/budgeterror"
	"fjacquet/budget-ledger/internal/dateutils"
	"fjacquet/budget-ledger/internal/logging"
	"fjacquet/budget-ledger/internal/models"
	"fjacquet/budget-ledger/internal/store"

	"github.com/shopspring/decimal"
)

// Aggregator builds budget summaries.
type Aggregator struct {
	logger logging.Logger
}

// NewAggregator creates an Aggregator.
func NewAggregator(logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Aggregator{logger: logger}
}

// Summarize returns one row per budget category, in budget order, for the
// Ledger transactions dated within [start, end]. Monthly columns sum every
// year in the range into the same calendar month.
//
//	total   = sign * sum of the months
//	average = total / number of distinct months with transactions, rounded
//	net     = sign * (average - budget)
//
// Uncategorized transactions are left out. A category missing from the
// budget is a *budgeterror.ConsistencyError.
func (a *Aggregator) Summarize(set *store.Set, start, end models.Date) ([]models.SummaryRow, error) {
	from, to := dateutils.Ordinal(start), dateutils.Ordinal(end)

	sums := make(map[string]*[12]decimal.Decimal, set.Budget.Len())
	months := make(map[int]bool)
	included := 0

	for _, tx := range set.Ledger.All() {
		o := dateutils.Ordinal(tx.Date())
		if o < from || o > to {
			continue
		}
		if !tx.HasCategory() {
			continue
		}
		if !set.Budget.Has(tx.Category) {
			return nil, &budgeterror.ConsistencyError{Check: "summary_category",
				Detail: fmt.Sprintf("ledger transaction %q has unknown category %q", tx.ID, tx.Category)}
		}
		if tx.Month < 1 || tx.Month > 12 {
			return nil, &budgeterror.ConsistencyError{Check: "summary_month",
				Detail: fmt.Sprintf("ledger transaction %q has month %d", tx.ID, tx.Month)}
		}

		row, ok := sums[tx.Category]
		if !ok {
			row = &[12]decimal.Decimal{}
			sums[tx.Category] = row
		}
		row[tx.Month-1] = row[tx.Month-1].Add(tx.Amount)
		months[tx.Month] = true
		included++
	}

	rows := make([]models.SummaryRow, 0, set.Budget.Len())
	for _, b := range set.Budget.All() {
		row := models.SummaryRow{Category: b.Category, Sign: b.Sign, Budget: b.Budget}
		if m, ok := sums[b.Category]; ok {
			row.Months = *m
		}

		sum := decimal.Zero
		for _, v := range row.Months {
			sum = sum.Add(v)
		}
		sign := decimal.NewFromInt(int64(b.Sign))
		row.Total = sign.Mul(sum)
		if len(months) > 0 {
			row.Average = row.Total.Div(decimal.NewFromInt(int64(len(months)))).RoundBank(0)
		}
		row.Net = sign.Mul(row.Average.Sub(decimal.NewFromInt(b.Budget)))
		rows = append(rows, row)
	}

	a.logger.WithFields(
		logging.F("start", start.String()),
		logging.F("end", end.String()),
		logging.F("transactions", included),
		logging.F("months", len(months)),
	).Debug("Summary computed")
	return rows, nil
}
