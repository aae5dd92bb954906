package models

import "github.com/shopspring/decimal"

// BudgetCategory is one row of the budget. Actuals, Average, Net and Total are
// derived by the last summary and only persisted for display.
type BudgetCategory struct {
	Sign     int // +1 income-like, -1 expense-like
	Category string
	Budget   int64
	Actuals  [12]decimal.Decimal
	Average  decimal.Decimal
	Net      decimal.Decimal
	Total    decimal.Decimal
}

// SummaryRow is the budget-vs-actual comparison of one category over a date range.
type SummaryRow struct {
	Category string
	Sign     int
	Budget   int64
	Months   [12]decimal.Decimal
	Average  decimal.Decimal
	Net      decimal.Decimal
	Total    decimal.Decimal
}

// ApplySummary copies the derived figures of row onto the category.
func (b *BudgetCategory) ApplySummary(row SummaryRow) {
	b.Actuals = row.Months
	b.Average = row.Average
	b.Net = row.Net
	b.Total = row.Total
}
