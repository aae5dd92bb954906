package archive

import (
	"fjacquet/budget-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// BudgetRecord is one row of Budget.csv.
type BudgetRecord struct {
	Sign     int             `csv:"Sign"`
	Category string          `csv:"Category"`
	Budget   decimal.Decimal `csv:"Budget"`
	Average  decimal.Decimal `csv:"Average"`
	Net      decimal.Decimal `csv:"Net"`
	Jan      decimal.Decimal `csv:"Jan"`
	Feb      decimal.Decimal `csv:"Feb"`
	Mar      decimal.Decimal `csv:"Mar"`
	Apr      decimal.Decimal `csv:"Apr"`
	May      decimal.Decimal `csv:"May"`
	Jun      decimal.Decimal `csv:"Jun"`
	Jul      decimal.Decimal `csv:"Jul"`
	Aug      decimal.Decimal `csv:"Aug"`
	Sep      decimal.Decimal `csv:"Sep"`
	Oct      decimal.Decimal `csv:"Oct"`
	Nov      decimal.Decimal `csv:"Nov"`
	Dec      decimal.Decimal `csv:"Dec"`
	Total    decimal.Decimal `csv:"Total"`
}

// RuleRecord is one row of Rules.csv.
type RuleRecord struct {
	Keyword     string `csv:"Keyword"`
	Category    string `csv:"Category"`
	SubCategory string `csv:"Sub Category"`
	Count       int    `csv:"Count"`
}

// LedgerRecord is one row of Ledger.csv.
type LedgerRecord struct {
	Year        int             `csv:"Year"`
	Month       int             `csv:"Month"`
	Day         int             `csv:"Day"`
	Memo        string          `csv:"Memo"`
	Amount      decimal.Decimal `csv:"Amount"`
	Keyword     string          `csv:"Keyword"`
	Category    string          `csv:"Category"`
	SubCategory string          `csv:"Sub Category"`
	ID          string          `csv:"ID"`
}

func (r *BudgetRecord) months() [12]*decimal.Decimal {
	return [12]*decimal.Decimal{&r.Jan, &r.Feb, &r.Mar, &r.Apr, &r.May, &r.Jun,
		&r.Jul, &r.Aug, &r.Sep, &r.Oct, &r.Nov, &r.Dec}
}

func fromBudget(b models.BudgetCategory) *BudgetRecord {
	r := &BudgetRecord{
		Sign:     b.Sign,
		Category: b.Category,
		Budget:   decimal.NewFromInt(b.Budget),
		Average:  b.Average,
		Net:      b.Net,
		Total:    b.Total,
	}
	for i, m := range r.months() {
		*m = b.Actuals[i]
	}
	return r
}

func (r *BudgetRecord) model() models.BudgetCategory {
	b := models.BudgetCategory{
		Sign:     r.Sign,
		Category: r.Category,
		Budget:   r.Budget.IntPart(),
		Average:  r.Average,
		Net:      r.Net,
		Total:    r.Total,
	}
	for i, m := range r.months() {
		b.Actuals[i] = *m
	}
	return b
}

func fromRule(r models.Rule) *RuleRecord {
	return &RuleRecord{Keyword: r.Keyword, Category: r.Category, SubCategory: r.SubCategory, Count: r.Count}
}

func (r *RuleRecord) model() models.Rule {
	return models.Rule{Keyword: r.Keyword, Category: r.Category, SubCategory: r.SubCategory, Count: r.Count}
}

func fromTransaction(t models.Transaction) *LedgerRecord {
	return &LedgerRecord{
		Year: t.Year, Month: t.Month, Day: t.Day,
		Memo: t.Memo, Amount: t.Amount,
		Keyword: t.Keyword, Category: t.Category, SubCategory: t.SubCategory,
		ID: t.ID,
	}
}

func (r *LedgerRecord) model() models.Transaction {
	return models.Transaction{
		Year: r.Year, Month: r.Month, Day: r.Day,
		Memo: r.Memo, Amount: r.Amount,
		Keyword: r.Keyword, Category: r.Category, SubCategory: r.SubCategory,
		ID: r.ID,
	}
}

func transactionRecords(txs []models.Transaction) []*LedgerRecord {
	out := make([]*LedgerRecord, len(txs))
	for i, t := range txs {
		out[i] = fromTransaction(t)
	}
	return out
}

func transactions(records []*LedgerRecord) []models.Transaction {
	var out []models.Transaction
	for _, r := range records {
		out = append(out, r.model())
	}
	return out
}
