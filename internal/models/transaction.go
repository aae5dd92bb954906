package models

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// IDDelimiter separates the parts of a stable identifier. Memo text never
// contains it because the importer strips it.
const IDDelimiter = "|"

// Transaction is a single bank transaction. It lives in exactly one of the
// Ledger, Imports or Duplicates stores.
type Transaction struct {
	Year        int
	Month       int
	Day         int
	Memo        string
	Amount      decimal.Decimal
	Keyword     string
	Category    string
	SubCategory string
	ID          string
}

// NewTransaction builds an unassigned transaction and computes its identifier.
func NewTransaction(date Date, memo string, amount decimal.Decimal) Transaction {
	tx := Transaction{
		Year:        date.Year,
		Month:       date.Month,
		Day:         date.Day,
		Memo:        memo,
		Amount:      amount,
		Keyword:     Unassigned,
		Category:    Unassigned,
		SubCategory: Unassigned,
	}
	tx.ID = StableID(date, memo, amount)
	return tx
}

// StableID joins year, month, day, memo and amount with IDDelimiter. Two
// transactions describe the same real-world event iff their IDs are equal.
func StableID(date Date, memo string, amount decimal.Decimal) string {
	return strings.Join([]string{
		strconv.Itoa(date.Year),
		strconv.Itoa(date.Month),
		strconv.Itoa(date.Day),
		memo,
		amount.String(),
	}, IDDelimiter)
}

// CanonicalID rewrites the amount part of id in StableID form, so that
// identifiers stored with float text ("-20.0", "1000.0") compare equal to
// freshly computed ones. Anything that is not a five-part identifier with
// a numeric amount is returned unchanged.
func CanonicalID(id string) string {
	parts := strings.Split(id, IDDelimiter)
	if len(parts) != 5 {
		return id
	}
	amount, err := decimal.NewFromString(parts[4])
	if err != nil {
		return id
	}
	parts[4] = amount.String()
	return strings.Join(parts, IDDelimiter)
}

// Date returns the transaction date.
func (t Transaction) Date() Date {
	return Date{Year: t.Year, Month: t.Month, Day: t.Day}
}

// HasKeyword reports whether a rule has claimed the transaction.
func (t Transaction) HasKeyword() bool {
	return t.Keyword != Unassigned
}

// HasCategory reports whether the transaction has a resolved category.
func (t Transaction) HasCategory() bool {
	return t.Category != Unassigned
}

// Assign tags the transaction with a rule's keyword, category and sub-category.
func (t *Transaction) Assign(r Rule) {
	t.Keyword = r.Keyword
	t.Category = r.Category
	t.SubCategory = r.SubCategory
}

// Reset returns the transaction to the unassigned state.
func (t *Transaction) Reset() {
	t.Keyword = Unassigned
	t.Category = Unassigned
	t.SubCategory = Unassigned
}
