package models

// Rule maps a keyword pattern found in memo text to a budget category.
// Count is the number of Ledger transactions tagged with Keyword.
type Rule struct {
	Keyword     string
	Category    string
	SubCategory string
	Count       int
}
