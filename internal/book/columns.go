package book

import (
	"fmt"
	"strconv"
	"strings"

	"fjacquet/budget-ledger/internal/budgeterror"
	"fjacquet/budget-ledger/internal/dateutils"
	"fjacquet/budget-ledger/internal/models"
	"fjacquet/budget-ledger/internal/store"
)

// Table names one of the five tables of a book.
type Table string

const (
	TableBudget     Table = "Budget"
	TableRules      Table = "Rules"
	TableImports    Table = "Imports"
	TableLedger     Table = "Ledger"
	TableDuplicates Table = "Duplicates"
)

// Tables lists every table in display order.
var Tables = []Table{TableBudget, TableRules, TableImports, TableLedger, TableDuplicates}

// ParseTable parses a table name, case-insensitively.
func ParseTable(s string) (Table, error) {
	for _, t := range Tables {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown table %q", s)
}

// Kind returns the transaction store behind t.
func (t Table) Kind() (models.Kind, bool) {
	switch t {
	case TableLedger:
		return models.Ledger, true
	case TableImports:
		return models.Imports, true
	case TableDuplicates:
		return models.Duplicates, true
	}
	return 0, false
}

// Column names, shared with the archive format.
const (
	ColSign        = "Sign"
	ColCategory    = "Category"
	ColBudget      = "Budget"
	ColAverage     = "Average"
	ColNet         = "Net"
	ColTotal       = "Total"
	ColKeyword     = "Keyword"
	ColSubCategory = "Sub Category"
	ColCount       = "Count"
	ColYear        = "Year"
	ColMonth       = "Month"
	ColDay         = "Day"
	ColMemo        = "Memo"
	ColAmount      = "Amount"
	ColID          = "ID"
)

// BudgetColumns are the budget table columns in order.
var BudgetColumns = append(append([]string{ColSign, ColCategory, ColBudget, ColAverage, ColNet},
	dateutils.MonthNames[:]...), ColTotal)

// RuleColumns are the rules table columns in order.
var RuleColumns = []string{ColKeyword, ColCategory, ColSubCategory, ColCount}

// TransactionColumns are the columns of the three transaction tables.
var TransactionColumns = []string{ColYear, ColMonth, ColDay, ColMemo, ColAmount,
	ColKeyword, ColCategory, ColSubCategory, ColID}

// Columns returns the columns of t.
func Columns(t Table) []string {
	switch t {
	case TableBudget:
		return BudgetColumns
	case TableRules:
		return RuleColumns
	default:
		return TransactionColumns
	}
}

func monthIndex(column string) int {
	for i, name := range dateutils.MonthNames {
		if name == column {
			return i
		}
	}
	return -1
}

func rowCount(set *store.Set, t Table) int {
	switch t {
	case TableBudget:
		return set.Budget.Len()
	case TableRules:
		return set.Rules.Len()
	}
	kind, _ := t.Kind()
	return set.Store(kind).Len()
}

func checkCell(set *store.Set, t Table, row int, column string) error {
	if _, err := ParseTable(string(t)); err != nil {
		return &budgeterror.ValidationError{Table: string(t), Column: column, Value: string(t), Reason: "unknown table"}
	}
	if n := rowCount(set, t); row < 0 || row >= n {
		return &budgeterror.ValidationError{Table: string(t), Column: "row", Value: strconv.Itoa(row),
			Reason: fmt.Sprintf("out of range [0, %d)", n)}
	}
	for _, c := range Columns(t) {
		if c == column {
			return nil
		}
	}
	return &budgeterror.ValidationError{Table: string(t), Column: column, Value: column, Reason: "unknown column"}
}

// cell renders one field as text. The caller has checked the coordinates.
func cell(set *store.Set, t Table, row int, column string) string {
	switch t {
	case TableBudget:
		b := set.Budget.At(row)
		switch column {
		case ColSign:
			return strconv.Itoa(b.Sign)
		case ColCategory:
			return b.Category
		case ColBudget:
			return strconv.FormatInt(b.Budget, 10)
		case ColAverage:
			return b.Average.String()
		case ColNet:
			return b.Net.String()
		case ColTotal:
			return b.Total.String()
		default:
			return b.Actuals[monthIndex(column)].String()
		}
	case TableRules:
		r := set.Rules.At(row)
		switch column {
		case ColKeyword:
			return r.Keyword
		case ColCategory:
			return r.Category
		case ColSubCategory:
			return r.SubCategory
		default:
			return strconv.Itoa(r.Count)
		}
	}

	kind, _ := t.Kind()
	tx := set.Store(kind).At(row)
	switch column {
	case ColYear:
		return strconv.Itoa(tx.Year)
	case ColMonth:
		return strconv.Itoa(tx.Month)
	case ColDay:
		return strconv.Itoa(tx.Day)
	case ColMemo:
		return tx.Memo
	case ColAmount:
		return tx.Amount.String()
	case ColKeyword:
		return tx.Keyword
	case ColCategory:
		return tx.Category
	case ColSubCategory:
		return tx.SubCategory
	default:
		return tx.ID
	}
}
