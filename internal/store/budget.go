package store

import (
	"fjacquet/budget-ledger/internal/budgeterror"
	"fjacquet/budget-ledger/internal/models"
)

// BudgetTable owns the budget categories in their display order.
// Category names are unique and upper-case.
type BudgetTable struct {
	rows []models.BudgetCategory
}

// NewBudgetTable builds a table from rows, rejecting duplicate names.
func NewBudgetTable(rows []models.BudgetCategory) (*BudgetTable, error) {
	t := &BudgetTable{}
	for _, row := range rows {
		if err := t.Append(row); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *BudgetTable) Len() int { return len(t.rows) }

// At returns a copy of row i.
func (t *BudgetTable) At(i int) models.BudgetCategory { return t.rows[i] }

// All returns a copy of every row.
func (t *BudgetTable) All() []models.BudgetCategory {
	return append([]models.BudgetCategory(nil), t.rows...)
}

// Names returns the category names in table order.
func (t *BudgetTable) Names() []string {
	names := make([]string, len(t.rows))
	for i, row := range t.rows {
		names[i] = row.Category
	}
	return names
}

// Index returns the row of the named category, or -1.
func (t *BudgetTable) Index(name string) int {
	name = models.NormalizeCategory(name)
	for i, row := range t.rows {
		if row.Category == name {
			return i
		}
	}
	return -1
}

// Has reports whether the named category exists.
func (t *BudgetTable) Has(name string) bool {
	return t.Index(name) >= 0
}

// Append adds a category at the end of the table.
func (t *BudgetTable) Append(row models.BudgetCategory) error {
	row.Category = models.NormalizeCategory(row.Category)
	if row.Category == "" || row.Category == models.NormalizeCategory(models.Unassigned) {
		return &budgeterror.ValidationError{Table: "Budget", Column: "Category", Value: row.Category, Reason: "name is reserved or empty"}
	}
	if t.Has(row.Category) {
		return &budgeterror.ReferentialError{Kind: "category", Name: row.Category, Reason: "already exists"}
	}
	if row.Sign != 1 && row.Sign != -1 {
		return &budgeterror.ValidationError{Table: "Budget", Column: "Sign", Value: itoa(row.Sign), Reason: "must be -1 or 1"}
	}
	if row.Budget < 0 {
		row.Budget = -row.Budget
	}
	t.rows = append(t.rows, row)
	return nil
}

// Rename changes the name of row i. Callers check uniqueness.
func (t *BudgetTable) Rename(i int, name string) {
	t.rows[i].Category = models.NormalizeCategory(name)
}

// SetSign sets the sign of row i.
func (t *BudgetTable) SetSign(i, sign int) {
	t.rows[i].Sign = sign
}

// SetBudget sets the budgeted amount of row i.
func (t *BudgetTable) SetBudget(i int, amount int64) {
	t.rows[i].Budget = amount
}

// ApplySummary stores derived figures on the matching rows.
func (t *BudgetTable) ApplySummary(rows []models.SummaryRow) {
	for _, row := range rows {
		if i := t.Index(row.Category); i >= 0 {
			t.rows[i].ApplySummary(row)
		}
	}
}

// Delete removes row i.
func (t *BudgetTable) Delete(i int) models.BudgetCategory {
	row := t.rows[i]
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return row
}

// Swap exchanges rows i and j.
func (t *BudgetTable) Swap(i, j int) {
	t.rows[i], t.rows[j] = t.rows[j], t.rows[i]
}

func (t *BudgetTable) clone() *BudgetTable {
	return &BudgetTable{rows: t.All()}
}
