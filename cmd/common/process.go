// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"fjacquet/budget-ledger/internal/book"
	"fjacquet/budget-ledger/internal/container"
	"fjacquet/budget-ledger/internal/models"
)

// UpdateBook opens the book, runs fn and saves the book when fn succeeds.
// Nothing is written when fn fails.
func UpdateBook(c *container.Container, fn func(b *book.Book) error) error {
	b, err := openBook(c)
	if err != nil {
		return err
	}
	if err := fn(b); err != nil {
		return err
	}
	return c.SaveBook(b)
}

// ViewBook opens the book and runs fn without saving.
func ViewBook(c *container.Container, fn func(b *book.Book) error) error {
	b, err := openBook(c)
	if err != nil {
		return err
	}
	return fn(b)
}

func openBook(c *container.Container) (*book.Book, error) {
	if c == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return c.OpenBook()
}

// ParseRow converts a 1-based row number given on the command line to an
// index.
func ParseRow(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid row %q: must be a positive number", s)
	}
	return n - 1, nil
}

// PrintTable writes every row of t as an aligned table with 1-based row
// numbers.
func PrintTable(w io.Writer, b *book.Book, t book.Table) error {
	columns := book.Columns(t)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\t"+strings.Join(columns, "\t"))

	for row := 0; row < b.Len(t); row++ {
		cells := make([]string, len(columns))
		for i, column := range columns {
			text, err := b.Cell(t, row, column)
			if err != nil {
				return err
			}
			cells[i] = text
		}
		fmt.Fprintf(tw, "%d\t%s\n", row+1, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// PrintConflicts lists transactions left unassigned because several rules
// matched them.
func PrintConflicts(w io.Writer, conflicts []models.Conflict) {
	for _, c := range conflicts {
		fmt.Fprintf(w, "ambiguous: %q matches %s\n", c.Memo, strings.Join(c.Keywords, ", "))
	}
}

// PrintCategorizeResult writes the outcome of a categorization pass.
func PrintCategorizeResult(w io.Writer, r models.CategorizeResult) {
	fmt.Fprintf(w, "categorized %d, unmatched %d, ambiguous %d\n", r.Assigned, r.Unmatched, len(r.Conflicts))
	PrintConflicts(w, r.Conflicts)
}
