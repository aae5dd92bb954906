// Package edit implements the generic table editing commands
package edit

import (
	"fmt"
	"strings"

	"fjacquet/budget-ledger/cmd/common"
	"fjacquet/budget-ledger/cmd/root"
	"fjacquet/budget-ledger/internal/book"

	"github.com/spf13/cobra"
)

var at int

// Cmd is the parent of the edit subcommands
var Cmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit table rows directly",
	Long: `Edit works on the Budget, Rules, Imports, Ledger and Duplicates tables by row
number (starting at 1) and column name. Every change is validated and the
dependent tables are updated in the same step.`,
}

var showCmd = &cobra.Command{
	Use:   "show TABLE",
	Short: "Print a table with row numbers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := book.ParseTable(args[0])
		if err != nil {
			return err
		}
		return common.ViewBook(root.GetContainer(), func(b *book.Book) error {
			return common.PrintTable(cmd.OutOrStdout(), b, t)
		})
	},
}

var setCmd = &cobra.Command{
	Use:   "set TABLE ROW COLUMN VALUE",
	Short: "Set one field",
	Long: `Set replaces one field. A rejected value leaves the table unchanged and the
reason is reported. Setting the Keyword of a transaction assigns that rule's
category; "unassigned" clears it.`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, row, err := target(args[0], args[1])
		if err != nil {
			return err
		}
		column := columnName(t, args[2])
		var accepted string
		err = common.UpdateBook(root.GetContainer(), func(b *book.Book) error {
			var err error
			accepted, err = b.SetField(t, row, column, args[3])
			return err
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s row %d %s = %s\n", t, row+1, column, accepted)
		return nil
	},
}

var insertCmd = &cobra.Command{
	Use:   "insert TABLE",
	Short: "Insert a placeholder row",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := book.ParseTable(args[0])
		if err != nil {
			return err
		}
		var index int
		err = common.UpdateBook(root.GetContainer(), func(b *book.Book) error {
			var err error
			index, err = b.InsertRow(t, at-1)
			return err
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "inserted %s row %d\n", t, index+1)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete TABLE ROW",
	Short: "Delete a row",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, row, err := target(args[0], args[1])
		if err != nil {
			return err
		}
		err = common.UpdateBook(root.GetContainer(), func(b *book.Book) error {
			return b.DeleteRow(t, row)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s row %d\n", t, row+1)
		return nil
	},
}

var swapCmd = &cobra.Command{
	Use:   "swap TABLE ROW ROW",
	Short: "Exchange two rows",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, i, err := target(args[0], args[1])
		if err != nil {
			return err
		}
		j, err := common.ParseRow(args[2])
		if err != nil {
			return err
		}
		return common.UpdateBook(root.GetContainer(), func(b *book.Book) error {
			return b.SwapRows(t, i, j)
		})
	},
}

func init() {
	insertCmd.Flags().IntVar(&at, "at", 0, "Row number to insert at (default appends)")
	Cmd.AddCommand(showCmd, setCmd, insertCmd, deleteCmd, swapCmd)
}

func target(table, row string) (book.Table, int, error) {
	t, err := book.ParseTable(table)
	if err != nil {
		return "", 0, err
	}
	i, err := common.ParseRow(row)
	if err != nil {
		return "", 0, err
	}
	return t, i, nil
}

// columnName matches a column of t case-insensitively, returning name
// unchanged when none matches so the book reports it.
func columnName(t book.Table, name string) string {
	for _, c := range book.Columns(t) {
		if strings.EqualFold(c, strings.TrimSpace(name)) {
			return c
		}
	}
	return name
}
