// Package category implements the budget category commands
package category

import (
	"fmt"

	"fjacquet/budget-ledger/cmd/common"
	"fjacquet/budget-ledger/cmd/root"
	"fjacquet/budget-ledger/internal/book"
	"fjacquet/budget-ledger/internal/budgeterror"
	"fjacquet/budget-ledger/internal/models"

	"github.com/spf13/cobra"
)

var (
	sign   int
	amount int64
)

// Cmd is the parent of the category subcommands
var Cmd = &cobra.Command{
	Use:   "category",
	Short: "Manage budget categories",
}

var addCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a budget category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return update(cmd, func(b *book.Book) error {
			return b.AddCategory(models.NormalizeCategory(args[0]), sign, amount)
		}, "added category %s", models.NormalizeCategory(args[0]))
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename NAME NEW_NAME",
	Short: "Rename a category in the budget, rules and transactions",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return update(cmd, func(b *book.Book) error {
			return b.RenameCategory(args[0], args[1])
		}, "renamed %s to %s", models.NormalizeCategory(args[0]), models.NormalizeCategory(args[1]))
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a category no rule or transaction uses",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return update(cmd, func(b *book.Book) error {
			return b.DeleteCategory(args[0])
		}, "deleted category %s", models.NormalizeCategory(args[0]))
	},
}

var budgetCmd = &cobra.Command{
	Use:   "budget NAME AMOUNT",
	Short: "Set the monthly budget of a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setField(cmd, args[0], book.ColBudget, args[1])
	},
}

var signCmd = &cobra.Command{
	Use:   "sign NAME -1|1",
	Short: "Set whether a category is income-like (1) or expense-like (-1)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setField(cmd, args[0], book.ColSign, args[1])
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the budget table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return common.ViewBook(root.GetContainer(), func(b *book.Book) error {
			return common.PrintTable(cmd.OutOrStdout(), b, book.TableBudget)
		})
	},
}

func init() {
	addCmd.Flags().IntVarP(&sign, "sign", "s", -1, "1 for income-like, -1 for expense-like")
	addCmd.Flags().Int64VarP(&amount, "budget", "b", 0, "Monthly budget (whole number)")
	Cmd.AddCommand(addCmd, renameCmd, deleteCmd, budgetCmd, signCmd, listCmd)
}

func setField(cmd *cobra.Command, name, column, value string) error {
	var accepted string
	err := common.UpdateBook(root.GetContainer(), func(b *book.Book) error {
		row := b.CategoryRow(name)
		if row < 0 {
			return &budgeterror.ReferentialError{Kind: "category", Name: name, Reason: "no such category"}
		}
		var err error
		accepted, err = b.SetField(book.TableBudget, row, column, value)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s set to %s\n", models.NormalizeCategory(name), column, accepted)
	return nil
}

func update(cmd *cobra.Command, fn func(b *book.Book) error, done string, args ...interface{}) error {
	if err := common.UpdateBook(root.GetContainer(), fn); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), done+"\n", args...)
	return nil
}

