// Package rule implements the keyword rule commands
package rule

import (
	"fmt"

	"fjacquet/budget-ledger/cmd/common"
	"fjacquet/budget-ledger/cmd/root"
	"fjacquet/budget-ledger/internal/book"
	"fjacquet/budget-ledger/internal/models"

	"github.com/spf13/cobra"
)

// Cmd is the parent of the rule subcommands
var Cmd = &cobra.Command{
	Use:   "rule",
	Short: "Manage keyword rules",
	Long: `A rule maps a keyword found in transaction memos to a budget category and
sub-category. Changes to a rule are applied to every transaction carrying it.`,
}

var addCmd = &cobra.Command{
	Use:   "add KEYWORD CATEGORY [SUBCATEGORY]",
	Short: "Add a rule for an existing category",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		sub := models.Unassigned
		if len(args) == 3 {
			sub = args[2]
		}
		return update(cmd, func(b *book.Book) error {
			return b.AddRule(args[0], args[1], sub)
		}, "added rule %q", args[0])
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename KEYWORD NEW_KEYWORD",
	Short: "Rename a rule keyword",
	Long: `Rename changes a rule keyword. Transactions carrying the old keyword whose
memo does not contain the new one are reset to unassigned.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return update(cmd, func(b *book.Book) error {
			return b.RenameKeyword(args[0], args[1])
		}, "renamed rule %q to %q", args[0], args[1])
	},
}

var recategorizeCmd = &cobra.Command{
	Use:   "recategorize KEYWORD CATEGORY",
	Short: "Point a rule and its transactions at another category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return update(cmd, func(b *book.Book) error {
			return b.RecategorizeKeyword(args[0], args[1])
		}, "rule %q now files under %s", args[0], models.NormalizeCategory(args[1]))
	},
}

var subcategoryCmd = &cobra.Command{
	Use:   "subcategory KEYWORD SUBCATEGORY",
	Short: "Set the sub-category of a rule and its transactions",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return update(cmd, func(b *book.Book) error {
			return b.ResubcategorizeKeyword(args[0], args[1])
		}, "rule %q sub-category set to %q", args[0], args[1])
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete KEYWORD",
	Short: "Delete a rule and reset the transactions carrying it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return update(cmd, func(b *book.Book) error {
			return b.DeleteRule(args[0])
		}, "deleted rule %q", args[0])
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the rules with their usage counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return common.ViewBook(root.GetContainer(), func(b *book.Book) error {
			return common.PrintTable(cmd.OutOrStdout(), b, book.TableRules)
		})
	},
}

func init() {
	Cmd.AddCommand(addCmd, renameCmd, recategorizeCmd, subcategoryCmd, deleteCmd, listCmd)
}

func update(cmd *cobra.Command, fn func(b *book.Book) error, done string, args ...interface{}) error {
	err := common.UpdateBook(root.GetContainer(), fn)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), done+"\n", args...)
	return nil
}
