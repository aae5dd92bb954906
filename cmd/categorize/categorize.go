// Package categorize handles transaction categorization commands
package categorize

import (
	"fjacquet/budget-ledger/cmd/common"
	"fjacquet/budget-ledger/cmd/root"
	"fjacquet/budget-ledger/internal/book"
	"fjacquet/budget-ledger/internal/models"

	"github.com/spf13/cobra"
)

var table string

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize unassigned transactions using the keyword rules",
	Long: `Categorize assigns every unassigned transaction of a table to the single rule
whose keyword occurs in its memo. Transactions matching several rules are left
unassigned and reported as ambiguous.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := models.ParseKind(table)
		if err != nil {
			return err
		}
		return common.UpdateBook(root.GetContainer(), func(b *book.Book) error {
			result, err := b.AutoCategorize(kind)
			if err != nil {
				return err
			}
			common.PrintCategorizeResult(cmd.OutOrStdout(), result)
			return nil
		})
	},
}

func init() {
	Cmd.Flags().StringVarP(&table, "table", "t", "imports", "Table to categorize: imports, ledger or duplicates")
}
