// Package accept implements the accept command
package accept

import (
	"fmt"

	"fjacquet/budget-ledger/cmd/common"
	"fjacquet/budget-ledger/cmd/root"
	"fjacquet/budget-ledger/internal/book"

	"github.com/spf13/cobra"
)

// Cmd represents the accept command
var Cmd = &cobra.Command{
	Use:   "accept",
	Short: "Move categorized imports into the Ledger",
	Long: `Accept moves every categorized transaction from Imports into the Ledger.
Transactions already in the Ledger go to Duplicates; unassigned ones stay in
Imports.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return common.UpdateBook(root.GetContainer(), func(b *book.Book) error {
			result, err := b.Accept()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "accepted %d, duplicates %d, remaining %d\n",
				result.Accepted, result.Duplicates, result.Remaining)
			return nil
		})
	},
}
