// Package clear implements the clear command
package clear

import (
	"fmt"

	"fjacquet/budget-ledger/cmd/common"
	"fjacquet/budget-ledger/cmd/root"
	"fjacquet/budget-ledger/internal/book"
	"fjacquet/budget-ledger/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the clear command
var Cmd = &cobra.Command{
	Use:       "clear imports|duplicates",
	Short:     "Empty the Imports or Duplicates table",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"imports", "duplicates"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := models.ParseKind(args[0])
		if err != nil {
			return err
		}
		if kind == models.Ledger {
			return fmt.Errorf("the ledger cannot be cleared")
		}
		return common.UpdateBook(root.GetContainer(), func(b *book.Book) error {
			n := b.ClearImports
			if kind == models.Duplicates {
				n = b.ClearDuplicates
			}
			removed, err := n()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d rows from %s\n", removed, kind)
			return nil
		})
	},
}
