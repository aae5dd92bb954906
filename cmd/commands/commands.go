// Package commands registers every subcommand on the root command.
package commands

import (
	"sync"

	"fjacquet/budget-ledger/cmd/accept"
	"fjacquet/budget-ledger/cmd/categorize"
	"fjacquet/budget-ledger/cmd/category"
	"fjacquet/budget-ledger/cmd/clear"
	"fjacquet/budget-ledger/cmd/edit"
	"fjacquet/budget-ledger/cmd/importcmd"
	"fjacquet/budget-ledger/cmd/root"
	"fjacquet/budget-ledger/cmd/rule"
	"fjacquet/budget-ledger/cmd/summarize"
)

var once sync.Once

// Register adds the subcommands to root.Cmd. Later calls do nothing.
func Register() {
	once.Do(func() {
		root.Cmd.AddCommand(importcmd.Cmd)
		root.Cmd.AddCommand(categorize.Cmd)
		root.Cmd.AddCommand(accept.Cmd)
		root.Cmd.AddCommand(summarize.Cmd)
		root.Cmd.AddCommand(rule.Cmd)
		root.Cmd.AddCommand(category.Cmd)
		root.Cmd.AddCommand(clear.Cmd)
		root.Cmd.AddCommand(edit.Cmd)
	})
}
