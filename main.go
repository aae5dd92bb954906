package main

import (
	"os"

	"fjacquet/budget-ledger/cmd/commands"
	"fjacquet/budget-ledger/cmd/root"
)

func init() {
	commands.Register()
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
