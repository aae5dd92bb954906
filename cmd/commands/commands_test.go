package commands

import (
	"testing"

	"fjacquet/budget-ledger/cmd/root"

	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	Register()
	Register()

	var names []string
	for _, c := range root.Cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"import", "categorize", "accept", "summarize", "rule", "category", "clear", "edit"} {
		assert.Contains(t, names, want)
	}
	assert.Len(t, names, len(uniq(names)))
}

func uniq(names []string) map[string]bool {
	m := make(map[string]bool)
	for _, n := range names {
		m[n] = true
	}
	return m
}
