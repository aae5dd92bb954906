// Package store holds the budget, rule and transaction tables the engine
// operates on, and loads seed data from YAML.
package store

import (
	"fmt"
	"sort"
	"strings"

	"fjacquet/budget-ledger/internal/budgeterror"
	"fjacquet/budget-ledger/internal/models"
)

// Set bundles every table of one budget book. It is passed explicitly to
// the categorizer, reconciler, importer and aggregator.
type Set struct {
	Budget     *BudgetTable
	Rules      *RuleStore
	Imports    *TransactionStore
	Ledger     *TransactionStore
	Duplicates *TransactionStore
}

// NewSet returns a Set with empty tables.
func NewSet() *Set {
	return &Set{
		Budget:     &BudgetTable{},
		Rules:      &RuleStore{},
		Imports:    NewTransactionStore(models.Imports),
		Ledger:     NewTransactionStore(models.Ledger),
		Duplicates: NewTransactionStore(models.Duplicates),
	}
}

// Store returns the transaction store of the given kind.
func (s *Set) Store(kind models.Kind) *TransactionStore {
	switch kind {
	case models.Imports:
		return s.Imports
	case models.Duplicates:
		return s.Duplicates
	default:
		return s.Ledger
	}
}

// TransactionStores returns the Ledger, Imports and Duplicates stores.
func (s *Set) TransactionStores() []*TransactionStore {
	return []*TransactionStore{s.Ledger, s.Imports, s.Duplicates}
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	return &Set{
		Budget:     s.Budget.clone(),
		Rules:      s.Rules.clone(),
		Imports:    s.Imports.clone(),
		Ledger:     s.Ledger.clone(),
		Duplicates: s.Duplicates.clone(),
	}
}

// Drift describes a rule whose stored count disagrees with the Ledger.
type Drift struct {
	Keyword string
	Stored  int
	Actual  int
}

// RecountUsage sets every rule count to the number of Ledger transactions
// carrying its keyword and returns the rules that changed.
func (s *Set) RecountUsage() []Drift {
	actual := s.ledgerKeywordCounts()
	var drifts []Drift
	for i := 0; i < s.Rules.Len(); i++ {
		r := s.Rules.At(i)
		if n := actual[r.Keyword]; n != r.Count {
			drifts = append(drifts, Drift{Keyword: r.Keyword, Stored: r.Count, Actual: n})
			s.Rules.SetCount(i, n)
		}
	}
	return drifts
}

// Verify checks the cross-table invariants: rule counts match the Ledger,
// Ledger identifiers are unique, and every rule and transaction references
// a known category and keyword.
func (s *Set) Verify() error {
	var problems []string

	actual := s.ledgerKeywordCounts()
	for _, r := range s.Rules.All() {
		if actual[r.Keyword] != r.Count {
			problems = append(problems, fmt.Sprintf("rule %q count %d, ledger has %d", r.Keyword, r.Count, actual[r.Keyword]))
		}
		if r.Category != models.Unassigned && !s.Budget.Has(r.Category) {
			problems = append(problems, fmt.Sprintf("rule %q references unknown category %q", r.Keyword, r.Category))
		}
	}

	seen := make(map[string]bool, s.Ledger.Len())
	for _, tx := range s.Ledger.All() {
		if seen[tx.ID] {
			problems = append(problems, fmt.Sprintf("ledger identifier %q repeated", tx.ID))
		}
		seen[tx.ID] = true
	}

	for _, ts := range s.TransactionStores() {
		for _, tx := range ts.All() {
			if tx.HasKeyword() && !s.Rules.Has(tx.Keyword) {
				problems = append(problems, fmt.Sprintf("%s transaction %q references unknown keyword %q", ts.Kind(), tx.ID, tx.Keyword))
			}
			if tx.HasCategory() && !s.Budget.Has(tx.Category) {
				problems = append(problems, fmt.Sprintf("%s transaction %q references unknown category %q", ts.Kind(), tx.ID, tx.Category))
			}
		}
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return &budgeterror.ConsistencyError{Check: "book", Detail: strings.Join(problems, "; ")}
	}
	return nil
}

func (s *Set) ledgerKeywordCounts() map[string]int {
	counts := make(map[string]int)
	for _, tx := range s.Ledger.All() {
		if tx.HasKeyword() {
			counts[tx.Keyword]++
		}
	}
	return counts
}
