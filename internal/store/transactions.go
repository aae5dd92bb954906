package store

import (
	"fmt"
	"sort"

	"fjacquet/budget-ledger/internal/budgeterror"
	"fjacquet/budget-ledger/internal/models"
)

// TransactionStore holds one of the Ledger, Imports or Duplicates
// collections. All three share the record shape; only the Ledger requires
// unique identifiers.
type TransactionStore struct {
	kind models.Kind
	txs  []models.Transaction
	ids  map[string]int
}

// NewTransactionStore creates an empty store of the given kind.
func NewTransactionStore(kind models.Kind) *TransactionStore {
	return &TransactionStore{kind: kind, ids: make(map[string]int)}
}

// Kind returns the store kind.
func (s *TransactionStore) Kind() models.Kind { return s.kind }

// Counted reports whether rule usage counts track this store.
func (s *TransactionStore) Counted() bool { return s.kind == models.Ledger }

func (s *TransactionStore) Len() int { return len(s.txs) }

// At returns a copy of transaction i.
func (s *TransactionStore) At(i int) models.Transaction { return s.txs[i] }

// Row returns a pointer to transaction i for in-place edits. The ID must
// not be changed through it; use Reidentify.
func (s *TransactionStore) Row(i int) *models.Transaction { return &s.txs[i] }

// All returns a copy of every transaction.
func (s *TransactionStore) All() []models.Transaction {
	return append([]models.Transaction(nil), s.txs...)
}

// HasID reports whether a transaction with the identifier is held.
func (s *TransactionStore) HasID(id string) bool {
	return s.ids[id] > 0
}

// Append adds a transaction. The Ledger rejects a repeated identifier.
func (s *TransactionStore) Append(tx models.Transaction) error {
	if s.kind == models.Ledger && s.HasID(tx.ID) {
		return &budgeterror.ConsistencyError{Check: "ledger_unique_id", Detail: fmt.Sprintf("identifier %q already in ledger", tx.ID)}
	}
	s.txs = append(s.txs, tx)
	s.ids[tx.ID]++
	return nil
}

// Reidentify replaces the identifier of transaction i. The Ledger rejects
// an identifier already held by another row.
func (s *TransactionStore) Reidentify(i int, id string) error {
	old := s.txs[i].ID
	if old == id {
		return nil
	}
	if s.kind == models.Ledger && s.HasID(id) {
		return &budgeterror.ValidationError{Table: s.kind.String(), Column: "ID", Value: id,
			Reason: "another ledger row has the same date, memo and amount"}
	}
	s.forget(old)
	s.txs[i].ID = id
	s.ids[id]++
	return nil
}

// Delete removes transaction i and returns it.
func (s *TransactionStore) Delete(i int) models.Transaction {
	tx := s.txs[i]
	s.txs = append(s.txs[:i], s.txs[i+1:]...)
	s.forget(tx.ID)
	return tx
}

// Swap exchanges transactions i and j.
func (s *TransactionStore) Swap(i, j int) {
	s.txs[i], s.txs[j] = s.txs[j], s.txs[i]
}

// Clear removes every transaction.
func (s *TransactionStore) Clear() int {
	n := len(s.txs)
	s.txs = nil
	s.ids = make(map[string]int)
	return n
}

// Take removes and returns, in order, every transaction matching match.
func (s *TransactionStore) Take(match func(models.Transaction) bool) []models.Transaction {
	var taken, kept []models.Transaction
	for _, tx := range s.txs {
		if match(tx) {
			taken = append(taken, tx)
			s.forget(tx.ID)
		} else {
			kept = append(kept, tx)
		}
	}
	s.txs = kept
	return taken
}

// Indexes returns the positions of transactions matching pred.
func (s *TransactionStore) Indexes(pred func(models.Transaction) bool) []int {
	var out []int
	for i, tx := range s.txs {
		if pred(tx) {
			out = append(out, i)
		}
	}
	return out
}

// CountKeyword returns the number of transactions tagged with keyword.
func (s *TransactionStore) CountKeyword(keyword string) int {
	return len(s.Indexes(func(tx models.Transaction) bool { return tx.Keyword == keyword }))
}

// Years returns the distinct years present, ascending.
func (s *TransactionStore) Years() []int {
	seen := make(map[int]bool)
	var years []int
	for _, tx := range s.txs {
		if !seen[tx.Year] {
			seen[tx.Year] = true
			years = append(years, tx.Year)
		}
	}
	sort.Ints(years)
	return years
}

func (s *TransactionStore) forget(id string) {
	if s.ids[id] <= 1 {
		delete(s.ids, id)
		return
	}
	s.ids[id]--
}

func (s *TransactionStore) clone() *TransactionStore {
	c := NewTransactionStore(s.kind)
	c.txs = s.All()
	for id, n := range s.ids {
		c.ids[id] = n
	}
	return c
}
