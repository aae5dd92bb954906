package store

import (
	"fmt"
	"strings"

	"fjacquet/budget-ledger/internal/budgeterror"
	"fjacquet/budget-ledger/internal/models"
)

// RuleStore owns the keyword rules. Keywords are unique and non-empty.
type RuleStore struct {
	rules []models.Rule
}

// NewRuleStore builds a store from rules, rejecting empty or duplicate keywords.
func NewRuleStore(rules []models.Rule) (*RuleStore, error) {
	s := &RuleStore{}
	for _, r := range rules {
		if err := s.Append(r); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *RuleStore) Len() int { return len(s.rules) }

// At returns a copy of rule i.
func (s *RuleStore) At(i int) models.Rule { return s.rules[i] }

// All returns a copy of every rule.
func (s *RuleStore) All() []models.Rule {
	return append([]models.Rule(nil), s.rules...)
}

// Index returns the position of the rule with the given keyword, or -1.
func (s *RuleStore) Index(keyword string) int {
	for i, r := range s.rules {
		if r.Keyword == keyword {
			return i
		}
	}
	return -1
}

// Has reports whether a rule uses keyword.
func (s *RuleStore) Has(keyword string) bool {
	return s.Index(keyword) >= 0
}

// Collides reports whether a rule other than the one at except has a
// keyword equal to keyword ignoring case. Matching ignores case, so two
// such rules would claim every memo together.
func (s *RuleStore) Collides(keyword string, except int) bool {
	for i, r := range s.rules {
		if i != except && strings.EqualFold(r.Keyword, keyword) {
			return true
		}
	}
	return false
}

// Find returns the rule with the given keyword.
func (s *RuleStore) Find(keyword string) (models.Rule, bool) {
	if i := s.Index(keyword); i >= 0 {
		return s.rules[i], true
	}
	return models.Rule{}, false
}

// Append adds a rule at the end of the store.
func (s *RuleStore) Append(r models.Rule) error {
	r.Keyword = strings.TrimSpace(r.Keyword)
	if err := ValidateKeyword(r.Keyword); err != nil {
		return err
	}
	if s.Collides(r.Keyword, -1) {
		return &budgeterror.ReferentialError{Kind: "keyword", Name: r.Keyword, Reason: "already exists"}
	}
	if r.Count < 0 {
		r.Count = 0
	}
	s.rules = append(s.rules, r)
	return nil
}

// ValidateKeyword rejects empty and sentinel keywords.
func ValidateKeyword(keyword string) error {
	if keyword == "" || models.NormalizeSentinel(keyword) == models.Unassigned {
		return &budgeterror.ValidationError{Table: "Rules", Column: "Keyword", Value: keyword, Reason: "keyword must be a non-empty, non-reserved pattern"}
	}
	return nil
}

// Rename changes the keyword of rule i. Callers check uniqueness.
func (s *RuleStore) Rename(i int, keyword string) {
	s.rules[i].Keyword = keyword
}

// SetCategory sets the category of rule i.
func (s *RuleStore) SetCategory(i int, category string) {
	s.rules[i].Category = category
}

// SetSubCategory sets the sub-category of rule i.
func (s *RuleStore) SetSubCategory(i int, sub string) {
	s.rules[i].SubCategory = sub
}

// SetCount overwrites the usage count of rule i.
func (s *RuleStore) SetCount(i, count int) {
	s.rules[i].Count = count
}

// RenameCategory rewrites every rule pointing at old.
func (s *RuleStore) RenameCategory(old, new string) int {
	n := 0
	for i := range s.rules {
		if s.rules[i].Category == old {
			s.rules[i].Category = new
			n++
		}
	}
	return n
}

// Increment adds one use to the rule with the given keyword.
func (s *RuleStore) Increment(keyword string) error {
	i := s.Index(keyword)
	if i < 0 {
		return &budgeterror.ConsistencyError{Check: "usage_count", Detail: fmt.Sprintf("no rule for keyword %q", keyword)}
	}
	s.rules[i].Count++
	return nil
}

// Decrement removes one use from the rule with the given keyword.
func (s *RuleStore) Decrement(keyword string) error {
	i := s.Index(keyword)
	if i < 0 {
		return &budgeterror.ConsistencyError{Check: "usage_count", Detail: fmt.Sprintf("no rule for keyword %q", keyword)}
	}
	if s.rules[i].Count == 0 {
		return &budgeterror.ConsistencyError{Check: "usage_count", Detail: fmt.Sprintf("rule %q count would drop below zero", keyword)}
	}
	s.rules[i].Count--
	return nil
}

// Delete removes rule i.
func (s *RuleStore) Delete(i int) models.Rule {
	r := s.rules[i]
	s.rules = append(s.rules[:i], s.rules[i+1:]...)
	return r
}

// Swap exchanges rules i and j.
func (s *RuleStore) Swap(i, j int) {
	s.rules[i], s.rules[j] = s.rules[j], s.rules[i]
}

func (s *RuleStore) clone() *RuleStore {
	return &RuleStore{rules: s.All()}
}
