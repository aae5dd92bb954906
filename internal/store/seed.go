package store

import (
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/budget-ledger/internal/logging"
	"fjacquet/budget-ledger/internal/models"

	"gopkg.in/yaml.v3"
)

// SeedCategory is a budget category in the seed file.
type SeedCategory struct {
	Category string `yaml:"category"`
	Sign     int    `yaml:"sign"`
	Budget   int64  `yaml:"budget"`
}

// SeedRule is a keyword rule in the seed file.
type SeedRule struct {
	Keyword     string `yaml:"keyword"`
	Category    string `yaml:"category"`
	SubCategory string `yaml:"sub_category"`
}

// Seed is the starting budget and rule set of a new book.
type Seed struct {
	Budget []SeedCategory `yaml:"budget"`
	Rules  []SeedRule     `yaml:"rules"`
}

// DefaultSeed returns the budget and rules a book starts with when no seed
// file is configured.
func DefaultSeed() Seed {
	return Seed{
		Budget: []SeedCategory{
			{Category: "INCOME", Sign: 1, Budget: 10000},
			{Category: "GROCERIES", Sign: -1, Budget: 1000},
		},
		Rules: []SeedRule{
			{Keyword: "Trader Joes", Category: "GROCERIES", SubCategory: "Trader Joe's"},
			{Keyword: "CVS", Category: "GROCERIES", SubCategory: "CVS/PHARMACY"},
			{Keyword: "GOOGLE", Category: "INCOME", SubCategory: "Person 1"},
		},
	}
}

// Categories converts the seed budget to models.
func (s Seed) Categories() []models.BudgetCategory {
	out := make([]models.BudgetCategory, 0, len(s.Budget))
	for _, c := range s.Budget {
		sign := c.Sign
		if sign == 0 {
			sign = -1
		}
		out = append(out, models.BudgetCategory{Sign: sign, Category: c.Category, Budget: c.Budget})
	}
	return out
}

// KeywordRules converts the seed rules to models, upper-casing categories.
func (s Seed) KeywordRules() []models.Rule {
	out := make([]models.Rule, 0, len(s.Rules))
	for _, r := range s.Rules {
		sub := r.SubCategory
		if sub == "" {
			sub = models.Unassigned
		}
		out = append(out, models.Rule{
			Keyword:     r.Keyword,
			Category:    models.NormalizeCategory(r.Category),
			SubCategory: sub,
		})
	}
	return out
}

// SeedStore loads seed data from a YAML file.
type SeedStore struct {
	File   string
	logger logging.Logger
}

// NewSeedStore creates a store for the given seed file. An empty file name
// means the built-in defaults.
func NewSeedStore(file string, logger logging.Logger) *SeedStore {
	return &SeedStore{File: file, logger: logger}
}

// FindSeedFile looks for the seed file as given, then under ./config and
// $HOME/.config/budget-ledger.
func (s *SeedStore) FindSeedFile() (string, error) {
	if filepath.IsAbs(s.File) {
		if _, err := os.Stat(s.File); err != nil {
			return "", err
		}
		return s.File, nil
	}

	locations := []string{s.File, filepath.Join("config", s.File)}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".config", "budget-ledger", s.File))
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// Load reads the seed file. A missing file falls back to DefaultSeed.
func (s *SeedStore) Load() (Seed, error) {
	if s.File == "" {
		return DefaultSeed(), nil
	}

	path, err := s.FindSeedFile()
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("Seed file not found, using defaults", logging.F(logging.FieldFile, s.File))
			return DefaultSeed(), nil
		}
		return Seed{}, fmt.Errorf("error resolving seed file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("error reading seed file: %w", err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("error parsing seed file: %w", err)
	}

	s.logger.Debug("Loaded seed file",
		logging.F(logging.FieldFile, path),
		logging.F("categories", len(seed.Budget)),
		logging.F("rules", len(seed.Rules)))
	return seed, nil
}

// Save writes seed data as YAML, creating parent directories.
func (s *SeedStore) Save(seed Seed) error {
	if s.File == "" {
		return fmt.Errorf("no seed file configured")
	}
	if err := os.MkdirAll(filepath.Dir(s.File), 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	data, err := yaml.Marshal(seed)
	if err != nil {
		return fmt.Errorf("error marshaling seed: %w", err)
	}
	if err := os.WriteFile(s.File, data, 0600); err != nil {
		return fmt.Errorf("error writing seed file: %w", err)
	}
	return nil
}

// SeedFromSet captures the budget and rules of a set as seed data.
func SeedFromSet(set *Set) Seed {
	var seed Seed
	for _, c := range set.Budget.All() {
		seed.Budget = append(seed.Budget, SeedCategory{Category: c.Category, Sign: c.Sign, Budget: c.Budget})
	}
	for _, r := range set.Rules.All() {
		sub := r.SubCategory
		if sub == models.Unassigned {
			sub = ""
		}
		seed.Rules = append(seed.Rules, SeedRule{Keyword: r.Keyword, Category: r.Category, SubCategory: sub})
	}
	return seed
}

// NewSetFromSeed builds a set holding the seed budget and rules and empty
// transaction stores.
func NewSetFromSeed(seed Seed) (*Set, error) {
	set := NewSet()
	budget, err := NewBudgetTable(seed.Categories())
	if err != nil {
		return nil, fmt.Errorf("invalid seed budget: %w", err)
	}
	rules, err := NewRuleStore(seed.KeywordRules())
	if err != nil {
		return nil, fmt.Errorf("invalid seed rules: %w", err)
	}
	set.Budget = budget
	set.Rules = rules
	if err := set.Verify(); err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}
	return set, nil
}
