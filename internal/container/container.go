// Package container provides dependency injection for the budget-ledger
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/budget-ledger/internal/archive"
	"fjacquet/budget-ledger/internal/book"
	"fjacquet/budget-ledger/internal/categorizer"
	"fjacquet/budget-ledger/internal/config"
	"fjacquet/budget-ledger/internal/logging"
	"fjacquet/budget-ledger/internal/report"
	"fjacquet/budget-ledger/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation. All fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	seedStore *store.SeedStore
	matcher   categorizer.Matcher
	archive   *archive.Archive
	reporter  *report.Generator
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	logger := logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))
	return NewContainerWithLogger(cfg, logger)
}

// NewContainerWithLogger wires the dependencies around an existing logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	delimiter := cfg.DelimiterRune()
	matcher := categorizer.NewMatcher(cfg.Categorization.Regex)

	logger.Debug("Container initialized",
		logging.F(logging.FieldArchive, cfg.Archive.Path),
		logging.F("matcher", matcher.Name()))

	return &Container{
		logger:    logger,
		config:    cfg,
		seedStore: store.NewSeedStore(cfg.Seed.File, logger),
		matcher:   matcher,
		archive:   archive.NewArchive(cfg.Archive.Path, delimiter, logger),
		reporter:  report.NewGenerator(logger, delimiter),
	}, nil
}

// OpenBook returns a book holding the archive content, or the seed budget
// and rules when the archive does not exist yet.
func (c *Container) OpenBook() (*book.Book, error) {
	seed, err := c.seedStore.Load()
	if err != nil {
		return nil, err
	}
	set, err := store.NewSetFromSeed(seed)
	if err != nil {
		return nil, err
	}
	b := book.New(set, c.matcher, c.logger)

	if !c.archive.Exists() {
		c.logger.Info("Archive not found, starting from seed data",
			logging.F(logging.FieldArchive, c.archive.Path))
		return b, nil
	}
	if err := c.archive.LoadBook(b); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", c.archive.Path, err)
	}
	return b, nil
}

// SaveBook persists b to the configured archive.
func (c *Container) SaveBook(b *book.Book) error {
	return c.archive.SaveBook(b)
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetMatcher returns the keyword matcher shared by every book.
func (c *Container) GetMatcher() categorizer.Matcher {
	return c.matcher
}

// GetArchive returns the archive the books are persisted to.
func (c *Container) GetArchive() *archive.Archive {
	return c.archive
}

// GetSeedStore returns the seed data store.
func (c *Container) GetSeedStore() *store.SeedStore {
	return c.seedStore
}

// GetReportGenerator returns the summary renderer.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.reporter
}
