// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/budget-ledger/internal/config"
	"fjacquet/budget-ledger/internal/container"
	"fjacquet/budget-ledger/internal/logging"

	"github.com/spf13/cobra"
)

// GlobalFlags are the persistent flags shared by every command.
type GlobalFlags struct {
	Archive    string
	ConfigFile string
	LogLevel   string
	LogFormat  string
}

var (
	// Log is the shared logger instance for commands
	Log = logging.NewLogrusAdapter("info", "text")

	// AppConfig is the configuration loaded before each command runs
	AppConfig *config.Config

	// AppContainer holds the dependencies built from AppConfig
	AppContainer *container.Container

	// Flags holds the persistent flag values
	Flags = GlobalFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "budget-ledger",
		Short: "Categorize bank transactions and track them against a monthly budget.",
		Long: `budget-ledger imports bank statements (CSV or OFX), categorizes each
transaction with keyword rules, and summarizes the ledger per budget category
and month. All tables are kept in a single zip archive.`,
		SilenceUsage:      true,
		PersistentPreRunE: initialize,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

func init() {
	pf := Cmd.PersistentFlags()
	pf.StringVarP(&Flags.Archive, "archive", "a", "", "Archive file (default from configuration, budget.zip)")
	pf.StringVar(&Flags.ConfigFile, "config", "", "Configuration file (default searches $HOME/.budget-ledger, .budget-ledger and .)")
	pf.StringVar(&Flags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&Flags.LogFormat, "log-format", "", "Log format (text or json)")
}

// initialize loads the configuration, applies flag overrides and builds the
// container used by the subcommands.
func initialize(cmd *cobra.Command, args []string) error {
	config.LoadEnv()

	cfg, err := config.InitializeConfig(Flags.ConfigFile)
	if err != nil {
		return err
	}
	ApplyFlags(cfg, Flags)

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	AppConfig = cfg
	AppContainer = c
	Log = c.GetLogger()
	return nil
}

// ApplyFlags overrides configuration values with the flags that were set.
func ApplyFlags(cfg *config.Config, flags GlobalFlags) {
	if flags.Archive != "" {
		cfg.Archive.Path = flags.Archive
	}
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
	if flags.LogFormat != "" {
		cfg.Log.Format = flags.LogFormat
	}
}

// GetContainer returns the application container, nil before initialization.
func GetContainer() *container.Container {
	return AppContainer
}

// GetConfig returns the application configuration, nil before initialization.
func GetConfig() *config.Config {
	return AppConfig
}
