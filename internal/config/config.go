// Package config loads the application configuration from defaults, a
// config.yaml file, BUDGET_* environment variables and an optional .env file.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	envOnce sync.Once
	// Logger reports configuration problems before the configured logger exists.
	Logger = logrus.New()
)

// envFiles lists the .env candidates in lookup order. The first one found
// is loaded.
func envFiles() []string {
	files := []string{".env"}
	if home, err := os.UserHomeDir(); err == nil {
		files = append(files, filepath.Join(home, ".budget-ledger", ".env"))
	}
	return files
}

// LoadEnv loads BUDGET_* overrides from the first .env file found in the
// working directory or the user's configuration directory. Variables already
// set in the environment win.
func LoadEnv() {
	envOnce.Do(func() {
		loadEnvFrom(envFiles())
	})
}

func loadEnvFrom(candidates []string) string {
	for _, envFile := range candidates {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			Logger.Warnf("Error loading %s: %v", envFile, err)
			return ""
		}
		Logger.Debugf("Loaded environment variables from %s", envFile)
		return envFile
	}
	Logger.Debug("No .env file found, using environment variables")
	return ""
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
