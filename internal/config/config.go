package config

import (
	"os"
	"path/filepath"
	"sync"

	"fjacquet/bill-csv/internal/logging"

	"github.com/joho/godotenv"
)

var envOnce sync.Once

// LoadEnv loads a .env file from the working directory or its parent, once.
// A missing file is not an error.
func LoadEnv() {
	envOnce.Do(func() {
		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			envFile = filepath.Join("..", ".env")
			if _, err := os.Stat(envFile); os.IsNotExist(err) {
				return
			}
		}
		_ = godotenv.Load(envFile)
	})
}

// ConfigureLogging builds the application logger from the log section.
func ConfigureLogging(cfg *Config) logging.Logger {
	if cfg == nil {
		return logging.NewLogrusAdapter("info", "text")
	}
	return logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
}
