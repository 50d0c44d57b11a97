package bootstrap

import (
	"flag"
	"fmt"
	"os"

	"github.com/petalhealth/content-service/internal/config"
	"github.com/petalhealth/content-service/internal/logger"
)

// LoadConfig loads configuration. Uses the -config flag with a CONFIG_PATH
// environment default.
func LoadConfig() (*config.Config, error) {
	defaultPath := os.Getenv("CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = "config.yml"
	}
	configPath := flag.String("config", defaultPath, "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// CreateLogger creates a logger instance from configuration.
func CreateLogger(cfg *config.Config, version string) (logger.Logger, error) {
	logCfg := cfg.Logging
	if cfg.Debug {
		logCfg.Development = true
	}
	log, err := logger.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(
		logger.String("service", "content-service"),
		logger.String("version", version),
	), nil
}
