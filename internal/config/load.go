package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML config file at path (if it exists), applies .env files
// and environment variable overrides, fills defaults and validates.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, unmarshalErr)
		}
	case os.IsNotExist(err):
		// Config file is optional; env vars and defaults cover everything.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	setDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadEnvFiles loads .env files in priority order: ENV_FILE if set, otherwise
// .env.local over .env. Missing files are not an error.
func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	envString("SERVER_HOST", &cfg.Server.Host)
	if err := envInt("SERVER_PORT", &cfg.Server.Port); err != nil {
		return err
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.Server.CORSOrigins = splitAndTrim(origins)
	}

	if raw := os.Getenv("CONTENT_USE_REMOTE"); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("parse CONTENT_USE_REMOTE: %w", err)
		}
		cfg.Content.UseRemoteData = &enabled
	}
	envString("CONTENT_OVERRIDES_DIR", &cfg.Content.OverridesDir)
	envString("CONTENT_TOPICS_URL", &cfg.Content.Endpoints.Topics)
	envString("CONTENT_QUESTIONS_URL", &cfg.Content.Endpoints.Questions)
	envString("CONTENT_PATHWAYS_URL", &cfg.Content.Endpoints.Pathways)
	envString("CONTENT_INFERTILITY_URL", &cfg.Content.Endpoints.Infertility)
	envString("CONTENT_RESOURCES_URL", &cfg.Content.Endpoints.Resources)

	envString("REDIS_ADDRESS", &cfg.Redis.Address)
	envString("REDIS_PASSWORD", &cfg.Redis.Password)
	if err := envInt("REDIS_DB", &cfg.Redis.DB); err != nil {
		return err
	}
	if err := envBool("REDIS_ENABLED", &cfg.Redis.Enabled); err != nil {
		return err
	}

	if err := envBool("APP_DEBUG", &cfg.Debug); err != nil {
		return err
	}
	envString("LOG_LEVEL", &cfg.Logging.Level)
	envString("LOG_FORMAT", &cfg.Logging.Format)
	return nil
}

func envString(key string, dst *string) {
	if val := os.Getenv(key); val != "" {
		*dst = val
	}
}

func envInt(key string, dst *int) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*dst = val
	return nil
}

func envBool(key string, dst *bool) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*dst = val
	return nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
