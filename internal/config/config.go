// Package config loads and validates service configuration from a YAML file
// with .env / environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/petalhealth/content-service/internal/logger"
	"github.com/petalhealth/content-service/internal/models"
)

const (
	defaultServerPort    = 8060
	defaultServerTimeout = 30 * time.Second
	defaultFetchTimeout  = 30 * time.Second
	defaultRedisAddress  = "localhost:6379"
	defaultContentBase   = "https://content.petalhealth.app/v1"
)

type Config struct {
	Debug   bool          `env:"APP_DEBUG" yaml:"debug"`
	Server  ServerConfig  `yaml:"server"`
	Content ContentConfig `yaml:"content"`
	Redis   RedisConfig   `yaml:"redis"`
	Logging logger.Config `yaml:"logging"`
}

type ServerConfig struct {
	Host         string        `env:"SERVER_HOST" yaml:"host"`
	Port         int           `env:"SERVER_PORT" yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	CORSOrigins  []string      `env:"CORS_ORIGINS" yaml:"cors_origins"`
}

// ContentConfig controls the remote content pipeline.
type ContentConfig struct {
	// UseRemoteData toggles whether refreshes consult the network at all.
	// Defaults to true; when false the service serves only bundled data.
	UseRemoteData *bool `env:"CONTENT_USE_REMOTE" yaml:"use_remote_data"`
	// FetchTimeout bounds each per-resource HTTP fetch.
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	// OverridesDir, when set, is watched for local <resource>.json overrides.
	OverridesDir string          `env:"CONTENT_OVERRIDES_DIR" yaml:"overrides_dir"`
	Endpoints    EndpointsConfig `yaml:"endpoints"`
}

// EndpointsConfig maps each resource to its remote JSON endpoint.
type EndpointsConfig struct {
	Topics      string `env:"CONTENT_TOPICS_URL"      yaml:"topics"`
	Questions   string `env:"CONTENT_QUESTIONS_URL"   yaml:"questions"`
	Pathways    string `env:"CONTENT_PATHWAYS_URL"    yaml:"pathways"`
	Infertility string `env:"CONTENT_INFERTILITY_URL" yaml:"infertility"`
	Resources   string `env:"CONTENT_RESOURCES_URL"   yaml:"resources"`
}

// RedisConfig holds Redis connection configuration for the snapshot cache and
// event stream.
type RedisConfig struct {
	Address  string `env:"REDIS_ADDRESS"  yaml:"address"`
	Password string `env:"REDIS_PASSWORD" yaml:"password"`
	DB       int    `env:"REDIS_DB"       yaml:"db"`
	Enabled  bool   `env:"REDIS_ENABLED"  yaml:"enabled"`
}

// RemoteEnabled reports whether remote refreshes are enabled at startup.
func (c ContentConfig) RemoteEnabled() bool {
	return c.UseRemoteData == nil || *c.UseRemoteData
}

// URLMap returns the endpoint for each resource kind.
func (e EndpointsConfig) URLMap() map[models.Resource]string {
	return map[models.Resource]string{
		models.ResourceTopics:      e.Topics,
		models.ResourceQuestions:   e.Questions,
		models.ResourcePathways:    e.Pathways,
		models.ResourceInfertility: e.Infertility,
		models.ResourceResources:   e.Resources,
	}
}

func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return errors.New("server.host is required")
	}
	if c.Server.Port <= 0 {
		return errors.New("server.port is required and must be positive")
	}
	if c.Content.FetchTimeout <= 0 {
		return errors.New("content.fetch_timeout must be positive")
	}
	for res, url := range c.Content.Endpoints.URLMap() {
		if url == "" {
			return fmt.Errorf("content.endpoints.%s is required", res)
		}
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			return fmt.Errorf("content.endpoints.%s must be an http(s) URL", res)
		}
	}
	if c.Redis.Enabled && c.Redis.Address == "" {
		return errors.New("redis.address is required when redis is enabled")
	}
	return nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultServerPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaultServerTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaultServerTimeout
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"http://localhost:3000"}
	}
	if cfg.Content.FetchTimeout == 0 {
		cfg.Content.FetchTimeout = defaultFetchTimeout
	}
	e := &cfg.Content.Endpoints
	if e.Topics == "" {
		e.Topics = defaultContentBase + "/topics.json"
	}
	if e.Questions == "" {
		e.Questions = defaultContentBase + "/questions.json"
	}
	if e.Pathways == "" {
		e.Pathways = defaultContentBase + "/pathways.json"
	}
	if e.Infertility == "" {
		e.Infertility = defaultContentBase + "/infertility.json"
	}
	if e.Resources == "" {
		e.Resources = defaultContentBase + "/resources.json"
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = defaultRedisAddress
	}
}
