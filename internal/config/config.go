// Package config loads the reasoner's startup configuration from a YAML
// file, with environment variables (loaded via a .env file if present)
// overriding secrets and a handful of operational knobs.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/automenta/mcr/internal/logging"
)

// Config holds every startup setting for the reasoning service.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	LLM       LLMConfig       `yaml:"llm"`
	Reasoner  ReasonerConfig  `yaml:"reasoner"`
	Session   SessionConfig   `yaml:"session"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Router    RouterConfig    `yaml:"router"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// LLMConfig selects and configures the LLM Gateway backend.
type LLMConfig struct {
	Provider string `yaml:"provider"` // "anthropic", "gemini", or "echo"
	APIKey   string `yaml:"-"`        // never serialized; populated from env
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

// TimeoutDuration parses LLM.Timeout, defaulting to 60s on a bad or empty value.
func (c LLMConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// ReasonerConfig tunes the Mangle-backed Reasoner Gateway.
type ReasonerConfig struct {
	QueryTimeout string `yaml:"query_timeout"`
	FactLimit    int    `yaml:"fact_limit"`
}

func (c ReasonerConfig) QueryTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.QueryTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// SessionConfig selects the Session Store backend.
type SessionConfig struct {
	StoreType string `yaml:"store_type"` // "memory", "file", or "sql"
	Directory string `yaml:"directory"`  // used by the file store
	DSN       string `yaml:"dsn"`        // used by the sql store
	Driver    string `yaml:"driver"`     // "sqlite3" or "postgres"
	TTL       string `yaml:"ttl"`
}

func (c SessionConfig) TTLDuration() time.Duration {
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// EmbeddingConfig configures the semantic Input Router's embedder.
type EmbeddingConfig struct {
	Provider string `yaml:"provider"` // "genai" or "none"
	APIKey   string `yaml:"-"`
	Model    string `yaml:"model"`
	TaskType string `yaml:"task_type"`
}

// RouterConfig selects the Input Router strategy-selection mode.
type RouterConfig struct {
	Mode              string  `yaml:"mode"` // "keyword" or "semantic"
	SimilarityMinimum float64 `yaml:"similarity_minimum"`
	PerfDBPath        string  `yaml:"perf_db_path"`
}

// LoggingConfig feeds logging.Init.
type LoggingConfig struct {
	DebugMode bool   `yaml:"debug_mode"`
	Directory string `yaml:"directory"`
	Level     string `yaml:"level"`
}

// MetricsConfig controls the Prometheus exposition.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// DefaultConfig returns the configuration used when no config file is
// present and no environment overrides apply.
func DefaultConfig() *Config {
	return &Config{
		Name:    "reason",
		Version: "0.1.0",
		LLM: LLMConfig{
			Provider: "echo",
			Model:    "claude-sonnet-4-5-20250514",
			Timeout:  "60s",
		},
		Reasoner: ReasonerConfig{
			QueryTimeout: "30s",
			FactLimit:    1000000,
		},
		Session: SessionConfig{
			StoreType: "memory",
			Directory: "data/sessions",
			Driver:    "sqlite3",
			TTL:       "24h",
		},
		Embedding: EmbeddingConfig{
			Provider: "none",
			Model:    "gemini-embedding-001",
			TaskType: "SEMANTIC_SIMILARITY",
		},
		Router: RouterConfig{
			Mode:              "keyword",
			SimilarityMinimum: 0.75,
			PerfDBPath:        "data/performance.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9090",
		},
	}
}

// Load reads a YAML config file at path, falling back to defaults when the
// file does not exist, then applies environment overrides. It loads a
// .env file from the working directory first (if present) so secrets can
// live outside the YAML file and outside version control.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	log := logging.Get(logging.CategoryBoot)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info("config file %s not found, using defaults", path)
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	log.Info("config loaded: llm.provider=%s session.store_type=%s router.mode=%s", cfg.LLM.Provider, cfg.Session.StoreType, cfg.Router.Mode)
	return cfg, nil
}

// applyEnvOverrides layers environment-sourced secrets and a few
// operational knobs on top of whatever the YAML file set.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		c.LLM.APIKey = key
		c.LLM.Provider = "anthropic"
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
		if c.LLM.Provider == "" || c.LLM.Provider == "echo" {
			c.LLM.Provider = "gemini"
		}
		c.Embedding.APIKey = key
		if c.Embedding.Provider == "" {
			c.Embedding.Provider = "genai"
		}
	}
	if dsn := os.Getenv("MCR_SESSION_DSN"); dsn != "" {
		c.Session.DSN = dsn
	}
	if dir := os.Getenv("MCR_SESSION_DIR"); dir != "" {
		c.Session.Directory = dir
	}
}

// Save writes the configuration back out as YAML. API keys are excluded
// via yaml:"-" tags so secrets never round-trip onto disk.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
