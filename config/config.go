package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the agent service
type Config struct {
	General   GeneralConfig             `mapstructure:"general"`
	LLM       LLMConfig                 `mapstructure:"llm"`
	Platforms map[string]PlatformConfig `mapstructure:"platforms"`
	History   HistoryConfig             `mapstructure:"history"`
	Telemetry TelemetryConfig           `mapstructure:"telemetry"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Listen         string        `mapstructure:"listen"`
	Debug          bool          `mapstructure:"debug"`
	LogLevel       string        `mapstructure:"log_level"`
	DefaultTimeout time.Duration `mapstructure:"default_timeout"`
}

// LLMConfig contains LLM provider configurations
type LLMConfig struct {
	Providers map[string]LLMProvider `mapstructure:"providers"`
	Routing   LLMRoutingConfig       `mapstructure:"routing"`
}

// LLMProvider represents a single LLM provider configuration
type LLMProvider struct {
	Type    string              `mapstructure:"type"` // openai for now
	APIKey  string              `mapstructure:"api_key"`
	BaseURL string              `mapstructure:"base_url"`
	Models  map[string]LLMModel `mapstructure:"models"`
	Timeout time.Duration       `mapstructure:"timeout"`
}

// LLMModel represents a specific model configuration
type LLMModel struct {
	Name            string  `mapstructure:"name"`
	APIName         string  `mapstructure:"api_name"`
	MaxTokens       int     `mapstructure:"max_tokens"`
	Temperature     float64 `mapstructure:"temperature"`
	CostPer1K       float64 `mapstructure:"cost_per_1k_input"`
	CostPer1KOutput float64 `mapstructure:"cost_per_1k_output"`
}

// LLMRoutingConfig defines which model to use for different pipeline stages
type LLMRoutingConfig struct {
	Planning  string `mapstructure:"planning"`
	Synthesis string `mapstructure:"synthesis"`
	Fallback  string `mapstructure:"fallback"`
}

// PlatformConfig describes how to spawn one platform collaborator process
type PlatformConfig struct {
	Command string        `mapstructure:"command"`
	Args    []string      `mapstructure:"args"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// HistoryConfig contains conversation history storage settings
type HistoryConfig struct {
	Backend string        `mapstructure:"backend"` // redis or memory
	TTL     time.Duration `mapstructure:"ttl"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

// RedisConfig contains Redis connection settings
type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

func (r RedisConfig) Validate() error {
	if strings.TrimSpace(r.Host) == "" {
		return fmt.Errorf("history.redis.host required")
	}
	if strings.TrimSpace(r.Port) == "" {
		return fmt.Errorf("history.redis.port required")
	}
	return nil
}

// TelemetryConfig contains monitoring settings
type TelemetryConfig struct {
	Enabled      bool `mapstructure:"enabled"`
	CostTracking bool `mapstructure:"cost_tracking"`
}

func (h HistoryConfig) Validate() error {
	switch h.Backend {
	case "", "memory":
		return nil
	case "redis":
		return h.Redis.Validate()
	}
	return fmt.Errorf("unsupported history backend: %s", h.Backend)
}

// LoadConfig loads config.yaml from the given directory (or the usual
// lookup paths when empty), with MEDIAGENT_* env overrides.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("general.listen", ":8080")
	v.SetDefault("general.log_level", "info")
	v.SetDefault("general.default_timeout", 60*time.Second)
	v.SetDefault("history.backend", "redis")
	v.SetDefault("history.ttl", 24*time.Hour)
	v.SetDefault("history.redis.host", "localhost")
	v.SetDefault("history.redis.port", "6379")
	v.SetDefault("history.redis.timeout", 5*time.Second)
	v.SetDefault("telemetry.enabled", true)
	v.SetDefault("telemetry.cost_tracking", true)

	if path == "" {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		exe, _ := os.Executable()
		exeDir := filepath.Dir(exe)
		v.AddConfigPath(exeDir)
		v.AddConfigPath(filepath.Join(exeDir, ".."))
	} else {
		v.AddConfigPath(path)
	}

	v.SetEnvPrefix("MEDIAGENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// no file is fine: defaults plus env cover the minimal setup
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.History.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
