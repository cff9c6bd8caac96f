package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the Pharma AI companion service
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Security  SecurityConfig  `mapstructure:"security"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Schedule  ScheduleConfig  `mapstructure:"schedule"`
	Reminders RemindersConfig `mapstructure:"reminders"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Address      string `mapstructure:"address"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
}

// LLMConfig holds language model settings
type LLMConfig struct {
	DefaultProvider string              `mapstructure:"default_provider"`
	Providers       map[string]Provider `mapstructure:"providers"`
}

// Provider holds individual LLM provider configuration
type Provider struct {
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Model       string  `mapstructure:"model"`
	Timeout     int     `mapstructure:"timeout"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

// StorageConfig holds database settings
type StorageConfig struct {
	DataDir    string `mapstructure:"data_dir"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// SecurityConfig holds security settings
type SecurityConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// AssistantConfig holds chat assistant settings
type AssistantConfig struct {
	// Requests per minute allowed against the upstream provider
	RateRPM   int `mapstructure:"rate_rpm"`
	RateBurst int `mapstructure:"rate_burst"`
}

// ScheduleConfig holds pill schedule settings
type ScheduleConfig struct {
	SeedDemo bool `mapstructure:"seed_demo"`
}

// RemindersConfig holds reminder runner settings
type RemindersConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	CheckInterval int  `mapstructure:"check_interval"` // minutes
	LeadTime      int  `mapstructure:"lead_time"`      // minutes before a dose counts as due soon
}

// Load loads configuration from file, env, and defaults
func Load(configPath, dataDir string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if dataDir == "" {
		dataDir = getDefaultDataDir()
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	v.Set("storage.data_dir", dataDir)
	v.Set("storage.sqlite_path", filepath.Join(dataDir, "pharmaai.db"))

	if configPath == "" {
		configPath = filepath.Join(dataDir, "pharmaai.yaml")
	}

	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// Environment variables (PHARMA_SERVER_PORT, PHARMA_LLM_API_KEY, etc.)
	v.SetEnvPrefix("PHARMA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Load API keys from environment (Viper doesn't handle nested maps well with env vars)
	loadEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 30)

	// LLM defaults
	v.SetDefault("llm.default_provider", "openai")
	v.SetDefault("llm.providers.openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("llm.providers.openai.model", "gpt-3.5-turbo")
	v.SetDefault("llm.providers.openai.timeout", 60)
	v.SetDefault("llm.providers.openai.max_tokens", 500)
	v.SetDefault("llm.providers.openai.temperature", 0.7)

	// Assistant defaults
	v.SetDefault("assistant.rate_rpm", 60)
	v.SetDefault("assistant.rate_burst", 10)

	// Schedule defaults
	v.SetDefault("schedule.seed_demo", true)

	// Reminder defaults
	v.SetDefault("reminders.enabled", true)
	v.SetDefault("reminders.check_interval", 1)
	v.SetDefault("reminders.lead_time", 30)

	// Security defaults
	v.SetDefault("security.allow_origins", []string{"*"})
}

func getDefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "pharmaai")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./data"
	}

	return filepath.Join(home, ".local", "share", "pharmaai")
}

// loadEnvOverrides loads specific env vars that Viper doesn't handle well with nested maps
func loadEnvOverrides(cfg *Config) {
	getEnv := func(key, fallback string) string {
		if val := os.Getenv(key); val != "" {
			return val
		}
		return fallback
	}

	cfg.LLM.DefaultProvider = getEnv("PHARMA_LLM_DEFAULT_PROVIDER", cfg.LLM.DefaultProvider)

	if cfg.LLM.Providers == nil {
		cfg.LLM.Providers = make(map[string]Provider)
	}

	name := cfg.LLM.DefaultProvider
	provider := cfg.LLM.Providers[name]
	provider.APIKey = getEnv("PHARMA_LLM_API_KEY", provider.APIKey)
	if provider.APIKey == "" {
		// Original deployment used the bare OpenAI variable
		provider.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	provider.BaseURL = getEnv("PHARMA_LLM_BASE_URL", provider.BaseURL)
	provider.Model = getEnv("PHARMA_LLM_MODEL", provider.Model)
	cfg.LLM.Providers[name] = provider
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}
	if cfg.LLM.DefaultProvider == "" {
		return fmt.Errorf("llm.default_provider is required")
	}
	return nil
}

// DefaultProvider returns the configured default LLM provider
func (c *Config) DefaultProvider() (Provider, error) {
	provider, ok := c.LLM.Providers[c.LLM.DefaultProvider]
	if !ok {
		return Provider{}, fmt.Errorf("provider %q not configured", c.LLM.DefaultProvider)
	}
	return provider, nil
}
