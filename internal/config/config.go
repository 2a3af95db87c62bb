package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	ProfileFile   string `mapstructure:"profile_file"`
	NotifiersFile string `mapstructure:"notifiers_file"`

	// Credentials are excluded from serialization so startup logging of the
	// config never carries them.
	Username string `mapstructure:"confluence_username" json:"-"`
	Token    string `mapstructure:"confluence_token" json:"-"`

	APIDelaySeconds       float64       `mapstructure:"api_interaction_delay_seconds"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	APIDelay              time.Duration `mapstructure:"-"`
	RequestTimeout        time.Duration `mapstructure:"-"`

	DumpDir               string `mapstructure:"dump_dir"`
	DumpTemplate          bool   `mapstructure:"dump_template"`
	DumpGeneratedArticles bool   `mapstructure:"dump_generated_articles"`

	StorageType string `mapstructure:"storage_type"`
	BBoltPath   string `mapstructure:"bbolt_path"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "confluence-uploader")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("profile_file", "./configs/uploader.yaml")
	v.SetDefault("notifiers_file", "")
	v.SetDefault("api_interaction_delay_seconds", 0.5)
	v.SetDefault("request_timeout_seconds", 30)
	v.SetDefault("dump_dir", "./dump")
	v.SetDefault("dump_template", false)
	v.SetDefault("dump_generated_articles", false)
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/history.db")

	v.AutomaticEnv()

	// Credentials have no default on purpose, so they must be bound
	// explicitly for Unmarshal to pick them up from the environment.
	for _, key := range []string{"confluence_username", "confluence_token"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Negative delays are mapped to zero, not rejected.
	if cfg.APIDelaySeconds < 0 {
		cfg.APIDelaySeconds = 0
	}
	cfg.APIDelay = time.Duration(cfg.APIDelaySeconds * float64(time.Second))

	if cfg.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	return &cfg, nil
}
