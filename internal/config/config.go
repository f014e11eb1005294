package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"rhodlsync/internal/model"
	"rhodlsync/internal/series"
)

// Config holds all application configuration.
type Config struct {
	CoinGlass struct {
		APIKey     string `yaml:"api_key"`
		BaseURL    string `yaml:"base_url"`
		MaxRetries int    `yaml:"max_retries"`
	} `yaml:"coinglass"`
	Sheet struct {
		ID              string `yaml:"id"`
		CredentialsFile string `yaml:"credentials_file"`
		Worksheet       string `yaml:"worksheet"`
	} `yaml:"sheet"`
	Filter struct {
		CutoffDate string `yaml:"cutoff_date"`
	} `yaml:"filter"`
	Cache struct {
		Path string `yaml:"path"`
	} `yaml:"cache"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("COINGLASS_API_KEY"); v != "" {
		cfg.CoinGlass.APIKey = v
	}
	if v := os.Getenv("COINGLASS_BASE_URL"); v != "" {
		cfg.CoinGlass.BaseURL = v
	}
	if v := os.Getenv("GOOGLE_SHEET_ID"); v != "" {
		cfg.Sheet.ID = v
	}
	if v := os.Getenv("GOOGLE_SERVICE_ACCOUNT"); v != "" {
		cfg.Sheet.CredentialsFile = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("FETCH_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.CoinGlass.MaxRetries = n
		}
	}

	// Defaults
	if cfg.CoinGlass.MaxRetries == 0 {
		cfg.CoinGlass.MaxRetries = 3
	}
	if cfg.Sheet.Worksheet == "" {
		cfg.Sheet.Worksheet = "RHODL Ratio Raw Data"
	}
	if cfg.Filter.CutoffDate == "" {
		cfg.Filter.CutoffDate = series.DefaultCutoff
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = "json_data/rhodl_daily.json"
	}
	if cfg.Schedule.Cron == "" {
		cfg.Schedule.Cron = "0 0 6 * * *"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and well-formed.
func (c *Config) Validate() error {
	if c.CoinGlass.APIKey == "" {
		return fmt.Errorf("coinglass.api_key is required")
	}
	if c.Sheet.ID == "" {
		return fmt.Errorf("sheet.id is required")
	}
	if c.Sheet.CredentialsFile == "" {
		return fmt.Errorf("sheet.credentials_file is required")
	}
	if _, err := model.ParseDate(c.Filter.CutoffDate); err != nil {
		return fmt.Errorf("filter.cutoff_date %q: %w", c.Filter.CutoffDate, err)
	}
	return nil
}
