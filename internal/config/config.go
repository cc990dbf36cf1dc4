package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
	} `yaml:"telegram"`
	Sheets struct {
		SpreadsheetID   string `yaml:"spreadsheet_id"`
		SheetName       string `yaml:"sheet_name"`
		CredentialsFile string `yaml:"credentials_file"`
	} `yaml:"sheets"`
	Roles struct {
		Annotators []int64 `yaml:"annotators"`
		Reviewers  []int64 `yaml:"reviewers"`
	} `yaml:"roles"`
	Session struct {
		TTLMinutes int64 `yaml:"ttl_minutes"`
	} `yaml:"session"`
	Server struct {
		Port       string `yaml:"port"`
		AdminToken string `yaml:"admin_token"`
	} `yaml:"server"`
}

// LoadConfig reads configuration from the specified YAML file. Secrets may
// be supplied or overridden through the environment; a missing bot token or
// spreadsheet id is an error.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	config.applyEnvOverrides()
	config.applyDefaults()

	if config.Telegram.BotToken == "" {
		return nil, fmt.Errorf("telegram.bot_token is required (or set TELEGRAM_BOT_TOKEN)")
	}
	if config.Sheets.SpreadsheetID == "" {
		return nil, fmt.Errorf("sheets.spreadsheet_id is required (or set GOOGLE_SHEET_ID)")
	}

	return config, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("GOOGLE_SHEET_ID"); v != "" {
		c.Sheets.SpreadsheetID = v
	}
	if v := os.Getenv("ADMIN_TOKEN"); v != "" {
		c.Server.AdminToken = v
	}
}

func (c *Config) applyDefaults() {
	if c.Sheets.SheetName == "" {
		c.Sheets.SheetName = "Sheet1"
	}
	if c.Session.TTLMinutes <= 0 {
		c.Session.TTLMinutes = 30
	}
	if c.Server.Port == "" {
		c.Server.Port = ":8080"
	}
}
