package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"MarketSweep/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Mail struct {
		Host      string `yaml:"host"`
		Port      int    `yaml:"port"`
		Sender    string `yaml:"sender"`
		Password  string `yaml:"password"`
		Recipient string `yaml:"recipient"`
	} `yaml:"mail"`
	Market struct {
		BaseURL    string `yaml:"base_url"`
		APIKey     string `yaml:"api_key"`
		VsCurrency string `yaml:"vs_currency"`
		Order      string `yaml:"order"`
		PerPage    int    `yaml:"per_page"`
		Page       int    `yaml:"page"`
	} `yaml:"market"`
	Schedule struct {
		DailyAt    string `yaml:"daily_at"` // HH:MM, local time
		RunOnStart bool   `yaml:"run_on_start"`
	} `yaml:"schedule"`
	Output struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// overrides are the environment variables layered over the YAML file.
// Unset variables leave the file value in place.
type overrides struct {
	SenderEmail   string `envconfig:"SENDER_EMAIL"`
	Password      string `envconfig:"PASSWORD"`
	ReceiverEmail string `envconfig:"RECEIVER_EMAIL"`
	SMTPHost      string `envconfig:"SMTP_HOST"`
	SMTPPort      int    `envconfig:"SMTP_PORT"`
	MarketBaseURL string `envconfig:"MARKET_BASE_URL"`
	MarketAPIKey  string `envconfig:"COINGECKO_API_KEY"`
	DailyAt       string `envconfig:"REPORT_DAILY_AT"`
	RunOnStart    *bool  `envconfig:"RUN_ON_START"`
	OutputDir     string `envconfig:"OUTPUT_DIR"`
	SQLitePath    string `envconfig:"SQLITE_PATH"`
	Proxy         string `envconfig:"HTTPS_PROXY"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides, then defaults. A missing YAML or .env file is not an
// error. With no envFiles, ".env" in the working directory is tried.
func Load(path string, envFiles ...string) (*Config, error) {
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

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var env overrides
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	cfg.apply(&env)
	cfg.setDefaults()
	return cfg, nil
}

func (c *Config) apply(env *overrides) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.Mail.Sender, env.SenderEmail)
	set(&c.Mail.Password, env.Password)
	set(&c.Mail.Recipient, env.ReceiverEmail)
	set(&c.Mail.Host, env.SMTPHost)
	if env.SMTPPort != 0 {
		c.Mail.Port = env.SMTPPort
	}
	set(&c.Market.BaseURL, env.MarketBaseURL)
	set(&c.Market.APIKey, env.MarketAPIKey)
	set(&c.Schedule.DailyAt, env.DailyAt)
	if env.RunOnStart != nil {
		c.Schedule.RunOnStart = *env.RunOnStart
	}
	set(&c.Output.Dir, env.OutputDir)
	set(&c.Database.SQLitePath, env.SQLitePath)
	set(&c.Proxy, env.Proxy)
}

func (c *Config) setDefaults() {
	if c.Mail.Host == "" {
		c.Mail.Host = "smtp.gmail.com"
	}
	if c.Mail.Port == 0 {
		c.Mail.Port = 587
	}
	if c.Market.BaseURL == "" {
		c.Market.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if c.Market.VsCurrency == "" {
		c.Market.VsCurrency = "usd"
	}
	if c.Market.Order == "" {
		c.Market.Order = "market_cap_desc"
	}
	if c.Market.PerPage == 0 {
		c.Market.PerPage = 250
	}
	if c.Market.Page == 0 {
		c.Market.Page = 1
	}
	if c.Schedule.DailyAt == "" {
		c.Schedule.DailyAt = "08:00"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "."
	}
}

// Validate checks everything the reporter needs before it starts.
// Missing secrets surface here, not at send time.
func (c *Config) Validate() error {
	secrets := []struct {
		name, value string
	}{
		{"SENDER_EMAIL", c.Mail.Sender},
		{"PASSWORD", c.Mail.Password},
		{"RECEIVER_EMAIL", c.Mail.Recipient},
	}
	var missing []string
	for _, s := range secrets {
		if strings.TrimSpace(s.value) == "" {
			missing = append(missing, s.name)
		}
	}
	if len(missing) > 0 {
		return &model.ConfigurationError{
			Op:  "validate config",
			Err: fmt.Errorf("%w: %s", model.ErrMissingSecret, strings.Join(missing, ", ")),
		}
	}
	if _, err := c.CronSpec(); err != nil {
		return &model.ConfigurationError{Op: "validate config", Err: err}
	}
	if c.Market.PerPage < 1 || c.Market.PerPage > 250 {
		return &model.ConfigurationError{Op: "validate config", Err: fmt.Errorf("market.per_page must be in 1..250")}
	}
	return nil
}

// CronSpec converts schedule.daily_at into a seconds-resolution cron spec.
func (c *Config) CronSpec() (string, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(c.Schedule.DailyAt), ":")
	if !ok {
		return "", fmt.Errorf("schedule.daily_at %q: want HH:MM", c.Schedule.DailyAt)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return "", fmt.Errorf("schedule.daily_at %q: bad hour", c.Schedule.DailyAt)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return "", fmt.Errorf("schedule.daily_at %q: bad minute", c.Schedule.DailyAt)
	}
	return fmt.Sprintf("0 %d %d * * *", m, h), nil
}
