package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rustyeddy/papertrader/market"
	"github.com/rustyeddy/papertrader/signal"
	"github.com/shopspring/decimal"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g.
// PAPERTRADER_ACCOUNT_BALANCE or PAPERTRADER_JOURNAL_DSN.
const EnvPrefix = "PAPERTRADER"

// Config represents the complete simulator configuration
type Config struct {
	Account     AccountConfig     `json:"account" yaml:"account" envconfig:"ACCOUNT"`
	Strategy    StrategyConfig    `json:"strategy" yaml:"strategy" envconfig:"STRATEGY"`
	Feed        FeedConfig        `json:"feed" yaml:"feed" envconfig:"FEED"`
	Recommender RecommenderConfig `json:"recommender" yaml:"recommender" envconfig:"RECOMMENDER"`
	Scheduler   SchedulerConfig   `json:"scheduler" yaml:"scheduler" envconfig:"SCHEDULER"`
	Journal     JournalConfig     `json:"journal" yaml:"journal" envconfig:"JOURNAL"`
	Log         LogConfig         `json:"log" yaml:"log" envconfig:"LOG"`
}

// AccountConfig contains account initialization parameters
type AccountConfig struct {
	ID            string          `json:"id" yaml:"id" envconfig:"ID"`
	Balance       decimal.Decimal `json:"balance" yaml:"balance" envconfig:"BALANCE"`
	RandomBalance bool            `json:"random_balance" yaml:"random_balance" envconfig:"RANDOM_BALANCE"`
}

// StrategyConfig holds the sizing and exit levels handed to the ledger.
// RiskPercent is a percentage, 2 means 2% of the balance.
type StrategyConfig struct {
	Symbol      string          `json:"symbol" yaml:"symbol" envconfig:"SYMBOL"`
	RiskPercent decimal.Decimal `json:"risk_percent" yaml:"risk_percent" envconfig:"RISK_PERCENT"`
	Levels      string          `json:"levels" yaml:"levels" envconfig:"LEVELS"` // "absolute" or "percent"
	StopLoss    decimal.Decimal `json:"stop_loss" yaml:"stop_loss" envconfig:"STOP_LOSS"`
	TargetPrice decimal.Decimal `json:"target_price" yaml:"target_price" envconfig:"TARGET_PRICE"`
	StopPct     decimal.Decimal `json:"stop_pct" yaml:"stop_pct" envconfig:"STOP_PCT"`
	TargetPct   decimal.Decimal `json:"target_pct" yaml:"target_pct" envconfig:"TARGET_PCT"`
}

// FeedConfig names the tick source. From and To are optional bounds.
type FeedConfig struct {
	Type string `json:"type" yaml:"type" envconfig:"TYPE"` // "csv"
	Path string `json:"path" yaml:"path" envconfig:"PATH"`
	From string `json:"from,omitempty" yaml:"from,omitempty" envconfig:"FROM"`
	To   string `json:"to,omitempty" yaml:"to,omitempty" envconfig:"TO"`
}

type RecommenderConfig struct {
	Type  string `json:"type" yaml:"type" envconfig:"TYPE"`                      // scripted, fixed or ema_cross
	Label string `json:"label,omitempty" yaml:"label,omitempty" envconfig:"LABEL"` // fixed only
	Fast  int    `json:"fast,omitempty" yaml:"fast,omitempty" envconfig:"FAST"`    // ema_cross periods
	Slow  int    `json:"slow,omitempty" yaml:"slow,omitempty" envconfig:"SLOW"`
}

// SchedulerConfig drives the tick loop. Durations use time.ParseDuration
// syntax, e.g. "5s" or "250ms".
type SchedulerConfig struct {
	Interval     string `json:"interval" yaml:"interval" envconfig:"INTERVAL"`
	ErrorBackoff string `json:"error_backoff" yaml:"error_backoff" envconfig:"ERROR_BACKOFF"`
	CloseAtEnd   bool   `json:"close_at_end" yaml:"close_at_end" envconfig:"CLOSE_AT_END"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type        string `json:"type" yaml:"type" envconfig:"TYPE"` // none, csv, sqlite or postgres
	EntriesFile string `json:"entries_file,omitempty" yaml:"entries_file,omitempty" envconfig:"ENTRIES_FILE"`
	BalanceFile string `json:"balance_file,omitempty" yaml:"balance_file,omitempty" envconfig:"BALANCE_FILE"`
	DBPath      string `json:"db_path,omitempty" yaml:"db_path,omitempty" envconfig:"DB_PATH"`
	DSN         string `json:"dsn,omitempty" yaml:"dsn,omitempty" envconfig:"DSN"`
	OrgFile     string `json:"org_file,omitempty" yaml:"org_file,omitempty" envconfig:"ORG_FILE"`
}

type LogConfig struct {
	Level   string `json:"level" yaml:"level" envconfig:"LEVEL"`
	Format  string `json:"format" yaml:"format" envconfig:"FORMAT"` // "console" or "json"
	Tracing bool   `json:"tracing" yaml:"tracing" envconfig:"TRACING"`
}

// ParseDuration converts s to a time.Duration, treating "" as zero.
func ParseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

// IntervalDuration returns the tick interval.
func (s SchedulerConfig) IntervalDuration() (time.Duration, error) {
	return ParseDuration(s.Interval)
}

// ErrorBackoffDuration returns the pause after a failed tick.
func (s SchedulerConfig) ErrorBackoffDuration() (time.Duration, error) {
	return ParseDuration(s.ErrorBackoff)
}

// Range parses the optional feed bounds.
func (f FeedConfig) Range() (from, to time.Time, err error) {
	if f.From != "" {
		if from, err = market.ParseTime(f.From); err != nil {
			return from, to, fmt.Errorf("feed.from: %w", err)
		}
	}
	if f.To != "" {
		if to, err = market.ParseTime(f.To); err != nil {
			return from, to, fmt.Errorf("feed.to: %w", err)
		}
	}
	return from, to, nil
}

// ToLevels converts the strategy section into recommendation levels.
func (s StrategyConfig) ToLevels() signal.Levels {
	return signal.Levels{
		Mode:        s.Levels,
		StopLoss:    s.StopLoss,
		TargetPrice: s.TargetPrice,
		StopPct:     s.StopPct,
		TargetPct:   s.TargetPct,
		RiskPercent: s.RiskPercent,
	}
}

// Spec describes the configured recommender.
func (c *Config) Spec() signal.Spec {
	return signal.Spec{
		Kind:   c.Recommender.Type,
		Label:  c.Recommender.Label,
		Fast:   c.Recommender.Fast,
		Slow:   c.Recommender.Slow,
		Levels: c.Strategy.ToLevels(),
	}
}

// LoadFromFile loads configuration from a file (JSON or YAML), applies
// environment overrides and validates the result.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := LoadEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadEnv reads the optional dotenv files (".env" when none are given)
// and overlays any PAPERTRADER_* variables onto cfg. Variables that are
// not set leave the file values alone.
func LoadEnv(cfg *Config, files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("process env: %w", err)
	}
	return nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

var hundred = decimal.NewFromInt(100)

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if !c.Account.RandomBalance && c.Account.Balance.Sign() <= 0 {
		return fmt.Errorf("account.balance must be positive")
	}
	if c.Strategy.Symbol == "" {
		return fmt.Errorf("strategy.symbol is required")
	}
	if c.Strategy.RiskPercent.Sign() <= 0 || c.Strategy.RiskPercent.GreaterThanOrEqual(hundred) {
		return fmt.Errorf("strategy.risk_percent must be between 0 and 100")
	}
	if err := c.Strategy.ToLevels().Validate(); err != nil {
		return fmt.Errorf("strategy: %w", err)
	}

	if c.Feed.Type != "csv" {
		return fmt.Errorf("feed.type must be 'csv'")
	}
	if c.Feed.Path == "" {
		return fmt.Errorf("feed.path is required")
	}
	from, to, err := c.Feed.Range()
	if err != nil {
		return err
	}
	if !from.IsZero() && !to.IsZero() && !from.Before(to) {
		return fmt.Errorf("feed.from must be before feed.to")
	}

	if _, err := signal.New(c.Spec()); err != nil {
		return fmt.Errorf("recommender: %w", err)
	}

	interval, err := c.Scheduler.IntervalDuration()
	if err != nil {
		return fmt.Errorf("scheduler.interval: %w", err)
	}
	if interval < 0 {
		return fmt.Errorf("scheduler.interval must not be negative")
	}
	backoff, err := c.Scheduler.ErrorBackoffDuration()
	if err != nil {
		return fmt.Errorf("scheduler.error_backoff: %w", err)
	}
	if backoff < 0 {
		return fmt.Errorf("scheduler.error_backoff must not be negative")
	}

	switch c.Journal.Type {
	case "none":
	case "csv":
		if c.Journal.EntriesFile == "" || c.Journal.BalanceFile == "" {
			return fmt.Errorf("journal entries_file and balance_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	case "postgres":
		if c.Journal.DSN == "" {
			return fmt.Errorf("journal dsn required for Postgres type")
		}
	default:
		return fmt.Errorf("journal.type must be one of none, csv, sqlite, postgres")
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'console' or 'json'")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			ID:      "PAPER-001",
			Balance: decimal.NewFromInt(100000),
		},
		Strategy: StrategyConfig{
			Symbol:      "BTC-USD",
			RiskPercent: decimal.NewFromInt(2),
			Levels:      signal.LevelsPercent,
			StopPct:     decimal.NewFromInt(2),
			TargetPct:   decimal.NewFromInt(4),
		},
		Feed: FeedConfig{
			Type: "csv",
			Path: "./ticks.csv",
		},
		Recommender: RecommenderConfig{
			Type: "scripted",
		},
		Scheduler: SchedulerConfig{
			Interval:     "5s",
			ErrorBackoff: "10s",
		},
		Journal: JournalConfig{
			Type:        "csv",
			EntriesFile: "./entries.csv",
			BalanceFile: "./balances.csv",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
