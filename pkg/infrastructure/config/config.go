package config

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "RXPROCURE_"

// Config holds engine host configuration loaded from the environment.
type Config struct {
	LogLevel         string
	LogDevelopment   bool
	Workers          int
	BestOffers       int
	MemoCapacity     int
	DisplayPrecision int32
	DecimalSeparator string
	CurrencySymbol   string
}

// Load reads configuration from RXPROCURE_* environment variables and an
// optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	provider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(provider, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		LogLevel:         valueOrDefault(k.String("log_level"), "info"),
		LogDevelopment:   parseBool(k.String("log_development")),
		Workers:          parseInt(k.String("workers"), runtime.NumCPU()),
		BestOffers:       parseInt(k.String("best_offers"), 3),
		MemoCapacity:     parseInt(k.String("memo_capacity"), 10000),
		DisplayPrecision: int32(parseInt(k.String("display_precision"), 2)),
		DecimalSeparator: valueOrDefault(k.String("decimal_separator"), "."),
		CurrencySymbol:   strings.TrimSpace(k.String("currency_symbol")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges. Load calls it; callers that override fields
// from flags should call it again.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.BestOffers < 0 {
		return fmt.Errorf("best offers cannot be negative, got %d", c.BestOffers)
	}
	if c.MemoCapacity < 0 {
		return fmt.Errorf("memo capacity cannot be negative, got %d", c.MemoCapacity)
	}
	if c.DisplayPrecision < 0 {
		return fmt.Errorf("display precision cannot be negative, got %d", c.DisplayPrecision)
	}
	if c.DecimalSeparator != "." && c.DecimalSeparator != "," {
		return fmt.Errorf("decimal separator must be '.' or ',', got %q", c.DecimalSeparator)
	}
	return nil
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(value string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}
