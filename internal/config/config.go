package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Prices      Prices      `mapstructure:"prices"`
	Storage     Storage     `mapstructure:"storage"`
	History     History     `mapstructure:"history"`
	Performance Performance `mapstructure:"performance"`
	Logger      Logger      `mapstructure:"logger"`
	Server      Server      `mapstructure:"server"`
	Defaults    Defaults    `mapstructure:"defaults"`
}

// Prices holds the configuration for the price sources.
type Prices struct {
	Strategy       string        `mapstructure:"strategy"` // "batch" or "ticker"
	CoinGeckoURL   string        `mapstructure:"coingecko_url"`
	BinanceURL     string        `mapstructure:"binance_url"`
	QuoteAsset     string        `mapstructure:"quote_asset"`
	BatchTimeout   time.Duration `mapstructure:"batch_timeout"`
	TickerTimeout  time.Duration `mapstructure:"ticker_timeout"`
	RateLimit      float64       `mapstructure:"rate_limit"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst"`
}

// Storage holds the configuration for the persistence backend.
type Storage struct {
	Driver       string `mapstructure:"driver"` // "json" or "sqlite"
	SettingsFile string `mapstructure:"settings_file"`
	HistoryFile  string `mapstructure:"history_file"`
	DSN          string `mapstructure:"dsn"`
}

// History controls snapshot recording.
type History struct {
	Enabled bool `mapstructure:"enabled"`
}

// Performance selects how period PNL is derived.
type Performance struct {
	Mode string `mapstructure:"mode"` // "calendar" or "prorated"
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Server holds the configuration for the web server.
type Server struct {
	Port int `mapstructure:"port"`
}

// Defaults seeds settings the user has not saved yet.
type Defaults struct {
	FXRate float64 `mapstructure:"fx_rate"`
}

// LoadConfig reads configuration from an optional config.yml under path,
// then environment variables prefixed with INVESTRACK_.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvPrefix("investrack")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var cfg Config
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, err
		}
	}

	err := v.Unmarshal(&cfg)
	return cfg, err
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("prices.strategy", "batch")
	v.SetDefault("prices.coingecko_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("prices.binance_url", "https://api.binance.com/api/v3")
	v.SetDefault("prices.quote_asset", "USDT")
	v.SetDefault("prices.batch_timeout", 10*time.Second)
	v.SetDefault("prices.ticker_timeout", 5*time.Second)
	v.SetDefault("prices.rate_limit", 10)      // requests per second
	v.SetDefault("prices.rate_limit_burst", 5) // burst size

	v.SetDefault("storage.driver", "json")
	v.SetDefault("storage.settings_file", "user_data.json")
	v.SetDefault("storage.history_file", "portfolio_history.json")
	v.SetDefault("storage.dsn", "investrack.db")

	v.SetDefault("history.enabled", true)
	v.SetDefault("performance.mode", "calendar")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")

	v.SetDefault("server.port", 8501)
	v.SetDefault("defaults.fx_rate", 15.0)
}
