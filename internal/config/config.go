// Package config loads pricer settings from file, environment and flags.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the runtime settings of the pricer.
type Config struct {
	LogLevel              string `mapstructure:"log_level"`
	Workers               int    `mapstructure:"workers"`
	IncludeTodayCashflows bool   `mapstructure:"include_today_cashflows"`
	MarketFile            string `mapstructure:"market_file"`
	PortfolioFile         string `mapstructure:"portfolio_file"`
}

// Load reads the config file when given, then environment variables with
// the PRICER_ prefix, on top of the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("log_level", "info")
	v.SetDefault("workers", 4)
	v.SetDefault("include_today_cashflows", false)

	v.SetEnvPrefix("PRICER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config.Load: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}
