package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort          int    `mapstructure:"APP_PORT"`
	DatabasePath     string `mapstructure:"DATABASE_PATH"`
	OpenRouterURL    string `mapstructure:"OPENROUTER_URL"`
	OpenRouterAPIKey string `mapstructure:"OPENROUTER_API_KEY"`
	Model            string `mapstructure:"MODEL"`
	AppReferer       string `mapstructure:"APP_REFERER"`
	AppTitle         string `mapstructure:"APP_TITLE"`
	LogLevel         string `mapstructure:"LOG_LEVEL"`
	RevealIntervalMS int    `mapstructure:"REVEAL_INTERVAL_MS"`
	FilterExtraTerms string `mapstructure:"FILTER_EXTRA_TERMS"`
}

// ExtraDenyTerms returns the comma-separated FILTER_EXTRA_TERMS as a slice,
// so deployments can extend the built-in deny-list without a code change.
func (c *Config) ExtraDenyTerms() []string {
	if strings.TrimSpace(c.FilterExtraTerms) == "" {
		return nil
	}
	parts := strings.Split(c.FilterExtraTerms, ",")
	terms := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("DATABASE_PATH", "/data/nutricare.db")
	viper.SetDefault("OPENROUTER_URL", "https://openrouter.ai/api")
	// OPENROUTER_API_KEY has no default on purpose: the key must come from the
	// environment or a config file, never from source.
	viper.SetDefault("OPENROUTER_API_KEY", "")
	viper.SetDefault("MODEL", "meta-llama/llama-3.1-8b-instruct")
	viper.SetDefault("APP_REFERER", "https://nutricare.example.com")
	viper.SetDefault("APP_TITLE", "NutriCare")
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("REVEAL_INTERVAL_MS", 18)
	viper.SetDefault("FILTER_EXTRA_TERMS", "")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
