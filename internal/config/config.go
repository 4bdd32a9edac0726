package config

import (
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabaseURL     string `mapstructure:"DATABASE_URL"`
	JWTSecret       string `mapstructure:"JWT_SECRET"`
	Port            string `mapstructure:"PORT"`
	LogLevel        string `mapstructure:"LOG_LEVEL"`
	StripeSecretKey string `mapstructure:"STRIPE_SECRET_KEY"`
	SiteURL         string `mapstructure:"SITE_URL"`
	AMQPURL         string `mapstructure:"AMQP_URL"`
	CORSOrigins     string `mapstructure:"CORS_ORIGINS"`
}

var AppConfig *Config

// defaults also registers every key with viper so AutomaticEnv picks it up on Unmarshal.
var defaults = map[string]any{
	"DATABASE_URL":      "",
	"JWT_SECRET":        "",
	"PORT":              "8080",
	"LOG_LEVEL":         "info",
	"STRIPE_SECRET_KEY": "",
	"SITE_URL":          "http://localhost:5173",
	"AMQP_URL":          "",
	"CORS_ORIGINS":      "*",
}

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig() error {
	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName(".env")
	v.SetConfigType("env")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		slog.Warn(".env file not found, loading from environment variables")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return err
	}
	AppConfig = &cfg
	return nil
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
