package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	DatabaseURL         string
	RedisURL            string
	MarketDataURL       string        // Dexscreener-compatible base URL
	MarketDataCacheTTL  time.Duration // Redis cache TTL for market snapshots
	AdminKey            string        // X-Admin-Key for moderation + health reset
	FrontendURLEndsWith string
	DevPassword         string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL_DEV")
	if env == "production" {
		dbURL = viper.GetString("DATABASE_URL_PROD")
	} else if env == "test" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}
	if dbURL == "" {
		dbURL = viper.GetString("DATABASE_URL")
	}

	return &Config{
		Env:                 env,
		Port:                port,
		DatabaseURL:         dbURL,
		RedisURL:            viper.GetString("REDIS_URL"),
		MarketDataURL:       marketDataURL(viper.GetString("MARKET_DATA_URL")),
		MarketDataCacheTTL:  cacheTTL(viper.GetInt("MARKET_DATA_CACHE_TTL_SECONDS")),
		AdminKey:            viper.GetString("ADMIN_KEY"),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
	}, nil
}

func marketDataURL(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "https://api.dexscreener.com"
	}
	return strings.TrimRight(s, "/")
}

func cacheTTL(seconds int) time.Duration {
	if seconds <= 0 {
		return time.Minute
	}
	return time.Duration(seconds) * time.Second
}
