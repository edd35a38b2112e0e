package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the reporting API.
type Config struct {
	AppName           string
	AppEnv            string
	AppPort           string
	DatabaseURL       string
	RedisURL          string
	DashboardCacheTTL time.Duration
	RecentUsersLimit  int
	AnalysisTimeout   time.Duration
	AnalysisRateMax   int
	AnalysisRateWin   time.Duration
	AIProvider        string
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	OpenAIModel       string
	AnthropicAPIKey   string
	SeedEnabled       bool
	SeedToken         string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("FMZB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "FMZB Hub API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("dashboard.cache_ttl", "45s")
	v.SetDefault("dashboard.recent_users_limit", 10)
	v.SetDefault("analysis.timeout", "8s")
	v.SetDefault("analysis.rate_max", 10)
	v.SetDefault("analysis.rate_window", "1m")
	v.SetDefault("ai.provider", "openai")
	v.SetDefault("openai_model", "gpt-4o-mini")

	ttl, err := time.ParseDuration(v.GetString("dashboard.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid dashboard cache ttl: %w", err)
	}

	analysisTimeout, err := time.ParseDuration(v.GetString("analysis.timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid analysis timeout: %w", err)
	}

	rateWindow, err := time.ParseDuration(v.GetString("analysis.rate_window"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid analysis rate window: %w", err)
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		DatabaseURL:       v.GetString("database.url"),
		RedisURL:          v.GetString("redis.url"),
		DashboardCacheTTL: ttl,
		RecentUsersLimit:  v.GetInt("dashboard.recent_users_limit"),
		AnalysisTimeout:   analysisTimeout,
		AnalysisRateMax:   v.GetInt("analysis.rate_max"),
		AnalysisRateWin:   rateWindow,
		AIProvider:        strings.ToLower(v.GetString("ai.provider")),
		OpenAIAPIKey:      v.GetString("openai_api_key"),
		OpenAIBaseURL:     v.GetString("openai_api_base"),
		OpenAIModel:       v.GetString("openai_model"),
		AnthropicAPIKey:   v.GetString("anthropic_api_key"),
		SeedEnabled:       v.GetBool("seed.enabled"),
		SeedToken:         v.GetString("seed.token"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database url must be provided")
	}

	if cfg.RecentUsersLimit <= 0 {
		cfg.RecentUsersLimit = 10
	}

	if cfg.AnalysisTimeout <= 0 {
		cfg.AnalysisTimeout = 8 * time.Second
	}

	return cfg, nil
}
