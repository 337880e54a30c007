package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the sweeper run configuration, sourced from an optional
// sweeper.yaml and SWEEPER_* environment variables.
type Config struct {
	// BaseURL is the merchant API root.
	BaseURL string

	// CatalogURL is the listing start URL. Defaults to the multi-product
	// listing under BaseURL.
	CatalogURL string

	// Token is the bearer credential.
	Token string

	// Statuses are the lifecycle statuses selected for deletion.
	Statuses []string

	// MaxPages caps the walk (0 = unlimited).
	MaxPages int

	// Delay is the voluntary inter-page delay.
	Delay time.Duration

	// ReportPath is where the xlsx report is written.
	ReportPath string

	// RedisURL enables the shared result cache and rate-limit tracker
	// when set (host:port).
	RedisURL string

	// CacheTTL bounds the age of reused catalog snapshots.
	CacheTTL time.Duration

	// ForceRefresh ignores any cached snapshot for this run.
	ForceRefresh bool

	// Confirm enables actual deletion. Without it the run is a dry run
	// that stops after reporting what would be deleted.
	Confirm bool

	// LogLevel and LogPretty configure logging output.
	LogLevel  string
	LogPretty bool

	// MetricsAddr, when set, serves /metrics and /health during the run.
	MetricsAddr string
}

func loadConfig() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SWEEPER")
	v.AutomaticEnv()

	v.SetDefault("base_url", "https://api-merchant.joom.com/api/v3")
	v.SetDefault("catalog_url", "")
	v.SetDefault("token", "")
	v.SetDefault("statuses", "rejected")
	v.SetDefault("max_pages", 0)
	v.SetDefault("delay", "0s")
	v.SetDefault("report_path", "remove_report.xlsx")
	v.SetDefault("redis_url", "")
	v.SetDefault("cache_ttl", "15m")
	v.SetDefault("force_refresh", false)
	v.SetDefault("confirm", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", false)
	v.SetDefault("metrics_addr", "")

	v.SetConfigName("sweeper")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		BaseURL:      strings.TrimRight(v.GetString("base_url"), "/"),
		CatalogURL:   v.GetString("catalog_url"),
		Token:        v.GetString("token"),
		Statuses:     splitStatuses(v.GetString("statuses")),
		MaxPages:     v.GetInt("max_pages"),
		Delay:        v.GetDuration("delay"),
		ReportPath:   v.GetString("report_path"),
		RedisURL:     v.GetString("redis_url"),
		CacheTTL:     v.GetDuration("cache_ttl"),
		ForceRefresh: v.GetBool("force_refresh"),
		Confirm:      v.GetBool("confirm"),
		LogLevel:     v.GetString("log_level"),
		LogPretty:    v.GetBool("log_pretty"),
		MetricsAddr:  v.GetString("metrics_addr"),
	}

	if cfg.CatalogURL == "" {
		cfg.CatalogURL = cfg.BaseURL + "/products/multi?limit=500"
	}

	return cfg, nil
}

// splitStatuses parses a comma-separated status list, dropping empties.
func splitStatuses(raw string) []string {
	var statuses []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			statuses = append(statuses, s)
		}
	}
	return statuses
}
