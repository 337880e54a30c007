// Command sweeper extracts a merchant's product catalog, deletes the
// products matching the selected lifecycle statuses, and writes an xlsx
// report of the outcomes.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/merchix/catalog-sweeper/pkg/cache"
	"github.com/merchix/catalog-sweeper/pkg/catalog"
	"github.com/merchix/catalog-sweeper/pkg/logging"
	"github.com/merchix/catalog-sweeper/pkg/merchant"
	"github.com/merchix/catalog-sweeper/pkg/ratelimit"
	"github.com/merchix/catalog-sweeper/pkg/removal"
	"github.com/merchix/catalog-sweeper/pkg/report"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "sweeper: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.LogLevel),
		Pretty: cfg.LogPretty,
		Output: os.Stderr,
	})

	if cfg.Token == "" {
		return fmt.Errorf("token is required (set SWEEPER_TOKEN)")
	}

	ctx := context.Background()

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, logger)
	}

	// Redis is optional: it enables the shared result cache and the
	// cross-run rate-limit tracker.
	var store cache.Store
	var tracker *ratelimit.Tracker
	if cfg.RedisURL != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect to redis at %s: %w", cfg.RedisURL, err)
		}
		defer redisClient.Close()

		store = cache.NewRedisStore(redisClient, cfg.CacheTTL)
		tracker = ratelimit.NewTracker(redisClient, logging.NewLogger("ratelimit"))
		logger.Info().Str("redis", cfg.RedisURL).Msg("Connected to Redis")
	}

	client, err := merchant.New(merchant.Config{
		BaseURL:   cfg.BaseURL,
		Token:     cfg.Token,
		UserAgent: "catalog-sweeper/0.1.0",
		Tracker:   tracker,
	})
	if err != nil {
		return fmt.Errorf("create merchant client: %w", err)
	}

	items, tally, err := loadCatalog(ctx, cfg, client, store, logger)
	if err != nil && len(items) == 0 {
		return fmt.Errorf("catalog extraction failed with no results: %w", err)
	}
	if err != nil {
		logger.Warn().Err(err).Int("items", len(items)).
			Msg("Walk ended early - continuing with partial catalog")
	}

	logger.Info().Int("total_items", len(items)).Msg("Catalog ready")
	for _, sc := range tally.Sorted() {
		logger.Info().Str("status", sc.Status).Int("count", sc.Count).Msg("Status tally")
	}

	targets := catalog.FilterByStatus(items, cfg.Statuses)
	logger.Info().
		Strs("statuses", cfg.Statuses).
		Int("targets", len(targets)).
		Msg("Selection complete")

	if len(targets) == 0 {
		logger.Info().Msg("Nothing to delete")
		return nil
	}

	if !cfg.Confirm {
		logger.Info().
			Int("targets", len(targets)).
			Msg("Dry run - set SWEEPER_CONFIRM=true to delete")
		return nil
	}

	remover := removal.NewRemover(client)
	rep := remover.RemoveAll(ctx, targets, tally, func(done, total int) {
		logger.Debug().
			Int("done", done).
			Int("total", total).
			Float64("progress", float64(done)/float64(total)).
			Msg("Removal progress")
	})

	if err := writeReport(cfg.ReportPath, rep); err != nil {
		return err
	}

	logger.Info().
		Int("removed", len(rep.Removed)).
		Int("failed", len(rep.Failed)).
		Int("skipped", len(rep.Skipped)).
		Str("report", cfg.ReportPath).
		Msg("Sweep complete")

	return nil
}

// loadCatalog returns the catalog snapshot, from cache when possible,
// otherwise by walking the listing endpoint (and caching the result).
func loadCatalog(ctx context.Context, cfg Config, fetcher catalog.PageFetcher, store cache.Store, logger zerolog.Logger) ([]catalog.Item, catalog.Tally, error) {
	key := cache.Key{
		Endpoint:   cfg.CatalogURL,
		Credential: cfg.Token,
		MaxPages:   cfg.MaxPages,
		Delay:      cfg.Delay,
	}

	if store != nil && !cfg.ForceRefresh {
		entry, err := store.Get(ctx, key)
		if err == nil {
			logger.Info().
				Int("items", len(entry.Items)).
				Dur("age", entry.Age()).
				Msg("Using cached catalog snapshot")
			return entry.Items, entry.Tally, nil
		}
		if err != cache.ErrCacheMiss {
			logger.Warn().Err(err).Msg("Cache read failed - walking the catalog")
		}
	}

	agg := catalog.NewAggregator(fetcher, catalog.Options{
		MaxPages:       cfg.MaxPages,
		InterPageDelay: cfg.Delay,
	})
	items, tally, walkErr := agg.Walk(ctx, cfg.CatalogURL)

	// Only complete walks are worth caching.
	if store != nil && walkErr == nil {
		if err := store.Put(ctx, key, cache.NewEntry(items, tally)); err != nil {
			logger.Warn().Err(err).Msg("Failed to cache catalog snapshot")
		}
	}

	return items, tally, walkErr
}

func writeReport(path string, rep *removal.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	if err := report.Write(f, rep); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func serveMetrics(addr string, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	logger.Info().Str("addr", addr).Msg("Serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Warn().Err(err).Msg("Metrics server stopped")
	}
}
