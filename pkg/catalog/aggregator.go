package catalog

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for catalog walks.
var (
	pagesFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sweeper_pages_fetched_total",
		Help: "Total catalog pages fetched across all walks",
	})

	itemsAggregatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sweeper_items_aggregated_total",
		Help: "Total catalog items accumulated across all walks",
	})

	walkFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sweeper_walk_failures_total",
		Help: "Total walks terminated early by a page fetch failure",
	})
)

// PageFetcher is the injected transport capability for single-page fetching.
// Implementations attach credentials, enforce timeouts, and translate
// HTTP/transport problems into errors; the aggregator treats any error as
// terminal for the current walk.
type PageFetcher interface {
	// FetchPage fetches one listing page and returns its raw JSON payload.
	FetchPage(ctx context.Context, url string) ([]byte, error)
}

// PageFunc adapts a plain function to the PageFetcher interface.
type PageFunc func(ctx context.Context, url string) ([]byte, error)

// FetchPage implements PageFetcher.
func (f PageFunc) FetchPage(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

// Options holds aggregation walk configuration.
type Options struct {
	// MaxPages caps the number of pages fetched (0 = unlimited).
	MaxPages int

	// InterPageDelay is a voluntary pause between page fetches to avoid
	// triggering upstream rate limiting. Applied only while another page
	// remains.
	InterPageDelay time.Duration

	// OnPage, when set, is invoked after every fetched page with the
	// 1-based page number, the URL fetched, and the item count on that
	// page. Purely observational.
	OnPage func(page int, url string, items int)
}

// Aggregator walks a paginated listing endpoint to completion.
type Aggregator struct {
	fetcher PageFetcher
	opts    Options
	logger  zerolog.Logger
}

// NewAggregator creates an aggregator around the given page fetcher.
func NewAggregator(fetcher PageFetcher, opts Options) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		opts:    opts,
		logger:  log.With().Str("component", "catalog-aggregator").Logger(),
	}
}

// Walk fetches pages starting at startURL until the pagination cursor runs
// out, MaxPages is reached, or a fetch fails. It returns every item
// accumulated so far together with the per-status tally.
//
// The returned error is the terminating fetch failure, if any. Items and
// tally are valid either way: a failed walk is a best-effort prefix scan,
// and the caller decides whether a partial catalog is acceptable.
func (a *Aggregator) Walk(ctx context.Context, startURL string) ([]Item, Tally, error) {
	start := time.Now()
	tally := make(Tally)

	var items []Item
	next := startURL
	page := 0

	for next != "" {
		page++
		if a.opts.MaxPages > 0 && page > a.opts.MaxPages {
			a.logger.Info().
				Int("max_pages", a.opts.MaxPages).
				Msg("Reached max pages, stopping walk")
			break
		}

		a.logger.Debug().
			Int("page", page).
			Str("url", next).
			Msg("Requesting page")

		body, err := a.fetcher.FetchPage(ctx, next)
		if err != nil {
			walkFailuresTotal.Inc()
			a.logger.Warn().
				Err(err).
				Int("page", page).
				Int("items_accumulated", len(items)).
				Msg("Page fetch failed - returning partial catalog")
			return items, tally, err
		}
		pagesFetchedTotal.Inc()

		pageItems, nextURL := normalizePage(body)
		for _, item := range pageItems {
			tally.Add(item.Status)
		}
		items = append(items, pageItems...)
		itemsAggregatedTotal.Add(float64(len(pageItems)))

		if a.opts.OnPage != nil {
			a.opts.OnPage(page, next, len(pageItems))
		}

		a.logger.Info().
			Int("page", page).
			Int("page_items", len(pageItems)).
			Int("items_accumulated", len(items)).
			Bool("has_next", nextURL != "").
			Msg("Page fetched")

		next = nextURL

		if a.opts.InterPageDelay > 0 && next != "" {
			select {
			case <-ctx.Done():
				a.logger.Warn().
					Int("page", page).
					Msg("Context cancelled during inter-page delay")
				return items, tally, ctx.Err()
			case <-time.After(a.opts.InterPageDelay):
			}
		}
	}

	a.logger.Info().
		Int("pages", page).
		Int("items", len(items)).
		Int("statuses", len(tally)).
		Dur("duration", time.Since(start)).
		Msg("Walk complete")

	return items, tally, nil
}
