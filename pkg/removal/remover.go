// Package removal implements the bulk-deletion executor: a strictly
// sequential per-item delete loop that classifies every attempt as removed,
// failed, or skipped, and never aborts on individual failures.
package removal

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/merchix/catalog-sweeper/pkg/catalog"
)

// Prometheus metrics for removal batches.
var (
	removalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sweeper_removals_total",
		Help: "Total removal attempts by result (removed, failed, skipped)",
	}, []string{"result"})

	removalBatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sweeper_removal_batch_duration_seconds",
		Help:    "Duration of complete removal batches in seconds",
		Buckets: []float64{1, 5, 15, 60, 300, 900},
	})
)

// CodeTransportFailure is the reserved response code for transport-level
// failures where no HTTP response was received.
const CodeTransportFailure = -1

// Outcome records the result of exactly one deletion attempt. Created once
// per identifier processed and never updated.
type Outcome struct {
	Identifier   string `json:"identifier"`
	Status       string `json:"status"`
	Succeeded    bool   `json:"succeeded"`
	ResponseCode int    `json:"response_code"`
	Detail       string `json:"detail,omitempty"`
}

// Report is the ordered result of one removal batch. Tally is the
// pre-deletion status snapshot, kept for audit.
type Report struct {
	Removed []Outcome     `json:"removed"`
	Failed  []Outcome     `json:"failed"`
	Skipped []Outcome     `json:"skipped,omitempty"`
	Tally   catalog.Tally `json:"tally"`
}

// Processed returns the number of items the batch handled.
func (r *Report) Processed() int {
	return len(r.Removed) + len(r.Failed) + len(r.Skipped)
}

// Deleter is the injected transport capability for single-item removal.
// Implementations never return an error: transport failures are converted
// to (false, CodeTransportFailure, error text) inside the adapter.
type Deleter interface {
	Remove(ctx context.Context, identifier string) (ok bool, code int, detail string)
}

// DeleteFunc adapts a plain function to the Deleter interface.
type DeleteFunc func(ctx context.Context, identifier string) (bool, int, string)

// Remove implements Deleter.
func (f DeleteFunc) Remove(ctx context.Context, identifier string) (bool, int, string) {
	return f(ctx, identifier)
}

// ProgressFunc receives batch progress after every processed item.
// done/total is the fraction completed; total is known upfront.
type ProgressFunc func(done, total int)

// Remover executes removal batches.
type Remover struct {
	deleter Deleter
	logger  zerolog.Logger
}

// NewRemover creates a remover around the given deleter.
func NewRemover(deleter Deleter) *Remover {
	return &Remover{
		deleter: deleter,
		logger:  log.With().Str("component", "bulk-remover").Logger(),
	}
}

// RemoveAll deletes every item in input order, one in-flight request at a
// time. A single item's failure never aborts the batch. Items with an empty
// identifier are not forwarded to the deleter: they are routed to the
// Skipped bucket, but still count toward progress.
//
// tally is the pre-deletion status snapshot and is carried into the report
// unchanged. Identifiers are not deduplicated; retry on the Failed bucket
// is a caller concern.
func (r *Remover) RemoveAll(ctx context.Context, items []catalog.Item, tally catalog.Tally, onProgress ProgressFunc) *Report {
	start := time.Now()
	total := len(items)
	report := &Report{Tally: tally}

	r.logger.Info().
		Int("total", total).
		Msg("Starting removal batch")

	for i, item := range items {
		if item.Identifier == "" {
			removalsTotal.WithLabelValues("skipped").Inc()
			report.Skipped = append(report.Skipped, Outcome{
				Identifier: item.Identifier,
				Status:     item.Status,
				Succeeded:  false,
				Detail:     "empty identifier",
			})
			r.logger.Warn().
				Str("status", item.Status).
				Msg("Skipped item with empty identifier")
			if onProgress != nil {
				onProgress(i+1, total)
			}
			continue
		}

		ok, code, detail := r.deleter.Remove(ctx, item.Identifier)
		outcome := Outcome{
			Identifier:   item.Identifier,
			Status:       item.Status,
			Succeeded:    ok,
			ResponseCode: code,
		}

		if ok {
			removalsTotal.WithLabelValues("removed").Inc()
			report.Removed = append(report.Removed, outcome)
			r.logger.Info().
				Str("identifier", item.Identifier).
				Int("code", code).
				Msg("Removed")
		} else {
			outcome.Detail = detail
			removalsTotal.WithLabelValues("failed").Inc()
			report.Failed = append(report.Failed, outcome)
			r.logger.Warn().
				Str("identifier", item.Identifier).
				Int("code", code).
				Str("detail", detail).
				Msg("Removal failed")
		}

		if onProgress != nil {
			onProgress(i+1, total)
		}
	}

	removalBatchDuration.Observe(time.Since(start).Seconds())
	r.logger.Info().
		Int("removed", len(report.Removed)).
		Int("failed", len(report.Failed)).
		Int("skipped", len(report.Skipped)).
		Dur("duration", time.Since(start)).
		Msg("Removal batch complete")

	return report
}
