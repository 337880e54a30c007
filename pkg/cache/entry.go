package cache

import (
	"time"

	"github.com/merchix/catalog-sweeper/pkg/catalog"
)

// Entry is one cached catalog snapshot: the complete item set plus the
// per-status tally produced by a single finished walk.
type Entry struct {
	Items     []catalog.Item `json:"items"`
	Tally     catalog.Tally  `json:"tally"`
	FetchedAt time.Time      `json:"fetched_at"`
}

// NewEntry builds an entry stamped with the current time.
func NewEntry(items []catalog.Item, tally catalog.Tally) *Entry {
	return &Entry{
		Items:     items,
		Tally:     tally,
		FetchedAt: time.Now(),
	}
}

// Age returns how long ago the snapshot was fetched.
func (e *Entry) Age() time.Duration {
	return time.Since(e.FetchedAt)
}
