package catalog

import "sort"

// StatusUnknown is the sentinel status assigned to items whose source
// payload carries no usable status value.
const StatusUnknown = "unknown"

// Item is one normalized catalog entry. Identifier and Status are never
// empty-by-accident: a missing identifier normalizes to "" and a missing
// status to StatusUnknown. Items are immutable once produced.
type Item struct {
	// Identifier is the merchant SKU. May be "" when the source payload
	// omits it; downstream delete logic must reject those before use.
	Identifier string `json:"identifier"`

	// Status is the lifecycle status (e.g. "approved", "rejected").
	Status string `json:"status"`

	// Active reports whether the offer is currently enabled upstream.
	Active bool `json:"active,omitempty"`
}

// Tally counts items per lifecycle status. It only ever increments during
// a walk and is rebuilt from scratch for every walk.
type Tally map[string]int

// Add increments the count for status.
func (t Tally) Add(status string) {
	t[status]++
}

// Total returns the sum of all counts.
func (t Tally) Total() int {
	total := 0
	for _, n := range t {
		total += n
	}
	return total
}

// StatusCount is one row of a sorted tally.
type StatusCount struct {
	Status string
	Count  int
}

// Sorted returns the tally as rows ordered by count descending, ties broken
// by status ascending. Deterministic ordering for reports and logs.
func (t Tally) Sorted() []StatusCount {
	rows := make([]StatusCount, 0, len(t))
	for status, count := range t {
		rows = append(rows, StatusCount{Status: status, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Status < rows[j].Status
	})
	return rows
}

// FilterByStatus returns the items whose status is in statuses, preserving
// input order. The selection policy itself (which statuses are safe to
// delete) stays with the caller.
func FilterByStatus(items []Item, statuses []string) []Item {
	if len(statuses) == 0 {
		return nil
	}

	selected := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		selected[s] = true
	}

	var filtered []Item
	for _, item := range items {
		if selected[item.Status] {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
