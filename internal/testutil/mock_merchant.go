// Package testutil provides testing utilities for the catalog sweeper.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
)

// ProductEntry is one wire-format product for mock catalog pages.
type ProductEntry struct {
	SKU     string  `json:"sku,omitempty"`
	State   *string `json:"state,omitempty"`
	Enabled bool    `json:"enabled"`
}

// State returns a pointer suitable for ProductEntry.State.
func State(s string) *string { return &s }

// MockMerchant is a configurable mock merchant API server.
type MockMerchant struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	RequestCount      int
	ListCount         int
	RemoveCount       int
	RemovedSKUs       []string
	LastRequestHeader http.Header

	failCodes map[string]int
}

// NewMockMerchant creates a new mock merchant API server with a default
// removal endpoint at /products/remove.
func NewMockMerchant() *MockMerchant {
	mock := &MockMerchant{
		handlers:  make(map[string]func(w http.ResponseWriter, r *http.Request)),
		failCodes: make(map[string]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastRequestHeader = r.Header.Clone()
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		if r.URL.Path == "/products/remove" {
			mock.removeHandler(w, r)
			return
		}

		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintf(w, `{"error": "no handler for %s"}`, r.URL.Path)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockMerchant) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockMerchant) Close() {
	m.server.Close()
}

// SetHandler sets a custom handler for a specific path.
func (m *MockMerchant) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// FailRemoval makes the removal endpoint answer the given status code for
// one SKU.
func (m *MockMerchant) FailRemoval(sku string, code int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failCodes[sku] = code
}

// CatalogURL returns the listing start URL for a catalog installed with
// SetCatalog.
func (m *MockMerchant) CatalogURL() string {
	return m.server.URL + "/products/multi?page=0"
}

// SetCatalog installs a paginated listing endpoint at /products/multi.
// Pages are chained through paging.next with a ?page=N cursor; the last
// page carries no next token. Items are wrapped in the data.items shape.
func (m *MockMerchant) SetCatalog(pages [][]ProductEntry) {
	m.SetHandler("/products/multi", func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		m.ListCount++
		m.mu.Unlock()

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page < 0 || page >= len(pages) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprintf(w, `{"error": "no such page"}`)
			return
		}

		payload := struct {
			Data struct {
				Items []ProductEntry `json:"items"`
			} `json:"data"`
			Paging struct {
				Next *string `json:"next,omitempty"`
			} `json:"paging"`
		}{}
		payload.Data.Items = pages[page]
		if page+1 < len(pages) {
			next := fmt.Sprintf("%s/products/multi?page=%d", m.server.URL, page+1)
			payload.Paging.Next = &next
		}

		m.writeJSON(w, http.StatusOK, payload)
	})
}

// removeHandler is the default /products/remove implementation: 200 for
// every SKU unless scripted to fail via FailRemoval.
func (m *MockMerchant) removeHandler(w http.ResponseWriter, r *http.Request) {
	sku := r.URL.Query().Get("sku")

	m.mu.Lock()
	m.RemoveCount++
	code, failed := m.failCodes[sku]
	if !failed {
		m.RemovedSKUs = append(m.RemovedSKUs, sku)
	}
	m.mu.Unlock()

	if failed {
		m.setRateLimitHeaders(w)
		w.WriteHeader(code)
		fmt.Fprintf(w, `{"error": "removal rejected"}`)
		return
	}

	m.writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

// GetRequestCount returns the total number of requests received.
func (m *MockMerchant) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetListCount returns the number of listing requests received.
func (m *MockMerchant) GetListCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ListCount
}

// GetRemovedSKUs returns the SKUs removed so far, in arrival order.
func (m *MockMerchant) GetRemovedSKUs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.RemovedSKUs...)
}

func (m *MockMerchant) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	m.setRateLimitHeaders(w)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (m *MockMerchant) setRateLimitHeaders(w http.ResponseWriter) {
	w.Header().Set("X-RateLimit-Remaining", "100")
	w.Header().Set("X-RateLimit-Reset", "60")
}
