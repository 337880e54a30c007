package merchant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/merchix/catalog-sweeper/pkg/removal"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid config",
			config:      DefaultConfig("https://api.example.com/api/v3", "secret"),
			expectError: false,
		},
		{
			name:        "missing base URL",
			config:      Config{Token: "secret"},
			expectError: true,
			errorMsg:    "base URL is required",
		},
		{
			name:        "missing token",
			config:      Config{BaseURL: "https://api.example.com/api/v3"},
			expectError: true,
			errorMsg:    "token is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.config)

			if tt.expectError {
				if err == nil {
					t.Fatal("Expected error but got nil")
				}
				if tt.errorMsg != "" && err.Error() != tt.errorMsg {
					t.Errorf("Error message = %q, want %q", err.Error(), tt.errorMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if client == nil {
				t.Error("Client is nil")
			}
		})
	}
}

func TestFetchPage_Headers(t *testing.T) {
	var gotAuth, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"items": []}`))
	}))
	defer server.Close()

	client, err := New(DefaultConfig(server.URL, "secret-token"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if _, err := client.FetchPage(context.Background(), server.URL+"/products/multi"); err != nil {
		t.Fatalf("FetchPage() failed: %v", err)
	}

	if gotAuth != "Bearer secret-token" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotAgent != "catalog-sweeper/0.1.0" {
		t.Errorf("User-Agent = %q, want default user agent", gotAgent)
	}
}

func TestFetchPage_HTTPError(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantClass  ErrorClass
	}{
		{"client error", 404, ErrorClassClient},
		{"server error", 500, ErrorClassServer},
		{"rate limit", 429, ErrorClassRateLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			client, err := New(DefaultConfig(server.URL, "secret"))
			if err != nil {
				t.Fatalf("New() failed: %v", err)
			}

			_, err = client.FetchPage(context.Background(), server.URL+"/products/multi")
			if err == nil {
				t.Fatal("Expected error, got nil")
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Error type = %T, want *APIError", err)
			}
			if apiErr.Class != tt.wantClass {
				t.Errorf("Class = %q, want %q", apiErr.Class, tt.wantClass)
			}
			if apiErr.StatusCode != tt.statusCode {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.statusCode)
			}
		})
	}
}

func TestFetchPage_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close() // Connection refused from here on.

	client, err := New(DefaultConfig(url, "secret"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	_, err = client.FetchPage(context.Background(), url+"/products/multi")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Error type = %T, want *APIError", err)
	}
	if apiErr.Class != ErrorClassNetwork {
		t.Errorf("Class = %q, want %q", apiErr.Class, ErrorClassNetwork)
	}
}

func TestRemove_Success(t *testing.T) {
	var gotSKU, gotMethod string
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSKU = r.URL.Query().Get("sku")
		gotMethod = r.Method
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message": "ok"}`))
	}))
	defer server.Close()

	client, err := New(DefaultConfig(server.URL, "secret"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	ok, code, detail := client.Remove(context.Background(), "SKU-1")
	if !ok {
		t.Errorf("Remove() ok = false, detail = %q", detail)
	}
	if code != 200 {
		t.Errorf("Code = %d, want 200", code)
	}
	if gotSKU != "SKU-1" {
		t.Errorf("SKU query param = %q, want SKU-1", gotSKU)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("Method = %q, want POST", gotMethod)
	}
	if gotBody["reason"] != "stopSelling" {
		t.Errorf("Reason payload = %v, want stopSelling", gotBody)
	}
}

func TestRemove_OnlyStatus200IsSuccess(t *testing.T) {
	// 2xx variants other than 200 are still failures per the API contract.
	for _, statusCode := range []int{201, 202, 204, 404, 500} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(statusCode)
		}))

		client, err := New(DefaultConfig(server.URL, "secret"))
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}

		ok, code, _ := client.Remove(context.Background(), "SKU-1")
		if ok {
			t.Errorf("Remove() with status %d: ok = true, want false", statusCode)
		}
		if code != statusCode {
			t.Errorf("Code = %d, want %d", code, statusCode)
		}

		server.Close()
	}
}

func TestRemove_FailureCarriesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error": "product is locked"}`))
	}))
	defer server.Close()

	client, err := New(DefaultConfig(server.URL, "secret"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	ok, code, detail := client.Remove(context.Background(), "SKU-1")
	if ok || code != http.StatusConflict {
		t.Errorf("Remove() = (%v, %d), want (false, 409)", ok, code)
	}
	if detail != `{"error": "product is locked"}` {
		t.Errorf("Detail = %q, want response body", detail)
	}
}

func TestRemove_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := New(DefaultConfig(url, "secret"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	ok, code, detail := client.Remove(context.Background(), "SKU-1")
	if ok {
		t.Error("Remove() ok = true, want false on transport failure")
	}
	if code != removal.CodeTransportFailure {
		t.Errorf("Code = %d, want %d (reserved transport sentinel)", code, removal.CodeTransportFailure)
	}
	if detail == "" {
		t.Error("Detail is empty, want transport error text")
	}
}

func TestRemove_EmptyIdentifierPassedThrough(t *testing.T) {
	// The adapter does not validate identifiers; filtering is the
	// remover's job.
	var gotSKU string
	requested := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = true
		gotSKU = r.URL.Query().Get("sku")
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client, err := New(DefaultConfig(server.URL, "secret"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	ok, code, _ := client.Remove(context.Background(), "")
	if !requested {
		t.Fatal("Expected the request to be sent as-is")
	}
	if gotSKU != "" || ok || code != http.StatusBadRequest {
		t.Errorf("Remove(\"\") = (%v, %d) sku=%q", ok, code, gotSKU)
	}
}
