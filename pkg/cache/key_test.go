package cache

import (
	"strings"
	"testing"
	"time"
)

func TestKey_Deterministic(t *testing.T) {
	key := Key{
		Endpoint:   "https://api.example.com/api/v3/products/multi",
		Credential: "secret-token",
		MaxPages:   50,
		Delay:      200 * time.Millisecond,
	}

	first := key.String()
	second := key.String()
	if first != second {
		t.Errorf("Key not deterministic: %q vs %q", first, second)
	}

	if !strings.HasPrefix(first, "sweeper:catalog:") {
		t.Errorf("Key = %q, want sweeper:catalog: prefix", first)
	}
	if !strings.Contains(first, "max_pages=50") {
		t.Errorf("Key = %q, want max_pages in key", first)
	}
	if strings.Contains(first, "secret-token") {
		t.Errorf("Key = %q, raw credential must never appear", first)
	}
}

func TestKey_DistinctPerParameter(t *testing.T) {
	base := Key{
		Endpoint:   "https://api.example.com/api/v3/products/multi",
		Credential: "secret-token",
		MaxPages:   50,
		Delay:      200 * time.Millisecond,
	}

	variants := []Key{
		{Endpoint: "https://api.example.com/api/v3/other", Credential: base.Credential, MaxPages: base.MaxPages, Delay: base.Delay},
		{Endpoint: base.Endpoint, Credential: "other-token", MaxPages: base.MaxPages, Delay: base.Delay},
		{Endpoint: base.Endpoint, Credential: base.Credential, MaxPages: 10, Delay: base.Delay},
		{Endpoint: base.Endpoint, Credential: base.Credential, MaxPages: base.MaxPages, Delay: time.Second},
	}

	seen := map[string]bool{base.String(): true}
	for i, v := range variants {
		s := v.String()
		if seen[s] {
			t.Errorf("Variant %d collides with another key: %q", i, s)
		}
		seen[s] = true
	}
}

func TestFingerprint(t *testing.T) {
	fp := Fingerprint("secret-token")
	if len(fp) != 16 {
		t.Errorf("Fingerprint length = %d, want 16", len(fp))
	}
	if fp != Fingerprint("secret-token") {
		t.Error("Fingerprint not deterministic")
	}
	if fp == Fingerprint("other-token") {
		t.Error("Distinct credentials produced the same fingerprint")
	}
}
