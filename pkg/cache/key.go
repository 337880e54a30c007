package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Key identifies one cached catalog snapshot. Two walks share an entry only
// when every field matches: results fetched with a different page limit or
// credential are never interchangeable.
type Key struct {
	// Endpoint is the listing start URL.
	Endpoint string

	// Credential is the raw bearer token. Only its fingerprint appears in
	// the rendered key.
	Credential string

	// MaxPages is the walk's page cap (0 = unlimited).
	MaxPages int

	// Delay is the walk's inter-page delay.
	Delay time.Duration
}

// String generates a deterministic cache key string.
// Format: sweeper:catalog:<endpoint>:max_pages=N:delay=D:token=<fingerprint>
func (k Key) String() string {
	parts := []string{"sweeper", "catalog"}

	endpoint := strings.Trim(k.Endpoint, "/")
	if endpoint != "" {
		parts = append(parts, endpoint)
	}

	parts = append(parts,
		fmt.Sprintf("max_pages=%d", k.MaxPages),
		fmt.Sprintf("delay=%s", k.Delay),
		fmt.Sprintf("token=%s", Fingerprint(k.Credential)),
	)

	return strings.Join(parts, ":")
}

// Fingerprint returns a short non-reversible digest of a credential,
// suitable for cache keys and logs.
func Fingerprint(credential string) string {
	sum := sha256.Sum256([]byte(credential))
	return hex.EncodeToString(sum[:])[:16]
}
