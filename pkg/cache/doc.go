// Package cache provides the driver-owned catalog result cache.
//
// The aggregation and removal engines are cache-agnostic: they never see
// this package. The driver checks the cache before a walk and stores the
// completed (items, tally) snapshot afterwards, keyed by the full walk
// parameters (endpoint, credential, page limit, delay) so a key can never
// serve results produced under different settings.
//
// # Basic Usage
//
//	store := cache.NewRedisStore(redisClient, 15*time.Minute)
//
//	key := cache.Key{
//		Endpoint:   baseURL,
//		Credential: token,
//		MaxPages:   0,
//		Delay:      200 * time.Millisecond,
//	}
//
//	entry, err := store.Get(ctx, key)
//	if err == cache.ErrCacheMiss {
//		// run the walk, then store.Put(ctx, key, entry)
//	}
//
// Credentials enter the cache key only as a SHA-256 fingerprint; the raw
// token is never written to Redis.
package cache
