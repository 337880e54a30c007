// Package catalog implements the catalog aggregation engine: a sequential
// cursor walk over a paginated merchant listing endpoint.
//
// The aggregator never performs network I/O itself. It drives an injected
// PageFetcher once per page, normalizes whatever envelope shape the API
// returns, and accumulates items together with a per-status tally.
//
// # Basic Usage
//
//	agg := catalog.NewAggregator(fetcher, catalog.Options{
//		MaxPages:       0, // unlimited
//		InterPageDelay: 200 * time.Millisecond,
//	})
//
//	items, tally, err := agg.Walk(ctx, "https://api.example.com/products/multi?limit=500")
//	if err != nil {
//		// items and tally hold everything accumulated before the failure;
//		// the caller decides whether a truncated catalog is acceptable.
//	}
//
// # Payload Shapes
//
// The listing endpoint is known to wrap its item list three different ways.
// The normalizer accepts, in precedence order:
//
//   - an object under "data" carrying an "items" list
//   - "data" itself being the item list
//   - a top-level "items" list
//
// A payload that fits none of these degrades to an empty page rather than
// failing the walk.
//
// # Failure Semantics
//
// A fetch failure terminates the walk and returns the prefix accumulated so
// far along with the error. The walk is best-effort; nothing in this package
// is fatal.
package catalog
