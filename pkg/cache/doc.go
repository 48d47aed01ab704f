// Package cache provides a generic, thread-safe LRU cache with optional
// per-entry expiry.
//
// The cache evicts the least recently used entry once it reaches capacity.
// With WithTTL every entry also expires a fixed time after it was stored;
// expired entries are reported as missing by Get and can be swept with Purge.
//
//	records := cache.NewLRUCache[string, *tenant.Record](1000, cache.WithTTL(5*time.Minute))
//	records.Put("acme", rec)
//	if rec, ok := records.Get("acme"); ok {
//		// fresh entry
//	}
package cache
