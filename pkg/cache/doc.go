// Package cache provides a generic in-memory LRU cache with optional TTL.
//
// The membership service uses it as the single-process idempotency ledger:
// payment references are remembered for a bounded time and a bounded count
// so a provider retry of an already applied event is recognised without an
// external store.
//
//	seen := cache.NewLRU[string, struct{}](10_000, cache.WithTTL(7*24*time.Hour))
//	seen.Put("plink_123", struct{}{})
//	if seen.Contains("plink_123") { /* duplicate */ }
package cache
