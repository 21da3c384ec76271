// Package ratelimit implements a sliding-window rate limiter with burst
// protection and per-client isolation.
//
// A named rule bundles several independent windows — typically a short
// burst window layered over per-minute, per-hour and per-day windows —
// and every window is checked in the same atomic pass. A client can be
// rejected by the burst window while well under its per-minute budget,
// and vice versa. When several windows are violated at once, the
// reported violation is the one with the smallest remaining-to-limit
// ratio (ties go to the shortest window) so the client receives the most
// actionable retry hint.
//
// Rejected requests never consume a slot: only admitted requests are
// recorded, so a client hammering a closed window cannot push its own
// reset time further out.
//
// State lives behind the Store interface. MemoryStore is the default:
// a sharded in-process map with per-key locking, so distinct keys never
// serialize against each other, plus a background sweep that evicts idle
// keys. RedisStore plugs in a shared store for multi-process
// deployments.
//
//	limiter, err := ratelimit.NewSlidingWindow(ratelimit.NewMemoryStore(), ratelimit.DefaultRules()...)
//	result, err := limiter.Allow(ctx, "auth", "ip:203.0.113.7")
//	if !result.Allowed {
//	    // reject with result.RetryAfter()
//	}
package ratelimit
