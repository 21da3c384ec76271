package ratelimit

import (
	"context"
	"time"
)

// Window is one limit dimension of a rule: at most Limit admissions per
// trailing Duration.
type Window struct {
	// Name identifies the window inside its rule ("burst", "minute", ...).
	Name string

	// Limit is the maximum number of admitted requests per Duration.
	Limit int

	// Duration is the trailing window size.
	Duration time.Duration
}

// Burst builds a short spike-protection window.
func Burst(limit int, duration time.Duration) Window {
	return Window{Name: "burst", Limit: limit, Duration: duration}
}

// PerMinute builds a one-minute window.
func PerMinute(limit int) Window {
	return Window{Name: "minute", Limit: limit, Duration: time.Minute}
}

// PerHour builds a one-hour window.
func PerHour(limit int) Window {
	return Window{Name: "hour", Limit: limit, Duration: time.Hour}
}

// PerDay builds a 24-hour window.
func PerDay(limit int) Window {
	return Window{Name: "day", Limit: limit, Duration: 24 * time.Hour}
}

// RuleConfig is a named bundle of windows applied to one class of
// requests (e.g. stricter limits on authentication endpoints).
type RuleConfig struct {
	Name    string
	Windows []Window
}

// DefaultRules mirrors the standard rule table: a general default plus
// strict, relaxed, auth and public profiles.
func DefaultRules() []RuleConfig {
	return []RuleConfig{
		{Name: "default", Windows: []Window{Burst(10, 10*time.Second), PerMinute(60), PerHour(1000), PerDay(10000)}},
		{Name: "strict", Windows: []Window{Burst(5, 10*time.Second), PerMinute(30), PerHour(500), PerDay(5000)}},
		{Name: "relaxed", Windows: []Window{Burst(20, 10*time.Second), PerMinute(120), PerHour(2000), PerDay(20000)}},
		{Name: "auth", Windows: []Window{Burst(3, time.Minute), PerMinute(10), PerHour(100), PerDay(500)}},
		{Name: "public", Windows: []Window{Burst(5, 10*time.Second), PerMinute(30), PerHour(300), PerDay(1000)}},
	}
}

// Result is the outcome of a rate limit check, reflecting the tightest
// window evaluated (the violated one on rejection).
type Result struct {
	// Allowed indicates whether the request was admitted.
	Allowed bool

	// Window names the window the rest of the result describes.
	Window string

	// Limit is that window's maximum.
	Limit int

	// Remaining is the allowance left in that window.
	Remaining int

	// ResetAt is when the window's oldest recorded request expires.
	ResetAt time.Time
}

// RetryAfter returns how long to wait before the next request could be
// admitted. Zero when the request was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	return time.Until(r.ResetAt)
}

// WindowState is a store's view of one window for one key: the admission
// count after pruning and the oldest surviving timestamp (zero when the
// window is empty).
type WindowState struct {
	Window Window
	Count  int
	Oldest time.Time
}

// Limiter is the rate limiting contract consumed by middleware and the
// guard facade.
type Limiter interface {
	// Allow checks every window of the named rule for key and, if all
	// pass, consumes one slot in each.
	Allow(ctx context.Context, rule, key string) (*Result, error)

	// Status reports the current state without consuming anything.
	Status(ctx context.Context, rule, key string) (*Result, error)

	// Reset clears all recorded state for key under the named rule.
	Reset(ctx context.Context, rule, key string) error
}

// Store holds per-key window histories. Implementations must make Take
// atomic per key: concurrent requests for one key may never both observe
// count == limit-1 and both be admitted. Distinct keys must not
// serialize against each other.
type Store interface {
	// Take prunes entries older than now minus each window's duration,
	// checks every window, and records now in all of them only when
	// every window passes. Returned states carry post-record counts on
	// admission and pre-record counts on rejection.
	Take(ctx context.Context, key string, windows []Window, now time.Time) (allowed bool, states []WindowState, err error)

	// Peek returns pruned counts without recording.
	Peek(ctx context.Context, key string, windows []Window, now time.Time) ([]WindowState, error)

	// Reset removes all state for key.
	Reset(ctx context.Context, key string, windows []Window) error

	// Close releases background resources held by the store.
	Close() error
}
