package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// SlidingWindow is a multi-window sliding rate limiter over a Store.
// It holds no per-key state of its own; construct one per process (or
// per test) and share it freely.
type SlidingWindow struct {
	store Store
	rules map[string]RuleConfig
}

// NewSlidingWindow creates a limiter with the given rule table.
func NewSlidingWindow(store Store, rules ...RuleConfig) (*SlidingWindow, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: no rules configured", ErrUnknownRule)
	}

	table := make(map[string]RuleConfig, len(rules))
	for _, rule := range rules {
		if len(rule.Windows) == 0 {
			return nil, fmt.Errorf("%w: rule %q", ErrNoWindows, rule.Name)
		}
		for _, w := range rule.Windows {
			if w.Limit <= 0 {
				return nil, fmt.Errorf("%w: rule %q window %q", ErrInvalidLimit, rule.Name, w.Name)
			}
			if w.Duration <= 0 {
				return nil, fmt.Errorf("%w: rule %q window %q", ErrInvalidWindow, rule.Name, w.Name)
			}
		}
		if _, exists := table[rule.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateRule, rule.Name)
		}
		table[rule.Name] = rule
	}

	return &SlidingWindow{store: store, rules: table}, nil
}

// Rule returns the configuration for a named rule.
func (l *SlidingWindow) Rule(name string) (RuleConfig, bool) {
	rule, ok := l.rules[name]
	return rule, ok
}

// Allow checks every window of the named rule for key in one atomic
// pass. On admission one slot is consumed in each window; on rejection
// nothing is recorded.
func (l *SlidingWindow) Allow(ctx context.Context, rule, key string) (*Result, error) {
	cfg, storeKey, err := l.resolve(rule, key)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	allowed, states, err := l.store.Take(ctx, storeKey, cfg.Windows, now)
	if err != nil {
		return nil, err
	}

	if !allowed {
		return violatedResult(states, now), nil
	}
	return tightestResult(states, now), nil
}

// Status reports the current allowance for key without consuming a slot.
func (l *SlidingWindow) Status(ctx context.Context, rule, key string) (*Result, error) {
	cfg, storeKey, err := l.resolve(rule, key)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	states, err := l.store.Peek(ctx, storeKey, cfg.Windows, now)
	if err != nil {
		return nil, err
	}

	for _, s := range states {
		if s.Count >= s.Window.Limit {
			return violatedResult(states, now), nil
		}
	}
	return tightestResult(states, now), nil
}

// Reset clears all recorded state for key under the named rule.
func (l *SlidingWindow) Reset(ctx context.Context, rule, key string) error {
	cfg, storeKey, err := l.resolve(rule, key)
	if err != nil {
		return err
	}
	return l.store.Reset(ctx, storeKey, cfg.Windows)
}

func (l *SlidingWindow) resolve(rule, key string) (RuleConfig, string, error) {
	if key == "" {
		return RuleConfig{}, "", ErrKeyRequired
	}
	cfg, ok := l.rules[rule]
	if !ok {
		return RuleConfig{}, "", fmt.Errorf("%w: %q", ErrUnknownRule, rule)
	}
	// Namespace per rule so the same client key tracked under two rules
	// never shares history.
	return cfg, rule + "|" + key, nil
}

// violatedResult picks the violated window with the smallest
// remaining-to-limit ratio (ties: shortest duration) and reports it with
// zero remaining and the reset of its oldest entry.
func violatedResult(states []WindowState, now time.Time) *Result {
	var pick *WindowState
	var pickRatio float64

	for i := range states {
		s := &states[i]
		if s.Count < s.Window.Limit {
			continue
		}
		ratio := float64(s.Window.Limit-s.Count) / float64(s.Window.Limit)
		if pick == nil || ratio < pickRatio ||
			(ratio == pickRatio && s.Window.Duration < pick.Window.Duration) {
			pick = s
			pickRatio = ratio
		}
	}
	if pick == nil {
		// Callers only reach here with at least one violated window.
		pick = &states[0]
	}

	return &Result{
		Allowed:   false,
		Window:    pick.Window.Name,
		Limit:     pick.Window.Limit,
		Remaining: 0,
		ResetAt:   resetAt(pick, now),
	}
}

// tightestResult reports the window with the least relative headroom.
func tightestResult(states []WindowState, now time.Time) *Result {
	pick := &states[0]
	pickRatio := headroom(pick)

	for i := 1; i < len(states); i++ {
		s := &states[i]
		ratio := headroom(s)
		if ratio < pickRatio ||
			(ratio == pickRatio && s.Window.Duration < pick.Window.Duration) {
			pick = s
			pickRatio = ratio
		}
	}

	remaining := pick.Window.Limit - pick.Count
	if remaining < 0 {
		remaining = 0
	}
	return &Result{
		Allowed:   true,
		Window:    pick.Window.Name,
		Limit:     pick.Window.Limit,
		Remaining: remaining,
		ResetAt:   resetAt(pick, now),
	}
}

func headroom(s *WindowState) float64 {
	return float64(s.Window.Limit-s.Count) / float64(s.Window.Limit)
}

func resetAt(s *WindowState, now time.Time) time.Time {
	if s.Oldest.IsZero() {
		return now.Add(s.Window.Duration)
	}
	return s.Oldest.Add(s.Window.Duration)
}
