package ratelimit

import "errors"

var (
	ErrStoreRequired = errors.New("store is required")
	ErrInvalidLimit  = errors.New("window limit must be positive")
	ErrInvalidWindow = errors.New("window duration must be positive")
	ErrDuplicateRule = errors.New("duplicate rule name")
	ErrNoWindows     = errors.New("rule must declare at least one window")
	ErrUnknownRule   = errors.New("unknown rate limit rule")
	ErrKeyRequired   = errors.New("key is required")
)
