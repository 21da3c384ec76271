package ratelimit_test

import (
	"context"
	"errors"
	"time"

	"github.com/vijaygvdr/VitaCheckLabs-BE/pkg/ratelimit"
)

// failingStore simulates a broken storage backend.
type failingStore struct{}

var errStoreDown = errors.New("store down")

func (failingStore) Take(context.Context, string, []ratelimit.Window, time.Time) (bool, []ratelimit.WindowState, error) {
	return false, nil, errStoreDown
}

func (failingStore) Peek(context.Context, string, []ratelimit.Window, time.Time) ([]ratelimit.WindowState, error) {
	return nil, errStoreDown
}

func (failingStore) Reset(context.Context, string, []ratelimit.Window) error { return errStoreDown }

func (failingStore) Close() error { return nil }
