package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore is a Store over Redis sorted sets, for deployments that
// shard limiter state across processes. One sorted set per (key, window)
// holds admission timestamps as millisecond scores; the check-and-record
// pass runs as a single Lua script, so per-key atomicity holds across
// processes.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
}

// takeScript prunes, counts and conditionally records across all of a
// key's windows in one atomic evaluation.
//
// KEYS:  one sorted set per window
// ARGV:  now-ms, member, then per window: limit, duration-ms
// Reply: {allowed, count1, oldest1, count2, oldest2, ...}
var takeScript = redis.NewScript(`
local now = tonumber(ARGV[1])
local member = ARGV[2]
local allowed = 1
local counts = {}
local oldest = {}

for i = 1, #KEYS do
  local limit = tonumber(ARGV[2*i+1])
  local dur = tonumber(ARGV[2*i+2])
  redis.call('ZREMRANGEBYSCORE', KEYS[i], '-inf', now - dur)
  local c = redis.call('ZCARD', KEYS[i])
  counts[i] = c
  local o = redis.call('ZRANGE', KEYS[i], 0, 0, 'WITHSCORES')
  if o[2] then oldest[i] = tonumber(o[2]) else oldest[i] = 0 end
  if c >= limit then allowed = 0 end
end

if allowed == 1 then
  for i = 1, #KEYS do
    local dur = tonumber(ARGV[2*i+2])
    redis.call('ZADD', KEYS[i], now, member)
    redis.call('PEXPIRE', KEYS[i], dur)
    counts[i] = counts[i] + 1
    if oldest[i] == 0 then oldest[i] = now end
  end
end

local reply = {allowed}
for i = 1, #KEYS do
  reply[2*i] = counts[i]
  reply[2*i+1] = oldest[i]
end
return reply
`)

var peekScript = redis.NewScript(`
local now = tonumber(ARGV[1])
local reply = {}
for i = 1, #KEYS do
  local dur = tonumber(ARGV[i+1])
  redis.call('ZREMRANGEBYSCORE', KEYS[i], '-inf', now - dur)
  reply[2*i-1] = redis.call('ZCARD', KEYS[i])
  local o = redis.call('ZRANGE', KEYS[i], 0, 0, 'WITHSCORES')
  if o[2] then reply[2*i] = tonumber(o[2]) else reply[2*i] = 0 end
end
return reply
`)

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix sets the Redis key namespace (default "ratelimit").
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.keyPrefix = prefix
		}
	}
}

// NewRedisStore creates a Store backed by the given Redis client. The
// client's lifecycle belongs to the caller; Close here is a no-op.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) (*RedisStore, error) {
	if client == nil {
		return nil, ErrStoreRequired
	}
	s := &RedisStore{client: client, keyPrefix: "ratelimit"}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Take implements Store.
func (s *RedisStore) Take(ctx context.Context, key string, windows []Window, now time.Time) (bool, []WindowState, error) {
	keys := s.windowKeys(key, windows)
	argv := make([]any, 0, 2+2*len(windows))
	argv = append(argv, now.UnixMilli(), uuid.NewString())
	for _, w := range windows {
		argv = append(argv, w.Limit, w.Duration.Milliseconds())
	}

	raw, err := takeScript.Run(ctx, s.client, keys, argv...).Slice()
	if err != nil {
		return false, nil, fmt.Errorf("ratelimit: redis take: %w", err)
	}
	if len(raw) != 1+2*len(windows) {
		return false, nil, fmt.Errorf("ratelimit: redis take: unexpected reply length %d", len(raw))
	}

	allowed := toInt64(raw[0]) == 1
	states := make([]WindowState, len(windows))
	for i, w := range windows {
		states[i] = WindowState{
			Window: w,
			Count:  int(toInt64(raw[2*i+1])),
			Oldest: msToTime(toInt64(raw[2*i+2])),
		}
	}
	return allowed, states, nil
}

// Peek implements Store.
func (s *RedisStore) Peek(ctx context.Context, key string, windows []Window, now time.Time) ([]WindowState, error) {
	keys := s.windowKeys(key, windows)
	argv := make([]any, 0, 1+len(windows))
	argv = append(argv, now.UnixMilli())
	for _, w := range windows {
		argv = append(argv, w.Duration.Milliseconds())
	}

	raw, err := peekScript.Run(ctx, s.client, keys, argv...).Slice()
	if err != nil {
		return nil, fmt.Errorf("ratelimit: redis peek: %w", err)
	}
	if len(raw) != 2*len(windows) {
		return nil, fmt.Errorf("ratelimit: redis peek: unexpected reply length %d", len(raw))
	}

	states := make([]WindowState, len(windows))
	for i, w := range windows {
		states[i] = WindowState{
			Window: w,
			Count:  int(toInt64(raw[2*i])),
			Oldest: msToTime(toInt64(raw[2*i+1])),
		}
	}
	return states, nil
}

// Reset implements Store.
func (s *RedisStore) Reset(ctx context.Context, key string, windows []Window) error {
	if err := s.client.Del(ctx, s.windowKeys(key, windows)...).Err(); err != nil {
		return fmt.Errorf("ratelimit: redis reset: %w", err)
	}
	return nil
}

// Close implements Store. The Redis client is owned by the caller.
func (s *RedisStore) Close() error { return nil }

func (s *RedisStore) windowKeys(key string, windows []Window) []string {
	keys := make([]string, len(windows))
	for i, w := range windows {
		keys[i] = s.keyPrefix + ":" + key + ":" + w.Name
	}
	return keys
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case string:
		parsed, _ := strconv.ParseInt(n, 10, 64)
		return parsed
	default:
		return 0
	}
}

func msToTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
