package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "store-rating:ratelimit"

var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RateLimitRepository counts hits per key in fixed windows shared by every
// API instance pointed at the same Redis.
type RateLimitRepository struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRateLimitRepository(client *redis.Client, limit int, window time.Duration) (*RateLimitRepository, error) {
	if client == nil {
		return nil, errors.New("rate limiter requires a redis client")
	}
	if limit <= 0 {
		return nil, errors.New("rate limiter requires a positive limit")
	}
	if window < time.Millisecond {
		return nil, errors.New("rate limiter window must be at least 1ms")
	}

	return &RateLimitRepository{
		client: client,
		prefix: defaultKeyPrefix,
		limit:  limit,
		window: window,
		now:    time.Now,
	}, nil
}

// Allow records a hit for key and reports whether it is still within quota,
// together with the hits left in the current window.
func (r *RateLimitRepository) Allow(ctx context.Context, key string) (bool, int, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		key = "unknown"
	}

	windowMs := r.window.Milliseconds()
	slot := r.now().UTC().UnixMilli() / windowMs
	redisKey := fmt.Sprintf("%s:%s:%d", r.prefix, key, slot)

	count, err := fixedWindowScript.Run(ctx, r.client, []string{redisKey}, windowMs).Int64()
	if err != nil {
		return false, 0, fmt.Errorf("failed to count request: %w", err)
	}

	remaining := int64(r.limit) - count
	if remaining < 0 {
		remaining = 0
	}

	return count <= int64(r.limit), int(remaining), nil
}

func (r *RateLimitRepository) Limit() int {
	return r.limit
}
