package otp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// expiredGrace keeps an entry around past its logical expiry so Verify can
// report ErrExpired instead of ErrNotFound. Redis reaps the key afterwards.
const expiredGrace = time.Hour

// redisEntry is the stored wire shape. Expiry is epoch seconds so the verify
// script can compare it without parsing timestamps.
type redisEntry struct {
	Code      string `json:"code"`
	ExpiresAt int64  `json:"expires_at"`
}

// verifyScript runs the whole verify decision in one atomic step: expiry is
// checked before the code so an expired entry always reads as expired, the
// entry is deleted on match so two racing verifies cannot both consume the
// same code, and a mismatch against a live entry leaves it in place.
// KEYS[1] is the destination key, ARGV[1] the candidate code, ARGV[2] the
// current epoch second.
var verifyScript = redis.NewScript(`
local v = redis.call('GET', KEYS[1])
if not v then
  return 'missing'
end
local entry = cjson.decode(v)
if tonumber(ARGV[2]) > entry['expires_at'] then
  redis.call('DEL', KEYS[1])
  return 'expired'
end
if entry['code'] ~= ARGV[1] then
  return 'mismatch'
end
redis.call('DEL', KEYS[1])
return 'ok'
`)

// RedisStore persists codes in redis, one key per canonical destination,
// with native per-key TTL.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{
		client: client,
		prefix: "otp:",
		ttl:    ttl,
		now:    time.Now,
	}
}

// SetClock replaces the store's time source. Tests only.
func (s *RedisStore) SetClock(now func() time.Time) {
	s.now = now
}

func (s *RedisStore) key(destination string) string {
	return s.prefix + destination
}

func (s *RedisStore) Issue(ctx context.Context, destination string) (string, error) {
	code, err := GenerateCode()
	if err != nil {
		return "", err
	}

	entry := redisEntry{
		Code:      code,
		ExpiresAt: s.now().Add(s.ttl).Unix(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return "", fmt.Errorf("otp: failed to marshal entry: %w", err)
	}

	// SET overwrites any prior entry for the destination unconditionally.
	if err := s.client.Set(ctx, s.key(destination), data, s.ttl+expiredGrace).Err(); err != nil {
		return "", fmt.Errorf("otp: failed to store entry: %w", err)
	}
	return code, nil
}

func (s *RedisStore) Verify(ctx context.Context, destination, code string) error {
	res, err := verifyScript.Run(ctx, s.client,
		[]string{s.key(destination)}, code, s.now().Unix()).Result()
	if err != nil {
		return fmt.Errorf("otp: verify script failed: %w", err)
	}

	switch res {
	case "missing":
		return ErrNotFound
	case "expired":
		return ErrExpired
	case "mismatch":
		return ErrMismatch
	case "ok":
		return nil
	default:
		return fmt.Errorf("otp: unexpected verify result %v", res)
	}
}
