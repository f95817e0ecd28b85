package ratelimit

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fiaisis/fia-auth/internal/config"
)

var loginAttemptScript = redis.NewScript(`
-- KEYS[1] = attempt counter key
-- ARGV[1] = limit (int)
-- ARGV[2] = window_ms (int)
--
-- Returns:
--  1 if the attempt is allowed
--  0 if the window's limit is exhausted
local current = redis.call('INCR', KEYS[1])
if current == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[2])
else
  -- Ensure TTL exists even if the key somehow lost it
  if redis.call('PTTL', KEYS[1]) < 0 then
    redis.call('PEXPIRE', KEYS[1], ARGV[2])
  end
end

if current > tonumber(ARGV[1]) then
  return 0
end
return 1
`)

// LoginLimiter caps login attempts per username in a fixed window, backed
// by redis so the cap holds across replicas.
type LoginLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	log    *slog.Logger
}

func NewLoginLimiter(rdb *redis.Client, cfg config.LoginConfig, log *slog.Logger) *LoginLimiter {
	return &LoginLimiter{
		rdb:    rdb,
		limit:  cfg.AttemptLimit,
		window: cfg.AttemptWindow,
		log:    log,
	}
}

// Allow records one attempt for username and reports whether it is within
// the cap. Limiter failures fail open: a redis outage must not take login
// down with it.
func (l *LoginLimiter) Allow(ctx context.Context, username string) bool {
	key := attemptKey(username)
	res, err := loginAttemptScript.Run(ctx, l.rdb, []string{key}, l.limit, l.window.Milliseconds()).Int()
	if err != nil {
		l.log.Warn("login limiter unavailable, allowing attempt", "err", err)
		return true
	}
	return res == 1
}

func attemptKey(username string) string {
	return "login_attempts:" + strings.ToLower(strings.TrimSpace(username))
}
