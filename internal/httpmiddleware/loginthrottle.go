package httpmiddleware

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle counts failed login attempts per client IP in Redis with a
// fixed expiry window. It fails open: when Redis is unreachable the login form
// keeps working and only the brute-force protection is lost.
type LoginThrottle struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewLoginThrottle creates the throttle.
func NewLoginThrottle(client *redis.Client, limit int, window time.Duration) *LoginThrottle {
	if limit <= 0 {
		limit = 5
	}
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &LoginThrottle{client: client, limit: limit, window: window}
}

// Blocked reports whether the IP has exhausted its failed attempts.
func (t *LoginThrottle) Blocked(ctx context.Context, ip string) bool {
	if t == nil || t.client == nil {
		return false
	}
	n, err := t.client.Get(ctx, t.key(ip)).Int()
	if err != nil {
		if err != redis.Nil {
			log.Printf("login throttle read failed: %v", err)
		}
		return false
	}
	return n >= t.limit
}

// RecordFailure bumps the failed-attempt counter for the IP.
func (t *LoginThrottle) RecordFailure(ctx context.Context, ip string) {
	if t == nil || t.client == nil {
		return
	}
	key := t.key(ip)
	pipe := t.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, t.window)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("login throttle write failed: %v", err)
		return
	}
	_ = incr
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, ip string) {
	if t == nil || t.client == nil {
		return
	}
	if err := t.client.Del(ctx, t.key(ip)).Err(); err != nil {
		log.Printf("login throttle reset failed: %v", err)
	}
}

func (t *LoginThrottle) key(ip string) string {
	return "minikadimlar:login:" + ip
}
