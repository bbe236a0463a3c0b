package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/coursebox/content-api/utils/cache"
	"github.com/coursebox/content-api/utils/response"
)

const (
	maxFailedAttempts = 5
	lockoutWindow     = 15 * time.Minute
)

// BruteForceProtection throttles repeated failed logins per client IP using Redis
type BruteForceProtection struct {
	redisCache *cache.RedisCache
}

// NewBruteForceProtection creates a new brute force protection instance
func NewBruteForceProtection(redisCache *cache.RedisCache) *BruteForceProtection {
	return &BruteForceProtection{
		redisCache: redisCache,
	}
}

func attemptKey(ip string) string {
	return fmt.Sprintf("auth:failed:%s", ip)
}

// CheckLockout rejects requests from IPs that exceeded the failure budget
func (b *BruteForceProtection) CheckLockout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()
		key := attemptKey(c.IP())

		val, err := b.redisCache.Get(ctx, key)
		if err != nil && err != cache.ErrNotFound {
			// Redis trouble must not block logins
			return c.Next()
		}

		attempts, _ := strconv.Atoi(val)
		if attempts >= maxFailedAttempts {
			return response.Error(c, fiber.StatusTooManyRequests,
				"Too many failed attempts. Please try again later.")
		}

		return c.Next()
	}
}

// RecordFailedAttempt bumps the failure counter for an IP
func (b *BruteForceProtection) RecordFailedAttempt(c *fiber.Ctx) {
	ctx := c.Context()
	key := attemptKey(c.IP())

	count, err := b.redisCache.Increment(ctx, key)
	if err != nil {
		return
	}
	if count == 1 {
		_ = b.redisCache.Expire(ctx, key, lockoutWindow)
	}
}

// RecordSuccessfulAttempt clears the failure counter for an IP
func (b *BruteForceProtection) RecordSuccessfulAttempt(c *fiber.Ctx) {
	_ = b.redisCache.Delete(c.Context(), attemptKey(c.IP()))
}
