// Package identitycache implements the identity cache port on Redis. It maps
// canonical phone numbers to account identifiers so repeated resolutions skip
// the variant IN-query against the accounts table.
package identitycache

import (
	"context"
	"errors"
	"time"

	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "identity:phone:"

// RedisIdentityCache caches phone-to-account resolutions with a TTL.
// Entries expire rather than being kept coherent: the repository remains the
// source of truth and a stale entry is corrected on the next Invalidate.
type RedisIdentityCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisIdentityCache creates a cache over an existing Redis client.
func NewRedisIdentityCache(client *redis.Client, ttl time.Duration) *RedisIdentityCache {
	return &RedisIdentityCache{client: client, ttl: ttl}
}

// Get returns the cached account id for a canonical phone number.
// Returns errs.ErrObjectNotFound on a miss.
func (c *RedisIdentityCache) Get(ctx context.Context, canonicalPhone string) (kernel.UUID, error) {
	if canonicalPhone == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError("phone")
	}

	raw, err := c.client.Get(ctx, keyPrefix+canonicalPhone).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return kernel.UUID{}, errs.NewObjectNotFoundError("identity", canonicalPhone)
		}
		return kernel.UUID{}, err
	}

	return kernel.UUIDFromString(raw)
}

// Set stores the account id for a canonical phone number with the cache TTL.
func (c *RedisIdentityCache) Set(ctx context.Context, canonicalPhone string, accountID kernel.UUID) error {
	if canonicalPhone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	if err := accountID.Validate(); err != nil {
		return err
	}

	return c.client.Set(ctx, keyPrefix+canonicalPhone, accountID.String(), c.ttl).Err()
}

// Invalidate removes a cached entry. Removing an absent entry is not an error.
func (c *RedisIdentityCache) Invalidate(ctx context.Context, canonicalPhone string) error {
	if canonicalPhone == "" {
		return errs.NewValueIsRequiredError("phone")
	}

	return c.client.Del(ctx, keyPrefix+canonicalPhone).Err()
}
