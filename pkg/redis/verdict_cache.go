package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when no verdict is cached for a key value.
var ErrCacheMiss = errors.New("verdict cache miss")

const verdictKeyPrefix = "keymint:verdict:"

// VerdictCache remembers terminal key statuses (revoked, out_of_date) so that
// repeated validation of a dead key skips the store. Terminal statuses never
// transition back to active, which is what makes this cache safe: a cached
// entry can never go stale. Active keys must not be cached.
type VerdictCache struct {
	ttl time.Duration
}

// NewVerdictCache creates a verdict cache. A zero ttl means entries do not
// expire.
func NewVerdictCache(ttl time.Duration) *VerdictCache {
	return &VerdictCache{ttl: ttl}
}

// Get returns the cached terminal status for a key value.
func (c *VerdictCache) Get(ctx context.Context, keyValue string) (string, error) {
	status, err := Get(ctx, verdictKeyPrefix+keyValue)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCacheMiss
		}
		return "", err
	}
	return status, nil
}

// Put records a terminal status for a key value.
func (c *VerdictCache) Put(ctx context.Context, keyValue, status string) error {
	return Set(ctx, verdictKeyPrefix+keyValue, status, c.ttl)
}
