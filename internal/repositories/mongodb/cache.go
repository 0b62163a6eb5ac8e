package mongodb

import (
	"context"
	"time"
)

// CacheService is the read-through cache the repositories use. It is
// satisfied by pkg/cache.RedisCache; repositories tolerate a nil cache.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) (int64, error)
}
