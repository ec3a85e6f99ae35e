package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"labtrack-backend/internal/config"
)

// Listing cache keys. Status is derived from wall-clock time, so the TTL is
// kept short to bound how stale an Active/Timeout label can be.
const (
	DashboardLogsKey = "sessions:dashboard"
	PrintLogsKey     = "sessions:print"

	ListingTTL = 30 * time.Second
)

var client *redis.Client

// Init initializes the Redis connection. The service degrades gracefully
// without Redis: every cache helper is a no-op when the client is nil.
func Init(cfg *config.Config) error {
	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidateSessionCaches clears both listing caches.
// Called when: login, logout, force logout, clear logs
func InvalidateSessionCaches(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, DashboardLogsKey, PrintLogsKey)
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
