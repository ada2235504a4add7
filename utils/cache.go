// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"gymslot/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client (gym lookups, list caching).
	CacheClient *redis.Client
	// GrantCacheClient is the dedicated client for corporate grant tokens.
	GrantCacheClient *redis.Client
)

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitGrantCache initializes the Redis client for corporate grant tokens.
func InitGrantCache() {
	GrantCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisGrantDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := GrantCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Grant Cache): %v", err)
	}
}

// GetGrantCacheClient returns the Redis client for corporate grant tokens.
func GetGrantCacheClient() *redis.Client {
	if GrantCacheClient == nil {
		InitGrantCache()
	}
	return GrantCacheClient
}
