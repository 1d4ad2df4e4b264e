// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"krib/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionCacheClient holds active booking sessions.
	SessionCacheClient *redis.Client
	// AvailabilityCacheClient holds per-contractor month availability windows.
	AvailabilityCacheClient *redis.Client
)

// InitSessionCache initializes the Redis client for booking session storage.
func InitSessionCache() {
	SessionCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := SessionCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Sessions): %v", err)
	}
}

// GetSessionCacheClient returns the booking session cache client.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		InitSessionCache()
	}
	return SessionCacheClient
}

// InitAvailabilityCache initializes the Redis client for availability caching.
func InitAvailabilityCache() {
	AvailabilityCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAvailabilityDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := AvailabilityCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Availability): %v", err)
	}
}

// GetAvailabilityCacheClient returns the availability cache client.
func GetAvailabilityCacheClient() *redis.Client {
	if AvailabilityCacheClient == nil {
		InitAvailabilityCache()
	}
	return AvailabilityCacheClient
}
