package utils

import (
	"context"
	"log"
	"time"

	"chatia/config"

	"github.com/go-redis/redis/v8"
)

// DialogCacheClient is the dedicated client for dialog session state.
var DialogCacheClient *redis.Client

// InitDialogCache initializes the Redis client for dialog state (using DB from AppConfig).
func InitDialogCache() {
	DialogCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDialogDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := DialogCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Dialog Cache): %v", err)
	}
}

// GetDialogCacheClient returns the Redis client for dialog state.
func GetDialogCacheClient() *redis.Client {
	if DialogCacheClient == nil {
		InitDialogCache()
	}
	return DialogCacheClient
}
