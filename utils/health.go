package utils

import (
	"context"
	"sync"
	"time"

	"chatia/config"

	"github.com/go-redis/redis/v8"
)

// HealthStatus represents current status of external dependencies.
type HealthStatus struct {
	Redis          bool      `json:"redis"`
	MailConfigured bool      `json:"mailConfigured"`
	CheckedAt      time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic health checks and updates in-memory state.
func StartHealthMonitor(redisClient *redis.Client) {
	check := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		redisHealthy := redisClient.Ping(ctx).Err() == nil

		mu.Lock()
		currentHealth = HealthStatus{
			Redis:          redisHealthy,
			MailConfigured: config.AppConfig.ClientNotificationEmail != "",
			CheckedAt:      time.Now(),
		}
		mu.Unlock()
	}

	check()
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			check()
		}
	}()
}
