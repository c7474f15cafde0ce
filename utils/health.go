package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     *bool     `json:"redis,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Healthy reports whether every configured dependency answered its last probe.
func (h HealthStatus) Healthy() bool {
	return h.Mongo && (h.Redis == nil || *h.Redis)
}

// HealthMonitor probes Mongo and, when configured, Redis on an interval and
// keeps the latest snapshot in memory.
type HealthMonitor struct {
	mongo    *mongo.Client
	redis    *redis.Client
	interval time.Duration

	mu      sync.RWMutex
	current HealthStatus
}

func NewHealthMonitor(mongoClient *mongo.Client, redisClient *redis.Client, interval time.Duration) *HealthMonitor {
	return &HealthMonitor{
		mongo:    mongoClient,
		redis:    redisClient,
		interval: interval,
	}
}

// Status returns the latest stored snapshot.
func (m *HealthMonitor) Status() HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Start runs an immediate probe and then one per interval until ctx is done.
func (m *HealthMonitor) Start(ctx context.Context) {
	m.check(ctx)
	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.check(ctx)
			}
		}
	}()
}

func (m *HealthMonitor) check(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	status := HealthStatus{CheckedAt: time.Now()}
	if m.mongo != nil {
		status.Mongo = m.mongo.Ping(ctx, nil) == nil
	}
	if m.redis != nil {
		ok := m.redis.Ping(ctx).Err() == nil
		status.Redis = &ok
	}

	m.mu.Lock()
	m.current = status
	m.mu.Unlock()
}
