package engine

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ClaimGuard serializes execution cycles per (definition, scheduled date).
// Acquire returns false when another caller already holds the claim; the
// losing caller is rejected with Conflict instead of producing duplicate
// downstream artifacts.
type ClaimGuard interface {
	Acquire(ctx context.Context, rwoID string, scheduledDate time.Time) (bool, error)
	Release(ctx context.Context, rwoID string, scheduledDate time.Time) error
}

func claimKey(rwoID string, scheduledDate time.Time) string {
	return "exec:claim:" + rwoID + ":" + scheduledDate.UTC().Format("2006-01-02")
}

type redisClaimGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func (g *redisClaimGuard) Acquire(ctx context.Context, rwoID string, scheduledDate time.Time) (bool, error) {
	return g.client.SetNX(ctx, claimKey(rwoID, scheduledDate), "1", g.ttl).Result()
}

func (g *redisClaimGuard) Release(ctx context.Context, rwoID string, scheduledDate time.Time) error {
	return g.client.Del(ctx, claimKey(rwoID, scheduledDate)).Err()
}

type memoryClaimGuard struct {
	mu     sync.Mutex
	held   map[string]time.Time
	ttl    time.Duration
	nextGC time.Time
}

func newMemoryClaimGuard(ttl time.Duration) *memoryClaimGuard {
	now := time.Now()
	return &memoryClaimGuard{
		held:   make(map[string]time.Time),
		ttl:    ttl,
		nextGC: now.Add(ttl),
	}
}

func (g *memoryClaimGuard) Acquire(_ context.Context, rwoID string, scheduledDate time.Time) (bool, error) {
	key := claimKey(rwoID, scheduledDate)
	now := time.Now()

	g.mu.Lock()
	defer g.mu.Unlock()

	if exp, ok := g.held[key]; ok && exp.After(now) {
		return false, nil
	}

	g.held[key] = now.Add(g.ttl)
	if now.After(g.nextGC) {
		for k, exp := range g.held {
			if exp.Before(now) {
				delete(g.held, k)
			}
		}
		g.nextGC = now.Add(g.ttl)
	}

	return true, nil
}

func (g *memoryClaimGuard) Release(_ context.Context, rwoID string, scheduledDate time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.held, claimKey(rwoID, scheduledDate))
	return nil
}

// NewClaimGuard builds a Redis claim guard and falls back to in-memory on
// connection failure. The in-memory guard only protects a single process.
func NewClaimGuard(addr, pass string, db int, ttl time.Duration) (ClaimGuard, error) {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if addr == "" {
		return newMemoryClaimGuard(ttl), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pass,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return newMemoryClaimGuard(ttl), err
	}

	return &redisClaimGuard{client: client, ttl: ttl}, nil
}
