package repository

import (
	"context"
	"testing"
	"time"

	"pix_checkout/internal/domain/entities"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := testcontainers.Run(ctx, "redis:7-alpine",
		testcontainers.WithExposedPorts("6379/tcp"),
		testcontainers.WithWaitStrategy(wait.ForListeningPort("6379/tcp").WithStartupTimeout(30*time.Second)),
	)
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Fatalf("start redis: %v", err)
	}

	addr, err := ctr.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("redis endpoint: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestSessionRedisRepository(t *testing.T) {
	client := startRedis(t)
	repo := NewSessionRedisRepository(client, time.Hour)
	runSessionRepositoryContract(t, repo, func(now time.Time) {
		repo.now = func() time.Time { return now }
	})
}

func TestSessionRedisRepository_KeepsTTLOnUpdate(t *testing.T) {
	ctx := context.Background()
	client := startRedis(t)
	repo := NewSessionRedisRepository(client, time.Hour)

	s := newTestSession("sess-ttl", time.Now())
	if _, err := repo.Put(ctx, s); err != nil {
		t.Fatal(err)
	}
	before, err := client.TTL(ctx, redisSessionKey(s.ID)).Result()
	if err != nil || before <= 0 {
		t.Fatalf("expected ttl, got %v err=%v", before, err)
	}
	if _, err := repo.Update(ctx, s.ID, func(cur *entities.PaymentSession) error {
		cur.Description = "changed"
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	after, err := client.TTL(ctx, redisSessionKey(s.ID)).Result()
	if err != nil || after <= 0 || after > before {
		t.Fatalf("update must keep ttl: before=%v after=%v err=%v", before, after, err)
	}
}
