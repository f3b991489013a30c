package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"pix_checkout/internal/domain/entities"
)

func TestSessionMemoryRepository(t *testing.T) {
	repo := NewSessionMemoryRepository(time.Hour)
	runSessionRepositoryContract(t, repo, func(now time.Time) {
		repo.now = func() time.Time { return now }
	})
}

func TestSessionMemoryRepository_UpdatesAreSerialized(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	repo := NewSessionMemoryRepository(time.Hour)
	s := newTestSession("sess-counter", now)
	if _, err := repo.Put(ctx, s); err != nil {
		t.Fatal(err)
	}

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Update(ctx, s.ID, func(cur *entities.PaymentSession) error {
				cur.Description += "x"
				return nil
			})
		}()
	}
	wg.Wait()

	got, _ := repo.Get(ctx, s.ID)
	if len(got.Description) != len(s.Description)+writers {
		t.Fatalf("lost updates: got %d extra chars", len(got.Description)-len(s.Description))
	}
}

func TestSessionMemoryRepository_SweepWaitsForUpdate(t *testing.T) {
	ctx := context.Background()
	created := time.Now().Add(-2 * time.Hour)
	repo := NewSessionMemoryRepository(time.Hour)
	repo.now = func() time.Time { return created.Add(30 * time.Minute) }

	s := newTestSession("sess-busy", created)
	if _, err := repo.Put(ctx, s); err != nil {
		t.Fatal(err)
	}

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = repo.Update(ctx, s.ID, func(cur *entities.PaymentSession) error {
			close(entered)
			<-release
			cur.Description = "updated"
			return nil
		})
	}()
	<-entered

	swept := make(chan int)
	go func() {
		n, _ := repo.SweepExpired(ctx, created.Add(2*time.Hour))
		swept <- n
	}()

	select {
	case <-swept:
		t.Fatalf("sweep must wait for the in-flight update")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	<-done
	if n := <-swept; n != 1 {
		t.Fatalf("expected 1 removed after update, got %d", n)
	}
	if repo.Len() != 0 {
		t.Fatalf("expected empty store")
	}
}
