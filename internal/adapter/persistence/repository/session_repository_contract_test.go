package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

var errAlreadyClaimed = errors.New("already claimed")

func newTestSession(id string, createdAt time.Time) entities.PaymentSession {
	return entities.PaymentSession{
		ID:        id,
		Status:    entities.SessionStatusPending,
		PixCode:   "00020126580014br.gov.bcb.pix0136" + id,
		PixQRCode: "https://qr.example/" + id,
		Customer: entities.CustomerSnapshot{
			Name:     "Maria Silva",
			Document: "52998224725",
			Email:    "maria@example.com",
			Phone:    "11987654321",
		},
		Amount:      entities.NewMajorAmount(decimal.RequireFromString("49.90")),
		Description: "Plano mensal",
		CreatedAt:   createdAt.UTC(),
	}
}

// runSessionRepositoryContract checks the behavior every session store must share.
// setNow pins the clock the store uses for retention checks.
func runSessionRepositoryContract(t *testing.T, repo interfaces.ISessionRepository, setNow func(time.Time)) {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	setNow(now)

	t.Run("get miss returns zero value", func(t *testing.T) {
		got, err := repo.Get(ctx, "missing")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got.ID != "" {
			t.Fatalf("expected zero session, got %+v", got)
		}
	})

	t.Run("put then get", func(t *testing.T) {
		s := newTestSession("sess-put", now.Add(-time.Minute))
		if _, err := repo.Put(ctx, s); err != nil {
			t.Fatalf("put: %v", err)
		}
		got, err := repo.Get(ctx, s.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.ID != s.ID || got.Status != entities.SessionStatusPending || got.PixCode != s.PixCode {
			t.Fatalf("unexpected session: %+v", got)
		}
		if got.Amount.MinorUnits() != 4990 || got.Customer.Document != "52998224725" {
			t.Fatalf("unexpected payload: %+v", got)
		}
		if !got.CreatedAt.Equal(s.CreatedAt) {
			t.Fatalf("created_at mismatch: %v vs %v", got.CreatedAt, s.CreatedAt)
		}
	})

	t.Run("update applies mutation", func(t *testing.T) {
		s := newTestSession("sess-update", now.Add(-time.Minute))
		if _, err := repo.Put(ctx, s); err != nil {
			t.Fatalf("put: %v", err)
		}
		updated, err := repo.Update(ctx, s.ID, func(cur *entities.PaymentSession) error {
			_, err := cur.ApplyStatus(entities.SessionStatusApproved, now)
			return err
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Status != entities.SessionStatusApproved || updated.ApprovedAt == nil {
			t.Fatalf("unexpected updated session: %+v", updated)
		}
		got, _ := repo.Get(ctx, s.ID)
		if got.Status != entities.SessionStatusApproved || got.ApprovedAt == nil || !got.ApprovedAt.Equal(now) {
			t.Fatalf("update not persisted: %+v", got)
		}
	})

	t.Run("mutator error aborts write", func(t *testing.T) {
		s := newTestSession("sess-abort", now.Add(-time.Minute))
		if _, err := repo.Put(ctx, s); err != nil {
			t.Fatalf("put: %v", err)
		}
		boom := errors.New("boom")
		_, err := repo.Update(ctx, s.ID, func(cur *entities.PaymentSession) error {
			cur.PixCode = "changed"
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
		got, _ := repo.Get(ctx, s.ID)
		if got.PixCode != s.PixCode {
			t.Fatalf("aborted mutation was persisted: %+v", got)
		}
	})

	t.Run("update miss does not call mutator", func(t *testing.T) {
		called := false
		got, err := repo.Update(ctx, "missing", func(*entities.PaymentSession) error {
			called = true
			return nil
		})
		if err != nil || got.ID != "" || called {
			t.Fatalf("expected silent miss, got %+v err=%v called=%v", got, err, called)
		}
	})

	t.Run("single report claim under concurrency", func(t *testing.T) {
		s := newTestSession("sess-claim", now.Add(-time.Minute))
		if _, err := s.ApplyStatus(entities.SessionStatusApproved, now); err != nil {
			t.Fatal(err)
		}
		if _, err := repo.Put(ctx, s); err != nil {
			t.Fatalf("put: %v", err)
		}

		const workers = 4
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			claimed int
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.Update(ctx, s.ID, func(cur *entities.PaymentSession) error {
					if !cur.ClaimReport(now, 0) {
						return errAlreadyClaimed
					}
					return nil
				})
				if err == nil {
					mu.Lock()
					claimed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		if claimed != 1 {
			t.Fatalf("expected exactly one claim, got %d", claimed)
		}
	})

	t.Run("retention hides and sweep removes", func(t *testing.T) {
		old := newTestSession("sess-old", now.Add(-2*time.Hour))
		fresh := newTestSession("sess-fresh", now.Add(-10*time.Minute))
		for _, s := range []entities.PaymentSession{old, fresh} {
			if _, err := repo.Put(ctx, s); err != nil {
				t.Fatalf("put %s: %v", s.ID, err)
			}
		}

		if got, _ := repo.Get(ctx, old.ID); got.ID != "" {
			t.Fatalf("expired session must be a miss, got %+v", got)
		}

		removed, err := repo.SweepExpired(ctx, now)
		if err != nil {
			t.Fatalf("sweep: %v", err)
		}
		if removed != 1 {
			t.Fatalf("expected 1 removed, got %d", removed)
		}
		if got, _ := repo.Get(ctx, fresh.ID); got.ID != fresh.ID {
			t.Fatalf("fresh session was swept")
		}

		setNow(now.Add(2 * time.Hour))
		defer setNow(now)
		if got, _ := repo.Get(ctx, fresh.ID); got.ID != "" {
			t.Fatalf("session past retention must be a miss")
		}
	})
}
