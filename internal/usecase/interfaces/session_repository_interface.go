package interfaces

import (
	"context"
	"pix_checkout/internal/domain/entities"
	"time"
)

// SessionMutator edits a session in place inside ISessionRepository.Update.
// Returning an error aborts the write and is returned by Update.
type SessionMutator func(s *entities.PaymentSession) error

// ISessionRepository is the session store.
//
// Contract:
//   - Get and Update return a zero-value session (ID == "") on a miss.
//   - Update serializes read-modify-write per session id.
//   - SweepExpired is the only operation that deletes; sessions past the retention
//     window are misses for Get even before they are swept.
//   - Implementations may be shared across processes.

type ISessionRepository interface {
	Put(ctx context.Context, s entities.PaymentSession) (entities.PaymentSession, error)
	Get(ctx context.Context, id string) (entities.PaymentSession, error)
	Update(ctx context.Context, id string, mutate SessionMutator) (entities.PaymentSession, error)
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}
