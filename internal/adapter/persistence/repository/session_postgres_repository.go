package repository

import (
	"context"
	"errors"
	"time"

	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	createSessionsTable = `create table if not exists payment_sessions (
			id         text primary key,
			status     text not null,
			document   jsonb not null,
			created_at timestamptz not null,
			updated_at timestamptz not null default now()
		);
		create index if not exists payment_sessions_created_at_idx on payment_sessions (created_at);`

	upsertSessionQuery = `insert into payment_sessions (id, status, document, created_at, updated_at)
			values ($1, $2, $3, $4, now())
			on conflict (id) do update
			set status = excluded.status, document = excluded.document,
			    created_at = excluded.created_at, updated_at = now()`

	selectSessionQuery = `select document from payment_sessions where id = $1 and created_at > $2`

	selectSessionForUpdateQuery = `select document from payment_sessions where id = $1 and created_at > $2 for update`

	updateSessionQuery = `update payment_sessions set status = $2, document = $3, updated_at = now() where id = $1`

	sweepSessionsQuery = `delete from payment_sessions where created_at <= $1`
)

// SessionPostgresRepository keeps sessions in a single postgres table. Updates lock
// the row with SELECT ... FOR UPDATE, and the sweep's DELETE waits on those locks.
type SessionPostgresRepository struct {
	pool      *pgxpool.Pool
	retention time.Duration
	now       func() time.Time
}

var _ interfaces.ISessionRepository = (*SessionPostgresRepository)(nil)

func NewSessionPostgresRepository(pool *pgxpool.Pool, retention time.Duration) *SessionPostgresRepository {
	if retention <= 0 {
		retention = entities.SessionRetentionWindow
	}
	return &SessionPostgresRepository{pool: pool, retention: retention, now: time.Now}
}

func (r *SessionPostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, createSessionsTable)
	return err
}

func (r *SessionPostgresRepository) cutoff() time.Time {
	return r.now().Add(-r.retention)
}

func (r *SessionPostgresRepository) Put(ctx context.Context, s entities.PaymentSession) (entities.PaymentSession, error) {
	doc, err := encodeSession(s)
	if err != nil {
		return entities.PaymentSession{}, err
	}
	if _, err := r.pool.Exec(ctx, upsertSessionQuery, s.ID, string(s.Status), string(doc), s.CreatedAt.UTC()); err != nil {
		return entities.PaymentSession{}, err
	}
	return s, nil
}

func (r *SessionPostgresRepository) Get(ctx context.Context, id string) (entities.PaymentSession, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, selectSessionQuery, id, r.cutoff()).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.PaymentSession{}, nil
	}
	if err != nil {
		return entities.PaymentSession{}, err
	}
	return decodeSession(raw)
}

func (r *SessionPostgresRepository) Update(ctx context.Context, id string, mutate interfaces.SessionMutator) (entities.PaymentSession, error) {
	var updated entities.PaymentSession

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var raw []byte
		err := tx.QueryRow(ctx, selectSessionForUpdateQuery, id, r.cutoff()).Scan(&raw)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}

		s, err := decodeSession(raw)
		if err != nil {
			return err
		}
		if err := mutate(&s); err != nil {
			return err
		}
		doc, err := encodeSession(s)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, updateSessionQuery, id, string(s.Status), string(doc)); err != nil {
			return err
		}
		updated = s
		return nil
	})
	if err != nil {
		return entities.PaymentSession{}, err
	}
	return updated, nil
}

func (r *SessionPostgresRepository) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	tag, err := r.pool.Exec(ctx, sweepSessionsQuery, now.Add(-r.retention))
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
