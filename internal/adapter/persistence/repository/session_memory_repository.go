package repository

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/usecase/interfaces"
)

// SessionMemoryRepository keeps sessions in process memory.
//
// Sessions do not survive a restart and are not shared between instances.
// Read-modify-write is serialized per id through a fixed set of lock stripes.
type SessionMemoryRepository struct {
	mu        sync.RWMutex
	sessions  map[string]entities.PaymentSession
	stripes   [lockStripes]sync.Mutex
	retention time.Duration
	now       func() time.Time
}

const lockStripes = 64

var _ interfaces.ISessionRepository = (*SessionMemoryRepository)(nil)

func NewSessionMemoryRepository(retention time.Duration) *SessionMemoryRepository {
	if retention <= 0 {
		retention = entities.SessionRetentionWindow
	}
	return &SessionMemoryRepository{
		sessions:  make(map[string]entities.PaymentSession),
		retention: retention,
		now:       time.Now,
	}
}

func (r *SessionMemoryRepository) keyLock(id string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &r.stripes[h.Sum32()%lockStripes]
}

func (r *SessionMemoryRepository) load(id string) (entities.PaymentSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok || s.ExpiredForRetention(r.now(), r.retention) {
		return entities.PaymentSession{}, false
	}
	return s, true
}

func (r *SessionMemoryRepository) Put(_ context.Context, s entities.PaymentSession) (entities.PaymentSession, error) {
	l := r.keyLock(s.ID)
	l.Lock()
	defer l.Unlock()

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s, nil
}

func (r *SessionMemoryRepository) Get(_ context.Context, id string) (entities.PaymentSession, error) {
	s, _ := r.load(id)
	return s, nil
}

func (r *SessionMemoryRepository) Update(_ context.Context, id string, mutate interfaces.SessionMutator) (entities.PaymentSession, error) {
	l := r.keyLock(id)
	l.Lock()
	defer l.Unlock()

	s, ok := r.load(id)
	if !ok {
		return entities.PaymentSession{}, nil
	}
	if err := mutate(&s); err != nil {
		return entities.PaymentSession{}, err
	}

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()
	return s, nil
}

// SweepExpired removes sessions past retention. It takes each session's lock, so a
// session is never removed in the middle of an Update.
func (r *SessionMemoryRepository) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	r.mu.RLock()
	var candidates []string
	for id, s := range r.sessions {
		if s.ExpiredForRetention(now, r.retention) {
			candidates = append(candidates, id)
		}
	}
	r.mu.RUnlock()

	removed := 0
	for _, id := range candidates {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		l := r.keyLock(id)
		l.Lock()
		r.mu.Lock()
		if s, ok := r.sessions[id]; ok && s.ExpiredForRetention(now, r.retention) {
			delete(r.sessions, id)
			removed++
		}
		r.mu.Unlock()
		l.Unlock()
	}
	return removed, nil
}

func (r *SessionMemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
