package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

const (
	redisSessionKeyPrefix = "pix:session:"
	redisSessionIndexKey  = "pix:sessions:created"
	redisMaxTxAttempts    = 5
)

var ErrSessionUpdateContention = errors.New("session update lost to concurrent writers")

// SessionRedisRepository stores each session as a JSON document with a TTL slightly
// longer than the retention window. A sorted set indexed by creation time drives the
// sweep. Updates use WATCH so concurrent instances never overwrite each other.
type SessionRedisRepository struct {
	client    *redis.Client
	retention time.Duration
	now       func() time.Time
}

var _ interfaces.ISessionRepository = (*SessionRedisRepository)(nil)

func NewSessionRedisRepository(client *redis.Client, retention time.Duration) *SessionRedisRepository {
	if retention <= 0 {
		retention = entities.SessionRetentionWindow
	}
	return &SessionRedisRepository{client: client, retention: retention, now: time.Now}
}

func redisSessionKey(id string) string {
	return redisSessionKeyPrefix + id
}

func (r *SessionRedisRepository) ttlFor(s entities.PaymentSession) time.Duration {
	ttl := s.CreatedAt.Add(r.retention + retentionGrace).Sub(r.now())
	if ttl < retentionGrace {
		ttl = retentionGrace
	}
	return ttl
}

func (r *SessionRedisRepository) Put(ctx context.Context, s entities.PaymentSession) (entities.PaymentSession, error) {
	doc, err := encodeSession(s)
	if err != nil {
		return entities.PaymentSession{}, err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, redisSessionKey(s.ID), doc, r.ttlFor(s))
		pipe.ZAdd(ctx, redisSessionIndexKey, redis.Z{Score: float64(s.CreatedAt.UnixMilli()), Member: s.ID})
		return nil
	})
	if err != nil {
		return entities.PaymentSession{}, fmt.Errorf("redis put session %s: %w", s.ID, err)
	}
	return s, nil
}

func (r *SessionRedisRepository) Get(ctx context.Context, id string) (entities.PaymentSession, error) {
	raw, err := r.client.Get(ctx, redisSessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return entities.PaymentSession{}, nil
	}
	if err != nil {
		return entities.PaymentSession{}, err
	}

	s, err := decodeSession(raw)
	if err != nil {
		return entities.PaymentSession{}, err
	}
	if s.ExpiredForRetention(r.now(), r.retention) {
		return entities.PaymentSession{}, nil
	}
	return s, nil
}

func (r *SessionRedisRepository) Update(ctx context.Context, id string, mutate interfaces.SessionMutator) (entities.PaymentSession, error) {
	key := redisSessionKey(id)
	var updated entities.PaymentSession

	txf := func(tx *redis.Tx) error {
		updated = entities.PaymentSession{}

		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
		s, err := decodeSession(raw)
		if err != nil {
			return err
		}
		if s.ExpiredForRetention(r.now(), r.retention) {
			return nil
		}
		if err := mutate(&s); err != nil {
			return err
		}
		doc, err := encodeSession(s)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.SetArgs(ctx, key, doc, redis.SetArgs{KeepTTL: true})
			return nil
		})
		if err == nil {
			updated = s
		}
		return err
	}

	for i := 0; i < redisMaxTxAttempts; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return entities.PaymentSession{}, err
	}
	return entities.PaymentSession{}, fmt.Errorf("%w: id=%s", ErrSessionUpdateContention, id)
}

// SweepExpired deletes every indexed session created at or before now-retention.
// A delete that races an Update is retried on the next sweep.
func (r *SessionRedisRepository) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	cutoff := now.Add(-r.retention).UnixMilli()
	ids, err := r.client.ZRangeByScore(ctx, redisSessionIndexKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(cutoff, 10),
	}).Result()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, id := range ids {
		key := redisSessionKey(id)
		var del *redis.IntCmd
		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				del = pipe.Del(ctx, key)
				pipe.ZRem(ctx, redisSessionIndexKey, id)
				return nil
			})
			return err
		}, key)
		if errors.Is(err, redis.TxFailedErr) {
			log.Printf("[session][repository] sweep skipped busy session id=%s", id)
			continue
		}
		if err != nil {
			return removed, err
		}
		if del.Val() > 0 {
			removed++
		}
	}
	return removed, nil
}
