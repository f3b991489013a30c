package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/usecase/interfaces"
)

var errReportNotClaimable = errors.New("session not claimable for report")

const (
	// DefaultReportClaimLease is twice the default collector timeout.
	DefaultReportClaimLease  = 10 * time.Second
	reportBookkeepingTimeout = 5 * time.Second
)

// IConversionReporter sends the purchase conversion for an approved session at most once.
type IConversionReporter interface {
	Report(ctx context.Context, sessionID string) error
}

// ConversionReporter claims the session, dispatches to the primary sink and marks the
// session reported. Redundant sinks fire after the primary succeeded and never
// affect the outcome.
type ConversionReporter struct {
	repo      interfaces.ISessionRepository
	primary   interfaces.IConversionSink
	redundant []interfaces.IConversionSink
	currency  string
	lease     time.Duration
	now       func() time.Time
}

var _ IConversionReporter = (*ConversionReporter)(nil)

func NewConversionReporter(repo interfaces.ISessionRepository, currency string, primary interfaces.IConversionSink, redundant ...interfaces.IConversionSink) *ConversionReporter {
	if currency == "" {
		currency = "BRL"
	}
	return &ConversionReporter{
		repo:      repo,
		primary:   primary,
		redundant: redundant,
		currency:  currency,
		lease:     DefaultReportClaimLease,
		now:       time.Now,
	}
}

// WithClaimLease sets how long a report claim blocks other reporters. A claim left
// behind by a crashed reporter can be taken over once it is older than lease.
func (r *ConversionReporter) WithClaimLease(lease time.Duration) *ConversionReporter {
	if lease > 0 {
		r.lease = lease
	}
	return r
}

func (r *ConversionReporter) Report(ctx context.Context, sessionID string) error {
	if r.primary == nil {
		log.Printf("[session][analytics] report skipped session_id=%s reason=no_primary_sink", sessionID)
		return nil
	}

	now := r.now()
	s, err := r.repo.Update(ctx, sessionID, func(cur *entities.PaymentSession) error {
		if cur.Demo || !cur.ClaimReport(now, r.lease) {
			return errReportNotClaimable
		}
		return nil
	})
	if errors.Is(err, errReportNotClaimable) {
		log.Printf("[session][analytics] report skipped session_id=%s reason=not_claimable", sessionID)
		return nil
	}
	if err != nil {
		return err
	}
	if s.ID == "" {
		return ErrSessionNotFound
	}

	// The claim must be settled even when the caller's context ends mid-dispatch.
	bookCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), reportBookkeepingTimeout)
	defer cancel()

	event := entities.NewPurchaseEvent(s, r.currency, now)
	if err := r.primary.Dispatch(ctx, event); err != nil {
		log.Printf("[session][analytics] primary dispatch failed session_id=%s sink=%s err=%v", sessionID, r.primary.Name(), err)
		if _, relErr := r.repo.Update(bookCtx, sessionID, func(cur *entities.PaymentSession) error {
			cur.ReleaseReportClaim()
			return nil
		}); relErr != nil {
			log.Printf("[session][analytics] release claim failed session_id=%s err=%v", sessionID, relErr)
		}
		return fmt.Errorf("conversion sink %s: %w", r.primary.Name(), err)
	}

	_, err = r.repo.Update(bookCtx, sessionID, func(cur *entities.PaymentSession) error {
		return cur.MarkReported()
	})
	switch {
	case errors.Is(err, entities.ErrDoubleReportAttempt):
		log.Printf("[session][analytics] assertion failed: double report attempt session_id=%s", sessionID)
	case err != nil:
		log.Printf("[session][analytics] mark reported failed session_id=%s err=%v", sessionID, err)
	default:
		log.Printf("[session][analytics] reported session_id=%s sink=%s value=%s currency=%s", sessionID, r.primary.Name(), event.Value.StringFixed(2), event.Currency)
	}

	for _, sink := range r.redundant {
		if err := sink.Dispatch(ctx, event); err != nil {
			log.Printf("[session][analytics] redundant dispatch failed session_id=%s sink=%s err=%v", sessionID, sink.Name(), err)
		}
	}
	return nil
}
