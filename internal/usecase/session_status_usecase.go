package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/usecase/interfaces"
)

var ErrSessionNotFound = errors.New("payment session not found")

// ReconcileOutcome describes one reconciliation pass.
type ReconcileOutcome struct {
	Session      entities.PaymentSession
	Checked      bool
	Transitioned bool
}

// ISessionStatusUseCase reads sessions and reconciles them against the provider.
//
// Terminal and demonstration sessions never cause a network call. A PENDING to
// APPROVED transition triggers the conversion reporter.

type ISessionStatusUseCase interface {
	GetByID(ctx context.Context, id string) (entities.PaymentSession, error)
	Recheck(ctx context.Context, id string) (entities.PaymentSession, error)
	Countdown(ctx context.Context, id string) (entities.Countdown, error)
	Reconcile(ctx context.Context, id string) (ReconcileOutcome, error)
}

type SessionStatusUseCase struct {
	repo       interfaces.ISessionRepository
	strategies []AttemptStrategy
	reporter   IConversionReporter
	countdown  time.Duration
	now        func() time.Time
}

var _ ISessionStatusUseCase = (*SessionStatusUseCase)(nil)

func NewSessionStatusUseCase(repo interfaces.ISessionRepository, paths GatewayPaths, productionLike bool, reporter IConversionReporter, countdown time.Duration) *SessionStatusUseCase {
	if countdown <= 0 {
		countdown = entities.SessionExpiryCountdown
	}
	return &SessionStatusUseCase{
		repo:       repo,
		strategies: BuildAttemptStrategies(paths, productionLike),
		reporter:   reporter,
		countdown:  countdown,
		now:        time.Now,
	}
}

func (u *SessionStatusUseCase) GetByID(ctx context.Context, id string) (entities.PaymentSession, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.PaymentSession{}, ErrSessionNotFound
	}
	s, err := u.repo.Get(ctx, id)
	if err != nil {
		log.Printf("[session][usecase] get failed session_id=%s err=%v", id, err)
		return entities.PaymentSession{}, err
	}
	if s.ID == "" {
		return entities.PaymentSession{}, ErrSessionNotFound
	}
	return s, nil
}

// Recheck forces one reconciliation pass and returns the resulting session.
func (u *SessionStatusUseCase) Recheck(ctx context.Context, id string) (entities.PaymentSession, error) {
	out, err := u.Reconcile(ctx, id)
	if err != nil {
		return entities.PaymentSession{}, err
	}
	return out.Session, nil
}

// Countdown is computed locally from CreatedAt and never changes Status.
func (u *SessionStatusUseCase) Countdown(ctx context.Context, id string) (entities.Countdown, error) {
	s, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Countdown{}, err
	}
	return s.Countdown(u.now(), u.countdown), nil
}

func (u *SessionStatusUseCase) Reconcile(ctx context.Context, id string) (ReconcileOutcome, error) {
	s, err := u.GetByID(ctx, id)
	if err != nil {
		return ReconcileOutcome{}, err
	}

	if s.Demo {
		return ReconcileOutcome{Session: s}, nil
	}
	if s.Status.IsTerminal() {
		// A failed report leaves an approved, unreported session behind. The reporter
		// skips it while another claim is still live.
		if s.Status == entities.SessionStatusApproved && !s.Reported {
			u.report(ctx, s.ID)
			if fresh, err := u.repo.Get(ctx, s.ID); err == nil && fresh.ID != "" {
				s = fresh
			}
		}
		return ReconcileOutcome{Session: s}, nil
	}

	res, err := u.checkStatus(ctx, s.ID)
	if err != nil {
		log.Printf("[session][usecase] reconcile check failed session_id=%s err=%v", s.ID, err)
		return ReconcileOutcome{Session: s}, err
	}
	provided := res.ResolvedAmount(s.Amount)
	if provided != nil && s.Amount.IsPositive() && provided.MinorUnits() != s.Amount.MinorUnits() {
		log.Printf("[session][usecase] reconcile amount mismatch session_id=%s stored=%s provider=%s unit_inferred=%t", s.ID, s.Amount, provided, res.AmountUnitInferred)
	}
	if res.Status == entities.SessionStatusPending {
		return ReconcileOutcome{Session: s, Checked: true}, nil
	}

	at := u.now()
	switch {
	case res.Status == entities.SessionStatusApproved && res.ApprovedAt != nil:
		at = *res.ApprovedAt
	case res.Status == entities.SessionStatusRejected && res.RejectedAt != nil:
		at = *res.RejectedAt
	}

	transitioned := false
	updated, err := u.repo.Update(ctx, s.ID, func(cur *entities.PaymentSession) error {
		changed, err := cur.ApplyStatus(res.Status, at)
		transitioned = changed
		// A guessed unit never replaces a known amount.
		if changed && provided != nil && provided.IsPositive() && (!res.AmountUnitInferred || !cur.Amount.IsPositive()) {
			cur.Amount = provided.Normalized()
		}
		return err
	})
	if errors.Is(err, entities.ErrInvalidStatusTransition) {
		log.Printf("[session][usecase] reconcile ignored transition session_id=%s to=%s", s.ID, res.Status)
		current, getErr := u.GetByID(ctx, s.ID)
		if getErr != nil {
			return ReconcileOutcome{Checked: true}, getErr
		}
		return ReconcileOutcome{Session: current, Checked: true}, nil
	}
	if err != nil {
		return ReconcileOutcome{Session: s, Checked: true}, err
	}
	if updated.ID == "" {
		log.Printf("[session][usecase] reconcile session evicted session_id=%s", s.ID)
		return ReconcileOutcome{Checked: true}, ErrSessionNotFound
	}

	if transitioned {
		log.Printf("[session][usecase] reconcile transition session_id=%s status=%s", s.ID, updated.Status)
		if updated.Status == entities.SessionStatusApproved {
			u.report(ctx, s.ID)
			if fresh, err := u.repo.Get(ctx, s.ID); err == nil && fresh.ID != "" {
				updated = fresh
			}
		}
	}
	return ReconcileOutcome{Session: updated, Checked: true, Transitioned: transitioned}, nil
}

func (u *SessionStatusUseCase) report(ctx context.Context, id string) {
	if u.reporter == nil {
		return
	}
	if err := u.reporter.Report(ctx, id); err != nil {
		log.Printf("[session][usecase] conversion report failed session_id=%s err=%v", id, err)
	}
}

// checkStatus walks the same strategy list as creation. The server holds the direct
// credentials, so the direct path is eligible whenever it is configured.
func (u *SessionStatusUseCase) checkStatus(ctx context.Context, id string) (entities.StatusResult, error) {
	var lastErr error
	for _, st := range applicableStrategies(u.strategies, AttemptOptions{DirectCapability: true}) {
		res, err := st.Gateway.CheckStatus(ctx, id)
		if err == nil {
			return res, nil
		}
		lastErr = err
		if !entities.IsFallbackable(err) {
			return entities.StatusResult{}, err
		}
		log.Printf("[session][usecase] status fallback path=%s session_id=%s err=%v", st.Path, id, err)
	}
	if lastErr == nil {
		lastErr = entities.NewGatewayError(entities.ErrMissingCredentials, "check_status", 0, errors.New("no gateway configured"))
	}
	return entities.StatusResult{}, lastErr
}
