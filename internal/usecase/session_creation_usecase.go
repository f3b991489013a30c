package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var ErrInvalidSessionInput = errors.New("invalid session input")

const (
	DemoPixCodePrefix = "DEMO-NOT-A-REAL-CHARGE"
	demoSessionPrefix = "demo_"
)

// CreateSessionInput is a checkout request. Amount is in major units.
type CreateSessionInput struct {
	Name        string
	Document    string
	Email       string
	Phone       string
	Amount      entities.Amount
	Description string

	// DirectCapability is false when the caller asked to skip the direct path.
	DirectCapability bool
}

// ISessionCreationUseCase creates PIX charges and stores them as payment sessions.
//
// Behavior:
//   - Strategies are tried in order (direct, then mediated), each at most once.
//   - Upstream, timeout and missing-credential failures fall through to the next
//     strategy. An incomplete provider response is returned immediately.
//   - When nothing could be charged for lack of credentials, a labelled demonstration
//     session is returned instead of an error.

type ISessionCreationUseCase interface {
	Create(ctx context.Context, in CreateSessionInput) (entities.PaymentSession, error)
}

type SessionCreationUseCase struct {
	repo       interfaces.ISessionRepository
	tracker    interfaces.ISessionTracker
	strategies []AttemptStrategy
	now        func() time.Time
}

var _ ISessionCreationUseCase = (*SessionCreationUseCase)(nil)

func NewSessionCreationUseCase(repo interfaces.ISessionRepository, tracker interfaces.ISessionTracker, paths GatewayPaths, productionLike bool) *SessionCreationUseCase {
	return &SessionCreationUseCase{
		repo:       repo,
		tracker:    tracker,
		strategies: BuildAttemptStrategies(paths, productionLike),
		now:        time.Now,
	}
}

func (in CreateSessionInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidSessionInput)
	}
	if !in.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidSessionInput)
	}
	return nil
}

func (u *SessionCreationUseCase) Create(ctx context.Context, in CreateSessionInput) (entities.PaymentSession, error) {
	log.Printf("[session][usecase] create start amount=%s direct_capability=%t", in.Amount, in.DirectCapability)
	if err := in.validate(); err != nil {
		log.Printf("[session][usecase] create rejected err=%v", err)
		return entities.PaymentSession{}, err
	}
	if u.repo == nil {
		return entities.PaymentSession{}, errors.New("session repository not configured")
	}

	req := entities.ChargeRequest{
		Customer: entities.CustomerSnapshot{
			Name:     strings.TrimSpace(in.Name),
			Document: strings.TrimSpace(in.Document),
			Email:    strings.TrimSpace(in.Email),
			Phone:    strings.TrimSpace(in.Phone),
		},
		Amount:      in.Amount,
		Description: strings.TrimSpace(in.Description),
	}

	var lastErr error
	for _, st := range applicableStrategies(u.strategies, AttemptOptions{DirectCapability: in.DirectCapability}) {
		log.Printf("[session][usecase] create attempt path=%s", st.Path)
		s, err := st.Gateway.CreateCharge(ctx, req)
		if err == nil {
			return u.store(ctx, s, st.Path)
		}
		lastErr = err
		if !entities.IsFallbackable(err) {
			log.Printf("[session][usecase] create failed path=%s err=%v", st.Path, err)
			return entities.PaymentSession{}, err
		}
		log.Printf("[session][usecase] create fallback path=%s err=%v", st.Path, err)
	}

	if lastErr == nil || errors.Is(lastErr, entities.ErrMissingCredentials) {
		return u.storeDemo(ctx, req)
	}
	log.Printf("[session][usecase] create exhausted strategies err=%v", lastErr)
	return entities.PaymentSession{}, lastErr
}

func (u *SessionCreationUseCase) store(ctx context.Context, s entities.PaymentSession, path CallPath) (entities.PaymentSession, error) {
	if s.Status == "" {
		s.Status = entities.SessionStatusPending
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = u.now().UTC()
	}
	saved, err := u.repo.Put(ctx, s)
	if err != nil {
		log.Printf("[session][usecase] store failed session_id=%s err=%v", s.ID, err)
		return entities.PaymentSession{}, err
	}
	if u.tracker != nil {
		u.tracker.Track(saved.ID)
	}
	log.Printf("[session][usecase] create success session_id=%s path=%s", saved.ID, path)
	return saved, nil
}

// storeDemo saves a session that is clearly not a real charge. It is never tracked.
func (u *SessionCreationUseCase) storeDemo(ctx context.Context, req entities.ChargeRequest) (entities.PaymentSession, error) {
	id := demoSessionPrefix + uuid.NewString()
	s := entities.PaymentSession{
		ID:          id,
		Status:      entities.SessionStatusPending,
		PixCode:     DemoPixCodePrefix + "-" + id,
		Customer:    req.Customer,
		Amount:      req.Amount.Normalized(),
		Description: req.Description,
		Demo:        true,
		CreatedAt:   u.now().UTC(),
	}
	saved, err := u.repo.Put(ctx, s)
	if err != nil {
		return entities.PaymentSession{}, err
	}
	log.Printf("[session][usecase] create demo session_id=%s reason=missing_credentials", saved.ID)
	return saved, nil
}
