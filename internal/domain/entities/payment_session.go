package entities

import (
	"errors"
	"time"
)

var (
	ErrInvalidStatusTransition = errors.New("invalid session status transition")
	ErrDoubleReportAttempt     = errors.New("session conversion already reported")
)

const (
	// SessionRetentionWindow is how long a session stays in the store after CreatedAt.
	SessionRetentionWindow = time.Hour
	// SessionExpiryCountdown is the user-facing charge expiry. It never changes Status.
	SessionExpiryCountdown = 30 * time.Minute
)

// SessionStatus is the provider-observed state of a PIX charge.
// PENDING is initial; APPROVED and REJECTED are terminal.

type SessionStatus string

const (
	SessionStatusPending  SessionStatus = "PENDING"
	SessionStatusApproved SessionStatus = "APPROVED"
	SessionStatusRejected SessionStatus = "REJECTED"
)

func (s SessionStatus) IsTerminal() bool {
	return s == SessionStatusApproved || s == SessionStatusRejected
}

func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionStatusPending, SessionStatusApproved, SessionStatusRejected:
		return true
	}
	return false
}

// CustomerSnapshot is a point-in-time copy of the payer taken at charge creation.
// Synthetic* flags mark values generated locally; they were never verified.
type CustomerSnapshot struct {
	Name              string `json:"name"`
	Document          string `json:"document"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	SyntheticDocument bool   `json:"synthetic_document"`
	SyntheticContact  bool   `json:"synthetic_contact"`
}

// PaymentSession is the lifecycle record of one PIX charge.
//
// Mutation rules:
//   - Status/ApprovedAt/RejectedAt change only through ApplyStatus.
//   - Reported changes only through MarkReported (false -> true).
//   - PixCode/PixQRCode are set at creation and never touched again.

type PaymentSession struct {
	ID          string
	Status      SessionStatus
	PixCode     string
	PixQRCode   string
	Customer    CustomerSnapshot
	Amount      Amount
	Description string
	Demo        bool

	CreatedAt  time.Time
	ApprovedAt *time.Time
	RejectedAt *time.Time

	Reported        bool
	ReportClaimedAt *time.Time
}

// ApplyStatus moves a PENDING session into a terminal state. Re-applying the current
// status is a no-op. It reports whether a transition happened.
func (s *PaymentSession) ApplyStatus(next SessionStatus, at time.Time) (bool, error) {
	if !next.IsValid() {
		return false, ErrInvalidStatusTransition
	}
	if next == s.Status {
		return false, nil
	}
	if s.Status.IsTerminal() || next == SessionStatusPending {
		return false, ErrInvalidStatusTransition
	}

	at = at.UTC()
	s.Status = next
	switch next {
	case SessionStatusApproved:
		s.ApprovedAt = &at
	case SessionStatusRejected:
		s.RejectedAt = &at
	}
	return true, nil
}

// ClaimReport marks the session as having a report in flight. Only an approved,
// unreported session whose claim is free or older than lease can be claimed.
// A lease <= 0 never expires a claim.
func (s *PaymentSession) ClaimReport(now time.Time, lease time.Duration) bool {
	if s.Status != SessionStatusApproved || s.Reported || s.ReportClaimActive(now, lease) {
		return false
	}
	now = now.UTC()
	s.ReportClaimedAt = &now
	return true
}

// ReportClaimActive is true while a report claim is held and not older than lease.
func (s PaymentSession) ReportClaimActive(now time.Time, lease time.Duration) bool {
	if s.ReportClaimedAt == nil {
		return false
	}
	return lease <= 0 || now.Sub(*s.ReportClaimedAt) < lease
}

// ReleaseReportClaim drops an in-flight claim after a failed primary dispatch.
func (s *PaymentSession) ReleaseReportClaim() {
	if !s.Reported {
		s.ReportClaimedAt = nil
	}
}

func (s *PaymentSession) MarkReported() error {
	if s.Reported {
		return ErrDoubleReportAttempt
	}
	s.Reported = true
	return nil
}

// ExpiredForRetention reports whether the session is past the retention window at now.
func (s PaymentSession) ExpiredForRetention(now time.Time, retention time.Duration) bool {
	return !s.CreatedAt.Add(retention).After(now)
}

// Countdown is the purely local charge-expiry view.
type Countdown struct {
	SessionID string
	ExpiresAt time.Time
	Remaining time.Duration
	Expired   bool
}

func (s PaymentSession) Countdown(now time.Time, window time.Duration) Countdown {
	expiresAt := s.CreatedAt.Add(window)
	remaining := expiresAt.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	return Countdown{
		SessionID: s.ID,
		ExpiresAt: expiresAt,
		Remaining: remaining,
		Expired:   remaining == 0,
	}
}
