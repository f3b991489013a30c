package entities

import (
	"errors"
	"testing"
	"time"
)

func TestPaymentSession_ApplyStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("pending to approved sets approvedAt only", func(t *testing.T) {
		s := PaymentSession{ID: "s-1", Status: SessionStatusPending}
		changed, err := s.ApplyStatus(SessionStatusApproved, now)
		if err != nil || !changed {
			t.Fatalf("expected transition, got changed=%v err=%v", changed, err)
		}
		if s.ApprovedAt == nil || !s.ApprovedAt.Equal(now) {
			t.Fatalf("expected approvedAt=%v, got %v", now, s.ApprovedAt)
		}
		if s.RejectedAt != nil {
			t.Fatalf("rejectedAt must stay nil")
		}
	})

	t.Run("pending to rejected sets rejectedAt only", func(t *testing.T) {
		s := PaymentSession{ID: "s-1", Status: SessionStatusPending}
		if _, err := s.ApplyStatus(SessionStatusRejected, now); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if s.RejectedAt == nil || s.ApprovedAt != nil {
			t.Fatalf("unexpected timestamps: approved=%v rejected=%v", s.ApprovedAt, s.RejectedAt)
		}
	})

	t.Run("same status is an idempotent no-op", func(t *testing.T) {
		s := PaymentSession{ID: "s-1", Status: SessionStatusPending}
		_, _ = s.ApplyStatus(SessionStatusApproved, now)
		first := *s.ApprovedAt

		changed, err := s.ApplyStatus(SessionStatusApproved, now.Add(time.Minute))
		if err != nil || changed {
			t.Fatalf("expected no-op, got changed=%v err=%v", changed, err)
		}
		if !s.ApprovedAt.Equal(first) {
			t.Fatalf("approvedAt rewritten: %v", s.ApprovedAt)
		}
	})

	cases := []struct {
		name string
		from SessionStatus
		to   SessionStatus
	}{
		{"approved to pending", SessionStatusApproved, SessionStatusPending},
		{"approved to rejected", SessionStatusApproved, SessionStatusRejected},
		{"rejected to approved", SessionStatusRejected, SessionStatusApproved},
		{"rejected to pending", SessionStatusRejected, SessionStatusPending},
		{"pending to unknown", SessionStatusPending, SessionStatus("PAID")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := PaymentSession{ID: "s-1", Status: tc.from}
			changed, err := s.ApplyStatus(tc.to, now)
			if !errors.Is(err, ErrInvalidStatusTransition) || changed {
				t.Fatalf("expected ErrInvalidStatusTransition, got changed=%v err=%v", changed, err)
			}
			if s.Status != tc.from {
				t.Fatalf("status mutated to %s", s.Status)
			}
		})
	}
}

func TestPaymentSession_ReportFlag(t *testing.T) {
	now := time.Now().UTC()

	t.Run("claim requires approved status", func(t *testing.T) {
		s := PaymentSession{Status: SessionStatusPending}
		if s.ClaimReport(now, 0) {
			t.Fatalf("pending session must not be claimable")
		}
	})

	t.Run("claim is exclusive until released", func(t *testing.T) {
		s := PaymentSession{Status: SessionStatusApproved}
		if !s.ClaimReport(now, 0) {
			t.Fatalf("expected first claim to succeed")
		}
		if s.ClaimReport(now, 0) {
			t.Fatalf("second claim must fail")
		}
		s.ReleaseReportClaim()
		if !s.ClaimReport(now, 0) {
			t.Fatalf("claim after release must succeed")
		}
	})

	t.Run("stale claim can be taken over", func(t *testing.T) {
		s := PaymentSession{Status: SessionStatusApproved}
		if !s.ClaimReport(now, 10*time.Second) {
			t.Fatalf("expected first claim to succeed")
		}
		if s.ClaimReport(now.Add(9*time.Second), 10*time.Second) {
			t.Fatalf("claim inside the lease must fail")
		}
		if !s.ReportClaimActive(now.Add(9*time.Second), 10*time.Second) {
			t.Fatalf("claim must be active inside the lease")
		}
		if !s.ClaimReport(now.Add(10*time.Second), 10*time.Second) {
			t.Fatalf("claim past the lease must succeed")
		}
		if !s.ReportClaimedAt.Equal(now.Add(10 * time.Second)) {
			t.Fatalf("takeover must refresh the claim time, got %v", s.ReportClaimedAt)
		}
	})

	t.Run("mark reported only once", func(t *testing.T) {
		s := PaymentSession{Status: SessionStatusApproved}
		if err := s.MarkReported(); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if err := s.MarkReported(); !errors.Is(err, ErrDoubleReportAttempt) {
			t.Fatalf("expected ErrDoubleReportAttempt, got %v", err)
		}
		s.ReleaseReportClaim()
		if !s.Reported {
			t.Fatalf("reported flag went back to false")
		}
		if s.ClaimReport(now, 0) {
			t.Fatalf("reported session must not be claimable")
		}
	})
}

func TestPaymentSession_CountdownAndRetention(t *testing.T) {
	created := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s := PaymentSession{ID: "s-1", Status: SessionStatusPending, CreatedAt: created}

	c := s.Countdown(created.Add(10*time.Minute), SessionExpiryCountdown)
	if c.Expired || c.Remaining != 20*time.Minute {
		t.Fatalf("unexpected countdown: %+v", c)
	}

	c = s.Countdown(created.Add(45*time.Minute), SessionExpiryCountdown)
	if !c.Expired || c.Remaining != 0 {
		t.Fatalf("expected expired countdown: %+v", c)
	}
	if s.Status != SessionStatusPending {
		t.Fatalf("countdown must not change status")
	}

	if s.ExpiredForRetention(created.Add(59*time.Minute), SessionRetentionWindow) {
		t.Fatalf("session evicted too early")
	}
	if !s.ExpiredForRetention(created.Add(time.Hour), SessionRetentionWindow) {
		t.Fatalf("session should be past retention")
	}
}
