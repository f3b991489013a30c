package response

import (
	"time"

	"pix_checkout/internal/domain/entities"
)

// SessionResponse is the only external view of a PaymentSession.
type SessionResponse struct {
	ID           string     `json:"id"`
	PixCode      string     `json:"pixCode"`
	PixQRCode    string     `json:"pixQrCode"`
	Status       string     `json:"status"`
	ApprovedAt   *time.Time `json:"approvedAt,omitempty"`
	RejectedAt   *time.Time `json:"rejectedAt,omitempty"`
	ReportedFlag bool       `json:"reportedFlag"`
	Demo         bool       `json:"demo,omitempty"`
}

func FromPaymentSession(s entities.PaymentSession) SessionResponse {
	return SessionResponse{
		ID:           s.ID,
		PixCode:      s.PixCode,
		PixQRCode:    s.PixQRCode,
		Status:       string(s.Status),
		ApprovedAt:   s.ApprovedAt,
		RejectedAt:   s.RejectedAt,
		ReportedFlag: s.Reported,
		Demo:         s.Demo,
	}
}

type CountdownResponse struct {
	ID               string    `json:"id"`
	ExpiresAt        time.Time `json:"expiresAt"`
	RemainingSeconds int64     `json:"remainingSeconds"`
	Expired          bool      `json:"expired"`
}

func FromCountdown(c entities.Countdown) CountdownResponse {
	return CountdownResponse{
		ID:               c.SessionID,
		ExpiresAt:        c.ExpiresAt,
		RemainingSeconds: int64(c.Remaining / time.Second),
		Expired:          c.Expired,
	}
}
