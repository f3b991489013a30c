package response

import (
	"time"

	"pix_checkout/internal/domain/entities"
)

// ProxyChargeResponse is the provider wire format returned by the mediating proxy.
// Amount is in minor units.
type ProxyChargeResponse struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	PixCode   string `json:"pixCode"`
	PixQRCode string `json:"pixQrCode"`
	Amount    int64  `json:"amount"`
}

func FromChargedSession(s entities.PaymentSession) ProxyChargeResponse {
	return ProxyChargeResponse{
		ID:        s.ID,
		Status:    string(s.Status),
		PixCode:   s.PixCode,
		PixQRCode: s.PixQRCode,
		Amount:    s.Amount.MinorUnits(),
	}
}

type ProxyStatusResponse struct {
	ID         string     `json:"id"`
	Status     string     `json:"status"`
	Amount     *int64     `json:"amount,omitempty"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`
	RejectedAt *time.Time `json:"rejectedAt,omitempty"`
}

func FromStatusResult(id string, r entities.StatusResult) ProxyStatusResponse {
	out := ProxyStatusResponse{
		ID:         id,
		Status:     string(r.Status),
		ApprovedAt: r.ApprovedAt,
		RejectedAt: r.RejectedAt,
	}
	if r.Amount != nil {
		minor := r.Amount.MinorUnits()
		out.Amount = &minor
	}
	return out
}
