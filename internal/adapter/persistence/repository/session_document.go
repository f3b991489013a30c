package repository

import (
	"time"

	"pix_checkout/internal/domain/entities"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// retentionGrace keeps a swept-but-not-yet-deleted record around a little longer than
// the retention window so backend TTLs never race the sweeper.
const retentionGrace = 5 * time.Minute

// sessionDocument is the serialized form shared by the redis and postgres stores.
type sessionDocument struct {
	ID              string                    `json:"id"`
	Status          string                    `json:"status"`
	PixCode         string                    `json:"pix_code"`
	PixQRCode       string                    `json:"pix_qr_code"`
	Customer        entities.CustomerSnapshot `json:"customer"`
	Amount          decimal.Decimal           `json:"amount"`
	AmountUnit      string                    `json:"amount_unit"`
	Description     string                    `json:"description,omitempty"`
	Demo            bool                      `json:"demo,omitempty"`
	CreatedAt       time.Time                 `json:"created_at"`
	ApprovedAt      *time.Time                `json:"approved_at,omitempty"`
	RejectedAt      *time.Time                `json:"rejected_at,omitempty"`
	Reported        bool                      `json:"reported"`
	ReportClaimedAt *time.Time                `json:"report_claimed_at,omitempty"`
}

func toSessionDocument(s entities.PaymentSession) sessionDocument {
	return sessionDocument{
		ID:              s.ID,
		Status:          string(s.Status),
		PixCode:         s.PixCode,
		PixQRCode:       s.PixQRCode,
		Customer:        s.Customer,
		Amount:          s.Amount.Value,
		AmountUnit:      string(s.Amount.Unit),
		Description:     s.Description,
		Demo:            s.Demo,
		CreatedAt:       s.CreatedAt.UTC(),
		ApprovedAt:      s.ApprovedAt,
		RejectedAt:      s.RejectedAt,
		Reported:        s.Reported,
		ReportClaimedAt: s.ReportClaimedAt,
	}
}

func fromSessionDocument(d sessionDocument) entities.PaymentSession {
	return entities.PaymentSession{
		ID:              d.ID,
		Status:          entities.SessionStatus(d.Status),
		PixCode:         d.PixCode,
		PixQRCode:       d.PixQRCode,
		Customer:        d.Customer,
		Amount:          entities.Amount{Value: d.Amount, Unit: entities.AmountUnit(d.AmountUnit)},
		Description:     d.Description,
		Demo:            d.Demo,
		CreatedAt:       d.CreatedAt,
		ApprovedAt:      d.ApprovedAt,
		RejectedAt:      d.RejectedAt,
		Reported:        d.Reported,
		ReportClaimedAt: d.ReportClaimedAt,
	}
}

func encodeSession(s entities.PaymentSession) ([]byte, error) {
	return json.Marshal(toSessionDocument(s))
}

func decodeSession(raw []byte) (entities.PaymentSession, error) {
	var d sessionDocument
	if err := json.Unmarshal(raw, &d); err != nil {
		return entities.PaymentSession{}, err
	}
	return fromSessionDocument(d), nil
}
