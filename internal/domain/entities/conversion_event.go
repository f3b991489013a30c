package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

const ConversionEventPurchase = "Purchase"

// ConversionEvent is the analytics payload sent when a session is approved.
type ConversionEvent struct {
	EventName     string
	EventID       string
	TransactionID string
	Value         decimal.Decimal
	Currency      string
	ContentIDs    []string
	OccurredAt    time.Time
}

func NewPurchaseEvent(s PaymentSession, currency string, at time.Time) ConversionEvent {
	return ConversionEvent{
		EventName:     ConversionEventPurchase,
		EventID:       "purchase-" + s.ID,
		TransactionID: s.ID,
		Value:         s.Amount.MajorUnits(),
		Currency:      currency,
		ContentIDs:    []string{s.ID},
		OccurredAt:    at.UTC(),
	}
}
