package entities

import "time"

// ChargeRequest is what a gateway needs to create a PIX charge.
type ChargeRequest struct {
	Customer    CustomerSnapshot
	Amount      Amount
	Description string
}

// StatusResult is one provider status read. Optional fields are nil when the
// provider omitted them.
//
// AmountUnitInferred is set when the provider sent a bare integer, so the unit of
// Amount is a guess (minor units) rather than a fact.
type StatusResult struct {
	Status             SessionStatus
	RawStatus          string
	Amount             *Amount
	AmountUnitInferred bool
	ApprovedAt         *time.Time
	RejectedAt         *time.Time
}

// ResolvedAmount returns the provider amount read against the session's known amount.
func (r StatusResult) ResolvedAmount(known Amount) *Amount {
	if r.Amount == nil {
		return nil
	}
	if !r.AmountUnitInferred || r.Amount.Unit != AmountUnitMinor {
		a := *r.Amount
		return &a
	}
	a := ResolveIntegerAmount(r.Amount.Value.Round(0).IntPart(), &known)
	return &a
}
