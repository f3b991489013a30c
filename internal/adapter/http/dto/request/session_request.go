package request

import (
	"encoding/json"
	"errors"
	"strings"

	"pix_checkout/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// CreateSessionRequest is the checkout payload. Amount is in major units and may be
// sent as a number or a numeric string ("79.90").
type CreateSessionRequest struct {
	Name        string      `json:"name" binding:"required"`
	Document    string      `json:"document"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Amount      json.Number `json:"amount" binding:"required"`
	Description string      `json:"description"`
}

func (r CreateSessionRequest) ResolveAmount() (entities.Amount, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(r.Amount.String()))
	if err != nil {
		return entities.Amount{}, ErrInvalidAmount
	}
	a := entities.NewMajorAmount(v)
	if !a.IsPositive() {
		return entities.Amount{}, ErrInvalidAmount
	}
	return a, nil
}
