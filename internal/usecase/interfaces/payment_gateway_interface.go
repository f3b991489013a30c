package interfaces

import (
	"context"
	"pix_checkout/internal/domain/entities"
)

// IPaymentGateway abstracts the upstream PIX provider.
//
// Errors are *entities.GatewayError values; match the kind with errors.Is
// (entities.ErrMissingCredentials, ErrUpstreamHTTP, ErrIncompleteProviderResponse, ErrGatewayTimeout).
type IPaymentGateway interface {
	CreateCharge(ctx context.Context, req entities.ChargeRequest) (entities.PaymentSession, error)
	CheckStatus(ctx context.Context, sessionID string) (entities.StatusResult, error)
}
