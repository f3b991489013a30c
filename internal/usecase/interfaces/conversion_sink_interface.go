package interfaces

import (
	"context"
	"pix_checkout/internal/domain/entities"
)

// IConversionSink is one delivery channel to the ad-analytics collector.
type IConversionSink interface {
	Name() string
	Dispatch(ctx context.Context, event entities.ConversionEvent) error
}
