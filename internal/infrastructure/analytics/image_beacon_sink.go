package analytics

import (
	"context"
	"net/http"

	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/usecase/interfaces"
)

// ImageBeaconSink issues the 1x1 image GET with the event in the query string.
type ImageBeaconSink struct {
	collector
}

var _ interfaces.IConversionSink = (*ImageBeaconSink)(nil)

func NewImageBeaconSink(cfg CollectorConfig) *ImageBeaconSink {
	return &ImageBeaconSink{collector: newCollector(cfg)}
}

func (s *ImageBeaconSink) Name() string { return "image_beacon" }

func (s *ImageBeaconSink) Dispatch(ctx context.Context, event entities.ConversionEvent) error {
	endpoint := s.cfg.BaseURL + s.cfg.BeaconPath + "?" + s.beaconQuery(event).Encode()
	return s.fire(ctx, http.MethodGet, endpoint, "", nil)
}
