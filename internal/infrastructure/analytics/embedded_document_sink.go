package analytics

import (
	"context"
	"net/http"

	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/usecase/interfaces"
)

// EmbeddedDocumentSink loads the collector's embeddable tracking document and
// throws it away once the response head arrives.
type EmbeddedDocumentSink struct {
	collector
}

var _ interfaces.IConversionSink = (*EmbeddedDocumentSink)(nil)

func NewEmbeddedDocumentSink(cfg CollectorConfig) *EmbeddedDocumentSink {
	return &EmbeddedDocumentSink{collector: newCollector(cfg)}
}

func (s *EmbeddedDocumentSink) Name() string { return "embedded_document" }

func (s *EmbeddedDocumentSink) Dispatch(ctx context.Context, event entities.ConversionEvent) error {
	q := s.beaconQuery(event)
	q.Set("embed", "1")
	return s.fire(ctx, http.MethodGet, s.cfg.BaseURL+s.cfg.DocumentPath+"?"+q.Encode(), "", nil)
}
