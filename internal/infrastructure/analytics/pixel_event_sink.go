package analytics

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/usecase/interfaces"

	"github.com/bytedance/sonic"
)

// PixelEventSink is the primary channel: a server-side event call whose HTTP
// status is checked. The reporter's success is defined by this sink alone.
type PixelEventSink struct {
	collector
}

var _ interfaces.IConversionSink = (*PixelEventSink)(nil)

func NewPixelEventSink(cfg CollectorConfig) *PixelEventSink {
	return &PixelEventSink{collector: newCollector(cfg)}
}

func (s *PixelEventSink) Name() string { return "pixel_event" }

type pixelEventEnvelope struct {
	Data []pixelEvent `json:"data"`
}

type pixelEvent struct {
	EventName    string           `json:"event_name"`
	EventTime    int64            `json:"event_time"`
	EventID      string           `json:"event_id"`
	ActionSource string           `json:"action_source"`
	CustomData   pixelEventCustom `json:"custom_data"`
}

type pixelEventCustom struct {
	Value         float64  `json:"value"`
	Currency      string   `json:"currency"`
	ContentIDs    []string `json:"content_ids"`
	ContentType   string   `json:"content_type"`
	TransactionID string   `json:"transaction_id"`
}

func (s *PixelEventSink) Dispatch(ctx context.Context, event entities.ConversionEvent) error {
	body, err := sonic.Marshal(pixelEventEnvelope{Data: []pixelEvent{{
		EventName:    event.EventName,
		EventTime:    event.OccurredAt.Unix(),
		EventID:      event.EventID,
		ActionSource: "website",
		CustomData: pixelEventCustom{
			Value:         event.Value.InexactFloat64(),
			Currency:      event.Currency,
			ContentIDs:    event.ContentIDs,
			ContentType:   "product",
			TransactionID: event.TransactionID,
		},
	}}})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/%s/events", s.cfg.BaseURL, url.PathEscape(s.cfg.PixelID))
	if s.cfg.AccessToken != "" {
		endpoint += "?" + url.Values{"access_token": {s.cfg.AccessToken}}.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("collector rejected event status=%d body=%s", resp.StatusCode, snippet)
	}
	return nil
}
