package analytics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pix_checkout/internal/domain/entities"

	"github.com/bytedance/sonic"
)

const (
	defaultCollectorTimeout = 5 * time.Second
	defaultBeaconPath       = "/tr"
	defaultDocumentPath     = "/tr/"
	maxDiscardBytes         = 4 << 10
)

// CollectorConfig points every sink at the same ad-analytics collector.
type CollectorConfig struct {
	BaseURL      string
	PixelID      string
	AccessToken  string
	BeaconPath   string
	DocumentPath string
	Timeout      time.Duration
}

func (c CollectorConfig) withDefaults() CollectorConfig {
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.BeaconPath == "" {
		c.BeaconPath = defaultBeaconPath
	}
	if c.DocumentPath == "" {
		c.DocumentPath = defaultDocumentPath
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultCollectorTimeout
	}
	return c
}

type collector struct {
	cfg    CollectorConfig
	client *http.Client
}

func newCollector(cfg CollectorConfig) collector {
	cfg = cfg.withDefaults()
	return collector{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

// beaconQuery encodes the event the way pixel image beacons expect it.
func (c collector) beaconQuery(event entities.ConversionEvent) url.Values {
	contentIDs, _ := sonic.MarshalString(event.ContentIDs)
	q := url.Values{}
	q.Set("id", c.cfg.PixelID)
	q.Set("ev", event.EventName)
	q.Set("eid", event.EventID)
	q.Set("noscript", "1")
	q.Set("ts", fmt.Sprintf("%d", event.OccurredAt.UnixMilli()))
	q.Set("cd[value]", event.Value.StringFixed(2))
	q.Set("cd[currency]", event.Currency)
	q.Set("cd[content_ids]", contentIDs)
	q.Set("cd[content_type]", "product")
	q.Set("cd[transaction_id]", event.TransactionID)
	return q
}

// fire sends a request and drains a bounded part of the body. Any HTTP response
// counts as dispatched; only transport errors are returned.
func (c collector) fire(ctx context.Context, method, endpoint, contentType string, body io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDiscardBytes))
	return nil
}
