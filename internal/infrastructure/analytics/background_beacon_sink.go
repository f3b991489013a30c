package analytics

import (
	"context"
	"log"
	"net/http"
	"strings"
	"sync"

	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/usecase/interfaces"
)

// BackgroundBeaconSink posts the event on its own goroutine and returns at once.
// The send outlives the caller's context; Wait blocks until queued sends finish.
type BackgroundBeaconSink struct {
	collector
	wg sync.WaitGroup
}

var _ interfaces.IConversionSink = (*BackgroundBeaconSink)(nil)

func NewBackgroundBeaconSink(cfg CollectorConfig) *BackgroundBeaconSink {
	return &BackgroundBeaconSink{collector: newCollector(cfg)}
}

func (s *BackgroundBeaconSink) Name() string { return "background_beacon" }

func (s *BackgroundBeaconSink) Dispatch(ctx context.Context, event entities.ConversionEvent) error {
	body := s.beaconQuery(event).Encode()
	endpoint := s.cfg.BaseURL + s.cfg.BeaconPath
	sendCtx := context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.fire(sendCtx, http.MethodPost, endpoint, "application/x-www-form-urlencoded", strings.NewReader(body)); err != nil {
			log.Printf("[session][analytics] background beacon failed transaction_id=%s err=%v", event.TransactionID, err)
		}
	}()
	return nil
}

func (s *BackgroundBeaconSink) Wait() {
	s.wg.Wait()
}
