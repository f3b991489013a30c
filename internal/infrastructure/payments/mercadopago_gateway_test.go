package payments

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"pix_checkout/internal/domain/entities"

	"github.com/mercadopago/sdk-go/pkg/payment"
)

type fakeMercadoPagoClient struct {
	payment.Client
	createJSON string
	getJSON    string
	err        error
	gotReq     payment.Request
	gotID      int
}

func (f *fakeMercadoPagoClient) Create(_ context.Context, req payment.Request) (*payment.Response, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	var resp payment.Response
	if err := json.Unmarshal([]byte(f.createJSON), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (f *fakeMercadoPagoClient) Get(_ context.Context, id int) (*payment.Response, error) {
	f.gotID = id
	if f.err != nil {
		return nil, f.err
	}
	var resp payment.Response
	if err := json.Unmarshal([]byte(f.getJSON), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func TestMercadoPagoGateway(t *testing.T) {
	ctx := context.Background()

	t.Run("no access token means missing credentials", func(t *testing.T) {
		g, err := NewMercadoPagoGateway("", "")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if _, err := g.CreateCharge(ctx, chargeRequest()); !errors.Is(err, entities.ErrMissingCredentials) {
			t.Fatalf("expected ErrMissingCredentials, got %v", err)
		}
		if _, err := g.CheckStatus(ctx, "1"); !errors.Is(err, entities.ErrMissingCredentials) {
			t.Fatalf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("create extracts point of interaction", func(t *testing.T) {
		fake := &fakeMercadoPagoClient{createJSON: `{"id":991,"status":"pending","point_of_interaction":{"transaction_data":{"qr_code":"000201MP","qr_code_base64":"iVBORw0"}}}`}
		g := &MercadoPagoGateway{client: fake, now: nowFunc()}

		s, err := g.CreateCharge(ctx, chargeRequest())
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if s.ID != "991" || s.PixCode != "000201MP" || s.PixQRCode != "data:image/png;base64,iVBORw0" {
			t.Fatalf("unexpected session: %+v", s)
		}
		raw, _ := json.Marshal(fake.gotReq)
		var sent map[string]any
		_ = json.Unmarshal(raw, &sent)
		if sent["payment_method_id"] != "pix" || sent["transaction_amount"] != 79.9 {
			t.Fatalf("unexpected request: %s", raw)
		}
	})

	t.Run("create without qr code is incomplete", func(t *testing.T) {
		fake := &fakeMercadoPagoClient{createJSON: `{"id":991,"status":"pending"}`}
		g := &MercadoPagoGateway{client: fake, now: nowFunc()}

		if _, err := g.CreateCharge(ctx, chargeRequest()); !errors.Is(err, entities.ErrIncompleteProviderResponse) {
			t.Fatalf("expected ErrIncompleteProviderResponse, got %v", err)
		}
	})

	t.Run("sdk errors are classified", func(t *testing.T) {
		fake := &fakeMercadoPagoClient{err: errors.New(`{"message":"internal","status":500}`)}
		g := &MercadoPagoGateway{client: fake, now: nowFunc()}

		_, err := g.CreateCharge(ctx, chargeRequest())
		var gwErr *entities.GatewayError
		if !errors.As(err, &gwErr) || !errors.Is(err, entities.ErrUpstreamHTTP) || gwErr.StatusCode != 500 {
			t.Fatalf("expected upstream 500, got %v", err)
		}
	})

	t.Run("status approved in major units", func(t *testing.T) {
		fake := &fakeMercadoPagoClient{getJSON: `{"id":991,"status":"approved","transaction_amount":80,"date_approved":"2026-03-10T12:00:00.000-04:00"}`}
		g := &MercadoPagoGateway{client: fake, now: nowFunc()}

		res, err := g.CheckStatus(ctx, "991")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if fake.gotID != 991 || res.Status != entities.SessionStatusApproved {
			t.Fatalf("unexpected result: %+v", res)
		}
		if res.Amount == nil || res.Amount.MinorUnits() != 8000 {
			t.Fatalf("expected 80.00, got %+v", res.Amount)
		}
		if res.ApprovedAt == nil {
			t.Fatalf("expected approvedAt")
		}
	})

	t.Run("non numeric id", func(t *testing.T) {
		g := &MercadoPagoGateway{client: &fakeMercadoPagoClient{}, now: nowFunc()}
		if _, err := g.CheckStatus(ctx, "abc"); !errors.Is(err, ErrInvalidMercadoPagoPaymentID) {
			t.Fatalf("expected ErrInvalidMercadoPagoPaymentID, got %v", err)
		}
	})
}
