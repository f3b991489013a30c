package routes

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"pix_checkout/internal/adapter/http/handlers"
	"pix_checkout/internal/config"
	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/infrastructure/payments"
	mock_interfaces "pix_checkout/internal/usecase/interfaces/mocks"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestMediatedGatewayThroughProxy(t *testing.T) {
	gin.SetMode(gin.TestMode)

	upstream := payments.NewMockGateway(0, "")
	r := gin.New()
	addProxyRoutes(r.Group("/v1"), handlers.NewProxyHandler(upstream, "s3cret"))
	srv := httptest.NewServer(r)
	defer srv.Close()

	cfg := config.Config{
		Provider: config.ProviderConfig{Timeout: 5 * time.Second},
		Mediator: config.MediatorConfig{BaseURL: srv.URL + "/", Secret: "s3cret"},
	}
	mediated := buildMediatedGateway(cfg, upstream)
	if mediated == upstream {
		t.Fatalf("expected a remote gateway when a mediator is configured")
	}

	ctx := context.Background()
	s, err := mediated.CreateCharge(ctx, entities.ChargeRequest{
		Customer:    entities.CustomerSnapshot{Name: "Ana Lima"},
		Amount:      entities.NewMinorAmount(7990),
		Description: "Curso",
	})
	if err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}
	if s.ID == "" || s.PixCode == "" || s.Status != entities.SessionStatusPending {
		t.Fatalf("unexpected session: %+v", s)
	}

	if !upstream.Settle(s.ID, entities.SessionStatusApproved) {
		t.Fatalf("expected mock charge %s to exist upstream", s.ID)
	}
	res, err := mediated.CheckStatus(ctx, s.ID)
	if err != nil {
		t.Fatalf("unexpected status error: %v", err)
	}
	if res.Status != entities.SessionStatusApproved {
		t.Fatalf("expected APPROVED, got %s", res.Status)
	}
	if res.Amount == nil || res.Amount.MinorUnits() != 7990 {
		t.Fatalf("unexpected amount: %+v", res.Amount)
	}
}

func TestMediatedGatewayWrongSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	upstream := payments.NewMockGateway(0, "")
	r := gin.New()
	addProxyRoutes(r.Group("/v1"), handlers.NewProxyHandler(upstream, "s3cret"))
	srv := httptest.NewServer(r)
	defer srv.Close()

	mediated := buildMediatedGateway(config.Config{
		Provider: config.ProviderConfig{Timeout: 5 * time.Second},
		Mediator: config.MediatorConfig{BaseURL: srv.URL, Secret: "other"},
	}, upstream)

	_, err := mediated.CreateCharge(context.Background(), entities.ChargeRequest{
		Customer: entities.CustomerSnapshot{Name: "Ana Lima"},
		Amount:   entities.NewMinorAmount(100),
	})
	if !errors.Is(err, entities.ErrUpstreamHTTP) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestMediatedGatewayKeepsIncompleteResponseKind(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	upstream := mock_interfaces.NewMockIPaymentGateway(ctrl)
	upstream.EXPECT().CreateCharge(gomock.Any(), gomock.Any()).
		Return(entities.PaymentSession{}, entities.NewGatewayError(entities.ErrIncompleteProviderResponse, "create_charge", 200, nil))
	r := gin.New()
	addProxyRoutes(r.Group("/v1"), handlers.NewProxyHandler(upstream, "s3cret"))
	srv := httptest.NewServer(r)
	defer srv.Close()

	mediated := buildMediatedGateway(config.Config{
		Provider: config.ProviderConfig{Timeout: 5 * time.Second},
		Mediator: config.MediatorConfig{BaseURL: srv.URL, Secret: "s3cret"},
	}, upstream)

	_, err := mediated.CreateCharge(context.Background(), entities.ChargeRequest{
		Customer: entities.CustomerSnapshot{Name: "Ana Lima"},
		Amount:   entities.NewMinorAmount(100),
	})
	if !errors.Is(err, entities.ErrIncompleteProviderResponse) {
		t.Fatalf("expected incomplete provider response, got %v", err)
	}
	if entities.IsFallbackable(err) {
		t.Fatalf("incomplete responses must not fall back")
	}
}

func TestGatewaySelection(t *testing.T) {
	t.Run("in process mediated path without mediator", func(t *testing.T) {
		server := buildServerGateway(config.Config{Provider: config.ProviderConfig{Kind: config.ProviderHTTP, SecretKey: "sk"}})
		if got := buildMediatedGateway(config.Config{}, server); got != server {
			t.Fatalf("expected the server gateway")
		}
	})

	t.Run("direct path needs its own secret", func(t *testing.T) {
		if buildDirectGateway(config.Config{Provider: config.ProviderConfig{SecretKey: "sk"}}) != nil {
			t.Fatalf("direct gateway must be nil without a direct secret")
		}
		if buildDirectGateway(config.Config{Provider: config.ProviderConfig{DirectSecretKey: "dk"}}) == nil {
			t.Fatalf("expected a direct gateway")
		}
		if buildDirectGateway(config.Config{Provider: config.ProviderConfig{DirectSecretKey: "dk", MockEnabled: true}}) != nil {
			t.Fatalf("mock mode must not build a direct gateway")
		}
	})

	t.Run("mock mode", func(t *testing.T) {
		g := buildServerGateway(config.Config{Provider: config.ProviderConfig{MockEnabled: true}})
		if _, ok := g.(*payments.MockGateway); !ok {
			t.Fatalf("expected mock gateway, got %T", g)
		}
	})

	t.Run("mercado pago", func(t *testing.T) {
		g := buildServerGateway(config.Config{Provider: config.ProviderConfig{Kind: config.ProviderMercadoPago}})
		if _, ok := g.(*payments.MercadoPagoGateway); !ok {
			t.Fatalf("expected mercado pago gateway, got %T", g)
		}
	})
}

func TestBuildSinks(t *testing.T) {
	app := &application{}
	primary, redundant := app.buildSinks(config.Config{})
	if primary != nil || redundant != nil {
		t.Fatalf("expected reporting disabled without a collector")
	}

	cfg := config.Config{Analytics: config.AnalyticsConfig{CollectorURL: "http://collector", PixelID: "px", RedundantChannels: true}}
	primary, redundant = app.buildSinks(cfg)
	if primary == nil || primary.Name() != "pixel_event" {
		t.Fatalf("unexpected primary sink: %v", primary)
	}
	if len(redundant) != 3 || app.background == nil {
		t.Fatalf("expected three redundant sinks, got %d", len(redundant))
	}
}

func TestCorsConfig(t *testing.T) {
	if c := corsConfig([]string{"*"}); !c.AllowAllOrigins {
		t.Fatalf("wildcard must allow all origins")
	}
	c := corsConfig([]string{"https://shop.example"})
	if c.AllowAllOrigins || len(c.AllowOrigins) != 1 {
		t.Fatalf("unexpected cors config: %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("invalid cors config: %v", err)
	}
}
