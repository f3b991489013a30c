package payments

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/usecase/interfaces"

	"github.com/google/uuid"
)

// MockGateway is an in-memory provider for local runs (PAYMENT_GATEWAY_MOCK).
// Charges are approved after approveAfter status checks; zero keeps them pending.
type MockGateway struct {
	mu           sync.RWMutex
	charges      map[string]*mockCharge
	approveAfter int
	qrRenderURL  string
	now          func() time.Time
}

type mockCharge struct {
	amount entities.Amount
	checks int
	status entities.SessionStatus
	at     *time.Time
}

var _ interfaces.IPaymentGateway = (*MockGateway)(nil)

func NewMockGateway(approveAfter int, qrRenderURL string) *MockGateway {
	log.Printf("[session][gateway] mock mode enabled approve_after=%d", approveAfter)
	return &MockGateway{
		charges:      make(map[string]*mockCharge),
		approveAfter: approveAfter,
		qrRenderURL:  qrRenderURL,
		now:          time.Now,
	}
}

func (g *MockGateway) CreateCharge(_ context.Context, req entities.ChargeRequest) (entities.PaymentSession, error) {
	id := "mock_" + uuid.NewString()
	code := fmt.Sprintf("00020126580014BR.GOV.BCB.PIX0136%s5204000053039865406%s5802BR", id, req.Amount)

	g.mu.Lock()
	g.charges[id] = &mockCharge{amount: req.Amount.Normalized(), status: entities.SessionStatusPending}
	g.mu.Unlock()

	log.Printf("[session][gateway] mock create success session_id=%s amount=%s", id, req.Amount)
	return entities.PaymentSession{
		ID:          id,
		Status:      entities.SessionStatusPending,
		PixCode:     code,
		PixQRCode:   deriveQRCodeURL(g.qrRenderURL, code),
		Customer:    EnsureCustomerDefaults(req.Customer),
		Amount:      req.Amount.Normalized(),
		Description: req.Description,
		CreatedAt:   g.now().UTC(),
	}, nil
}

func (g *MockGateway) CheckStatus(_ context.Context, sessionID string) (entities.StatusResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := g.charges[strings.TrimSpace(sessionID)]
	if !ok {
		return entities.StatusResult{}, entities.NewGatewayError(entities.ErrUpstreamHTTP, "mock_check_status", http.StatusNotFound, nil)
	}
	c.checks++
	if c.status == entities.SessionStatusPending && g.approveAfter > 0 && c.checks >= g.approveAfter {
		now := g.now().UTC()
		c.status = entities.SessionStatusApproved
		c.at = &now
	}

	amount := c.amount
	res := entities.StatusResult{Status: c.status, RawStatus: strings.ToLower(string(c.status)), Amount: &amount}
	switch c.status {
	case entities.SessionStatusApproved:
		res.ApprovedAt = c.at
	case entities.SessionStatusRejected:
		res.RejectedAt = c.at
	}
	return res, nil
}

// Settle forces a terminal status for a mock charge.
func (g *MockGateway) Settle(sessionID string, status entities.SessionStatus) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	c, ok := g.charges[sessionID]
	if !ok || !status.IsTerminal() {
		return false
	}
	now := g.now().UTC()
	c.status = status
	c.at = &now
	return true
}
