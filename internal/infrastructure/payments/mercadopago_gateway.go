package payments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/usecase/interfaces"

	"github.com/goccy/go-json"
	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/shopspring/decimal"
)

var ErrInvalidMercadoPagoPaymentID = errors.New("invalid mercado pago payment id")

// MercadoPagoGateway creates PIX charges through the Mercado Pago payments API.
// A gateway built without an access token answers every call with ErrMissingCredentials.
type MercadoPagoGateway struct {
	client      payment.Client
	qrRenderURL string
	now         func() time.Time
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken, qrRenderURL string) (*MercadoPagoGateway, error) {
	g := &MercadoPagoGateway{qrRenderURL: qrRenderURL, now: time.Now}
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		log.Printf("[session][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return g, nil
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[session][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	g.client = payment.NewClient(cfg)
	log.Printf("[session][gateway] Mercado Pago client initialized")
	return g, nil
}

func (g *MercadoPagoGateway) CreateCharge(ctx context.Context, req entities.ChargeRequest) (entities.PaymentSession, error) {
	const op = "mp_create_charge"
	if g == nil || g.client == nil {
		return entities.PaymentSession{}, entities.NewGatewayError(entities.ErrMissingCredentials, op, 0, nil)
	}

	customer := EnsureCustomerDefaults(req.Customer)
	firstName, lastName := splitName(customer.Name)
	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = "PIX charge"
	}
	reqMap := map[string]any{
		"transaction_amount": req.Amount.MajorUnits().InexactFloat64(),
		"description":        description,
		"payment_method_id":  "pix",
		"payer": map[string]any{
			"email":      customer.Email,
			"first_name": firstName,
			"last_name":  lastName,
			"identification": map[string]any{
				"type":   "CPF",
				"number": customer.Document,
			},
		},
	}
	b, err := json.Marshal(reqMap)
	if err != nil {
		return entities.PaymentSession{}, err
	}
	var mpReq payment.Request
	if err := json.Unmarshal(b, &mpReq); err != nil {
		log.Printf("[session][gateway] payload unmarshal failed err=%v", err)
		return entities.PaymentSession{}, err
	}

	log.Printf("[session][gateway] %s start amount=%s", op, req.Amount)
	resp, err := g.client.Create(ctx, mpReq)
	if err != nil {
		log.Printf("[session][gateway] sdk create failed err=%v", err)
		return entities.PaymentSession{}, classifyMercadoPagoError(op, err)
	}

	parsed, err := responseMap(resp)
	if err != nil {
		return entities.PaymentSession{}, entities.NewGatewayError(entities.ErrIncompleteProviderResponse, op, http.StatusOK, err)
	}
	code, qr := mercadoPagoPixFields(parsed)
	if resp.ID == 0 || code == "" {
		log.Printf("[session][gateway] %s incomplete response provider_payment_id=%d has_code=%t", op, resp.ID, code != "")
		return entities.PaymentSession{}, entities.NewGatewayError(entities.ErrIncompleteProviderResponse, op, http.StatusOK, nil)
	}
	if qr == "" {
		qr = deriveQRCodeURL(g.qrRenderURL, code)
	}
	log.Printf("[session][gateway] %s success provider_payment_id=%d provider_status=%s", op, resp.ID, resp.Status)

	return entities.PaymentSession{
		ID:          strconv.Itoa(resp.ID),
		Status:      entities.SessionStatusPending,
		PixCode:     code,
		PixQRCode:   qr,
		Customer:    customer,
		Amount:      req.Amount.Normalized(),
		Description: req.Description,
		CreatedAt:   g.now().UTC(),
	}, nil
}

func (g *MercadoPagoGateway) CheckStatus(ctx context.Context, sessionID string) (entities.StatusResult, error) {
	const op = "mp_check_status"
	if g == nil || g.client == nil {
		return entities.StatusResult{}, entities.NewGatewayError(entities.ErrMissingCredentials, op, 0, nil)
	}
	id, err := strconv.Atoi(strings.TrimSpace(sessionID))
	if err != nil {
		return entities.StatusResult{}, fmt.Errorf("%w: %q", ErrInvalidMercadoPagoPaymentID, sessionID)
	}

	resp, err := g.client.Get(ctx, id)
	if err != nil {
		log.Printf("[session][gateway] sdk get failed provider_payment_id=%d err=%v", id, err)
		return entities.StatusResult{}, classifyMercadoPagoError(op, err)
	}
	if resp.Status == "" {
		return entities.StatusResult{}, entities.NewGatewayError(entities.ErrIncompleteProviderResponse, op, http.StatusOK, errors.New("status missing"))
	}

	res := entities.StatusResult{Status: normalizeProviderStatus(resp.Status), RawStatus: resp.Status}
	if parsed, err := responseMap(resp); err == nil {
		res.ApprovedAt = parseProviderTime(firstString(parsed, "date_approved"))
		if res.Status == entities.SessionStatusRejected {
			res.RejectedAt = parseProviderTime(firstString(parsed, "date_last_updated"))
		}
		// transaction_amount is always in major units on this API
		if raw := firstString(parsed, "transaction_amount"); raw != "" {
			if d, err := decimal.NewFromString(raw); err == nil {
				a := entities.NewMajorAmount(d)
				res.Amount = &a
			}
		}
	}
	log.Printf("[session][gateway] %s success provider_payment_id=%d provider_status=%s", op, id, resp.Status)
	return res, nil
}

func responseMap(resp *payment.Response) (map[string]any, error) {
	b, err := json.Marshal(resp)
	if err != nil {
		return nil, err
	}
	return decodeProviderPayload(b)
}

func mercadoPagoPixFields(parsed map[string]any) (code, qr string) {
	poi, _ := parsed["point_of_interaction"].(map[string]any)
	if poi == nil {
		return extractPixFields(parsed)
	}
	td, _ := poi["transaction_data"].(map[string]any)
	if td == nil {
		return extractPixFields(parsed)
	}
	return firstString(td, "qr_code"), normalizeQRImage(firstString(td, "qr_code_base64"))
}

func classifyMercadoPagoError(op string, err error) error {
	if isTimeout(err) {
		return entities.NewGatewayError(entities.ErrGatewayTimeout, op, 0, err)
	}
	msg := strings.ToLower(err.Error())
	status := 0
	for _, code := range []int{400, 401, 403, 404, 429, 500, 502, 503} {
		if strings.Contains(msg, fmt.Sprintf("\"status\":%d", code)) {
			status = code
			break
		}
	}
	if status == http.StatusUnauthorized || strings.Contains(msg, "\"error\":\"unauthorized\"") {
		return entities.NewGatewayError(entities.ErrMissingCredentials, op, http.StatusUnauthorized, err)
	}
	return entities.NewGatewayError(entities.ErrUpstreamHTTP, op, status, err)
}

func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
