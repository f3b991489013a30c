package payments

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/usecase/interfaces"

	"github.com/goccy/go-json"
)

const (
	defaultCreatePath      = "/transaction.purchase"
	defaultStatusPath      = "/transaction.getPayment"
	defaultProviderTimeout = 20 * time.Second
	maxProviderBodyBytes   = 1 << 20
	pixPaymentMethod       = "PIX"
)

// HTTPProviderConfig describes one network path to a provider-compatible API.
// The same type serves the direct provider and a mediating proxy.
type HTTPProviderConfig struct {
	Label       string
	BaseURL     string
	SecretKey   string
	CreatePath  string
	StatusPath  string
	Timeout     time.Duration
	QRRenderURL string
}

type HTTPProviderGateway struct {
	cfg    HTTPProviderConfig
	client *http.Client
	now    func() time.Time
}

var _ interfaces.IPaymentGateway = (*HTTPProviderGateway)(nil)

func NewHTTPProviderGateway(cfg HTTPProviderConfig) *HTTPProviderGateway {
	if cfg.CreatePath == "" {
		cfg.CreatePath = defaultCreatePath
	}
	if cfg.StatusPath == "" {
		cfg.StatusPath = defaultStatusPath
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultProviderTimeout
	}
	if cfg.Label == "" {
		cfg.Label = "provider"
	}
	return &HTTPProviderGateway{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		now:    time.Now,
	}
}

type chargeItem struct {
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
	Tangible  bool   `json:"tangible"`
}

type chargePayload struct {
	Name          string       `json:"name"`
	Email         string       `json:"email"`
	CPF           string       `json:"cpf"`
	Phone         string       `json:"phone"`
	PaymentMethod string       `json:"paymentMethod"`
	Amount        int64        `json:"amount"`
	Items         []chargeItem `json:"items"`
}

func (g *HTTPProviderGateway) CreateCharge(ctx context.Context, req entities.ChargeRequest) (entities.PaymentSession, error) {
	const op = "create_charge"
	if strings.TrimSpace(g.cfg.SecretKey) == "" {
		log.Printf("[session][gateway] %s missing secret key path=%s", op, g.cfg.Label)
		return entities.PaymentSession{}, entities.NewGatewayError(entities.ErrMissingCredentials, op, 0, nil)
	}

	customer := EnsureCustomerDefaults(req.Customer)
	minor := req.Amount.MinorUnits()
	title := strings.TrimSpace(req.Description)
	if title == "" {
		title = "PIX charge"
	}
	payload := chargePayload{
		Name:          customer.Name,
		Email:         customer.Email,
		CPF:           customer.Document,
		Phone:         customer.Phone,
		PaymentMethod: pixPaymentMethod,
		Amount:        minor,
		Items:         []chargeItem{{Title: title, Quantity: 1, UnitPrice: minor, Tangible: false}},
	}
	log.Printf("[session][gateway] %s start path=%s amount_minor=%d synthetic_document=%t", op, g.cfg.Label, minor, customer.SyntheticDocument)

	parsed, err := g.doJSON(ctx, op, http.MethodPost, g.cfg.CreatePath, nil, payload)
	if err != nil {
		return entities.PaymentSession{}, err
	}

	root := unwrapEnvelope(parsed)
	id := firstString(root, providerIDs...)
	code, qr := extractPixFields(parsed)
	if id == "" || code == "" {
		log.Printf("[session][gateway] %s incomplete response path=%s has_id=%t has_code=%t", op, g.cfg.Label, id != "", code != "")
		return entities.PaymentSession{}, entities.NewGatewayError(entities.ErrIncompleteProviderResponse, op, http.StatusOK, nil)
	}
	if qr == "" {
		qr = deriveQRCodeURL(g.cfg.QRRenderURL, code)
	}
	log.Printf("[session][gateway] %s success path=%s session_id=%s", op, g.cfg.Label, id)

	return entities.PaymentSession{
		ID:          id,
		Status:      entities.SessionStatusPending,
		PixCode:     code,
		PixQRCode:   qr,
		Customer:    customer,
		Amount:      req.Amount.Normalized(),
		Description: req.Description,
		CreatedAt:   g.now().UTC(),
	}, nil
}

func (g *HTTPProviderGateway) CheckStatus(ctx context.Context, sessionID string) (entities.StatusResult, error) {
	const op = "check_status"
	if strings.TrimSpace(g.cfg.SecretKey) == "" {
		return entities.StatusResult{}, entities.NewGatewayError(entities.ErrMissingCredentials, op, 0, nil)
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return entities.StatusResult{}, errors.New("empty session id")
	}

	parsed, err := g.doJSON(ctx, op, http.MethodGet, g.cfg.StatusPath, url.Values{"id": {sessionID}}, nil)
	if err != nil {
		return entities.StatusResult{}, err
	}

	root := unwrapEnvelope(parsed)
	rawStatus := firstString(root, "status", "paymentStatus", "payment_status")
	if rawStatus == "" {
		return entities.StatusResult{}, entities.NewGatewayError(entities.ErrIncompleteProviderResponse, op, http.StatusOK, errors.New("status missing"))
	}

	res := entities.StatusResult{
		Status:     normalizeProviderStatus(rawStatus),
		RawStatus:  rawStatus,
		ApprovedAt: parseProviderTime(firstString(root, "approvedAt", "approved_at", "paidAt", "paid_at")),
		RejectedAt: parseProviderTime(firstString(root, "rejectedAt", "rejected_at", "canceledAt", "cancelledAt")),
	}
	if raw, ok := firstValue(root, "amount", "total", "value"); ok {
		if a, ok := NormalizeProviderAmount(raw, nil); ok {
			res.Amount = &a
			res.AmountUnitInferred = a.Unit == entities.AmountUnitMinor
		}
	}
	log.Printf("[session][gateway] %s success path=%s session_id=%s raw_status=%s status=%s", op, g.cfg.Label, sessionID, rawStatus, res.Status)
	return res, nil
}

func (g *HTTPProviderGateway) doJSON(ctx context.Context, op, method, path string, query url.Values, payload any) (map[string]any, error) {
	endpoint := strings.TrimRight(g.cfg.BaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", g.cfg.SecretKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		log.Printf("[session][gateway] %s transport failed path=%s err=%v", op, g.cfg.Label, err)
		return nil, classifyTransportError(op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxProviderBodyBytes))
	if err != nil {
		return nil, classifyTransportError(op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		kind := upstreamErrorKind(raw)
		log.Printf("[session][gateway] %s upstream status=%d path=%s kind=%v", op, resp.StatusCode, g.cfg.Label, kind)
		return nil, entities.NewGatewayError(kind, op, resp.StatusCode, fmt.Errorf("body: %s", truncate(string(raw), 256)))
	}

	parsed, err := decodeProviderPayload(raw)
	if err != nil {
		return nil, entities.NewGatewayError(entities.ErrIncompleteProviderResponse, op, resp.StatusCode, err)
	}
	return parsed, nil
}

// proxyErrorKinds maps the error codes a mediating proxy answers with back to the
// failure kind it saw upstream.
var proxyErrorKinds = map[string]error{
	"PAYMENT_PROVIDER_INCOMPLETE_RESPONSE": entities.ErrIncompleteProviderResponse,
	"PAYMENT_PROVIDER_TIMEOUT":             entities.ErrGatewayTimeout,
	"PAYMENT_PROVIDER_NOT_CONFIGURED":      entities.ErrMissingCredentials,
}

func upstreamErrorKind(raw []byte) error {
	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if kind, ok := proxyErrorKinds[body.Code]; ok {
			return kind
		}
	}
	return entities.ErrUpstreamHTTP
}

// decodeProviderPayload keeps numbers as json.Number so "80.00" is still read as major units.
func decodeProviderPayload(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var parsed map[string]any
	if err := dec.Decode(&parsed); err != nil {
		return nil, err
	}
	if parsed == nil {
		return nil, errors.New("empty body")
	}
	return parsed, nil
}

func classifyTransportError(op string, err error) error {
	if isTimeout(err) {
		return entities.NewGatewayError(entities.ErrGatewayTimeout, op, 0, err)
	}
	return entities.NewGatewayError(entities.ErrUpstreamHTTP, op, 0, err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
