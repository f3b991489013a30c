package handlers

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"

	request "pix_checkout/internal/adapter/http/dto/request"
	response "pix_checkout/internal/adapter/http/dto/response"
	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/usecase/interfaces"
	"pix_checkout/pkg"

	"github.com/gin-gonic/gin"
)

// ProxyHandler exposes the server-held provider credentials to other instances'
// mediated path. It speaks the provider wire format.

type ProxyHandler struct {
	gateway interfaces.IPaymentGateway
	secret  string
}

func NewProxyHandler(gateway interfaces.IPaymentGateway, secret string) *ProxyHandler {
	return &ProxyHandler{gateway: gateway, secret: strings.TrimSpace(secret)}
}

// Authorize rejects calls that do not carry the proxy secret.
func (h *ProxyHandler) Authorize(c *gin.Context) {
	if h.secret == "" || h.gateway == nil {
		respondError(c, pkg.NewDomainErrorSimple("PROXY_DISABLED", "Proxy is not configured", http.StatusServiceUnavailable))
		c.Abort()
		return
	}
	got := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
	if subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
		log.Printf("[session][handler] proxy unauthorized remote=%s", c.ClientIP())
		respondError(c, pkg.NewDomainErrorSimple("UNAUTHORIZED", "Unauthorized", http.StatusUnauthorized))
		c.Abort()
		return
	}
	c.Next()
}

// CreateCharge godoc
// @Summary      Mediated charge creation
// @Tags         proxy
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body      request.ProxyChargeRequest  true  "provider wire payload"
// @Success      200   {object}  response.ProxyChargeResponse
// @Failure      401   {object}  pkg.HTTPError
// @Failure      502   {object}  pkg.HTTPError
// @Router       /proxy/pix [post]
func (h *ProxyHandler) CreateCharge(c *gin.Context) {
	var req request.ProxyChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest))
		return
	}

	s, err := h.gateway.CreateCharge(c.Request.Context(), entities.ChargeRequest{
		Customer: entities.CustomerSnapshot{
			Name:     req.Name,
			Document: req.CPF,
			Email:    req.Email,
			Phone:    req.Phone,
		},
		Amount:      entities.NewMinorAmount(req.Amount),
		Description: req.ResolveDescription(),
	})
	if err != nil {
		log.Printf("[session][handler] proxy create failed err=%v", err)
		respondError(c, mapGatewayError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromChargedSession(s))
}

// Status godoc
// @Summary      Mediated status check
// @Tags         proxy
// @Produce      json
// @Security     Bearer
// @Param        id   query     string  true  "provider transaction id"
// @Success      200  {object}  response.ProxyStatusResponse
// @Failure      401  {object}  pkg.HTTPError
// @Failure      502  {object}  pkg.HTTPError
// @Router       /proxy/pix/status [get]
func (h *ProxyHandler) Status(c *gin.Context) {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		respondError(c, pkg.NewDomainErrorSimple("INVALID_REQUEST", "id is required", http.StatusBadRequest))
		return
	}
	res, err := h.gateway.CheckStatus(c.Request.Context(), id)
	if err != nil {
		log.Printf("[session][handler] proxy status failed id=%s err=%v", id, err)
		respondError(c, mapGatewayError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromStatusResult(id, res))
}
