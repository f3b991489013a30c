package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	request "pix_checkout/internal/adapter/http/dto/request"
	response "pix_checkout/internal/adapter/http/dto/response"
	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/usecase"
	"pix_checkout/pkg"

	"github.com/gin-gonic/gin"
)

// HeaderPaymentPath lets a client opt out of the direct provider path.
const HeaderPaymentPath = "X-Payment-Path"

// SessionHandler handles HTTP requests for payment sessions.

type SessionHandler struct {
	creation usecase.ISessionCreationUseCase
	status   usecase.ISessionStatusUseCase
}

func NewSessionHandler(creation usecase.ISessionCreationUseCase, status usecase.ISessionStatusUseCase) *SessionHandler {
	return &SessionHandler{creation: creation, status: status}
}

// CreateSession godoc
// @Summary      Create a PIX payment session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        X-Payment-Path  header  string                          false  "set to 'mediated' to skip the direct path"
// @Param        body            body    request.CreateSessionRequest    true   "checkout data"
// @Success      201  {object}  response.SessionResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      502  {object}  pkg.HTTPError
// @Failure      504  {object}  pkg.HTTPError
// @Router       /sessions [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req request.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[session][handler] create invalid payload err=%v", err)
		respondError(c, pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest))
		return
	}
	amount, err := req.ResolveAmount()
	if err != nil {
		log.Printf("[session][handler] create invalid amount raw=%q", req.Amount)
		respondError(c, pkg.NewDomainErrorSimple("INVALID_REQUEST", "Amount must be a positive value", http.StatusBadRequest))
		return
	}

	direct := !strings.EqualFold(strings.TrimSpace(c.GetHeader(HeaderPaymentPath)), string(usecase.CallPathMediated))
	log.Printf("[session][handler] create start amount=%s direct_capability=%t", amount, direct)

	created, err := h.creation.Create(c.Request.Context(), usecase.CreateSessionInput{
		Name:             req.Name,
		Document:         req.Document,
		Email:            req.Email,
		Phone:            req.Phone,
		Amount:           amount,
		Description:      req.Description,
		DirectCapability: direct,
	})
	if err != nil {
		log.Printf("[session][handler] create failed err=%v", err)
		respondError(c, mapSessionError(err))
		return
	}
	log.Printf("[session][handler] create success session_id=%s demo=%t", created.ID, created.Demo)

	c.JSON(http.StatusCreated, response.FromPaymentSession(created))
}

// GetSession godoc
// @Summary      Get a payment session
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "session id"
// @Success      200  {object}  response.SessionResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	id := c.Param("id")
	s, err := h.status.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[session][handler] get failed session_id=%s err=%v", id, err)
		respondError(c, mapSessionError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentSession(s))
}

// RecheckSession godoc
// @Summary      Force a provider status check
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "session id"
// @Success      200  {object}  response.SessionResponse
// @Failure      404  {object}  pkg.HTTPError
// @Failure      502  {object}  pkg.HTTPError
// @Router       /sessions/{id}/recheck [post]
func (h *SessionHandler) RecheckSession(c *gin.Context) {
	id := c.Param("id")
	log.Printf("[session][handler] recheck start session_id=%s", id)
	s, err := h.status.Recheck(c.Request.Context(), id)
	if err != nil {
		log.Printf("[session][handler] recheck failed session_id=%s err=%v", id, err)
		respondError(c, mapSessionError(err))
		return
	}
	log.Printf("[session][handler] recheck success session_id=%s status=%s", id, s.Status)
	c.JSON(http.StatusOK, response.FromPaymentSession(s))
}

// GetCountdown godoc
// @Summary      Charge expiry countdown
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "session id"
// @Success      200  {object}  response.CountdownResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /sessions/{id}/countdown [get]
func (h *SessionHandler) GetCountdown(c *gin.Context) {
	id := c.Param("id")
	cd, err := h.status.Countdown(c.Request.Context(), id)
	if err != nil {
		respondError(c, mapSessionError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromCountdown(cd))
}

func respondError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapSessionError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidSessionInput):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrSessionNotFound):
		return pkg.NewDomainErrorSimple("SESSION_NOT_FOUND", "Payment session not found", http.StatusNotFound)
	default:
		return mapGatewayError(err)
	}
}

func mapGatewayError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, entities.ErrIncompleteProviderResponse):
		return pkg.NewDomainError("PAYMENT_PROVIDER_INCOMPLETE_RESPONSE", "Payment provider returned an incomplete response", err, http.StatusBadGateway)
	case errors.Is(err, entities.ErrGatewayTimeout):
		return pkg.NewDomainError("PAYMENT_PROVIDER_TIMEOUT", "Payment provider timed out", err, http.StatusGatewayTimeout)
	case errors.Is(err, entities.ErrUpstreamHTTP):
		return pkg.NewDomainError("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider unavailable", err, http.StatusBadGateway)
	case errors.Is(err, entities.ErrMissingCredentials):
		return pkg.NewDomainError("PAYMENT_PROVIDER_NOT_CONFIGURED", "Payment provider not configured", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
