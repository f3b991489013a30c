package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type trackedCounter interface {
	Len() int
}

type HealthHandler struct {
	store   string
	tracker trackedCounter
}

func NewHealthHandler(store string, tracker trackedCounter) *HealthHandler {
	return &HealthHandler{store: store, tracker: tracker}
}

func (h *HealthHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

func (h *HealthHandler) Health(c *gin.Context) {
	tracked := 0
	if h.tracker != nil {
		tracked = h.tracker.Len()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"sessionStore":    h.store,
		"trackedSessions": tracked,
	})
}
