package routes

import (
	"pix_checkout/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathSessions = "/sessions"
	PathProxy    = "/proxy"
)

func addSessionRoutes(rg *gin.RouterGroup, h *handlers.SessionHandler) {
	sessions := rg.Group(PathSessions)
	{
		sessions.POST("", h.CreateSession)
		sessions.GET("/:id", h.GetSession)
		sessions.POST("/:id/recheck", h.RecheckSession)
		sessions.GET("/:id/countdown", h.GetCountdown)
	}
}

// addProxyRoutes mounts the mediating proxy used by other instances' mediated path.
func addProxyRoutes(rg *gin.RouterGroup, h *handlers.ProxyHandler) {
	proxy := rg.Group(PathProxy, h.Authorize)
	{
		proxy.POST("/pix", h.CreateCharge)
		proxy.GET("/pix/status", h.Status)
	}
}
