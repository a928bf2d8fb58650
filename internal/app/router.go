// internal/app/router.go
package app

import (
	"net/http"

	adminHandler "customer-admin/internal/handlers/admin"
	customerHandler "customer-admin/internal/handlers/customer"
	wsHandler "customer-admin/internal/handlers/websocket"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	CustomerHandler *customerHandler.CustomerHandler
	AdminHandler    *adminHandler.AdminHandler
	WSHandler       *wsHandler.WebSocketHandler
	RateLimit       gin.HandlerFunc
	AdminRateLimit  gin.HandlerFunc
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	// ==================== Health Check ====================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws", h.WSHandler.HandleConnection)
	r.GET("/ws/stats", h.WSHandler.GetStats)

	// ==================== Customers API ====================
	customers := r.Group("/customer")
	customers.Use(h.RateLimit)
	h.CustomerHandler.RegisterRoutes(customers)

	// ==================== Admin UI ====================
	admin := r.Group("/admin")
	admin.Use(h.AdminRateLimit)
	h.AdminHandler.RegisterRoutes(admin)
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/admin")
	})
}
