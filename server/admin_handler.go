package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"auctioneer/service"
)

// Pinger checks that a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// ConnectionChecker reports whether an optional broker connection is up
type ConnectionChecker interface {
	IsConnected() bool
}

type AdminHandler struct {
	notifications service.NotificationService
	db            Pinger
	broker        ConnectionChecker
}

// NewAdminHandler creates the admin handler. broker is nil when no message
// broker is configured.
func NewAdminHandler(notifications service.NotificationService, db Pinger, broker ConnectionChecker) *AdminHandler {
	return &AdminHandler{notifications: notifications, db: db, broker: broker}
}

// SweepHandler handles POST /admin/sweep
func (h *AdminHandler) SweepHandler(c *gin.Context) {
	notified, err := h.notifications.ProcessEndedAuctions(c.Request.Context())
	if err != nil {
		handleServiceError(c, "SweepHandler", err, nil)
		return
	}

	JSONResponse(c, http.StatusOK, SweepResponse{Notified: notified}, "winner notification sweep completed")
}

// HealthHandler handles GET /healthz
func (h *AdminHandler) HealthHandler(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		JSONError(c, http.StatusServiceUnavailable, err, "database unavailable")
		return
	}

	// live updates still reach SSE listeners without the broker, so its
	// state is reported but does not fail the check
	broker := "disabled"
	if h.broker != nil {
		broker = "connected"
		if !h.broker.IsConnected() {
			broker = "disconnected"
		}
	}
	JSONResponse(c, http.StatusOK, gin.H{"database": "ok", "broker": broker}, "healthy")
}
