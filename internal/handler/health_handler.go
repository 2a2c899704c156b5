package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gstbill/internal/port"
)

// ReadinessResponse reports whether the invoice store answers.
type ReadinessResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
	Error   string `json:"error,omitempty"`
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	store  port.Store
	driver string
}

// NewHealthHandler creates a HealthHandler; driver names the configured store.
func NewHealthHandler(store port.Store, driver string) *HealthHandler {
	return &HealthHandler{store: store, driver: driver}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, ReadinessResponse{
			Status:  "unavailable",
			Storage: h.driver,
			Error:   h.driver + " store not reachable",
		})
		return
	}
	c.JSON(http.StatusOK, ReadinessResponse{Status: "ok", Storage: h.driver})
}
