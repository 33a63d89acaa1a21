package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/madorn/bond-mcp-server/pkg/api/types"
	"github.com/madorn/bond-mcp-server/pkg/bond"
	"github.com/madorn/bond-mcp-server/pkg/config"
)

// BridgeHandler handles bridge metadata and health endpoints
type BridgeHandler struct {
	cfg       *config.Config
	newClient bond.Factory
}

// NewBridgeHandler creates a new bridge handler
func NewBridgeHandler(cfg *config.Config, factory bond.Factory) *BridgeHandler {
	return &BridgeHandler{cfg: cfg, newClient: factory}
}

// Health handles GET /health
// @Summary      Health check
// @Description  Probes the bridge and reports whether it is reachable
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse
// @Router       /health [get]
func (h *BridgeHandler) Health(c *gin.Context) {
	bridgeStatus := "reachable"
	status := "healthy"

	client := h.newClient()
	if err := client.Open(); err != nil {
		bridgeStatus = "unreachable"
	} else {
		defer client.Close()
		if _, err := client.BridgeInfo(c.Request.Context()); err != nil {
			bridgeStatus = "unreachable"
		}
	}
	if bridgeStatus != "reachable" {
		status = "unhealthy"
	}

	c.JSON(http.StatusOK, types.HealthResponse{
		Status:    status,
		Bridge:    bridgeStatus,
		Timestamp: time.Now().UTC(),
	})
}

// GetBridge handles GET /bridge
// @Summary      Get bridge info
// @Description  Returns the bridge's own metadata alongside the active connection settings
// @Tags         bridge
// @Produce      json
// @Success      200  {object}  types.BridgeResponse
// @Failure      502  {object}  types.ErrorResponse  "Bridge unreachable or errored"
// @Router       /bridge [get]
func (h *BridgeHandler) GetBridge(c *gin.Context) {
	client := h.newClient()
	if err := client.Open(); err != nil {
		writeBridgeError(c, err)
		return
	}
	defer client.Close()

	info, err := client.BridgeInfo(c.Request.Context())
	if err != nil {
		writeBridgeError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.BridgeResponse{
		Bridge: info,
		ServerConfig: types.ServerConfig{
			Host:           h.cfg.BondHost,
			TimeoutSeconds: h.cfg.Timeout.Seconds(),
			MaxRetries:     h.cfg.MaxRetries,
		},
	})
}
