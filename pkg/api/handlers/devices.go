package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/madorn/bond-mcp-server/pkg/api/types"
	"github.com/madorn/bond-mcp-server/pkg/bond"
)

// DevicesHandler handles device read endpoints
type DevicesHandler struct {
	newClient bond.Factory
}

// NewDevicesHandler creates a new devices handler
func NewDevicesHandler(factory bond.Factory) *DevicesHandler {
	return &DevicesHandler{newClient: factory}
}

// ListDevices handles GET /devices
// @Summary      List all devices
// @Description  Returns all devices paired with the bridge, excluding bridge metadata entries
// @Tags         devices
// @Produce      json
// @Success      200  {object}  types.ListDevicesResponse
// @Failure      502  {object}  types.ErrorResponse  "Bridge unreachable or errored"
// @Router       /devices [get]
func (h *DevicesHandler) ListDevices(c *gin.Context) {
	client := h.newClient()
	if err := client.Open(); err != nil {
		writeBridgeError(c, err)
		return
	}
	defer client.Close()

	raw, err := client.ListDevices(c.Request.Context())
	if err != nil {
		writeBridgeError(c, err)
		return
	}

	devices := make([]types.DeviceSummary, 0, len(raw))
	for id, entry := range raw {
		if strings.HasPrefix(id, "_") {
			continue
		}
		info, _ := entry.(map[string]any)
		devices = append(devices, types.DeviceSummary{
			ID:       id,
			Name:     stringField(info, "name", "Unknown"),
			Type:     stringField(info, "type", "Unknown"),
			Location: stringField(info, "location", ""),
		})
	}

	c.JSON(http.StatusOK, types.ListDevicesResponse{
		Devices: devices,
		Count:   len(devices),
	})
}

// GetDevice handles GET /devices/:id
// @Summary      Get device info
// @Description  Returns detailed information about one device
// @Tags         devices
// @Produce      json
// @Param        id   path      string  true  "Bond device identifier"
// @Success      200  {object}  types.DeviceResponse
// @Failure      404  {object}  types.ErrorResponse  "Device not found"
// @Failure      502  {object}  types.ErrorResponse  "Bridge unreachable or errored"
// @Router       /devices/{id} [get]
func (h *DevicesHandler) GetDevice(c *gin.Context) {
	id := c.Param("id")

	client := h.newClient()
	if err := client.Open(); err != nil {
		writeBridgeError(c, err)
		return
	}
	defer client.Close()

	info, err := client.DeviceInfo(c.Request.Context(), id)
	if err != nil {
		writeBridgeError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.DeviceResponse{DeviceID: id, Info: info})
}

// GetState handles GET /devices/:id/state
// @Summary      Get device state
// @Description  Returns the current state of a device (power, speed, direction, brightness, position)
// @Tags         devices
// @Produce      json
// @Param        id   path      string  true  "Bond device identifier"
// @Success      200  {object}  types.StateResponse
// @Failure      404  {object}  types.ErrorResponse  "Device not found"
// @Failure      502  {object}  types.ErrorResponse  "Bridge unreachable or errored"
// @Router       /devices/{id}/state [get]
func (h *DevicesHandler) GetState(c *gin.Context) {
	id := c.Param("id")

	client := h.newClient()
	if err := client.Open(); err != nil {
		writeBridgeError(c, err)
		return
	}
	defer client.Close()

	state, err := client.DeviceState(c.Request.Context(), id)
	if err != nil {
		writeBridgeError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.StateResponse{
		DeviceID:  id,
		State:     state,
		Timestamp: time.Now(),
	})
}

func stringField(m map[string]any, key, fallback string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
