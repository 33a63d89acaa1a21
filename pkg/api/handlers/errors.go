package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/madorn/bond-mcp-server/pkg/api/types"
	"github.com/madorn/bond-mcp-server/pkg/bond"
)

// writeBridgeError maps a client-layer failure onto an HTTP response.
// Bridge 404s pass through; other bridge responses and transport
// failures surface as 502 since the bridge, not this server, failed.
func writeBridgeError(c *gin.Context, err error) {
	var apiErr *bond.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusNotFound {
			c.JSON(http.StatusNotFound, types.ErrorResponse{
				Error:   "not_found",
				Message: "Device not found",
			})
			return
		}
		c.JSON(http.StatusBadGateway, types.ErrorResponse{
			Error:   "bridge_error",
			Message: apiErr.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, types.ErrorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	})
}
