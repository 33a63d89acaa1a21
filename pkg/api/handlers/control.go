package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/madorn/bond-mcp-server/pkg/api/types"
	"github.com/madorn/bond-mcp-server/pkg/bond"
	"github.com/madorn/bond-mcp-server/pkg/bond/schema"
)

// ControlHandler handles device action endpoints
type ControlHandler struct {
	newClient bond.Factory
	validator *schema.Validator
}

// NewControlHandler creates a new control handler
func NewControlHandler(factory bond.Factory, validator *schema.Validator) *ControlHandler {
	return &ControlHandler{newClient: factory, validator: validator}
}

// SendAction handles PUT /devices/:id/actions/:action
// @Summary      Perform a device action
// @Description  Sends a named Bond action to a device. The body carries an optional integer argument whose valid range depends on the action.
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        id       path      string               true   "Bond device identifier"
// @Param        action   path      string               true   "Bond action name (e.g. TurnOn, SetSpeed)"
// @Param        request  body      types.ActionRequest  false  "Action argument"
// @Success      200      {object}  types.ActionResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid argument for this action"
// @Failure      404      {object}  types.ErrorResponse  "Device not found"
// @Failure      502      {object}  types.ErrorResponse  "Bridge unreachable or errored"
// @Router       /devices/{id}/actions/{action} [put]
func (h *ControlHandler) SendAction(c *gin.Context) {
	id := c.Param("id")
	action := c.Param("action")

	// An empty body means an action without argument
	var body map[string]any
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := json.NewDecoder(c.Request.Body).Decode(&body); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Error:   "invalid_request",
				Message: "Invalid request body",
			})
			return
		}
	}
	if body == nil {
		body = map[string]any{}
	}

	// Argument range is keyed by the action's identity
	if err := h.validator.ValidateAction(action, body); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_argument",
			Message: err.Error(),
		})
		return
	}

	var argument *int
	if v, ok := body["argument"]; ok {
		if f, ok := v.(float64); ok {
			n := int(f)
			argument = &n
		}
	}

	client := h.newClient()
	if err := client.Open(); err != nil {
		writeBridgeError(c, err)
		return
	}
	defer client.Close()

	result, err := client.SendAction(c.Request.Context(), id, bond.ActionType(action), argument)
	if err != nil {
		writeBridgeError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.ActionResponse{
		DeviceID: id,
		Action:   action,
		Argument: argument,
		Result:   result,
	})
}
