package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog/log"

	"github.com/madorn/bond-mcp-server/pkg/bond"
)

func (s *Server) handleListDevices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withClient("list devices", func(client *bond.Client) (*mcp.CallToolResult, error) {
		raw, err := client.ListDevices(ctx)
		if err != nil {
			return failure("list devices", err), nil
		}

		// Keys starting with an underscore are bridge metadata, not devices
		devices := make(map[string]DeviceSummary)
		for id, entry := range raw {
			if strings.HasPrefix(id, "_") {
				continue
			}
			info, _ := entry.(map[string]any)
			devices[id] = DeviceSummary{
				ID:       id,
				Name:     stringField(info, "name", "Unknown"),
				Type:     stringField(info, "type", "Unknown"),
				Location: stringField(info, "location", ""),
			}
		}

		out := ListDevicesOutput{
			Devices:    devices,
			TotalCount: len(devices),
		}
		return mcp.NewToolResultText(formatJSON(out)), nil
	})
}

func (s *Server) handleGetDeviceInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deviceID, err := requiredString(request, "device_id")
	if err != nil {
		return errorResult("%s", err), nil
	}

	return s.withClient("get device info", func(client *bond.Client) (*mcp.CallToolResult, error) {
		info, err := client.DeviceInfo(ctx, deviceID)
		if err != nil {
			return failure("get device info", err), nil
		}

		out := DeviceInfoOutput{DeviceID: deviceID, Info: info}
		return mcp.NewToolResultText(formatJSON(out)), nil
	})
}

func (s *Server) handleGetDeviceState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deviceID, err := requiredString(request, "device_id")
	if err != nil {
		return errorResult("%s", err), nil
	}

	return s.withClient("get device state", func(client *bond.Client) (*mcp.CallToolResult, error) {
		state, err := client.DeviceState(ctx, deviceID)
		if err != nil {
			return failure("get device state", err), nil
		}

		out := DeviceStateOutput{DeviceID: deviceID, State: state}
		return mcp.NewToolResultText(formatJSON(out)), nil
	})
}

func (s *Server) handleTogglePower(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deviceID, err := requiredString(request, "device_id")
	if err != nil {
		return errorResult("%s", err), nil
	}

	return s.withClient("toggle device power", func(client *bond.Client) (*mcp.CallToolResult, error) {
		// Read current state to decide the action
		state, err := client.DeviceState(ctx, deviceID)
		if err != nil {
			return failure("toggle device power", err), nil
		}

		var result map[string]any
		var action string
		if intField(state, "power", 0) == 1 {
			result, err = client.TurnOff(ctx, deviceID)
			action = "turned off"
		} else {
			result, err = client.TurnOn(ctx, deviceID)
			action = "turned on"
		}
		if err != nil {
			return failure("toggle device power", err), nil
		}

		out := TogglePowerOutput{DeviceID: deviceID, Action: action, Result: result}
		return mcp.NewToolResultText(formatJSON(out)), nil
	})
}

func (s *Server) handleSetFanSpeed(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deviceID, err := requiredString(request, "device_id")
	if err != nil {
		return errorResult("%s", err), nil
	}
	speed, err := requiredInt(request, "speed")
	if err != nil {
		return errorResult("%s", err), nil
	}
	if err := bond.ValidateSpeed(speed); err != nil {
		return errorResult("fan speed must be between 0 and %d", bond.MaxSpeed), nil
	}

	return s.withClient("set fan speed", func(client *bond.Client) (*mcp.CallToolResult, error) {
		result, err := client.SetSpeed(ctx, deviceID, speed)
		if err != nil {
			return failure("set fan speed", err), nil
		}

		action := "off"
		if speed != 0 {
			action = fmt.Sprintf("set to speed %d", speed)
		}
		out := SetFanSpeedOutput{DeviceID: deviceID, Speed: speed, Action: action, Result: result}
		return mcp.NewToolResultText(formatJSON(out)), nil
	})
}

func (s *Server) handleSetFanDirection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deviceID, err := requiredString(request, "device_id")
	if err != nil {
		return errorResult("%s", err), nil
	}
	direction, err := requiredString(request, "direction")
	if err != nil {
		return errorResult("%s", err), nil
	}

	var dirValue int
	switch strings.ToLower(direction) {
	case "forward":
		dirValue = 1
	case "reverse":
		dirValue = -1
	default:
		return errorResult("direction must be 'forward' or 'reverse'"), nil
	}

	return s.withClient("set fan direction", func(client *bond.Client) (*mcp.CallToolResult, error) {
		result, err := client.SetDirection(ctx, deviceID, dirValue)
		if err != nil {
			return failure("set fan direction", err), nil
		}

		out := SetFanDirectionOutput{
			DeviceID:  deviceID,
			Direction: strings.ToLower(direction),
			Result:    result,
		}
		return mcp.NewToolResultText(formatJSON(out)), nil
	})
}

func (s *Server) handleControlShades(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deviceID, err := requiredString(request, "device_id")
	if err != nil {
		return errorResult("%s", err), nil
	}
	action, err := requiredString(request, "action")
	if err != nil {
		return errorResult("%s", err), nil
	}
	action = strings.ToLower(action)

	position := optionalInt(request, "position")

	switch action {
	case "open", "close":
	case "set_position":
		if position == nil || *position < 0 || *position > bond.MaxPercentage {
			return errorResult("position must be between 0 and %d when setting position", bond.MaxPercentage), nil
		}
	default:
		return errorResult("action must be one of: open, close, set_position"), nil
	}

	return s.withClient("control shades", func(client *bond.Client) (*mcp.CallToolResult, error) {
		var result map[string]any
		var err error
		switch action {
		case "open":
			result, err = client.OpenShades(ctx, deviceID)
		case "close":
			result, err = client.CloseShades(ctx, deviceID)
		default:
			result, err = client.SetPosition(ctx, deviceID, *position)
		}
		if err != nil {
			return failure("control shades", err), nil
		}

		out := ControlShadesOutput{DeviceID: deviceID, Action: action, Result: result}
		if action == "set_position" {
			out.Position = position
		}
		return mcp.NewToolResultText(formatJSON(out)), nil
	})
}

func (s *Server) handleSetLightBrightness(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deviceID, err := requiredString(request, "device_id")
	if err != nil {
		return errorResult("%s", err), nil
	}
	brightness, err := requiredInt(request, "brightness")
	if err != nil {
		return errorResult("%s", err), nil
	}
	if brightness < 0 || brightness > bond.MaxPercentage {
		return errorResult("brightness must be between 0 and %d", bond.MaxPercentage), nil
	}

	return s.withClient("set light brightness", func(client *bond.Client) (*mcp.CallToolResult, error) {
		var result map[string]any
		var action string
		var err error
		if brightness == 0 {
			result, err = client.TurnOff(ctx, deviceID)
			action = "turned off"
		} else {
			result, err = client.SetBrightness(ctx, deviceID, brightness)
			action = fmt.Sprintf("set to %d%% brightness", brightness)
		}
		if err != nil {
			return failure("set light brightness", err), nil
		}

		out := SetLightBrightnessOutput{
			DeviceID:   deviceID,
			Brightness: brightness,
			Action:     action,
			Result:     result,
		}
		return mcp.NewToolResultText(formatJSON(out)), nil
	})
}

func (s *Server) handleSendCustomAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deviceID, err := requiredString(request, "device_id")
	if err != nil {
		return errorResult("%s", err), nil
	}
	action, err := requiredString(request, "action")
	if err != nil {
		return errorResult("%s", err), nil
	}
	argument := optionalInt(request, "argument")

	req := bond.ActionRequest{DeviceID: deviceID, Action: bond.ActionType(action), Argument: argument}
	if err := req.Validate(); err != nil {
		return errorResult("%s", err), nil
	}

	return s.withClient("send custom action", func(client *bond.Client) (*mcp.CallToolResult, error) {
		result, err := client.SendAction(ctx, deviceID, bond.ActionType(action), argument)
		if err != nil {
			return failure("send custom action", err), nil
		}

		out := CustomActionOutput{
			DeviceID: deviceID,
			Action:   action,
			Argument: argument,
			Result:   result,
		}
		return mcp.NewToolResultText(formatJSON(out)), nil
	})
}

func (s *Server) handleGetBridgeInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withClient("get bridge info", func(client *bond.Client) (*mcp.CallToolResult, error) {
		info, err := client.BridgeInfo(ctx)
		if err != nil {
			return failure("get bridge info", err), nil
		}

		out := BridgeInfoOutput{
			Bridge: info,
			ServerConfig: ServerConfig{
				Host:           s.cfg.BondHost,
				TimeoutSeconds: s.cfg.Timeout.Seconds(),
				MaxRetries:     s.cfg.MaxRetries,
			},
		}
		return mcp.NewToolResultText(formatJSON(out)), nil
	})
}

// --- helpers ---

// withClient acquires a bridge client for one invocation and releases
// it on every exit path.
func (s *Server) withClient(op string, fn func(client *bond.Client) (*mcp.CallToolResult, error)) (*mcp.CallToolResult, error) {
	client := s.newClient()
	if err := client.Open(); err != nil {
		return failure(op, err), nil
	}
	defer client.Close()
	return fn(client)
}

// failure maps a client-layer error into the uniform error payload.
// Bridge failures keep the operation name; anything else is reported
// as unexpected and logged.
func failure(op string, err error) *mcp.CallToolResult {
	if bond.IsAPIError(err) {
		return errorResult("failed to %s: %s", op, err)
	}
	log.Error().Err(err).Str("operation", op).Msg("unexpected error")
	return errorResult("unexpected error: %s", err)
}

// errorResult builds the uniform {"error": msg} payload, flagged as an
// error result so MCP clients see the failure.
func errorResult(format string, args ...any) *mcp.CallToolResult {
	out := ErrorOutput{Error: fmt.Sprintf(format, args...)}
	res := mcp.NewToolResultText(formatJSON(out))
	res.IsError = true
	return res
}

func requiredString(request mcp.CallToolRequest, key string) (string, error) {
	args := request.GetArguments()
	v, ok := args[key]
	if !ok || v == nil {
		return "", fmt.Errorf("required parameter %q is missing", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("parameter %q must be a non-empty string", key)
	}
	return s, nil
}

func requiredInt(request mcp.CallToolRequest, key string) (int, error) {
	args := request.GetArguments()
	v, ok := args[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("required parameter %q is missing", key)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("parameter %q must be a number", key)
	}
	return int(f), nil
}

func optionalInt(request mcp.CallToolRequest, key string) *int {
	if v, ok := request.GetArguments()[key]; ok {
		if f, ok := v.(float64); ok {
			n := int(f)
			return &n
		}
	}
	return nil
}

func stringField(m map[string]any, key, fallback string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func intField(m map[string]any, key string, fallback int) int {
	if v, ok := m[key].(float64); ok {
		return int(v)
	}
	return fallback
}

func formatJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal response: %s"}`, err)
	}
	return string(b)
}
