package mcp

// --- List Devices Tool ---

// DeviceSummary is one device entry in list_devices output.
type DeviceSummary struct {
	ID       string `json:"id" jsonschema:"description=Bond device identifier"`
	Name     string `json:"name" jsonschema:"description=User-facing device name"`
	Type     string `json:"type" jsonschema:"description=Bond device type code (CF/FP/GX/LT/MS/GD)"`
	Location string `json:"location" jsonschema:"description=Device location"`
}

// ListDevicesOutput is the output for the list_devices tool.
type ListDevicesOutput struct {
	Devices    map[string]DeviceSummary `json:"devices" jsonschema:"description=Devices keyed by id"`
	TotalCount int                      `json:"total_count" jsonschema:"description=Number of devices"`
}

// --- Get Device Info Tool ---

// DeviceInfoOutput is the output for the get_device_info tool.
type DeviceInfoOutput struct {
	DeviceID string         `json:"device_id" jsonschema:"description=Bond device identifier"`
	Info     map[string]any `json:"info" jsonschema:"description=Device information from the bridge"`
}

// --- Get Device State Tool ---

// DeviceStateOutput is the output for the get_device_state tool.
type DeviceStateOutput struct {
	DeviceID string         `json:"device_id" jsonschema:"description=Bond device identifier"`
	State    map[string]any `json:"state" jsonschema:"description=Current device state"`
}

// --- Toggle Power Tool ---

// TogglePowerOutput is the output for the toggle_device_power tool.
type TogglePowerOutput struct {
	DeviceID string         `json:"device_id" jsonschema:"description=Bond device identifier"`
	Action   string         `json:"action" jsonschema:"description=What was done (turned on / turned off)"`
	Result   map[string]any `json:"result" jsonschema:"description=Raw bridge response"`
}

// --- Fan Tools ---

// SetFanSpeedOutput is the output for the set_fan_speed tool.
type SetFanSpeedOutput struct {
	DeviceID string         `json:"device_id" jsonschema:"description=Bond device identifier"`
	Speed    int            `json:"speed" jsonschema:"description=Requested speed (0-8)"`
	Action   string         `json:"action" jsonschema:"description=What was done"`
	Result   map[string]any `json:"result" jsonschema:"description=Raw bridge response"`
}

// SetFanDirectionOutput is the output for the set_fan_direction tool.
type SetFanDirectionOutput struct {
	DeviceID  string         `json:"device_id" jsonschema:"description=Bond device identifier"`
	Direction string         `json:"direction" jsonschema:"description=forward or reverse"`
	Result    map[string]any `json:"result" jsonschema:"description=Raw bridge response"`
}

// --- Shades Tool ---

// ControlShadesOutput is the output for the control_shades tool.
type ControlShadesOutput struct {
	DeviceID string         `json:"device_id" jsonschema:"description=Bond device identifier"`
	Action   string         `json:"action" jsonschema:"description=open, close or set_position"`
	Position *int           `json:"position" jsonschema:"description=Target position when setting position"`
	Result   map[string]any `json:"result" jsonschema:"description=Raw bridge response"`
}

// --- Light Tool ---

// SetLightBrightnessOutput is the output for the set_light_brightness tool.
type SetLightBrightnessOutput struct {
	DeviceID   string         `json:"device_id" jsonschema:"description=Bond device identifier"`
	Brightness int            `json:"brightness" jsonschema:"description=Requested brightness (0-100)"`
	Action     string         `json:"action" jsonschema:"description=What was done"`
	Result     map[string]any `json:"result" jsonschema:"description=Raw bridge response"`
}

// --- Custom Action Tool ---

// CustomActionOutput is the output for the send_custom_action tool.
type CustomActionOutput struct {
	DeviceID string         `json:"device_id" jsonschema:"description=Bond device identifier"`
	Action   string         `json:"action" jsonschema:"description=Bond action name"`
	Argument *int           `json:"argument" jsonschema:"description=Action argument if one was sent"`
	Result   map[string]any `json:"result" jsonschema:"description=Raw bridge response"`
}

// --- Bridge Info Tool ---

// ServerConfig echoes the active connection settings in bridge info output.
type ServerConfig struct {
	Host           string  `json:"host" jsonschema:"description=Configured bridge host"`
	TimeoutSeconds float64 `json:"timeout_seconds" jsonschema:"description=Per-request timeout"`
	MaxRetries     int     `json:"max_retries" jsonschema:"description=Configured retry budget"`
}

// BridgeInfoOutput is the output for the get_bridge_info tool.
type BridgeInfoOutput struct {
	Bridge       map[string]any `json:"bridge" jsonschema:"description=Bridge metadata"`
	ServerConfig ServerConfig   `json:"server_config" jsonschema:"description=Active server configuration"`
}

// --- Errors ---

// ErrorOutput is the uniform failure payload for every tool.
type ErrorOutput struct {
	Error string `json:"error" jsonschema:"description=Failure description"`
}
