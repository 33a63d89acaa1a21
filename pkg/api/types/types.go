package types

import "time"

// --- Request DTOs ---

// ActionRequest is the request body for PUT /devices/:id/actions/:action
type ActionRequest struct {
	Argument *int `json:"argument,omitempty"`
}

// --- Response DTOs ---

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned from GET /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Bridge    string    `json:"bridge"`
	Timestamp time.Time `json:"timestamp"`
}

// DeviceSummary is one device entry in ListDevicesResponse
type DeviceSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Location string `json:"location,omitempty"`
}

// ListDevicesResponse is returned from GET /devices
type ListDevicesResponse struct {
	Devices []DeviceSummary `json:"devices"`
	Count   int             `json:"count"`
}

// DeviceResponse is returned from GET /devices/:id
type DeviceResponse struct {
	DeviceID string         `json:"device_id"`
	Info     map[string]any `json:"info"`
}

// StateResponse is returned from GET /devices/:id/state
type StateResponse struct {
	DeviceID  string         `json:"device_id"`
	State     map[string]any `json:"state"`
	Timestamp time.Time      `json:"timestamp"`
}

// ActionResponse is returned from PUT /devices/:id/actions/:action
type ActionResponse struct {
	DeviceID string         `json:"device_id"`
	Action   string         `json:"action"`
	Argument *int           `json:"argument,omitempty"`
	Result   map[string]any `json:"result"`
}

// ServerConfig echoes the active connection settings
type ServerConfig struct {
	Host           string  `json:"host"`
	TimeoutSeconds float64 `json:"timeout_seconds"`
	MaxRetries     int     `json:"max_retries"`
}

// BridgeResponse is returned from GET /bridge
type BridgeResponse struct {
	Bridge       map[string]any `json:"bridge"`
	ServerConfig ServerConfig   `json:"server_config"`
}
