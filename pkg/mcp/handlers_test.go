package mcp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/madorn/bond-mcp-server/pkg/bond"
	"github.com/madorn/bond-mcp-server/pkg/config"
)

// newTestServer builds a Server whose clients talk to a fake bridge.
// The returned counter tracks how many requests reached the bridge.
func newTestServer(t *testing.T, handler http.HandlerFunc) (*Server, *int32) {
	t.Helper()

	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	host := strings.TrimPrefix(srv.URL, "http://")
	cfg := &config.Config{
		BondHost:      host,
		BondToken:     "test-token-1234",
		Timeout:       2 * time.Second,
		MaxRetries:    0,
		RetryDelay:    time.Millisecond,
		LogLevel:      "ERROR",
		ServerName:    "bond-mcp-server",
		ServerVersion: "test",
	}
	factory := func() *bond.Client {
		return bond.NewClient(host, cfg.BondToken, bond.Options{
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
			RetryDelay: cfg.RetryDelay,
		})
	}
	return NewServer(cfg, factory), &requests
}

func toolRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("result has no content")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content type %T, want TextContent", res.Content[0])
	}
	return tc.Text
}

func decodeResult(t *testing.T, res *mcp.CallToolResult, out any) {
	t.Helper()
	if err := json.Unmarshal([]byte(resultText(t, res)), out); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
}

func jsonBridge(response string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, response)
	}
}

func TestListDevices_FiltersMetadata(t *testing.T) {
	s, requests := newTestServer(t, jsonBridge(`{
		"_": {"name":"metadata"},
		"_v": "2.0",
		"dev1": {"name":"Living Room Fan","type":"CF","location":"Living Room"},
		"dev2": {"name":"Bedroom Shades","type":"MS"}
	}`))

	res, err := s.handleListDevices(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, res))
	}

	var out ListDevicesOutput
	decodeResult(t, res, &out)

	if out.TotalCount != 2 {
		t.Errorf("total_count = %d, want 2", out.TotalCount)
	}
	if _, ok := out.Devices["_"]; ok {
		t.Error("metadata key leaked into device list")
	}
	if d := out.Devices["dev1"]; d.Name != "Living Room Fan" || d.Type != "CF" || d.Location != "Living Room" {
		t.Errorf("dev1 = %+v", d)
	}
	if d := out.Devices["dev2"]; d.Name != "Bedroom Shades" || d.Location != "" {
		t.Errorf("dev2 = %+v", d)
	}
	if n := atomic.LoadInt32(requests); n != 1 {
		t.Errorf("bridge saw %d requests, want 1", n)
	}
}

func TestGetDeviceState_ReshapesPayload(t *testing.T) {
	s, _ := newTestServer(t, jsonBridge(`{"power":1,"speed":3}`))

	res, err := s.handleGetDeviceState(context.Background(), toolRequest(map[string]any{"device_id": "dev1"}))
	if err != nil {
		t.Fatal(err)
	}

	var out DeviceStateOutput
	decodeResult(t, res, &out)
	if out.DeviceID != "dev1" {
		t.Errorf("device_id = %q", out.DeviceID)
	}
	if out.State["power"] != float64(1) || out.State["speed"] != float64(3) {
		t.Errorf("state = %v", out.State)
	}
}

func TestGetDeviceState_MissingID(t *testing.T) {
	s, requests := newTestServer(t, jsonBridge(`{}`))

	res, err := s.handleGetDeviceState(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("expected error result for missing device_id")
	}
	if n := atomic.LoadInt32(requests); n != 0 {
		t.Errorf("bridge saw %d requests, want 0", n)
	}
}

func TestTogglePower_ReadsStateFirst(t *testing.T) {
	tests := []struct {
		name       string
		state      string
		wantAction string
		wantPath   string
	}{
		{"on toggles off", `{"power":1}`, "turned off", "/v2/devices/dev1/actions/TurnOff"},
		{"off toggles on", `{"power":0}`, "turned on", "/v2/devices/dev1/actions/TurnOn"},
		{"missing power toggles on", `{}`, "turned on", "/v2/devices/dev1/actions/TurnOn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var paths []string
			s, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				paths = append(paths, r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				if strings.HasSuffix(r.URL.Path, "/state") {
					io.WriteString(w, tt.state)
					return
				}
				io.WriteString(w, `{}`)
			})

			res, err := s.handleTogglePower(context.Background(), toolRequest(map[string]any{"device_id": "dev1"}))
			if err != nil {
				t.Fatal(err)
			}

			var out TogglePowerOutput
			decodeResult(t, res, &out)
			if out.Action != tt.wantAction {
				t.Errorf("action = %q, want %q", out.Action, tt.wantAction)
			}
			if len(paths) != 2 || paths[0] != "/v2/devices/dev1/state" || paths[1] != tt.wantPath {
				t.Errorf("paths = %v", paths)
			}
		})
	}
}

func TestSetFanSpeed_Validation(t *testing.T) {
	s, requests := newTestServer(t, jsonBridge(`{}`))

	for _, speed := range []float64{-1, 9} {
		res, err := s.handleSetFanSpeed(context.Background(), toolRequest(map[string]any{
			"device_id": "dev1",
			"speed":     speed,
		}))
		if err != nil {
			t.Fatal(err)
		}
		if !res.IsError {
			t.Errorf("speed %v: expected error result", speed)
		}
		var out ErrorOutput
		decodeResult(t, res, &out)
		if out.Error == "" {
			t.Errorf("speed %v: error payload missing error field", speed)
		}
	}
	if n := atomic.LoadInt32(requests); n != 0 {
		t.Errorf("bridge saw %d requests, want 0 for rejected input", n)
	}
}

func TestSetFanSpeed_ZeroTurnsOff(t *testing.T) {
	var gotPath string
	s, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{}`)
	})

	res, err := s.handleSetFanSpeed(context.Background(), toolRequest(map[string]any{
		"device_id": "dev1",
		"speed":     float64(0),
	}))
	if err != nil {
		t.Fatal(err)
	}
	if gotPath != "/v2/devices/dev1/actions/TurnOff" {
		t.Errorf("path = %s, want TurnOff action", gotPath)
	}

	var out SetFanSpeedOutput
	decodeResult(t, res, &out)
	if out.Action != "off" {
		t.Errorf("action = %q, want off", out.Action)
	}
}

func TestSetFanSpeed_NonZero(t *testing.T) {
	var gotPath, gotBody string
	s, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{}`)
	})

	res, err := s.handleSetFanSpeed(context.Background(), toolRequest(map[string]any{
		"device_id": "dev1",
		"speed":     float64(3),
	}))
	if err != nil {
		t.Fatal(err)
	}
	if gotPath != "/v2/devices/dev1/actions/SetSpeed" {
		t.Errorf("path = %s", gotPath)
	}
	if !strings.Contains(gotBody, `"argument":3`) {
		t.Errorf("body = %s, want argument 3", gotBody)
	}

	var out SetFanSpeedOutput
	decodeResult(t, res, &out)
	if out.Action != "set to speed 3" {
		t.Errorf("action = %q", out.Action)
	}
}

func TestSetFanDirection(t *testing.T) {
	tests := []struct {
		direction string
		wantArg   string
		wantErr   bool
	}{
		{"forward", `"argument":1`, false},
		{"reverse", `"argument":-1`, false},
		{"Forward", `"argument":1`, false},
		{"REVERSE", `"argument":-1`, false},
		{"sideways", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run("direction "+tt.direction, func(t *testing.T) {
			var gotBody string
			s, requests := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				b, _ := io.ReadAll(r.Body)
				gotBody = string(b)
				w.Header().Set("Content-Type", "application/json")
				io.WriteString(w, `{}`)
			})

			res, err := s.handleSetFanDirection(context.Background(), toolRequest(map[string]any{
				"device_id": "dev1",
				"direction": tt.direction,
			}))
			if err != nil {
				t.Fatal(err)
			}
			if tt.wantErr {
				if !res.IsError {
					t.Error("expected error result")
				}
				if n := atomic.LoadInt32(requests); n != 0 {
					t.Errorf("bridge saw %d requests, want 0", n)
				}
				return
			}
			if res.IsError {
				t.Fatalf("unexpected error: %s", resultText(t, res))
			}
			if !strings.Contains(gotBody, tt.wantArg) {
				t.Errorf("body = %s, want %s", gotBody, tt.wantArg)
			}

			var out SetFanDirectionOutput
			decodeResult(t, res, &out)
			if out.Direction != strings.ToLower(tt.direction) {
				t.Errorf("direction = %q", out.Direction)
			}
		})
	}
}

func TestControlShades(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]any
		wantPath string
		wantErr  bool
	}{
		{"open", map[string]any{"device_id": "dev1", "action": "open"}, "/v2/devices/dev1/actions/Open", false},
		{"close", map[string]any{"device_id": "dev1", "action": "close"}, "/v2/devices/dev1/actions/Close", false},
		{"set position", map[string]any{"device_id": "dev1", "action": "set_position", "position": float64(40)}, "/v2/devices/dev1/actions/SetPosition", false},
		{"set position missing position", map[string]any{"device_id": "dev1", "action": "set_position"}, "", true},
		{"position out of range", map[string]any{"device_id": "dev1", "action": "set_position", "position": float64(101)}, "", true},
		{"unknown action", map[string]any{"device_id": "dev1", "action": "tilt"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			s, requests := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				w.Header().Set("Content-Type", "application/json")
				io.WriteString(w, `{}`)
			})

			res, err := s.handleControlShades(context.Background(), toolRequest(tt.args))
			if err != nil {
				t.Fatal(err)
			}
			if tt.wantErr {
				if !res.IsError {
					t.Error("expected error result")
				}
				if n := atomic.LoadInt32(requests); n != 0 {
					t.Errorf("bridge saw %d requests, want 0", n)
				}
				return
			}
			if res.IsError {
				t.Fatalf("unexpected error: %s", resultText(t, res))
			}
			if gotPath != tt.wantPath {
				t.Errorf("path = %s, want %s", gotPath, tt.wantPath)
			}
		})
	}
}

func TestSetLightBrightness_ZeroTurnsOff(t *testing.T) {
	var gotPath string
	s, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{}`)
	})

	res, err := s.handleSetLightBrightness(context.Background(), toolRequest(map[string]any{
		"device_id":  "dev1",
		"brightness": float64(0),
	}))
	if err != nil {
		t.Fatal(err)
	}
	if gotPath != "/v2/devices/dev1/actions/TurnOff" {
		t.Errorf("path = %s, want TurnOff action", gotPath)
	}

	var out SetLightBrightnessOutput
	decodeResult(t, res, &out)
	if out.Action != "turned off" {
		t.Errorf("action = %q", out.Action)
	}
}

func TestSetLightBrightness_Validation(t *testing.T) {
	s, requests := newTestServer(t, jsonBridge(`{}`))

	for _, b := range []float64{-1, 101} {
		res, err := s.handleSetLightBrightness(context.Background(), toolRequest(map[string]any{
			"device_id":  "dev1",
			"brightness": b,
		}))
		if err != nil {
			t.Fatal(err)
		}
		if !res.IsError {
			t.Errorf("brightness %v: expected error result", b)
		}
	}
	if n := atomic.LoadInt32(requests); n != 0 {
		t.Errorf("bridge saw %d requests, want 0", n)
	}
}

func TestSendCustomAction(t *testing.T) {
	var gotMethod, gotPath, gotBody string
	s, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"s":200}`)
	})

	res, err := s.handleSendCustomAction(context.Background(), toolRequest(map[string]any{
		"device_id": "dev1",
		"action":    "SetSpeed",
		"argument":  float64(5),
	}))
	if err != nil {
		t.Fatal(err)
	}
	if gotMethod != http.MethodPut || gotPath != "/v2/devices/dev1/actions/SetSpeed" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
	if !strings.Contains(gotBody, `"argument":5`) {
		t.Errorf("body = %s", gotBody)
	}

	var out CustomActionOutput
	decodeResult(t, res, &out)
	if out.DeviceID != "dev1" || out.Action != "SetSpeed" || out.Argument == nil || *out.Argument != 5 {
		t.Errorf("output = %+v", out)
	}
	if out.Result["s"] != float64(200) {
		t.Errorf("result = %v", out.Result)
	}
}

func TestSendCustomAction_ValidatesJointly(t *testing.T) {
	s, requests := newTestServer(t, jsonBridge(`{}`))

	res, err := s.handleSendCustomAction(context.Background(), toolRequest(map[string]any{
		"device_id": "dev1",
		"action":    "SetSpeed",
		"argument":  float64(9),
	}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("expected error result for SetSpeed 9")
	}
	if n := atomic.LoadInt32(requests); n != 0 {
		t.Errorf("bridge saw %d requests, want 0", n)
	}
}

func TestGetBridgeInfo_EchoesConfig(t *testing.T) {
	s, _ := newTestServer(t, jsonBridge(`{"name":"My Bridge","fw_ver":"v2.29.8"}`))

	res, err := s.handleGetBridgeInfo(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatal(err)
	}

	var out BridgeInfoOutput
	decodeResult(t, res, &out)
	if out.Bridge["name"] != "My Bridge" {
		t.Errorf("bridge = %v", out.Bridge)
	}
	if out.ServerConfig.Host != s.cfg.BondHost {
		t.Errorf("host = %q, want %q", out.ServerConfig.Host, s.cfg.BondHost)
	}
	if out.ServerConfig.TimeoutSeconds != 2 {
		t.Errorf("timeout_seconds = %v, want 2", out.ServerConfig.TimeoutSeconds)
	}
	if out.ServerConfig.MaxRetries != 0 {
		t.Errorf("max_retries = %v", out.ServerConfig.MaxRetries)
	}
}

func TestBridgeFailure_BecomesErrorPayload(t *testing.T) {
	s, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "bridge on fire")
	})

	res, err := s.handleListDevices(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Fatal("expected error result")
	}

	var out ErrorOutput
	decodeResult(t, res, &out)
	if !strings.Contains(out.Error, "failed to list devices") {
		t.Errorf("error = %q", out.Error)
	}
	if !strings.Contains(out.Error, "500") {
		t.Errorf("error = %q, want status preserved", out.Error)
	}
}

func TestUnreachableBridge_BecomesErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	host := strings.TrimPrefix(srv.URL, "http://")
	srv.Close()

	cfg := &config.Config{
		BondHost:      host,
		BondToken:     "test-token-1234",
		Timeout:       time.Second,
		RetryDelay:    time.Millisecond,
		LogLevel:      "ERROR",
		ServerName:    "bond-mcp-server",
		ServerVersion: "test",
	}
	s := NewServer(cfg, nil)

	res, err := s.handleGetBridgeInfo(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Fatal("expected error result for unreachable bridge")
	}
}
