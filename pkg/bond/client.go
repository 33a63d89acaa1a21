package bond

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// tokenHeader is the custom header the Bond Local API authenticates with.
const tokenHeader = "BOND-Token"

const (
	stateNew = iota
	stateOpen
	stateClosed
)

// Options tune a Client's connection behavior.
type Options struct {
	Timeout    time.Duration // per-request timeout, default 10s
	MaxRetries int           // extra attempts on transport/5xx failures
	RetryDelay time.Duration // pause between attempts, default 1s
}

// Client is a scoped HTTP facade over the Bond Bridge Local API v2.
// A Client is acquired around a single unit of work: Open before the
// first call, Close after the last. It is not safe for concurrent use.
type Client struct {
	host    string
	token   string
	opts    Options
	baseURL string

	state int
	http  *http.Client
}

// Factory creates a Client scoped to one unit of work. Callers
// acquire a fresh client per invocation; clients are never reused.
type Factory func() *Client

// NewClient creates a client for the bridge at host. The client is
// unusable until Open is called.
func NewClient(host, token string, opts Options) *Client {
	host = strings.TrimSuffix(host, "/")
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = time.Second
	}

	return &Client{
		host:    host,
		token:   token,
		opts:    opts,
		baseURL: fmt.Sprintf("http://%s/v2/", host),
	}
}

// Open acquires the underlying HTTP connection.
func (c *Client) Open() error {
	if c.state == stateClosed {
		return ErrClosed
	}
	c.http = &http.Client{Timeout: c.opts.Timeout}
	c.state = stateOpen
	return nil
}

// Close releases the client. Further calls fail with ErrClosed.
func (c *Client) Close() {
	if c.http != nil {
		c.http.CloseIdleConnections()
	}
	c.http = nil
	c.state = stateClosed
}

// request issues one HTTP request against the bridge and decodes the
// JSON response. Transport failures and retryable statuses are retried
// up to MaxRetries times; any terminal failure comes back as *APIError.
func (c *Client) request(ctx context.Context, method, endpoint string, payload any) (map[string]any, error) {
	switch c.state {
	case stateNew:
		return nil, ErrNotOpen
	case stateClosed:
		return nil, ErrClosed
	}

	url := c.baseURL + endpoint

	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
	}

	var result map[string]any

	retryErr := withRetry(ctx, c.opts.MaxRetries, c.opts.RetryDelay, func() (bool, error) {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return false, &APIError{cause: err}
		}
		req.Header.Set(tokenHeader, c.token)
		req.Header.Set("Content-Type", "application/json")

		log.Debug().Str("method", method).Str("url", url).Msg("bond request")

		resp, err := c.http.Do(req)
		if err != nil {
			// Connection refused, timeout, DNS failure
			return true, &APIError{cause: err}
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return true, &APIError{cause: err}
		}

		log.Debug().Int("status", resp.StatusCode).Msg("bond response")

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return retryableStatus(resp.StatusCode), &APIError{
				StatusCode: resp.StatusCode,
				Body:       string(respBody),
			}
		}

		if !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
			result = map[string]any{"status": "success"}
			return false, nil
		}

		var decoded map[string]any
		if err := json.Unmarshal(respBody, &decoded); err != nil {
			return false, &APIError{cause: fmt.Errorf("decoding response: %w", err)}
		}
		result = decoded
		return false, nil
	})

	if retryErr != nil {
		return nil, retryErr
	}
	return result, nil
}

// BridgeInfo returns the bridge's own metadata.
func (c *Client) BridgeInfo(ctx context.Context) (map[string]any, error) {
	return c.request(ctx, http.MethodGet, "", nil)
}

// ListDevices returns the raw device map keyed by device id. Keys
// beginning with an underscore are bridge metadata, not devices.
func (c *Client) ListDevices(ctx context.Context) (map[string]any, error) {
	return c.request(ctx, http.MethodGet, "devices", nil)
}

// DeviceInfo returns detailed information for one device.
func (c *Client) DeviceInfo(ctx context.Context, deviceID string) (map[string]any, error) {
	return c.request(ctx, http.MethodGet, "devices/"+deviceID, nil)
}

// DeviceState returns the current state of one device.
func (c *Client) DeviceState(ctx context.Context, deviceID string) (map[string]any, error) {
	return c.request(ctx, http.MethodGet, "devices/"+deviceID+"/state", nil)
}

// SendAction performs a named action on a device. The body carries
// {"argument": n} when an argument is given, else an empty object.
func (c *Client) SendAction(ctx context.Context, deviceID string, action ActionType, argument *int) (map[string]any, error) {
	req := ActionRequest{DeviceID: deviceID, Action: action, Argument: argument}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	payload := map[string]any{}
	if argument != nil {
		payload["argument"] = *argument
	}

	endpoint := fmt.Sprintf("devices/%s/actions/%s", deviceID, action)
	return c.request(ctx, http.MethodPut, endpoint, payload)
}

// TurnOn turns a device on.
func (c *Client) TurnOn(ctx context.Context, deviceID string) (map[string]any, error) {
	return c.SendAction(ctx, deviceID, ActionTurnOn, nil)
}

// TurnOff turns a device off.
func (c *Client) TurnOff(ctx context.Context, deviceID string) (map[string]any, error) {
	return c.SendAction(ctx, deviceID, ActionTurnOff, nil)
}

// SetSpeed sets a fan's speed. Speed 0 is redirected to TurnOff; the
// bridge never sees a SetSpeed action with argument 0.
func (c *Client) SetSpeed(ctx context.Context, deviceID string, speed int) (map[string]any, error) {
	if err := ValidateSpeed(speed); err != nil {
		return nil, err
	}
	if speed == 0 {
		return c.TurnOff(ctx, deviceID)
	}
	return c.SendAction(ctx, deviceID, ActionSetSpeed, &speed)
}

// SetDirection sets a fan's direction: 1 forward, -1 reverse.
func (c *Client) SetDirection(ctx context.Context, deviceID string, direction int) (map[string]any, error) {
	return c.SendAction(ctx, deviceID, ActionSetDirection, &direction)
}

// OpenShades opens shades completely.
func (c *Client) OpenShades(ctx context.Context, deviceID string) (map[string]any, error) {
	return c.SendAction(ctx, deviceID, ActionOpen, nil)
}

// CloseShades closes shades completely.
func (c *Client) CloseShades(ctx context.Context, deviceID string) (map[string]any, error) {
	return c.SendAction(ctx, deviceID, ActionClose, nil)
}

// SetPosition moves shades to a position percentage.
func (c *Client) SetPosition(ctx context.Context, deviceID string, position int) (map[string]any, error) {
	return c.SendAction(ctx, deviceID, ActionSetPosition, &position)
}

// SetBrightness dims a light to a brightness percentage.
func (c *Client) SetBrightness(ctx context.Context, deviceID string, brightness int) (map[string]any, error) {
	return c.SendAction(ctx, deviceID, ActionSetBrightness, &brightness)
}
