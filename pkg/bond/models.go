package bond

import "fmt"

// DeviceType identifies the kind of device behind the bridge.
type DeviceType string

const (
	DeviceTypeFan             DeviceType = "CF" // Ceiling Fan
	DeviceTypeFireplace       DeviceType = "FP" // Fireplace
	DeviceTypeGeneric         DeviceType = "GX" // Generic device
	DeviceTypeLight           DeviceType = "LT" // Light
	DeviceTypeMotorizedShades DeviceType = "MS" // Motorized Shades
	DeviceTypeGarageDoor      DeviceType = "GD" // Garage Door
)

// ActionType is a named command the bridge relays to a device.
type ActionType string

const (
	ActionTurnOn             ActionType = "TurnOn"
	ActionTurnOff            ActionType = "TurnOff"
	ActionTogglePower        ActionType = "TogglePower"
	ActionSetSpeed           ActionType = "SetSpeed"
	ActionIncreaseSpeed      ActionType = "IncreaseSpeed"
	ActionDecreaseSpeed      ActionType = "DecreaseSpeed"
	ActionSetDirection       ActionType = "SetDirection"
	ActionToggleDirection    ActionType = "ToggleDirection"
	ActionSetBrightness      ActionType = "SetBrightness"
	ActionIncreaseBrightness ActionType = "IncreaseBrightness"
	ActionDecreaseBrightness ActionType = "DecreaseBrightness"
	ActionOpen               ActionType = "Open"
	ActionClose              ActionType = "Close"
	ActionSetPosition        ActionType = "SetPosition"
	ActionHold               ActionType = "Hold"
	ActionPreset             ActionType = "Preset"
)

const (
	MaxSpeed      = 8
	MaxPercentage = 100
)

// DeviceInfo describes a device paired with the bridge.
type DeviceInfo struct {
	Name       string         `json:"name"`
	Type       DeviceType     `json:"type"`
	Location   string         `json:"location,omitempty"`
	Actions    []ActionType   `json:"actions,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
	State      map[string]any `json:"state,omitempty"`
}

// DeviceState is the readable status of a device. Fields are pointers
// because not every device supports every field.
type DeviceState struct {
	Power      *int `json:"power,omitempty"`      // 0 = off, 1 = on
	Speed      *int `json:"speed,omitempty"`      // fan speed (0-8)
	Direction  *int `json:"direction,omitempty"`  // 1 = forward, -1 = reverse
	Brightness *int `json:"brightness,omitempty"` // light brightness (0-100)
	Position   *int `json:"position,omitempty"`   // shade position (0-100)
	Timer      *int `json:"timer,omitempty"`      // timer in seconds
}

// Validate checks every present field against its range constraint.
// Absent fields are unconstrained.
func (s *DeviceState) Validate() error {
	if s.Speed != nil {
		if err := ValidateSpeed(*s.Speed); err != nil {
			return err
		}
	}
	if s.Brightness != nil {
		if err := ValidatePercentage("brightness", *s.Brightness); err != nil {
			return err
		}
	}
	if s.Position != nil {
		if err := ValidatePercentage("position", *s.Position); err != nil {
			return err
		}
	}
	if s.Direction != nil {
		if err := ValidateDirection(*s.Direction); err != nil {
			return err
		}
	}
	return nil
}

// BridgeInfo is the bridge's own metadata. Read-only, no validation.
type BridgeInfo struct {
	Name      string `json:"name"`
	Location  string `json:"location,omitempty"`
	Bluelight *bool  `json:"bluelight,omitempty"`
	MAC       string `json:"mac,omitempty"`
	FWVersion string `json:"fw_ver,omitempty"`
	HWVersion string `json:"hw_ver,omitempty"`
	UptimeS   *int   `json:"uptime_s,omitempty"`
	API       string `json:"api,omitempty"`
	Target    string `json:"target,omitempty"`
}

// ActionRequest pairs a device, an action and its optional argument.
type ActionRequest struct {
	DeviceID string     `json:"device_id"`
	Action   ActionType `json:"action"`
	Argument *int       `json:"argument,omitempty"`
}

// Validate checks the argument against the range keyed by the action.
// The argument's validity depends on which action carries it, so both
// fields are inspected together.
func (r *ActionRequest) Validate() error {
	if r.DeviceID == "" {
		return fmt.Errorf("device_id cannot be empty")
	}
	if r.Argument == nil {
		return nil
	}
	switch r.Action {
	case ActionSetSpeed:
		return ValidateSpeed(*r.Argument)
	case ActionSetBrightness:
		return ValidatePercentage("brightness", *r.Argument)
	case ActionSetPosition:
		return ValidatePercentage("position", *r.Argument)
	case ActionSetDirection:
		return ValidateDirection(*r.Argument)
	}
	return nil
}

// ValidateSpeed checks a fan speed value.
func ValidateSpeed(v int) error {
	if v < 0 || v > MaxSpeed {
		return fmt.Errorf("speed must be between 0 and %d", MaxSpeed)
	}
	return nil
}

// ValidatePercentage checks a 0-100 value, naming the field in the error.
func ValidatePercentage(field string, v int) error {
	if v < 0 || v > MaxPercentage {
		return fmt.Errorf("%s must be between 0 and %d", field, MaxPercentage)
	}
	return nil
}

// ValidateDirection checks a fan direction value.
func ValidateDirection(v int) error {
	if v != 1 && v != -1 {
		return fmt.Errorf("direction must be -1 (reverse) or 1 (forward)")
	}
	return nil
}
