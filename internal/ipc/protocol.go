package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload            CommandType = "RELOAD"
	CommandGetStatus         CommandType = "GET_STATUS"
	CommandGetWindows        CommandType = "GET_WINDOWS"
	CommandGetOutputs        CommandType = "GET_OUTPUTS"
	CommandFocusWindow       CommandType = "FOCUS_WINDOW"
	CommandListPresets       CommandType = "LIST_PRESETS"
	CommandApplyPreset       CommandType = "APPLY_PRESET"
	CommandApplyEffect       CommandType = "APPLY_EFFECT"
	CommandSetEffectsEnabled CommandType = "SET_EFFECTS_ENABLED"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	WindowCount   int     `json:"window_count"`
	OutputCount   int     `json:"output_count"`
	ActiveWindow  uint64  `json:"active_window"`
	FPS           float64 `json:"fps"`
	FrameCount    uint64  `json:"frame_count"`
	ActiveEffects int     `json:"active_effects"`
	EffectsPreset string  `json:"effects_preset"`
	UptimeSeconds int64   `json:"uptime_seconds"`
	DaemonRunning bool    `json:"daemon_running"`
}

// WindowInfo represents information about a single window
type WindowInfo struct {
	ID         uint64  `json:"id"`
	Title      string  `json:"title"`
	AppID      string  `json:"app_id"`
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Visible    bool    `json:"visible"`
	Minimized  bool    `json:"minimized"`
	Maximized  bool    `json:"maximized"`
	Fullscreen bool    `json:"fullscreen"`
	Focused    bool    `json:"focused"`
	Opacity    float64 `json:"opacity"`
	ZOrder     int     `json:"z_order"`
}

// WindowsData represents the data returned by GET_WINDOWS
type WindowsData struct {
	Windows []WindowInfo `json:"windows"`
}

// OutputInfo represents information about a single output
type OutputInfo struct {
	ID          uint32  `json:"id"`
	Name        string  `json:"name"`
	X           int     `json:"x"`
	Y           int     `json:"y"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	RefreshRate float64 `json:"refresh_rate"`
	ScaleFactor float64 `json:"scale_factor"`
	Enabled     bool    `json:"enabled"`
	Primary     bool    `json:"primary"`
}

// OutputsData represents the data returned by GET_OUTPUTS
type OutputsData struct {
	Outputs []OutputInfo `json:"outputs"`
}

// FocusWindowPayload represents the payload for FOCUS_WINDOW
type FocusWindowPayload struct {
	WindowID uint64 `json:"window_id"`
}

// PresetsData represents the data returned by LIST_PRESETS
type PresetsData struct {
	Presets       []string `json:"presets"`
	CurrentPreset string   `json:"current_preset"`
}

// ApplyPresetPayload represents the payload for APPLY_PRESET
type ApplyPresetPayload struct {
	PresetName string `json:"preset_name"`
}

// ApplyEffectPayload represents the payload for APPLY_EFFECT
type ApplyEffectPayload struct {
	EffectName string `json:"effect_name"`
	WindowID   uint64 `json:"window_id,omitempty"`
	DurationMS int    `json:"duration_ms,omitempty"`
}

// SetEffectsEnabledPayload represents the payload for SET_EFFECTS_ENABLED
type SetEffectsEnabledPayload struct {
	Enabled bool `json:"enabled"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
