package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/lumenwm/lumen/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	// Connect to socket
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	// Set deadline
	conn.SetDeadline(time.Now().Add(c.timeout))

	// Marshal request
	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// Send request
	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	// Read response
	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Parse response
	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	// Check for error response
	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

// Reload sends a RELOAD command to the daemon
func (c *Client) Reload() error {
	req := &Request{
		Command: CommandReload,
	}

	_, err := c.sendRequest(req)
	return err
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	req := &Request{
		Command: CommandGetStatus,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}

	return &status, nil
}

// GetWindows retrieves window information
func (c *Client) GetWindows() (*WindowsData, error) {
	req := &Request{
		Command: CommandGetWindows,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}

	var windows WindowsData
	if err := json.Unmarshal(resp.Data, &windows); err != nil {
		return nil, fmt.Errorf("failed to parse windows data: %w", err)
	}

	return &windows, nil
}

// GetOutputs retrieves output information
func (c *Client) GetOutputs() (*OutputsData, error) {
	req := &Request{
		Command: CommandGetOutputs,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}

	var outputs OutputsData
	if err := json.Unmarshal(resp.Data, &outputs); err != nil {
		return nil, fmt.Errorf("failed to parse outputs data: %w", err)
	}

	return &outputs, nil
}

// FocusWindow moves focus to the given window
func (c *Client) FocusWindow(windowID uint64) error {
	payload, err := json.Marshal(FocusWindowPayload{WindowID: windowID})
	if err != nil {
		return fmt.Errorf("failed to marshal focus payload: %w", err)
	}

	req := &Request{
		Command: CommandFocusWindow,
		Payload: payload,
	}

	_, err = c.sendRequest(req)
	return err
}

// ListPresets retrieves available effect presets and the current selection.
func (c *Client) ListPresets() (*PresetsData, error) {
	req := &Request{
		Command: CommandListPresets,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}

	var data PresetsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse presets data: %w", err)
	}

	return &data, nil
}

// ApplyPreset switches the daemon's active effect preset.
func (c *Client) ApplyPreset(presetName string) error {
	payload, err := json.Marshal(ApplyPresetPayload{PresetName: presetName})
	if err != nil {
		return fmt.Errorf("failed to marshal preset payload: %w", err)
	}

	req := &Request{
		Command: CommandApplyPreset,
		Payload: payload,
	}

	_, err = c.sendRequest(req)
	return err
}

// ApplyEffect starts a transition on a window. A zero windowID targets
// nothing in particular; a zero durationMS uses the daemon's default.
func (c *Client) ApplyEffect(effectName string, windowID uint64, durationMS int) error {
	payload, err := json.Marshal(ApplyEffectPayload{
		EffectName: effectName,
		WindowID:   windowID,
		DurationMS: durationMS,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal effect payload: %w", err)
	}

	req := &Request{
		Command: CommandApplyEffect,
		Payload: payload,
	}

	_, err = c.sendRequest(req)
	return err
}

// SetEffectsEnabled toggles the daemon's effects pipeline.
func (c *Client) SetEffectsEnabled(enabled bool) error {
	payload, err := json.Marshal(SetEffectsEnabledPayload{Enabled: enabled})
	if err != nil {
		return fmt.Errorf("failed to marshal enable payload: %w", err)
	}

	req := &Request{
		Command: CommandSetEffectsEnabled,
		Payload: payload,
	}

	_, err = c.sendRequest(req)
	return err
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
