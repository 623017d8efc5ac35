package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/lumenwm/lumen/internal/compositor"
	"github.com/lumenwm/lumen/internal/config"
	"github.com/lumenwm/lumen/internal/effects"
	"github.com/lumenwm/lumen/internal/runtimepath"
)

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	cfg          *config.Config
	cfgMu        sync.RWMutex
	comp         *compositor.Compositor
	pipeline     *effects.Pipeline
	startTime    time.Time
	reloadChan   chan struct{}
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server
func NewServer(cfg *config.Config, comp *compositor.Compositor, pipeline *effects.Pipeline, reloadChan chan struct{}) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		cfg:        cfg,
		comp:       comp,
		pipeline:   pipeline,
		startTime:  time.Now(),
		reloadChan: reloadChan,
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	// Accept connections
	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	// Parse request
	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Handle command
	resp := s.handleCommand(req)

	// Send response
	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandReload:
		return s.handleReload()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetWindows:
		return s.handleGetWindows()
	case CommandGetOutputs:
		return s.handleGetOutputs()
	case CommandFocusWindow:
		return s.handleFocusWindow(req.Payload)
	case CommandListPresets:
		return s.handleListPresets()
	case CommandApplyPreset:
		return s.handleApplyPreset(req.Payload)
	case CommandApplyEffect:
		return s.handleApplyEffect(req.Payload)
	case CommandSetEffectsEnabled:
		return s.handleSetEffectsEnabled(req.Payload)
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

// handleReload reloads the configuration
func (s *Server) handleReload() *Response {
	log.Println("IPC: Received RELOAD command")

	// Load new config
	newCfg, err := config.Load()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}

	// Update config atomically
	s.cfgMu.Lock()
	s.cfg = newCfg
	s.cfgMu.Unlock()

	// Notify the main daemon via channel (non-blocking)
	select {
	case s.reloadChan <- struct{}{}:
	default:
	}

	log.Println("IPC: Config reloaded successfully")

	resp, _ := NewOKResponse(nil)
	return resp
}

// handleGetStatus returns current daemon status
func (s *Server) handleGetStatus() *Response {
	var activeID uint64
	if id, ok := s.comp.ActiveWindow(); ok {
		activeID = uint64(id)
	}

	status := StatusData{
		WindowCount:   len(s.comp.Windows()),
		OutputCount:   len(s.comp.Outputs()),
		ActiveWindow:  activeID,
		FPS:           s.comp.FPS(),
		FrameCount:    s.comp.FrameCount(),
		ActiveEffects: s.pipeline.Manager().ActiveCount() + s.pipeline.Animations().Count(),
		EffectsPreset: s.pipeline.CurrentPreset(),
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		DaemonRunning: true,
	}

	resp, _ := NewOKResponse(status)
	return resp
}

// handleGetWindows returns information about all windows
func (s *Server) handleGetWindows() *Response {
	windows := s.comp.Windows()

	infos := make([]WindowInfo, len(windows))
	for i, w := range windows {
		infos[i] = WindowInfo{
			ID:         uint64(w.ID),
			Title:      w.Title,
			AppID:      w.AppID,
			X:          w.Geometry.X,
			Y:          w.Geometry.Y,
			Width:      w.Geometry.Width,
			Height:     w.Geometry.Height,
			Visible:    w.Visible,
			Minimized:  w.Minimized,
			Maximized:  w.Maximized,
			Fullscreen: w.Fullscreen,
			Focused:    w.Focused,
			Opacity:    w.Opacity,
			ZOrder:     w.ZOrder,
		}
	}

	resp, _ := NewOKResponse(WindowsData{Windows: infos})
	return resp
}

// handleGetOutputs returns information about all outputs
func (s *Server) handleGetOutputs() *Response {
	outputs := s.comp.Outputs()

	infos := make([]OutputInfo, len(outputs))
	for i, o := range outputs {
		infos[i] = OutputInfo{
			ID:          uint32(o.ID),
			Name:        o.Name,
			X:           o.X,
			Y:           o.Y,
			Width:       o.Width,
			Height:      o.Height,
			RefreshRate: o.RefreshRate,
			ScaleFactor: o.ScaleFactor,
			Enabled:     o.Enabled,
			Primary:     o.Primary,
		}
	}

	resp, _ := NewOKResponse(OutputsData{Outputs: infos})
	return resp
}

// handleFocusWindow moves focus to the requested window
func (s *Server) handleFocusWindow(payload json.RawMessage) *Response {
	var req FocusWindowPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid focus payload: %v", err))
	}
	if req.WindowID == 0 {
		return NewErrorResponse("window_id is required")
	}

	if !s.comp.SetActiveWindow(compositor.WindowID(req.WindowID)) {
		return NewErrorResponse(fmt.Sprintf("Unknown window: %d", req.WindowID))
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

// handleListPresets returns the registered effect presets
func (s *Server) handleListPresets() *Response {
	data := PresetsData{
		Presets:       s.pipeline.Presets(),
		CurrentPreset: s.pipeline.CurrentPreset(),
	}

	resp, _ := NewOKResponse(data)
	return resp
}

// handleApplyPreset switches the active effect preset
func (s *Server) handleApplyPreset(payload json.RawMessage) *Response {
	var req ApplyPresetPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid preset payload: %v", err))
	}
	if req.PresetName == "" {
		return NewErrorResponse("preset_name is required")
	}

	if err := s.pipeline.ApplyPreset(req.PresetName); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to apply preset: %v", err))
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

// handleApplyEffect starts a transition on a window
func (s *Server) handleApplyEffect(payload json.RawMessage) *Response {
	var req ApplyEffectPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid effect payload: %v", err))
	}
	if req.EffectName == "" {
		return NewErrorResponse("effect_name is required")
	}

	kind, err := effects.ParseKind(req.EffectName)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Unknown effect: %s", req.EffectName))
	}

	s.cfgMu.RLock()
	durationMS := req.DurationMS
	if durationMS <= 0 {
		durationMS = s.cfg.Effects.DefaultDurationMS
	}
	s.cfgMu.RUnlock()

	duration := time.Duration(durationMS) * time.Millisecond
	if err := s.pipeline.Apply(kind, duration, req.WindowID, time.Now()); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to apply effect: %v", err))
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

// handleSetEffectsEnabled toggles the effects pipeline
func (s *Server) handleSetEffectsEnabled(payload json.RawMessage) *Response {
	var req SetEffectsEnabledPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid enable payload: %v", err))
	}

	s.pipeline.SetEnabled(req.Enabled)

	resp, _ := NewOKResponse(nil)
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

// GetConfig returns the current config (thread-safe)
func (s *Server) GetConfig() *config.Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

// UpdateConfig updates the config (thread-safe)
func (s *Server) UpdateConfig(cfg *config.Config) {
	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()
	s.cfg = cfg
}
