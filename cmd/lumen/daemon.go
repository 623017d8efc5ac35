package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/lumenwm/lumen/internal/compositor"
	"github.com/lumenwm/lumen/internal/config"
	"github.com/lumenwm/lumen/internal/daemon"
	"github.com/lumenwm/lumen/internal/effects"
	"github.com/lumenwm/lumen/internal/geometry"
	"github.com/lumenwm/lumen/internal/input"
	"github.com/lumenwm/lumen/internal/ipc"
	"github.com/lumenwm/lumen/internal/runtimepath"
	"github.com/lumenwm/lumen/internal/x11"
)

// fallbackScreen sizes the gesture bounds when no output is known.
var fallbackScreen = geometry.Rect{Width: 1920, Height: 1080}

const (
	reconcileInterval = 10 * time.Second
	idleTickInterval  = 50 * time.Millisecond
)

func runDaemon() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded (preset: %s, gestures: %v)", cfg.Effects.Preset, cfg.Gestures.Enabled)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel(cfg.LogLevel),
	}))

	// Build the effects pipeline
	pipeline, err := cfg.BuildPipeline()
	if err != nil {
		log.Fatalf("Failed to build effects pipeline: %v", err)
	}

	// Build the compositor
	comp := compositor.New(cfg.CompositorSettings(), nil)
	if err := comp.Initialize(); err != nil {
		log.Fatalf("Failed to initialize compositor: %v", err)
	}
	comp.SetPipeline(pipeline)

	// Connect to X11 when a display is available; otherwise run headless.
	var conn *x11.Connection
	if os.Getenv("DISPLAY") != "" {
		conn, err = x11.NewConnection()
		if err != nil {
			log.Printf("Warning: X11 connection failed, running headless: %v", err)
			conn = nil
		}
	} else {
		log.Println("No DISPLAY set, running headless")
	}

	screen := fallbackScreen
	if conn != nil {
		if n, err := conn.SyncOutputs(comp); err != nil {
			log.Printf("Warning: output detection failed: %v", err)
		} else {
			log.Printf("Detected %d output(s)", n)
		}
		if primary, ok := comp.PrimaryOutput(); ok {
			screen = primary.Bounds()
		}
	}

	// Build the gesture recognizer set
	if gm := cfg.BuildGestureManager(screen); gm != nil {
		comp.SetGestureManager(gm)
	}

	// Write pid file
	if pidPath, err := runtimepath.PidPath(); err == nil {
		if err := os.WriteFile(pidPath, []byte(strconv.Itoa(os.Getpid())), 0644); err != nil {
			log.Printf("Warning: failed to write pid file: %v", err)
		} else {
			defer os.Remove(pidPath)
		}
	}

	// Create config reload channel
	reloadChan := make(chan struct{}, 1)

	// Start IPC server
	ipcServer, err := ipc.NewServer(cfg, comp, pipeline, reloadChan)
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	if err := ipcServer.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer ipcServer.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge X11 windows and input into the compositor.
	if conn != nil {
		sync := daemon.NewStateSynchronizer(comp, logger)
		reconciler := daemon.NewReconciler(daemon.ReconcilerConfig{
			Interval: reconcileInterval,
			Logger:   logger,
		}, sync, windowListerFromConnection(conn))

		// Immediate pass so the registry reflects pre-existing windows.
		reconciler.ReconcileNow()
		go reconciler.Run(ctx)

		bridge, err := x11.NewInputBridge(conn, func(ev *input.Event) {
			comp.ProcessInput(ev)
		})
		if err != nil {
			log.Printf("Warning: input bridge unavailable: %v", err)
		} else {
			bridge.StartIdleTicker(idleTickInterval)
			defer bridge.StopIdleTicker()
		}

		go conn.EventLoop()
		defer conn.Close()
	}

	// Setup signal handlers
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	// Handle signals and config reloads
	go func() {
		for {
			select {
			case sig := <-sigCh:
				switch sig {
				case syscall.SIGHUP:
					log.Println("Received SIGHUP, reloading config...")
					newCfg, err := config.Load()
					if err != nil {
						log.Printf("Config reload failed: %v", err)
						continue
					}
					ipcServer.UpdateConfig(newCfg)
					applyConfig(newCfg, comp, pipeline, screen)
					log.Println("Config reloaded successfully")

				case os.Interrupt, syscall.SIGTERM:
					log.Println("Shutting down lumen daemon...")
					cancel()
					comp.Stop()
					return
				}

			case <-reloadChan:
				// Config was reloaded via IPC, update components
				applyConfig(ipcServer.GetConfig(), comp, pipeline, screen)
			}
		}
	}()

	log.Println("lumen daemon started successfully")

	// Frame loop (blocking)
	if err := comp.Run(ctx); err != nil && err != context.Canceled {
		log.Printf("Frame loop exited: %v", err)
	}
	comp.Shutdown()
}

// applyConfig pushes reloaded tunables into the running components.
func applyConfig(cfg *config.Config, comp *compositor.Compositor, pipeline *effects.Pipeline, screen geometry.Rect) {
	pipeline.Manager().SetLimit(cfg.Effects.Limit)
	pipeline.SetEnabled(cfg.Effects.Enabled)
	if err := pipeline.ApplyPreset(cfg.Effects.Preset); err != nil {
		log.Printf("Config reload: preset %q unavailable: %v", cfg.Effects.Preset, err)
	}
	comp.SetGestureManager(cfg.BuildGestureManager(screen))
}

// windowListerFromConnection adapts the X11 bridge to the reconciler.
func windowListerFromConnection(conn *x11.Connection) daemon.WindowLister {
	return func() ([]daemon.ExternalWindow, error) {
		infos, err := conn.ListWindows()
		if err != nil {
			return nil, err
		}
		active, _ := conn.GetActiveWindow()

		windows := make([]daemon.ExternalWindow, len(infos))
		for i, info := range infos {
			windows[i] = daemon.ExternalWindow{
				Handle:   uint64(info.XID),
				Title:    info.Title,
				AppID:    info.AppID,
				Geometry: info.Geometry,
				Focused:  info.XID == active && active != 0,
			}
		}
		return windows, nil
	}
}

func slogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
