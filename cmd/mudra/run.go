package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/assets"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/logger"
	"github.com/ayusman/mudra/internal/metrics"
	"github.com/ayusman/mudra/internal/overlay"
	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

type runOptions struct {
	headless bool
	withTray bool
	mock     bool
	addr     string
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the camera loop and gesture overlay",
		Long: `Start capturing from the configured camera, recognize gestures and draw
the overlay into the "Hand Tracking" window. Press ESC in the window to exit.

Every gesture icon is loaded before the first frame; a missing or unreadable
icon aborts startup.

Examples:
  # Run with the preview window
  mudra run

  # Run without a window, serving state on :8080
  mudra run --headless --addr :8080

  # Run from the system tray
  mudra run --tray`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			if opts.addr != "" {
				cfg.Server.Addr = opts.addr
			}
			return runLoop(cmd.Context(), cfg, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.headless, "headless", false, "do not open the preview window")
	cmd.Flags().BoolVar(&opts.withTray, "tray", false, "show a system tray menu (implies --headless)")
	cmd.Flags().BoolVar(&opts.mock, "mock-detector", false, "use a detector that never finds a hand")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "status server address, overrides server.addr")

	return cmd
}

// newTracker builds the gesture tracker from the configured specs and priority.
func newTracker(cfg *config.Config) (*gesture.Tracker, []gesture.Spec, error) {
	specs, err := cfg.Specs()
	if err != nil {
		return nil, nil, err
	}

	order, err := cfg.PriorityOrder()
	if err != nil {
		return nil, nil, err
	}

	arbiter, err := gesture.NewArbiter(order)
	if err != nil {
		return nil, nil, err
	}

	tracker, err := gesture.NewTracker(specs, arbiter)
	if err != nil {
		return nil, nil, err
	}
	return tracker, specs, nil
}

func overlayLayout(cfg *config.Config) overlay.Layout {
	return overlay.Layout{
		Icon:          image.Pt(cfg.Overlay.X, cfg.Overlay.Y),
		Label:         image.Pt(cfg.Overlay.LabelX, cfg.Overlay.LabelY),
		FallbackAlpha: cfg.Overlay.FallbackAlpha,
	}
}

func newDetector(ctx context.Context, cfg *config.Config, mock bool) detector.Detector {
	if mock {
		return detector.NewMockDetector()
	}

	mp, err := detector.NewMediaPipeDetector(detector.Config{
		MaxHands:        cfg.Detector.MaxHands,
		ModelComplexity: cfg.Detector.ModelComplexity,
		MinConfidence:   cfg.Detector.MinConfidence,
		MinTrackingConf: cfg.Detector.MinTrackingConfidence,
	})
	if err != nil {
		logger.Warnf(ctx, "MediaPipe not available (%v), using mock detector", err)
		return detector.NewMockDetector()
	}
	logger.Info(ctx, "using MediaPipe hand detection")
	return mp
}

// newDispatcher discovers plugins and checks every configured binding against them.
// It returns nil when no bindings are configured.
func newDispatcher(ctx context.Context, cfg *config.Config) (*plugin.Dispatcher, error) {
	bindings, err := cfg.ActionBindings()
	if err != nil {
		return nil, err
	}
	if len(bindings) == 0 {
		return nil, nil
	}

	manager := plugin.NewManager(cfg.Actions.Dir)
	if err := manager.Discover(ctx); err != nil {
		return nil, fmt.Errorf("discover plugins: %w", err)
	}

	d := plugin.NewDispatcher(manager, plugin.NewExecutor(cfg.ActionTimeout()), bindings, cfg.Actions.QueueSize)
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("action bindings: %w", err)
	}

	logger.InfoKV(ctx, "gesture actions bound", "plugins", len(manager.List()), "bindings", d.Len(), "dir", manager.PluginDir())
	return d, nil
}

func runLoop(ctx context.Context, cfg *config.Config, opts *runOptions) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithName(ctx, "mudra")

	tracker, specs, err := newTracker(cfg)
	if err != nil {
		return err
	}

	icons := assets.NewCache(cfg.Assets.Dir)
	defer icons.Close()

	renderer := overlay.NewRenderer(icons, specs, overlayLayout(cfg))
	if err := renderer.Preload(); err != nil {
		logger.ErrorKV(ctx, "gesture icons unavailable", "dir", icons.Dir(), "error", err)
		return fmt.Errorf("preload icons: %w", err)
	}
	logger.InfoKV(ctx, "gesture icons loaded", "count", icons.Len(), "dir", icons.Dir())

	det := newDetector(ctx, cfg, opts.mock)
	defer det.Close()

	var st *store.Store
	enabled := true
	if cfg.Store.Path != "" {
		st, err = store.New(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
		enabled = st.Settings().Bool(store.SettingRecognitionEnabled, true)
	}

	dispatcher, err := newDispatcher(ctx, cfg)
	if err != nil {
		return err
	}
	var actions app.ActionSink
	if dispatcher != nil {
		dispatcher.Start(ctx)
		defer dispatcher.Close()
		actions = dispatcher
	}

	m := metrics.New()

	var display app.Display = app.Headless{}
	if !opts.headless && !opts.withTray {
		display = app.NewWindow(app.WindowTitle)
	}
	defer display.Close()

	a, err := app.New(app.Config{
		Camera: capture.NewCamera(capture.Config{
			Device: cfg.Camera.Device,
			Width:  cfg.Camera.Width,
			Height: cfg.Camera.Height,
			Mirror: cfg.Camera.Mirror,
		}),
		Detector:      det,
		Tracker:       tracker,
		Renderer:      renderer,
		Store:         st,
		Metrics:       m,
		Display:       display,
		Actions:       actions,
		DrawLandmarks: cfg.Overlay.DrawLandmarks,
		EncodeFrames:  cfg.Server.Addr != "",
	})
	if err != nil {
		return err
	}
	a.SetEnabled(enabled)

	serverErr := make(chan error, 1)
	if cfg.Server.Addr != "" {
		srv := server.New(server.Config{Source: a, Store: st, Metrics: m})
		go func() {
			if err := srv.ListenAndServe(ctx, cfg.Server.Addr); err != nil {
				logger.ErrorKV(ctx, "status server failed", "error", err)
				serverErr <- err
				stop()
			}
		}()
	}

	setEnabled := func(enabled bool) {
		a.SetEnabled(enabled)
		logger.InfoKV(ctx, "recognition toggled", "enabled", enabled)
		if st == nil {
			return
		}
		if err := st.Settings().SetBool(store.SettingRecognitionEnabled, enabled); err != nil {
			logger.WarnKV(ctx, "persist recognition setting failed", "error", err)
		}
	}

	if opts.withTray {
		err = runWithTray(ctx, a, cfg, enabled, setEnabled, stop)
	} else {
		err = a.Run(ctx)
	}

	select {
	case srvErr := <-serverErr:
		return errors.Join(err, srvErr)
	default:
		return err
	}
}

// runWithTray runs the loop in the background while the tray owns the main goroutine.
func runWithTray(ctx context.Context, a *app.App, cfg *config.Config, enabled bool, setEnabled func(bool), stop func()) error {
	statusURL := ""
	if cfg.Server.Addr != "" {
		statusURL = "http://" + cfg.Server.Addr + "/api/state"
	}

	tr := tray.New(enabled, statusURL)
	tr.OnToggle(setEnabled)
	tr.OnOpenStatus(func() {
		logger.InfoKV(ctx, "status page", "url", statusURL)
	})
	tr.OnQuit(stop)

	if err := a.Start(ctx); err != nil {
		return err
	}

	snapshots, unsubscribe := a.Subscribe()
	defer unsubscribe()

	decisions := make(chan gesture.Symbol, 1)
	go func() {
		defer close(decisions)
		for snap := range snapshots {
			select {
			case decisions <- snap.Decision:
			case <-ctx.Done():
				return
			}
		}
	}()
	go tr.Follow(ctx, decisions)

	go func() {
		select {
		case <-a.Done():
		case <-ctx.Done():
		}
		tr.Quit()
	}()

	tr.Run()
	return a.Stop()
}
