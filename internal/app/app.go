// Package app runs the mudra frame loop: capture, hand detection, gesture tracking and overlay rendering.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/logger"
	"github.com/ayusman/mudra/internal/metrics"
	"github.com/ayusman/mudra/internal/overlay"
	"github.com/ayusman/mudra/internal/store"
)

// Loop tuning.
const (
	// MaxReadFailures is how many consecutive camera read errors end the loop.
	MaxReadFailures = 30
	// ReadRetryDelay is the pause after a failed camera read.
	ReadRetryDelay = 50 * time.Millisecond

	subscriberBuffer = 8
)

// ErrMissingComponent is returned by New when a required collaborator is nil.
var ErrMissingComponent = errors.New("missing app component")

// ActionSink receives gesture transitions. Notify is called from the frame loop
// and must not block.
type ActionSink interface {
	Notify(ctx context.Context, t gesture.Transition, frame int64, sessionID string)
}

// Config holds the collaborators of the frame loop. Store, Metrics, Display and
// Actions are optional.
type Config struct {
	Camera   capture.Camera
	Detector detector.Detector
	Tracker  *gesture.Tracker
	Renderer *overlay.Renderer
	Store    *store.Store
	Metrics  *metrics.Metrics
	Display  Display
	Actions  ActionSink

	// DrawLandmarks draws the hand skeleton before the gesture overlay.
	DrawLandmarks bool

	// EncodeFrames keeps a JPEG of the latest composited frame for LatestJPEG.
	EncodeFrames bool
}

// Snapshot is a read-only view of the loop after its most recent frame.
type Snapshot struct {
	Decision    gesture.Symbol        `json:"decision"`
	HandPresent bool                  `json:"hand_present"`
	Enabled     bool                  `json:"enabled"`
	Frame       int64                 `json:"frame"`
	SessionID   string                `json:"session_id,omitempty"`
	Gestures    []gesture.SymbolState `json:"gestures"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// App owns the frame loop. The tracker and frame buffers are touched only by the
// loop goroutine; everything else is guarded by mu.
type App struct {
	config Config

	mu        sync.RWMutex
	enabled   bool
	snapshot  Snapshot
	published bool
	jpeg      []byte
	session   *store.Session
	subs      map[chan Snapshot]struct{}

	cancel context.CancelFunc
	done   chan struct{}
	runErr error
}

// New creates an App. Camera, Detector, Tracker and Renderer are required.
func New(config Config) (*App, error) {
	switch {
	case config.Camera == nil:
		return nil, fmt.Errorf("camera: %w", ErrMissingComponent)
	case config.Detector == nil:
		return nil, fmt.Errorf("detector: %w", ErrMissingComponent)
	case config.Tracker == nil:
		return nil, fmt.Errorf("tracker: %w", ErrMissingComponent)
	case config.Renderer == nil:
		return nil, fmt.Errorf("renderer: %w", ErrMissingComponent)
	}
	if config.Display == nil {
		config.Display = Headless{}
	}

	return &App{
		config:   config,
		enabled:  true,
		snapshot: Snapshot{Enabled: true, Gestures: config.Tracker.State()},
		subs:     make(map[chan Snapshot]struct{}),
	}, nil
}

// SetEnabled enables or disables hand detection. While disabled every frame
// counts as "no hand", so active gestures fade out through their debouncers.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
	a.snapshot.Enabled = enabled
}

// IsEnabled returns whether hand detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// Snapshot returns the state published after the latest frame.
func (a *App) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	snap := a.snapshot
	snap.Gestures = append([]gesture.SymbolState(nil), a.snapshot.Gestures...)
	return snap
}

// LatestJPEG returns the most recent composited frame, or nil if none was encoded.
func (a *App) LatestJPEG() []byte {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.jpeg
}

// Session returns the store session of the current run, if any.
func (a *App) Session() *store.Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session
}

// Subscribe registers for snapshots published whenever the decision changes.
// Slow subscribers miss updates rather than stall the loop. Call cancel to unsubscribe.
func (a *App) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, subscriberBuffer)

	a.mu.Lock()
	a.subs[ch] = struct{}{}
	a.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			a.mu.Lock()
			delete(a.subs, ch)
			close(ch)
			a.mu.Unlock()
		})
	}
	return ch, cancel
}

// Start runs the frame loop in the background until Stop is called or ctx ends.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.done != nil {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	a.cancel = cancel
	a.done = done

	go func() {
		defer close(done)
		err := a.Run(ctx)
		if err != nil {
			logger.Errorf(ctx, "frame loop stopped: %v", err)
		}
		a.mu.Lock()
		a.runErr = err
		a.mu.Unlock()
	}()

	return nil
}

// Done is closed when a loop started with Start returns. It is nil before Start.
func (a *App) Done() <-chan struct{} {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.done
}

// Stop halts a loop started with Start, waits for it, and returns its error.
func (a *App) Stop() error {
	a.mu.Lock()
	cancel, done := a.cancel, a.done
	a.cancel, a.done = nil, nil
	a.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	<-done

	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.runErr
}

func (a *App) startSession(ctx context.Context) error {
	if a.config.Store == nil {
		return nil
	}

	sess, err := a.config.Store.Sessions().Start()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	a.mu.Lock()
	a.session = sess
	a.snapshot.SessionID = sess.ID
	a.mu.Unlock()

	logger.InfoKV(ctx, "session started", "session", sess.ID)
	return nil
}

func (a *App) endSession(ctx context.Context) {
	a.mu.RLock()
	sess, frames := a.session, a.snapshot.Frame
	a.mu.RUnlock()

	if sess == nil {
		return
	}
	if err := a.config.Store.Sessions().End(sess.ID, frames); err != nil {
		logger.WarnKV(ctx, "end session failed", "session", sess.ID, "error", err)
		return
	}
	logger.InfoKV(ctx, "session ended", "session", sess.ID, "frames", frames)
}
