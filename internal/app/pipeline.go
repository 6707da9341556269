package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/logger"
	"github.com/ayusman/mudra/internal/overlay"
	"github.com/ayusman/mudra/internal/store"
)

// Run opens the camera and processes frames until ctx ends, the display asks to
// quit, or a finite source runs out. Each frame is fully processed and shown
// before the next one is read.
func (a *App) Run(ctx context.Context) error {
	ctx = logger.WithName(ctx, "app")
	cam := a.config.Camera

	if err := cam.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	defer func() {
		if err := cam.Close(); err != nil {
			logger.WarnKV(ctx, "close camera failed", "error", err)
		}
	}()

	if err := a.startSession(ctx); err != nil {
		return err
	}
	defer a.endSession(ctx)

	logger.Info(ctx, "frame loop started")

	failures := 0
	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "frame loop cancelled")
			return nil
		default:
		}

		frame, err := cam.ReadFrame()
		if err != nil {
			if errors.Is(err, capture.ErrEndOfStream) {
				logger.Info(ctx, "capture finished")
				return nil
			}

			failures++
			if failures >= MaxReadFailures {
				return fmt.Errorf("read frame after %d attempts: %w", failures, err)
			}
			logger.DebugKV(ctx, "read frame failed", "error", err, "failures", failures)

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(ReadRetryDelay):
			}
			continue
		}
		failures = 0

		a.ProcessFrame(ctx, frame)
		quit := a.config.Display.Show(frame)
		frame.Close()

		if quit {
			logger.Info(ctx, "exit requested from display")
			return nil
		}
	}
}

// ProcessFrame runs one frame through detection, tracking and rendering, drawing
// into frame in place. A detector failure counts as "no hand" for that frame.
func (a *App) ProcessFrame(ctx context.Context, frame *gocv.Mat) gesture.Step {
	start := time.Now()

	var hand *detector.HandLandmarks
	if a.IsEnabled() {
		hands, err := a.config.Detector.Detect(frame)
		if err != nil {
			logger.WarnKV(ctx, "hand detection failed", "error", err)
		} else {
			hand = detector.First(hands)
		}
	}

	if hand != nil && a.config.DrawLandmarks {
		overlay.DrawLandmarks(frame, hand)
	}

	step := a.config.Tracker.Step(hand)

	a.mu.RLock()
	frameNo := a.snapshot.Frame + 1
	a.mu.RUnlock()

	for _, t := range step.Transitions {
		a.recordTransition(ctx, frameNo, t)
	}

	if step.Decision != gesture.None {
		if err := a.config.Renderer.Render(frame, step.Decision); err != nil {
			logger.WarnKV(ctx, "render overlay failed", "symbol", step.Decision, "error", err)
		}
	}

	a.config.Metrics.ObserveFrame(hand != nil, time.Since(start))
	a.publish(ctx, frameNo, step, hand != nil, frame)

	return step
}

func (a *App) recordTransition(ctx context.Context, frameNo int64, t gesture.Transition) {
	logger.InfoKV(ctx, "gesture transition", "symbol", t.Symbol, "active", t.Active, "frame", frameNo)
	a.config.Metrics.ObserveTransition(t)

	sess := a.Session()
	if a.config.Actions != nil {
		var id string
		if sess != nil {
			id = sess.ID
		}
		a.config.Actions.Notify(ctx, t, frameNo, id)
	}

	if a.config.Store == nil || sess == nil {
		return
	}

	event := &store.Event{
		SessionID: sess.ID,
		Symbol:    t.Symbol,
		Active:    t.Active,
		Frame:     frameNo,
	}
	if err := a.config.Store.Events().Record(event); err != nil {
		logger.WarnKV(ctx, "record gesture event failed", "symbol", t.Symbol, "error", err)
	}
}

func (a *App) publish(ctx context.Context, frameNo int64, step gesture.Step, handPresent bool, frame *gocv.Mat) {
	var jpeg []byte
	if a.config.EncodeFrames && frame != nil && !frame.Empty() {
		buf, err := gocv.IMEncode(gocv.JPEGFileExt, *frame)
		if err != nil {
			logger.DebugKV(ctx, "encode frame failed", "error", err)
		} else {
			jpeg = buf.GetBytes()
			buf.Close()
		}
	}

	gestures := a.config.Tracker.State()

	a.mu.Lock()
	prev := a.snapshot.Decision
	changed := !a.published || prev != step.Decision
	a.published = true

	a.snapshot.Decision = step.Decision
	a.snapshot.HandPresent = handPresent
	a.snapshot.Frame = frameNo
	a.snapshot.Gestures = gestures
	a.snapshot.UpdatedAt = time.Now().UTC()
	if jpeg != nil {
		a.jpeg = jpeg
	}
	a.mu.Unlock()

	if !changed {
		return
	}

	logger.DebugKV(ctx, "decision changed", "from", prev, "to", step.Decision, "frame", frameNo)

	snap := a.Snapshot()
	a.mu.RLock()
	defer a.mu.RUnlock()
	for ch := range a.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}
