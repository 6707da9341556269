package config

import (
	"errors"
	"fmt"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/logger"
)

var (
	errCameraSize      = errors.New("camera width and height must be positive")
	errMaxHands        = errors.New("detector.max_hands must be at least 1")
	errConfidence      = errors.New("detector confidences must be within [0,1]")
	errFallbackAlpha   = errors.New("overlay.fallback_alpha must be within [0,1]")
	errOverlayAnchor   = errors.New("overlay anchors must not be negative")
	errAssetsDir       = errors.New("assets.dir must be set")
	errThresholds      = errors.New("gesture thresholds must be at least 1")
	errUnknownLogLevel = errors.New("unknown log level")
	errActionLimits    = errors.New("actions.timeout_ms and actions.queue_size must be positive")
	errBinding         = errors.New("binding needs a plugin and an action")
)

// Validate checks value ranges, gesture keys and the priority order.
func (c *Config) Validate() error {
	if c == nil {
		return errConfigIsNotSet
	}

	if c.Camera.Width <= 0 || c.Camera.Height <= 0 {
		return errCameraSize
	}

	if c.Detector.MaxHands < 1 {
		return errMaxHands
	}
	if !unit(c.Detector.MinConfidence) || !unit(c.Detector.MinTrackingConfidence) {
		return errConfidence
	}

	if c.Assets.Dir == "" {
		return errAssetsDir
	}

	if !unit(c.Overlay.FallbackAlpha) {
		return errFallbackAlpha
	}
	if c.Overlay.X < 0 || c.Overlay.Y < 0 || c.Overlay.LabelX < 0 || c.Overlay.LabelY < 0 {
		return errOverlayAnchor
	}

	for key, g := range c.Gestures {
		sym, err := gesture.ParseSymbol(key)
		if err != nil || !sym.Valid() {
			return fmt.Errorf("gestures.%s: unknown gesture", key)
		}
		if g.ActivateFrames < 0 || g.DeactivateFrames < 0 {
			return fmt.Errorf("gestures.%s: %w", key, errThresholds)
		}
	}

	if _, err := c.PriorityOrder(); err != nil {
		return err
	}

	if c.Actions.TimeoutMS <= 0 || c.Actions.QueueSize <= 0 {
		return errActionLimits
	}
	if _, err := c.ActionBindings(); err != nil {
		return err
	}

	if _, ok := logger.ParseLogLevel(c.Log.Level); !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, c.Log.Level)
	}

	return nil
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}
