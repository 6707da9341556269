package gesture

import (
	"fmt"
	"image/color"
)

// Spec describes everything needed to detect, debounce and draw one gesture.
type Spec struct {
	Symbol           Symbol
	Detect           Predicate
	ActivateFrames   int
	DeactivateFrames int

	// Icon is a file name resolved against the assets directory.
	Icon           string
	Label          string
	LabelScale     float64
	LabelColor     color.RGBA
	LabelThickness int
}

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

const defaultLabelThickness = 3

// DefaultSpecs returns the built-in specs in Symbols() order.
func DefaultSpecs() []Spec {
	return []Spec{
		newSpec(Stop, IsOpenPalm, "stop.png", "STOP", 1.2, red),
		newSpec(Peace, IsPeace, "peace.png", "PEACE", 1.2, green),
		newSpec(Fist, IsFist, "fist.png", "FIST", 1.2, white),
		newSpec(OneFinger, IsOneFinger, "one.png", "ONE", 1.2, white),
		newSpec(ThumbsUp, IsThumbsUp, "thumbs_up.png", "THUMBS UP", 1.0, green),
		newSpec(ThumbsDown, IsThumbsDown, "thumbs_down.png", "THUMBS DOWN", 1.0, red),
	}
}

func newSpec(sym Symbol, detect Predicate, icon, label string, scale float64, c color.RGBA) Spec {
	return Spec{
		Symbol:           sym,
		Detect:           detect,
		ActivateFrames:   DefaultActivateFrames,
		DeactivateFrames: DefaultDeactivateFrames,
		Icon:             icon,
		Label:            label,
		LabelScale:       scale,
		LabelColor:       c,
		LabelThickness:   defaultLabelThickness,
	}
}

// Validate checks the spec can be driven by a Tracker.
func (s Spec) Validate() error {
	if !s.Symbol.Valid() {
		return fmt.Errorf("invalid symbol %v", s.Symbol)
	}
	if s.Detect == nil {
		return fmt.Errorf("%v: predicate is nil", s.Symbol)
	}
	if s.ActivateFrames < 1 || s.DeactivateFrames < 1 {
		return fmt.Errorf("%v: thresholds must be >= 1, got %d/%d",
			s.Symbol, s.ActivateFrames, s.DeactivateFrames)
	}
	return nil
}
