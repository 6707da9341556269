package gesture

import (
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// Thresholds are in normalized image-width units.
const (
	// StopThumbSpread is the minimum thumb-to-wrist horizontal distance of an open palm.
	StopThumbSpread = 0.10

	// FistThumbTuck is the maximum thumb-to-wrist horizontal distance of a fist.
	FistThumbTuck = 0.08
)

// Predicate reports whether a hand matches a gesture. Predicates are pure and
// are only called with a non-nil hand.
type Predicate func(hand *detector.HandLandmarks) bool

type finger struct {
	pip, tip detector.Landmark
}

var (
	index  = finger{detector.IndexPIP, detector.IndexTip}
	middle = finger{detector.MiddlePIP, detector.MiddleTip}
	ring   = finger{detector.RingPIP, detector.RingTip}
	pinky  = finger{detector.PinkyPIP, detector.PinkyTip}

	allFingers = []finger{index, middle, ring, pinky}
)

// Image y grows downward, so an extended fingertip sits above its PIP joint.
// A tip level with its PIP is neither extended nor folded.
func extended(h *detector.HandLandmarks, f finger) bool {
	return h.At(f.tip).Y < h.At(f.pip).Y
}

func folded(h *detector.HandLandmarks, f finger) bool {
	return h.At(f.tip).Y > h.At(f.pip).Y
}

func allExtended(h *detector.HandLandmarks, fingers ...finger) bool {
	for _, f := range fingers {
		if !extended(h, f) {
			return false
		}
	}
	return true
}

func allFolded(h *detector.HandLandmarks, fingers ...finger) bool {
	for _, f := range fingers {
		if !folded(h, f) {
			return false
		}
	}
	return true
}

func thumbSpread(h *detector.HandLandmarks) float64 {
	return math.Abs(h.At(detector.ThumbTip).X - h.At(detector.Wrist).X)
}

// IsOpenPalm detects STOP: four fingers extended and the thumb spread out.
func IsOpenPalm(h *detector.HandLandmarks) bool {
	return allExtended(h, allFingers...) && thumbSpread(h) > StopThumbSpread
}

// IsPeace detects PEACE: index and middle extended, ring and pinky folded.
func IsPeace(h *detector.HandLandmarks) bool {
	return allExtended(h, index, middle) && allFolded(h, ring, pinky)
}

// IsFist detects FIST: four fingers folded and the thumb tucked near the wrist.
func IsFist(h *detector.HandLandmarks) bool {
	return allFolded(h, allFingers...) && thumbSpread(h) < FistThumbTuck
}

// IsOneFinger detects ONE_FINGER: index extended, the rest folded.
func IsOneFinger(h *detector.HandLandmarks) bool {
	return extended(h, index) && allFolded(h, middle, ring, pinky)
}

// IsThumbsUp detects THUMBS_UP: thumb tip above both its IP joint and the
// index knuckle, fingers folded.
func IsThumbsUp(h *detector.HandLandmarks) bool {
	tip := h.At(detector.ThumbTip).Y
	return tip < h.At(detector.ThumbIP).Y &&
		tip < h.At(detector.IndexMCP).Y &&
		allFolded(h, allFingers...)
}

// IsThumbsDown detects THUMBS_DOWN, the mirror of IsThumbsUp.
func IsThumbsDown(h *detector.HandLandmarks) bool {
	tip := h.At(detector.ThumbTip).Y
	return tip > h.At(detector.ThumbIP).Y &&
		tip > h.At(detector.IndexMCP).Y &&
		allFolded(h, allFingers...)
}
