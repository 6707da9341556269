package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ayusman/mudra/internal/detector"
)

var predicates = map[Symbol]Predicate{
	Stop:       IsOpenPalm,
	Peace:      IsPeace,
	Fist:       IsFist,
	OneFinger:  IsOneFinger,
	ThumbsUp:   IsThumbsUp,
	ThumbsDown: IsThumbsDown,
}

func TestPredicates_Fixtures(t *testing.T) {
	tests := []struct {
		name string
		hand detector.HandLandmarks
		want Symbol
	}{
		{"open palm", detector.OpenPalmLandmarks(), Stop},
		{"peace", detector.PeaceLandmarks(), Peace},
		{"fist", detector.FistLandmarks(), Fist},
		{"one finger", detector.OneFingerLandmarks(), OneFinger},
		{"thumbs up", detector.ThumbsUpLandmarks(), ThumbsUp},
		{"thumbs down", detector.ThumbsDownLandmarks(), ThumbsDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for sym, detect := range predicates {
				got := detect(&tt.hand)
				assert.Equal(t, sym == tt.want, got, "%v predicate on %s", sym, tt.name)
			}
		})
	}
}

func setFinger(h *detector.HandLandmarks, f finger, tipY, pipY float64) {
	h.Points[f.tip].Y = tipY
	h.Points[f.pip].Y = pipY
}

func TestFingerTests(t *testing.T) {
	tests := []struct {
		name         string
		tipY, pipY   float64
		wantExtended bool
		wantFolded   bool
	}{
		{"tip above pip", 0.3, 0.5, true, false},
		{"tip below pip", 0.6, 0.5, false, true},
		{"tip level with pip", 0.5, 0.5, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h detector.HandLandmarks
			setFinger(&h, middle, tt.tipY, tt.pipY)

			assert.Equal(t, tt.wantExtended, extended(&h, middle))
			assert.Equal(t, tt.wantFolded, folded(&h, middle))
		})
	}
}

func TestIsFist_EachConditionRequired(t *testing.T) {
	base := detector.FistLandmarks()
	assert.True(t, IsFist(&base))

	for _, f := range allFingers {
		t.Run("extend "+f.tip.String(), func(t *testing.T) {
			h := detector.FistLandmarks()
			setFinger(&h, f, 0.40, 0.55)
			assert.False(t, IsFist(&h))
		})
	}

	t.Run("thumb spread out", func(t *testing.T) {
		h := detector.FistLandmarks()
		h.Points[detector.ThumbTip].X = 0.75
		assert.False(t, IsFist(&h))
	})

	t.Run("thumb spread to the left", func(t *testing.T) {
		h := detector.FistLandmarks()
		h.Points[detector.ThumbTip].X = 0.30
		assert.False(t, IsFist(&h))
	})
}

func TestThumbThresholdBoundaries(t *testing.T) {
	// Wrist at x=0 keeps the spread exactly representable.
	withSpread := func(base detector.HandLandmarks, spread float64) detector.HandLandmarks {
		base.Points[detector.Wrist].X = 0
		base.Points[detector.ThumbTip].X = spread
		return base
	}

	tests := []struct {
		name   string
		base   detector.HandLandmarks
		spread float64
		pred   Predicate
		want   bool
	}{
		{"fist just inside", detector.FistLandmarks(), 0.07, IsFist, true},
		{"fist at threshold", detector.FistLandmarks(), FistThumbTuck, IsFist, false},
		{"fist in gap", detector.FistLandmarks(), 0.09, IsFist, false},
		{"stop in gap", detector.OpenPalmLandmarks(), 0.09, IsOpenPalm, false},
		{"stop at threshold", detector.OpenPalmLandmarks(), StopThumbSpread, IsOpenPalm, false},
		{"stop just outside", detector.OpenPalmLandmarks(), 0.11, IsOpenPalm, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := withSpread(tt.base, tt.spread)
			assert.Equal(t, tt.want, tt.pred(&h))
		})
	}

	t.Run("folded fingers in gap match neither", func(t *testing.T) {
		h := withSpread(detector.FistLandmarks(), 0.09)
		assert.False(t, IsFist(&h))
		assert.False(t, IsOpenPalm(&h))
	})
}

func TestThumbDirection(t *testing.T) {
	tests := []struct {
		name      string
		tipY, ipY float64
		wantUp    bool
		wantDown  bool
	}{
		{"above ip and knuckle", 0.40, 0.50, true, false},
		{"above ip below knuckle", 0.68, 0.75, false, false},
		{"below ip and knuckle", 0.90, 0.80, false, true},
		{"below ip above knuckle", 0.62, 0.55, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := detector.FistLandmarks()
			h.Points[detector.IndexMCP].Y = 0.66
			h.Points[detector.ThumbTip] = detector.Point3D{X: 0.62, Y: tt.tipY}
			h.Points[detector.ThumbIP] = detector.Point3D{X: 0.62, Y: tt.ipY}

			assert.Equal(t, tt.wantUp, IsThumbsUp(&h))
			assert.Equal(t, tt.wantDown, IsThumbsDown(&h))
		})
	}

	t.Run("extended finger blocks thumbs up", func(t *testing.T) {
		h := detector.ThumbsUpLandmarks()
		setFinger(&h, pinky, 0.45, 0.60)
		assert.False(t, IsThumbsUp(&h))
	})
}

func TestIsPeace_ThumbIgnored(t *testing.T) {
	for _, x := range []float64{0.2, 0.5, 0.9} {
		h := detector.PeaceLandmarks()
		h.Points[detector.ThumbTip].X = x
		assert.True(t, IsPeace(&h), "thumb x=%v", x)
	}
}
