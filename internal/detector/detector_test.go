package detector

import (
	"errors"
	"strings"
	"testing"
)

func TestLandmark_String(t *testing.T) {
	tests := []struct {
		landmark Landmark
		want     string
	}{
		{Wrist, "WRIST"},
		{ThumbIP, "THUMB_IP"},
		{IndexMCP, "INDEX_FINGER_MCP"},
		{MiddlePIP, "MIDDLE_FINGER_PIP"},
		{PinkyTip, "PINKY_TIP"},
		{Landmark(-1), "UNKNOWN"},
		{Landmark(NumLandmarks), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.landmark.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHandLandmarks_At(t *testing.T) {
	hand := OpenPalmLandmarks()

	if got := hand.At(ThumbTip); got != hand.Points[4] {
		t.Errorf("At(ThumbTip) = %+v, want %+v", got, hand.Points[4])
	}
	if got := hand.At(Wrist); got.X != 0.5 || got.Y != 0.8 {
		t.Errorf("At(Wrist) = %+v, want {0.5 0.8 0}", got)
	}
}

func TestHandConnections_InRange(t *testing.T) {
	for _, c := range HandConnections {
		if c.From < 0 || int(c.From) >= NumLandmarks || c.To < 0 || int(c.To) >= NumLandmarks {
			t.Errorf("connection %v-%v out of range", c.From, c.To)
		}
	}
}

func TestFirst(t *testing.T) {
	if First(nil) != nil {
		t.Error("First(nil) should be nil")
	}

	hands := []HandLandmarks{FistLandmarks(), OpenPalmLandmarks()}
	got := First(hands)
	if got == nil {
		t.Fatal("First returned nil for non-empty slice")
	}
	if got != &hands[0] {
		t.Error("First should point at the first element")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxHands != 1 {
		t.Errorf("MaxHands = %d, want 1", cfg.MaxHands)
	}
	if cfg.MinConfidence != 0.6 || cfg.MinTrackingConf != 0.6 {
		t.Errorf("confidence = %v/%v, want 0.6/0.6", cfg.MinConfidence, cfg.MinTrackingConf)
	}
	if cfg.ModelComplexity != 1 {
		t.Errorf("ModelComplexity = %d, want 1", cfg.ModelComplexity)
	}
}

func TestMockDetector(t *testing.T) {
	t.Run("returns empty hands by default", func(t *testing.T) {
		mock := NewMockDetector()

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if hands != nil {
			t.Errorf("expected nil hands, got %v", hands)
		}
	})

	t.Run("returns configured hands", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetHands([]HandLandmarks{ThumbsUpLandmarks(), OpenPalmLandmarks()})

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(hands) != 2 {
			t.Errorf("expected 2 hands, got %d", len(hands))
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()

		expectedErr := errors.New("detection failed")
		mock.SetError(expectedErr)

		hands, err := mock.Detect(nil)

		if err != expectedErr {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if hands != nil {
			t.Errorf("expected nil hands when error is set, got %v", hands)
		}
	})

	t.Run("plays script then falls back", func(t *testing.T) {
		mock := NewMockDetector()
		fist := FistLandmarks()
		mock.Script(&fist, nil)
		mock.SetHands([]HandLandmarks{OpenPalmLandmarks()})

		first, _ := mock.Detect(nil)
		if len(first) != 1 || first[0].Points[ThumbTip] != fist.Points[ThumbTip] {
			t.Errorf("first scripted frame = %v, want fist", first)
		}

		second, _ := mock.Detect(nil)
		if len(second) != 0 {
			t.Errorf("second scripted frame should be empty, got %d hands", len(second))
		}

		third, _ := mock.Detect(nil)
		if len(third) != 1 {
			t.Errorf("after script expected fallback hand, got %d", len(third))
		}

		if mock.Calls() != 3 {
			t.Errorf("Calls() = %d, want 3", mock.Calls())
		}
	})

	t.Run("Close returns nil", func(t *testing.T) {
		if err := NewMockDetector().Close(); err != nil {
			t.Errorf("expected Close to return nil, got %v", err)
		}
	})

	t.Run("implements Detector interface", func(t *testing.T) {
		var _ Detector = (*MockDetector)(nil)
		var _ Detector = (*MediaPipeDetector)(nil)
	})
}

func TestDecodeResponse(t *testing.T) {
	points := make([]string, NumLandmarks)
	for i := range points {
		points[i] = `{"x":0.5,"y":0.5,"z":0}`
	}
	fullHand := `{"points":[` + strings.Join(points, ",") + `],"handedness":"Left","score":0.9}`
	shortHand := `{"points":[{"x":0.1,"y":0.1,"z":0}],"handedness":"Right","score":0.8}`

	tests := []struct {
		name     string
		line     string
		maxHands int
		want     int
		wantErr  bool
	}{
		{name: "no hands", line: `{"hands":[]}`, maxHands: 1, want: 0},
		{name: "one hand", line: `{"hands":[` + fullHand + `]}`, maxHands: 1, want: 1},
		{name: "capped at max hands", line: `{"hands":[` + fullHand + `,` + fullHand + `]}`, maxHands: 1, want: 1},
		{name: "unlimited", line: `{"hands":[` + fullHand + `,` + fullHand + `]}`, maxHands: 0, want: 2},
		{name: "incomplete hand dropped", line: `{"hands":[` + shortHand + `]}`, maxHands: 1, want: 0},
		{name: "invalid json", line: `not json`, maxHands: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hands, err := decodeResponse([]byte(tt.line), tt.maxHands)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(hands) != tt.want {
				t.Errorf("got %d hands, want %d", len(hands), tt.want)
			}
			for _, h := range hands {
				if h.Handedness != "Left" || h.Points[PinkyTip].X != 0.5 {
					t.Errorf("decoded hand = %+v", h)
				}
			}
		})
	}
}

func TestOpenPalmLandmarks(t *testing.T) {
	landmarks := OpenPalmLandmarks()

	t.Run("has correct handedness and score", func(t *testing.T) {
		if landmarks.Handedness != "Right" {
			t.Errorf("expected handedness Right, got %s", landmarks.Handedness)
		}
		if landmarks.Score < 0.9 {
			t.Errorf("expected score >= 0.9, got %f", landmarks.Score)
		}
	})

	t.Run("fingers are properly ordered left to right", func(t *testing.T) {
		if landmarks.Points[PinkyMCP].X >= landmarks.Points[RingMCP].X {
			t.Error("pinky should be to the left of ring finger")
		}
		if landmarks.Points[RingMCP].X >= landmarks.Points[MiddleMCP].X {
			t.Error("ring should be to the left of middle finger")
		}
		if landmarks.Points[MiddleMCP].X >= landmarks.Points[IndexMCP].X {
			t.Error("middle should be to the left of index finger")
		}
	})
}

func TestFixtures_ShareWrist(t *testing.T) {
	fixtures := map[string]HandLandmarks{
		"open palm":   OpenPalmLandmarks(),
		"peace":       PeaceLandmarks(),
		"fist":        FistLandmarks(),
		"one finger":  OneFingerLandmarks(),
		"thumbs up":   ThumbsUpLandmarks(),
		"thumbs down": ThumbsDownLandmarks(),
	}

	for name, lm := range fixtures {
		t.Run(name, func(t *testing.T) {
			if lm.Points[Wrist] != (Point3D{X: 0.5, Y: 0.8}) {
				t.Errorf("wrist = %+v, want {0.5 0.8 0}", lm.Points[Wrist])
			}
			for i, p := range lm.Points {
				if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
					t.Errorf("landmark %v = %+v outside normalized range", Landmark(i), p)
				}
			}
		})
	}
}
