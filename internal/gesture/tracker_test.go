package gesture

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/mudra/internal/detector"
)

func newDefaultTracker(t *testing.T) *Tracker {
	t.Helper()
	a, err := NewArbiter(nil)
	require.NoError(t, err)
	tr, err := NewTracker(DefaultSpecs(), a)
	require.NoError(t, err)
	return tr
}

func stepN(tr *Tracker, hand *detector.HandLandmarks, n int) Step {
	var s Step
	for i := 0; i < n; i++ {
		s = tr.Step(hand)
	}
	return s
}

func TestTracker_ActivatesAfterThreshold(t *testing.T) {
	tr := newDefaultTracker(t)
	fist := detector.FistLandmarks()

	s := stepN(tr, &fist, 2)
	assert.Equal(t, None, s.Decision)
	assert.True(t, s.Raw[Fist])
	assert.Empty(t, s.Transitions)

	s = tr.Step(&fist)
	assert.Equal(t, Fist, s.Decision)
	if diff := cmp.Diff([]Transition{{Symbol: Fist, Active: true}}, s.Transitions); diff != "" {
		t.Errorf("Transitions mismatch (-want +got):\n%s", diff)
	}
}

func TestTracker_NoHandIsMiss(t *testing.T) {
	tr := newDefaultTracker(t)
	palm := detector.OpenPalmLandmarks()
	stepN(tr, &palm, 3)
	require.True(t, tr.Active(Stop))

	s := stepN(tr, nil, 4)
	assert.Equal(t, Stop, s.Decision, "short dropout keeps the gesture")
	for _, sym := range Symbols() {
		assert.False(t, s.Raw[sym])
	}

	s = tr.Step(nil)
	assert.Equal(t, None, s.Decision)
	assert.Equal(t, []Transition{{Symbol: Stop, Active: false}}, s.Transitions)
}

func TestTracker_PriorityWhileLingering(t *testing.T) {
	tr := newDefaultTracker(t)
	one := detector.OneFingerLandmarks()
	up := detector.ThumbsUpLandmarks()

	stepN(tr, &one, 3)
	require.True(t, tr.Active(OneFinger))

	// ONE_FINGER lingers for five misses while THUMBS_UP activates after three.
	s := stepN(tr, &up, 3)
	assert.True(t, tr.Active(OneFinger))
	assert.True(t, tr.Active(ThumbsUp))
	assert.Equal(t, ThumbsUp, s.Decision)
}

func TestTracker_JitterDoesNotFlicker(t *testing.T) {
	tr := newDefaultTracker(t)
	peace := detector.PeaceLandmarks()
	fist := detector.FistLandmarks()

	stepN(tr, &peace, 3)

	frames := []*detector.HandLandmarks{&fist, &peace, nil, &peace, &fist, nil, &peace}
	for i, f := range frames {
		s := tr.Step(f)
		assert.Equal(t, Peace, s.Decision, "frame %d", i)
	}
}

func TestTracker_State(t *testing.T) {
	tr := newDefaultTracker(t)
	fist := detector.FistLandmarks()
	stepN(tr, &fist, 2)

	states := tr.State()
	require.Len(t, states, len(Symbols()))
	for _, st := range states {
		if st.Symbol == Fist {
			assert.Equal(t, SymbolState{Symbol: Fist, Hits: 2}, st)
			continue
		}
		assert.Equal(t, 2, st.Misses, "%v", st.Symbol)
	}

	tr.Reset()
	for _, st := range tr.State() {
		assert.Equal(t, SymbolState{Symbol: st.Symbol}, st)
	}
}

func TestTracker_SubsetOfSpecs(t *testing.T) {
	a, err := NewArbiter(nil)
	require.NoError(t, err)

	var specs []Spec
	for _, s := range DefaultSpecs() {
		if s.Symbol != Fist {
			specs = append(specs, s)
		}
	}
	tr, err := NewTracker(specs, a)
	require.NoError(t, err)

	fist := detector.FistLandmarks()
	s := stepN(tr, &fist, 5)
	assert.Equal(t, None, s.Decision)
	_, tracked := s.Raw[Fist]
	assert.False(t, tracked)

	_, ok := tr.Spec(Fist)
	assert.False(t, ok)
}

func TestTracker_CustomThresholds(t *testing.T) {
	a, err := NewArbiter(nil)
	require.NoError(t, err)

	specs := DefaultSpecs()
	for i := range specs {
		specs[i].ActivateFrames = 1
		specs[i].DeactivateFrames = 1
	}
	tr, err := NewTracker(specs, a)
	require.NoError(t, err)

	down := detector.ThumbsDownLandmarks()
	assert.Equal(t, ThumbsDown, tr.Step(&down).Decision)
	assert.Equal(t, None, tr.Step(nil).Decision)
}

func TestNewTracker_Errors(t *testing.T) {
	a, err := NewArbiter(nil)
	require.NoError(t, err)

	dup := append(DefaultSpecs(), DefaultSpecs()[0])
	_, err = NewTracker(dup, a)
	assert.Error(t, err)

	bad := DefaultSpecs()
	bad[2].ActivateFrames = 0
	_, err = NewTracker(bad, a)
	assert.Error(t, err)

	noPred := DefaultSpecs()
	noPred[0].Detect = nil
	_, err = NewTracker(noPred, a)
	assert.Error(t, err)

	_, err = NewTracker(DefaultSpecs(), nil)
	assert.Error(t, err)
}
