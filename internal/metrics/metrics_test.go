package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/mudra/internal/gesture"
)

func TestMetrics_ObserveFrame(t *testing.T) {
	m := New()

	m.ObserveFrame(true, 5*time.Millisecond)
	m.ObserveFrame(false, 2*time.Millisecond)
	m.ObserveFrame(true, time.Millisecond)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.frames))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.handFrames))
	assert.Equal(t, 1, testutil.CollectAndCount(m.frameDuration))
}

func TestMetrics_ObserveTransition(t *testing.T) {
	m := New()

	m.ObserveTransition(gesture.Transition{Symbol: gesture.Fist, Active: true})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.activations.WithLabelValues("FIST")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.active.WithLabelValues("FIST")))

	m.ObserveTransition(gesture.Transition{Symbol: gesture.Fist, Active: false})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.activations.WithLabelValues("FIST")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.active.WithLabelValues("FIST")))

	assert.Equal(t, len(gesture.Symbols()), testutil.CollectAndCount(m.active))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveFrame(true, time.Millisecond)
		m.ObserveTransition(gesture.Transition{Symbol: gesture.Peace, Active: true})
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 404, rec.Code)
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveTransition(gesture.Transition{Symbol: gesture.ThumbsUp, Active: true})

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `mudra_gesture_activations_total{symbol="THUMBS_UP"} 1`)
	assert.Contains(t, string(body), "mudra_frames_total 0")
}
