package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feed(d *Debouncer, detected bool, n int) {
	for i := 0; i < n; i++ {
		d.Update(detected)
	}
}

func TestDebouncer_Initial(t *testing.T) {
	d := NewDebouncer(DefaultActivateFrames, DefaultDeactivateFrames)

	assert.False(t, d.Active())
	assert.Zero(t, d.Hits())
	assert.Zero(t, d.Misses())

	a, de := d.Thresholds()
	assert.Equal(t, 3, a)
	assert.Equal(t, 5, de)
}

func TestDebouncer_Activation(t *testing.T) {
	t.Run("one short of threshold then miss stays inactive", func(t *testing.T) {
		d := NewDebouncer(3, 5)
		feed(d, true, 2)
		d.Update(false)

		assert.False(t, d.Active())
		assert.Zero(t, d.Hits())
		assert.Equal(t, 1, d.Misses())
	})

	t.Run("activates on the threshold frame", func(t *testing.T) {
		d := NewDebouncer(3, 5)

		assert.False(t, d.Update(true))
		assert.False(t, d.Update(true))
		assert.False(t, d.Active())

		assert.True(t, d.Update(true), "third hit should report a change")
		assert.True(t, d.Active())

		assert.False(t, d.Update(true), "further hits are not changes")
		assert.Equal(t, 4, d.Hits())
	})

	t.Run("threshold of one activates immediately", func(t *testing.T) {
		d := NewDebouncer(1, 1)
		assert.True(t, d.Update(true))
		assert.True(t, d.Update(false))
		assert.False(t, d.Active())
	})
}

func TestDebouncer_Deactivation(t *testing.T) {
	t.Run("dropout shorter than threshold is tolerated", func(t *testing.T) {
		d := NewDebouncer(3, 5)
		feed(d, true, 3)
		require.True(t, d.Active())

		feed(d, false, 4)
		assert.True(t, d.Active())
		assert.Equal(t, 4, d.Misses())

		d.Update(true)
		assert.True(t, d.Active())
		assert.Zero(t, d.Misses())
		assert.Equal(t, 1, d.Hits())
	})

	t.Run("deactivates on the threshold frame", func(t *testing.T) {
		d := NewDebouncer(3, 5)
		feed(d, true, 3)

		for i := 0; i < 4; i++ {
			assert.False(t, d.Update(false))
		}
		assert.True(t, d.Update(false))
		assert.False(t, d.Active())
	})

	t.Run("reactivation needs full activate run", func(t *testing.T) {
		d := NewDebouncer(3, 5)
		feed(d, true, 3)
		feed(d, false, 5)
		require.False(t, d.Active())

		feed(d, true, 2)
		assert.False(t, d.Active())
		d.Update(true)
		assert.True(t, d.Active())
	})
}

func TestDebouncer_CountersExclusive(t *testing.T) {
	d := NewDebouncer(3, 5)
	pattern := []bool{true, true, false, true, false, false, true, true, true, false}

	for i, v := range pattern {
		d.Update(v)
		if d.Hits() != 0 && d.Misses() != 0 {
			t.Fatalf("frame %d: hits=%d misses=%d both nonzero", i, d.Hits(), d.Misses())
		}
	}
}

func TestDebouncer_Reset(t *testing.T) {
	d := NewDebouncer(3, 5)
	feed(d, true, 4)
	d.Reset()

	assert.False(t, d.Active())
	assert.Zero(t, d.Hits())
	assert.Zero(t, d.Misses())
}

func TestNewDebouncer_InvalidThresholds(t *testing.T) {
	tests := []struct {
		name                 string
		activate, deactivate int
	}{
		{"zero activate", 0, 5},
		{"zero deactivate", 3, 0},
		{"negative", -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() { NewDebouncer(tt.activate, tt.deactivate) })
		})
	}
}
