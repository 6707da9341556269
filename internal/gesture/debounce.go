package gesture

import "fmt"

// Default debounce thresholds shared by every built-in gesture.
const (
	DefaultActivateFrames   = 3
	DefaultDeactivateFrames = 5
)

// Debouncer turns a noisy per-frame boolean into a stable active flag.
// A symbol turns on after activate consecutive hits and off after
// deactivate consecutive misses. At most one of the counters is nonzero.
type Debouncer struct {
	activate   int
	deactivate int
	active     bool
	hits       int
	misses     int
}

// NewDebouncer panics if either threshold is below one.
func NewDebouncer(activate, deactivate int) *Debouncer {
	if activate < 1 || deactivate < 1 {
		panic(fmt.Sprintf("gesture: debounce thresholds must be >= 1, got %d/%d", activate, deactivate))
	}
	return &Debouncer{activate: activate, deactivate: deactivate}
}

// Update feeds one frame's raw detection and reports whether the active flag changed.
func (d *Debouncer) Update(detected bool) bool {
	if detected {
		d.hits++
		d.misses = 0
	} else {
		d.misses++
		d.hits = 0
	}

	switch {
	case !d.active && d.hits >= d.activate:
		d.active = true
		return true
	case d.active && d.misses >= d.deactivate:
		d.active = false
		return true
	}
	return false
}

func (d *Debouncer) Active() bool { return d.active }
func (d *Debouncer) Hits() int    { return d.hits }
func (d *Debouncer) Misses() int  { return d.misses }

// Thresholds returns the activate and deactivate frame counts.
func (d *Debouncer) Thresholds() (activate, deactivate int) {
	return d.activate, d.deactivate
}

// Reset returns the debouncer to its initial inactive state.
func (d *Debouncer) Reset() {
	d.active = false
	d.hits = 0
	d.misses = 0
}
