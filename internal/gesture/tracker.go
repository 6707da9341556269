package gesture

import (
	"fmt"

	"github.com/ayusman/mudra/internal/detector"
)

// Transition records a debouncer switching on or off during a frame.
type Transition struct {
	Symbol Symbol
	Active bool
}

// Step is the outcome of one frame.
type Step struct {
	// Decision is the symbol to draw, None when nothing is active.
	Decision Symbol

	// Raw holds each tracked symbol's undebounced predicate result.
	Raw map[Symbol]bool

	// Transitions lists the debouncers that changed this frame, in tracking order.
	Transitions []Transition
}

// SymbolState is a read-only view of one debouncer.
type SymbolState struct {
	Symbol Symbol `json:"symbol"`
	Active bool   `json:"active"`
	Hits   int    `json:"hits"`
	Misses int    `json:"misses"`
}

type tracked struct {
	spec     Spec
	debounce *Debouncer
}

// Tracker evaluates, debounces and arbitrates every tracked gesture once per frame.
// It is owned by a single frame loop and is not safe for concurrent use.
type Tracker struct {
	entries []tracked
	index   map[Symbol]int
	arbiter *Arbiter
}

// NewTracker creates a Tracker for specs. Symbols absent from specs are never active.
func NewTracker(specs []Spec, arbiter *Arbiter) (*Tracker, error) {
	if arbiter == nil {
		return nil, fmt.Errorf("arbiter is nil")
	}

	t := &Tracker{
		entries: make([]tracked, 0, len(specs)),
		index:   make(map[Symbol]int, len(specs)),
		arbiter: arbiter,
	}
	for _, s := range specs {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := t.index[s.Symbol]; dup {
			return nil, fmt.Errorf("duplicate spec for %v", s.Symbol)
		}
		t.index[s.Symbol] = len(t.entries)
		t.entries = append(t.entries, tracked{
			spec:     s,
			debounce: NewDebouncer(s.ActivateFrames, s.DeactivateFrames),
		})
	}
	return t, nil
}

// Step processes one frame. A nil hand counts as a miss for every symbol.
func (t *Tracker) Step(hand *detector.HandLandmarks) Step {
	step := Step{Raw: make(map[Symbol]bool, len(t.entries))}

	for _, e := range t.entries {
		detected := hand != nil && e.spec.Detect(hand)
		step.Raw[e.spec.Symbol] = detected
		if e.debounce.Update(detected) {
			step.Transitions = append(step.Transitions, Transition{
				Symbol: e.spec.Symbol,
				Active: e.debounce.Active(),
			})
		}
	}

	step.Decision, _ = t.arbiter.Decide(t.Active)
	return step
}

// Active reports whether sym is currently debounced on.
func (t *Tracker) Active(sym Symbol) bool {
	i, ok := t.index[sym]
	return ok && t.entries[i].debounce.Active()
}

// Spec returns the spec tracked for sym.
func (t *Tracker) Spec(sym Symbol) (Spec, bool) {
	i, ok := t.index[sym]
	if !ok {
		return Spec{}, false
	}
	return t.entries[i].spec, true
}

// Specs returns the tracked specs in order.
func (t *Tracker) Specs() []Spec {
	specs := make([]Spec, len(t.entries))
	for i, e := range t.entries {
		specs[i] = e.spec
	}
	return specs
}

// State returns the debouncer state of every tracked symbol.
func (t *Tracker) State() []SymbolState {
	states := make([]SymbolState, len(t.entries))
	for i, e := range t.entries {
		states[i] = SymbolState{
			Symbol: e.spec.Symbol,
			Active: e.debounce.Active(),
			Hits:   e.debounce.Hits(),
			Misses: e.debounce.Misses(),
		}
	}
	return states
}

// Reset turns every symbol off.
func (t *Tracker) Reset() {
	for _, e := range t.entries {
		e.debounce.Reset()
	}
}
