package gesture

import (
	"errors"
	"fmt"
)

// DefaultPriority is the display precedence, highest first.
var DefaultPriority = []Symbol{ThumbsUp, ThumbsDown, OneFinger, Fist, Peace, Stop}

// ErrInvalidPriority is returned for an order that is not a permutation of Symbols().
var ErrInvalidPriority = errors.New("priority must list every gesture symbol exactly once")

// Arbiter picks the single symbol to display from the set of active ones.
type Arbiter struct {
	order []Symbol
}

// NewArbiter builds an Arbiter from a priority order. A nil order uses DefaultPriority.
func NewArbiter(order []Symbol) (*Arbiter, error) {
	if order == nil {
		order = DefaultPriority
	}

	all := Symbols()
	if len(order) != len(all) {
		return nil, fmt.Errorf("%w: got %d symbols, want %d", ErrInvalidPriority, len(order), len(all))
	}

	seen := make(map[Symbol]bool, len(order))
	for _, s := range order {
		if !s.Valid() {
			return nil, fmt.Errorf("%w: invalid symbol %v", ErrInvalidPriority, s)
		}
		if seen[s] {
			return nil, fmt.Errorf("%w: duplicate %v", ErrInvalidPriority, s)
		}
		seen[s] = true
	}

	return &Arbiter{order: append([]Symbol(nil), order...)}, nil
}

// Decide returns the first active symbol in priority order, or None and false.
func (a *Arbiter) Decide(active func(Symbol) bool) (Symbol, bool) {
	for _, s := range a.order {
		if active(s) {
			return s, true
		}
	}
	return None, false
}

// Order returns a copy of the priority order.
func (a *Arbiter) Order() []Symbol {
	return append([]Symbol(nil), a.order...)
}
