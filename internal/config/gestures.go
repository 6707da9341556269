package config

import (
	"fmt"

	"github.com/ayusman/mudra/internal/gesture"
)

// Specs returns the built-in gesture specs with overrides applied.
// Disabled gestures are left out.
func (c *Config) Specs() ([]gesture.Spec, error) {
	overrides := make(map[gesture.Symbol]GestureConfig, len(c.Gestures))
	for key, g := range c.Gestures {
		sym, err := gesture.ParseSymbol(key)
		if err != nil || !sym.Valid() {
			return nil, fmt.Errorf("gestures.%s: unknown gesture", key)
		}
		overrides[sym] = g
	}

	var specs []gesture.Spec
	for _, s := range gesture.DefaultSpecs() {
		o, ok := overrides[s.Symbol]
		if ok {
			if o.Enabled != nil && !*o.Enabled {
				continue
			}
			if o.ActivateFrames > 0 {
				s.ActivateFrames = o.ActivateFrames
			}
			if o.DeactivateFrames > 0 {
				s.DeactivateFrames = o.DeactivateFrames
			}
			if o.Icon != "" {
				s.Icon = o.Icon
			}
			if o.Label != "" {
				s.Label = o.Label
			}
		}
		if err := s.Validate(); err != nil {
			return nil, err
		}
		specs = append(specs, s)
	}
	return specs, nil
}

// PriorityOrder parses Priority. An empty list means the default order.
func (c *Config) PriorityOrder() ([]gesture.Symbol, error) {
	if len(c.Priority) == 0 {
		return nil, nil
	}

	order := make([]gesture.Symbol, len(c.Priority))
	for i, name := range c.Priority {
		sym, err := gesture.ParseSymbol(name)
		if err != nil {
			return nil, fmt.Errorf("priority[%d]: %w", i, err)
		}
		order[i] = sym
	}

	if _, err := gesture.NewArbiter(order); err != nil {
		return nil, err
	}
	return order, nil
}
