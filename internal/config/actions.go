package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/plugin"
)

// ActionTimeout returns the per-action plugin time limit.
func (c *Config) ActionTimeout() time.Duration {
	return time.Duration(c.Actions.TimeoutMS) * time.Millisecond
}

// ActionBindings parses Actions.Bindings into plugin bindings keyed by symbol.
func (c *Config) ActionBindings() (map[gesture.Symbol][]plugin.Binding, error) {
	out := make(map[gesture.Symbol][]plugin.Binding, len(c.Actions.Bindings))
	for key, bs := range c.Actions.Bindings {
		sym, err := gesture.ParseSymbol(key)
		if err != nil || !sym.Valid() {
			return nil, fmt.Errorf("actions.bindings.%s: unknown gesture", key)
		}

		for i, b := range bs {
			if b.Plugin == "" || b.Action == "" {
				return nil, fmt.Errorf("actions.bindings.%s[%d]: %w", key, i, errBinding)
			}

			var params json.RawMessage
			if len(b.Params) > 0 {
				params, err = json.Marshal(b.Params)
				if err != nil {
					return nil, fmt.Errorf("actions.bindings.%s[%d].params: %w", key, i, err)
				}
			}

			out[sym] = append(out[sym], plugin.Binding{
				Plugin:    b.Plugin,
				Action:    b.Action,
				Params:    params,
				OnRelease: b.OnRelease,
			})
		}
	}
	return out, nil
}
