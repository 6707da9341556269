// Package gesture turns per-frame hand landmarks into a single stable gesture symbol.
package gesture

import (
	"fmt"
	"strings"
)

// Symbol identifies a recognizable static hand gesture.
type Symbol int

// Gesture symbols. None is the zero value and means no gesture is shown.
const (
	None Symbol = iota
	Stop
	Peace
	Fist
	OneFinger
	ThumbsUp
	ThumbsDown
)

var symbolNames = map[Symbol]string{
	None:       "NONE",
	Stop:       "STOP",
	Peace:      "PEACE",
	Fist:       "FIST",
	OneFinger:  "ONE_FINGER",
	ThumbsUp:   "THUMBS_UP",
	ThumbsDown: "THUMBS_DOWN",
}

// Symbols returns every gesture symbol except None, in declaration order.
func Symbols() []Symbol {
	return []Symbol{Stop, Peace, Fist, OneFinger, ThumbsUp, ThumbsDown}
}

func (s Symbol) String() string {
	if name, ok := symbolNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Symbol(%d)", int(s))
}

// Key is the lowercase form used in config files and the database.
func (s Symbol) Key() string {
	return strings.ToLower(s.String())
}

// Valid reports whether s is one of the six gesture symbols.
func (s Symbol) Valid() bool {
	return s > None && s <= ThumbsDown
}

// ParseSymbol accepts either the upper or lower case name, with '-' or '_'.
func ParseSymbol(name string) (Symbol, error) {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
	for sym, n := range symbolNames {
		if n == norm {
			return sym, nil
		}
	}
	return None, fmt.Errorf("unknown gesture symbol %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Symbol) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Symbol) UnmarshalText(text []byte) error {
	sym, err := ParseSymbol(string(text))
	if err != nil {
		return err
	}
	*s = sym
	return nil
}
