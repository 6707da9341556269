package overlay

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/gesture"
)

// IconSource supplies decoded icons by file name.
type IconSource interface {
	Load(name string) (gocv.Mat, error)
}

// Layout positions the overlay on the frame.
type Layout struct {
	Icon          image.Point
	Label         image.Point
	FallbackAlpha float64
}

// DefaultLayout places the icon at (20,20) and the label at (20,60).
func DefaultLayout() Layout {
	return Layout{
		Icon:          image.Pt(20, 20),
		Label:         image.Pt(20, 60),
		FallbackAlpha: DefaultFallbackAlpha,
	}
}

// Renderer draws the icon and label of a single gesture.
type Renderer struct {
	icons  IconSource
	layout Layout
	specs  map[gesture.Symbol]gesture.Spec
}

// NewRenderer creates a renderer for specs.
func NewRenderer(icons IconSource, specs []gesture.Spec, layout Layout) *Renderer {
	m := make(map[gesture.Symbol]gesture.Spec, len(specs))
	for _, s := range specs {
		m[s.Symbol] = s
	}
	return &Renderer{icons: icons, layout: layout, specs: m}
}

// Preload decodes every icon so asset errors surface before the first frame.
func (r *Renderer) Preload() error {
	for _, sym := range gesture.Symbols() {
		s, ok := r.specs[sym]
		if !ok || s.Icon == "" {
			continue
		}
		if _, err := r.icons.Load(s.Icon); err != nil {
			return fmt.Errorf("load icon for %v: %w", sym, err)
		}
	}
	return nil
}

// Render composites the icon and label for sym onto dst. None draws nothing.
func (r *Renderer) Render(dst *gocv.Mat, sym gesture.Symbol) error {
	if sym == gesture.None {
		return nil
	}

	s, ok := r.specs[sym]
	if !ok {
		return fmt.Errorf("no spec for %v", sym)
	}

	if s.Icon != "" {
		icon, err := r.icons.Load(s.Icon)
		if err != nil {
			return fmt.Errorf("load icon for %v: %w", sym, err)
		}
		if err := Composite(dst, icon, r.layout.Icon.X, r.layout.Icon.Y, r.layout.FallbackAlpha); err != nil {
			return fmt.Errorf("composite %v: %w", sym, err)
		}
	}

	Label{
		Text:      s.Label,
		Origin:    r.layout.Label,
		Scale:     s.LabelScale,
		Color:     s.LabelColor,
		Thickness: s.LabelThickness,
	}.Draw(dst)

	return nil
}
