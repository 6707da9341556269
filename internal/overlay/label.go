package overlay

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Label is a line of text drawn in Hershey Simplex.
type Label struct {
	Text      string
	Origin    image.Point
	Scale     float64
	Color     color.RGBA
	Thickness int
}

// Draw renders the label onto dst. Empty text draws nothing.
func (l Label) Draw(dst *gocv.Mat) {
	if l.Text == "" || dst == nil || dst.Empty() {
		return
	}
	gocv.PutText(dst, l.Text, l.Origin, gocv.FontHersheySimplex, l.Scale, l.Color, l.Thickness)
}
