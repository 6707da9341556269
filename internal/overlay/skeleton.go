package overlay

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
)

var (
	landmarkColor   = color.RGBA{R: 255, A: 255}
	connectionColor = color.RGBA{R: 224, G: 224, B: 224, A: 255}
)

const (
	landmarkRadius      = 3
	landmarkThickness   = -1 // filled
	connectionThickness = 2
)

// DrawLandmarks draws the hand skeleton: white bones and red joints.
// Points outside the normalized [0,1] range are skipped.
func DrawLandmarks(dst *gocv.Mat, hand *detector.HandLandmarks) {
	if dst == nil || dst.Empty() || hand == nil {
		return
	}

	w, h := dst.Cols(), dst.Rows()
	var pts [detector.NumLandmarks]image.Point
	var visible [detector.NumLandmarks]bool
	for i, p := range hand.Points {
		pts[i], visible[i] = toPixel(p, w, h)
	}

	for _, c := range detector.HandConnections {
		if visible[c.From] && visible[c.To] {
			gocv.Line(dst, pts[c.From], pts[c.To], connectionColor, connectionThickness)
		}
	}
	for i, pt := range pts {
		if visible[i] {
			gocv.Circle(dst, pt, landmarkRadius, landmarkColor, landmarkThickness)
		}
	}
}

func toPixel(p detector.Point3D, width, height int) (image.Point, bool) {
	if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
		return image.Point{}, false
	}
	x := min(int(p.X*float64(width)), width-1)
	y := min(int(p.Y*float64(height)), height-1)
	return image.Pt(x, y), true
}
