// Package overlay draws gesture icons, labels and the hand skeleton onto frames.
package overlay

import (
	"errors"
	"fmt"
	"math"

	"gocv.io/x/gocv"
)

// DefaultFallbackAlpha is the opacity used for icons without an alpha channel.
const DefaultFallbackAlpha = 0.85

// ErrUnsupportedMat is returned for Mats that are not continuous 8-bit BGR or BGRA.
var ErrUnsupportedMat = errors.New("unsupported mat")

// plane is a byte view over an 8-bit interleaved image.
type plane struct {
	data     []byte
	rows     int
	cols     int
	channels int
	step     int
}

func (p plane) offset(row, col int) int {
	return row*p.step + col*p.channels
}

func view(m *gocv.Mat) (plane, error) {
	if t := m.Type(); t != gocv.MatTypeCV8UC3 && t != gocv.MatTypeCV8UC4 {
		return plane{}, fmt.Errorf("%w: %d channels", ErrUnsupportedMat, m.Channels())
	}
	if !m.IsContinuous() {
		return plane{}, fmt.Errorf("%w: not continuous", ErrUnsupportedMat)
	}
	data, err := m.DataPtrUint8()
	if err != nil {
		return plane{}, fmt.Errorf("%w: %v", ErrUnsupportedMat, err)
	}
	return plane{
		data:     data,
		rows:     m.Rows(),
		cols:     m.Cols(),
		channels: m.Channels(),
		step:     m.Step(),
	}, nil
}

// Composite alpha-blends icon onto dst with its top-left corner at (x, y).
// An anchor outside dst leaves it untouched; an icon running past the right
// or bottom edge is cropped. Icons with four channels use their own alpha,
// three channel icons use fallbackAlpha.
func Composite(dst *gocv.Mat, icon gocv.Mat, x, y int, fallbackAlpha float64) error {
	if dst == nil || dst.Empty() || icon.Empty() {
		return nil
	}
	if x < 0 || y < 0 || x >= dst.Cols() || y >= dst.Rows() {
		return nil
	}

	d, err := view(dst)
	if err != nil {
		return fmt.Errorf("destination: %w", err)
	}

	src := icon
	if !icon.IsContinuous() {
		src = icon.Clone()
		defer src.Close()
	}
	s, err := view(&src)
	if err != nil {
		return fmt.Errorf("icon: %w", err)
	}

	compositePlane(d, s, x, y, fallbackAlpha)
	return nil
}

func compositePlane(dst, src plane, x, y int, fallbackAlpha float64) {
	if x < 0 || y < 0 || x >= dst.cols || y >= dst.rows {
		return
	}

	w := min(src.cols, dst.cols-x)
	h := min(src.rows, dst.rows-y)
	hasAlpha := src.channels == 4

	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			si := src.offset(row, col)
			di := dst.offset(y+row, x+col)

			alpha := fallbackAlpha
			if hasAlpha {
				alpha = float64(src.data[si+3]) / 255
			}

			for c := 0; c < 3; c++ {
				dst.data[di+c] = blend(dst.data[di+c], src.data[si+c], alpha)
			}
		}
	}
}

// blend returns fg*alpha + bg*(1-alpha) rounded to the nearest byte.
func blend(bg, fg byte, alpha float64) byte {
	v := math.Round(float64(fg)*alpha + float64(bg)*(1-alpha))
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return byte(v)
}
