package app

import (
	"sync"

	"gocv.io/x/gocv"
)

// WindowTitle is the title of the preview window.
const WindowTitle = "Hand Tracking"

// KeyEscape is the key code that closes the preview window.
const KeyEscape = 27

// Display receives every composited frame. Show reports whether the user asked to quit.
type Display interface {
	Show(frame *gocv.Mat) bool
	Close() error
}

// Headless discards frames. It is used when no window is wanted.
type Headless struct{}

func (Headless) Show(*gocv.Mat) bool { return false }
func (Headless) Close() error        { return nil }

// Window shows frames in an OpenCV window and quits on ESC.
type Window struct {
	once   sync.Once
	title  string
	window *gocv.Window
}

// NewWindow creates a preview window lazily on the first frame, so it is
// created on the goroutine that runs the loop.
func NewWindow(title string) *Window {
	if title == "" {
		title = WindowTitle
	}
	return &Window{title: title}
}

// Show draws frame and polls the keyboard for one millisecond.
func (w *Window) Show(frame *gocv.Mat) bool {
	w.once.Do(func() {
		w.window = gocv.NewWindow(w.title)
	})
	if frame == nil || frame.Empty() {
		return false
	}
	w.window.IMShow(*frame)
	return w.window.WaitKey(1) == KeyEscape
}

// Close destroys the window if it was created.
func (w *Window) Close() error {
	if w.window == nil {
		return nil
	}
	return w.window.Close()
}
