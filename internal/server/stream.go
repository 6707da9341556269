package server

import (
	"bytes"
	"fmt"
	"net/http"
	"time"
)

// DefaultStreamInterval paces the MJPEG stream at about 15 FPS.
const DefaultStreamInterval = 66 * time.Millisecond

// FrameSource supplies the latest composited frame as JPEG.
type FrameSource interface {
	LatestJPEG() []byte
}

// StreamHandler serves the composited frames as MJPEG.
type StreamHandler struct {
	frames   FrameSource
	interval time.Duration
}

// NewStreamHandler creates a new StreamHandler. A non-positive interval uses DefaultStreamInterval.
func NewStreamHandler(frames FrameSource, interval time.Duration) *StreamHandler {
	if interval <= 0 {
		interval = DefaultStreamInterval
	}
	return &StreamHandler{frames: frames, interval: interval}
}

// ServeHTTP streams MJPEG frames until the client disconnects. A frame is only
// sent again once the loop has published a new one.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	var last []byte
	for {
		if jpeg := h.frames.LatestJPEG(); len(jpeg) > 0 && !bytes.Equal(jpeg, last) {
			if err := writePart(w, jpeg); err != nil {
				return
			}
			last = jpeg
		}

		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}

func writePart(w http.ResponseWriter, jpeg []byte) error {
	if _, err := fmt.Fprintf(w, "--frame\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", len(jpeg)); err != nil {
		return err
	}
	if _, err := w.Write(jpeg); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, "\r\n"); err != nil {
		return err
	}
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
	return nil
}
