package mocks

import (
	"fmt"
	"sync"

	"github.com/Jamyw7g/wingif/pkg/ports"
)

// FrameSource is a mock implementation of ports.FrameSource.
// Without CaptureFunc it returns solid frames whose geometry follows
// Geometries, one entry per call, repeating the last entry.
type FrameSource struct {
	CaptureFunc func(handle ports.WindowHandle, call int) (*ports.PixelBuffer, error)

	// Geometries scripts the size of successive captures.
	Geometries []ports.Geometry

	// FailAt makes the call with this 1-based number fail with ErrCapture.
	FailAt int

	// AfterCapture runs after each call with its 1-based number.
	AfterCapture func(call int)

	mu      sync.Mutex
	calls   int
	handles []ports.WindowHandle
}

func (m *FrameSource) Capture(handle ports.WindowHandle) (*ports.PixelBuffer, error) {
	m.mu.Lock()
	m.calls++
	call := m.calls
	m.handles = append(m.handles, handle)
	m.mu.Unlock()

	if m.AfterCapture != nil {
		defer m.AfterCapture(call)
	}

	if m.CaptureFunc != nil {
		return m.CaptureFunc(handle, call)
	}
	if m.FailAt > 0 && call >= m.FailAt {
		return nil, fmt.Errorf("%w: window %d closed", ports.ErrCapture, handle)
	}

	g := ports.Geometry{Width: 4, Height: 4}
	if len(m.Geometries) > 0 {
		idx := call - 1
		if idx >= len(m.Geometries) {
			idx = len(m.Geometries) - 1
		}
		g = m.Geometries[idx]
	}
	return SolidBuffer(g, uint8(call)), nil
}

// Calls returns the number of Capture calls so far.
func (m *FrameSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Handles returns the handles passed to Capture.
func (m *FrameSource) Handles() []ports.WindowHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ports.WindowHandle(nil), m.handles...)
}

// SolidBuffer returns an opaque buffer filled with a gray level.
func SolidBuffer(g ports.Geometry, level uint8) *ports.PixelBuffer {
	pix := make([]byte, g.Pixels()*ports.BytesPerPixel)
	for i := 0; i < len(pix); i += ports.BytesPerPixel {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = level, level, level, 0xFF
	}
	return &ports.PixelBuffer{Width: g.Width, Height: g.Height, Pix: pix}
}

var _ ports.FrameSource = (*FrameSource)(nil)

// WindowLister is a mock implementation of ports.WindowLister.
type WindowLister struct {
	Windows []ports.WindowInfo
	Err     error
}

func (m *WindowLister) ListWindows() ([]ports.WindowInfo, error) {
	return m.Windows, m.Err
}

var _ ports.WindowLister = (*WindowLister)(nil)
