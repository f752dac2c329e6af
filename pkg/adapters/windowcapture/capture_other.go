//go:build !darwin || !cgo

package windowcapture

import (
	"fmt"

	"github.com/kbinani/screenshot"

	"github.com/Jamyw7g/wingif/pkg/ports"
)

const listsDisplays = true

// Capture grabs the display with index handle.
func (s *Source) Capture(handle ports.WindowHandle) (*ports.PixelBuffer, error) {
	n := screenshot.NumActiveDisplays()
	if int(handle) >= n {
		return nil, fmt.Errorf("%w: display %d not found (%d active)", ports.ErrCapture, handle, n)
	}

	img, err := screenshot.CaptureRect(screenshot.GetDisplayBounds(int(handle)))
	if err != nil {
		return nil, fmt.Errorf("%w: display %d: %w", ports.ErrCapture, handle, err)
	}
	return fromRGBA(img)
}

// ListWindows lists active displays.
func (s *Source) ListWindows() ([]ports.WindowInfo, error) {
	n := screenshot.NumActiveDisplays()
	windows := make([]ports.WindowInfo, 0, n)
	for i := 0; i < n; i++ {
		b := screenshot.GetDisplayBounds(i)
		windows = append(windows, ports.WindowInfo{
			Handle: ports.WindowHandle(i),
			Owner:  "display",
			Title:  fmt.Sprintf("%dx%d at (%d,%d)", b.Dx(), b.Dy(), b.Min.X, b.Min.Y),
		})
	}
	return windows, nil
}

var (
	_ ports.FrameSource  = (*Source)(nil)
	_ ports.WindowLister = (*Source)(nil)
)
