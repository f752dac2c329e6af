// Package windowcapture grabs the pixels of a single on-screen window.
//
// On macOS a handle is a CoreGraphics window number. Other platforms
// cannot address individual windows, so a handle names a display index
// and the whole display is captured.
package windowcapture

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/Jamyw7g/wingif/pkg/ports"
)

// CoreGraphics option bits for CGWindowListCreateImage, as declared in
// CGWindow.h.
const (
	listOptionIncludingWindow  = 1 << 3
	listExcludeDesktopElements = 1 << 4

	imageBoundsIgnoreFraming = 1 << 0
	imageShouldBeOpaque      = 1 << 1
	imageNominalResolution   = 1 << 4
)

// The window alone at nominal resolution, without its frame or shadow,
// composited onto an opaque background.
const (
	captureListOptions  = listOptionIncludingWindow | listExcludeDesktopElements
	captureImageOptions = imageBoundsIgnoreFraming | imageShouldBeOpaque | imageNominalResolution
)

// ErrNoTerminal is returned when no terminal window is on screen.
var ErrNoTerminal = errors.New("windowcapture: no terminal window found")

// terminalOwners are matched case-insensitively against window owners.
var terminalOwners = []string{"terminal", "终端", "iterm", "wezterm"}

// Source implements ports.FrameSource and ports.WindowLister.
type Source struct {
	logger ports.Logger
}

// New creates a new window source.
func New(logger ports.Logger) *Source {
	return &Source{logger: logger.WithComponent("windowcapture")}
}

// DefaultWindow picks the window to record when none was given: the
// first terminal window, or display 0 where windows are displays.
func (s *Source) DefaultWindow() (ports.WindowHandle, error) {
	if listsDisplays {
		return 0, nil
	}
	windows, err := s.ListWindows()
	if err != nil {
		return 0, err
	}
	w, ok := FindTerminal(windows)
	if !ok {
		return 0, ErrNoTerminal
	}
	s.logger.Debug("Selected window %d (%s)", w.Handle, w.Owner)
	return w.Handle, nil
}

// FindTerminal returns the first window owned by a known terminal app.
func FindTerminal(windows []ports.WindowInfo) (ports.WindowInfo, bool) {
	for _, w := range windows {
		owner := strings.ToLower(w.Owner)
		for _, name := range terminalOwners {
			if strings.Contains(owner, name) {
				return w, true
			}
		}
	}
	return ports.WindowInfo{}, false
}

// widthFromStride derives the pixel width of a row. Rows may carry
// padding, which then becomes part of every frame.
func widthFromStride(bytesPerRow int) int {
	return bytesPerRow / ports.BytesPerPixel
}

// fromBGRA converts rows of premultiplied BGRA into an RGBA buffer.
func fromBGRA(data []byte, bytesPerRow, height int) (*ports.PixelBuffer, error) {
	width := widthFromStride(bytesPerRow)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: empty image", ports.ErrCapture)
	}
	if len(data) < bytesPerRow*height {
		return nil, fmt.Errorf("%w: image holds %d bytes, want %d", ports.ErrCapture, len(data), bytesPerRow*height)
	}

	n := width * ports.BytesPerPixel
	pix := make([]byte, n*height)
	for y := 0; y < height; y++ {
		src := data[y*bytesPerRow : y*bytesPerRow+n]
		dst := pix[y*n : (y+1)*n]
		for i := 0; i < n; i += ports.BytesPerPixel {
			dst[i], dst[i+1], dst[i+2], dst[i+3] = src[i+2], src[i+1], src[i], src[i+3]
		}
	}
	return ports.NewPixelBuffer(width, height, pix)
}

// fromRGBA copies an image into a tightly packed buffer.
func fromRGBA(img *image.RGBA) (*ports.PixelBuffer, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: empty image", ports.ErrCapture)
	}
	n := w * ports.BytesPerPixel
	pix := make([]byte, n*h)
	for y := 0; y < h; y++ {
		off := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
		copy(pix[y*n:(y+1)*n], img.Pix[off:off+n])
	}
	return ports.NewPixelBuffer(w, h, pix)
}
