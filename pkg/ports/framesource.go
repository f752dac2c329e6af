// Package ports defines interfaces for external dependencies.
package ports

// WindowHandle identifies a capturable window.
// On macOS it is a CGWindowID; elsewhere it is a display index.
type WindowHandle uint32

// FrameSource abstracts the platform screen-capture primitive.
type FrameSource interface {
	// Capture grabs the current contents of the window.
	// Each call returns a freshly allocated buffer owned by the caller.
	// Geometry may differ between calls (e.g. the window was resized).
	// Fails with an error wrapping ErrCapture when the window is gone
	// or access is denied.
	Capture(handle WindowHandle) (*PixelBuffer, error)
}

// WindowLister enumerates windows that can be captured.
type WindowLister interface {
	ListWindows() ([]WindowInfo, error)
}

// WindowInfo describes a capturable window.
type WindowInfo struct {
	Handle WindowHandle
	Owner  string // Owning application name
	Title  string // Window title, may be empty
}
